package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/bondpick/pkg/catalog"
)

func TestInventoryMarkdown(t *testing.T) {
	md := string(inventoryMarkdown(catalog.Default()))
	assert.Contains(t, md, "## Inventory (7 instruments)")
	assert.Contains(t, md, "| S1002 | Bund 0% Jun 30 | DE0001102507 | Germany Fed Rep | 2030-06-30 | EUR |")
	assert.Equal(t, 2+7, strings.Count(md, "\n|"))
}

func TestRenderPage(t *testing.T) {
	page, err := renderPage([]byte("# bondpick\n\nPick a bond.\n"), catalog.Default())
	require.NoError(t, err)
	out := string(page)

	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, `<h1 id="bondpick">bondpick</h1>`)
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>DE0001102507</td>")
	assert.Contains(t, out, `class="warnings"`)
	assert.Equal(t, 4, strings.Count(out, "<li>"))
	assert.True(t, strings.HasSuffix(out, "</html>\n"))
}
