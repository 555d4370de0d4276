package formatter

import (
	"encoding/json"
	"strings"
	"testing"

	runewidth "github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/bondpick/pkg/catalog"
	"github.com/oakwood-commons/bondpick/pkg/picker"
)

func TestTable_DefaultCatalog(t *testing.T) {
	out := Table(catalog.Default().All(), TableOptions{NoColor: true})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2+7)

	for _, col := range Columns {
		assert.Contains(t, lines[0], col)
	}
	assert.True(t, strings.HasPrefix(lines[1], "───"))
	assert.True(t, strings.HasPrefix(lines[2], "S1001"))
	assert.Contains(t, lines[2], "T-Note 2.5% Dec 25")
	assert.Contains(t, lines[2], "US912828LJ90")
	assert.True(t, strings.HasPrefix(lines[8], "S1007"))
	assert.Contains(t, lines[8], "Apple Inc.")
}

func TestTable_ColumnsAligned(t *testing.T) {
	out := Table(catalog.Default().All(), TableOptions{NoColor: true})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	isinCol := strings.Index(lines[0], "ISIN")
	require.Positive(t, isinCol)
	for _, line := range lines[2:] {
		assert.Equal(t, "  ", line[isinCol-2:isinCol], "line %q", line)
	}
}

func TestTable_Empty(t *testing.T) {
	assert.Equal(t, "", Table(nil, TableOptions{}))
	assert.Equal(t, "No bonds found matching your search\n",
		Table(nil, TableOptions{EmptyText: "No bonds found matching your search"}))
}

func TestTable_TruncatesToWidth(t *testing.T) {
	out := Table(catalog.Default().All(), TableOptions{NoColor: true, TotalWidth: 60})
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, runewidth.StringWidth(line), 60, "line %q", line)
	}
	assert.Contains(t, out, ellipsis)
}

func TestColumnWidths(t *testing.T) {
	cols := []string{"a", "bb"}
	rows := [][]string{{"xxxx", "y"}, {"z", "wwwwww"}}
	assert.Equal(t, []int{4, 6}, ColumnWidths(cols, rows, 0))
	assert.Equal(t, []int{4, 6}, ColumnWidths(cols, rows, 100))

	shrunk := ColumnWidths(cols, rows, 8)
	assert.LessOrEqual(t, shrunk[0]+shrunk[1], 8-sepWidth)
	for _, w := range shrunk {
		assert.GreaterOrEqual(t, w, minColWidth)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab…", truncate("abcdef", 3))
	assert.Equal(t, "abc   ", padRight("abc", 6))
}

func TestOptions(t *testing.T) {
	opts := picker.Options(catalog.Default(), "bund")
	out := Options(opts, TableOptions{})
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, "S1002")
	assert.Contains(t, out, "Bund 0% Jun 30")
	assert.Contains(t, out, "(Germany Fed Rep · 2030-06-30 · DE0001102507)")
	assert.Contains(t, out, "EUR")

	assert.Equal(t, "No results found\n", Options(nil, TableOptions{EmptyText: "No results found"}))
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"table", "YAML", " json "} {
		_, err := ParseFormat(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseFormat("csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv")
}

func TestYAMLAndJSON(t *testing.T) {
	ins := catalog.Default().All()[:2]

	y, err := YAML(ins)
	require.NoError(t, err)
	var fromYAML []map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(y), &fromYAML))
	require.Len(t, fromYAML, 2)
	assert.Equal(t, "S1002", fromYAML[1]["id"])

	j, err := JSON(ins)
	require.NoError(t, err)
	var fromJSON []map[string]string
	require.NoError(t, json.Unmarshal([]byte(j), &fromJSON))
	assert.Equal(t, "DE0001102507", fromJSON[1]["isin"])

	empty, err := JSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", empty)
}

func TestRender(t *testing.T) {
	ins := catalog.Default().All()[:1]
	out, err := Render(FormatTable, ins, TableOptions{NoColor: true})
	require.NoError(t, err)
	assert.Contains(t, out, "SierraId")

	out, err = Render(FormatJSON, ins, TableOptions{})
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "S1001"`)

	_, err = Render(Format("xml"), ins, TableOptions{})
	assert.Error(t, err)
}
