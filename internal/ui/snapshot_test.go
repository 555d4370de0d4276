package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/bondpick/pkg/catalog"
)

func snapshot(t *testing.T, keys ...string) string {
	t.Helper()
	return RenderSnapshot(catalog.Default(), SnapshotConfig{
		Width:     120,
		Height:    40,
		NoColor:   true,
		StartKeys: keys,
		Config:    testConfig(t),
	})
}

func TestRenderSnapshot_Initial(t *testing.T) {
	out := snapshot(t)
	assert.Contains(t, out, "Bond Instrument Picker")
	assert.Contains(t, out, "7 RECORDS")
	assert.Contains(t, out, "US912828LJ90")
	assert.Contains(t, out, "Apple Inc.")
	assert.GreaterOrEqual(t, len(strings.Split(out, "\n")), 40)
}

func TestRenderSnapshot_SearchShowsDropdown(t *testing.T) {
	out := snapshot(t, "goldman")
	assert.Contains(t, out, "goldman")
	assert.Contains(t, out, "Corp Bond 5% Mar 26")
	assert.Contains(t, out, "US38141GZM88")
	assert.Contains(t, out, "7 RECORDS")
}

func TestRenderSnapshot_Select(t *testing.T) {
	out := snapshot(t, "jgb<Enter>")
	assert.Contains(t, out, "1 RECORDS")
	assert.Contains(t, out, "Selected: S1005")
	assert.NotContains(t, out, "T-Note 2.5% Dec 25")
}

func TestRenderSnapshot_ClearAfterSelect(t *testing.T) {
	out := snapshot(t, "jgb<Enter>", "<C-l>")
	assert.Contains(t, out, "7 RECORDS")
	assert.Contains(t, out, "No instrument selected")
}

func TestApplyStartupKeys(t *testing.T) {
	m := newTestModel(t)
	ApplyStartupKeys(m, []string{"usd", "<Down><Down>", "<Enter>"})
	assert.Equal(t, "S1007", m.State().SelectedID)

	m = newTestModel(t)
	ApplyStartupKeys(m, []string{`\<Down>`})
	assert.Equal(t, "<Down>", m.State().Query)

	m = newTestModel(t)
	ApplyStartupKeys(m, []string{"<Bogus>", "  ", "<Tab>"})
	assert.Equal(t, "", m.State().Query)
	assert.False(t, m.InputFocused())

	ApplyStartupKeys(nil, []string{"x"})
}

func TestApplyStartupKeys_SettlesDebounce(t *testing.T) {
	m := NewModel(catalog.Default(), testConfig(t), WithNoColor(true))
	require.Positive(t, m.debounce)
	ApplyStartupKeys(m, []string{"cad"})
	assert.Equal(t, []string{"S1006"}, optionIDs(m.DropdownRows()))
}

func TestParseTokenSegments(t *testing.T) {
	segs := parseTokenSegments("ab<Down>c<Enter")
	require.Len(t, segs, 4)
	assert.Equal(t, tokenSegment{text: "ab"}, segs[0])
	assert.Equal(t, tokenSegment{text: "<Down>", isKey: true}, segs[1])
	assert.Equal(t, tokenSegment{text: "c"}, segs[2])
	assert.Equal(t, tokenSegment{text: "<Enter"}, segs[3])
}

func TestPadSnapshotHeight(t *testing.T) {
	assert.Equal(t, "a\n  \n  ", padSnapshotHeight("a\n", 3, 2))
	assert.Equal(t, "a\nb", padSnapshotHeight("a\nb", 1, 2))
}
