package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "bondpick", cfg.App.Name)
	assert.Equal(t, "Bond Instrument Picker", cfg.App.Title)
	assert.Equal(t, 120, cfg.UI.DebounceMs)
	assert.Equal(t, 6, cfg.UI.DropdownHeight)
	assert.Equal(t, "No bonds found matching your search", cfg.UI.EmptyTable)
	assert.Equal(t, ColorValue("33"), cfg.UI.Theme.Accent)
	assert.Empty(t, cfg.Catalog.Path)
	require.NoError(t, cfg.Validate())
}

func TestLoadMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`catalog:
  where: _.currency == "USD"
ui:
  debounce_ms: 0
  no_color: true
  theme:
    accent: "#ff8800"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, `_.currency == "USD"`, cfg.Catalog.Where)
	assert.Equal(t, 0, cfg.UI.DebounceMs)
	assert.True(t, cfg.UI.NoColor)
	assert.Equal(t, ColorValue("#ff8800"), cfg.UI.Theme.Accent)
	assert.Equal(t, ColorValue("245"), cfg.UI.Theme.Muted, "untouched keys keep defaults")
	assert.Equal(t, 6, cfg.UI.DropdownHeight)
	assert.Equal(t, "bondpick", cfg.App.Name)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("ui: [not, a, map]\n"), 0o600))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "decode config")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("ui:\n  dropdown_height: 0\n"), 0o600))
	_, err = Load(invalid)
	assert.ErrorContains(t, err, "dropdown_height")
}

func TestValidate(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	cfg.UI.DebounceMs = -5
	assert.ErrorContains(t, cfg.Validate(), "debounce_ms")
}

func TestYAMLRoundTripKeepsNumericColors(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	out, err := cfg.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "accent: 33\n")

	var back Config
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, cfg, back)
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "/explicit.yaml", ResolvePath("/explicit.yaml"))

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	assert.Empty(t, ResolvePath(""))

	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "bondpick"), 0o755))
	want := filepath.Join(xdg, "bondpick", "config.yaml")
	require.NoError(t, os.WriteFile(want, []byte("app:\n  name: x\n"), 0o600))
	assert.Equal(t, want, ResolvePath(""))
}

func TestDefaultConfigYAMLIsCopy(t *testing.T) {
	a := DefaultConfigYAML()
	a[0] = '#'
	assert.NotEqual(t, a[0], DefaultConfigYAML()[0])
}
