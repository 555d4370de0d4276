// Package config loads bondpick settings: an embedded default document with
// an optional user YAML file merged on top.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

// ColorValue stores a color token (ANSI number or hex) and marshals numerics as YAML ints.
type ColorValue string

func (c ColorValue) MarshalYAML() (interface{}, error) {
	s := string(c)
	if _, err := strconv.Atoi(s); err == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: s}, nil
	}
	return s, nil
}

func (c *ColorValue) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		*c = ""
		return nil
	}
	*c = ColorValue(value.Value)
	return nil
}

// AppConfig holds the text shown in the picker header.
type AppConfig struct {
	Name     string `yaml:"name"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
}

// CatalogConfig selects the instrument source.
type CatalogConfig struct {
	Path  string `yaml:"path"`
	Where string `yaml:"where"`
}

// ThemeConfig lists the picker colors.
type ThemeConfig struct {
	Title      ColorValue `yaml:"title"`
	Accent     ColorValue `yaml:"accent"`
	Muted      ColorValue `yaml:"muted"`
	BadgeFG    ColorValue `yaml:"badge_fg"`
	BadgeBG    ColorValue `yaml:"badge_bg"`
	HeaderFG   ColorValue `yaml:"header_fg"`
	HeaderBG   ColorValue `yaml:"header_bg"`
	SelectedFG ColorValue `yaml:"selected_fg"`
	SelectedBG ColorValue `yaml:"selected_bg"`
	Border     ColorValue `yaml:"border"`
}

// UIConfig configures the interactive picker.
type UIConfig struct {
	Placeholder    string      `yaml:"placeholder"`
	DebounceMs     int         `yaml:"debounce_ms"`
	DropdownHeight int         `yaml:"dropdown_height"`
	NoColor        bool        `yaml:"no_color"`
	EmptyDropdown  string      `yaml:"empty_dropdown"`
	EmptyTable     string      `yaml:"empty_table"`
	Theme          ThemeConfig `yaml:"theme"`
}

// Config is the merged configuration document.
type Config struct {
	App     AppConfig     `yaml:"app"`
	Catalog CatalogConfig `yaml:"catalog"`
	UI      UIConfig      `yaml:"ui"`
}

// DefaultConfigYAML returns a copy of the embedded default document.
func DefaultConfigYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Default decodes the embedded defaults.
func Default() (Config, error) {
	var cfg Config
	if len(embeddedDefaultConfig) == 0 {
		return cfg, errors.New("embedded default config is empty")
	}
	if err := yaml.Unmarshal(embeddedDefaultConfig, &cfg); err != nil {
		return cfg, fmt.Errorf("decode default config: %w", err)
	}
	return cfg, nil
}

// Load returns the defaults with the file at path merged on top. Keys absent
// from the file keep their default value. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	if path == "" {
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects values the picker cannot honour.
func (c Config) Validate() error {
	if c.UI.DebounceMs < 0 {
		return fmt.Errorf("ui.debounce_ms must be >= 0, got %d", c.UI.DebounceMs)
	}
	if c.UI.DropdownHeight < 1 {
		return fmt.Errorf("ui.dropdown_height must be >= 1, got %d", c.UI.DropdownHeight)
	}
	return nil
}

// YAML encodes the configuration.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// ResolvePath returns explicit when set, otherwise $XDG_CONFIG_HOME/bondpick/config.yaml
// or ~/.config/bondpick/config.yaml when that file exists, otherwise "".
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	candidate := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate = filepath.Join(xdg, "bondpick", "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", "bondpick", "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}
