package formatter

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/bondpick/pkg/catalog"
)

// Format is an output encoding for instrument lists.
type Format string

const (
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
)

// Formats lists the accepted output formats.
var Formats = []Format{FormatTable, FormatYAML, FormatJSON}

// ParseFormat validates a format name (case-insensitive).
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want table|yaml|json)", s)
}

// YAML encodes instruments as a YAML sequence.
func YAML(instruments []catalog.Instrument) (string, error) {
	if instruments == nil {
		instruments = []catalog.Instrument{}
	}
	out, err := yaml.Marshal(instruments)
	if err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	return string(out), nil
}

// JSON encodes instruments as an indented JSON array.
func JSON(instruments []catalog.Instrument) (string, error) {
	if instruments == nil {
		instruments = []catalog.Instrument{}
	}
	out, err := json.MarshalIndent(instruments, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	return string(out) + "\n", nil
}

// Render encodes instruments in the requested format.
func Render(format Format, instruments []catalog.Instrument, opts TableOptions) (string, error) {
	switch format {
	case FormatYAML:
		return YAML(instruments)
	case FormatJSON:
		return JSON(instruments)
	case FormatTable, "":
		return Table(instruments, opts), nil
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}
