package cmd

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/oakwood-commons/bondpick/internal/formatter"
)

// outputFormat is the --output flag value: table, yaml or json.
type outputFormat formatter.Format

var _ pflag.Value = (*outputFormat)(nil)

func (o *outputFormat) String() string {
	return string(*o)
}

func (o *outputFormat) Set(s string) error {
	f, err := formatter.ParseFormat(s)
	if err != nil {
		return err
	}
	*o = outputFormat(f)
	return nil
}

func (o *outputFormat) Type() string {
	names := make([]string, len(formatter.Formats))
	for i, f := range formatter.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, "|")
}

var (
	interactive    bool
	output         = outputFormat(formatter.FormatTable)
	catalogPath    string
	whereExpr      string
	configFile     string
	debug          bool
	noColor        bool
	renderSnapshot bool
	startKeys      []string
	frameWidth     int
	frameHeight    int
)

func resetFlagState() {
	interactive = false
	output = outputFormat(formatter.FormatTable)
	catalogPath = ""
	whereExpr = ""
	configFile = ""
	debug = false
	noColor = false
	renderSnapshot = false
	startKeys = nil
	frameWidth = 0
	frameHeight = 0
	configDefaults = false
}
