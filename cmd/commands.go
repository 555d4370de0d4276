package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/bondpick/internal/config"
	"github.com/oakwood-commons/bondpick/internal/formatter"
	"github.com/oakwood-commons/bondpick/pkg/picker"
)

// ErrUnknownDescription is returned by `select` when no record carries the description.
var ErrUnknownDescription = errors.New("no instrument with that description")

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "List dropdown candidates for a query",
	Long: `Prints the instruments the picker dropdown would offer for the query: every
record where the id, description, ISIN, issuer, maturity or currency contains
the query, ignoring case and surrounding whitespace. An empty query lists all.`,
	Example: "  bondpick search US91\n  bondpick search goldman -o json",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := loadSession(cmd.Context())
		if err != nil {
			return err
		}
		p := picker.New(sess.catalog, picker.WithLogger(sess.log))
		p.InputChanged(strings.Join(args, " "))

		if formatter.Format(output) == formatter.FormatTable {
			_, err := io.WriteString(cmd.OutOrStdout(),
				formatter.Options(p.Options(), tableOptions(sess, sess.cfg.UI.EmptyDropdown)))
			return err
		}
		return printInstruments(cmd.OutOrStdout(), sess, p.Candidates(), sess.cfg.UI.EmptyDropdown)
	},
}

var selectCmd = &cobra.Command{
	Use:   "select <description>",
	Short: "Select an instrument by its exact description",
	Long: `Submits the description as a dropdown choice and prints the resulting table:
the single instrument whose description matches exactly (case-sensitive). The
first match in catalog order wins.`,
	Example: `  bondpick select "Gilt 4.25% Sep 27"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := loadSession(cmd.Context())
		if err != nil {
			return err
		}
		desc := strings.Join(args, " ")
		p := picker.New(sess.catalog, picker.WithLogger(sess.log))
		if !p.OptionSubmitted(desc) {
			return fmt.Errorf("%w: %q (try `%s search`)", ErrUnknownDescription, desc, cmd.Root().Name())
		}
		return printInstruments(cmd.OutOrStdout(), sess, p.Results(), sess.cfg.UI.EmptyTable)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the full inventory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		sess, err := loadSession(cmd.Context())
		if err != nil {
			return err
		}
		p := picker.New(sess.catalog, picker.WithLogger(sess.log))
		return printInstruments(cmd.OutOrStdout(), sess, p.Results(), sess.cfg.UI.EmptyTable)
	},
}

var configDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the merged configuration as YAML",
	Long: `Prints the embedded defaults merged with the config file (--config-file, else
$XDG_CONFIG_HOME/bondpick/config.yaml or ~/.config/bondpick/config.yaml).
Use --defaults to print the embedded default document verbatim as a starting point.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if configDefaults {
			_, err := cmd.OutOrStdout().Write(config.DefaultConfigYAML())
			return err
		}
		cfg, err := config.Load(config.ResolvePath(configFile))
		if err != nil {
			return err
		}
		out, err := cfg.YAML()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() { //nolint:gochecknoinits
	configCmd.Flags().BoolVar(&configDefaults, "defaults", false, "print the embedded default config")
}
