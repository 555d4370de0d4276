package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"runtime"

	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/bondpick/internal/formatter"
	"github.com/oakwood-commons/bondpick/internal/ui"
	"github.com/oakwood-commons/bondpick/pkg/catalog"
	"github.com/oakwood-commons/bondpick/pkg/logger"
	"github.com/oakwood-commons/bondpick/pkg/picker"
	"github.com/oakwood-commons/bondpick/pkg/settings"
)

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName,
	Short: "Search and select bond instruments",
	Long: `bondpick searches a bond inventory by id, description, ISIN, issuer,
maturity or currency and selects one instrument.

Without a subcommand it opens the interactive picker when stdout is a
terminal (or with -i) and prints the inventory table otherwise.`,
	Example: `  bondpick
  bondpick search goldman
  bondpick select "Bund 0% Jun 30" -o yaml
  bondpick list --where '_.currency == "USD"'
  bondpick --snapshot --press "usd<Down><Enter>" --no-color`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRun,
	RunE:              runRoot,
}

// setupRun initializes logging and stores per-run settings on the command context.
func setupRun(cmd *cobra.Command, _ []string) error {
	var level int8
	if debug {
		level = -1
	}
	lgr := logger.Get(level)
	lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())

	run := settings.NewCliParams()
	run.MinLogLevel = level
	run.CatalogSource = settings.CatalogSource{Path: catalogPath, Where: whereExpr}
	run.ConfigPath = configFile
	run.Output = output.String()
	run.Interactive = interactive
	run.NoColor = noColor

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithLogger(ctx, lgr)
	ctx = settings.IntoContext(ctx, run)
	cmd.SetContext(ctx)
	return nil
}

func runRoot(cmd *cobra.Command, _ []string) error {
	sess, err := loadSession(cmd.Context())
	if err != nil {
		return err
	}

	if renderSnapshot {
		w, h := resolveFrameSize(frameWidth, frameHeight)
		out := ui.RenderSnapshot(sess.catalog, ui.SnapshotConfig{
			Width:     w,
			Height:    h,
			NoColor:   noColor || sess.cfg.UI.NoColor,
			StartKeys: startKeys,
			Config:    sess.cfg,
			Logger:    sess.log,
		})
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}

	if interactive || stdoutIsTerminal() {
		return runInteractive(cmd, sess)
	}

	p := picker.New(sess.catalog, picker.WithLogger(sess.log))
	return printInstruments(cmd.OutOrStdout(), sess, p.Results(), sess.cfg.UI.EmptyTable)
}

// runInteractive runs the picker and prints the selected instrument, if any,
// once the terminal is restored. Logs are held back until then.
func runInteractive(cmd *cobra.Command, sess *session) error {
	var logBuf bytes.Buffer
	lgr := logr.Discard()
	if debug {
		_, lgr = logger.New(-1, &logBuf)
	}
	defer func() {
		if logBuf.Len() > 0 {
			_, _ = io.Copy(cmd.ErrOrStderr(), &logBuf)
		}
	}()

	opts, cleanup := programOptions(cmd.Context())
	defer cleanup()

	state, err := ui.Run(cmd.Context(), sess.catalog, ui.RunConfig{
		Width:     frameWidth,
		Height:    frameHeight,
		NoColor:   noColor,
		StartKeys: startKeys,
		Config:    sess.cfg,
		Logger:    lgr,
	}, opts...)
	if err != nil {
		return err
	}
	if !state.HasSelection() {
		return nil
	}
	in, ok := sess.catalog.ByID(state.SelectedID)
	if !ok {
		return nil
	}
	return printInstruments(cmd.OutOrStdout(), sess, []catalog.Instrument{in}, sess.cfg.UI.EmptyTable)
}

// printInstruments writes instruments in the --output format.
func printInstruments(w io.Writer, sess *session, instruments []catalog.Instrument, emptyText string) error {
	out, err := formatter.Render(formatter.Format(output), instruments, tableOptions(sess, emptyText))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func tableOptions(sess *session, emptyText string) formatter.TableOptions {
	opts := formatter.TableOptions{
		TotalWidth: frameWidth,
		NoColor:    sess.noColor(),
		EmptyText:  emptyText,
	}
	if opts.TotalWidth <= 0 && stdoutIsTerminal() {
		opts.TotalWidth, _ = detectTerminalSize()
	}
	if c := sess.cfg.UI.Theme.Title; c != "" {
		opts.HeaderColor = lipgloss.Color(string(c))
	}
	return opts
}

// resolveFrameSize fills unset snapshot dimensions from the terminal, then defaults.
func resolveFrameSize(width, height int) (int, int) {
	if width <= 0 || height <= 0 {
		dw, dh := detectTerminalSize()
		if width <= 0 {
			width = dw
		}
		if height <= 0 {
			height = dh
		}
	}
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	return width, height
}

// cliVersionString is the one-line version shown by --version and `bondpick version`.
func cliVersionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s, %s)",
		settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, runtime.Version())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print bondpick version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), cliVersionString())
		return err
	},
}

func init() { //nolint:gochecknoinits
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&catalogPath, "catalog", "", "instrument catalog file (.yaml, .json or .toml); default is the built-in inventory")
	pf.StringVar(&whereExpr, "where", "", "CEL predicate that scopes the catalog, with each record bound to '_' (e.g. '_.currency == \"USD\"')")
	pf.StringVar(&configFile, "config-file", "", "path to a YAML config file")
	pf.VarP(&output, "output", "o", "output format for plain output")
	pf.BoolVar(&noColor, "no-color", false, "disable color output")
	pf.BoolVar(&debug, "debug", false, "log picker transitions (JSON on stderr)")

	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "start the interactive picker even when stdout is not a terminal")
	rootCmd.Flags().BoolVar(&renderSnapshot, "snapshot", false, "render a single picker frame and exit; honors --width/--height/--press")
	rootCmd.Flags().StringArrayVar(&startKeys, "press", nil, "simulate keys on startup. Use <Key> for special keys (<Down>, <Up>, <Enter>, <Esc>, <Tab>, <C-l>); literal text types normally")
	rootCmd.PersistentFlags().IntVar(&frameWidth, "width", 0, "output width in columns (table truncation and picker layout)")
	rootCmd.Flags().IntVar(&frameHeight, "height", 0, "picker height in rows")

	rootCmd.Version = cliVersionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddCommand(versionCmd, searchCmd, selectCmd, listCmd, configCmd)
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx as the base context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
