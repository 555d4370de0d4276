package ui

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"
	"golang.org/x/term"

	"github.com/oakwood-commons/bondpick/internal/config"
	"github.com/oakwood-commons/bondpick/pkg/catalog"
	"github.com/oakwood-commons/bondpick/pkg/picker"
)

// RunConfig configures an interactive session.
type RunConfig struct {
	// Width and Height force a frame size; 0 auto-detects from stdout.
	Width     int
	Height    int
	NoColor   bool
	StartKeys []string
	Config    config.Config
	Logger    logr.Logger
}

// Run starts the picker and blocks until the user quits or ctx is cancelled.
// It returns the interaction state at exit.
func Run(ctx context.Context, cat *catalog.Catalog, cfg RunConfig, opts ...tea.ProgramOption) (picker.State, error) {
	modelOpts := []ModelOption{WithNoColor(cfg.NoColor || cfg.Config.UI.NoColor)}
	if cfg.Logger.GetSink() != nil {
		modelOpts = append(modelOpts, WithLogger(cfg.Logger))
	}

	if cfg.Width > 0 || cfg.Height > 0 {
		runW, runH := cfg.Width, cfg.Height
		if runW <= 0 || runH <= 0 {
			if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				if runW <= 0 {
					runW = w
				}
				if runH <= 0 {
					runH = h
				}
			}
		}
		if runW <= 0 {
			runW = 80
		}
		if runH <= 0 {
			runH = 24
		}
		modelOpts = append(modelOpts, WithSize(runW, runH))
		opts = append(opts, tea.WithWindowSize(runW, runH))
	}

	m := NewModel(cat, cfg.Config, modelOpts...)
	m.fixedSize = cfg.Width > 0 || cfg.Height > 0
	if len(cfg.StartKeys) > 0 {
		ApplyStartupKeys(m, cfg.StartKeys)
	}

	opts = append(opts, tea.WithContext(ctx))
	prog := tea.NewProgram(m, opts...)
	finalModel, err := prog.Run()
	state := m.State()
	if fm, ok := finalModel.(*Model); ok && fm != nil {
		state = fm.State()
	}
	if err != nil {
		return state, fmt.Errorf("run picker: %w", err)
	}
	return state, nil
}
