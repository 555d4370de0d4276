package ui

import (
	"strings"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/bondpick/internal/config"
	"github.com/oakwood-commons/bondpick/pkg/catalog"
)

// SnapshotConfig configures RenderSnapshot.
type SnapshotConfig struct {
	Width     int
	Height    int
	NoColor   bool
	StartKeys []string
	Config    config.Config
	Logger    logr.Logger
}

// RenderSnapshot renders a single frame without a terminal after replaying
// StartKeys. Debouncing is disabled so the dropdown reflects the final query.
func RenderSnapshot(cat *catalog.Catalog, cfg SnapshotConfig) string {
	opts := []ModelOption{
		WithNoColor(cfg.NoColor || cfg.Config.UI.NoColor),
		WithSize(cfg.Width, cfg.Height),
		WithDebounce(0),
	}
	if cfg.Logger.GetSink() != nil {
		opts = append(opts, WithLogger(cfg.Logger))
	}
	m := NewModel(cat, cfg.Config, opts...)
	ApplyStartupKeys(m, cfg.StartKeys)
	m.ApplyColorScheme()
	return padSnapshotHeight(m.render(), cfg.Height, cfg.Width)
}

func padSnapshotHeight(view string, height, width int) string {
	lines := strings.Split(strings.TrimRight(view, "\n"), "\n")
	if height <= 0 || len(lines) >= height {
		return strings.Join(lines, "\n")
	}
	padLine := " "
	if width > 1 {
		padLine = strings.Repeat(" ", width)
	}
	for len(lines) < height {
		lines = append(lines, padLine)
	}
	return strings.Join(lines, "\n")
}
