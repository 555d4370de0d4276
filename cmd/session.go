package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/bondpick/internal/config"
	"github.com/oakwood-commons/bondpick/internal/where"
	"github.com/oakwood-commons/bondpick/pkg/catalog"
	"github.com/oakwood-commons/bondpick/pkg/logger"
	"github.com/oakwood-commons/bondpick/pkg/settings"
)

// session is everything a command needs after startup: merged configuration
// and the (optionally scoped) catalog.
type session struct {
	run     *settings.Run
	cfg     config.Config
	catalog *catalog.Catalog
	log     logr.Logger
}

// noColor reports whether plain output should be unstyled.
func (s *session) noColor() bool {
	return s.run.NoColor || s.cfg.UI.NoColor || !stdoutIsTerminal()
}

// loadSession merges configuration with flags, then loads and scopes the catalog.
func loadSession(ctx context.Context) (*session, error) {
	run, ok := settings.FromContext(ctx)
	if !ok {
		run = settings.NewCliParams()
	}
	lgr := *logger.FromContext(ctx)

	cfgPath := config.ResolvePath(run.ConfigPath)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if cfgPath != "" {
		lgr.V(1).Info("loaded config", "path", cfgPath)
	}

	// Flags override the config file.
	if run.CatalogSource.Path == "" {
		run.CatalogSource.Path = cfg.Catalog.Path
	}
	if strings.TrimSpace(run.CatalogSource.Where) == "" {
		run.CatalogSource.Where = cfg.Catalog.Where
	}

	cat, err := loadCatalog(run.CatalogSource)
	if err != nil {
		return nil, err
	}
	source := run.CatalogSource.Path
	if run.Embedded() {
		source = "embedded"
	}
	lgr = logger.WithValues(&lgr, logger.CatalogKey, source).WithName("catalog")
	for _, w := range cat.CheckDigitWarnings() {
		lgr.V(1).Info("isin check digit mismatch", "detail", w)
	}

	scoped, err := where.Scope(cat, run.CatalogSource.Where)
	if err != nil {
		return nil, fmt.Errorf("where: %w", err)
	}
	lgr.V(1).Info("catalog ready", "records", scoped.Len(), "where", run.CatalogSource.Where)

	return &session{run: run, cfg: cfg, catalog: scoped, log: lgr}, nil
}

func loadCatalog(src settings.CatalogSource) (*catalog.Catalog, error) {
	if src.Path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}
