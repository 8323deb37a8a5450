// Package app arma las dependencias compartidas por la API y la CLI.
package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/BrandoCommando/product-taxonomy/internal/application/seed"
	"github.com/BrandoCommando/product-taxonomy/internal/application/usecase"
	"github.com/BrandoCommando/product-taxonomy/internal/infrastructure/definitions"
	"github.com/BrandoCommando/product-taxonomy/internal/infrastructure/store"
	"github.com/BrandoCommando/product-taxonomy/pkg/config"
	"github.com/BrandoCommando/product-taxonomy/pkg/logger"
	"github.com/BrandoCommando/product-taxonomy/pkg/metrics"
)

// App dependencias construidas a partir de la configuración.
type App struct {
	Config   *config.Config
	Log      *logger.Logger
	Registry *prometheus.Registry
	Backend  *store.Backend

	SeedUC    *usecase.SeedUseCase
	CatalogUC *usecase.CatalogUseCase
}

// New valida la configuración, abre el almacenamiento y la fuente de definiciones.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuración inválida: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	backend, err := store.Open(ctx, cfg, log.Zerolog())
	if err != nil {
		return nil, err
	}
	source, err := definitions.Open(ctx, cfg.Source)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}

	zl := log.Zerolog()
	opts := append(backend.ImporterOptions(),
		seed.WithWorkers(cfg.Seed.Workers),
		seed.WithLogger(zl),
		seed.WithMetrics(m),
	)
	importer := seed.NewImporter(backend.Properties, backend.Categories, opts...)
	verifier := seed.NewVerifier(backend.Properties, backend.Categories, zl, m)

	return &App{
		Config:    cfg,
		Log:       log,
		Registry:  reg,
		Backend:   backend,
		SeedUC:    usecase.NewSeedUseCase(source, importer, verifier, zl),
		CatalogUC: usecase.NewCatalogUseCase(backend.Properties, backend.Categories),
	}, nil
}

// Close libera el almacenamiento.
func (a *App) Close() error {
	return a.Backend.Close()
}
