// Package store elige el backend del catálogo según STORE_DRIVER.
package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/BrandoCommando/product-taxonomy/internal/application/seed"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/repository"
	"github.com/BrandoCommando/product-taxonomy/internal/infrastructure/memory"
	"github.com/BrandoCommando/product-taxonomy/internal/infrastructure/postgres"
	redisstore "github.com/BrandoCommando/product-taxonomy/internal/infrastructure/redis"
	"github.com/BrandoCommando/product-taxonomy/internal/infrastructure/sqlite"
	"github.com/BrandoCommando/product-taxonomy/pkg/config"
)

// Backend repositorios del catálogo más el runner transaccional (nil si el driver no tiene transacciones).
type Backend struct {
	Driver     string
	Properties repository.PropertyRepository
	Categories repository.CategoryRepository
	Runner     seed.TxRunner
	Close      func() error
}

// ImporterOptions opciones del importador que dependen del backend.
func (b *Backend) ImporterOptions() []seed.Option {
	if b.Runner == nil {
		return nil
	}
	return []seed.Option{seed.WithTxRunner(b.Runner)}
}

// Open conecta el driver configurado. Los drivers SQL crean sus tablas si no existen.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Backend, error) {
	log = log.With().Str("driver", cfg.Store.Driver).Logger()

	switch cfg.Store.Driver {
	case config.DriverMemory:
		catalog := memory.NewCatalog()
		log.Warn().Msg("catálogo en memoria: los datos se pierden al salir")
		return &Backend{
			Driver:     config.DriverMemory,
			Properties: catalog.Properties(),
			Categories: catalog.Categories(),
			Runner:     catalog,
			Close:      func() error { return nil },
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("conectado a PostgreSQL")
		return &Backend{
			Driver:     config.DriverPostgres,
			Properties: postgres.NewPropertyRepository(pool),
			Categories: postgres.NewCategoryRepository(pool),
			Runner:     postgres.NewTxRunner(pool),
			Close:      func() error { pool.Close(); return nil },
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.SQLite.Path).Msg("base SQLite abierta")
		return &Backend{
			Driver:     config.DriverSQLite,
			Properties: sqlite.NewPropertyRepository(db),
			Categories: sqlite.NewCategoryRepository(db),
			Runner:     sqlite.NewTxRunner(db),
			Close:      db.Close,
		}, nil

	case config.DriverRedis:
		client, err := redisstore.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		log.Info().Str("prefix", cfg.Redis.Prefix).Msg("conectado a Redis")
		return &Backend{
			Driver:     config.DriverRedis,
			Properties: redisstore.NewPropertyRepository(client, cfg.Redis.Prefix),
			Categories: redisstore.NewCategoryRepository(client, cfg.Redis.Prefix),
			Close:      client.Close,
		}, nil
	}
	return nil, fmt.Errorf("STORE_DRIVER %q no soportado", cfg.Store.Driver)
}
