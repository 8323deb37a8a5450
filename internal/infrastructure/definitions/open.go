package definitions

import (
	"context"
	"fmt"

	"github.com/BrandoCommando/product-taxonomy/internal/application/ports"
	"github.com/BrandoCommando/product-taxonomy/pkg/config"
)

// Open devuelve la fuente configurada en DATA_SOURCE.
func Open(ctx context.Context, cfg config.SourceConfig) (ports.DefinitionSource, error) {
	switch cfg.Kind {
	case config.SourceFS:
		return NewDirSource(cfg.Dir), nil
	case config.SourceS3:
		return NewS3SourceFromConfig(ctx, cfg)
	}
	return nil, fmt.Errorf("DATA_SOURCE %q no soportado", cfg.Kind)
}
