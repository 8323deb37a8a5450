package ports

import (
	"context"

	"github.com/BrandoCommando/product-taxonomy/internal/application/serializer"
)

// DefinitionSource entrega las definiciones crudas del catálogo: un archivo de
// propiedades y un archivo de categorías por vertical, en orden estable.
type DefinitionSource interface {
	Properties(ctx context.Context) ([]serializer.Raw, error)
	CategoryFiles(ctx context.Context) ([][]serializer.Raw, error)
}
