package seed

import (
	"context"

	"github.com/BrandoCommando/product-taxonomy/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción del almacenamiento, pasando repositorios
// atados a ella. Si fn retorna error se hace rollback: un lote se importa completo o no se importa.
type TxRunner interface {
	RunSeed(ctx context.Context, fn func(
		propertyRepo repository.PropertyRepository,
		categoryRepo repository.CategoryRepository,
	) error) error
}
