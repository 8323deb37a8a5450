package repository

import (
	"context"

	"github.com/BrandoCommando/product-taxonomy/internal/domain/entity"
)

//go:generate mockgen -source=property_repository.go -destination=mocks/property_repository_mock.go -package=mocks

// PropertyRepository define el puerto de persistencia para Property y sus valores (DIP).
// Create falla con domain.ErrDuplicateIdentifier si el ID ya existe; GetByID con domain.ErrNotFound.
type PropertyRepository interface {
	Create(ctx context.Context, property *entity.Property) error
	GetByID(ctx context.Context, id int64) (*entity.Property, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}
