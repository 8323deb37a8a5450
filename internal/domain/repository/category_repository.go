package repository

import (
	"context"

	"github.com/BrandoCommando/product-taxonomy/internal/domain/entity"
)

//go:generate mockgen -source=category_repository.go -destination=mocks/category_repository_mock.go -package=mocks

// CategoryFilter restringe Count. El valor cero cuenta todas las categorías.
type CategoryFilter struct {
	VerticalsOnly bool
}

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Create falla con domain.ErrDuplicateIdentifier si el ID ya existe; GetByID con domain.ErrNotFound.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Count(ctx context.Context, filter CategoryFilter) (int, error)
	DeleteAll(ctx context.Context) error
}
