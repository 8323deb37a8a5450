package usecase

import (
	"context"

	"github.com/BrandoCommando/product-taxonomy/internal/application/dto"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/entity"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/repository"
)

// CatalogUseCase consultas de solo lectura sobre el catálogo sembrado.
type CatalogUseCase struct {
	properties repository.PropertyRepository
	categories repository.CategoryRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(properties repository.PropertyRepository, categories repository.CategoryRepository) *CatalogUseCase {
	return &CatalogUseCase{properties: properties, categories: categories}
}

// GetProperty obtiene una propiedad por id. Devuelve domain.ErrNotFound si no existe.
func (uc *CatalogUseCase) GetProperty(ctx context.Context, id int64) (*dto.PropertyResponse, error) {
	p, err := uc.properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPropertyResponse(p), nil
}

// GetCategory obtiene una categoría por id. Devuelve domain.ErrNotFound si no existe.
func (uc *CatalogUseCase) GetCategory(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// Stats conteos de propiedades, categorías y verticales.
func (uc *CatalogUseCase) Stats(ctx context.Context) (*dto.CatalogStats, error) {
	var (
		out dto.CatalogStats
		err error
	)
	if out.Properties, err = uc.properties.Count(ctx); err != nil {
		return nil, err
	}
	if out.Categories, err = uc.categories.Count(ctx, repository.CategoryFilter{}); err != nil {
		return nil, err
	}
	if out.Verticals, err = uc.categories.Count(ctx, repository.CategoryFilter{VerticalsOnly: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

func toPropertyResponse(p *entity.Property) *dto.PropertyResponse {
	values := make([]dto.PropertyValueResponse, 0, len(p.Values))
	for _, v := range p.Values {
		values = append(values, dto.PropertyValueResponse(v))
	}
	return &dto.PropertyResponse{
		ID:          p.ID,
		Name:        p.Name,
		FriendlyID:  p.FriendlyID,
		Handle:      p.Handle,
		Description: p.Description,
		Values:      values,
		CreatedAt:   p.CreatedAt,
	}
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:         c.ID,
		Name:       c.Name,
		ParentID:   c.ParentID,
		Vertical:   c.IsVertical(),
		Children:   orEmpty(c.Children),
		Attributes: orEmpty(c.Attributes),
		CreatedAt:  c.CreatedAt,
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
