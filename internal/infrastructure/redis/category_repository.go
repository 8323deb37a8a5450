package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/BrandoCommando/product-taxonomy/internal/domain"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/entity"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

type categoryDoc struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ParentID   string    `json:"parent_id,omitempty"`
	Children   []string  `json:"children,omitempty"`
	Attributes []string  `json:"attributes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// CategoryRepo categorías sobre Redis; las verticales se indexan aparte.
type CategoryRepo struct {
	client redis.UniversalClient
	keys   keys
}

// NewCategoryRepository construye el repositorio con el prefijo de claves dado.
func NewCategoryRepository(client redis.UniversalClient, prefix string) *CategoryRepo {
	return &CategoryRepo{client: client, keys: keys{prefix: prefix}}
}

// Create guarda la categoría si su id no existe y su padre (si tiene) ya está guardado.
func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	payload, err := json.Marshal(categoryDoc{
		ID: category.ID, Name: category.Name, ParentID: category.ParentID,
		Children: category.Children, Attributes: category.Attributes, CreatedAt: category.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("encode category: %w", err)
	}

	parentKey, verticals := "", r.keys.verticals()
	if !category.IsVertical() {
		parentKey, verticals = r.keys.category(category.ParentID), ""
	}
	res, err := createScript.Run(ctx, r.client,
		[]string{r.keys.category(category.ID), r.keys.categories(), parentKey, verticals},
		category.ID, payload,
	).Int()
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	switch res {
	case 0:
		return domain.ErrDuplicateIdentifier
	case -1:
		return fmt.Errorf("%w: %s", domain.ErrUnresolvedParent, category.ParentID)
	}
	return nil
}

// GetByID obtiene la categoría por id.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	payload, err := r.client.Get(ctx, r.keys.category(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	var doc categoryDoc
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decode category %s: %w", id, err)
	}
	return &entity.Category{
		ID: doc.ID, Name: doc.Name, ParentID: doc.ParentID,
		Children: doc.Children, Attributes: doc.Attributes, CreatedAt: doc.CreatedAt,
	}, nil
}

// Count cardinalidad del índice de categorías o del de verticales.
func (r *CategoryRepo) Count(ctx context.Context, filter repository.CategoryFilter) (int, error) {
	index := r.keys.categories()
	if filter.VerticalsOnly {
		index = r.keys.verticals()
	}
	n, err := r.client.SCard(ctx, index).Result()
	if err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return int(n), nil
}

// DeleteAll borra todas las categorías y ambos índices.
func (r *CategoryRepo) DeleteAll(ctx context.Context) error {
	if err := deleteIndexed(ctx, r.client, r.keys.categories(), r.keys.category, r.keys.verticals()); err != nil {
		return fmt.Errorf("delete categories: %w", err)
	}
	return nil
}
