package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/BrandoCommando/product-taxonomy/internal/domain"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/entity"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste la categoría. Un parent_id que no existe en la tabla devuelve ErrUnresolvedParent.
func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	var parent *string
	if !category.IsVertical() {
		parent = &category.ParentID
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO categories (id, name, parent_id, children, attributes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		category.ID, category.Name, parent, nonNil(category.Children), nonNil(category.Attributes), category.CreatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicateIdentifier
		case isForeignKeyViolation(err):
			return fmt.Errorf("%w: %s", domain.ErrUnresolvedParent, category.ParentID)
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por id.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var (
		c      entity.Category
		parent *string
	)
	err := r.q.QueryRow(ctx, `
		SELECT id, name, parent_id, children, attributes, created_at
		FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &parent, &c.Children, &c.Attributes, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	if parent != nil {
		c.ParentID = *parent
	}
	return &c, nil
}

// Count cuenta categorías; con VerticalsOnly solo las que no tienen padre.
func (r *CategoryRepo) Count(ctx context.Context, filter repository.CategoryFilter) (int, error) {
	query := `SELECT count(*) FROM categories`
	if filter.VerticalsOnly {
		query += ` WHERE parent_id IS NULL`
	}
	var n int
	if err := r.q.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}

// DeleteAll elimina todas las categorías.
func (r *CategoryRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("delete categories: %w", err)
	}
	return nil
}
