package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/BrandoCommando/product-taxonomy/internal/domain"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/entity"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo categorías sobre SQLite. children y attributes se guardan como arreglos JSON.
type CategoryRepo struct {
	q DBTX
}

// NewCategoryRepository construye el repositorio.
func NewCategoryRepository(q DBTX) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create inserta la categoría; un padre inexistente devuelve ErrUnresolvedParent.
func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	children, err := encodeList(category.Children)
	if err != nil {
		return err
	}
	attributes, err := encodeList(category.Attributes)
	if err != nil {
		return err
	}
	var parent sql.NullString
	if !category.IsVertical() {
		parent = sql.NullString{String: category.ParentID, Valid: true}
	}

	_, err = r.q.ExecContext(ctx, `
		INSERT INTO categories (id, name, parent_id, children, attributes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		category.ID, category.Name, parent, children, attributes, category.CreatedAt.UnixNano(),
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
		c                    entity.Category
		parent               sql.NullString
		children, attributes string
		created              int64
	)
	err := r.q.QueryRowContext(ctx, `
		SELECT id, name, parent_id, children, attributes, created_at
		FROM categories WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &parent, &children, &attributes, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	c.ParentID = parent.String
	c.CreatedAt = time.Unix(0, created).UTC()
	if c.Children, err = decodeList(children); err != nil {
		return nil, fmt.Errorf("decode children: %w", err)
	}
	if c.Attributes, err = decodeList(attributes); err != nil {
		return nil, fmt.Errorf("decode attributes: %w", err)
	}
	return &c, nil
}

// Count cuenta categorías; con VerticalsOnly solo las raíces.
func (r *CategoryRepo) Count(ctx context.Context, filter repository.CategoryFilter) (int, error) {
	query := `SELECT count(*) FROM categories`
	if filter.VerticalsOnly {
		query += ` WHERE parent_id IS NULL`
	}
	var n int
	if err := r.q.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}

// DeleteAll borra todas las categorías.
func (r *CategoryRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("delete categories: %w", err)
	}
	return nil
}

func encodeList(s []string) (string, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(b), nil
}

func decodeList(s string) ([]string, error) {
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}
