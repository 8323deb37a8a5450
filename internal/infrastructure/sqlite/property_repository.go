package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/BrandoCommando/product-taxonomy/internal/domain"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/entity"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/repository"
)

var _ repository.PropertyRepository = (*PropertyRepo)(nil)

// PropertyRepo propiedades sobre SQLite. q puede ser la base o una transacción.
type PropertyRepo struct {
	q DBTX
}

// NewPropertyRepository construye el repositorio.
func NewPropertyRepository(q DBTX) *PropertyRepo {
	return &PropertyRepo{q: q}
}

// Create inserta la propiedad y sus valores de forma atómica.
func (r *PropertyRepo) Create(ctx context.Context, property *entity.Property) error {
	err := atomic(ctx, r.q, "property_create", func(q DBTX) error {
		_, err := q.ExecContext(ctx, `
			INSERT INTO properties (id, name, friendly_id, handle, description, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			property.ID, property.Name, property.FriendlyID, property.Handle, property.Description, property.CreatedAt.UnixNano(),
		)
		if err != nil {
			return err
		}
		for i, v := range property.Values {
			_, err := q.ExecContext(ctx, `
				INSERT INTO property_values (property_id, position, id, name, friendly_id, handle)
				VALUES (?, ?, ?, ?, ?, ?)`,
				property.ID, i, v.ID, v.Name, v.FriendlyID, v.Handle,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateIdentifier
		}
		return fmt.Errorf("insert property: %w", err)
	}
	return nil
}

// GetByID obtiene la propiedad con sus valores en orden.
func (r *PropertyRepo) GetByID(ctx context.Context, id int64) (*entity.Property, error) {
	var (
		p       entity.Property
		created int64
	)
	err := r.q.QueryRowContext(ctx, `
		SELECT id, name, friendly_id, handle, description, created_at
		FROM properties WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.FriendlyID, &p.Handle, &p.Description, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get property: %w", err)
	}
	p.CreatedAt = time.Unix(0, created).UTC()

	rows, err := r.q.QueryContext(ctx, `
		SELECT id, name, friendly_id, handle
		FROM property_values WHERE property_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list property values: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var v entity.PropertyValue
		if err := rows.Scan(&v.ID, &v.Name, &v.FriendlyID, &v.Handle); err != nil {
			return nil, fmt.Errorf("scan property value: %w", err)
		}
		p.Values = append(p.Values, v)
	}
	return &p, rows.Err()
}

// Count cantidad de propiedades.
func (r *PropertyRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT count(*) FROM properties`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count properties: %w", err)
	}
	return n, nil
}

// DeleteAll borra todas las propiedades; los valores caen en cascada.
func (r *PropertyRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM properties`); err != nil {
		return fmt.Errorf("delete properties: %w", err)
	}
	return nil
}
