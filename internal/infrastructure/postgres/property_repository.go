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

var _ repository.PropertyRepository = (*PropertyRepo)(nil)

// PropertyRepo implementación del puerto PropertyRepository sobre PostgreSQL (usable con pool o tx).
type PropertyRepo struct {
	q Querier
}

// NewPropertyRepository construye el adaptador de persistencia para propiedades. Pasar pool o tx (Querier).
func NewPropertyRepository(q Querier) *PropertyRepo {
	return &PropertyRepo{q: q}
}

// Create persiste la propiedad con su id y sus valores en orden. La fila y sus valores
// se escriben en una transacción (o savepoint si q ya es una tx).
func (r *PropertyRepo) Create(ctx context.Context, property *entity.Property) error {
	err := pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO properties (id, name, friendly_id, handle, description, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			property.ID, property.Name, property.FriendlyID, property.Handle, property.Description, property.CreatedAt,
		)
		if err != nil {
			return err
		}
		if len(property.Values) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for i, v := range property.Values {
			batch.Queue(`
				INSERT INTO property_values (property_id, position, id, name, friendly_id, handle)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				property.ID, i, v.ID, v.Name, v.FriendlyID, v.Handle,
			)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateIdentifier
		}
		return fmt.Errorf("insert property: %w", err)
	}
	return nil
}

// GetByID obtiene una propiedad con sus valores ordenados.
func (r *PropertyRepo) GetByID(ctx context.Context, id int64) (*entity.Property, error) {
	var p entity.Property
	err := r.q.QueryRow(ctx, `
		SELECT id, name, friendly_id, handle, description, created_at
		FROM properties WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.FriendlyID, &p.Handle, &p.Description, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get property: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, name, friendly_id, handle
		FROM property_values WHERE property_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list property values: %w", err)
	}
	p.Values, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.PropertyValue, error) {
		var v entity.PropertyValue
		err := row.Scan(&v.ID, &v.Name, &v.FriendlyID, &v.Handle)
		return v, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan property value: %w", err)
	}
	if len(p.Values) == 0 {
		p.Values = nil
	}
	return &p, nil
}

// Count cantidad de propiedades.
func (r *PropertyRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM properties`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count properties: %w", err)
	}
	return n, nil
}

// DeleteAll elimina todas las propiedades; los valores caen en cascada.
func (r *PropertyRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM properties`); err != nil {
		return fmt.Errorf("delete properties: %w", err)
	}
	return nil
}
