package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/BrandoCommando/product-taxonomy/internal/domain"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/entity"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/repository"
)

var _ repository.PropertyRepository = (*PropertyRepo)(nil)

type propertyDoc struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	FriendlyID  string         `json:"friendly_id"`
	Handle      string         `json:"handle"`
	Description string         `json:"description,omitempty"`
	Values      []propertyItem `json:"values,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

type propertyItem struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	FriendlyID string `json:"friendly_id"`
	Handle     string `json:"handle"`
}

// PropertyRepo propiedades sobre Redis. Create es atómico por registro (script Lua).
type PropertyRepo struct {
	client redis.UniversalClient
	keys   keys
}

// NewPropertyRepository construye el repositorio con el prefijo de claves dado.
func NewPropertyRepository(client redis.UniversalClient, prefix string) *PropertyRepo {
	return &PropertyRepo{client: client, keys: keys{prefix: prefix}}
}

// Create guarda la propiedad si su id no existe.
func (r *PropertyRepo) Create(ctx context.Context, property *entity.Property) error {
	doc := propertyDoc{
		ID: property.ID, Name: property.Name, FriendlyID: property.FriendlyID,
		Handle: property.Handle, Description: property.Description, CreatedAt: property.CreatedAt,
	}
	for _, v := range property.Values {
		doc.Values = append(doc.Values, propertyItem(v))
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode property: %w", err)
	}

	id := strconv.FormatInt(property.ID, 10)
	res, err := createScript.Run(ctx, r.client,
		[]string{r.keys.property(id), r.keys.properties(), "", ""},
		id, payload,
	).Int()
	if err != nil {
		return fmt.Errorf("insert property: %w", err)
	}
	if res == 0 {
		return domain.ErrDuplicateIdentifier
	}
	return nil
}

// GetByID obtiene la propiedad por id.
func (r *PropertyRepo) GetByID(ctx context.Context, id int64) (*entity.Property, error) {
	payload, err := r.client.Get(ctx, r.keys.property(strconv.FormatInt(id, 10))).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}
	var doc propertyDoc
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decode property %d: %w", id, err)
	}
	p := &entity.Property{
		ID: doc.ID, Name: doc.Name, FriendlyID: doc.FriendlyID, Handle: doc.Handle,
		Description: doc.Description, CreatedAt: doc.CreatedAt,
	}
	for _, v := range doc.Values {
		p.Values = append(p.Values, entity.PropertyValue(v))
	}
	return p, nil
}

// Count cardinalidad del índice de propiedades.
func (r *PropertyRepo) Count(ctx context.Context) (int, error) {
	n, err := r.client.SCard(ctx, r.keys.properties()).Result()
	if err != nil {
		return 0, fmt.Errorf("count properties: %w", err)
	}
	return int(n), nil
}

// DeleteAll borra todas las propiedades y su índice.
func (r *PropertyRepo) DeleteAll(ctx context.Context) error {
	if err := deleteIndexed(ctx, r.client, r.keys.properties(), r.keys.property); err != nil {
		return fmt.Errorf("delete properties: %w", err)
	}
	return nil
}
