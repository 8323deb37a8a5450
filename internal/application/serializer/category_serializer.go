package serializer

import (
	"fmt"

	"github.com/BrandoCommando/product-taxonomy/internal/domain"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/entity"
)

// Claves propias de una definición de categoría.
const (
	keyParentID   = "parent_id"
	keyChildren   = "children"
	keyAttributes = "attributes"
)

// CategorySerializer es el códec de definiciones de categorías (un archivo por vertical).
type CategorySerializer struct{}

// NewCategorySerializer construye el códec.
func NewCategorySerializer() CategorySerializer {
	return CategorySerializer{}
}

// Deserialize valida la definición y construye la Category. parent_id ausente o null
// produce una vertical. Los ids enteros (id, parent_id, children) se normalizan a texto.
func (CategorySerializer) Deserialize(raw Raw) (*entity.Category, error) {
	r := &fieldReader{kind: domain.KindCategory, raw: raw}
	v, ok := r.lookup(keyID)
	if !ok {
		return nil, r.fail(keyID, domain.ErrMissingIdentifier)
	}
	id, ok := scalarID(v)
	if !ok {
		r.id = idString(v)
		return nil, r.fail(keyID, fmt.Errorf("%w: se esperaba texto o entero, llegó %T", domain.ErrTypeMismatch, v))
	}
	if id == "" {
		return nil, r.fail(keyID, domain.ErrMissingIdentifier)
	}
	r.id = id

	name, err := r.requiredString(keyName)
	if err != nil {
		return nil, err
	}
	parentID, err := r.optionalID(keyParentID)
	if err != nil {
		return nil, err
	}
	if parentID == id {
		return nil, r.fail(keyParentID, domain.ErrUnresolvedParent)
	}
	children, err := r.optionalIDs(keyChildren)
	if err != nil {
		return nil, err
	}
	attributes, err := r.optionalStrings(keyAttributes)
	if err != nil {
		return nil, err
	}

	return &entity.Category{
		ID:         id,
		Name:       name,
		ParentID:   parentID,
		Children:   children,
		Attributes: attributes,
	}, nil
}

// Serialize proyecta la Category a su forma de definición.
func (CategorySerializer) Serialize(c *entity.Category) Raw {
	raw := Raw{
		keyID:         c.ID,
		keyName:       c.Name,
		keyChildren:   toAnyList(c.Children),
		keyAttributes: toAnyList(c.Attributes),
	}
	if c.ParentID != "" {
		raw[keyParentID] = c.ParentID
	}
	return raw
}

func toAnyList(items []string) []any {
	out := make([]any, 0, len(items))
	for _, s := range items {
		out = append(out, s)
	}
	return out
}
