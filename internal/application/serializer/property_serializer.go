package serializer

import (
	"fmt"
	"strconv"

	"github.com/BrandoCommando/product-taxonomy/internal/domain"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/entity"
)

// Claves de una definición de propiedad.
const (
	keyID          = "id"
	keyName        = "name"
	keyFriendlyID  = "friendly_id"
	keyHandle      = "handle"
	keyDescription = "description"
	keyValues      = "values"
)

// PropertySerializer es el códec de definiciones de propiedades (attributes.yml).
type PropertySerializer struct{}

// NewPropertySerializer construye el códec.
func NewPropertySerializer() PropertySerializer {
	return PropertySerializer{}
}

// Deserialize valida la definición y construye la Property completa con sus valores.
// Nunca devuelve un objeto parcial: ante cualquier campo inválido retorna *domain.DefinitionError.
func (PropertySerializer) Deserialize(raw Raw) (*entity.Property, error) {
	r := &fieldReader{kind: domain.KindProperty, raw: raw}
	if v, ok := raw[keyID]; ok {
		r.id = idString(v)
	}

	id, err := r.requiredInt(keyID, domain.ErrMissingIdentifier)
	if err != nil {
		return nil, err
	}
	r.id = strconv.FormatInt(id, 10)

	name, err := r.requiredString(keyName)
	if err != nil {
		return nil, err
	}
	friendlyID, err := r.requiredString(keyFriendlyID)
	if err != nil {
		return nil, err
	}
	handle, err := r.optionalString(keyHandle)
	if err != nil {
		return nil, err
	}
	if handle == "" {
		handle = Handleize(name)
	}
	description, err := r.optionalString(keyDescription)
	if err != nil {
		return nil, err
	}

	records, err := r.optionalRecords(keyValues)
	if err != nil {
		return nil, err
	}
	var values []entity.PropertyValue
	if len(records) > 0 {
		values = make([]entity.PropertyValue, 0, len(records))
		seen := make(map[int64]struct{}, len(records))
		for i, rec := range records {
			vr := r.nested(keyValues+"["+strconv.Itoa(i)+"].", rec)
			v, err := deserializeValue(vr)
			if err != nil {
				return nil, err
			}
			// Los ids de valor son únicos dentro de su propiedad.
			if _, dup := seen[v.ID]; dup {
				return nil, vr.fail(keyID, fmt.Errorf("%w: valor %d", domain.ErrDuplicateIdentifier, v.ID))
			}
			seen[v.ID] = struct{}{}
			values = append(values, v)
		}
	}

	return &entity.Property{
		ID:          id,
		Name:        name,
		FriendlyID:  friendlyID,
		Handle:      handle,
		Description: description,
		Values:      values,
	}, nil
}

func deserializeValue(r *fieldReader) (entity.PropertyValue, error) {
	id, err := r.requiredInt(keyID, domain.ErrMissingIdentifier)
	if err != nil {
		return entity.PropertyValue{}, err
	}
	name, err := r.requiredString(keyName)
	if err != nil {
		return entity.PropertyValue{}, err
	}
	friendlyID, err := r.requiredString(keyFriendlyID)
	if err != nil {
		return entity.PropertyValue{}, err
	}
	handle, err := r.optionalString(keyHandle)
	if err != nil {
		return entity.PropertyValue{}, err
	}
	if handle == "" {
		handle = Handleize(name)
	}
	return entity.PropertyValue{ID: id, Name: name, FriendlyID: friendlyID, Handle: handle}, nil
}

// Serialize proyecta la Property a su forma de definición. Los handles se escriben
// explícitos para que la proyección no dependa de la derivación.
func (PropertySerializer) Serialize(p *entity.Property) Raw {
	values := make([]any, 0, len(p.Values))
	for _, v := range p.Values {
		values = append(values, map[string]any{
			keyID:         v.ID,
			keyName:       v.Name,
			keyFriendlyID: v.FriendlyID,
			keyHandle:     v.Handle,
		})
	}
	raw := Raw{
		keyID:         p.ID,
		keyName:       p.Name,
		keyFriendlyID: p.FriendlyID,
		keyHandle:     p.Handle,
		keyValues:     values,
	}
	if p.Description != "" {
		raw[keyDescription] = p.Description
	}
	return raw
}
