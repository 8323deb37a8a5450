package serializer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandoCommando/product-taxonomy/internal/application/serializer"
	"github.com/BrandoCommando/product-taxonomy/internal/domain"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/entity"
)

func clothingRaw() serializer.Raw {
	return serializer.Raw{
		"id":         "aa-1",
		"name":       "Ropa",
		"parent_id":  "aa",
		"children":   []any{"aa-1-1", "aa-1-2"},
		"attributes": []any{"color", "talla"},
	}
}

func TestCategoryDeserialize_Hija(t *testing.T) {
	got, err := serializer.NewCategorySerializer().Deserialize(clothingRaw())
	require.NoError(t, err)

	want := &entity.Category{
		ID:         "aa-1",
		Name:       "Ropa",
		ParentID:   "aa",
		Children:   []string{"aa-1-1", "aa-1-2"},
		Attributes: []string{"color", "talla"},
	}
	assert.True(t, want.Equal(got))
	assert.False(t, got.IsVertical())
}

func TestCategoryDeserialize_Vertical(t *testing.T) {
	for name, parent := range map[string]any{"sin parent_id": nil, "parent_id vacío": ""} {
		t.Run(name, func(t *testing.T) {
			raw := serializer.Raw{"id": "aa", "name": "Vestuario y accesorios"}
			if parent != nil {
				raw["parent_id"] = parent
			}
			got, err := serializer.NewCategorySerializer().Deserialize(raw)
			require.NoError(t, err)
			assert.True(t, got.IsVertical())
			assert.Empty(t, got.Children)
		})
	}
}

func TestCategoryDeserialize_AceptaListasTipadas(t *testing.T) {
	raw := clothingRaw()
	raw["children"] = []string{"aa-1-1"}

	got, err := serializer.NewCategorySerializer().Deserialize(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"aa-1-1"}, got.Children)
}

func TestCategoryDeserialize_IdsEnteros(t *testing.T) {
	raw := serializer.Raw{
		"id":        123,
		"name":      "Ropa",
		"parent_id": 12,
		"children":  []any{1231, "1232"},
	}
	s := serializer.NewCategorySerializer()
	got, err := s.Deserialize(raw)
	require.NoError(t, err)
	assert.Equal(t, "123", got.ID)
	assert.Equal(t, "12", got.ParentID)
	assert.Equal(t, []string{"1231", "1232"}, got.Children)

	again, err := s.Deserialize(s.Serialize(got))
	require.NoError(t, err)
	assert.True(t, got.Equal(again))
}

func TestCategoryDeserialize_Errores(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(serializer.Raw)
		sentinel error
		id       string
		field    string
	}{
		{"sin id", func(r serializer.Raw) { delete(r, "id") }, domain.ErrMissingIdentifier, "", "id"},
		{"id vacío", func(r serializer.Raw) { r["id"] = "" }, domain.ErrMissingIdentifier, "", "id"},
		{"id decimal", func(r serializer.Raw) { r["id"] = 10.5 }, domain.ErrTypeMismatch, "10.5", "id"},
		{"id booleano", func(r serializer.Raw) { r["id"] = true }, domain.ErrTypeMismatch, "true", "id"},
		{"sin name", func(r serializer.Raw) { delete(r, "name") }, domain.ErrMissingField, "aa-1", "name"},
		{"parent_id no escalar", func(r serializer.Raw) { r["parent_id"] = []any{"aa"} }, domain.ErrTypeMismatch, "aa-1", "parent_id"},
		{"child no escalar", func(r serializer.Raw) { r["children"] = []any{"aa-1-1", map[string]any{}} }, domain.ErrTypeMismatch, "aa-1", "children[1]"},
		{"padre de sí misma", func(r serializer.Raw) { r["parent_id"] = "aa-1" }, domain.ErrUnresolvedParent, "aa-1", "parent_id"},
		{"children no es lista", func(r serializer.Raw) { r["children"] = "aa-1-1" }, domain.ErrTypeMismatch, "aa-1", "children"},
		{"attribute no es texto", func(r serializer.Raw) { r["attributes"] = []any{"color", 5} }, domain.ErrTypeMismatch, "aa-1", "attributes[1]"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := clothingRaw()
			tc.mutate(raw)
			got, err := serializer.NewCategorySerializer().Deserialize(raw)
			assert.Nil(t, got)
			requireDefinitionError(t, err, tc.sentinel, tc.id, tc.field)
		})
	}
}

func TestCategoryRoundTrip(t *testing.T) {
	s := serializer.NewCategorySerializer()
	for _, raw := range []serializer.Raw{
		clothingRaw(),
		{"id": "aa", "name": "Vestuario y accesorios"},
	} {
		original, err := s.Deserialize(raw)
		require.NoError(t, err)

		again, err := s.Deserialize(s.Serialize(original))
		require.NoError(t, err)
		assert.True(t, original.Equal(again), "categoría %s", original.ID)
	}
}
