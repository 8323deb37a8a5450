package seed_test

import (
	"fmt"

	"github.com/BrandoCommando/product-taxonomy/internal/application/serializer"
)

// propertyDefinitions genera n definiciones con ids no consecutivos para detectar
// cualquier reasignación de identificadores.
func propertyDefinitions(n int) []serializer.Raw {
	out := make([]serializer.Raw, 0, n)
	for i := 0; i < n; i++ {
		id := 1000 + i*7
		slug := fmt.Sprintf("atributo_%d", i)
		out = append(out, serializer.Raw{
			"id":          id,
			"name":        fmt.Sprintf("Atributo %d", i),
			"friendly_id": slug,
			"values": []any{
				map[string]any{"id": id*10 + 1, "name": "Opción A", "friendly_id": slug + "__a"},
				map[string]any{"id": id*10 + 2, "name": "Opción B", "friendly_id": slug + "__b"},
			},
		})
	}
	return out
}

// categoryFiles devuelve dos verticales: Vestuario (3 categorías) y Hogar (5).
func categoryFiles() [][]serializer.Raw {
	return [][]serializer.Raw{
		{
			{"id": "aa", "name": "Vestuario y accesorios", "children": []any{"aa-1", "aa-2"}, "attributes": []any{"atributo_0"}},
			{"id": "aa-1", "name": "Ropa", "parent_id": "aa", "attributes": []any{"atributo_0", "atributo_1"}},
			{"id": "aa-2", "name": "Joyería", "parent_id": "aa"},
		},
		{
			{"id": "hg", "name": "Hogar y jardín", "children": []any{"hg-1", "hg-2"}},
			{"id": "hg-1", "name": "Cocina", "parent_id": "hg", "children": []any{"hg-1-1"}},
			{"id": "hg-1-1", "name": "Ollas", "parent_id": "hg-1", "attributes": []any{"atributo_5"}},
			{"id": "hg-2", "name": "Baño", "parent_id": "hg", "children": []any{"hg-2-1"}},
			{"id": "hg-2-1", "name": "Toallas", "parent_id": "hg-2"},
		},
	}
}
