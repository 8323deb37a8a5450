package entity

import (
	"slices"
	"time"
)

// Category representa un nodo del árbol de categorías. ParentID vacío marca una vertical (raíz).
// El padre se guarda por ID, nunca como puntero.
type Category struct {
	ID         string
	Name       string
	ParentID   string   // vacío si es vertical
	Children   []string // IDs de hijos en el orden del archivo
	Attributes []string // friendly_id de las propiedades asociadas
	CreatedAt  time.Time
}

// IsVertical indica si la categoría es raíz de su árbol.
func (c *Category) IsVertical() bool {
	return c.ParentID == ""
}

// Equal compara los campos de la definición; CreatedAt queda fuera.
// Una lista nil y una vacía se consideran iguales.
func (c *Category) Equal(o *Category) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.ID == o.ID &&
		c.Name == o.Name &&
		c.ParentID == o.ParentID &&
		slices.Equal(c.Children, o.Children) &&
		slices.Equal(c.Attributes, o.Attributes)
}
