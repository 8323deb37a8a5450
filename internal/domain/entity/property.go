package entity

import (
	"slices"
	"time"
)

// Property representa un atributo del catálogo (ej. Color) con sus valores enumerados.
// El ID lo asigna el archivo de definiciones y nunca se genera en la importación.
type Property struct {
	ID          int64
	Name        string
	FriendlyID  string // slug estable que usan las categorías para referenciarla
	Handle      string
	Description string
	Values      []PropertyValue // orden del archivo de definiciones
	CreatedAt   time.Time
}

// PropertyValue es un valor permitido de una Property (ej. Color → Negro).
type PropertyValue struct {
	ID         int64
	Name       string
	FriendlyID string
	Handle     string
}

// Equal compara los campos de la definición; CreatedAt queda fuera.
func (p *Property) Equal(o *Property) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.ID == o.ID &&
		p.Name == o.Name &&
		p.FriendlyID == o.FriendlyID &&
		p.Handle == o.Handle &&
		p.Description == o.Description &&
		slices.Equal(p.Values, o.Values)
}
