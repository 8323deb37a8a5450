package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound = errors.New("recurso no encontrado")
	ErrConflict = errors.New("hay otra siembra en curso")

	// Errores de importación de definiciones.
	ErrMissingIdentifier   = errors.New("falta el identificador")
	ErrMissingField        = errors.New("falta un campo obligatorio")
	ErrTypeMismatch        = errors.New("tipo de campo inesperado")
	ErrUnresolvedParent    = errors.New("categoría padre no importada")
	ErrDuplicateIdentifier = errors.New("identificador duplicado")
)

// Tipos de entidad del catálogo.
const (
	KindProperty = "property"
	KindCategory = "category"
)

// DefinitionError describe el fallo de una definición concreta: qué entidad,
// qué identificador (vacío si no se pudo leer) y qué campo.
type DefinitionError struct {
	Kind  string
	ID    string
	Field string
	Err   error
}

func (e *DefinitionError) Error() string {
	id := e.ID
	if id == "" {
		id = "<sin id>"
	}
	if e.Field == "" {
		return fmt.Sprintf("%s %s: %v", e.Kind, id, e.Err)
	}
	return fmt.Sprintf("%s %s: campo %q: %v", e.Kind, id, e.Field, e.Err)
}

func (e *DefinitionError) Unwrap() error { return e.Err }
