package dto

import "time"

// PropertyValueResponse valor de una propiedad.
type PropertyValueResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	FriendlyID string `json:"friendly_id"`
	Handle     string `json:"handle"`
}

// PropertyResponse propiedad almacenada.
type PropertyResponse struct {
	ID          int64                   `json:"id"`
	Name        string                  `json:"name"`
	FriendlyID  string                  `json:"friendly_id"`
	Handle      string                  `json:"handle"`
	Description string                  `json:"description,omitempty"`
	Values      []PropertyValueResponse `json:"values"`
	CreatedAt   time.Time               `json:"created_at"`
}

// CategoryResponse categoría almacenada. ParentID vacío indica vertical.
type CategoryResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ParentID   string    `json:"parent_id,omitempty"`
	Vertical   bool      `json:"vertical"`
	Children   []string  `json:"children"`
	Attributes []string  `json:"attributes"`
	CreatedAt  time.Time `json:"created_at"`
}

// CatalogStats conteos del catálogo.
type CatalogStats struct {
	Properties int `json:"properties"`
	Categories int `json:"categories"`
	Verticals  int `json:"verticals"`
}
