package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DefinitionErrorResponse error de importación con la definición que lo causó.
type DefinitionErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Kind    string `json:"kind"`
	ID      string `json:"id,omitempty"`
	Field   string `json:"field,omitempty"`
}
