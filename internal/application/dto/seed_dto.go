package dto

// SeedRequest opciones de una siembra.
type SeedRequest struct {
	Reset  bool `json:"reset"`
	Verify bool `json:"verify"`
}

// ImportSummary resumen de un lote importado.
type ImportSummary struct {
	RunID      string   `json:"run_id"`
	Records    int      `json:"records"`
	Verticals  int      `json:"verticals,omitempty"`
	DurationMs int64    `json:"duration_ms"`
	Warnings   []string `json:"warnings,omitempty"`
}

// SeedResponse resultado de la siembra; Verification solo si se pidió.
type SeedResponse struct {
	Reset        bool            `json:"reset"`
	Properties   ImportSummary   `json:"properties"`
	Categories   ImportSummary   `json:"categories"`
	Verification *VerifyResponse `json:"verification,omitempty"`
}

// MismatchResponse diferencia detectada. ID vacío es una diferencia de conteo.
type MismatchResponse struct {
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
}

// ReportResponse verificación de un tipo de entidad.
type ReportResponse struct {
	Expected          int                `json:"expected"`
	Stored            int                `json:"stored"`
	Checked           int                `json:"checked"`
	ExpectedVerticals int                `json:"expected_verticals,omitempty"`
	StoredVerticals   int                `json:"stored_verticals,omitempty"`
	Mismatches        []MismatchResponse `json:"mismatches"`
}

// VerifyResponse verificación completa del catálogo.
type VerifyResponse struct {
	OK         bool           `json:"ok"`
	Properties ReportResponse `json:"properties"`
	Categories ReportResponse `json:"categories"`
}
