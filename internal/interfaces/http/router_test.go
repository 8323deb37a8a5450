package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandoCommando/product-taxonomy/internal/application/dto"
	"github.com/BrandoCommando/product-taxonomy/internal/application/seed"
	"github.com/BrandoCommando/product-taxonomy/internal/application/usecase"
	"github.com/BrandoCommando/product-taxonomy/internal/infrastructure/definitions"
	"github.com/BrandoCommando/product-taxonomy/internal/infrastructure/memory"
	apphttp "github.com/BrandoCommando/product-taxonomy/internal/interfaces/http"
	pkgjwt "github.com/BrandoCommando/product-taxonomy/pkg/jwt"
	"github.com/BrandoCommando/product-taxonomy/pkg/metrics"
)

var catalogFS = fstest.MapFS{
	"attributes/attributes.yml": {Data: []byte(`
- id: 3
  name: Color
  friendly_id: color
  values:
    - {id: 31, name: Rojo, friendly_id: color__rojo}
`)},
	"categories/aa.yml": {Data: []byte(`
- id: aa
  name: Vestuario
  children: [aa-1]
- id: aa-1
  name: Ropa
  parent_id: aa
`)},
}

func buildAPI(t *testing.T, fsys fstest.MapFS) *fiber.App {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	catalog := memory.NewCatalog()

	im := seed.NewImporter(catalog.Properties(), catalog.Categories(), seed.WithTxRunner(catalog), seed.WithMetrics(m))
	v := seed.NewVerifier(catalog.Properties(), catalog.Categories(), zerolog.Nop(), m)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AppName:   "product-taxonomy",
		CatalogUC: usecase.NewCatalogUseCase(catalog.Properties(), catalog.Categories()),
		SeedUC:    usecase.NewSeedUseCase(definitions.NewFSSource(fsys), im, v, zerolog.Nop()),
		JWTSecret: testJWTSecret,
		JWTIssuer: testIssuer,
		Gatherer:  reg,
	})
	return app
}

func send(t *testing.T, app *fiber.App, method, path, auth, body string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestAPI_SembrarYConsultar(t *testing.T) {
	app := buildAPI(t, catalogFS)
	admin := tokenForRole(t, pkgjwt.RoleAdmin)

	resp, _ := send(t, app, http.MethodPost, "/api/seed", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = send(t, app, http.MethodPost, "/api/seed", tokenForRole(t, "lector"), "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := send(t, app, http.MethodPost, "/api/seed", admin, `{"verify": true}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var seeded dto.SeedResponse
	require.NoError(t, json.Unmarshal(body, &seeded))
	assert.Equal(t, 1, seeded.Properties.Records)
	assert.Equal(t, 2, seeded.Categories.Records)
	require.NotNil(t, seeded.Verification)
	assert.True(t, seeded.Verification.OK)

	resp, body = send(t, app, http.MethodGet, "/api/properties/3", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var prop dto.PropertyResponse
	require.NoError(t, json.Unmarshal(body, &prop))
	assert.Equal(t, "color", prop.Handle)
	assert.Equal(t, "rojo", prop.Values[0].Handle)

	resp, body = send(t, app, http.MethodGet, "/api/categories/aa-1", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cat dto.CategoryResponse
	require.NoError(t, json.Unmarshal(body, &cat))
	assert.Equal(t, "aa", cat.ParentID)
	assert.False(t, cat.Vertical)

	resp, body = send(t, app, http.MethodGet, "/api/catalog/stats", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"properties":1,"categories":2,"verticals":1}`, string(body))

	// Resembrar sin reset choca con los ids existentes.
	resp, body = send(t, app, http.MethodPost, "/api/seed", admin, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "DUPLICATE_IDENTIFIER")

	resp, body = send(t, app, http.MethodPost, "/api/seed/verify", admin, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"ok":true`)

	resp, body = send(t, app, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `taxonomy_definitions_imported_total{kind="property"} 1`)
	assert.Contains(t, string(body), `taxonomy_import_failures_total{kind="property",reason="duplicate_identifier"} 1`)
}

func TestAPI_ErroresDeConsulta(t *testing.T) {
	app := buildAPI(t, catalogFS)

	resp, _ := send(t, app, http.MethodGet, "/api/properties/color", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := send(t, app, http.MethodGet, "/api/categories/zz", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "NOT_FOUND")

	resp, _ = send(t, app, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_DefinicionInvalida(t *testing.T) {
	app := buildAPI(t, fstest.MapFS{
		"attributes/attributes.yml": {Data: []byte("- id: 3\n  friendly_id: color\n")},
		"categories/aa.yml":         {Data: []byte("- id: aa\n  name: Vestuario\n")},
	})

	resp, body := send(t, app, http.MethodPost, "/api/seed", tokenForRole(t, pkgjwt.RoleAdmin), "")
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var out dto.DefinitionErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "MISSING_FIELD", out.Code)
	assert.Equal(t, "property", out.Kind)
	assert.Equal(t, "3", out.ID)
	assert.Equal(t, "name", out.Field)
}
