package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandoCommando/product-taxonomy/internal/application/dto"
	"github.com/BrandoCommando/product-taxonomy/pkg/config"
	"github.com/BrandoCommando/product-taxonomy/pkg/logger"
)

func writeData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "attributes"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "categories"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "attributes", "attributes.yml"),
		[]byte("- id: 1\n  name: Color\n  friendly_id: color\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "categories", "aa.yml"),
		[]byte("- id: aa\n  name: Vestuario\n"), 0o644))
	return dir
}

func TestNew_SiembraEnMemoria(t *testing.T) {
	cfg := &config.Config{
		Store:  config.StoreConfig{Driver: config.DriverMemory},
		Source: config.SourceConfig{Kind: config.SourceFS, Dir: writeData(t)},
		HTTP:   config.HTTPConfig{Port: 8080},
	}
	a, err := New(context.Background(), cfg, logger.New(logger.Config{Env: "test", Level: "error", Output: os.Stderr}))
	require.NoError(t, err)
	defer a.Close()

	out, err := a.SeedUC.Run(context.Background(), dto.SeedRequest{Verify: true})
	require.NoError(t, err)
	assert.True(t, out.Verification.OK)

	families, err := a.Registry.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "taxonomy_definitions_imported_total")
}

func TestNew_ConfiguracionInvalida(t *testing.T) {
	cfg := &config.Config{
		Store:  config.StoreConfig{Driver: "mongo"},
		Source: config.SourceConfig{Kind: config.SourceFS, Dir: "data"},
		HTTP:   config.HTTPConfig{Port: 8080},
	}
	_, err := New(context.Background(), cfg, logger.New(logger.Config{Level: "error"}))
	assert.ErrorContains(t, err, "STORE_DRIVER")
}
