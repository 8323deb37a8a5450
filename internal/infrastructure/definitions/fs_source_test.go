package definitions

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const attributesYAML = `
- id: 1
  name: Color
  friendly_id: color
  values:
    - id: 10
      name: Rojo
      friendly_id: color__rojo
- id: 2
  name: Talla
  friendly_id: talla
`

func TestFSSource_LeeEstructura(t *testing.T) {
	fsys := fstest.MapFS{
		"attributes/attributes.yml": {Data: []byte(attributesYAML)},
		"categories/hg_hogar.yml":   {Data: []byte("- id: hg\n  name: Hogar\n")},
		"categories/aa_vestuario.yml": {Data: []byte(
			"- id: aa\n  name: Vestuario\n  children: [aa-1]\n- id: aa-1\n  name: Ropa\n  parent_id: aa\n")},
		"categories/README.md": {Data: []byte("# no es una vertical")},
		"categories/vacio.yml": {Data: []byte("")},
	}
	src := NewFSSource(fsys)
	ctx := context.Background()

	props, err := src.Properties(ctx)
	require.NoError(t, err)
	require.Len(t, props, 2)
	assert.Equal(t, 1, props[0]["id"])
	values, ok := props[0]["values"].([]any)
	require.True(t, ok)
	assert.Len(t, values, 1)

	files, err := src.CategoryFiles(ctx)
	require.NoError(t, err)
	require.Len(t, files, 3, "aa, hg y el archivo vacío")
	assert.Equal(t, "aa", files[0][0]["id"])
	assert.Equal(t, "hg", files[1][0]["id"])
	assert.Empty(t, files[2])
}

func TestFSSource_NivelSuperiorNoLista(t *testing.T) {
	fsys := fstest.MapFS{
		"attributes/attributes.yml": {Data: []byte("id: 1\nname: Color\n")},
	}
	_, err := NewFSSource(fsys).Properties(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "attributes/attributes.yml")
}

func TestFSSource_YAMLInvalido(t *testing.T) {
	fsys := fstest.MapFS{
		"categories/aa.yml": {Data: []byte("- id: aa\n  name: [sin cerrar\n")},
	}
	_, err := NewFSSource(fsys).CategoryFiles(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "categories/aa.yml")
}

func TestFSSource_ArchivoFaltante(t *testing.T) {
	_, err := NewFSSource(fstest.MapFS{}).Properties(context.Background())
	assert.Error(t, err)
}
