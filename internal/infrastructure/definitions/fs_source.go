package definitions

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/BrandoCommando/product-taxonomy/internal/application/ports"
	"github.com/BrandoCommando/product-taxonomy/internal/application/serializer"
)

var _ ports.DefinitionSource = (*FSSource)(nil)

// FSSource lee las definiciones de un fs.FS.
type FSSource struct {
	fsys fs.FS
}

// NewFSSource construye la fuente sobre fsys.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

// NewDirSource fuente sobre un directorio local (DATA_DIR).
func NewDirSource(dir string) *FSSource {
	return NewFSSource(os.DirFS(dir))
}

// Properties lee attributes/attributes.yml.
func (s *FSSource) Properties(ctx context.Context) ([]serializer.Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(s.fsys, propertiesFile)
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", propertiesFile, err)
	}
	return parseList(propertiesFile, data)
}

// CategoryFiles lee categories/*.yml ordenados por nombre de archivo.
func (s *FSSource) CategoryFiles(ctx context.Context) ([][]serializer.Raw, error) {
	entries, err := fs.ReadDir(s.fsys, categoriesDir)
	if err != nil {
		return nil, fmt.Errorf("listar %s: %w", categoriesDir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && isCategoryFile(e.Name()) {
			names = append(names, path.Join(categoriesDir, e.Name()))
		}
	}
	sort.Strings(names)

	files := make([][]serializer.Raw, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := fs.ReadFile(s.fsys, name)
		if err != nil {
			return nil, fmt.Errorf("leer %s: %w", name, err)
		}
		list, err := parseList(name, data)
		if err != nil {
			return nil, err
		}
		files = append(files, list)
	}
	return files, nil
}
