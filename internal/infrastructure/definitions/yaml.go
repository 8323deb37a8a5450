// Package definitions carga las definiciones YAML del catálogo desde disco o S3.
//
// Estructura esperada (relativa a la raíz):
//
//	attributes/attributes.yml   lista de propiedades
//	categories/*.yml            una lista de categorías por vertical
package definitions

import (
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/BrandoCommando/product-taxonomy/internal/application/serializer"
)

const (
	propertiesFile = "attributes/attributes.yml"
	categoriesDir  = "categories"
)

func isCategoryFile(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".yml" || ext == ".yaml"
}

// parseList decodifica un archivo cuyo nivel superior es una lista de mapas.
// Un archivo vacío (o null) es una lista vacía.
func parseList(name string, data []byte) ([]serializer.Raw, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, nil
	}
	doc := root.Content[0]
	if doc.Kind == yaml.ScalarNode && doc.Tag == "!!null" {
		return nil, nil
	}
	if doc.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%s: se esperaba una lista de definiciones", name)
	}

	var items []map[string]any
	if err := doc.Decode(&items); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	out := make([]serializer.Raw, len(items))
	for i, item := range items {
		out[i] = serializer.Raw(item)
	}
	return out, nil
}
