package serializer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BrandoCommando/product-taxonomy/internal/application/serializer"
)

func TestHandleize(t *testing.T) {
	cases := map[string]string{
		"Color":                 "color",
		"Café & Té":             "cafe-te",
		"  Azul   Marino  ":     "azul-marino",
		"Tamaño (cm)":           "tamano-cm",
		"Niños/Niñas":           "ninos-ninas",
		"100% Algodón":          "100-algodon",
		"":                      "",
		"---":                   "",
		"Accesorios para Bebés": "accesorios-para-bebes",
	}
	for in, want := range cases {
		assert.Equal(t, want, serializer.Handleize(in), "entrada %q", in)
	}
}
