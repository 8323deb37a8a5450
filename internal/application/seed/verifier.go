package seed

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/BrandoCommando/product-taxonomy/internal/application/serializer"
	"github.com/BrandoCommando/product-taxonomy/internal/domain"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/entity"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/repository"
	"github.com/BrandoCommando/product-taxonomy/pkg/metrics"
)

// Mismatch es una diferencia entre una definición y lo que hay en el almacenamiento.
// ID vacío indica una diferencia de conteo.
type Mismatch struct {
	Kind   string
	ID     string
	Reason string
}

// Report resultado de verificar un lote de definiciones contra el almacenamiento.
type Report struct {
	Kind              string
	Expected          int
	Stored            int
	ExpectedVerticals int
	StoredVerticals   int
	Checked           int
	Mismatches        []Mismatch
}

// OK indica que no hubo diferencias.
func (r *Report) OK() bool {
	return len(r.Mismatches) == 0
}

func (r *Report) add(id, format string, args ...any) {
	r.Mismatches = append(r.Mismatches, Mismatch{Kind: r.Kind, ID: id, Reason: fmt.Sprintf(format, args...)})
}

// Verifier comprueba la estabilidad del catálogo: cada definición deserializada es igual
// al registro guardado bajo su id y a la proyección serializada de ese registro.
type Verifier struct {
	properties repository.PropertyRepository
	categories repository.CategoryRepository

	propertySerializer serializer.PropertySerializer
	categorySerializer serializer.CategorySerializer

	log     zerolog.Logger
	metrics *metrics.Metrics
}

// NewVerifier construye el verificador. log y m son opcionales.
func NewVerifier(properties repository.PropertyRepository, categories repository.CategoryRepository, log zerolog.Logger, m *metrics.Metrics) *Verifier {
	return &Verifier{
		properties:         properties,
		categories:         categories,
		propertySerializer: serializer.NewPropertySerializer(),
		categorySerializer: serializer.NewCategorySerializer(),
		log:                log,
		metrics:            m,
	}
}

// VerifyProperties compara cada definición con la propiedad almacenada. Una definición
// inválida es un error (no una diferencia); las diferencias se acumulan en el Report.
func (v *Verifier) VerifyProperties(ctx context.Context, raws []serializer.Raw) (*Report, error) {
	report := &Report{Kind: domain.KindProperty, Expected: len(raws)}

	stored, err := v.properties.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count properties: %w", err)
	}
	report.Stored = stored
	if stored != len(raws) {
		report.add("", "se esperaban %d propiedades, hay %d", len(raws), stored)
	}

	for _, raw := range raws {
		want, err := v.propertySerializer.Deserialize(raw)
		if err != nil {
			return nil, err
		}
		id := strconv.FormatInt(want.ID, 10)
		got, err := v.properties.GetByID(ctx, want.ID)
		if errors.Is(err, domain.ErrNotFound) {
			report.add(id, "no existe en el almacenamiento")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get property %s: %w", id, err)
		}
		report.Checked++

		if got.ID != want.ID {
			report.add(id, "almacenada con id %d", got.ID)
			continue
		}
		if !want.Equal(got) {
			report.add(id, "difiere en %s", strings.Join(propertyDiff(want, got), ", "))
			continue
		}
		projected, err := v.propertySerializer.Deserialize(v.propertySerializer.Serialize(got))
		if err != nil {
			report.add(id, "proyección inválida: %v", err)
			continue
		}
		if !want.Equal(projected) {
			report.add(id, "la proyección difiere en %s", strings.Join(propertyDiff(want, projected), ", "))
		}
	}

	v.finish(report)
	return report, nil
}

// VerifyCategories compara cada definición de cada archivo con la categoría almacenada y
// comprueba que haya una vertical por archivo.
func (v *Verifier) VerifyCategories(ctx context.Context, files [][]serializer.Raw) (*Report, error) {
	report := &Report{Kind: domain.KindCategory, ExpectedVerticals: len(files)}
	for _, file := range files {
		report.Expected += len(file)
	}

	stored, err := v.categories.Count(ctx, repository.CategoryFilter{})
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	verticals, err := v.categories.Count(ctx, repository.CategoryFilter{VerticalsOnly: true})
	if err != nil {
		return nil, fmt.Errorf("count verticals: %w", err)
	}
	report.Stored = stored
	report.StoredVerticals = verticals
	if stored != report.Expected {
		report.add("", "se esperaban %d categorías, hay %d", report.Expected, stored)
	}
	if verticals != report.ExpectedVerticals {
		report.add("", "se esperaban %d verticales, hay %d", report.ExpectedVerticals, verticals)
	}

	for _, file := range files {
		for _, raw := range file {
			want, err := v.categorySerializer.Deserialize(raw)
			if err != nil {
				return nil, err
			}
			got, err := v.categories.GetByID(ctx, want.ID)
			if errors.Is(err, domain.ErrNotFound) {
				report.add(want.ID, "no existe en el almacenamiento")
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("get category %s: %w", want.ID, err)
			}
			report.Checked++

			if got.ID != want.ID {
				report.add(want.ID, "almacenada con id %s", got.ID)
				continue
			}
			if !want.Equal(got) {
				report.add(want.ID, "difiere en %s", strings.Join(categoryDiff(want, got), ", "))
				continue
			}
			projected, err := v.categorySerializer.Deserialize(v.categorySerializer.Serialize(got))
			if err != nil {
				report.add(want.ID, "proyección inválida: %v", err)
				continue
			}
			if !want.Equal(projected) {
				report.add(want.ID, "la proyección difiere en %s", strings.Join(categoryDiff(want, projected), ", "))
			}
		}
	}

	v.finish(report)
	return report, nil
}

func (v *Verifier) finish(report *Report) {
	if v.metrics != nil {
		v.metrics.AddVerificationMismatches(report.Kind, len(report.Mismatches))
	}
	ev := v.log.Info()
	if !report.OK() {
		ev = v.log.Warn()
	}
	ev.Str("kind", report.Kind).
		Int("expected", report.Expected).
		Int("stored", report.Stored).
		Int("checked", report.Checked).
		Int("mismatches", len(report.Mismatches)).
		Msg("verificación del catálogo")
}

func propertyDiff(a, b *entity.Property) []string {
	var fields []string
	if a.Name != b.Name {
		fields = append(fields, "name")
	}
	if a.FriendlyID != b.FriendlyID {
		fields = append(fields, "friendly_id")
	}
	if a.Handle != b.Handle {
		fields = append(fields, "handle")
	}
	if a.Description != b.Description {
		fields = append(fields, "description")
	}
	if !slices.Equal(a.Values, b.Values) {
		fields = append(fields, "values")
	}
	return fields
}

func categoryDiff(a, b *entity.Category) []string {
	var fields []string
	if a.Name != b.Name {
		fields = append(fields, "name")
	}
	if a.ParentID != b.ParentID {
		fields = append(fields, "parent_id")
	}
	if !slices.Equal(a.Children, b.Children) {
		fields = append(fields, "children")
	}
	if !slices.Equal(a.Attributes, b.Attributes) {
		fields = append(fields, "attributes")
	}
	return fields
}
