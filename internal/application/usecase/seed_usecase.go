package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/BrandoCommando/product-taxonomy/internal/application/dto"
	"github.com/BrandoCommando/product-taxonomy/internal/application/ports"
	"github.com/BrandoCommando/product-taxonomy/internal/application/seed"
	"github.com/BrandoCommando/product-taxonomy/internal/application/serializer"
	"github.com/BrandoCommando/product-taxonomy/internal/domain"
)

// SeedUseCase orquesta la siembra: carga las definiciones, vacía el catálogo si se pide,
// importa propiedades y luego categorías, y opcionalmente verifica el resultado.
// Solo corre una siembra o verificación a la vez.
type SeedUseCase struct {
	source   ports.DefinitionSource
	importer *seed.Importer
	verifier *seed.Verifier
	log      zerolog.Logger

	running sync.Mutex
}

// NewSeedUseCase construye el caso de uso.
func NewSeedUseCase(source ports.DefinitionSource, importer *seed.Importer, verifier *seed.Verifier, log zerolog.Logger) *SeedUseCase {
	return &SeedUseCase{source: source, importer: importer, verifier: verifier, log: log}
}

// Run ejecuta la siembra. Las definiciones se cargan, deserializan y validan antes de vaciar
// el catálogo, así una fuente ilegible o una definición inválida lo dejan intacto.
func (uc *SeedUseCase) Run(ctx context.Context, in dto.SeedRequest) (*dto.SeedResponse, error) {
	if !uc.running.TryLock() {
		return nil, domain.ErrConflict
	}
	defer uc.running.Unlock()

	props, files, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}

	batch, err := uc.importer.Prepare(ctx, props, files)
	if err != nil {
		return nil, err
	}
	propRes, catRes, err := uc.importer.Seed(ctx, batch, in.Reset)
	if err != nil {
		return nil, err
	}

	out := &dto.SeedResponse{
		Reset:      in.Reset,
		Properties: toImportSummary(propRes),
		Categories: toImportSummary(catRes),
	}
	if in.Verify {
		if out.Verification, err = uc.verify(ctx, props, files); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Verify compara el catálogo almacenado con las definiciones de la fuente sin importar nada.
func (uc *SeedUseCase) Verify(ctx context.Context) (*dto.VerifyResponse, error) {
	if !uc.running.TryLock() {
		return nil, domain.ErrConflict
	}
	defer uc.running.Unlock()

	props, files, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	return uc.verify(ctx, props, files)
}

// Reset vacía el catálogo.
func (uc *SeedUseCase) Reset(ctx context.Context) error {
	if !uc.running.TryLock() {
		return domain.ErrConflict
	}
	defer uc.running.Unlock()
	return uc.importer.Reset(ctx)
}

func (uc *SeedUseCase) load(ctx context.Context) ([]serializer.Raw, [][]serializer.Raw, error) {
	props, err := uc.source.Properties(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("cargar propiedades: %w", err)
	}
	files, err := uc.source.CategoryFiles(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("cargar categorías: %w", err)
	}
	uc.log.Debug().Int("properties", len(props)).Int("category_files", len(files)).Msg("definiciones cargadas")
	return props, files, nil
}

func (uc *SeedUseCase) verify(ctx context.Context, props []serializer.Raw, files [][]serializer.Raw) (*dto.VerifyResponse, error) {
	propReport, err := uc.verifier.VerifyProperties(ctx, props)
	if err != nil {
		return nil, err
	}
	catReport, err := uc.verifier.VerifyCategories(ctx, files)
	if err != nil {
		return nil, err
	}
	return &dto.VerifyResponse{
		OK:         propReport.OK() && catReport.OK(),
		Properties: toReportResponse(propReport),
		Categories: toReportResponse(catReport),
	}, nil
}

func toImportSummary(r *seed.Result) dto.ImportSummary {
	return dto.ImportSummary{
		RunID:      r.RunID,
		Records:    r.Records,
		Verticals:  r.Verticals,
		DurationMs: r.Duration.Milliseconds(),
		Warnings:   r.Warnings,
	}
}

func toReportResponse(r *seed.Report) dto.ReportResponse {
	mismatches := make([]dto.MismatchResponse, 0, len(r.Mismatches))
	for _, m := range r.Mismatches {
		mismatches = append(mismatches, dto.MismatchResponse{ID: m.ID, Reason: m.Reason})
	}
	return dto.ReportResponse{
		Expected:          r.Expected,
		Stored:            r.Stored,
		Checked:           r.Checked,
		ExpectedVerticals: r.ExpectedVerticals,
		StoredVerticals:   r.StoredVerticals,
		Mismatches:        mismatches,
	}
}
