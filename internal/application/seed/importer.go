// Package seed importa definiciones de propiedades y categorías al almacenamiento
// del catálogo y verifica que cada registro guardado sea igual a su definición.
package seed

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/BrandoCommando/product-taxonomy/internal/application/serializer"
	"github.com/BrandoCommando/product-taxonomy/internal/domain"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/entity"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/repository"
	"github.com/BrandoCommando/product-taxonomy/pkg/metrics"
)

// Result resume un lote importado. Warnings lista inconsistencias que no abortan el lote
// (ej. un archivo de categorías sin vertical).
type Result struct {
	RunID     string
	Kind      string
	Records   int
	Verticals int
	Duration  time.Duration
	Warnings  []string
}

// Batch definiciones de propiedades y categorías ya deserializadas y validadas.
// Prepare lo construye sin tocar el almacenamiento; Seed lo persiste.
type Batch struct {
	properties []*entity.Property
	categories []*entity.Category
	files      int
	verticals  int
}

// Importer persiste lotes de definiciones conservando los identificadores del archivo.
//
// Cada lote pasa por tres fases: deserialización (pura, en paralelo), validación del lote
// (ids duplicados y orden padre→hijo) y persistencia en el orden del archivo. Las dos
// primeras no tocan el almacenamiento, así que una definición inválida nunca deja un
// catálogo a medias. La tercera corre en una transacción cuando hay TxRunner.
type Importer struct {
	properties repository.PropertyRepository
	categories repository.CategoryRepository
	txRunner   TxRunner

	propertySerializer serializer.PropertySerializer
	categorySerializer serializer.CategorySerializer

	workers int
	log     zerolog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configura el Importer.
type Option func(*Importer)

// WithTxRunner hace que cada lote se persista en una sola transacción.
func WithTxRunner(r TxRunner) Option {
	return func(im *Importer) { im.txRunner = r }
}

// WithWorkers limita las goroutines de deserialización (por defecto GOMAXPROCS).
func WithWorkers(n int) Option {
	return func(im *Importer) {
		if n > 0 {
			im.workers = n
		}
	}
}

// WithLogger asigna el logger estructurado.
func WithLogger(l zerolog.Logger) Option {
	return func(im *Importer) { im.log = l }
}

// WithMetrics activa las métricas de importación.
func WithMetrics(m *metrics.Metrics) Option {
	return func(im *Importer) { im.metrics = m }
}

// WithClock reemplaza el reloj usado para CreatedAt (tests).
func WithClock(now func() time.Time) Option {
	return func(im *Importer) { im.now = now }
}

// NewImporter construye el importador sobre los repositorios del catálogo.
func NewImporter(
	properties repository.PropertyRepository,
	categories repository.CategoryRepository,
	opts ...Option,
) *Importer {
	im := &Importer{
		properties:         properties,
		categories:         categories,
		propertySerializer: serializer.NewPropertySerializer(),
		categorySerializer: serializer.NewCategorySerializer(),
		workers:            runtime.GOMAXPROCS(0),
		log:                zerolog.Nop(),
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// ImportProperties deserializa y persiste cada definición de propiedad con su id original.
func (im *Importer) ImportProperties(ctx context.Context, raws []serializer.Raw) (*Result, error) {
	start := time.Now()
	res := &Result{RunID: uuid.NewString(), Kind: domain.KindProperty}
	log := im.runLogger(res)
	log.Debug().Int("definitions", len(raws)).Msg("importando propiedades")

	props, err := im.decodeProperties(ctx, raws)
	if err != nil {
		return nil, im.fail(log, res.Kind, err)
	}

	now := im.now()
	err = im.persist(ctx, func(propertyRepo repository.PropertyRepository, _ repository.CategoryRepository) error {
		return createProperties(ctx, propertyRepo, props, now)
	})
	if err != nil {
		return nil, im.fail(log, res.Kind, err)
	}

	res.Records = len(props)
	im.finish(log, res, start)
	return res, nil
}

// ImportCategories persiste las categorías de cada archivo (uno por vertical) en el orden
// recibido. Una categoría con parent_id debe referenciar una categoría aparecida antes en
// este mismo lote; si no, el lote falla con domain.ErrUnresolvedParent.
func (im *Importer) ImportCategories(ctx context.Context, files [][]serializer.Raw) (*Result, error) {
	start := time.Now()
	res := &Result{RunID: uuid.NewString(), Kind: domain.KindCategory}
	log := im.runLogger(res)

	cats, verticals, err := im.decodeCategories(ctx, log, files)
	if err != nil {
		return nil, im.fail(log, res.Kind, err)
	}

	now := im.now()
	err = im.persist(ctx, func(_ repository.PropertyRepository, categoryRepo repository.CategoryRepository) error {
		return createCategories(ctx, categoryRepo, cats, now)
	})
	if err != nil {
		return nil, im.fail(log, res.Kind, err)
	}

	res.Records = len(cats)
	res.Verticals = verticals
	res.Warnings = verticalWarnings(len(files), verticals)
	im.finish(log, res, start)
	return res, nil
}

// Prepare deserializa y valida propiedades y categorías sin tocar el almacenamiento.
// Un error aquí deja el catálogo intacto.
func (im *Importer) Prepare(ctx context.Context, props []serializer.Raw, files [][]serializer.Raw) (*Batch, error) {
	log := im.log.With().Str("phase", "prepare").Logger()

	properties, err := im.decodeProperties(ctx, props)
	if err != nil {
		return nil, im.fail(log, domain.KindProperty, err)
	}
	categories, verticals, err := im.decodeCategories(ctx, log, files)
	if err != nil {
		return nil, im.fail(log, domain.KindCategory, err)
	}
	return &Batch{properties: properties, categories: categories, files: len(files), verticals: verticals}, nil
}

// Seed persiste un lote preparado: opcionalmente vacía el catálogo y luego crea propiedades
// y categorías. Con TxRunner todo corre en una sola transacción, así que un fallo de
// almacenamiento no deja el catálogo a medias.
func (im *Importer) Seed(ctx context.Context, b *Batch, reset bool) (properties, categories *Result, err error) {
	start := time.Now()
	properties = &Result{RunID: uuid.NewString(), Kind: domain.KindProperty}
	categories = &Result{RunID: uuid.NewString(), Kind: domain.KindCategory}
	propLog := im.runLogger(properties)
	catLog := im.runLogger(categories)

	kind := domain.KindProperty
	now := im.now()
	err = im.persist(ctx, func(propertyRepo repository.PropertyRepository, categoryRepo repository.CategoryRepository) error {
		if reset {
			if err := resetCatalog(ctx, propertyRepo, categoryRepo); err != nil {
				return err
			}
		}
		if err := createProperties(ctx, propertyRepo, b.properties, now); err != nil {
			return err
		}
		kind = domain.KindCategory
		return createCategories(ctx, categoryRepo, b.categories, now)
	})
	if err != nil {
		if kind == domain.KindProperty {
			return nil, nil, im.fail(propLog, kind, err)
		}
		return nil, nil, im.fail(catLog, kind, err)
	}

	properties.Records = len(b.properties)
	categories.Records = len(b.categories)
	categories.Verticals = b.verticals
	categories.Warnings = verticalWarnings(b.files, b.verticals)
	im.finish(propLog, properties, start)
	im.finish(catLog, categories, start)
	return properties, categories, nil
}

// Reset elimina todo el catálogo: primero categorías, luego propiedades con sus valores.
func (im *Importer) Reset(ctx context.Context) error {
	if err := im.persist(ctx, func(propertyRepo repository.PropertyRepository, categoryRepo repository.CategoryRepository) error {
		return resetCatalog(ctx, propertyRepo, categoryRepo)
	}); err != nil {
		return err
	}
	im.log.Info().Msg("catálogo vaciado")
	return nil
}

func (im *Importer) runLogger(res *Result) zerolog.Logger {
	return im.log.With().Str("run_id", res.RunID).Str("kind", res.Kind).Logger()
}

func (im *Importer) finish(log zerolog.Logger, res *Result, start time.Time) {
	res.Duration = time.Since(start)
	if im.metrics != nil {
		im.metrics.ObserveImport(res.Kind, res.Records, res.Duration)
	}
	for _, w := range res.Warnings {
		log.Warn().Msg(w)
	}
	ev := log.Info().Int("records", res.Records)
	if res.Kind == domain.KindCategory {
		ev = ev.Int("verticals", res.Verticals)
	}
	ev.Dur("duration", res.Duration).Msg("lote importado")
}

// decodeProperties deserializa en paralelo y rechaza ids repetidos dentro del lote.
func (im *Importer) decodeProperties(ctx context.Context, raws []serializer.Raw) ([]*entity.Property, error) {
	props, err := decodeAll(ctx, im.workers, raws, im.propertySerializer.Deserialize)
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]struct{}, len(props))
	for _, p := range props {
		if _, dup := seen[p.ID]; dup {
			return nil, &domain.DefinitionError{
				Kind: domain.KindProperty, ID: strconv.FormatInt(p.ID, 10), Field: "id", Err: domain.ErrDuplicateIdentifier,
			}
		}
		seen[p.ID] = struct{}{}
	}
	return props, nil
}

// decodeCategories deserializa todos los archivos en orden y valida ids y orden padre→hijo.
func (im *Importer) decodeCategories(ctx context.Context, log zerolog.Logger, files [][]serializer.Raw) ([]*entity.Category, int, error) {
	var flat []serializer.Raw
	for _, file := range files {
		flat = append(flat, file...)
	}
	log.Debug().Int("files", len(files)).Int("definitions", len(flat)).Msg("importando categorías")

	cats, err := decodeAll(ctx, im.workers, flat, im.categorySerializer.Deserialize)
	if err != nil {
		return nil, 0, err
	}
	verticals, err := checkCategoryOrder(cats)
	if err != nil {
		return nil, 0, err
	}
	return cats, verticals, nil
}

func createProperties(ctx context.Context, repo repository.PropertyRepository, props []*entity.Property, now time.Time) error {
	for _, p := range props {
		p.CreatedAt = now
		if err := repo.Create(ctx, p); err != nil {
			return persistError(domain.KindProperty, strconv.FormatInt(p.ID, 10), err)
		}
	}
	return nil
}

func createCategories(ctx context.Context, repo repository.CategoryRepository, cats []*entity.Category, now time.Time) error {
	for _, c := range cats {
		c.CreatedAt = now
		if err := repo.Create(ctx, c); err != nil {
			return persistError(domain.KindCategory, c.ID, err)
		}
	}
	return nil
}

func resetCatalog(ctx context.Context, propertyRepo repository.PropertyRepository, categoryRepo repository.CategoryRepository) error {
	if err := categoryRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete categories: %w", err)
	}
	if err := propertyRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete properties: %w", err)
	}
	return nil
}

// verticalWarnings cada archivo de categorías debe aportar exactamente una vertical.
func verticalWarnings(files, verticals int) []string {
	if files == verticals {
		return nil
	}
	return []string{fmt.Sprintf("se esperaban %d verticales (una por archivo), hay %d", files, verticals)}
}

// checkCategoryOrder valida ids únicos y que cada padre aparezca antes que sus hijos.
// Devuelve la cantidad de verticales del lote.
func checkCategoryOrder(cats []*entity.Category) (int, error) {
	seen := make(map[string]struct{}, len(cats))
	verticals := 0
	for _, c := range cats {
		if _, dup := seen[c.ID]; dup {
			return 0, &domain.DefinitionError{Kind: domain.KindCategory, ID: c.ID, Field: "id", Err: domain.ErrDuplicateIdentifier}
		}
		if c.IsVertical() {
			verticals++
		} else if _, ok := seen[c.ParentID]; !ok {
			return 0, &domain.DefinitionError{
				Kind: domain.KindCategory, ID: c.ID, Field: "parent_id",
				Err: fmt.Errorf("%w: %s", domain.ErrUnresolvedParent, c.ParentID),
			}
		}
		seen[c.ID] = struct{}{}
	}
	return verticals, nil
}

func (im *Importer) persist(ctx context.Context, fn func(repository.PropertyRepository, repository.CategoryRepository) error) error {
	if im.txRunner != nil {
		return im.txRunner.RunSeed(ctx, fn)
	}
	return fn(im.properties, im.categories)
}

func (im *Importer) fail(log zerolog.Logger, kind string, err error) error {
	reason := failureReason(err)
	if im.metrics != nil {
		im.metrics.IncrementImportFailures(kind, reason)
	}
	ev := log.Error().Err(err).Str("reason", reason)
	var defErr *domain.DefinitionError
	if errors.As(err, &defErr) {
		ev = ev.Str("id", defErr.ID).Str("field", defErr.Field)
	}
	ev.Msg("importación abortada")
	return err
}

func persistError(kind, id string, err error) error {
	field := ""
	if errors.Is(err, domain.ErrDuplicateIdentifier) {
		field = "id"
	}
	return &domain.DefinitionError{Kind: kind, ID: id, Field: field, Err: err}
}

// decodeAll deserializa en paralelo conservando el orden. Si varias definiciones fallan,
// reporta la primera según el orden del archivo.
func decodeAll[T any](ctx context.Context, workers int, raws []serializer.Raw, decode func(serializer.Raw) (T, error)) ([]T, error) {
	out := make([]T, len(raws))
	errs := make([]error, len(raws))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, raw := range raws {
		if err := ctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			out[i], errs[i] = decode(raw)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingIdentifier):
		return "missing_identifier"
	case errors.Is(err, domain.ErrMissingField):
		return "missing_field"
	case errors.Is(err, domain.ErrTypeMismatch):
		return "type_mismatch"
	case errors.Is(err, domain.ErrUnresolvedParent):
		return "unresolved_parent"
	case errors.Is(err, domain.ErrDuplicateIdentifier):
		return "duplicate_identifier"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "storage"
	}
}
