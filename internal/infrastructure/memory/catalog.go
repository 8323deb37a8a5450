// Package memory implementa el almacenamiento del catálogo en memoria (tests, CLI sin base de datos).
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/BrandoCommando/product-taxonomy/internal/application/seed"
	"github.com/BrandoCommando/product-taxonomy/internal/domain"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/entity"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/repository"
)

var (
	_ repository.PropertyRepository = (*PropertyRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ seed.TxRunner                 = (*Catalog)(nil)
)

type state struct {
	mu         sync.RWMutex
	properties map[int64]entity.Property
	categories map[string]entity.Category
}

func newState() *state {
	return &state{
		properties: make(map[int64]entity.Property),
		categories: make(map[string]entity.Category),
	}
}

// Catalog es una instancia de almacenamiento aislada; cada test crea la suya.
type Catalog struct {
	st   *state
	txMu sync.Mutex
}

// NewCatalog crea un catálogo vacío.
func NewCatalog() *Catalog {
	return &Catalog{st: newState()}
}

// Properties devuelve el repositorio de propiedades.
func (c *Catalog) Properties() *PropertyRepo { return &PropertyRepo{st: c.st} }

// Categories devuelve el repositorio de categorías.
func (c *Catalog) Categories() *CategoryRepo { return &CategoryRepo{st: c.st} }

// RunSeed ejecuta fn sobre una copia del estado y la publica solo si fn no falla.
// Las transacciones se serializan entre sí.
func (c *Catalog) RunSeed(ctx context.Context, fn func(
	propertyRepo repository.PropertyRepository,
	categoryRepo repository.CategoryRepository,
) error) error {
	c.txMu.Lock()
	defer c.txMu.Unlock()

	staged := c.st.clone()
	if err := fn(&PropertyRepo{st: staged}, &CategoryRepo{st: staged}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	c.st.mu.Lock()
	c.st.properties = staged.properties
	c.st.categories = staged.categories
	c.st.mu.Unlock()
	return nil
}

func (s *state) clone() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := newState()
	for id, p := range s.properties {
		out.properties[id] = copyProperty(p)
	}
	for id, cat := range s.categories {
		out.categories[id] = copyCategory(cat)
	}
	return out
}

func copyProperty(p entity.Property) entity.Property {
	p.Values = slices.Clone(p.Values)
	return p
}

func copyCategory(c entity.Category) entity.Category {
	c.Children = slices.Clone(c.Children)
	c.Attributes = slices.Clone(c.Attributes)
	return c
}

// PropertyRepo implementación en memoria de PropertyRepository.
type PropertyRepo struct {
	st *state
}

// Create guarda una copia de la propiedad.
func (r *PropertyRepo) Create(_ context.Context, property *entity.Property) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if _, ok := r.st.properties[property.ID]; ok {
		return domain.ErrDuplicateIdentifier
	}
	r.st.properties[property.ID] = copyProperty(*property)
	return nil
}

// GetByID devuelve una copia de la propiedad.
func (r *PropertyRepo) GetByID(_ context.Context, id int64) (*entity.Property, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	p, ok := r.st.properties[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := copyProperty(p)
	return &out, nil
}

// Count cuenta las propiedades.
func (r *PropertyRepo) Count(_ context.Context) (int, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	return len(r.st.properties), nil
}

// DeleteAll elimina todas las propiedades y sus valores.
func (r *PropertyRepo) DeleteAll(_ context.Context) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	clear(r.st.properties)
	return nil
}

// CategoryRepo implementación en memoria de CategoryRepository.
type CategoryRepo struct {
	st *state
}

// Create guarda una copia de la categoría.
func (r *CategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if _, ok := r.st.categories[category.ID]; ok {
		return domain.ErrDuplicateIdentifier
	}
	r.st.categories[category.ID] = copyCategory(*category)
	return nil
}

// GetByID devuelve una copia de la categoría.
func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	c, ok := r.st.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := copyCategory(c)
	return &out, nil
}

// Count cuenta categorías; con VerticalsOnly solo las raíces.
func (r *CategoryRepo) Count(_ context.Context, filter repository.CategoryFilter) (int, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	if !filter.VerticalsOnly {
		return len(r.st.categories), nil
	}
	n := 0
	for _, c := range r.st.categories {
		if c.IsVertical() {
			n++
		}
	}
	return n, nil
}

// DeleteAll elimina todas las categorías.
func (r *CategoryRepo) DeleteAll(_ context.Context) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	clear(r.st.categories)
	return nil
}
