package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandoCommando/product-taxonomy/internal/domain"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/entity"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/repository"
	"github.com/BrandoCommando/product-taxonomy/internal/infrastructure/memory"
)

func TestPropertyRepo_CreateGetCount(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCatalog().Properties()

	p := &entity.Property{ID: 3, Name: "Talla", FriendlyID: "talla", Handle: "talla",
		Values: []entity.PropertyValue{{ID: 1, Name: "S", FriendlyID: "talla__s", Handle: "s"}}}
	require.NoError(t, repo.Create(ctx, p))

	err := repo.Create(ctx, &entity.Property{ID: 3, Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicateIdentifier)

	got, err := repo.GetByID(ctx, 3)
	require.NoError(t, err)
	assert.True(t, p.Equal(got))

	// La copia devuelta no comparte memoria con el almacenamiento.
	got.Values[0].Name = "M"
	again, err := repo.GetByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "S", again.Values[0].Name)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryRepo_CountVerticals(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCatalog().Categories()

	for _, c := range []*entity.Category{
		{ID: "aa", Name: "Vestuario"},
		{ID: "aa-1", Name: "Ropa", ParentID: "aa"},
		{ID: "hg", Name: "Hogar"},
	} {
		require.NoError(t, repo.Create(ctx, c))
	}

	all, err := repo.Count(ctx, repository.CategoryFilter{})
	require.NoError(t, err)
	verticals, err := repo.Count(ctx, repository.CategoryFilter{VerticalsOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 3, all)
	assert.Equal(t, 2, verticals)

	require.NoError(t, repo.DeleteAll(ctx))
	all, err = repo.Count(ctx, repository.CategoryFilter{})
	require.NoError(t, err)
	assert.Zero(t, all)
}

func TestCatalog_RunSeedRollback(t *testing.T) {
	ctx := context.Background()
	catalog := memory.NewCatalog()
	require.NoError(t, catalog.Properties().Create(ctx, &entity.Property{ID: 1, Name: "Color"}))

	boom := errors.New("boom")
	err := catalog.RunSeed(ctx, func(props repository.PropertyRepository, cats repository.CategoryRepository) error {
		require.NoError(t, props.Create(ctx, &entity.Property{ID: 2, Name: "Talla"}))
		require.NoError(t, cats.Create(ctx, &entity.Category{ID: "aa", Name: "Vestuario"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := catalog.Properties().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "la transacción fallida no debe dejar rastros")
	_, err = catalog.Categories().GetByID(ctx, "aa")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = catalog.RunSeed(ctx, func(props repository.PropertyRepository, _ repository.CategoryRepository) error {
		return props.Create(ctx, &entity.Property{ID: 2, Name: "Talla"})
	})
	require.NoError(t, err)
	n, err = catalog.Properties().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
