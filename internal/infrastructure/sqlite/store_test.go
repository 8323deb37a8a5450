package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandoCommando/product-taxonomy/internal/application/seed"
	"github.com/BrandoCommando/product-taxonomy/internal/application/serializer"
	"github.com/BrandoCommando/product-taxonomy/internal/domain"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/entity"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/repository"
	"github.com/BrandoCommando/product-taxonomy/internal/infrastructure/sqlite"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestPropertyRepo_CreateYGet(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewPropertyRepository(openMemory(t))
	created := time.Date(2024, 5, 2, 10, 30, 0, 123, time.UTC)
	p := &entity.Property{
		ID: 9, Name: "Material", FriendlyID: "material", Handle: "material",
		Values: []entity.PropertyValue{
			{ID: 91, Name: "Algodón", FriendlyID: "material__algodon", Handle: "material__algodon"},
			{ID: 90, Name: "Lana", FriendlyID: "material__lana", Handle: "material__lana"},
		},
		CreatedAt: created,
	}
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, 9)
	require.NoError(t, err)
	assert.True(t, p.Equal(got))
	assert.Equal(t, created, got.CreatedAt)

	assert.ErrorIs(t, repo.Create(ctx, p), domain.ErrDuplicateIdentifier)
	_, err = repo.GetByID(ctx, 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.DeleteAll(ctx))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCategoryRepo_PadreYVerticales(t *testing.T) {
	ctx := context.Background()
	repo := sqlite.NewCategoryRepository(openMemory(t))

	require.NoError(t, repo.Create(ctx, &entity.Category{ID: "aa", Name: "Vestuario", Children: []string{"aa-1"}}))
	require.NoError(t, repo.Create(ctx, &entity.Category{ID: "aa-1", Name: "Ropa", ParentID: "aa"}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.Category{ID: "aa-1", Name: "Ropa", ParentID: "aa"}), domain.ErrDuplicateIdentifier)
	assert.ErrorIs(t, repo.Create(ctx, &entity.Category{ID: "zz-1", Name: "Huérfana", ParentID: "zz"}), domain.ErrUnresolvedParent)

	verticals, err := repo.Count(ctx, repository.CategoryFilter{VerticalsOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 1, verticals)

	got, err := repo.GetByID(ctx, "aa")
	require.NoError(t, err)
	assert.Equal(t, []string{"aa-1"}, got.Children)
	assert.Nil(t, got.Attributes)
	assert.True(t, got.IsVertical())

	// Borrar el catálogo arrastra a los hijos.
	require.NoError(t, repo.DeleteAll(ctx))
	all, err := repo.Count(ctx, repository.CategoryFilter{})
	require.NoError(t, err)
	assert.Zero(t, all)
}

func TestImporter_SobreSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "catalogo", "taxonomy.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	props, cats := sqlite.NewPropertyRepository(db), sqlite.NewCategoryRepository(db)
	im := seed.NewImporter(props, cats, seed.WithTxRunner(sqlite.NewTxRunner(db)))

	_, err = im.ImportProperties(ctx, []serializer.Raw{
		{"id": 1, "name": "Color", "friendly_id": "color"},
		{"id": 2, "name": "Talla", "friendly_id": "talla"},
	})
	require.NoError(t, err)

	// El segundo lote choca con el id 1: la transacción revierte también el id 3.
	_, err = im.ImportProperties(ctx, []serializer.Raw{
		{"id": 3, "name": "Material", "friendly_id": "material"},
		{"id": 1, "name": "Color", "friendly_id": "color"},
	})
	require.ErrorIs(t, err, domain.ErrDuplicateIdentifier)

	n, err := props.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = im.ImportCategories(ctx, [][]serializer.Raw{
		{{"id": "aa", "name": "Vestuario"}, {"id": "aa-1", "name": "Ropa", "parent_id": "aa"}},
	})
	require.NoError(t, err)

	report, err := seed.NewVerifier(props, cats, zerolog.Nop(), nil).VerifyCategories(ctx, [][]serializer.Raw{
		{{"id": "aa", "name": "Vestuario"}, {"id": "aa-1", "name": "Ropa", "parent_id": "aa"}},
	})
	require.NoError(t, err)
	assert.True(t, report.OK(), "%v", report.Mismatches)
}
