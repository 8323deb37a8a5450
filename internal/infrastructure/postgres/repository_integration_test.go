//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/BrandoCommando/product-taxonomy/internal/domain"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/entity"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/repository"
	"github.com/BrandoCommando/product-taxonomy/internal/infrastructure/postgres"
	"github.com/BrandoCommando/product-taxonomy/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg         *containers.PostgresContainer
	properties *postgres.PropertyRepo
	categories *postgres.CategoryRepo
	runner     *postgres.TxRunner
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.Require().NoError(postgres.Migrate(context.Background(), s.pg.Pool))
	s.properties = postgres.NewPropertyRepository(s.pg.Pool)
	s.categories = postgres.NewCategoryRepository(s.pg.Pool)
	s.runner = postgres.NewTxRunner(s.pg.Pool)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.categories.DeleteAll(ctx))
	s.Require().NoError(s.properties.DeleteAll(ctx))
}

func (s *PostgresStoreSuite) TestProperty_CreateYGet() {
	ctx := context.Background()
	p := &entity.Property{
		ID: 42, Name: "Color", FriendlyID: "color", Handle: "color", Description: "Color principal",
		Values: []entity.PropertyValue{
			{ID: 2, Name: "Rojo", FriendlyID: "color__rojo", Handle: "color__rojo"},
			{ID: 1, Name: "Azul", FriendlyID: "color__azul", Handle: "color__azul"},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	s.Require().NoError(s.properties.Create(ctx, p))

	got, err := s.properties.GetByID(ctx, 42)
	s.Require().NoError(err)
	s.True(p.Equal(got))
	s.Equal(int64(2), got.Values[0].ID, "los valores conservan el orden de la definición")

	n, err := s.properties.Count(ctx)
	s.Require().NoError(err)
	s.Equal(1, n)

	s.ErrorIs(s.properties.Create(ctx, p), domain.ErrDuplicateIdentifier)

	_, err = s.properties.GetByID(ctx, 7)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *PostgresStoreSuite) TestCategory_VerticalesYPadres() {
	ctx := context.Background()
	s.Require().NoError(s.categories.Create(ctx, &entity.Category{ID: "aa", Name: "Vestuario", Children: []string{"aa-1"}}))
	s.Require().NoError(s.categories.Create(ctx, &entity.Category{ID: "aa-1", Name: "Ropa", ParentID: "aa", Attributes: []string{"color"}}))

	err := s.categories.Create(ctx, &entity.Category{ID: "zz-1", Name: "Huérfana", ParentID: "zz"})
	s.ErrorIs(err, domain.ErrUnresolvedParent)

	all, err := s.categories.Count(ctx, repository.CategoryFilter{})
	s.Require().NoError(err)
	s.Equal(2, all)
	verticals, err := s.categories.Count(ctx, repository.CategoryFilter{VerticalsOnly: true})
	s.Require().NoError(err)
	s.Equal(1, verticals)

	got, err := s.categories.GetByID(ctx, "aa-1")
	s.Require().NoError(err)
	s.Equal("aa", got.ParentID)
	s.Equal([]string{"color"}, got.Attributes)
}

func (s *PostgresStoreSuite) TestTxRunner_Rollback() {
	ctx := context.Background()
	err := s.runner.RunSeed(ctx, func(props repository.PropertyRepository, cats repository.CategoryRepository) error {
		if err := props.Create(ctx, &entity.Property{ID: 1, Name: "Talla", FriendlyID: "talla", Handle: "talla"}); err != nil {
			return err
		}
		return props.Create(ctx, &entity.Property{ID: 1, Name: "Talla", FriendlyID: "talla", Handle: "talla"})
	})
	s.ErrorIs(err, domain.ErrDuplicateIdentifier)

	n, err := s.properties.Count(ctx)
	s.Require().NoError(err)
	s.Zero(n)
}
