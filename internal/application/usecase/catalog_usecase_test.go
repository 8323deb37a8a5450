package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/BrandoCommando/product-taxonomy/internal/application/usecase"
	"github.com/BrandoCommando/product-taxonomy/internal/domain"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/entity"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/repository"
	"github.com/BrandoCommando/product-taxonomy/internal/domain/repository/mocks"
)

func TestCatalogUseCase_GetProperty(t *testing.T) {
	ctrl := gomock.NewController(t)
	props := mocks.NewMockPropertyRepository(ctrl)
	uc := usecase.NewCatalogUseCase(props, mocks.NewMockCategoryRepository(ctrl))

	props.EXPECT().GetByID(gomock.Any(), int64(1)).Return(&entity.Property{
		ID: 1, Name: "Color", FriendlyID: "color", Handle: "color",
		Values: []entity.PropertyValue{{ID: 11, Name: "Rojo", FriendlyID: "color__rojo", Handle: "color__rojo"}},
	}, nil)
	props.EXPECT().GetByID(gomock.Any(), int64(2)).Return(nil, domain.ErrNotFound)

	got, err := uc.GetProperty(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "color", got.Handle)
	require.Len(t, got.Values, 1)
	assert.Equal(t, int64(11), got.Values[0].ID)

	_, err = uc.GetProperty(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogUseCase_GetCategoryListasVacias(t *testing.T) {
	ctrl := gomock.NewController(t)
	cats := mocks.NewMockCategoryRepository(ctrl)
	uc := usecase.NewCatalogUseCase(mocks.NewMockPropertyRepository(ctrl), cats)

	cats.EXPECT().GetByID(gomock.Any(), "aa").Return(&entity.Category{ID: "aa", Name: "Vestuario"}, nil)

	got, err := uc.GetCategory(context.Background(), "aa")
	require.NoError(t, err)
	assert.True(t, got.Vertical)
	assert.NotNil(t, got.Children)
	assert.NotNil(t, got.Attributes)
}

func TestCatalogUseCase_StatsPropagaErrores(t *testing.T) {
	ctrl := gomock.NewController(t)
	props := mocks.NewMockPropertyRepository(ctrl)
	cats := mocks.NewMockCategoryRepository(ctrl)
	uc := usecase.NewCatalogUseCase(props, cats)

	props.EXPECT().Count(gomock.Any()).Return(4, nil)
	cats.EXPECT().Count(gomock.Any(), repository.CategoryFilter{}).Return(0, assert.AnError)

	_, err := uc.Stats(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}
