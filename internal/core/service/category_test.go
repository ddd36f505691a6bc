package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsmarket/product-service/internal/core/domain"
	"github.com/dsmarket/product-service/internal/core/service"
)

func TestCategoryService_AddCategory(t *testing.T) {
	ctx := context.Background()
	s := service.NewCategoryService(newFakeCategoryStore())

	c, err := s.AddCategory(ctx, " Skincare ", []string{" Serum", "serum", "Soap"})
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Skincare", c.Name)
	assert.Equal(t, []string{"serum", "soap"}, c.SubCategory)

	_, err = s.AddCategory(ctx, "Skincare", nil)
	require.ErrorIs(t, err, domain.ErrDuplicateCategory)
}

func TestCategoryService_RenameCategory(t *testing.T) {
	ctx := context.Background()
	s := service.NewCategoryService(newFakeCategoryStore())

	c, err := s.AddCategory(ctx, "Grocery", nil)
	require.NoError(t, err)

	got, err := s.RenameCategory(ctx, c.ID, " Groceries ")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got.Name)

	_, err = s.RenameCategory(ctx, "missing", "X")
	require.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestCategoryService_RemoveCategory(t *testing.T) {
	ctx := context.Background()
	s := service.NewCategoryService(newFakeCategoryStore())

	c, err := s.AddCategory(ctx, "Grocery", nil)
	require.NoError(t, err)

	got, err := s.RemoveCategory(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grocery", got.Name)

	_, err = s.FindCategoryByID(ctx, c.ID)
	require.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestCategoryService_SubCategories(t *testing.T) {
	ctx := context.Background()

	newCategory := func(t *testing.T, s service.CategoryService) domain.Category {
		t.Helper()
		c, err := s.AddCategory(ctx, "Skincare", []string{"serum", "soap"})
		require.NoError(t, err)
		return c
	}

	t.Run("add is set-like", func(t *testing.T) {
		s := service.NewCategoryService(newFakeCategoryStore())
		c := newCategory(t, s)

		got, err := s.AddSubCategory(ctx, c.ID, " Lotion ")
		require.NoError(t, err)
		assert.Equal(t, []string{"serum", "soap", "lotion"}, got.SubCategory)

		got, err = s.AddSubCategory(ctx, c.ID, "SERUM")
		require.NoError(t, err)
		assert.Equal(t, []string{"serum", "soap", "lotion"}, got.SubCategory)
	})

	t.Run("rename keeps position", func(t *testing.T) {
		s := service.NewCategoryService(newFakeCategoryStore())
		c := newCategory(t, s)

		got, err := s.RenameSubCategory(ctx, c.ID, "Serum", "Face Serum")
		require.NoError(t, err)
		assert.Equal(t, []string{"face serum", "soap"}, got.SubCategory)
	})

	t.Run("rename of a missing value", func(t *testing.T) {
		s := service.NewCategoryService(newFakeCategoryStore())
		c := newCategory(t, s)

		_, err := s.RenameSubCategory(ctx, c.ID, "lotion", "cream")
		require.ErrorIs(t, err, domain.ErrSubCategoryNotFound)
	})

	t.Run("remove", func(t *testing.T) {
		s := service.NewCategoryService(newFakeCategoryStore())
		c := newCategory(t, s)

		got, err := s.RemoveSubCategory(ctx, c.ID, " SOAP ")
		require.NoError(t, err)
		assert.Equal(t, []string{"serum"}, got.SubCategory)
	})

	t.Run("list", func(t *testing.T) {
		s := service.NewCategoryService(newFakeCategoryStore())
		c := newCategory(t, s)

		vs, err := s.SubCategories(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"serum", "soap"}, vs)
	})
}
