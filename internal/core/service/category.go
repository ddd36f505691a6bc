package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dsmarket/product-service/internal/core/domain"
	"github.com/dsmarket/product-service/internal/core/port"
	"github.com/google/uuid"
)

var _ port.CategoryManager = (*CategoryService)(nil)

type CategoryService struct {
	categories port.CategoryStore
}

func NewCategoryService(categories port.CategoryStore) CategoryService {
	return CategoryService{categories}
}

func (s CategoryService) AddCategory(
	ctx context.Context, name string, subCategory []string,
) (domain.Category, error) {
	const op = "CategoryService.AddCategory"

	c := domain.Category{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(name),
		SubCategory: domain.NormalizeSubCategories(subCategory),
	}

	c, err := s.categories.SaveCategory(ctx, c)
	if err != nil {
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (s CategoryService) FindAllCategories(
	ctx context.Context,
) ([]domain.Category, error) {
	const op = "CategoryService.FindAllCategories"

	cs, err := s.categories.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cs, nil
}

func (s CategoryService) FindCategoryByID(
	ctx context.Context, id string,
) (domain.Category, error) {
	const op = "CategoryService.FindCategoryByID"

	c, err := s.categories.Category(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (s CategoryService) RenameCategory(
	ctx context.Context, id, name string,
) (domain.Category, error) {
	const op = "CategoryService.RenameCategory"

	c, err := s.categories.Category(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}

	c.Name = strings.TrimSpace(name)

	c, err = s.categories.UpdateCategory(ctx, c)
	if err != nil {
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (s CategoryService) RemoveCategory(
	ctx context.Context, id string,
) (domain.Category, error) {
	const op = "CategoryService.RemoveCategory"

	c, err := s.categories.DeleteCategory(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (s CategoryService) AddSubCategory(
	ctx context.Context, id, name string,
) (domain.Category, error) {
	const op = "CategoryService.AddSubCategory"

	c, err := s.categories.Category(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}

	c.SubCategory = domain.MergeSet(
		c.SubCategory, domain.NormalizeSubCategories([]string{name}),
	)

	c, err = s.categories.UpdateCategory(ctx, c)
	if err != nil {
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (s CategoryService) SubCategories(
	ctx context.Context, id string,
) ([]string, error) {
	const op = "CategoryService.SubCategories"

	c, err := s.categories.Category(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c.SubCategory, nil
}

func (s CategoryService) RenameSubCategory(
	ctx context.Context, id, oldName, newName string,
) (domain.Category, error) {
	const op = "CategoryService.RenameSubCategory"

	c, err := s.categories.Category(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}

	i := slices.Index(c.SubCategory, strings.ToLower(strings.TrimSpace(oldName)))
	if i == -1 {
		return domain.Category{}, fmt.Errorf(
			"%s: %w", op, domain.ErrSubCategoryNotFound,
		)
	}
	c.SubCategory[i] = strings.ToLower(strings.TrimSpace(newName))

	c, err = s.categories.UpdateCategory(ctx, c)
	if err != nil {
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (s CategoryService) RemoveSubCategory(
	ctx context.Context, id, name string,
) (domain.Category, error) {
	const op = "CategoryService.RemoveSubCategory"

	c, err := s.categories.Category(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}

	name = strings.ToLower(strings.TrimSpace(name))
	c.SubCategory = slices.DeleteFunc(c.SubCategory, func(v string) bool {
		return v == name
	})

	c, err = s.categories.UpdateCategory(ctx, c)
	if err != nil {
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}
