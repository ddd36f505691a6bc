package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dsmarket/product-service/internal/core/domain"
	"github.com/dsmarket/product-service/internal/core/port"
)

var _ port.CategoryStore = (*CategoriesRepository)(nil)

type CategoriesRepository struct {
	sqldb sqldb
}

func NewCategoriesRepository(sqldb sqldb) CategoriesRepository {
	return CategoriesRepository{sqldb}
}

func (r CategoriesRepository) SaveCategory(
	ctx context.Context, c domain.Category,
) (domain.Category, error) {
	const op = "CategoriesRepository.SaveCategory"

	query := `
		INSERT INTO categories (id, name, sub_category)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at;`

	err := r.sqldb.QueryRowContext(
		ctx, query, c.ID, c.Name, toTextArray(c.SubCategory),
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Category{}, fmt.Errorf(
				"%s: %w", op, domain.ErrDuplicateCategory,
			)
		}
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (r CategoriesRepository) Category(
	ctx context.Context, id string,
) (domain.Category, error) {
	const op = "CategoriesRepository.Category"

	query := `
		SELECT id, name, sub_category, created_at, updated_at
		FROM categories WHERE id = $1;`

	c, err := scanCategory(r.sqldb.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Category{}, fmt.Errorf(
				"%s: %w", op, domain.ErrCategoryNotFound,
			)
		}
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (r CategoriesRepository) Categories(
	ctx context.Context,
) ([]domain.Category, error) {
	const op = "CategoriesRepository.Categories"

	query := `
		SELECT id, name, sub_category, created_at, updated_at
		FROM categories ORDER BY name ASC;`

	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var cs []domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		cs = append(cs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cs, nil
}

func (r CategoriesRepository) UpdateCategory(
	ctx context.Context, c domain.Category,
) (domain.Category, error) {
	const op = "CategoriesRepository.UpdateCategory"

	query := `
		UPDATE categories
		SET name = $2, sub_category = $3, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at;`

	err := r.sqldb.QueryRowContext(
		ctx, query, c.ID, c.Name, toTextArray(c.SubCategory),
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Category{}, fmt.Errorf(
				"%s: %w", op, domain.ErrCategoryNotFound,
			)
		}
		if isUniqueViolation(err) {
			return domain.Category{}, fmt.Errorf(
				"%s: %w", op, domain.ErrDuplicateCategory,
			)
		}
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (r CategoriesRepository) DeleteCategory(
	ctx context.Context, id string,
) (domain.Category, error) {
	const op = "CategoriesRepository.DeleteCategory"

	query := `
		DELETE FROM categories WHERE id = $1
		RETURNING id, name, sub_category, created_at, updated_at;`

	c, err := scanCategory(r.sqldb.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Category{}, fmt.Errorf(
				"%s: %w", op, domain.ErrCategoryNotFound,
			)
		}
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func scanCategory(row rowScanner) (domain.Category, error) {
	var c domain.Category
	var subCategory string

	err := row.Scan(
		&c.ID, &c.Name, &subCategory, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return domain.Category{}, err
	}

	c.SubCategory = fromTextArray(subCategory)
	return c, nil
}
