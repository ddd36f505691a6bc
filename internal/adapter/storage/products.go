package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dsmarket/product-service/internal/core/domain"
	"github.com/dsmarket/product-service/internal/core/port"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var _ port.ProductStore = (*ProductsRepository)(nil)

const productColumns = `
	id, product_code, name, description, price, category,
	sub_category, brand, images, stock, sold_stock,
	rating, num_reviews, reviews, seller_id, created_at, updated_at`

// sortColumns maps the query engine sort fields onto table columns.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"name":      "name",
	"price":     "price",
	"rating":    "rating",
	"stock":     "stock",
	"soldStock": "sold_stock",
}

type ProductsRepository struct {
	sqldb sqldb
}

func NewProductsRepository(sqldb sqldb) ProductsRepository {
	return ProductsRepository{sqldb}
}

func (r ProductsRepository) SaveProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "ProductsRepository.SaveProduct"

	query := `
		INSERT INTO products (
			id, product_code, name, description, price, category,
			sub_category, brand, images, stock, sold_stock,
			rating, num_reviews, reviews, seller_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at;`

	err := r.sqldb.QueryRowContext(ctx, query,
		p.ID, p.ProductCode, p.Name, p.Description, p.Price, p.Category,
		toTextArray(p.SubCategory), p.Brand, toTextArray(p.Images),
		p.Stock, p.SoldStock, p.Rating, p.NumReviews,
		toTextArray(p.Reviews), p.Seller,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Product{}, fmt.Errorf(
				"%s: %w", op, domain.ErrDuplicateCode,
			)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r ProductsRepository) Product(
	ctx context.Context, id string,
) (domain.Product, error) {
	const op = "ProductsRepository.Product"

	query := `SELECT` + productColumns + ` FROM products WHERE id = $1;`

	p, err := scanProduct(r.sqldb.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf(
				"%s: %w", op, domain.ErrProductNotFound,
			)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r ProductsRepository) UpdateProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "ProductsRepository.UpdateProduct"

	query := `
		UPDATE products SET
			name = $2, description = $3, price = $4, category = $5,
			sub_category = $6, brand = $7, images = $8, stock = $9,
			sold_stock = $10, rating = $11, num_reviews = $12,
			reviews = $13, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at;`

	err := r.sqldb.QueryRowContext(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Category,
		toTextArray(p.SubCategory), p.Brand, toTextArray(p.Images),
		p.Stock, p.SoldStock, p.Rating, p.NumReviews,
		toTextArray(p.Reviews),
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf(
				"%s: %w", op, domain.ErrProductNotFound,
			)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r ProductsRepository) DeleteProduct(
	ctx context.Context, id string,
) error {
	const op = "ProductsRepository.DeleteProduct"

	res, err := r.sqldb.ExecContext(
		ctx, `DELETE FROM products WHERE id = $1;`, id,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrProductNotFound)
	}
	return nil
}

func (r ProductsRepository) ProductsBySeller(
	ctx context.Context, sellerID string,
) ([]domain.Product, error) {
	const op = "ProductsRepository.ProductsBySeller"

	query := `SELECT` + productColumns + `
		FROM products WHERE seller_id = $1 ORDER BY created_at DESC;`

	ps, err := r.queryProducts(ctx, query, sellerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (r ProductsRepository) QueryProducts(
	ctx context.Context, q domain.ProductQuery,
) ([]domain.Product, int, error) {
	const op = "ProductsRepository.QueryProducts"

	where, args := buildFilter(q)

	sortCol, ok := sortColumns[q.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	dir := "DESC"
	if q.Order == 1 {
		dir = "ASC"
	}

	query := fmt.Sprintf(
		`SELECT`+productColumns+` FROM products WHERE %s
			ORDER BY %s %s LIMIT %d OFFSET %d;`,
		where, sortCol, dir, q.Limit, q.Offset(),
	)

	ps, err := r.queryProducts(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	var matched int
	countQuery := fmt.Sprintf(
		`SELECT count(*) FROM products WHERE %s;`, where,
	)
	err = r.sqldb.QueryRowContext(ctx, countQuery, args...).Scan(&matched)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return ps, matched, nil
}

func buildFilter(q domain.ProductQuery) (where string, args []any) {
	where = "name ILIKE '%' || $1 || '%'"
	args = append(args, q.Search)

	if q.Category != "" {
		args = append(args, q.Category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if len(q.SubCategories) != 0 {
		args = append(args, toTextArray(q.SubCategories))
		where += fmt.Sprintf(" AND sub_category && $%d::text[]", len(args))
	}
	return where, args
}

func (r ProductsRepository) PriceBounds(
	ctx context.Context,
) (min, max float64, err error) {
	const op = "ProductsRepository.PriceBounds"

	query := `
		SELECT COALESCE(MIN(price), 0), COALESCE(MAX(price), 0)
		FROM products;`

	err = r.sqldb.QueryRowContext(ctx, query).Scan(&min, &max)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	return min, max, nil
}

func (r ProductsRepository) ProductsCreatedAfter(
	ctx context.Context, since time.Time, limit int,
) ([]domain.Product, error) {
	const op = "ProductsRepository.ProductsCreatedAfter"

	query := `SELECT` + productColumns + `
		FROM products WHERE created_at >= $1
		ORDER BY created_at DESC LIMIT $2;`

	ps, err := r.queryProducts(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (r ProductsRepository) RecentProducts(
	ctx context.Context, limit int,
) ([]domain.Product, error) {
	const op = "ProductsRepository.RecentProducts"

	query := `SELECT` + productColumns + `
		FROM products ORDER BY created_at DESC LIMIT $1;`

	ps, err := r.queryProducts(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (r ProductsRepository) PopularProducts(
	ctx context.Context, limit int,
) ([]domain.Product, error) {
	const op = "ProductsRepository.PopularProducts"

	query := `SELECT` + productColumns + `
		FROM products WHERE sold_stock > 0
		ORDER BY sold_stock DESC LIMIT $1;`

	ps, err := r.queryProducts(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

// ReserveStock decrements stock with a conditional update, so two concurrent
// reservations can never both pass the availability check on stale reads.
func (r ProductsRepository) ReserveStock(
	ctx context.Context, id string, qty int,
) error {
	const op = "ProductsRepository.ReserveStock"

	query := `
		UPDATE products SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2;`

	res, err := r.sqldb.ExecContext(ctx, query, id, qty)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if !r.productExists(ctx, id) {
			return fmt.Errorf("%s: %w", op, domain.ErrProductNotFound)
		}
		return fmt.Errorf("%s: %w", op, domain.ErrInsufficientStock)
	}
	return nil
}

func (r ProductsRepository) RestoreStock(
	ctx context.Context, id string, qty int,
) error {
	const op = "ProductsRepository.RestoreStock"

	query := `
		UPDATE products SET stock = stock + $2, updated_at = now()
		WHERE id = $1;`

	res, err := r.sqldb.ExecContext(ctx, query, id, qty)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrProductNotFound)
	}
	return nil
}

func (r ProductsRepository) AddSoldStock(
	ctx context.Context, id string, qty int,
) error {
	const op = "ProductsRepository.AddSoldStock"

	query := `
		UPDATE products SET sold_stock = sold_stock + $2, updated_at = now()
		WHERE id = $1;`

	res, err := r.sqldb.ExecContext(ctx, query, id, qty)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrProductNotFound)
	}
	return nil
}

func (r ProductsRepository) productExists(
	ctx context.Context, id string,
) bool {
	var exists bool
	err := r.sqldb.QueryRowContext(
		ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1);`, id,
	).Scan(&exists)
	return err == nil && exists
}

func (r ProductsRepository) queryProducts(
	ctx context.Context, query string, args ...any,
) ([]domain.Product, error) {
	rows, err := r.sqldb.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ps []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	var subCategory, images, reviews string

	err := row.Scan(
		&p.ID, &p.ProductCode, &p.Name, &p.Description, &p.Price,
		&p.Category, &subCategory, &p.Brand, &images, &p.Stock,
		&p.SoldStock, &p.Rating, &p.NumReviews, &reviews, &p.Seller,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Product{}, err
	}

	p.SubCategory = fromTextArray(subCategory)
	p.Images = fromTextArray(images)
	p.Reviews = fromTextArray(reviews)
	return p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
