package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dsmarket/product-service/internal/core/domain"
	"github.com/dsmarket/product-service/internal/core/port"
	"github.com/dsmarket/product-service/pkg/prodcode"
	"github.com/google/uuid"
)

const (
	productCodePrefix = "PD"

	newArrivalsWindow   = 24 * time.Hour
	newArrivalsLimit    = 10
	newArrivalsFallback = 4

	popularLimit = 10
)

var _ port.ProductCatalog = (*CatalogService)(nil)

// CatalogService implements product CRUD and the listing query engine on top
// of a persistent product store.
type CatalogService struct {
	products port.ProductStore
}

func NewCatalogService(products port.ProductStore) CatalogService {
	return CatalogService{products}
}

func (s CatalogService) AddProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "CatalogService.AddProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p.ID = uuid.NewString()
	p.ProductCode = prodcode.Generate(productCodePrefix)
	p.Category = strings.ToLower(strings.TrimSpace(p.Category))
	p.SubCategory = domain.NormalizeSubCategories(p.SubCategory)
	if len(p.Images) == 0 {
		p.Images = []string{domain.PlaceholderImageURL}
	}

	p, err := s.products.SaveProduct(ctx, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s CatalogService) UpdateProduct(
	ctx context.Context, id string, upd domain.ProductUpdate, sellerID string,
) (domain.Product, error) {
	const op = "CatalogService.UpdateProduct"

	p, err := s.products.Product(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if p.Seller != sellerID {
		return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrNotOwner)
	}

	applyUpdate(&p, upd)

	p, err = s.products.UpdateProduct(ctx, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func applyUpdate(p *domain.Product, upd domain.ProductUpdate) {
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Category != nil {
		p.Category = strings.ToLower(strings.TrimSpace(*upd.Category))
	}
	if upd.Brand != nil {
		p.Brand = *upd.Brand
	}
	if upd.Stock != nil {
		p.Stock = *upd.Stock
	}
	if upd.Rating != nil {
		p.Rating = *upd.Rating
	}
	if upd.NumReviews != nil {
		p.NumReviews = *upd.NumReviews
	}
	if len(upd.Images) != 0 {
		p.Images = upd.Images
	}
	if len(upd.SubCategory) != 0 {
		p.SubCategory = domain.MergeSet(
			p.SubCategory, domain.NormalizeSubCategories(upd.SubCategory),
		)
	}
	if len(upd.Reviews) != 0 {
		p.Reviews = domain.MergeSet(p.Reviews, upd.Reviews)
	}
}

func (s CatalogService) RemoveProduct(
	ctx context.Context, id, sellerID string,
) (domain.Product, error) {
	const op = "CatalogService.RemoveProduct"

	p, err := s.products.Product(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if p.Seller != sellerID {
		return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrNotOwner)
	}

	if err := s.products.DeleteProduct(ctx, id); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// FindAllProducts executes the listing query. The price bounds in the result
// always cover the entire catalog, not the filtered subset.
func (s CatalogService) FindAllProducts(
	ctx context.Context, q domain.ProductQuery,
) (domain.ProductPage, error) {
	const op = "CatalogService.FindAllProducts"

	q = q.Normalize()

	products, matched, err := s.products.QueryProducts(ctx, q)
	if err != nil {
		return domain.ProductPage{}, fmt.Errorf("%s: %w", op, err)
	}

	minPrice, maxPrice, err := s.products.PriceBounds(ctx)
	if err != nil {
		return domain.ProductPage{}, fmt.Errorf("%s: %w", op, err)
	}

	page := domain.ProductPage{
		Products: products,
		Total:    int(math.Ceil(float64(matched) / float64(q.Limit))),
		MaxPrice: maxPrice,
		MinPrice: minPrice,
	}
	return page, nil
}

func (s CatalogService) FindProductByID(
	ctx context.Context, id string,
) (domain.Product, error) {
	const op = "CatalogService.FindProductByID"

	p, err := s.products.Product(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s CatalogService) FindProductsBySeller(
	ctx context.Context, sellerID string,
) ([]domain.Product, error) {
	const op = "CatalogService.FindProductsBySeller"

	ps, err := s.products.ProductsBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

// FindNewArrivals returns products created within the last 24 hours, newest
// first. When fewer than 4 match, it falls back to the most recent products
// overall.
func (s CatalogService) FindNewArrivals(
	ctx context.Context,
) ([]domain.Product, error) {
	const op = "CatalogService.FindNewArrivals"

	since := time.Now().Add(-newArrivalsWindow)
	ps, err := s.products.ProductsCreatedAfter(ctx, since, newArrivalsLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(ps) < newArrivalsFallback {
		ps, err = s.products.RecentProducts(ctx, newArrivalsLimit)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return ps, nil
}

func (s CatalogService) FindPopularProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	const op = "CatalogService.FindPopularProducts"

	ps, err := s.products.PopularProducts(ctx, popularLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}
