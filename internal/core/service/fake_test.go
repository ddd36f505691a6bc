package service_test

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dsmarket/product-service/internal/core/domain"
	"github.com/dsmarket/product-service/internal/core/port"
)

// fakeProductStore is an in-memory port.ProductStore with the same observable
// contract as the SQL repository, including the conditional stock decrement.
type fakeProductStore struct {
	mu sync.RWMutex
	m  map[string]domain.Product
}

var _ port.ProductStore = (*fakeProductStore)(nil)

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{m: make(map[string]domain.Product)}
}

func (s *fakeProductStore) snapshot() map[string]domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.Product, len(s.m))
	for k, v := range s.m {
		out[k] = v
	}
	return out
}

func (s *fakeProductStore) SaveProduct(
	_ context.Context, p domain.Product,
) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.m {
		if v.ProductCode == p.ProductCode {
			return domain.Product{}, domain.ErrDuplicateCode
		}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = p.CreatedAt
	s.m[p.ID] = p
	return p, nil
}

func (s *fakeProductStore) Product(
	_ context.Context, id string,
) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.m[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (s *fakeProductStore) UpdateProduct(
	_ context.Context, p domain.Product,
) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[p.ID]; !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	p.UpdatedAt = time.Now()
	s.m[p.ID] = p
	return p, nil
}

func (s *fakeProductStore) DeleteProduct(
	_ context.Context, id string,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(s.m, id)
	return nil
}

func (s *fakeProductStore) ProductsBySeller(
	_ context.Context, sellerID string,
) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Product
	for _, p := range s.m {
		if p.Seller == sellerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeProductStore) QueryProducts(
	_ context.Context, q domain.ProductQuery,
) ([]domain.Product, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []domain.Product
	for _, p := range s.m {
		if !strings.Contains(
			strings.ToLower(p.Name), strings.ToLower(q.Search),
		) {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if len(q.SubCategories) != 0 && !overlaps(p.SubCategory, q.SubCategories) {
			continue
		}
		matched = append(matched, p)
	}

	sortProducts(matched, q.SortBy, q.Order)

	start := q.Offset()
	if start >= len(matched) {
		return nil, len(matched), nil
	}
	end := min(start+q.Limit, len(matched))
	return matched[start:end], len(matched), nil
}

func overlaps(a, b []string) bool {
	for _, v := range a {
		if slices.Contains(b, v) {
			return true
		}
	}
	return false
}

func sortProducts(ps []domain.Product, sortBy string, order int) {
	slices.SortStableFunc(ps, func(a, b domain.Product) int {
		var c int
		switch sortBy {
		case "name":
			c = cmp.Compare(a.Name, b.Name)
		case "price":
			c = cmp.Compare(a.Price, b.Price)
		case "rating":
			c = cmp.Compare(a.Rating, b.Rating)
		case "stock":
			c = cmp.Compare(a.Stock, b.Stock)
		case "soldStock":
			c = cmp.Compare(a.SoldStock, b.SoldStock)
		default:
			c = a.CreatedAt.Compare(b.CreatedAt)
		}
		return c * order
	})
}

func (s *fakeProductStore) PriceBounds(
	_ context.Context,
) (minPrice, maxPrice float64, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	first := true
	for _, p := range s.m {
		if first {
			minPrice, maxPrice = p.Price, p.Price
			first = false
			continue
		}
		minPrice = min(minPrice, p.Price)
		maxPrice = max(maxPrice, p.Price)
	}
	return minPrice, maxPrice, nil
}

func (s *fakeProductStore) ProductsCreatedAfter(
	_ context.Context, since time.Time, limit int,
) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Product
	for _, p := range s.m {
		if !p.CreatedAt.Before(since) {
			out = append(out, p)
		}
	}
	sortProducts(out, "createdAt", -1)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeProductStore) RecentProducts(
	_ context.Context, limit int,
) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Product
	for _, p := range s.m {
		out = append(out, p)
	}
	sortProducts(out, "createdAt", -1)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeProductStore) PopularProducts(
	_ context.Context, limit int,
) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Product
	for _, p := range s.m {
		if p.SoldStock > 0 {
			out = append(out, p)
		}
	}
	sortProducts(out, "soldStock", -1)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeProductStore) ReserveStock(
	_ context.Context, id string, qty int,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.m[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	if p.Stock < qty {
		return domain.ErrInsufficientStock
	}
	p.Stock -= qty
	s.m[id] = p
	return nil
}

func (s *fakeProductStore) RestoreStock(
	_ context.Context, id string, qty int,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.m[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Stock += qty
	s.m[id] = p
	return nil
}

func (s *fakeProductStore) AddSoldStock(
	_ context.Context, id string, qty int,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.m[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.SoldStock += qty
	s.m[id] = p
	return nil
}

// fakeStockEventProducer records the published events.
type fakeStockEventProducer struct {
	mu     sync.Mutex
	events []domain.StockEvent
}

var _ port.StockEventProducer = (*fakeStockEventProducer)(nil)

func (p *fakeStockEventProducer) ProduceStockEvents(
	_ context.Context, evts []domain.StockEvent,
) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evts...)
	return nil
}

func (p *fakeStockEventProducer) published() []domain.StockEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.events)
}

// fakeCategoryStore is an in-memory port.CategoryStore.
type fakeCategoryStore struct {
	mu sync.RWMutex
	m  map[string]domain.Category
}

var _ port.CategoryStore = (*fakeCategoryStore)(nil)

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{m: make(map[string]domain.Category)}
}

func (s *fakeCategoryStore) SaveCategory(
	_ context.Context, c domain.Category,
) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.m {
		if v.Name == c.Name {
			return domain.Category{}, domain.ErrDuplicateCategory
		}
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	s.m[c.ID] = c
	return c, nil
}

func (s *fakeCategoryStore) Category(
	_ context.Context, id string,
) (domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.m[id]
	if !ok {
		return domain.Category{}, domain.ErrCategoryNotFound
	}
	return c, nil
}

func (s *fakeCategoryStore) Categories(
	_ context.Context,
) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Category
	for _, c := range s.m {
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeCategoryStore) UpdateCategory(
	_ context.Context, c domain.Category,
) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[c.ID]; !ok {
		return domain.Category{}, domain.ErrCategoryNotFound
	}
	c.UpdatedAt = time.Now()
	s.m[c.ID] = c
	return c, nil
}

func (s *fakeCategoryStore) DeleteCategory(
	_ context.Context, id string,
) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.m[id]
	if !ok {
		return domain.Category{}, domain.ErrCategoryNotFound
	}
	delete(s.m, id)
	return c, nil
}
