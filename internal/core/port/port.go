package port

import (
	"context"
	"io"
	"time"

	"github.com/dsmarket/product-service/internal/core/domain"
)

// Driven ports: contracts the core requires from its collaborators.

type ProductStore interface {
	SaveProduct(context.Context, domain.Product) (domain.Product, error)
	Product(ctx context.Context, id string) (domain.Product, error)
	UpdateProduct(context.Context, domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ProductsBySeller(ctx context.Context, sellerID string) ([]domain.Product, error)

	// QueryProducts returns the requested page and the total number of
	// matching rows. The query must be normalized by the caller.
	QueryProducts(context.Context, domain.ProductQuery) ([]domain.Product, int, error)

	// PriceBounds reports the min and max price over the entire catalog,
	// 0/0 when the catalog is empty.
	PriceBounds(context.Context) (min, max float64, err error)

	ProductsCreatedAfter(ctx context.Context, since time.Time, limit int) ([]domain.Product, error)
	RecentProducts(ctx context.Context, limit int) ([]domain.Product, error)
	PopularProducts(ctx context.Context, limit int) ([]domain.Product, error)

	// ReserveStock atomically decrements stock when at least qty units are
	// available, returning domain.ErrInsufficientStock otherwise.
	ReserveStock(ctx context.Context, id string, qty int) error
	RestoreStock(ctx context.Context, id string, qty int) error
	AddSoldStock(ctx context.Context, id string, qty int) error
}

type CategoryStore interface {
	SaveCategory(context.Context, domain.Category) (domain.Category, error)
	Category(ctx context.Context, id string) (domain.Category, error)
	Categories(context.Context) ([]domain.Category, error)
	UpdateCategory(context.Context, domain.Category) (domain.Category, error)
	DeleteCategory(ctx context.Context, id string) (domain.Category, error)
}

type StockEventProducer interface {
	ProduceStockEvents(context.Context, []domain.StockEvent) error
}

// FileStorage stores an uploaded product image and returns its public URL.
type FileStorage interface {
	StoreFile(ctx context.Context, ext, contentType string, size int64, r io.Reader) (url string, err error)
}

type TokenValidator interface {
	Validate(token string) (domain.Caller, error)
}

// Driving ports: what the transport adapters call into.

type ProductCatalog interface {
	AddProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, id string, upd domain.ProductUpdate, sellerID string) (domain.Product, error)
	RemoveProduct(ctx context.Context, id, sellerID string) (domain.Product, error)
	FindAllProducts(context.Context, domain.ProductQuery) (domain.ProductPage, error)
	FindProductByID(ctx context.Context, id string) (domain.Product, error)
	FindProductsBySeller(ctx context.Context, sellerID string) ([]domain.Product, error)
	FindNewArrivals(context.Context) ([]domain.Product, error)
	FindPopularProducts(context.Context) ([]domain.Product, error)
}

type StockReserver interface {
	Reserve(ctx context.Context, items []domain.LineItem) (reservationID string, err error)
	Confirm(ctx context.Context, reservationID string, items []domain.LineItem) error
	Cancel(ctx context.Context, reservationID string, items []domain.LineItem) error
}

type CategoryManager interface {
	AddCategory(ctx context.Context, name string, subCategory []string) (domain.Category, error)
	FindAllCategories(context.Context) ([]domain.Category, error)
	FindCategoryByID(ctx context.Context, id string) (domain.Category, error)
	RenameCategory(ctx context.Context, id, name string) (domain.Category, error)
	RemoveCategory(ctx context.Context, id string) (domain.Category, error)
	AddSubCategory(ctx context.Context, id, name string) (domain.Category, error)
	SubCategories(ctx context.Context, id string) ([]string, error)
	RenameSubCategory(ctx context.Context, id, oldName, newName string) (domain.Category, error)
	RemoveSubCategory(ctx context.Context, id, name string) (domain.Category, error)
}
