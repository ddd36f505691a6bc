package httphandler

import (
	"time"

	"github.com/dsmarket/product-service/internal/core/domain"
)

type Product struct {
	ID          string    `json:"id"`
	ProductCode string    `json:"productCode"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	SubCategory []string  `json:"subCategory"`
	Brand       string    `json:"brand"`
	Images      []string  `json:"images"`
	Stock       int       `json:"stock"`
	SoldStock   int       `json:"soldStock"`
	Rating      float64   `json:"rating"`
	NumReviews  int       `json:"numReviews"`
	Reviews     []string  `json:"reviews"`
	Seller      string    `json:"seller"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toProduct(p domain.Product) Product {
	return Product{
		ID:          p.ID,
		ProductCode: p.ProductCode,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		SubCategory: p.SubCategory,
		Brand:       p.Brand,
		Images:      p.Images,
		Stock:       p.Stock,
		SoldStock:   p.SoldStock,
		Rating:      p.Rating,
		NumReviews:  p.NumReviews,
		Reviews:     p.Reviews,
		Seller:      p.Seller,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProducts(ps []domain.Product) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProduct(p))
	}
	return out
}

type ProductUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Brand       *string  `json:"brand"`
	Stock       *int     `json:"stock"`
	Rating      *float64 `json:"rating"`
	NumReviews  *int     `json:"numReviews"`
	Images      []string `json:"images"`
	SubCategory []string `json:"subCategory"`
	Reviews     []string `json:"reviews"`
}

func (u ProductUpdate) toDomain() domain.ProductUpdate {
	return domain.ProductUpdate{
		Name:        u.Name,
		Description: u.Description,
		Price:       u.Price,
		Category:    u.Category,
		Brand:       u.Brand,
		Stock:       u.Stock,
		Rating:      u.Rating,
		NumReviews:  u.NumReviews,
		Images:      u.Images,
		SubCategory: u.SubCategory,
		Reviews:     u.Reviews,
	}
}

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SubCategory []string  `json:"subCategory"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toCategory(c domain.Category) Category {
	return Category{
		ID:          c.ID,
		Name:        c.Name,
		SubCategory: c.SubCategory,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type LineItem struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type reservationRequest struct {
	Items []LineItem `json:"items"`
}

func (r reservationRequest) toDomain() []domain.LineItem {
	items := make([]domain.LineItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, domain.LineItem{
			ProductID: it.Product,
			Quantity:  it.Quantity,
		})
	}
	return items
}

type productResponse struct {
	Message string  `json:"message"`
	Product Product `json:"product"`
}

type productsResponse struct {
	Message  string    `json:"message"`
	Products []Product `json:"products"`
}

type productListResponse struct {
	Message          string    `json:"message"`
	Total            int       `json:"total"`
	Products         []Product `json:"products"`
	MaxProductsPrice float64   `json:"maxProductsPrice"`
	MinProductsPrice float64   `json:"minProductsPrice"`
}

type reservationResponse struct {
	Message       string `json:"message"`
	ReservationID string `json:"reservationId"`
}

type categoryResponse struct {
	Message  string   `json:"message"`
	Category Category `json:"category"`
}

type categoriesResponse struct {
	Message    string     `json:"message"`
	Categories []Category `json:"categories"`
}

type subCategoriesResponse struct {
	Message       string   `json:"message"`
	SubCategories []string `json:"subCategories"`
}
