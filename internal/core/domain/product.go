package domain

import (
	"slices"
	"strings"
	"time"
)

// PlaceholderImageURL is assigned when a product is created without images.
const PlaceholderImageURL = "https://ds-nature-ayur.s3.ap-southeast-1.amazonaws.com/defaultImages/No-Image-Placeholder.svg.png"

type Product struct {
	ID          string
	ProductCode string
	Name        string
	Description string
	Price       float64
	Category    string
	SubCategory []string
	Brand       string
	Images      []string
	Stock       int
	SoldStock   int
	Rating      float64
	NumReviews  int
	Reviews     []string
	Seller      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductUpdate carries a partial product mutation. Nil fields are left
// untouched. SubCategory and Reviews are merged set-like into the existing
// sequences. Seller and ProductCode are immutable and have no fields here.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	Brand       *string
	Stock       *int
	Rating      *float64
	NumReviews  *int
	Images      []string
	SubCategory []string
	Reviews     []string
}

// NormalizeSubCategories trims, lowercases and de-duplicates the values,
// preserving the original order. Empty values are dropped.
func NormalizeSubCategories(vs []string) []string {
	var out []string
	for _, v := range vs {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// MergeSet appends the values absent from dst, preserving order.
func MergeSet(dst, values []string) []string {
	for _, v := range values {
		if !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}

type LineItem struct {
	ProductID string
	Quantity  int
}
