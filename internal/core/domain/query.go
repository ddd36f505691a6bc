package domain

import "strings"

const (
	DefaultPageLimit = 10
	DefaultSortField = "createdAt"
)

// sortFields are the field names accepted in ProductQuery.SortBy. An unknown
// field falls back to DefaultSortField instead of failing the request.
var sortFields = map[string]struct{}{
	"createdAt": {},
	"name":      {},
	"price":     {},
	"rating":    {},
	"stock":     {},
	"soldStock": {},
}

// ProductQuery holds untrusted listing filters. Normalize must be called
// before the query is executed.
type ProductQuery struct {
	Search        string
	Category      string
	SubCategories []string
	SortBy        string
	Order         int
	Page          int
	Limit         int
}

// Normalize coerces the filters into a safe executable form: category and
// subcategories are case/whitespace normalized, page and limit become
// positive integers, order becomes -1 or +1 and an unknown sort field is
// replaced with the default. A negative offset can never result.
func (q ProductQuery) Normalize() ProductQuery {
	q.Category = strings.ToLower(strings.TrimSpace(q.Category))
	q.SubCategories = NormalizeSubCategories(q.SubCategories)

	if _, ok := sortFields[q.SortBy]; !ok {
		q.SortBy = DefaultSortField
	}
	if q.Order != 1 {
		q.Order = -1
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageLimit
	}
	return q
}

// Offset returns the number of rows to skip. Valid only after Normalize.
func (q ProductQuery) Offset() int {
	return q.Limit * (q.Page - 1)
}

// ProductPage is a single listing page. Total is the page count, not the row
// count. MinPrice and MaxPrice are computed over the whole catalog regardless
// of the active filters.
type ProductPage struct {
	Products []Product
	Total    int
	MaxPrice float64
	MinPrice float64
}
