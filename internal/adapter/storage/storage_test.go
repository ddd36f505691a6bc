package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dsmarket/product-service/internal/core/domain"
)

func TestTextArray(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		vs := []string{"serum", "soap", "face cream"}
		assert.Equal(t, vs, fromTextArray(toTextArray(vs)))
	})

	t.Run("round trip of special characters", func(t *testing.T) {
		tests := []struct {
			name string
			vs   []string
		}{
			{"comma", []string{"home, garden", "soap"}},
			{"quotes", []string{`17" monitor`, "soap"}},
			{"braces", []string{"{serum}", "soap"}},
			{"backslash", []string{`a\b`, "soap"}},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.vs, fromTextArray(toTextArray(tc.vs)))
			})
		}
	})

	t.Run("literal format", func(t *testing.T) {
		assert.Equal(t, `{"home, garden","soap"}`,
			toTextArray([]string{"home, garden", "soap"}))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "{}", toTextArray(nil))
		assert.Nil(t, fromTextArray("{}"))
	})

	t.Run("unquoted values from the driver", func(t *testing.T) {
		assert.Equal(t,
			[]string{"face cream", "soap"},
			fromTextArray(`{"face cream",soap}`),
		)
	})
}

func TestBuildFilter(t *testing.T) {
	t.Run("search only", func(t *testing.T) {
		where, args := buildFilter(domain.ProductQuery{Search: "soap"})
		assert.Equal(t, "name ILIKE '%' || $1 || '%'", where)
		assert.Equal(t, []any{"soap"}, args)
	})

	t.Run("empty search matches everything", func(t *testing.T) {
		where, args := buildFilter(domain.ProductQuery{})
		assert.Equal(t, "name ILIKE '%' || $1 || '%'", where)
		assert.Equal(t, []any{""}, args)
	})

	t.Run("all filters", func(t *testing.T) {
		where, args := buildFilter(domain.ProductQuery{
			Search:        "soap",
			Category:      "skincare",
			SubCategories: []string{"serum", "lotion"},
		})
		assert.Equal(t,
			"name ILIKE '%' || $1 || '%'"+
				" AND category = $2 AND sub_category && $3::text[]",
			where,
		)
		assert.Equal(t, []any{"soap", "skincare", `{"serum","lotion"}`}, args)
	})
}
