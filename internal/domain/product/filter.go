// internal/domain/product/filter.go
package product

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering of a filtered product list
type SortKey string

const (
	SortNameAsc   SortKey = "name"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
)

// CategoryAll is the sentinel that disables the category filter.
const CategoryAll = "all"

// Filter derives the displayed product list from the full fetched list.
// Application order: free-text search, then category, then a stable sort.
// The result is a pure function of (list, Query, Category, Sort): no
// hidden state, safe to memoize.
type Filter struct {
	// Query is matched case-insensitively as a substring of the product
	// name or description. The query is deliberately not trimmed of
	// whitespace; a query of " " matches only products containing a
	// literal space.
	Query string
	// Category must equal the product's category exactly (case
	// sensitive). CategoryAll or empty disables the filter.
	Category string
	Sort     SortKey
}

// Apply returns a new, filtered and sorted slice. The input is never
// mutated. An empty input yields an empty output.
func (f Filter) Apply(products []Product) []Product {
	filtered := make([]Product, 0, len(products))

	query := strings.ToLower(f.Query)
	for _, p := range products {
		if query != "" && !matchesQuery(&p, query) {
			continue
		}
		if f.Category != "" && f.Category != CategoryAll && p.CategoryName != f.Category {
			continue
		}
		filtered = append(filtered, p)
	}

	switch f.Sort {
	case SortNameAsc:
		// Collator is stateful, so build one per call.
		collator := collate.New(language.English)
		sort.SliceStable(filtered, func(i, j int) bool {
			return collator.CompareString(filtered[i].Name, filtered[j].Name) < 0
		})
	case SortPriceAsc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return priceValue(filtered[i].Price) < priceValue(filtered[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(filtered, func(i, j int) bool {
			return priceValue(filtered[i].Price) > priceValue(filtered[j].Price)
		})
	}

	return filtered
}

func matchesQuery(p *Product, loweredQuery string) bool {
	return strings.Contains(strings.ToLower(p.Name), loweredQuery) ||
		strings.Contains(strings.ToLower(p.Description), loweredQuery)
}

// priceValue parses a price for comparison. A non-numeric price becomes
// NaN; every comparison against NaN is false, so such products keep their
// relative position under the stable sort. Their placement among numeric
// prices is implementation-defined.
func priceValue(p Price) float64 {
	value, err := p.Float64()
	if err != nil {
		return math.NaN()
	}
	return value
}

// Categories returns the distinct, non-empty category names present in
// the list, in order of first appearance. Used to build the category
// filter dropdown; derived once per fetch.
func Categories(products []Product) []string {
	seen := make(map[string]bool, len(products))
	categories := make([]string, 0)

	for _, p := range products {
		if p.CategoryName == "" || seen[p.CategoryName] {
			continue
		}
		seen[p.CategoryName] = true
		categories = append(categories, p.CategoryName)
	}
	return categories
}
