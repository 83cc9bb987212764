// internal/domain/product/filter_test.go
package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func names(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestFilterIdentity(t *testing.T) {
	products := []Product{
		{Name: "Banana", Price: "5", CategoryName: "Fruit"},
		{Name: "Apple", Price: "10", CategoryName: "Fruit"},
		{Name: "Chips", Price: "3", CategoryName: "Snacks"},
	}

	// Empty query plus the "all" sentinel removes nothing; the list is
	// only reordered by the sort key.
	got := Filter{Query: "", Category: CategoryAll, Sort: SortPriceAsc}.Apply(products)
	assert.Equal(t, []string{"Chips", "Banana", "Apple"}, names(got))
	assert.Len(t, got, len(products))
}

func TestFilterSortOrders(t *testing.T) {
	products := []Product{
		{Name: "Apple", Price: "10"},
		{Name: "Banana", Price: "5"},
	}

	tests := []struct {
		name     string
		sort     SortKey
		expected []string
	}{
		{"price ascending", SortPriceAsc, []string{"Banana", "Apple"}},
		{"price descending", SortPriceDesc, []string{"Apple", "Banana"}},
		{"name ascending", SortNameAsc, []string{"Apple", "Banana"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter{Category: CategoryAll, Sort: tt.sort}.Apply(products)
			assert.Equal(t, tt.expected, names(got))
		})
	}
}

func TestFilterSearchCaseInsensitive(t *testing.T) {
	products := []Product{
		{Name: "apple pie", Description: "sweet"},
		{Name: "Banana", Description: "yellow fruit"},
	}

	got := Filter{Query: "APP", Category: CategoryAll}.Apply(products)
	assert.Equal(t, []string{"apple pie"}, names(got))
}

func TestFilterSearchMatchesDescription(t *testing.T) {
	products := []Product{
		{Name: "Widget", Description: "a portable gadget"},
		{Name: "Gadget", Description: "plain"},
	}

	got := Filter{Query: "gadget", Category: CategoryAll}.Apply(products)
	assert.Equal(t, []string{"Widget", "Gadget"}, names(got))
}

func TestFilterQueryNotTrimmed(t *testing.T) {
	products := []Product{
		{Name: "Green Tea"},
		{Name: "Coffee"},
	}

	// The query keeps its whitespace: " tea" only matches a name that
	// contains a space before "tea".
	got := Filter{Query: " tea", Category: CategoryAll}.Apply(products)
	assert.Equal(t, []string{"Green Tea"}, names(got))

	got = Filter{Query: "  ", Category: CategoryAll}.Apply(products)
	assert.Empty(t, got)
}

func TestFilterCategoryExactMatch(t *testing.T) {
	products := []Product{
		{Name: "Chips", CategoryName: "Snacks"},
		{Name: "Apple", CategoryName: "Fruit"},
	}

	// Matching is case sensitive: "snack" does not match "Snacks".
	got := Filter{Category: "snack"}.Apply(products)
	assert.Empty(t, got)

	got = Filter{Category: "Snacks"}.Apply(products)
	assert.Equal(t, []string{"Chips"}, names(got))
}

func TestFilterSearchThenCategory(t *testing.T) {
	products := []Product{
		{Name: "Apple Juice", CategoryName: "Drinks"},
		{Name: "Apple", CategoryName: "Fruit"},
		{Name: "Orange Juice", CategoryName: "Drinks"},
	}

	got := Filter{Query: "apple", Category: "Drinks"}.Apply(products)
	assert.Equal(t, []string{"Apple Juice"}, names(got))
}

func TestFilterEmptyInput(t *testing.T) {
	got := Filter{Query: "x", Category: CategoryAll, Sort: SortPriceAsc}.Apply(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	products := []Product{
		{Name: "C", Price: "3"},
		{Name: "A", Price: "1"},
		{Name: "B", Price: "2"},
	}
	original := names(products)

	Filter{Category: CategoryAll, Sort: SortNameAsc}.Apply(products)
	assert.Equal(t, original, names(products))
}

func TestFilterSortIsStable(t *testing.T) {
	products := []Product{
		{Name: "First", Price: "5"},
		{Name: "Second", Price: "5"},
		{Name: "Third", Price: "5"},
	}

	got := Filter{Category: CategoryAll, Sort: SortPriceAsc}.Apply(products)
	assert.Equal(t, []string{"First", "Second", "Third"}, names(got))
}

func TestFilterNonNumericPriceDoesNotPanic(t *testing.T) {
	products := []Product{
		{Name: "Weird", Price: "n/a"},
		{Name: "Cheap", Price: "1"},
		{Name: "Dear", Price: "9"},
	}

	// The relative order of non-numeric prices among numeric ones is
	// implementation-defined; the pipeline only promises not to fail
	// and to keep all elements.
	got := Filter{Category: CategoryAll, Sort: SortPriceAsc}.Apply(products)
	assert.Len(t, got, 3)
	assert.ElementsMatch(t, []string{"Weird", "Cheap", "Dear"}, names(got))
}

func TestCategories(t *testing.T) {
	products := []Product{
		{Name: "A", CategoryName: "Fruit"},
		{Name: "B", CategoryName: "Snacks"},
		{Name: "C", CategoryName: "Fruit"},
		{Name: "D", CategoryName: ""},
		{Name: "E", CategoryName: "Drinks"},
	}

	// Distinct, non-empty, in order of first appearance.
	assert.Equal(t, []string{"Fruit", "Snacks", "Drinks"}, Categories(products))
}

func TestCategoriesEmpty(t *testing.T) {
	assert.Empty(t, Categories(nil))
}
