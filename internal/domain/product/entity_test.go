// internal/domain/product/entity_test.go
package product

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Price
	}{
		{"number", `19.99`, "19.99"},
		{"integer number", `25`, "25"},
		{"string", `"19.99"`, "19.99"},
		{"null", `null`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Price
			require.NoError(t, json.Unmarshal([]byte(tt.input), &p))
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestPriceFloat64(t *testing.T) {
	v, err := Price("12.5").Float64()
	require.NoError(t, err)
	assert.Equal(t, 12.5, v)

	_, err = Price("n/a").Float64()
	assert.Error(t, err)
}

func TestPriceMarshal(t *testing.T) {
	numeric, err := json.Marshal(Price("19.99"))
	require.NoError(t, err)
	assert.Equal(t, `19.99`, string(numeric))

	text, err := json.Marshal(Price("n/a"))
	require.NoError(t, err)
	assert.Equal(t, `"n/a"`, string(text))
}

func TestProductUnmarshal(t *testing.T) {
	data := `{
		"id": 7,
		"name": "Green Tea",
		"description": "Loose leaf",
		"price": "249.00",
		"category_id": 2,
		"category_name": "Beverages",
		"stock_quantity": 12,
		"image_url": "/uploads/products/tea.jpg"
	}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(data), &p))

	assert.Equal(t, 7, p.ID)
	assert.Equal(t, "Beverages", p.CategoryName)
	assert.Equal(t, Price("249.00"), p.Price)
	assert.Equal(t, 12, p.StockQuantity)
	assert.True(t, p.InStock())
}

func TestProductUnmarshalLegacyAliases(t *testing.T) {
	data := `{"id": 1, "name": "Old", "price": 5, "category": "Legacy", "stock": 3}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(data), &p))

	assert.Equal(t, "Legacy", p.CategoryName)
	assert.Equal(t, 3, p.StockQuantity)
}

func TestProductUnmarshalPrefersCanonicalFields(t *testing.T) {
	data := `{"id": 1, "name": "Both", "price": 5,
		"category_name": "New", "category": "Legacy",
		"stock_quantity": 8, "stock": 3}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(data), &p))

	assert.Equal(t, "New", p.CategoryName)
	assert.Equal(t, 8, p.StockQuantity)
}

func TestProductInStock(t *testing.T) {
	assert.False(t, (&Product{StockQuantity: 0}).InStock())
	assert.True(t, (&Product{StockQuantity: 1}).InStock())
}
