// internal/domain/product/entity.go
package product

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Price is a decimal amount as the API serializes it: sometimes a JSON
// number, sometimes a numeric string. The raw text is preserved so
// formatting and comparison decide for themselves how to interpret it.
type Price string

// UnmarshalJSON accepts both a JSON number and a string
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid price string: %w", err)
		}
		*p = Price(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid price: %w", err)
	}
	*p = Price(n.String())
	return nil
}

// MarshalJSON emits the price as a JSON number when it parses as one,
// otherwise as a string.
func (p Price) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseFloat(string(p), 64); err == nil {
		return []byte(p), nil
	}
	return json.Marshal(string(p))
}

// Float64 parses the price as a floating value
func (p Price) Float64() (float64, error) {
	return strconv.ParseFloat(string(p), 64)
}

// String returns the raw price text
func (p Price) String() string {
	return string(p)
}

// Product represents a catalog product as returned by the API
type Product struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         Price   `json:"price"`
	CategoryID    int     `json:"category_id"`
	CategoryName  string  `json:"category_name"`
	StockQuantity int     `json:"stock_quantity"`
	ImageURL      string  `json:"image_url"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
	// Timestamps arrive as bare ISO 8601 strings without a timezone, so
	// they are kept as text rather than time.Time.
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`

	// Populated on the product detail endpoint only
	Reviews []Review `json:"reviews,omitempty"`
}

// UnmarshalJSON honors the legacy "category" and "stock" aliases some
// older API responses still carry.
func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	aux := struct {
		*alias
		LegacyCategory string `json:"category"`
		LegacyStock    *int   `json:"stock"`
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if p.CategoryName == "" {
		p.CategoryName = aux.LegacyCategory
	}
	if p.StockQuantity == 0 && aux.LegacyStock != nil {
		p.StockQuantity = *aux.LegacyStock
	}
	return nil
}

// InStock reports whether the product can be ordered. A product with
// stock 0 is unorderable.
func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}

// Review represents a customer review on the product detail view
type Review struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	UserID    int    `json:"user_id"`
	UserName  string `json:"user_name"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}

// Category represents a product category from the catalog
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	ParentID    *int   `json:"parent_id"`
	Description string `json:"description"`
}
