// internal/domain/product/service.go
package product

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/your-org/storefront-client/internal/api"
)

// Service wraps the product endpoints of the storefront API
type Service struct {
	client *api.Client
}

// NewService creates a new product service
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// ListOptions are the query parameters of the product list endpoint.
// Zero values are omitted from the request.
type ListOptions struct {
	Page           int
	PerPage        int
	CategoryID     int
	Category       string
	Search         string
	SortBy         string // price, name, rating, created_at
	Order          string // asc, desc
	MinPrice       *float64
	MaxPrice       *float64
	ShowOutOfStock bool
}

// Pagination represents server-side pagination information
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}

// ListResponse represents the product list response
type ListResponse struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// Suggestion is a lightweight search suggestion entry
type Suggestion struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Price Price  `json:"price"`
}

// List retrieves products with optional filtering, sorting and pagination
func (s *Service) List(ctx context.Context, opts ListOptions) (*ListResponse, error) {
	query := url.Values{}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(opts.PerPage))
	}
	if opts.CategoryID > 0 {
		query.Set("category_id", strconv.Itoa(opts.CategoryID))
	}
	if opts.Category != "" {
		query.Set("category", opts.Category)
	}
	if opts.Search != "" {
		query.Set("search", opts.Search)
	}
	if opts.SortBy != "" {
		query.Set("sort_by", opts.SortBy)
	}
	if opts.Order != "" {
		query.Set("order", opts.Order)
	}
	if opts.MinPrice != nil {
		query.Set("min_price", strconv.FormatFloat(*opts.MinPrice, 'f', -1, 64))
	}
	if opts.MaxPrice != nil {
		query.Set("max_price", strconv.FormatFloat(*opts.MaxPrice, 'f', -1, 64))
	}
	if opts.ShowOutOfStock {
		query.Set("show_out_of_stock", "true")
	}

	var resp ListResponse
	if err := s.client.Get(ctx, "/products/", query, &resp); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return &resp, nil
}

// Get retrieves a single product with its reviews
func (s *Service) Get(ctx context.Context, productID int) (*Product, error) {
	var resp Product
	if err := s.client.Get(ctx, fmt.Sprintf("/products/%d", productID), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", productID, err)
	}
	return &resp, nil
}

// Search returns search suggestions for a partial query. The server
// answers with an empty list for queries shorter than two characters.
func (s *Service) Search(ctx context.Context, q string) ([]Suggestion, error) {
	query := url.Values{}
	query.Set("q", q)

	var resp struct {
		Suggestions []Suggestion `json:"suggestions"`
	}
	if err := s.client.Get(ctx, "/products/search", query, &resp); err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return resp.Suggestions, nil
}
