// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/your-org/storefront-client/internal/api"
	"github.com/your-org/storefront-client/internal/domain/product"
)

// ErrBusy is returned when a cart mutation is attempted while another
// one is still in flight.
var ErrBusy = errors.New("cart update already in flight")

// Service wraps the cart endpoints of the storefront API. Mutating calls
// are guarded by a single busy flag: a second submission while one is in
// flight is rejected rather than queued. There is no retry and no
// cancellation beyond the caller's context.
type Service struct {
	client   *api.Client
	updating atomic.Bool
}

// NewService creates a new cart service
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// AddRequest represents an add-to-cart request
type AddRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// UpdateRequest represents a cart quantity update request
type UpdateRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// mutationResponse is the envelope the API wraps cart mutations in
type mutationResponse struct {
	Message string `json:"message"`
	Cart    *Cart  `json:"cart"`
}

// Busy reports whether a cart mutation is currently in flight. Pages use
// this to disable the triggering control.
func (s *Service) Busy() bool {
	return s.updating.Load()
}

// Get retrieves the current user's cart
func (s *Service) Get(ctx context.Context) (*Cart, error) {
	var resp Cart
	if err := s.client.Get(ctx, "/cart/", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return &resp, nil
}

// Add adds a product to the cart. Quantity must be at least 1; when the
// product snapshot is known, use AddProduct to also guard against stock.
func (s *Service) Add(ctx context.Context, req AddRequest) (*Cart, error) {
	if req.Quantity < 1 {
		return nil, &api.ValidationError{Field: "quantity", Message: "must be at least 1"}
	}

	if !s.updating.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.updating.Store(false)

	var resp mutationResponse
	if err := s.client.Post(ctx, "/cart/add", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}
	return resp.Cart, nil
}

// AddProduct adds a product to the cart with a client-side stock guard:
// quantities exceeding the known stock are rejected before any network
// call is made.
func (s *Service) AddProduct(ctx context.Context, p *product.Product, quantity int) (*Cart, error) {
	if quantity > p.StockQuantity {
		return nil, &api.ValidationError{
			Field:   "quantity",
			Message: fmt.Sprintf("only %d in stock", p.StockQuantity),
		}
	}
	return s.Add(ctx, AddRequest{ProductID: p.ID, Quantity: quantity})
}

// Update sets the quantity of a cart line
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Cart, error) {
	if req.Quantity < 1 {
		return nil, &api.ValidationError{Field: "quantity", Message: "must be at least 1"}
	}

	if !s.updating.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.updating.Store(false)

	var resp mutationResponse
	if err := s.client.Put(ctx, "/cart/update", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to update cart: %w", err)
	}
	return resp.Cart, nil
}

// UpdateItem sets a cart line's quantity with the client-side stock
// guard applied against the line's product snapshot.
func (s *Service) UpdateItem(ctx context.Context, item *Item, quantity int) (*Cart, error) {
	if !item.CanSetQuantity(quantity) {
		return nil, &api.ValidationError{
			Field:   "quantity",
			Message: "quantity exceeds available stock",
		}
	}
	return s.Update(ctx, UpdateRequest{ProductID: item.ProductID, Quantity: quantity})
}

// Remove deletes a product from the cart
func (s *Service) Remove(ctx context.Context, productID int) (*Cart, error) {
	if !s.updating.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.updating.Store(false)

	var resp mutationResponse
	if err := s.client.Delete(ctx, fmt.Sprintf("/cart/remove/%d", productID), &resp); err != nil {
		return nil, fmt.Errorf("failed to remove from cart: %w", err)
	}
	return resp.Cart, nil
}

// Clear empties the cart
func (s *Service) Clear(ctx context.Context) error {
	if !s.updating.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer s.updating.Store(false)

	if err := s.client.Delete(ctx, "/cart/clear", nil); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
