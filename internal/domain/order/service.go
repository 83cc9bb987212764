// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync/atomic"

	"github.com/your-org/storefront-client/internal/api"
)

// ErrBusy is returned when a checkout is attempted while another one is
// still in flight.
var ErrBusy = errors.New("checkout already in flight")

// Service wraps the order endpoints of the storefront API. Checkout is
// guarded by a busy flag so a double submission cannot place two orders;
// everything else is plain request/response.
type Service struct {
	client      *api.Client
	checkingOut atomic.Bool
}

// NewService creates a new order service
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// CheckoutRequest carries the shipping address the order ships to
type CheckoutRequest struct {
	ShippingAddressID int `json:"shipping_address_id"`
}

// Pagination represents server-side pagination information
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}

// ListResponse represents the order history response
type ListResponse struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

// mutationResponse is the envelope the API wraps order mutations in
type mutationResponse struct {
	Message string `json:"message"`
	Order   *Order `json:"order"`
}

// CheckingOut reports whether a checkout is in flight. Pages use this to
// disable the place-order control.
func (s *Service) CheckingOut() bool {
	return s.checkingOut.Load()
}

// Checkout creates an order from the current cart. The server validates
// stock, freezes line items at current prices and clears the cart.
func (s *Service) Checkout(ctx context.Context, shippingAddressID int) (*Order, error) {
	if shippingAddressID <= 0 {
		return nil, &api.ValidationError{Field: "shipping_address_id", Message: "shipping address is required"}
	}

	if !s.checkingOut.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.checkingOut.Store(false)

	var resp mutationResponse
	req := CheckoutRequest{ShippingAddressID: shippingAddressID}
	if err := s.client.Post(ctx, "/orders/checkout", req, &resp); err != nil {
		return nil, fmt.Errorf("checkout failed: %w", err)
	}
	return resp.Order, nil
}

// ListOptions are the query parameters of the order history endpoint
type ListOptions struct {
	Page    int
	PerPage int
	Status  Status // empty lists all statuses
}

// List retrieves the current user's orders, newest first
func (s *Service) List(ctx context.Context, opts ListOptions) (*ListResponse, error) {
	query := url.Values{}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(opts.PerPage))
	}
	if opts.Status != "" {
		query.Set("status", string(opts.Status))
	}

	var resp ListResponse
	if err := s.client.Get(ctx, "/orders/", query, &resp); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return &resp, nil
}

// Get retrieves a single order
func (s *Service) Get(ctx context.Context, orderID int) (*Order, error) {
	var resp Order
	if err := s.client.Get(ctx, fmt.Sprintf("/orders/%d", orderID), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get order %d: %w", orderID, err)
	}
	return &resp, nil
}

// Cancel cancels an order. The known order snapshot is checked first so
// delivered and already-cancelled orders never reach the network.
func (s *Service) Cancel(ctx context.Context, o *Order) (*Order, error) {
	if !o.CanCancel() {
		return nil, &api.ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("cannot cancel order with status: %s", o.Status),
		}
	}

	var resp mutationResponse
	if err := s.client.Post(ctx, fmt.Sprintf("/orders/%d/cancel", o.ID), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to cancel order %d: %w", o.ID, err)
	}
	return resp.Order, nil
}

// GetStats retrieves the current user's order statistics
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	var resp Stats
	if err := s.client.Get(ctx, "/orders/stats", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get order stats: %w", err)
	}
	return &resp, nil
}
