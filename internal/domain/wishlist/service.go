// internal/domain/wishlist/service.go
package wishlist

import (
	"context"
	"fmt"

	"github.com/your-org/storefront-client/internal/api"
)

// Service wraps the wishlist endpoints of the storefront API
type Service struct {
	client *api.Client
}

// NewService creates a new wishlist service
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// Get retrieves the current user's wishlist
func (s *Service) Get(ctx context.Context) (*Wishlist, error) {
	var resp Wishlist
	if err := s.client.Get(ctx, "/wishlist/", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get wishlist: %w", err)
	}
	return &resp, nil
}

// Add puts a product on the wishlist. Adding a product that is already
// present answers 409; api.IsConflict distinguishes that from other
// failures.
func (s *Service) Add(ctx context.Context, productID int) (*Item, error) {
	var resp struct {
		Message string `json:"message"`
		Item    *Item  `json:"wishlist_item"`
	}
	if err := s.client.Post(ctx, fmt.Sprintf("/wishlist/add/%d", productID), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to add product %d to wishlist: %w", productID, err)
	}
	return resp.Item, nil
}

// Remove takes a product off the wishlist
func (s *Service) Remove(ctx context.Context, productID int) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("/wishlist/remove/%d", productID), nil); err != nil {
		return fmt.Errorf("failed to remove product %d from wishlist: %w", productID, err)
	}
	return nil
}

// Clear empties the wishlist
func (s *Service) Clear(ctx context.Context) error {
	if err := s.client.Delete(ctx, "/wishlist/clear", nil); err != nil {
		return fmt.Errorf("failed to clear wishlist: %w", err)
	}
	return nil
}
