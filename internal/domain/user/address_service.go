// internal/domain/user/address_service.go
package user

import (
	"context"
	"fmt"

	"github.com/your-org/storefront-client/internal/api"
)

// AddressService wraps the address book endpoints of the storefront API
type AddressService struct {
	client *api.Client
}

// NewAddressService creates a new address service
func NewAddressService(client *api.Client) *AddressService {
	return &AddressService{client: client}
}

// AddressRequest carries the writable address fields
type AddressRequest struct {
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
	IsDefault    bool   `json:"is_default"`
}

// validate checks required fields before any network call
func (r *AddressRequest) validate() error {
	required := []struct{ field, value string }{
		{"address_line1", r.AddressLine1},
		{"city", r.City},
		{"state", r.State},
		{"postal_code", r.PostalCode},
		{"country", r.Country},
	}
	for _, f := range required {
		if f.value == "" {
			return &api.ValidationError{Field: f.field, Message: "is required"}
		}
	}
	return nil
}

// addressEnvelope is the envelope the API wraps address mutations in
type addressEnvelope struct {
	Message string   `json:"message"`
	Address *Address `json:"address"`
}

// List retrieves all addresses for the current user
func (s *AddressService) List(ctx context.Context) ([]Address, error) {
	var resp struct {
		Addresses []Address `json:"addresses"`
	}
	if err := s.client.Get(ctx, "/addresses/", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return resp.Addresses, nil
}

// Create adds a new address
func (s *AddressService) Create(ctx context.Context, req AddressRequest) (*Address, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var resp addressEnvelope
	if err := s.client.Post(ctx, "/addresses/", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}
	return resp.Address, nil
}

// Update modifies an existing address
func (s *AddressService) Update(ctx context.Context, addressID int, req AddressRequest) (*Address, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var resp addressEnvelope
	if err := s.client.Put(ctx, fmt.Sprintf("/addresses/%d", addressID), req, &resp); err != nil {
		return nil, fmt.Errorf("failed to update address %d: %w", addressID, err)
	}
	return resp.Address, nil
}

// Delete removes an address
func (s *AddressService) Delete(ctx context.Context, addressID int) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("/addresses/%d", addressID), nil); err != nil {
		return fmt.Errorf("failed to delete address %d: %w", addressID, err)
	}
	return nil
}

// SetDefault marks an address as the user's default. The server unsets
// any previous default.
func (s *AddressService) SetDefault(ctx context.Context, addressID int) error {
	if err := s.client.Post(ctx, fmt.Sprintf("/addresses/%d/set-default", addressID), nil, nil); err != nil {
		return fmt.Errorf("failed to set default address %d: %w", addressID, err)
	}
	return nil
}
