// internal/domain/user/service.go
package user

import (
	"context"
	"fmt"

	"github.com/your-org/storefront-client/internal/api"
)

// Service wraps the user profile endpoints of the storefront API
type Service struct {
	client *api.Client
}

// NewService creates a new user service
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// UpdateProfileRequest carries the editable profile fields
type UpdateProfileRequest struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
}

// ChangePasswordRequest carries a password change. Confirm is validated
// locally and never sent over the wire.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
	Confirm     string `json:"-"`
}

// GetProfile retrieves the current user's profile
func (s *Service) GetProfile(ctx context.Context) (*User, error) {
	var resp User
	if err := s.client.Get(ctx, "/users/profile", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &resp, nil
}

// UpdateProfile updates the current user's profile
func (s *Service) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*User, error) {
	var resp User
	if err := s.client.Put(ctx, "/users/profile", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &resp, nil
}

// ChangePassword changes the current user's password. Local validation
// failures short-circuit before any network call.
func (s *Service) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	if req.OldPassword == "" {
		return &api.ValidationError{Field: "old_password", Message: "current password is required"}
	}
	if req.NewPassword == "" {
		return &api.ValidationError{Field: "new_password", Message: "new password is required"}
	}
	if req.Confirm != "" && req.Confirm != req.NewPassword {
		return &api.ValidationError{Field: "confirm", Message: "passwords do not match"}
	}

	if err := s.client.Put(ctx, "/users/change-password", req, nil); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	return nil
}
