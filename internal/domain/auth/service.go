// internal/domain/auth/service.go
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/api"
	"github.com/your-org/storefront-client/internal/domain/user"
	"github.com/your-org/storefront-client/internal/session"
)

// Service wraps the authentication endpoints and owns the session store:
// login and register persist both tokens plus the user snapshot in one
// write, logout clears all three atomically.
type Service struct {
	client   *api.Client
	sessions session.Store
	logger   *logrus.Logger
}

// NewService creates a new auth service
func NewService(client *api.Client, sessions session.Store, logger *logrus.Logger) *Service {
	return &Service{
		client:   client,
		sessions: sessions,
		logger:   logger,
	}
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ChangePasswordRequest carries a password change. Confirm is validated
// locally and never sent over the wire.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
	Confirm     string `json:"-"`
}

// tokenResponse is the envelope login and register answer with
type tokenResponse struct {
	Message      string          `json:"message"`
	User         json.RawMessage `json:"user"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
}

// Login authenticates and persists the session snapshot
func (s *Service) Login(ctx context.Context, req LoginRequest) (*user.User, error) {
	if req.Email == "" {
		return nil, &api.ValidationError{Field: "email", Message: "is required"}
	}
	if req.Password == "" {
		return nil, &api.ValidationError{Field: "password", Message: "is required"}
	}

	var resp tokenResponse
	if err := s.client.Post(ctx, "/auth/login", req, &resp); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	return s.persistSession(&resp)
}

// Register creates an account and persists the session snapshot
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*user.User, error) {
	if req.Email == "" {
		return nil, &api.ValidationError{Field: "email", Message: "is required"}
	}
	if req.Password == "" {
		return nil, &api.ValidationError{Field: "password", Message: "is required"}
	}
	if req.FirstName == "" {
		return nil, &api.ValidationError{Field: "first_name", Message: "is required"}
	}
	if req.LastName == "" {
		return nil, &api.ValidationError{Field: "last_name", Message: "is required"}
	}

	var resp tokenResponse
	if err := s.client.Post(ctx, "/auth/register", req, &resp); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	return s.persistSession(&resp)
}

func (s *Service) persistSession(resp *tokenResponse) (*user.User, error) {
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("server response carried no access token")
	}

	sess := &session.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		User:         resp.User,
	}
	if err := s.sessions.Save(sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	var u user.User
	if err := json.Unmarshal(resp.User, &u); err != nil {
		return nil, fmt.Errorf("failed to decode user snapshot: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": u.ID,
		"email":   u.Email,
	}).Info("Session established")

	return &u, nil
}

// Logout clears the stored session. No network call is made; the API
// uses stateless tokens.
func (s *Service) Logout() error {
	if err := s.sessions.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.logger.Info("Session cleared")
	return nil
}

// IsAuthenticated reports whether a session with an access token is stored
func (s *Service) IsAuthenticated() bool {
	sess, err := s.sessions.Load()
	return err == nil && sess.IsAuthenticated()
}

// CurrentUser returns the cached user snapshot from the session store,
// without a network call. Returns api.ErrNotAuthenticated when no
// session is stored.
func (s *Service) CurrentUser() (*user.User, error) {
	sess, err := s.sessions.Load()
	if errors.Is(err, session.ErrNoSession) {
		return nil, api.ErrNotAuthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var u user.User
	if err := sess.UserSnapshot(&u); err != nil {
		return nil, fmt.Errorf("failed to decode user snapshot: %w", err)
	}
	return &u, nil
}

// IsAdmin reports whether the cached user snapshot has the admin role
func (s *Service) IsAdmin() bool {
	u, err := s.CurrentUser()
	return err == nil && u.IsAdmin()
}

// GetProfile fetches the profile from the server and refreshes the
// cached user snapshot.
func (s *Service) GetProfile(ctx context.Context) (*user.User, error) {
	var raw json.RawMessage
	if err := s.client.Get(ctx, "/auth/profile", nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return s.refreshSnapshot(raw)
}

// UpdateProfile updates the profile on the server and refreshes the
// cached user snapshot.
func (s *Service) UpdateProfile(ctx context.Context, req user.UpdateProfileRequest) (*user.User, error) {
	var raw json.RawMessage
	if err := s.client.Put(ctx, "/auth/profile", req, &raw); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.refreshSnapshot(raw)
}

func (s *Service) refreshSnapshot(raw json.RawMessage) (*user.User, error) {
	var u user.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("failed to decode user snapshot: %w", err)
	}

	sess, err := s.sessions.Load()
	if err != nil {
		// No stored session to refresh; return the decoded profile as-is.
		if errors.Is(err, session.ErrNoSession) {
			return &u, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	sess.User = raw
	if err := s.sessions.Save(sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return &u, nil
}

// ChangePassword changes the password for the logged-in user. Local
// validation failures short-circuit before any network call.
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

	if err := s.client.Post(ctx, "/auth/change-password", req, nil); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	return nil
}
