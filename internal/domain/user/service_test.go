// internal/domain/user/service_test.go
package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-client/internal/api"
	"github.com/your-org/storefront-client/internal/storetest"
)

func setup(t *testing.T) (*storetest.Server, *api.Client) {
	t.Helper()

	srv := storetest.New()
	client, sessions := storetest.NewClient(t, srv)

	userID := srv.SeedUser("asha@example.com", "secret123", "Asha", "Rao", "user")
	srv.LoginAs(t, sessions, userID)

	return srv, client
}

func TestGetProfile(t *testing.T) {
	_, client := setup(t)
	svc := NewService(client)

	u, err := svc.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", u.Email)
	assert.Equal(t, "Asha Rao", u.FullName())
	assert.False(t, u.IsAdmin())
}

func TestUpdateProfile(t *testing.T) {
	_, client := setup(t)
	svc := NewService(client)

	u, err := svc.UpdateProfile(context.Background(), UpdateProfileRequest{FirstName: "Aisha"})
	require.NoError(t, err)
	assert.Equal(t, "Aisha", u.FirstName)
	// Fields left empty are unchanged.
	assert.Equal(t, "Rao", u.LastName)
}

func TestChangePassword(t *testing.T) {
	_, client := setup(t)
	svc := NewService(client)

	ctx := context.Background()

	err := svc.ChangePassword(ctx, ChangePasswordRequest{
		OldPassword: "secret123",
		NewPassword: "fresh456",
		Confirm:     "fresh456",
	})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, ChangePasswordRequest{
		OldPassword: "secret123",
		NewPassword: "another789",
	})
	assert.True(t, api.IsUnauthorized(err))
}

func TestChangePasswordLocalValidation(t *testing.T) {
	_, client := setup(t)
	svc := NewService(client)

	ctx := context.Background()

	err := svc.ChangePassword(ctx, ChangePasswordRequest{NewPassword: "x"})
	assert.True(t, api.IsValidation(err))

	err = svc.ChangePassword(ctx, ChangePasswordRequest{OldPassword: "x"})
	assert.True(t, api.IsValidation(err))

	err = svc.ChangePassword(ctx, ChangePasswordRequest{
		OldPassword: "x",
		NewPassword: "y",
		Confirm:     "z",
	})
	assert.True(t, api.IsValidation(err))
}

func TestFullName(t *testing.T) {
	tests := []struct {
		name     string
		user     User
		expected string
	}{
		{"both", User{FirstName: "Asha", LastName: "Rao"}, "Asha Rao"},
		{"first only", User{FirstName: "Asha"}, "Asha"},
		{"last only", User{LastName: "Rao"}, "Rao"},
		{"neither", User{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.user.FullName())
		})
	}
}
