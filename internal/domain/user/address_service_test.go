// internal/domain/user/address_service_test.go
package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-client/internal/api"
)

func validAddress() AddressRequest {
	return AddressRequest{
		AddressLine1: "12 MG Road",
		City:         "Bengaluru",
		State:        "Karnataka",
		PostalCode:   "560001",
		Country:      "India",
	}
}

func TestAddressCreateAndList(t *testing.T) {
	_, client := setup(t)
	svc := NewAddressService(client)

	ctx := context.Background()

	addrs, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, addrs)

	req := validAddress()
	req.IsDefault = true
	created, err := svc.Create(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "12 MG Road", created.AddressLine1)
	assert.True(t, created.IsDefault)

	addrs, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, addrs, 1)
	assert.Equal(t, created.ID, addrs[0].ID)
}

func TestAddressValidation(t *testing.T) {
	_, client := setup(t)
	svc := NewAddressService(client)

	ctx := context.Background()

	// Each missing required field short-circuits before the network.
	zero := func(mutate func(*AddressRequest)) AddressRequest {
		req := validAddress()
		mutate(&req)
		return req
	}
	tests := []struct {
		name string
		req  AddressRequest
	}{
		{"missing line1", zero(func(r *AddressRequest) { r.AddressLine1 = "" })},
		{"missing city", zero(func(r *AddressRequest) { r.City = "" })},
		{"missing state", zero(func(r *AddressRequest) { r.State = "" })},
		{"missing postal code", zero(func(r *AddressRequest) { r.PostalCode = "" })},
		{"missing country", zero(func(r *AddressRequest) { r.Country = "" })},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.req)
			assert.True(t, api.IsValidation(err))

			_, err = svc.Update(ctx, 1, tt.req)
			assert.True(t, api.IsValidation(err))
		})
	}
}

func TestAddressUpdate(t *testing.T) {
	_, client := setup(t)
	svc := NewAddressService(client)

	ctx := context.Background()
	created, err := svc.Create(ctx, validAddress())
	require.NoError(t, err)

	req := validAddress()
	req.City = "Mysuru"
	updated, err := svc.Update(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Mysuru", updated.City)

	_, err = svc.Update(ctx, 9999, validAddress())
	assert.True(t, api.IsNotFound(err))
}

func TestAddressDelete(t *testing.T) {
	_, client := setup(t)
	svc := NewAddressService(client)

	ctx := context.Background()
	created, err := svc.Create(ctx, validAddress())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	addrs, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, addrs)

	assert.True(t, api.IsNotFound(svc.Delete(ctx, created.ID)))
}

func TestAddressSetDefault(t *testing.T) {
	_, client := setup(t)
	svc := NewAddressService(client)

	ctx := context.Background()

	first := validAddress()
	first.IsDefault = true
	a, err := svc.Create(ctx, first)
	require.NoError(t, err)

	second := validAddress()
	second.AddressLine1 = "4 Brigade Road"
	b, err := svc.Create(ctx, second)
	require.NoError(t, err)

	require.NoError(t, svc.SetDefault(ctx, b.ID))

	addrs, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, addrs, 2)

	// Exactly one default; the previous one is unset.
	for _, addr := range addrs {
		switch addr.ID {
		case a.ID:
			assert.False(t, addr.IsDefault)
		case b.ID:
			assert.True(t, addr.IsDefault)
		}
	}

	assert.True(t, api.IsNotFound(svc.SetDefault(ctx, 9999)))
}
