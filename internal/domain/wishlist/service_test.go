// internal/domain/wishlist/service_test.go
package wishlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-client/internal/api"
	"github.com/your-org/storefront-client/internal/storetest"
)

func setup(t *testing.T) (*storetest.Server, *Service) {
	t.Helper()

	srv := storetest.New()
	client, sessions := storetest.NewClient(t, srv)

	userID := srv.SeedUser("asha@example.com", "secret123", "Asha", "Rao", "user")
	srv.LoginAs(t, sessions, userID)

	return srv, NewService(client)
}

func TestWishlistAddAndGet(t *testing.T) {
	srv, svc := setup(t)
	p := srv.SeedProduct(storetest.Product{Name: "Green Tea", Price: 249, Stock: 10})

	ctx := context.Background()

	w, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, w.Count)
	assert.False(t, w.Contains(p.ID))

	item, err := svc.Add(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, p.ID, item.ProductID)
	require.NotNil(t, item.Product)
	assert.Equal(t, "Green Tea", item.Product.Name)

	w, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, w.Count)
	assert.True(t, w.Contains(p.ID))
}

func TestWishlistAddDuplicate(t *testing.T) {
	srv, svc := setup(t)
	p := srv.SeedProduct(storetest.Product{Name: "Green Tea", Price: 249, Stock: 10})

	ctx := context.Background()
	_, err := svc.Add(ctx, p.ID)
	require.NoError(t, err)

	_, err = svc.Add(ctx, p.ID)
	assert.True(t, api.IsConflict(err))
}

func TestWishlistAddUnknownProduct(t *testing.T) {
	_, svc := setup(t)

	_, err := svc.Add(context.Background(), 9999)
	assert.True(t, api.IsNotFound(err))
}

func TestWishlistRemove(t *testing.T) {
	srv, svc := setup(t)
	p := srv.SeedProduct(storetest.Product{Name: "Green Tea", Price: 249, Stock: 10})

	ctx := context.Background()
	_, err := svc.Add(ctx, p.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, p.ID))

	w, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.False(t, w.Contains(p.ID))

	assert.True(t, api.IsNotFound(svc.Remove(ctx, p.ID)))
}

func TestWishlistClear(t *testing.T) {
	srv, svc := setup(t)
	p1 := srv.SeedProduct(storetest.Product{Name: "A", Price: 10, Stock: 10})
	p2 := srv.SeedProduct(storetest.Product{Name: "B", Price: 20, Stock: 10})

	ctx := context.Background()
	_, err := svc.Add(ctx, p1.ID)
	require.NoError(t, err)
	_, err = svc.Add(ctx, p2.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx))

	w, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, w.Count)
	assert.Empty(t, w.Items)
}

func TestWishlistRequiresAuth(t *testing.T) {
	srv := storetest.New()
	client, _ := storetest.NewClient(t, srv)
	svc := NewService(client)

	_, err := svc.Get(context.Background())
	assert.True(t, api.IsUnauthorized(err))
}
