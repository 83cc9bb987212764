// internal/provider/wishlist.go
package provider

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/domain/wishlist"
)

// Wishlist caches the user's wishlist membership set
type Wishlist struct {
	mu     sync.Mutex
	authed bool
	items  []wishlist.Item

	wishlists *wishlist.Service
	logger    *logrus.Logger
}

// NewWishlist creates a wishlist provider in the anonymous state
func NewWishlist(wishlists *wishlist.Service, logger *logrus.Logger) *Wishlist {
	return &Wishlist{wishlists: wishlists, logger: logger}
}

// Login moves the provider to the authenticated state and fetches the
// wishlist once.
func (p *Wishlist) Login(ctx context.Context) {
	p.mu.Lock()
	p.authed = true
	p.mu.Unlock()

	p.fetch(ctx)
}

// Logout clears the cached snapshot synchronously. No fetch is made.
func (p *Wishlist) Logout() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.authed = false
	p.items = nil
}

// Refresh re-fetches the wishlist while authenticated; a no-op otherwise.
func (p *Wishlist) Refresh(ctx context.Context) {
	p.mu.Lock()
	authed := p.authed
	p.mu.Unlock()

	if !authed {
		return
	}
	p.fetch(ctx)
}

// Contains reports whether the last-fetched snapshot references the
// product. This is a pure lookup, not a live query.
func (p *Wishlist) Contains(productID int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.items {
		if p.items[i].ProductID == productID {
			return true
		}
	}
	return false
}

// Items returns a copy of the cached snapshot
func (p *Wishlist) Items() []wishlist.Item {
	p.mu.Lock()
	defer p.mu.Unlock()

	items := make([]wishlist.Item, len(p.items))
	copy(items, p.items)
	return items
}

func (p *Wishlist) fetch(ctx context.Context) {
	w, err := p.wishlists.Get(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.authed {
		return
	}

	if err != nil {
		p.logger.WithError(err).Error("Failed to fetch wishlist")
		p.items = nil
		return
	}
	p.items = w.Items
}
