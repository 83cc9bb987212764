// internal/provider/cartcount.go

// Package provider holds the process-wide cached views the UI reads on
// every render: the cart item count and the wishlist membership set.
// Each provider is a small state machine keyed on authentication status:
// anonymous (empty value, no fetches) or authenticated (fetched once on
// entry, then cached until explicitly refreshed). Fetch failures are
// logged and swallowed; readers only ever see a possibly-stale empty
// value, never an error state.
package provider

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/domain/cart"
)

// CartCount caches the total number of items in the user's cart
type CartCount struct {
	mu     sync.Mutex
	authed bool
	count  int

	carts  *cart.Service
	logger *logrus.Logger
}

// NewCartCount creates a cart count provider in the anonymous state
func NewCartCount(carts *cart.Service, logger *logrus.Logger) *CartCount {
	return &CartCount{carts: carts, logger: logger}
}

// Login moves the provider to the authenticated state and fetches the
// count once. Calling Login while already authenticated only re-fetches.
func (p *CartCount) Login(ctx context.Context) {
	p.mu.Lock()
	p.authed = true
	p.mu.Unlock()

	p.fetch(ctx)
}

// Logout clears the cached count synchronously. No fetch is made.
func (p *CartCount) Logout() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.authed = false
	p.count = 0
}

// Refresh re-fetches the count while authenticated; a no-op otherwise.
func (p *CartCount) Refresh(ctx context.Context) {
	p.mu.Lock()
	authed := p.authed
	p.mu.Unlock()

	if !authed {
		return
	}
	p.fetch(ctx)
}

// Count returns the cached count. Zero while anonymous or after a failed
// fetch.
func (p *CartCount) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

func (p *CartCount) fetch(ctx context.Context) {
	c, err := p.carts.Get(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	// A logout may have raced the fetch; its response is discarded.
	if !p.authed {
		return
	}

	if err != nil {
		p.logger.WithError(err).Error("Failed to fetch cart count")
		p.count = 0
		return
	}
	p.count = c.TotalItems
}
