// cmd/storefront/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/your-org/storefront-client/internal/api"
	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/domain/auth"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/order"
	"github.com/your-org/storefront-client/internal/domain/product"
	"github.com/your-org/storefront-client/internal/domain/user"
	"github.com/your-org/storefront-client/internal/domain/wishlist"
	"github.com/your-org/storefront-client/internal/format"
	"github.com/your-org/storefront-client/internal/pkg/logging"
	"github.com/your-org/storefront-client/internal/provider"
	"github.com/your-org/storefront-client/internal/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg)
	logger.Infof("🚀 Starting %s v%s against %s", cfg.App.Name, cfg.App.Version, cfg.API.BaseURL)

	// Build the session store
	sessions, err := newSessionStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize session store: %v", err)
	}

	// Build the API client and domain services
	client := api.NewClient(cfg, sessions, logger)
	authSvc := auth.NewService(client, sessions, logger)
	products := product.NewService(client)
	carts := cart.NewService(client)
	orders := order.NewService(client)
	addresses := user.NewAddressService(client)
	wishlists := wishlist.NewService(client)

	cartCount := provider.NewCartCount(carts, logger)
	wishlistCache := provider.NewWishlist(wishlists, logger)

	images := format.NewImageResolver(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Restore a previous session if one is stored and its token is still valid
	if u, err := authSvc.CurrentUser(); err == nil && !sessionExpired(sessions) {
		logger.Infof("Resuming session for %s", u.Email)
		cartCount.Login(ctx)
		wishlistCache.Login(ctx)
	} else if email := os.Getenv("STOREFRONT_EMAIL"); email != "" {
		u, err := authSvc.Login(ctx, auth.LoginRequest{
			Email:    email,
			Password: os.Getenv("STOREFRONT_PASSWORD"),
		})
		if err != nil {
			log.Fatalf("Login failed: %v", err)
		}
		logger.Infof("Logged in as %s", u.FullName())
		cartCount.Login(ctx)
		wishlistCache.Login(ctx)
	} else {
		logger.Info("No session; browsing anonymously")
	}

	// Browse the catalog and show the filter pipeline at work
	listing, err := products.List(ctx, product.ListOptions{})
	if err != nil {
		log.Fatalf("Failed to list products: %v", err)
	}

	filter := product.Filter{
		Query:    os.Getenv("STOREFRONT_QUERY"),
		Category: firstNonEmpty(os.Getenv("STOREFRONT_CATEGORY"), product.CategoryAll),
		Sort:     product.SortPriceAsc,
	}
	displayed := filter.Apply(listing.Products)

	logger.Infof("Categories: %v", product.Categories(listing.Products))
	for _, p := range displayed {
		marker := " "
		if wishlistCache.Contains(p.ID) {
			marker = "♥"
		}
		logger.Infof("%s %-30s %10s  stock=%d  %s",
			marker, p.Name, format.Currency(p.Price, true), p.StockQuantity, images.Resolve(p.ImageURL))
	}

	logger.Infof("Cart holds %d item(s)", cartCount.Count())

	// Optional checkout walk: add the first orderable product, place the
	// order against the default address and show the running totals.
	if os.Getenv("STOREFRONT_CHECKOUT") == "" || !authSvc.IsAuthenticated() {
		return
	}

	var pick *product.Product
	for i := range displayed {
		if displayed[i].InStock() {
			pick = &displayed[i]
			break
		}
	}
	if pick == nil {
		logger.Warn("Nothing in stock to order")
		return
	}

	if _, err := carts.AddProduct(ctx, pick, 1); err != nil {
		log.Fatalf("Failed to add %q to cart: %v", pick.Name, err)
	}
	cartCount.Refresh(ctx)
	logger.Infof("Added %s; cart now holds %d item(s)", pick.Name, cartCount.Count())

	addr, err := defaultAddress(ctx, addresses)
	if err != nil {
		log.Fatalf("No shipping address available: %v", err)
	}

	placed, err := orders.Checkout(ctx, addr.ID)
	if err != nil {
		log.Fatalf("Checkout failed: %v", err)
	}
	logger.Infof("Order #%d placed: %s, status %s", placed.ID,
		format.CurrencyIndian(placed.TotalAmount), placed.Status)
	cartCount.Refresh(ctx)

	stats, err := orders.GetStats(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch order stats: %v", err)
	}
	logger.Infof("Lifetime: %d order(s), %s spent",
		stats.TotalOrders, format.CurrencyIndian(stats.TotalSpent))
}

// defaultAddress returns the user's default shipping address, falling
// back to the first one on file.
func defaultAddress(ctx context.Context, addresses *user.AddressService) (*user.Address, error) {
	addrs, err := addresses.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("address book is empty")
	}
	for i := range addrs {
		if addrs[i].IsDefault {
			return &addrs[i], nil
		}
	}
	return &addrs[0], nil
}

// sessionExpired reports whether the stored access token is past its
// expiry. The signature is not verified here; the server rejects
// tampered tokens regardless.
func sessionExpired(sessions session.Store) bool {
	sess, err := sessions.Load()
	if err != nil {
		return true
	}
	info, err := session.InspectToken(sess.AccessToken)
	if err != nil {
		return true
	}
	return info.IsExpired(time.Now())
}

func newSessionStore(cfg *config.Config) (session.Store, error) {
	switch cfg.Session.Backend {
	case "memory":
		return session.NewMemoryStore(), nil
	case "redis":
		return session.NewRedisStore(cfg)
	default:
		return session.NewFileStore(cfg.Session.FilePath), nil
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
