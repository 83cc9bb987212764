// internal/format/image_test.go
package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/your-org/storefront-client/internal/config"
)

func newTestResolver() *ImageResolver {
	cfg := &config.Config{}
	cfg.API.BaseURL = "http://localhost:5001/api"
	return NewImageResolver(cfg)
}

func TestImageResolverPlaceholder(t *testing.T) {
	r := newTestResolver()
	assert.Equal(t, DefaultPlaceholderImage, r.Resolve(""))
}

func TestImageResolverAbsoluteURLUnchanged(t *testing.T) {
	r := newTestResolver()

	assert.Equal(t, "https://x/y.png", r.Resolve("https://x/y.png"))
	assert.Equal(t, "http://cdn.example.com/a.jpg", r.Resolve("http://cdn.example.com/a.jpg"))
}

func TestImageResolverRelativePath(t *testing.T) {
	r := newTestResolver()

	// The /api suffix is stripped from the base URL before joining.
	assert.Equal(t, "http://localhost:5001/uploads/products/image.jpg",
		r.Resolve("/uploads/products/image.jpg"))
}

func TestImageResolverCustomPlaceholder(t *testing.T) {
	cfg := &config.Config{}
	cfg.API.BaseURL = "https://shop.example.com/api"
	cfg.Display.PlaceholderImage = "https://shop.example.com/static/none.png"

	r := NewImageResolver(cfg)
	assert.Equal(t, "https://shop.example.com/static/none.png", r.Resolve(""))
	assert.Equal(t, "https://shop.example.com/img/1.png", r.Resolve("/img/1.png"))
}
