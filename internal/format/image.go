// internal/format/image.go
package format

import (
	"strings"

	"github.com/your-org/storefront-client/internal/config"
)

// DefaultPlaceholderImage is used when a product has no image path.
const DefaultPlaceholderImage = "https://via.placeholder.com/300x200?text=No+Image"

// ImageResolver turns relative image paths from the API into fully
// qualified URLs. Pure and deterministic; no network access.
type ImageResolver struct {
	assetBase   string
	placeholder string
}

// NewImageResolver builds a resolver from the client configuration. The
// asset host is the API base URL with its /api path suffix stripped.
func NewImageResolver(cfg *config.Config) *ImageResolver {
	placeholder := cfg.Display.PlaceholderImage
	if placeholder == "" {
		placeholder = DefaultPlaceholderImage
	}
	return &ImageResolver{
		assetBase:   cfg.GetAssetBaseURL(),
		placeholder: placeholder,
	}
}

// Resolve returns the full URL for an image path. Empty input yields the
// placeholder; an already absolute URL is returned unchanged; anything
// else is joined onto the asset host.
func (r *ImageResolver) Resolve(imagePath string) string {
	if imagePath == "" {
		return r.placeholder
	}

	if strings.HasPrefix(imagePath, "http://") || strings.HasPrefix(imagePath, "https://") {
		return imagePath
	}

	return r.assetBase + imagePath
}
