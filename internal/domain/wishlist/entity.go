// internal/domain/wishlist/entity.go
package wishlist

import (
	"github.com/your-org/storefront-client/internal/domain/product"
)

// Item is a reference from the user to a product. The wishlist is a set:
// no duplicates, no quantity.
type Item struct {
	ID        int              `json:"id"`
	UserID    int              `json:"user_id"`
	ProductID int              `json:"product_id"`
	Product   *product.Product `json:"product"`
	CreatedAt string           `json:"created_at"`
}

// Wishlist is the fetched wishlist snapshot
type Wishlist struct {
	Items []Item `json:"wishlist"`
	Count int    `json:"count"`
}

// Contains reports whether the snapshot references the given product
func (w *Wishlist) Contains(productID int) bool {
	for i := range w.Items {
		if w.Items[i].ProductID == productID {
			return true
		}
	}
	return false
}
