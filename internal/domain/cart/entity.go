// internal/domain/cart/entity.go
package cart

import (
	"github.com/your-org/storefront-client/internal/domain/product"
)

// Item represents one line of the cart. Subtotal is derived server-side
// as quantity × product price.
type Item struct {
	ID        int              `json:"id"`
	CartID    int              `json:"cart_id"`
	ProductID int              `json:"product_id"`
	Product   *product.Product `json:"product"`
	Quantity  int              `json:"quantity"`
	Subtotal  product.Price    `json:"subtotal"`
}

// CanSetQuantity reports whether the item's quantity may be changed to
// qty without exceeding the product's stock. Pages use this to disable
// the increment control at quantity >= stock.
func (i *Item) CanSetQuantity(qty int) bool {
	if qty < 1 {
		return false
	}
	if i.Product == nil {
		return false
	}
	return qty <= i.Product.StockQuantity
}

// Cart is the mutable pre-checkout collection of items for one user.
// It is created implicitly on first add and cleared explicitly or on
// successful checkout.
type Cart struct {
	ID         int           `json:"id"`
	UserID     int           `json:"user_id"`
	TotalItems int           `json:"total_items"`
	Subtotal   product.Price `json:"subtotal"`
	Items      []Item        `json:"items"`
	CreatedAt  string        `json:"created_at"`
}

// IsEmpty reports whether the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Item returns the cart line for a product, or nil when absent
func (c *Cart) Item(productID int) *Item {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}
