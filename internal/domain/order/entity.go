// internal/domain/order/entity.go
package order

import (
	"github.com/your-org/storefront-client/internal/domain/product"
	"github.com/your-org/storefront-client/internal/domain/user"
)

// Status is an order's fulfillment status
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// PaymentStatus is an order's payment status
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Item is a frozen order line. ProductName and PriceAtPurchase capture
// the product at checkout time, decoupled from the live catalog entry so
// historical orders stay stable when the product changes later.
type Item struct {
	ID              int           `json:"id"`
	OrderID         int           `json:"order_id"`
	ProductID       int           `json:"product_id"`
	ProductName     string        `json:"product_name"`
	Quantity        int           `json:"quantity"`
	PriceAtPurchase product.Price `json:"price_at_purchase"`
	Subtotal        product.Price `json:"subtotal"`
}

// Order is the immutable snapshot of a cart produced at checkout
type Order struct {
	ID              int           `json:"id"`
	UserID          int           `json:"user_id"`
	TotalAmount     product.Price `json:"total_amount"`
	Status          Status        `json:"status"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	TotalItems      int           `json:"total_items"`
	ShippingAddress *user.Address `json:"shipping_address"`
	Items           []Item        `json:"items"`
	CreatedAt       string        `json:"created_at"`
	UpdatedAt       string        `json:"updated_at"`
}

// CanCancel reports whether the client may request cancellation. Once an
// order is delivered or cancelled no further transition is permitted.
func (o *Order) CanCancel() bool {
	return o.Status != StatusDelivered && o.Status != StatusCancelled
}

// Stats summarizes a user's order history
type Stats struct {
	TotalOrders int     `json:"total_orders"`
	Pending     int     `json:"pending"`
	Processing  int     `json:"processing"`
	Shipped     int     `json:"shipped"`
	Delivered   int     `json:"delivered"`
	Cancelled   int     `json:"cancelled"`
	TotalSpent  float64 `json:"total_spent"`
}
