package domain

import "time"

const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// Order is an immutable snapshot of a cart plus shipping and payment
// metadata. Only the status field changes after placement.
type Order struct {
	ID              string     `json:"id,omitempty"`
	OrderNumber     string     `json:"orderNumber"`
	UserID          string     `json:"userId"`
	UserName        string     `json:"userName"`
	UserEmail       string     `json:"userEmail"`
	ShippingAddress string     `json:"shippingAddress"`
	PaymentMethod   string     `json:"paymentMethod"`
	Items           []CartItem `json:"items"`
	SubtotalCents   int64      `json:"subtotalCents"`
	ShippingCents   int64      `json:"shippingCents"`
	TaxCents        int64      `json:"taxCents"`
	TotalCents      int64      `json:"totalCents"`
	Status          string     `json:"status"`
	PlacedAt        time.Time  `json:"placedAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// ValidOrderStatus reports whether s is one of the known lifecycle states.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Cancellable reports whether an order may still be cancelled by its owner.
// Shipped and delivered orders are past the point of no return.
func (o Order) Cancellable() bool {
	return o.Status == OrderPending || o.Status == OrderProcessing
}
