package domain

import "time"

// CartItem is a product snapshot taken at the moment it enters the cart.
// Later catalog edits do not touch items already added.
type CartItem struct {
	ProductID   string `json:"productId"`
	Name        string `json:"name"`
	PriceCents  int64  `json:"priceCents"`
	Image       string `json:"image,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	Quantity    int    `json:"quantity"`
}

// Cart is the remote cart record, one per user, created lazily on the
// first save after login or registration.
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// ItemFromProduct snapshots a product into a cart line with quantity 1.
func ItemFromProduct(p Product) CartItem {
	return CartItem{
		ProductID:   p.ID,
		Name:        p.Name,
		PriceCents:  p.PriceCents,
		Image:       p.Image,
		Category:    p.Category,
		Description: p.Description,
		Quantity:    1,
	}
}
