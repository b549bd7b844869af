package shop

import (
	"context"
	"errors"

	"shopfront/internal/domain"
)

// AddToCart puts one unit of the product in the cart, snapshotting its
// name, price and description at this moment. Adding a product already in
// the cart increments its quantity instead of creating a second line.
func (m *Manager) AddToCart(ctx context.Context, p domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.cart {
		if m.cart[i].ProductID == p.ID {
			m.cart[i].Quantity++
			m.persistCartLocked(ctx)
			return
		}
	}
	m.cart = append(m.cart, domain.ItemFromProduct(p))
	m.persistCartLocked(ctx)
}

// RemoveFromCart drops the product's line; absent products are a no-op.
func (m *Manager) RemoveFromCart(ctx context.Context, productID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.cart[:0]
	removed := false
	for _, item := range m.cart {
		if item.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	m.cart = kept
	if removed {
		m.persistCartLocked(ctx)
	}
}

// UpdateQuantity replaces a line's quantity. Quantities below 1 remove
// the line; a zero or negative quantity is never stored.
func (m *Manager) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	if quantity < 1 {
		m.RemoveFromCart(ctx, productID)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.cart {
		if m.cart[i].ProductID == productID {
			m.cart[i].Quantity = quantity
			m.persistCartLocked(ctx)
			return
		}
	}
}

// ClearCart empties the cart in memory only. The order-placement path is
// responsible for clearing the remote record.
func (m *Manager) ClearCart() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart = nil
}

// CartItems returns a copy of the cart lines.
func (m *Manager) CartItems() []domain.CartItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.CartItem(nil), m.cart...)
}

// CartTotal is the sum of price times quantity over all lines.
func (m *Manager) CartTotal() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cartTotal(m.cart)
}

// CartItemCount is the sum of quantities over all lines.
func (m *Manager) CartItemCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, item := range m.cart {
		count += item.Quantity
	}
	return count
}

func cartTotal(items []domain.CartItem) int64 {
	var total int64
	for _, item := range items {
		total += item.PriceCents * int64(item.Quantity)
	}
	return total
}

// persistCartLocked saves the full cart snapshot to the remote record.
// Saves are gated on an active session whose initial cart load finished;
// earlier mutations stay buffered in memory. Failures are logged, never
// surfaced: the cart remains usable offline.
func (m *Manager) persistCartLocked(ctx context.Context) {
	if m.current == nil || !m.cartLoaded {
		return
	}

	record, err := m.deps.Carts.GetByUser(ctx, m.current.ID)
	switch {
	case err == nil:
		if err := m.deps.Carts.SetItems(ctx, record.ID, m.cart); err != nil {
			m.logger.Warnf("shop: save cart user=%s: %v", m.current.ID, err)
		}
	case errors.Is(err, domain.ErrNotFound):
		if _, err := m.deps.Carts.Create(ctx, m.current.ID, m.cart); err != nil {
			m.logger.Warnf("shop: create cart user=%s: %v", m.current.ID, err)
		}
	default:
		m.logger.Warnf("shop: look up cart user=%s: %v", m.current.ID, err)
	}
}
