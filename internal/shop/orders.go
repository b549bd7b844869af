package shop

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"shopfront/internal/domain"
)

const (
	// shippingCents is the flat shipping fee applied to every order.
	shippingCents = 1000
	// taxPercent is applied to the order subtotal.
	taxPercent = 8
)

// PlaceOrder snapshots the current cart into a new order and submits it.
// Only when the remote creation succeeds are the remote cart record and
// the in-memory cart cleared.
func (m *Manager) PlaceOrder(ctx context.Context, shippingAddress, paymentMethod string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return nil, domain.ErrNotAuthenticated
	}
	if len(m.cart) == 0 {
		return nil, domain.ErrEmptyCart
	}
	shippingAddress = strings.TrimSpace(shippingAddress)
	paymentMethod = strings.TrimSpace(paymentMethod)
	if shippingAddress == "" || paymentMethod == "" {
		return nil, domain.ErrMissingFields
	}

	now := m.now().UTC()
	subtotal := cartTotal(m.cart)
	tax := subtotal * taxPercent / 100
	order := domain.Order{
		OrderNumber:     "ORD-" + strconv.FormatInt(now.UnixMilli(), 10),
		UserID:          m.current.ID,
		UserName:        m.current.Name,
		UserEmail:       m.current.Email,
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
		Items:           append([]domain.CartItem(nil), m.cart...),
		SubtotalCents:   subtotal,
		ShippingCents:   shippingCents,
		TaxCents:        tax,
		TotalCents:      subtotal + shippingCents + tax,
		Status:          domain.OrderPending,
		PlacedAt:        now,
		UpdatedAt:       now,
	}

	created, err := m.deps.Orders.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	m.clearRemoteCartLocked(ctx)
	m.cart = nil
	m.orders = append(m.orders, *created)

	m.logger.Infof("shop: order placed number=%s user=%s totalCents=%d", created.OrderNumber, created.UserID, created.TotalCents)
	return created, nil
}

// UserOrders returns the current user's orders. Without a session, or
// when the fetch fails, it degrades to an empty collection.
func (m *Manager) UserOrders(ctx context.Context) []domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return []domain.Order{}
	}
	orders, err := m.deps.Orders.ListByUser(ctx, m.current.ID)
	if err != nil {
		m.logger.Warnf("shop: fetch orders user=%s: %v", m.current.ID, err)
		return []domain.Order{}
	}
	return orders
}

// CancelOrder requests cancellation of one of the current user's orders.
// Only pending and processing orders may be cancelled; the transition is
// persisted through the order-status update path.
func (m *Manager) CancelOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return nil, domain.ErrNotAuthenticated
	}

	orders, err := m.deps.Orders.ListByUser(ctx, m.current.ID)
	if err != nil {
		return nil, fmt.Errorf("cancel order lookup: %w", err)
	}
	var target *domain.Order
	for i := range orders {
		if orders[i].ID == orderID {
			target = &orders[i]
			break
		}
	}
	if target == nil {
		return nil, domain.ErrNotFound
	}
	if !target.Cancellable() {
		return nil, fmt.Errorf("order %s cannot be cancelled from status %q", orderID, target.Status)
	}

	updated, err := m.deps.Orders.UpdateStatus(ctx, orderID, domain.OrderCancelled)
	if err != nil {
		return nil, fmt.Errorf("cancel order: %w", err)
	}
	m.refreshOrdersLocked(ctx)
	return updated, nil
}

// clearRemoteCartLocked empties the remote cart record if one exists.
// The order has already been accepted at this point, so failures are
// logged rather than returned.
func (m *Manager) clearRemoteCartLocked(ctx context.Context) {
	record, err := m.deps.Carts.GetByUser(ctx, m.current.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			m.logger.Warnf("shop: clear remote cart user=%s: %v", m.current.ID, err)
		}
		return
	}
	if err := m.deps.Carts.SetItems(ctx, record.ID, nil); err != nil {
		m.logger.Warnf("shop: clear remote cart user=%s: %v", m.current.ID, err)
	}
}
