package shop

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"shopfront/internal/analytics"
	"shopfront/internal/domain"
)

// recentOrderCount is how many orders the dashboard lists.
const recentOrderCount = 10

// CreateUserInput captures the admin user-creation form.
type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (m *Manager) requireAdminLocked() error {
	if m.current == nil || !m.current.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

// AdminStats recomputes the dashboard aggregates from the full user,
// product and order collections and refreshes the in-memory projection
// along the way.
func (m *Manager) AdminStats(ctx context.Context) (*domain.AdminStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireAdminLocked(); err != nil {
		return nil, err
	}

	users, err := m.deps.Users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin stats users: %w", err)
	}
	products, err := m.deps.Products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin stats products: %w", err)
	}
	orders, err := m.deps.Orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin stats orders: %w", err)
	}

	m.users = users
	m.products = products
	m.orders = orders

	var revenue int64
	for _, o := range orders {
		revenue += o.TotalCents
	}

	recent := append([]domain.Order(nil), orders...)
	sort.Slice(recent, func(i, j int) bool { return recent[i].PlacedAt.After(recent[j].PlacedAt) })
	if len(recent) > recentOrderCount {
		recent = recent[:recentOrderCount]
	}

	var lowStock []domain.Product
	for _, p := range products {
		if p.Stock < domain.LowStockThreshold {
			lowStock = append(lowStock, p)
		}
	}

	return &domain.AdminStats{
		TotalUsers:        len(users),
		TotalProducts:     len(products),
		TotalOrders:       len(orders),
		TotalRevenueCents: revenue,
		RecentOrders:      recent,
		LowStockProducts:  lowStock,
		TopProducts:       analytics.TopProducts(products, orders, analytics.DefaultTopN),
	}, nil
}

// Analytics prefers the remote analytics document and falls back to
// locally derived aggregates for whichever series it lacks.
func (m *Manager) Analytics(ctx context.Context) (*domain.Analytics, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireAdminLocked(); err != nil {
		return nil, err
	}

	result := &domain.Analytics{}
	if remote, err := m.deps.Analytics.Fetch(ctx); err == nil {
		result = remote
	} else if !errors.Is(err, domain.ErrNotFound) {
		m.logger.Warnf("shop: fetch analytics: %v", err)
	}

	if len(result.MonthlyRevenue) == 0 {
		result.MonthlyRevenue = analytics.MonthlyRevenue(m.orders, m.now())
	}
	if len(result.TopProducts) == 0 {
		result.TopProducts = analytics.TopProducts(m.products, m.orders, analytics.DefaultTopN)
	}
	return result, nil
}

// AddProduct creates a catalog entry and re-fetches the product list so
// the projection matches the store.
func (m *Manager) AddProduct(ctx context.Context, p domain.Product) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireAdminLocked(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Category) == "" || p.PriceCents < 0 || p.Stock < 0 {
		return nil, domain.ErrMissingFields
	}

	created, err := m.deps.Products.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	m.refreshProductsLocked(ctx)
	return created, nil
}

// UpdateProduct replaces a catalog entry's fields and re-fetches the list.
func (m *Manager) UpdateProduct(ctx context.Context, id string, p domain.Product) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireAdminLocked(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Name) == "" || p.PriceCents < 0 || p.Stock < 0 {
		return nil, domain.ErrMissingFields
	}

	updated, err := m.deps.Products.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	m.refreshProductsLocked(ctx)
	return updated, nil
}

// DeleteProduct removes a catalog entry and re-fetches the list.
func (m *Manager) DeleteProduct(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireAdminLocked(); err != nil {
		return err
	}
	if err := m.deps.Products.Delete(ctx, id); err != nil {
		return err
	}
	m.refreshProductsLocked(ctx)
	return nil
}

// UpdateOrderStatus moves an order through its lifecycle.
func (m *Manager) UpdateOrderStatus(ctx context.Context, orderID, status string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireAdminLocked(); err != nil {
		return nil, err
	}
	if !domain.ValidOrderStatus(status) {
		return nil, fmt.Errorf("unknown order status %q", status)
	}

	updated, err := m.deps.Orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	m.refreshOrdersLocked(ctx)
	return updated, nil
}

// CreateUser lets an admin provision an account with an explicit role.
func (m *Manager) CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireAdminLocked(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if name == "" || email == "" || in.Password == "" {
		return nil, domain.ErrMissingFields
	}
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	_, err := m.deps.Users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.ErrEmailTaken
	case errors.Is(err, domain.ErrNotFound):
	default:
		return nil, fmt.Errorf("create user lookup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := m.deps.Users.Create(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		return nil, err
	}
	m.refreshUsersLocked(ctx)
	return created, nil
}

// DeleteUser removes an account and re-fetches the user list.
func (m *Manager) DeleteUser(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireAdminLocked(); err != nil {
		return err
	}
	if err := m.deps.Users.Delete(ctx, id); err != nil {
		return err
	}
	m.refreshUsersLocked(ctx)
	return nil
}

// UpdateUserRole flips an account between user and admin.
func (m *Manager) UpdateUserRole(ctx context.Context, id, role string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireAdminLocked(); err != nil {
		return nil, err
	}
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	updated, err := m.deps.Users.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}
	m.refreshUsersLocked(ctx)
	return updated, nil
}
