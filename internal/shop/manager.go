// Package shop holds the state manager behind every storefront and
// back-office operation: the in-memory projection of catalog, cart,
// session and orders, and the only code allowed to mutate them or talk
// to the persistence service.
package shop

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"shopfront/internal/domain"
	analyticsrepo "shopfront/internal/repository/analytics"
	cartrepo "shopfront/internal/repository/cart"
	categoryrepo "shopfront/internal/repository/category"
	orderrepo "shopfront/internal/repository/order"
	productrepo "shopfront/internal/repository/product"
	userrepo "shopfront/internal/repository/user"
)

// featuredCount is how many catalog entries the home page shows.
const featuredCount = 8

// SessionStore persists the signed-in identity across restarts.
type SessionStore interface {
	Save(ctx context.Context, id domain.Identity) error
	Load(ctx context.Context) (*domain.Identity, error)
	Clear(ctx context.Context) error
}

// Deps bundles the remote-store accessors the manager runs on.
type Deps struct {
	Products   productrepo.Repository
	Categories categoryrepo.Repository
	Users      userrepo.Repository
	Orders     orderrepo.Repository
	Carts      cartrepo.Repository
	Analytics  analyticsrepo.Repository
	Sessions   SessionStore
}

// Manager owns the shared shop state. All operations serialize on one
// mutex, held across remote calls, so cart saves can never complete out
// of order.
type Manager struct {
	mu sync.Mutex

	products   []domain.Product
	categories []string
	orders     []domain.Order
	users      []domain.User
	cart       []domain.CartItem
	current    *domain.Identity
	cartLoaded bool

	deps   Deps
	logger *logrus.Logger
	now    func() time.Time
}

// New builds a Manager with empty collections. Call Initialize to
// rehydrate the session and load the catalog.
func New(deps Deps, logger *logrus.Logger) *Manager {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Manager{
		deps:       deps,
		categories: []string{domain.AllCategory},
		logger:     logger,
		now:        time.Now,
	}
}

// Initialize restores a saved identity (loading its remote cart) and
// refreshes all collections. It never fails: remote errors are logged and
// the manager proceeds with whatever state it could get.
func (m *Manager) Initialize(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	saved, err := m.deps.Sessions.Load(ctx)
	switch {
	case err == nil:
		m.current = saved
		m.loadCartLocked(ctx)
		m.logger.Infof("shop: session restored user=%s role=%s", saved.ID, saved.Role)
	case err == domain.ErrNotFound:
		// nobody signed in
	default:
		m.logger.Warnf("shop: session restore failed: %v", err)
	}

	m.refreshAllLocked(ctx)
}

// RefreshAll reloads products, categories, orders and users. Failed
// fetches keep the previous collection.
func (m *Manager) RefreshAll(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshAllLocked(ctx)
}

func (m *Manager) refreshAllLocked(ctx context.Context) {
	m.refreshProductsLocked(ctx)
	m.refreshCategoriesLocked(ctx)
	m.refreshOrdersLocked(ctx)
	m.refreshUsersLocked(ctx)
}

func (m *Manager) refreshProductsLocked(ctx context.Context) {
	products, err := m.deps.Products.List(ctx)
	if err != nil {
		m.logger.Warnf("shop: refresh products: %v", err)
		return
	}
	m.products = products
}

func (m *Manager) refreshCategoriesLocked(ctx context.Context) {
	categories, err := m.deps.Categories.List(ctx)
	if err != nil {
		m.logger.Warnf("shop: refresh categories: %v", err)
		return
	}
	if len(categories) == 0 {
		return
	}
	names := make([]string, 0, len(categories)+1)
	names = append(names, domain.AllCategory)
	for _, c := range categories {
		names = append(names, c.Name)
	}
	m.categories = names
}

func (m *Manager) refreshOrdersLocked(ctx context.Context) {
	orders, err := m.deps.Orders.List(ctx)
	if err != nil {
		m.logger.Warnf("shop: refresh orders: %v", err)
		return
	}
	m.orders = orders
}

func (m *Manager) refreshUsersLocked(ctx context.Context) {
	users, err := m.deps.Users.List(ctx)
	if err != nil {
		m.logger.Warnf("shop: refresh users: %v", err)
		return
	}
	m.users = users
}

// CurrentUser returns the signed-in identity, or nil.
func (m *Manager) CurrentUser() *domain.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	id := *m.current
	return &id
}

// Products returns the catalog projection.
func (m *Manager) Products() []domain.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Product(nil), m.products...)
}

// FilteredProducts returns products in the given category; the synthetic
// "All" category matches everything.
func (m *Manager) FilteredProducts(category string) []domain.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	if category == "" || category == domain.AllCategory {
		return append([]domain.Product(nil), m.products...)
	}
	var filtered []domain.Product
	for _, p := range m.products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// FeaturedProducts returns the leading slice of the catalog for the home
// page.
func (m *Manager) FeaturedProducts() []domain.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.products)
	if n > featuredCount {
		n = featuredCount
	}
	return append([]domain.Product(nil), m.products[:n]...)
}

// ProductByID finds a catalog entry in the current projection.
func (m *Manager) ProductByID(id string) (*domain.Product, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.ID == id {
			found := p
			return &found, true
		}
	}
	return nil, false
}

// Categories returns category names, always led by "All".
func (m *Manager) Categories() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.categories...)
}

// Orders returns the full order projection.
func (m *Manager) Orders() []domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Order(nil), m.orders...)
}

// Users returns the user projection.
func (m *Manager) Users() []domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.User(nil), m.users...)
}
