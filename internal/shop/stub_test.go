package shop

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"shopfront/internal/domain"
)

type stubProducts struct {
	list       []domain.Product
	listErr    error
	created    *domain.Product
	createErr  error
	updated    *domain.Product
	updateErr  error
	deleteErr  error
	lastCreate domain.Product
	lastUpdate domain.Product
	lastID     string
	deletedID  string
}

func (s *stubProducts) List(_ context.Context) ([]domain.Product, error) {
	return s.list, s.listErr
}

func (s *stubProducts) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.lastCreate = p
	return s.created, s.createErr
}

func (s *stubProducts) Update(_ context.Context, id string, p domain.Product) (*domain.Product, error) {
	s.lastID = id
	s.lastUpdate = p
	return s.updated, s.updateErr
}

func (s *stubProducts) Delete(_ context.Context, id string) error {
	s.deletedID = id
	return s.deleteErr
}

type stubCategories struct {
	list    []domain.Category
	listErr error
}

func (s *stubCategories) List(_ context.Context) ([]domain.Category, error) {
	return s.list, s.listErr
}

func (s *stubCategories) Create(_ context.Context, name string) (*domain.Category, error) {
	created := domain.Category{ID: "cat-1", Name: name}
	s.list = append(s.list, created)
	return &created, nil
}

type stubUsers struct {
	list        []domain.User
	listErr     error
	byEmail     *domain.User
	byEmailErr  error
	created     *domain.User
	createErr   error
	roleUpdated *domain.User
	roleErr     error
	deleteErr   error
	lastEmail   string
	lastCreate  domain.User
	lastRoleID  string
	lastRole    string
	deletedID   string
}

func (s *stubUsers) List(_ context.Context) ([]domain.User, error) {
	return s.list, s.listErr
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.lastEmail = email
	return s.byEmail, s.byEmailErr
}

func (s *stubUsers) Create(_ context.Context, u domain.User) (*domain.User, error) {
	s.lastCreate = u
	return s.created, s.createErr
}

func (s *stubUsers) UpdateRole(_ context.Context, id, role string) (*domain.User, error) {
	s.lastRoleID = id
	s.lastRole = role
	return s.roleUpdated, s.roleErr
}

func (s *stubUsers) Delete(_ context.Context, id string) error {
	s.deletedID = id
	return s.deleteErr
}

type stubOrders struct {
	list         []domain.Order
	listErr      error
	byUser       []domain.Order
	byUserErr    error
	created      *domain.Order
	createErr    error
	statusResult *domain.Order
	statusErr    error
	lastUserID   string
	lastCreate   domain.Order
	lastStatusID string
	lastStatus   string
}

func (s *stubOrders) List(_ context.Context) ([]domain.Order, error) {
	return s.list, s.listErr
}

func (s *stubOrders) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	s.lastUserID = userID
	return s.byUser, s.byUserErr
}

func (s *stubOrders) Create(_ context.Context, o domain.Order) (*domain.Order, error) {
	s.lastCreate = o
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.created != nil {
		return s.created, nil
	}
	created := o
	created.ID = "order-1"
	return &created, nil
}

func (s *stubOrders) UpdateStatus(_ context.Context, id, status string) (*domain.Order, error) {
	s.lastStatusID = id
	s.lastStatus = status
	return s.statusResult, s.statusErr
}

type stubCarts struct {
	record     *domain.Cart
	getErr     error
	created    *domain.Cart
	createErr  error
	setErr     error
	getCalls   int
	lastSetID  string
	lastItems  []domain.CartItem
	lastCreate []domain.CartItem
}

func (s *stubCarts) GetByUser(_ context.Context, userID string) (*domain.Cart, error) {
	s.getCalls++
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.record == nil {
		return nil, domain.ErrNotFound
	}
	return s.record, nil
}

func (s *stubCarts) Create(_ context.Context, userID string, items []domain.CartItem) (*domain.Cart, error) {
	s.lastCreate = append([]domain.CartItem{}, items...)
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.created != nil {
		return s.created, nil
	}
	return &domain.Cart{ID: "cart-1", UserID: userID, Items: items}, nil
}

func (s *stubCarts) SetItems(_ context.Context, cartID string, items []domain.CartItem) error {
	s.lastSetID = cartID
	s.lastItems = append([]domain.CartItem(nil), items...)
	return s.setErr
}

type stubAnalytics struct {
	doc *domain.Analytics
	err error
}

func (s *stubAnalytics) Fetch(_ context.Context) (*domain.Analytics, error) {
	return s.doc, s.err
}

type stubSessions struct {
	saved      *domain.Identity
	loadErr    error
	saveErr    error
	clearErr   error
	clearCalls int
}

func (s *stubSessions) Save(_ context.Context, id domain.Identity) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = &id
	return nil
}

func (s *stubSessions) Load(_ context.Context) (*domain.Identity, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.saved == nil {
		return nil, domain.ErrNotFound
	}
	return s.saved, nil
}

func (s *stubSessions) Clear(_ context.Context) error {
	s.clearCalls++
	if s.clearErr != nil {
		return s.clearErr
	}
	s.saved = nil
	return nil
}

type testDeps struct {
	products   *stubProducts
	categories *stubCategories
	users      *stubUsers
	orders     *stubOrders
	carts      *stubCarts
	analytics  *stubAnalytics
	sessions   *stubSessions
}

func newTestManager() (*Manager, *testDeps) {
	d := &testDeps{
		products:   &stubProducts{},
		categories: &stubCategories{},
		users:      &stubUsers{},
		orders:     &stubOrders{},
		carts:      &stubCarts{},
		analytics:  &stubAnalytics{err: domain.ErrNotFound},
		sessions:   &stubSessions{},
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	m := New(Deps{
		Products:   d.products,
		Categories: d.categories,
		Users:      d.users,
		Orders:     d.orders,
		Carts:      d.carts,
		Analytics:  d.analytics,
		Sessions:   d.sessions,
	}, logger)
	m.now = func() time.Time { return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC) }
	return m, d
}

func signIn(m *Manager, role string) {
	m.current = &domain.Identity{ID: "u1", Name: "Test User", Email: "test@example.com", Role: role}
	m.cartLoaded = true
}
