package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"shopfront/internal/domain"
)

// RegisterInput captures the fields of the registration form.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks credentials against the stored hash and, on success,
// establishes the session and loads the user's remote cart.
func (m *Manager) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, err := m.authenticateLocked(ctx, email, password)
	if err != nil {
		return nil, err
	}

	m.establishSessionLocked(ctx, *id)
	m.loadCartLocked(ctx)
	return id, nil
}

// AdminLogin is Login restricted to admin identities. Non-admin
// credentials are rejected the same way wrong ones are, so the endpoint
// does not reveal which accounts exist.
func (m *Manager) AdminLogin(ctx context.Context, email, password string) (*domain.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, err := m.authenticateLocked(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !id.IsAdmin() {
		return nil, domain.ErrInvalidCredentials
	}

	m.establishSessionLocked(ctx, *id)
	return id, nil
}

func (m *Manager) authenticateLocked(ctx context.Context, email, password string) (*domain.Identity, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	u, err := m.deps.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login lookup: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	id := domain.IdentityOf(*u)
	return &id, nil
}

// Register creates a user with role "user", establishes the session and
// creates an empty remote cart record for the new identity.
func (m *Manager) Register(ctx context.Context, in RegisterInput) (*domain.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if name == "" || email == "" || in.Password == "" {
		return nil, domain.ErrMissingFields
	}

	_, err := m.deps.Users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.ErrEmailTaken
	case errors.Is(err, domain.ErrNotFound):
		// email free
	default:
		return nil, fmt.Errorf("register lookup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := m.deps.Users.Create(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	id := domain.IdentityOf(*created)
	m.establishSessionLocked(ctx, id)

	if _, err := m.deps.Carts.Create(ctx, id.ID, nil); err != nil {
		// The record will be created lazily on the first cart save instead.
		m.logger.Warnf("shop: create cart for new user %s: %v", id.ID, err)
	}
	m.cart = nil
	m.cartLoaded = true

	return &id, nil
}

// Logout clears the session, the in-memory cart and the durable record.
// It never fails and makes no remote call.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = nil
	m.cart = nil
	m.cartLoaded = false
	if err := m.deps.Sessions.Clear(ctx); err != nil {
		m.logger.Warnf("shop: clear session record: %v", err)
	}
	m.logger.Info("shop: logged out")
}

func (m *Manager) establishSessionLocked(ctx context.Context, id domain.Identity) {
	m.current = &id
	if err := m.deps.Sessions.Save(ctx, id); err != nil {
		m.logger.Warnf("shop: save session record: %v", err)
	}
}

// loadCartLocked pulls the current user's remote cart. The loaded flag is
// set regardless of outcome so cart saves are unblocked either way.
func (m *Manager) loadCartLocked(ctx context.Context) {
	defer func() { m.cartLoaded = true }()
	if m.current == nil {
		return
	}
	record, err := m.deps.Carts.GetByUser(ctx, m.current.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			m.logger.Warnf("shop: load cart user=%s: %v", m.current.ID, err)
		}
		return
	}
	m.cart = append([]domain.CartItem(nil), record.Items...)
}
