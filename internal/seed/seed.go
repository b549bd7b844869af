// Package seed pushes demo catalog data and a back-office account into
// the remote store for manual testing.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"shopfront/internal/domain"
	categoryrepo "shopfront/internal/repository/category"
	productrepo "shopfront/internal/repository/product"
	userrepo "shopfront/internal/repository/user"
)

// Deps are the remote-store accessors the seeder writes through.
type Deps struct {
	Products   productrepo.Repository
	Categories categoryrepo.Repository
	Users      userrepo.Repository
}

// AdminEmail is the demo back-office account. Its password comes from
// the SEED_ADMIN_PASSWORD environment variable at apply time.
const AdminEmail = "admin@shopfront.local"

var demoCategories = []string{"Sneakers", "Hats", "Bags"}

var demoProducts = []domain.Product{
	{Name: "Trail Runner", Description: "Lightweight trail running shoe", Category: "Sneakers", PriceCents: 7999, Stock: 24},
	{Name: "Court Classic", Description: "Leather low-top", Category: "Sneakers", PriceCents: 6499, Stock: 40},
	{Name: "Wool Beanie", Description: "Merino wool, one size", Category: "Hats", PriceCents: 1899, Stock: 60},
	{Name: "Canvas Tote", Description: "Heavy canvas, inside pocket", Category: "Bags", PriceCents: 2499, Stock: 35},
	{Name: "Weekender Duffel", Description: "Fits in an overhead bin", Category: "Bags", PriceCents: 8999, Stock: 8},
}

// Apply inserts the demo data. It is idempotent: existing categories,
// products (matched by name) and the admin account are left untouched.
func Apply(ctx context.Context, deps Deps, adminPassword string, logger *logrus.Logger) error {
	if err := ensureCategories(ctx, deps.Categories, logger); err != nil {
		return fmt.Errorf("ensure categories: %w", err)
	}
	if err := ensureProducts(ctx, deps.Products, logger); err != nil {
		return fmt.Errorf("ensure products: %w", err)
	}
	if err := ensureAdmin(ctx, deps.Users, adminPassword, logger); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	return nil
}

func ensureCategories(ctx context.Context, repo categoryrepo.Repository, logger *logrus.Logger) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, c := range existing {
		have[c.Name] = true
	}
	for _, name := range demoCategories {
		if have[name] {
			continue
		}
		if _, err := repo.Create(ctx, name); err != nil {
			return fmt.Errorf("create category %q: %w", name, err)
		}
		logger.Infof("seed: created category %q", name)
	}
	return nil
}

func ensureProducts(ctx context.Context, repo productrepo.Repository, logger *logrus.Logger) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, p := range existing {
		have[p.Name] = true
	}
	for _, p := range demoProducts {
		if have[p.Name] {
			continue
		}
		if _, err := repo.Create(ctx, p); err != nil {
			return fmt.Errorf("create product %q: %w", p.Name, err)
		}
		logger.Infof("seed: created product %q", p.Name)
	}
	return nil
}

func ensureAdmin(ctx context.Context, repo userrepo.Repository, password string, logger *logrus.Logger) error {
	if password == "" {
		return errors.New("admin password required")
	}
	_, err := repo.GetByEmail(ctx, AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if _, err := repo.Create(ctx, domain.User{
		Name:         "Store Admin",
		Email:        AdminEmail,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}); err != nil {
		return err
	}
	logger.Infof("seed: created admin account %s", AdminEmail)
	return nil
}
