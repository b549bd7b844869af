package cart

import (
	"context"

	"shopfront/internal/domain"
)

type Repository interface {
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	Create(ctx context.Context, userID string, items []domain.CartItem) (*domain.Cart, error)
	SetItems(ctx context.Context, cartID string, items []domain.CartItem) error
}
