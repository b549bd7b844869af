package order

import (
	"context"

	"shopfront/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error)
}
