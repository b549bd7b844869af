package category

import (
	"context"

	"shopfront/internal/domain"
	"shopfront/internal/rest"
)

type httpRepo struct {
	client *rest.Client
}

func NewHTTP(client *rest.Client) Repository {
	return &httpRepo{client: client}
}

func (r *httpRepo) List(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := r.client.Get(ctx, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *httpRepo) Create(ctx context.Context, name string) (*domain.Category, error) {
	var created domain.Category
	if err := r.client.Post(ctx, "/categories", map[string]string{"name": name}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
