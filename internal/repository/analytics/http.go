package analytics

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

func (r *httpRepo) Fetch(ctx context.Context) (*domain.Analytics, error) {
	var a domain.Analytics
	if err := r.client.Get(ctx, "/analytics", nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
