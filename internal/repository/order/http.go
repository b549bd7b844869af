package order

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"shopfront/internal/domain"
	"shopfront/internal/rest"
)

type httpRepo struct {
	client *rest.Client
	logger *logrus.Logger
}

func NewHTTP(client *rest.Client, logger *logrus.Logger) Repository {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &httpRepo{client: client, logger: logger}
}

func (r *httpRepo) List(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := r.client.Get(ctx, "/orders", nil, &orders); err != nil {
		r.logger.Warnf("order repo: list error=%v", err)
		return nil, err
	}
	return orders, nil
}

func (r *httpRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	query := url.Values{"userId": []string{userID}}
	var orders []domain.Order
	if err := r.client.Get(ctx, "/orders", query, &orders); err != nil {
		r.logger.Warnf("order repo: list user=%s error=%v", userID, err)
		return nil, err
	}
	return orders, nil
}

func (r *httpRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	var created domain.Order
	if err := r.client.Post(ctx, "/orders", o, &created); err != nil {
		r.logger.Warnf("order repo: create number=%s error=%v", o.OrderNumber, err)
		return nil, err
	}
	r.logger.Infof("order repo: created id=%s number=%s totalCents=%d", created.ID, created.OrderNumber, created.TotalCents)
	return &created, nil
}

func (r *httpRepo) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	body := map[string]interface{}{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	}
	var updated domain.Order
	if err := r.client.Patch(ctx, "/orders/"+id, body, &updated); err != nil {
		r.logger.Warnf("order repo: update status id=%s status=%s error=%v", id, status, err)
		return nil, err
	}
	r.logger.Infof("order repo: status id=%s -> %s", id, status)
	return &updated, nil
}
