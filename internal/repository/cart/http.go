package cart

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

// GetByUser returns the user's cart record, or ErrNotFound when none has
// been created yet.
func (r *httpRepo) GetByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	query := url.Values{"userId": []string{userID}}
	var carts []domain.Cart
	if err := r.client.Get(ctx, "/carts", query, &carts); err != nil {
		r.logger.Warnf("cart repo: get user=%s error=%v", userID, err)
		return nil, err
	}
	if len(carts) == 0 {
		return nil, domain.ErrNotFound
	}
	return &carts[0], nil
}

type createPayload struct {
	UserID    string            `json:"userId"`
	Items     []domain.CartItem `json:"items"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func (r *httpRepo) Create(ctx context.Context, userID string, items []domain.CartItem) (*domain.Cart, error) {
	if items == nil {
		items = []domain.CartItem{}
	}
	now := time.Now().UTC()
	body := createPayload{UserID: userID, Items: items, CreatedAt: now, UpdatedAt: now}
	var created domain.Cart
	if err := r.client.Post(ctx, "/carts", body, &created); err != nil {
		r.logger.Warnf("cart repo: create user=%s error=%v", userID, err)
		return nil, err
	}
	r.logger.Infof("cart repo: created id=%s user=%s", created.ID, userID)
	return &created, nil
}

// SetItems replaces the full item list of an existing cart record. Saves
// always transmit the whole snapshot, never a delta.
func (r *httpRepo) SetItems(ctx context.Context, cartID string, items []domain.CartItem) error {
	if items == nil {
		items = []domain.CartItem{}
	}
	body := map[string]interface{}{
		"items":     items,
		"updatedAt": time.Now().UTC(),
	}
	if err := r.client.Patch(ctx, "/carts/"+cartID, body, nil); err != nil {
		r.logger.Warnf("cart repo: set items cart=%s error=%v", cartID, err)
		return err
	}
	return nil
}
