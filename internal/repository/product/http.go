package product

import (
	"context"
	"io"
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

func (r *httpRepo) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := r.client.Get(ctx, "/products", nil, &products); err != nil {
		r.logger.Warnf("product repo: list error=%v", err)
		return nil, err
	}
	r.logger.Debugf("product repo: list count=%d", len(products))
	return products, nil
}

type createPayload struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	PriceCents  int64     `json:"priceCents"`
	Stock       int       `json:"stock"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// updatePayload omits createdAt so a PATCH never clobbers the original stamp.
type updatePayload struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	PriceCents  int64     `json:"priceCents"`
	Stock       int       `json:"stock"`
	Image       string    `json:"image,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (r *httpRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	now := time.Now().UTC()
	body := createPayload{
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		PriceCents:  p.PriceCents,
		Stock:       p.Stock,
		Image:       p.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	var created domain.Product
	if err := r.client.Post(ctx, "/products", body, &created); err != nil {
		r.logger.Warnf("product repo: create name=%q error=%v", p.Name, err)
		return nil, err
	}
	r.logger.Infof("product repo: created id=%s name=%q", created.ID, created.Name)
	return &created, nil
}

func (r *httpRepo) Update(ctx context.Context, id string, p domain.Product) (*domain.Product, error) {
	body := updatePayload{
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		PriceCents:  p.PriceCents,
		Stock:       p.Stock,
		Image:       p.Image,
		UpdatedAt:   time.Now().UTC(),
	}
	var updated domain.Product
	if err := r.client.Patch(ctx, "/products/"+id, body, &updated); err != nil {
		r.logger.Warnf("product repo: update id=%s error=%v", id, err)
		return nil, err
	}
	return &updated, nil
}

func (r *httpRepo) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, "/products/"+id); err != nil {
		r.logger.Warnf("product repo: delete id=%s error=%v", id, err)
		return err
	}
	r.logger.Infof("product repo: deleted id=%s", id)
	return nil
}
