package user

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

func (r *httpRepo) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := r.client.Get(ctx, "/users", nil, &users); err != nil {
		r.logger.Warnf("user repo: list error=%v", err)
		return nil, err
	}
	return users, nil
}

// GetByEmail filters by email only; credential comparison happens in the
// caller against the stored hash, never in a query string.
func (r *httpRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := url.Values{"email": []string{email}}
	var users []domain.User
	if err := r.client.Get(ctx, "/users", query, &users); err != nil {
		r.logger.Warnf("user repo: get by email error=%v", err)
		return nil, err
	}
	if len(users) == 0 {
		return nil, domain.ErrNotFound
	}
	return &users[0], nil
}

type createPayload struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (r *httpRepo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	body := createPayload{
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	var created domain.User
	if err := r.client.Post(ctx, "/users", body, &created); err != nil {
		r.logger.Warnf("user repo: create email=%s error=%v", u.Email, err)
		return nil, err
	}
	r.logger.Infof("user repo: created id=%s email=%s role=%s", created.ID, created.Email, created.Role)
	return &created, nil
}

func (r *httpRepo) UpdateRole(ctx context.Context, id, role string) (*domain.User, error) {
	body := map[string]interface{}{
		"role":      role,
		"updatedAt": time.Now().UTC(),
	}
	var updated domain.User
	if err := r.client.Patch(ctx, "/users/"+id, body, &updated); err != nil {
		r.logger.Warnf("user repo: update role id=%s error=%v", id, err)
		return nil, err
	}
	return &updated, nil
}

func (r *httpRepo) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, "/users/"+id); err != nil {
		r.logger.Warnf("user repo: delete id=%s error=%v", id, err)
		return err
	}
	r.logger.Infof("user repo: deleted id=%s", id)
	return nil
}
