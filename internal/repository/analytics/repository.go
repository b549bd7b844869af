package analytics

import (
	"context"

	"shopfront/internal/domain"
)

// Repository reads the optional remote analytics document. Absence of the
// endpoint is expected and reported as ErrNotFound.
type Repository interface {
	Fetch(ctx context.Context) (*domain.Analytics, error)
}
