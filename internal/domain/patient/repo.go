package patient

import (
	"context"

	"github.com/google/uuid"
)

// Repository reads patient summaries. NotFound for unknown ids.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Summary, error)
}
