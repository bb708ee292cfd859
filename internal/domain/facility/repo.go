package facility

import (
	"context"

	"github.com/google/uuid"
)

// Repository reads unit rows. NotFound for unknown ids.
type Repository interface {
	GetUnit(ctx context.Context, id uuid.UUID) (*Unit, error)
	ListUnits(ctx context.Context, establishmentID uuid.UUID) ([]*Unit, error)
}
