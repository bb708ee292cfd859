package bed

import (
	"context"

	"github.com/google/uuid"
)

// Repository owns bed rows. State transitions are single conditional
// updates against the current status, never read-then-write, so the store
// is the concurrency-control boundary. Implementations report failures with
// apperr kinds: NotFound for missing ids, Conflict when a reserve loses a
// race, InvalidState for transitions from the wrong status, and
// NoBedsAvailable when auto-selection matches nothing.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Bed, error)

	// FindAvailable selects one available, active bed scoped to the
	// establishment and, when unitID is non-nil, the unit. Ties break by
	// ascending (unit name, bed number).
	FindAvailable(ctx context.Context, establishmentID uuid.UUID, unitID *uuid.UUID) (*Bed, error)

	// Reserve transitions available -> occupied.
	Reserve(ctx context.Context, id uuid.UUID) (*Bed, error)
	// Release transitions occupied -> available.
	Release(ctx context.Context, id uuid.UUID) (*Bed, error)
	// SetMaintenance transitions available|occupied -> maintenance.
	SetMaintenance(ctx context.Context, id uuid.UUID, reason string) (*Bed, error)
	// SetActive flips the soft-disable flag.
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*Bed, error)

	ListByEstablishment(ctx context.Context, establishmentID uuid.UUID) ([]*WithUnit, error)
}
