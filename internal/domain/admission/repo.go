package admission

import (
	"context"

	"github.com/google/uuid"
)

// Repository owns admission rows. Lifecycle transitions are conditional
// updates keyed on the current status, so a second concurrent discharge or
// transfer of the same admission loses at the store and surfaces
// InvalidState. NotFound is reported for missing ids.
type Repository interface {
	Create(ctx context.Context, adm *Admission) error
	GetByID(ctx context.Context, id uuid.UUID) (*Admission, error)

	// SetDischarged transitions active -> discharged, stamping the
	// discharge date and reason once.
	SetDischarged(ctx context.Context, id uuid.UUID, reason string, observations *string) (*Admission, error)
	// SetTransferred moves an active admission to a new bed, overwriting
	// the transfer reason. Status is unchanged.
	SetTransferred(ctx context.Context, id uuid.UUID, newBedID uuid.UUID, reason string) (*Admission, error)

	List(ctx context.Context, filter Filter) ([]*Detail, int, error)
}
