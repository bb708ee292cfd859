package stats

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository aggregates over live tables. Reads run outside any
// transaction; a slightly stale snapshot is acceptable for dashboards.
type Repository interface {
	// BedCensus counts active beds, optionally restricted to one bed type.
	BedCensus(ctx context.Context, establishmentID uuid.UUID, bedType *string) (*bedCensus, error)
	// AdmissionCounts counts admissions opened and closed since the given
	// time, plus the current active total.
	AdmissionCounts(ctx context.Context, establishmentID uuid.UUID, since time.Time) (admitted, discharged, active int, err error)
	// AvgLengthOfStayDays averages stay duration in days over discharged
	// admissions with positive duration; 0 when there are none.
	AvgLengthOfStayDays(ctx context.Context, establishmentID uuid.UUID) (float64, error)
}
