package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hospitalis/hospitalis/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) db.Querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) BedCensus(ctx context.Context, establishmentID uuid.UUID, bedType *string) (*bedCensus, error) {
	var c bedCensus
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'occupied'),
			COUNT(*) FILTER (WHERE status = 'available')
		FROM bed
		WHERE establishment_id = $1
			AND is_active
			AND ($2::text IS NULL OR bed_type = $2)`,
		establishmentID, bedType,
	).Scan(&c.Total, &c.Occupied, &c.Available)
	if err != nil {
		return nil, fmt.Errorf("bed census: %w", err)
	}
	return &c, nil
}

func (r *repoPG) AdmissionCounts(ctx context.Context, establishmentID uuid.UUID, since time.Time) (int, int, int, error) {
	var admitted, discharged, active int
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE a.admission_date >= $2),
			COUNT(*) FILTER (WHERE a.status = 'discharged' AND a.discharge_date >= $2),
			COUNT(*) FILTER (WHERE a.status = 'active')
		FROM admission a
		JOIN bed b ON b.id = a.bed_id
		WHERE b.establishment_id = $1`,
		establishmentID, since,
	).Scan(&admitted, &discharged, &active)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("admission counts: %w", err)
	}
	return admitted, discharged, active, nil
}

func (r *repoPG) AvgLengthOfStayDays(ctx context.Context, establishmentID uuid.UUID) (float64, error) {
	var avg *float64
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT AVG(EXTRACT(EPOCH FROM (a.discharge_date - a.admission_date)) / 86400.0)
		FROM admission a
		JOIN bed b ON b.id = a.bed_id
		WHERE b.establishment_id = $1
			AND a.status = 'discharged'
			AND a.discharge_date > a.admission_date`,
		establishmentID,
	).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("average length of stay: %w", err)
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
