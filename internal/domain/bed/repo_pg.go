package bed

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hospitalis/hospitalis/internal/platform/apperr"
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

const bedCols = `id, establishment_id, unit_id, number, bed_type, status, is_active,
	maintenance_reason, created_at, updated_at`

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Bed, error) {
	b, err := scanBed(r.conn(ctx).QueryRow(ctx, `SELECT `+bedCols+` FROM bed WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("bed %s does not exist", id)
	}
	return b, err
}

func (r *repoPG) FindAvailable(ctx context.Context, establishmentID uuid.UUID, unitID *uuid.UUID) (*Bed, error) {
	b, err := scanBed(r.conn(ctx).QueryRow(ctx, `
		SELECT b.id, b.establishment_id, b.unit_id, b.number, b.bed_type, b.status, b.is_active,
			b.maintenance_reason, b.created_at, b.updated_at
		FROM bed b
		JOIN unit u ON u.id = b.unit_id
		WHERE b.establishment_id = $1
			AND b.status = 'available'
			AND b.is_active
			AND ($2::uuid IS NULL OR b.unit_id = $2)
		ORDER BY u.name ASC, b.number ASC
		LIMIT 1`,
		establishmentID, unitID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NoBeds("no available beds in establishment %s", establishmentID)
	}
	return b, err
}

// Reserve is a compare-and-set on the current status: the UPDATE matches
// only when the row is still available, so a racing caller gets zero rows
// and a Conflict instead of a double booking.
func (r *repoPG) Reserve(ctx context.Context, id uuid.UUID) (*Bed, error) {
	b, err := scanBed(r.conn(ctx).QueryRow(ctx, `
		UPDATE bed SET status = 'occupied', updated_at = NOW()
		WHERE id = $1 AND status = 'available' AND is_active
		RETURNING `+bedCols, id))
	if errors.Is(err, pgx.ErrNoRows) {
		cur, gerr := r.GetByID(ctx, id)
		if gerr != nil {
			return nil, gerr
		}
		return nil, apperr.Conflict("bed %s is not available (status %s, active %t)", id, cur.Status, cur.IsActive)
	}
	return b, err
}

func (r *repoPG) Release(ctx context.Context, id uuid.UUID) (*Bed, error) {
	b, err := scanBed(r.conn(ctx).QueryRow(ctx, `
		UPDATE bed SET status = 'available', maintenance_reason = NULL, updated_at = NOW()
		WHERE id = $1 AND status = 'occupied'
		RETURNING `+bedCols, id))
	if errors.Is(err, pgx.ErrNoRows) {
		cur, gerr := r.GetByID(ctx, id)
		if gerr != nil {
			return nil, gerr
		}
		return nil, apperr.InvalidState("bed %s is not occupied (status %s)", id, cur.Status)
	}
	return b, err
}

func (r *repoPG) SetMaintenance(ctx context.Context, id uuid.UUID, reason string) (*Bed, error) {
	b, err := scanBed(r.conn(ctx).QueryRow(ctx, `
		UPDATE bed SET status = 'maintenance', maintenance_reason = $2, updated_at = NOW()
		WHERE id = $1 AND status IN ('available', 'occupied')
		RETURNING `+bedCols, id, reason))
	if errors.Is(err, pgx.ErrNoRows) {
		cur, gerr := r.GetByID(ctx, id)
		if gerr != nil {
			return nil, gerr
		}
		return nil, apperr.InvalidState("bed %s is already in maintenance", cur.ID)
	}
	return b, err
}

func (r *repoPG) SetActive(ctx context.Context, id uuid.UUID, active bool) (*Bed, error) {
	b, err := scanBed(r.conn(ctx).QueryRow(ctx, `
		UPDATE bed SET is_active = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+bedCols, id, active))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("bed %s does not exist", id)
	}
	return b, err
}

func (r *repoPG) ListByEstablishment(ctx context.Context, establishmentID uuid.UUID) ([]*WithUnit, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT b.id, b.establishment_id, b.unit_id, b.number, b.bed_type, b.status, b.is_active,
			b.maintenance_reason, b.created_at, b.updated_at, u.name AS unit_name
		FROM bed b
		JOIN unit u ON u.id = b.unit_id
		WHERE b.establishment_id = $1
		ORDER BY u.name ASC, b.number ASC`, establishmentID)
	if err != nil {
		return nil, fmt.Errorf("list beds: %w", err)
	}
	defer rows.Close()

	var beds []*WithUnit
	for rows.Next() {
		var b WithUnit
		if err := rows.Scan(
			&b.ID, &b.EstablishmentID, &b.UnitID, &b.Number, &b.Type, &b.Status, &b.IsActive,
			&b.MaintenanceReason, &b.CreatedAt, &b.UpdatedAt, &b.UnitName,
		); err != nil {
			return nil, err
		}
		beds = append(beds, &b)
	}
	return beds, rows.Err()
}

func scanBed(row pgx.Row) (*Bed, error) {
	var b Bed
	err := row.Scan(
		&b.ID, &b.EstablishmentID, &b.UnitID, &b.Number, &b.Type, &b.Status, &b.IsActive,
		&b.MaintenanceReason, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
