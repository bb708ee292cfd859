package admission

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

const admCols = `id, patient_id, bed_id, status, admission_date, discharge_date, discharge_reason,
	transfer_reason, reason, diagnosis, priority, attending_physician, observations,
	created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, adm *Admission) error {
	adm.ID = uuid.New()
	row := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO admission (
			id, patient_id, bed_id, status, admission_date,
			reason, diagnosis, priority, attending_physician, observations
		) VALUES ($1,$2,$3,'active',NOW(),$4,$5,$6,$7,$8)
		RETURNING status, admission_date, created_at, updated_at`,
		adm.ID, adm.PatientID, adm.BedID,
		adm.Reason, adm.Diagnosis, adm.Priority, adm.AttendingPhysician, adm.Observations,
	)
	return row.Scan(&adm.Status, &adm.AdmissionDate, &adm.CreatedAt, &adm.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Admission, error) {
	adm, err := scanAdm(r.conn(ctx).QueryRow(ctx, `SELECT `+admCols+` FROM admission WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("admission %s does not exist", id)
	}
	return adm, err
}

// SetDischarged conditions on status so the transition happens at most
// once; the GREATEST guard keeps discharge_date >= admission_date even
// under clock skew between service instances.
func (r *repoPG) SetDischarged(ctx context.Context, id uuid.UUID, reason string, observations *string) (*Admission, error) {
	adm, err := scanAdm(r.conn(ctx).QueryRow(ctx, `
		UPDATE admission SET
			status = 'discharged',
			discharge_date = GREATEST(NOW(), admission_date),
			discharge_reason = $2,
			observations = COALESCE($3, observations),
			updated_at = NOW()
		WHERE id = $1 AND status = 'active'
		RETURNING `+admCols, id, reason, observations))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.transitionFailure(ctx, id)
	}
	return adm, err
}

func (r *repoPG) SetTransferred(ctx context.Context, id uuid.UUID, newBedID uuid.UUID, reason string) (*Admission, error) {
	adm, err := scanAdm(r.conn(ctx).QueryRow(ctx, `
		UPDATE admission SET
			bed_id = $2,
			transfer_reason = $3,
			updated_at = NOW()
		WHERE id = $1 AND status = 'active'
		RETURNING `+admCols, id, newBedID, reason))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.transitionFailure(ctx, id)
	}
	return adm, err
}

// transitionFailure distinguishes a missing admission from one in a
// terminal state after a zero-row conditional update.
func (r *repoPG) transitionFailure(ctx context.Context, id uuid.UUID) error {
	cur, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return apperr.InvalidState("admission %s is not active (status %s)", id, cur.Status)
}

func (r *repoPG) List(ctx context.Context, filter Filter) ([]*Detail, int, error) {
	var status, priority *string
	if filter.Status != nil {
		s := string(*filter.Status)
		status = &s
	}
	if filter.Priority != nil {
		priority = filter.Priority
	}

	const where = `
		FROM admission a
		JOIN bed b ON b.id = a.bed_id
		JOIN unit u ON u.id = b.unit_id
		JOIN patient p ON p.id = a.patient_id
		WHERE b.establishment_id = $1
			AND ($2::text IS NULL OR a.status = $2)
			AND ($3::text IS NULL OR a.priority = $3)
			AND ($4::uuid IS NULL OR b.unit_id = $4)`

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*)`+where,
		filter.EstablishmentID, status, priority, filter.UnitID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count admissions: %w", err)
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT a.id, a.patient_id, a.bed_id, a.status, a.admission_date, a.discharge_date,
			a.discharge_reason, a.transfer_reason, a.reason, a.diagnosis, a.priority,
			a.attending_physician, a.observations, a.created_at, a.updated_at,
			b.number, b.unit_id, u.name, p.name, p.cpf`+where+`
		ORDER BY a.admission_date DESC
		LIMIT $5 OFFSET $6`,
		filter.EstablishmentID, status, priority, filter.UnitID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list admissions: %w", err)
	}
	defer rows.Close()

	var details []*Detail
	for rows.Next() {
		var d Detail
		if err := rows.Scan(
			&d.ID, &d.PatientID, &d.BedID, &d.Status, &d.AdmissionDate, &d.DischargeDate,
			&d.DischargeReason, &d.TransferReason, &d.Reason, &d.Diagnosis, &d.Priority,
			&d.AttendingPhysician, &d.Observations, &d.CreatedAt, &d.UpdatedAt,
			&d.BedNumber, &d.UnitID, &d.UnitName, &d.PatientName, &d.PatientCPF,
		); err != nil {
			return nil, 0, err
		}
		details = append(details, &d)
	}
	return details, total, rows.Err()
}

func scanAdm(row pgx.Row) (*Admission, error) {
	var a Admission
	err := row.Scan(
		&a.ID, &a.PatientID, &a.BedID, &a.Status, &a.AdmissionDate, &a.DischargeDate,
		&a.DischargeReason, &a.TransferReason, &a.Reason, &a.Diagnosis, &a.Priority,
		&a.AttendingPhysician, &a.Observations, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
