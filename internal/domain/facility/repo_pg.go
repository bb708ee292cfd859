package facility

import (
	"context"
	"errors"

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

func (r *repoPG) GetUnit(ctx context.Context, id uuid.UUID) (*Unit, error) {
	var u Unit
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT id, establishment_id, name FROM unit WHERE id = $1`, id,
	).Scan(&u.ID, &u.EstablishmentID, &u.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("unit %s does not exist", id)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repoPG) ListUnits(ctx context.Context, establishmentID uuid.UUID) ([]*Unit, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT id, establishment_id, name FROM unit WHERE establishment_id = $1 ORDER BY name ASC`,
		establishmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []*Unit
	for rows.Next() {
		var u Unit
		if err := rows.Scan(&u.ID, &u.EstablishmentID, &u.Name); err != nil {
			return nil, err
		}
		units = append(units, &u)
	}
	return units, rows.Err()
}
