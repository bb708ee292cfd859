package patient

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

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Summary, error) {
	var s Summary
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT id, name, cpf, birth_date, gender FROM patient WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.CPF, &s.BirthDate, &s.Gender)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("patient %s does not exist", id)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
