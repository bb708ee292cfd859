package patient

import (
	"time"

	"github.com/google/uuid"
)

// Summary is the slice of the patient record this service reads. The
// patient directory owns the full record; we never write these rows.
type Summary struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	CPF       *string    `db:"cpf" json:"cpf,omitempty"`
	BirthDate *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Gender    *string    `db:"gender" json:"gender,omitempty"`
}
