package facility

import "github.com/google/uuid"

// Unit is a sub-ward of an establishment. Units scope bed auto-selection
// and group the bed map; provisioning them is out of scope here.
type Unit struct {
	ID              uuid.UUID `db:"id" json:"id"`
	EstablishmentID uuid.UUID `db:"establishment_id" json:"establishment_id"`
	Name            string    `db:"name" json:"name"`
}
