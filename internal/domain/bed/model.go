package bed

import (
	"time"

	"github.com/google/uuid"
)

// Status is the availability state of a bed.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusOccupied    Status = "occupied"
	StatusMaintenance Status = "maintenance"
)

// Valid reports whether s is a known bed status.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusMaintenance:
		return true
	}
	return false
}

// Bed maps to the bed table. Beds are created by facility provisioning and
// never deleted, only deactivated.
type Bed struct {
	ID                uuid.UUID `db:"id" json:"id"`
	EstablishmentID   uuid.UUID `db:"establishment_id" json:"establishment_id"`
	UnitID            uuid.UUID `db:"unit_id" json:"unit_id"`
	Number            string    `db:"number" json:"number"`
	Type              string    `db:"bed_type" json:"bed_type"`
	Status            Status    `db:"status" json:"status"`
	IsActive          bool      `db:"is_active" json:"is_active"`
	MaintenanceReason *string   `db:"maintenance_reason" json:"maintenance_reason,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// WithUnit is a bed joined with its unit name for display.
type WithUnit struct {
	Bed
	UnitName string `db:"unit_name" json:"unit_name"`
}

// Summary is the bed shape exposed on the bed map.
type Summary struct {
	ID       uuid.UUID `json:"id"`
	Number   string    `json:"number"`
	Type     string    `json:"bed_type"`
	Status   Status    `json:"status"`
	IsActive bool      `json:"is_active"`
}

// MapView groups an establishment's beds by unit for the bed-map display.
// The status counts cover active beds only; TotalBeds counts every bed.
type MapView struct {
	UnitsGrouped    map[string][]Summary `json:"units_grouped"`
	TotalBeds       int                  `json:"total_beds"`
	AvailableBeds   int                  `json:"available_beds"`
	OccupiedBeds    int                  `json:"occupied_beds"`
	MaintenanceBeds int                  `json:"maintenance_beds"`
}
