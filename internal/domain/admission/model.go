package admission

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an admission. Discharge is terminal:
// a re-admitted patient gets a new record.
type Status string

const (
	StatusActive     Status = "active"
	StatusDischarged Status = "discharged"
)

// Admission maps to the admission table. It records one patient occupying
// one bed, from admit to discharge. The clinical fields are opaque payload
// carried for the care team; this service never interprets them.
type Admission struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	PatientID       uuid.UUID  `db:"patient_id" json:"patient_id"`
	BedID           uuid.UUID  `db:"bed_id" json:"bed_id"`
	Status          Status     `db:"status" json:"status"`
	AdmissionDate   time.Time  `db:"admission_date" json:"admission_date"`
	DischargeDate   *time.Time `db:"discharge_date" json:"discharge_date,omitempty"`
	DischargeReason *string    `db:"discharge_reason" json:"discharge_reason,omitempty"`
	// TransferReason is overwritten on each transfer; history is not kept.
	TransferReason *string `db:"transfer_reason" json:"transfer_reason,omitempty"`

	Reason             string  `db:"reason" json:"reason"`
	Diagnosis          *string `db:"diagnosis" json:"diagnosis,omitempty"`
	Priority           *string `db:"priority" json:"priority,omitempty"`
	AttendingPhysician *string `db:"attending_physician" json:"attending_physician,omitempty"`
	Observations       *string `db:"observations" json:"observations,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ClinicalPayload carries the opaque clinical fields supplied at admit time.
type ClinicalPayload struct {
	Reason             string  `json:"reason"`
	Diagnosis          *string `json:"diagnosis,omitempty"`
	Priority           *string `json:"priority,omitempty"`
	AttendingPhysician *string `json:"attending_physician,omitempty"`
	Observations       *string `json:"observations,omitempty"`
}

// Filter narrows admission listings. Nil fields are ignored.
type Filter struct {
	EstablishmentID uuid.UUID
	Status          *Status
	Priority        *string
	UnitID          *uuid.UUID
	Limit           int
	Offset          int
}

// Detail is an admission joined with bed, unit and patient summaries for
// display listings.
type Detail struct {
	Admission
	BedNumber   string    `json:"bed_number"`
	UnitID      uuid.UUID `json:"unit_id"`
	UnitName    string    `json:"unit_name"`
	PatientName string    `json:"patient_name"`
	PatientCPF  *string   `json:"patient_cpf,omitempty"`
}
