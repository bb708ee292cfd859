package allocation

import (
	"context"

	"github.com/google/uuid"

	"github.com/hospitalis/hospitalis/internal/domain/admission"
	"github.com/hospitalis/hospitalis/internal/domain/bed"
	"github.com/hospitalis/hospitalis/internal/domain/facility"
	"github.com/hospitalis/hospitalis/internal/domain/patient"
)

// AdmissionView is the full picture of one admission: the record itself
// plus the bed it occupies, the bed's unit, and the patient summary. It is
// assembled inside the operation's transaction so all four pieces come from
// one snapshot.
type AdmissionView struct {
	Admission *admission.Admission `json:"admission"`
	Bed       *bed.Bed             `json:"bed"`
	Unit      *facility.Unit       `json:"unit"`
	Patient   *patient.Summary     `json:"patient"`
}

// buildView joins the collaborator records around adm. When the caller
// already holds the bed row (it just reserved or released it), passing it
// avoids a re-read.
func (c *Coordinator) buildView(ctx context.Context, adm *admission.Admission, b *bed.Bed) (*AdmissionView, error) {
	var err error
	if b == nil || b.ID != adm.BedID {
		b, err = c.beds.GetBed(ctx, adm.BedID)
		if err != nil {
			return nil, err
		}
	}
	unit, err := c.units.GetUnit(ctx, b.UnitID)
	if err != nil {
		return nil, err
	}
	pat, err := c.patients.GetByID(ctx, adm.PatientID)
	if err != nil {
		return nil, err
	}
	return &AdmissionView{Admission: adm, Bed: b, Unit: unit, Patient: pat}, nil
}

// AdmitRequest is the input to Admit. Exactly one bed source applies: a
// preferred BedID when set, otherwise auto-selection scoped by UnitID.
type AdmitRequest struct {
	EstablishmentID uuid.UUID
	PatientID       uuid.UUID
	BedID           *uuid.UUID
	UnitID          *uuid.UUID
	Clinical        admission.ClinicalPayload
}
