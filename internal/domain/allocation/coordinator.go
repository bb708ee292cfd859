// Package allocation coordinates the bed registry and the admission ledger.
// It owns the admission lifecycle (admit, transfer, discharge) and is the
// only place where bed state and admission state change together: every
// operation runs inside a single database transaction, so a failure in any
// step rolls the whole operation back and no half-applied state is visible.
package allocation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hospitalis/hospitalis/internal/domain/admission"
	"github.com/hospitalis/hospitalis/internal/domain/bed"
	"github.com/hospitalis/hospitalis/internal/domain/facility"
	"github.com/hospitalis/hospitalis/internal/domain/patient"
	"github.com/hospitalis/hospitalis/internal/platform/apperr"
	"github.com/hospitalis/hospitalis/internal/platform/db"
)

type Coordinator struct {
	tx         db.TxRunner
	beds       *bed.Service
	admissions *admission.Service
	patients   patient.Repository
	units      facility.Repository
	log        zerolog.Logger
}

func NewCoordinator(
	tx db.TxRunner,
	beds *bed.Service,
	admissions *admission.Service,
	patients patient.Repository,
	units facility.Repository,
	log zerolog.Logger,
) *Coordinator {
	return &Coordinator{
		tx:         tx,
		beds:       beds,
		admissions: admissions,
		patients:   patients,
		units:      units,
		log:        log,
	}
}

// Admit reserves a bed and opens an admission for the patient, atomically.
// With a preferred bed the reservation either succeeds or the whole admit
// fails with that bed's error. Without one, a bed is auto-selected; if the
// candidate is taken between selection and reservation the selection is
// retried exactly once before the conflict is surfaced.
func (c *Coordinator) Admit(ctx context.Context, req AdmitRequest) (*AdmissionView, error) {
	if req.PatientID == uuid.Nil {
		return nil, fmt.Errorf("patient_id is required")
	}
	if req.BedID == nil && req.EstablishmentID == uuid.Nil {
		return nil, fmt.Errorf("establishment_id is required for bed auto-selection")
	}

	var view *AdmissionView
	err := c.tx.RunInTx(ctx, func(ctx context.Context) error {
		b, err := c.reserveBed(ctx, req)
		if err != nil {
			return err
		}
		adm, err := c.admissions.Create(ctx, req.PatientID, b.ID, req.Clinical)
		if err != nil {
			return err
		}
		view, err = c.buildView(ctx, adm, b)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.log.Info().
		Str("admission_id", view.Admission.ID.String()).
		Str("patient_id", view.Patient.ID.String()).
		Str("bed_id", view.Bed.ID.String()).
		Str("bed_number", view.Bed.Number).
		Msg("patient admitted")
	return view, nil
}

func (c *Coordinator) reserveBed(ctx context.Context, req AdmitRequest) (*bed.Bed, error) {
	if req.BedID != nil {
		return c.beds.Reserve(ctx, *req.BedID)
	}
	for attempt := 0; ; attempt++ {
		cand, err := c.beds.FindAvailableBed(ctx, req.EstablishmentID, req.UnitID)
		if err != nil {
			return nil, err
		}
		b, err := c.beds.Reserve(ctx, cand.ID)
		if err == nil {
			return b, nil
		}
		// Another admit took the candidate first. Re-select once.
		if !apperr.IsKind(err, apperr.KindConflict) || attempt >= 1 {
			return nil, err
		}
	}
}

// Discharge closes the admission and frees its bed in one transaction. If
// facility ops moved the bed to maintenance during the stay, the admission
// still closes and the bed stays out of service.
func (c *Coordinator) Discharge(ctx context.Context, admissionID uuid.UUID, reason string, observations *string) (*AdmissionView, error) {
	var view *AdmissionView
	err := c.tx.RunInTx(ctx, func(ctx context.Context) error {
		adm, err := c.admissions.SetDischarged(ctx, admissionID, reason, observations)
		if err != nil {
			return err
		}
		b, err := c.releaseBed(ctx, adm.BedID)
		if err != nil {
			return err
		}
		view, err = c.buildView(ctx, adm, b)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.log.Info().
		Str("admission_id", view.Admission.ID.String()).
		Str("bed_id", view.Bed.ID.String()).
		Str("reason", reason).
		Msg("patient discharged")
	return view, nil
}

func (c *Coordinator) releaseBed(ctx context.Context, bedID uuid.UUID) (*bed.Bed, error) {
	b, err := c.beds.Release(ctx, bedID)
	if !apperr.IsKind(err, apperr.KindInvalidState) {
		return b, err
	}
	cur, getErr := c.beds.GetBed(ctx, bedID)
	if getErr != nil {
		return nil, getErr
	}
	if cur.Status == bed.StatusMaintenance {
		return cur, nil
	}
	return nil, err
}

// Transfer moves an active admission to a new bed: reserve the new bed,
// repoint the admission, release the old bed, all or nothing.
func (c *Coordinator) Transfer(ctx context.Context, admissionID uuid.UUID, newBedID uuid.UUID, reason string) (*AdmissionView, error) {
	if newBedID == uuid.Nil {
		return nil, fmt.Errorf("new bed_id is required")
	}

	var view *AdmissionView
	err := c.tx.RunInTx(ctx, func(ctx context.Context) error {
		cur, err := c.admissions.Get(ctx, admissionID)
		if err != nil {
			return err
		}
		if cur.Status != admission.StatusActive {
			return apperr.InvalidState("admission %s is not active (status %s)", admissionID, cur.Status)
		}
		if cur.BedID == newBedID {
			return apperr.InvalidState("admission %s already occupies bed %s", admissionID, newBedID)
		}

		newBed, err := c.beds.Reserve(ctx, newBedID)
		if err != nil {
			return err
		}
		adm, err := c.admissions.SetTransferred(ctx, admissionID, newBedID, reason)
		if err != nil {
			return err
		}
		if _, err := c.releaseBed(ctx, cur.BedID); err != nil {
			return err
		}
		view, err = c.buildView(ctx, adm, newBed)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.log.Info().
		Str("admission_id", view.Admission.ID.String()).
		Str("bed_id", view.Bed.ID.String()).
		Str("reason", reason).
		Msg("patient transferred")
	return view, nil
}

// Get returns the joined view of one admission.
func (c *Coordinator) Get(ctx context.Context, admissionID uuid.UUID) (*AdmissionView, error) {
	adm, err := c.admissions.Get(ctx, admissionID)
	if err != nil {
		return nil, err
	}
	return c.buildView(ctx, adm, nil)
}
