package admission

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hospitalis/hospitalis/pkg/pagination"
)

// Service is the admission ledger. It is deliberately a pure store over
// admission records: bed availability is the bed registry's concern and
// cross-record consistency is the allocation coordinator's. Nothing here
// checks whether a bed is free.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create inserts a new active admission for the given patient and bed.
func (s *Service) Create(ctx context.Context, patientID, bedID uuid.UUID, payload ClinicalPayload) (*Admission, error) {
	if patientID == uuid.Nil {
		return nil, fmt.Errorf("patient_id is required")
	}
	if bedID == uuid.Nil {
		return nil, fmt.Errorf("bed_id is required")
	}
	if payload.Reason == "" {
		return nil, fmt.Errorf("reason is required")
	}

	adm := &Admission{
		PatientID:          patientID,
		BedID:              bedID,
		Reason:             payload.Reason,
		Diagnosis:          payload.Diagnosis,
		Priority:           payload.Priority,
		AttendingPhysician: payload.AttendingPhysician,
		Observations:       payload.Observations,
	}
	if err := s.repo.Create(ctx, adm); err != nil {
		return nil, fmt.Errorf("create admission: %w", err)
	}
	return adm, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Admission, error) {
	return s.repo.GetByID(ctx, id)
}

// SetDischarged closes an admission. The repository conditions the update
// on the active status, so discharging twice fails InvalidState.
func (s *Service) SetDischarged(ctx context.Context, id uuid.UUID, reason string, observations *string) (*Admission, error) {
	if reason == "" {
		return nil, fmt.Errorf("discharge reason is required")
	}
	return s.repo.SetDischarged(ctx, id, reason, observations)
}

// SetTransferred points an active admission at a new bed.
func (s *Service) SetTransferred(ctx context.Context, id uuid.UUID, newBedID uuid.UUID, reason string) (*Admission, error) {
	if newBedID == uuid.Nil {
		return nil, fmt.Errorf("new bed_id is required")
	}
	if reason == "" {
		return nil, fmt.Errorf("transfer reason is required")
	}
	return s.repo.SetTransferred(ctx, id, newBedID, reason)
}

// List returns admissions matching the filter, newest first, with bed,
// unit and patient summaries joined for display.
func (s *Service) List(ctx context.Context, filter Filter) ([]*Detail, int, error) {
	if filter.EstablishmentID == uuid.Nil {
		return nil, 0, fmt.Errorf("establishment_id is required")
	}
	if filter.Limit <= 0 {
		filter.Limit = pagination.DefaultLimit
	}
	if filter.Limit > pagination.MaxLimit {
		filter.Limit = pagination.MaxLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}
