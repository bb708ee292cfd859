package bed

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hospitalis/hospitalis/internal/platform/apperr"
)

// Service is the bed registry: it owns bed records and their availability
// state. Reserve/Release are invoked by the allocation coordinator inside
// its unit of work; the maintenance and activation operations are
// facility-ops entry points.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetBed(ctx context.Context, id uuid.UUID) (*Bed, error) {
	return s.repo.GetByID(ctx, id)
}

// FindAvailableBed selects one free bed for auto-assignment.
func (s *Service) FindAvailableBed(ctx context.Context, establishmentID uuid.UUID, unitID *uuid.UUID) (*Bed, error) {
	if establishmentID == uuid.Nil {
		return nil, fmt.Errorf("establishment_id is required")
	}
	return s.repo.FindAvailable(ctx, establishmentID, unitID)
}

func (s *Service) Reserve(ctx context.Context, id uuid.UUID) (*Bed, error) {
	return s.repo.Reserve(ctx, id)
}

func (s *Service) Release(ctx context.Context, id uuid.UUID) (*Bed, error) {
	return s.repo.Release(ctx, id)
}

// SetMaintenance takes a bed out of service. It deliberately does not touch
// any admission referencing the bed; that is a facility-ops decision.
func (s *Service) SetMaintenance(ctx context.Context, id uuid.UUID, reason string) (*Bed, error) {
	if reason == "" {
		return nil, fmt.Errorf("maintenance reason is required")
	}
	return s.repo.SetMaintenance(ctx, id, reason)
}

// Deactivate soft-disables a bed so auto-selection skips it. An occupied
// bed cannot be deactivated while its admission is open.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) (*Bed, error) {
	cur, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur.Status == StatusOccupied {
		return nil, apperr.InvalidState("bed %s is occupied and cannot be deactivated", id)
	}
	return s.repo.SetActive(ctx, id, false)
}

func (s *Service) Reactivate(ctx context.Context, id uuid.UUID) (*Bed, error) {
	return s.repo.SetActive(ctx, id, true)
}

// BedMap builds the bed-map display view for an establishment.
func (s *Service) BedMap(ctx context.Context, establishmentID uuid.UUID) (*MapView, error) {
	beds, err := s.repo.ListByEstablishment(ctx, establishmentID)
	if err != nil {
		return nil, err
	}

	view := &MapView{UnitsGrouped: make(map[string][]Summary)}
	for _, b := range beds {
		view.UnitsGrouped[b.UnitName] = append(view.UnitsGrouped[b.UnitName], Summary{
			ID:       b.ID,
			Number:   b.Number,
			Type:     b.Type,
			Status:   b.Status,
			IsActive: b.IsActive,
		})
		view.TotalBeds++
		if !b.IsActive {
			continue
		}
		switch b.Status {
		case StatusAvailable:
			view.AvailableBeds++
		case StatusOccupied:
			view.OccupiedBeds++
		case StatusMaintenance:
			view.MaintenanceBeds++
		}
	}
	return view, nil
}
