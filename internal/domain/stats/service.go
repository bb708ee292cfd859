// Package stats aggregates occupancy and admission figures for dashboards.
// Everything here is read-only and tolerates reading a snapshot that is a
// moment behind the allocation coordinator.
package stats

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// ICUBedType is the bed_type value ICU occupancy filters on.
const ICUBedType = "icu"

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Occupancy returns the current bed census for the establishment.
func (s *Service) Occupancy(ctx context.Context, establishmentID uuid.UUID) (*Occupancy, error) {
	return s.occupancy(ctx, establishmentID, nil)
}

func (s *Service) occupancy(ctx context.Context, establishmentID uuid.UUID, bedType *string) (*Occupancy, error) {
	if establishmentID == uuid.Nil {
		return nil, fmt.Errorf("establishment_id is required")
	}
	c, err := s.repo.BedCensus(ctx, establishmentID, bedType)
	if err != nil {
		return nil, err
	}
	occ := &Occupancy{
		TotalBeds:     c.Total,
		OccupiedBeds:  c.Occupied,
		AvailableBeds: c.Available,
	}
	if c.Total > 0 {
		occ.OccupancyRate = round2(float64(c.Occupied) / float64(c.Total) * 100)
	}
	return occ, nil
}

// AdmissionCounts counts admissions and discharges in the period's window.
func (s *Service) AdmissionCounts(ctx context.Context, establishmentID uuid.UUID, period Period) (*AdmissionCounts, error) {
	if establishmentID == uuid.Nil {
		return nil, fmt.Errorf("establishment_id is required")
	}
	since := period.Start(s.now())
	admitted, discharged, active, err := s.repo.AdmissionCounts(ctx, establishmentID, since)
	if err != nil {
		return nil, err
	}
	return &AdmissionCounts{
		Period:      period,
		Since:       since,
		Admitted:    admitted,
		Discharged:  discharged,
		ActiveTotal: active,
	}, nil
}

// AvgLengthOfStay returns the mean stay in days over completed admissions,
// rounded to 2 decimals.
func (s *Service) AvgLengthOfStay(ctx context.Context, establishmentID uuid.UUID) (float64, error) {
	if establishmentID == uuid.Nil {
		return 0, fmt.Errorf("establishment_id is required")
	}
	avg, err := s.repo.AvgLengthOfStayDays(ctx, establishmentID)
	if err != nil {
		return 0, err
	}
	return round2(avg), nil
}

// Hospital assembles the combined dashboard payload.
func (s *Service) Hospital(ctx context.Context, establishmentID uuid.UUID, period Period) (*HospitalStats, error) {
	occ, err := s.Occupancy(ctx, establishmentID)
	if err != nil {
		return nil, err
	}
	icuType := ICUBedType
	icu, err := s.occupancy(ctx, establishmentID, &icuType)
	if err != nil {
		return nil, err
	}
	counts, err := s.AdmissionCounts(ctx, establishmentID, period)
	if err != nil {
		return nil, err
	}
	los, err := s.AvgLengthOfStay(ctx, establishmentID)
	if err != nil {
		return nil, err
	}
	return &HospitalStats{
		Occupancy:           occ,
		ICUOccupancy:        icu,
		Admissions:          counts,
		AvgLengthOfStayDays: los,
		GeneratedAt:         s.now().UTC(),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
