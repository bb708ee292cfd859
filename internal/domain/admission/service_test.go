package admission

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hospitalis/hospitalis/internal/platform/apperr"
)

// -- Mock Repository --

type bedInfo struct {
	establishmentID uuid.UUID
	unitID          uuid.UUID
	unitName        string
	number          string
}

type mockRepo struct {
	admissions map[uuid.UUID]*Admission
	beds       map[uuid.UUID]bedInfo
	patients   map[uuid.UUID]string
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		admissions: make(map[uuid.UUID]*Admission),
		beds:       make(map[uuid.UUID]bedInfo),
		patients:   make(map[uuid.UUID]string),
	}
}

func (m *mockRepo) Create(_ context.Context, adm *Admission) error {
	adm.ID = uuid.New()
	adm.Status = StatusActive
	adm.AdmissionDate = time.Now().UTC()
	adm.CreatedAt = adm.AdmissionDate
	adm.UpdatedAt = adm.AdmissionDate
	cp := *adm
	m.admissions[adm.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Admission, error) {
	adm, ok := m.admissions[id]
	if !ok {
		return nil, apperr.NotFound("admission %s does not exist", id)
	}
	cp := *adm
	return &cp, nil
}

func (m *mockRepo) SetDischarged(_ context.Context, id uuid.UUID, reason string, observations *string) (*Admission, error) {
	adm, ok := m.admissions[id]
	if !ok {
		return nil, apperr.NotFound("admission %s does not exist", id)
	}
	if adm.Status != StatusActive {
		return nil, apperr.InvalidState("admission %s is not active (status %s)", id, adm.Status)
	}
	now := time.Now().UTC()
	if now.Before(adm.AdmissionDate) {
		now = adm.AdmissionDate
	}
	adm.Status = StatusDischarged
	adm.DischargeDate = &now
	adm.DischargeReason = &reason
	if observations != nil {
		adm.Observations = observations
	}
	adm.UpdatedAt = now
	cp := *adm
	return &cp, nil
}

func (m *mockRepo) SetTransferred(_ context.Context, id uuid.UUID, newBedID uuid.UUID, reason string) (*Admission, error) {
	adm, ok := m.admissions[id]
	if !ok {
		return nil, apperr.NotFound("admission %s does not exist", id)
	}
	if adm.Status != StatusActive {
		return nil, apperr.InvalidState("admission %s is not active (status %s)", id, adm.Status)
	}
	adm.BedID = newBedID
	adm.TransferReason = &reason
	adm.UpdatedAt = time.Now().UTC()
	cp := *adm
	return &cp, nil
}

func (m *mockRepo) List(_ context.Context, filter Filter) ([]*Detail, int, error) {
	var matches []*Detail
	for _, adm := range m.admissions {
		info, ok := m.beds[adm.BedID]
		if !ok || info.establishmentID != filter.EstablishmentID {
			continue
		}
		if filter.Status != nil && adm.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && (adm.Priority == nil || *adm.Priority != *filter.Priority) {
			continue
		}
		if filter.UnitID != nil && info.unitID != *filter.UnitID {
			continue
		}
		matches = append(matches, &Detail{
			Admission:   *adm,
			BedNumber:   info.number,
			UnitID:      info.unitID,
			UnitName:    info.unitName,
			PatientName: m.patients[adm.PatientID],
		})
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].AdmissionDate.After(matches[j].AdmissionDate)
	})
	total := len(matches)
	if filter.Offset > total {
		return nil, total, nil
	}
	matches = matches[filter.Offset:]
	if filter.Limit < len(matches) {
		matches = matches[:filter.Limit]
	}
	return matches, total, nil
}

// -- Tests --

func payload(reason string) ClinicalPayload {
	return ClinicalPayload{Reason: reason}
}

func TestCreate(t *testing.T) {
	svc := NewService(newMockRepo())

	adm, err := svc.Create(context.Background(), uuid.New(), uuid.New(), payload("pneumonia"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if adm.ID == uuid.Nil {
		t.Error("expected ID to be set")
	}
	if adm.Status != StatusActive {
		t.Errorf("expected active, got %s", adm.Status)
	}
	if adm.AdmissionDate.IsZero() {
		t.Error("expected admission_date to be set")
	}
	if adm.DischargeDate != nil {
		t.Error("expected no discharge_date on a new admission")
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, uuid.Nil, uuid.New(), payload("x")); err == nil {
		t.Error("expected error for missing patient_id")
	}
	if _, err := svc.Create(ctx, uuid.New(), uuid.Nil, payload("x")); err == nil {
		t.Error("expected error for missing bed_id")
	}
	if _, err := svc.Create(ctx, uuid.New(), uuid.New(), payload("")); err == nil {
		t.Error("expected error for missing reason")
	}
}

func TestSetDischarged(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	adm, _ := svc.Create(context.Background(), uuid.New(), uuid.New(), payload("observation"))

	discharged, err := svc.SetDischarged(context.Background(), adm.ID, "recovered", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if discharged.Status != StatusDischarged {
		t.Errorf("expected discharged, got %s", discharged.Status)
	}
	if discharged.DischargeDate == nil {
		t.Fatal("expected discharge_date to be set")
	}
	if discharged.DischargeDate.Before(discharged.AdmissionDate) {
		t.Error("discharge_date must not precede admission_date")
	}
	if discharged.DischargeReason == nil || *discharged.DischargeReason != "recovered" {
		t.Error("expected discharge reason to be recorded")
	}
}

func TestSetDischarged_Terminal(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	adm, _ := svc.Create(context.Background(), uuid.New(), uuid.New(), payload("observation"))
	first, err := svc.SetDischarged(context.Background(), adm.ID, "recovered", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Second discharge must fail InvalidState and mutate nothing.
	_, err = svc.SetDischarged(context.Background(), adm.ID, "again", nil)
	if !apperr.IsKind(err, apperr.KindInvalidState) {
		t.Errorf("expected InvalidState, got %v", err)
	}

	stored, _ := svc.Get(context.Background(), adm.ID)
	if *stored.DischargeReason != "recovered" {
		t.Errorf("expected discharge reason unchanged, got %s", *stored.DischargeReason)
	}
	if !stored.DischargeDate.Equal(*first.DischargeDate) {
		t.Error("expected discharge date unchanged")
	}
}

func TestSetDischarged_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.SetDischarged(context.Background(), uuid.New(), "recovered", nil)
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestSetTransferred(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	adm, _ := svc.Create(context.Background(), uuid.New(), uuid.New(), payload("observation"))
	newBed := uuid.New()

	transferred, err := svc.SetTransferred(context.Background(), adm.ID, newBed, "ICU upgrade")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if transferred.BedID != newBed {
		t.Error("expected bed_id updated")
	}
	if transferred.Status != StatusActive {
		t.Errorf("expected status unchanged, got %s", transferred.Status)
	}
	if transferred.TransferReason == nil || *transferred.TransferReason != "ICU upgrade" {
		t.Error("expected transfer reason recorded")
	}
}

func TestSetTransferred_OverwritesReason(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	adm, _ := svc.Create(context.Background(), uuid.New(), uuid.New(), payload("observation"))
	svc.SetTransferred(context.Background(), adm.ID, uuid.New(), "first move")
	transferred, err := svc.SetTransferred(context.Background(), adm.ID, uuid.New(), "second move")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *transferred.TransferReason != "second move" {
		t.Errorf("expected reason overwritten, got %s", *transferred.TransferReason)
	}
}

func TestSetTransferred_DischargedRejected(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	adm, _ := svc.Create(context.Background(), uuid.New(), uuid.New(), payload("observation"))
	svc.SetDischarged(context.Background(), adm.ID, "recovered", nil)

	_, err := svc.SetTransferred(context.Background(), adm.ID, uuid.New(), "too late")
	if !apperr.IsKind(err, apperr.KindInvalidState) {
		t.Errorf("expected InvalidState, got %v", err)
	}
}

func TestList_FiltersAndOrder(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	est := uuid.New()
	unitA, unitB := uuid.New(), uuid.New()

	bedA, bedB := uuid.New(), uuid.New()
	repo.beds[bedA] = bedInfo{establishmentID: est, unitID: unitA, unitName: "Ward A", number: "101"}
	repo.beds[bedB] = bedInfo{establishmentID: est, unitID: unitB, unitName: "Ward B", number: "201"}

	p1, p2 := uuid.New(), uuid.New()
	repo.patients[p1] = "Maria Silva"
	repo.patients[p2] = "Joao Santos"

	high := "high"
	a1, _ := svc.Create(context.Background(), p1, bedA, ClinicalPayload{Reason: "pneumonia", Priority: &high})
	a2, _ := svc.Create(context.Background(), p2, bedB, payload("fracture"))
	// Make ordering deterministic
	repo.admissions[a1.ID].AdmissionDate = time.Now().UTC().Add(-time.Hour)
	repo.admissions[a2.ID].AdmissionDate = time.Now().UTC()

	details, total, err := svc.List(context.Background(), Filter{EstablishmentID: est})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 admissions, got %d", total)
	}
	if details[0].ID != a2.ID {
		t.Error("expected newest admission first")
	}
	if details[0].PatientName != "Joao Santos" {
		t.Errorf("expected patient summary joined, got %s", details[0].PatientName)
	}

	active := StatusActive
	details, total, err = svc.List(context.Background(), Filter{
		EstablishmentID: est, Status: &active, Priority: &high,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || details[0].ID != a1.ID {
		t.Errorf("expected only the high-priority admission, got %d", total)
	}

	details, total, err = svc.List(context.Background(), Filter{EstablishmentID: est, UnitID: &unitB})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || details[0].UnitName != "Ward B" {
		t.Errorf("expected only Ward B admissions, got %d", total)
	}
}

func TestList_RequiresEstablishment(t *testing.T) {
	svc := NewService(newMockRepo())

	if _, _, err := svc.List(context.Background(), Filter{}); err == nil {
		t.Error("expected error for missing establishment_id")
	}
}
