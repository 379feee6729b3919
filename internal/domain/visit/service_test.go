package visit

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type mockRepo struct {
	visits map[uuid.UUID]*Visit
}

func newMockRepo() *mockRepo {
	return &mockRepo{visits: make(map[uuid.UUID]*Visit)}
}

func (m *mockRepo) Create(_ context.Context, v *Visit) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	cp := *v
	m.visits[v.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id, nurseID uuid.UUID) (*Visit, error) {
	v, ok := m.visits[id]
	if !ok || v.NurseID != nurseID {
		return nil, pgx.ErrNoRows
	}
	return v, nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID, nurseID uuid.UUID, limit, offset int) ([]*Visit, int, error) {
	var out []*Visit
	for _, v := range m.visits {
		if v.PatientID == patientID && v.NurseID == nurseID {
			out = append(out, v)
		}
	}
	return out, len(out), nil
}

func (m *mockRepo) Delete(_ context.Context, id, nurseID uuid.UUID) error {
	v, ok := m.visits[id]
	if !ok || v.NurseID != nurseID {
		return pgx.ErrNoRows
	}
	delete(m.visits, id)
	return nil
}

type mockDirectory struct {
	owner         map[uuid.UUID]uuid.UUID // patient -> nurse
	lastVitals    map[uuid.UUID]*VitalSigns
	lastVitalsErr error
}

func newMockDirectory() *mockDirectory {
	return &mockDirectory{
		owner:      make(map[uuid.UUID]uuid.UUID),
		lastVitals: make(map[uuid.UUID]*VitalSigns),
	}
}

func (m *mockDirectory) Owned(_ context.Context, patientID, nurseID uuid.UUID) (bool, error) {
	return m.owner[patientID] == nurseID, nil
}

func (m *mockDirectory) SetLastVitals(_ context.Context, patientID, _ uuid.UUID, vitals *VitalSigns) error {
	if m.lastVitalsErr != nil {
		return m.lastVitalsErr
	}
	m.lastVitals[patientID] = vitals
	return nil
}

func TestService_Create_UpdatesLastVitals(t *testing.T) {
	repo := newMockRepo()
	dir := newMockDirectory()
	svc := NewService(repo, dir)

	nurseID := uuid.New()
	patientID := uuid.New()
	dir.owner[patientID] = nurseID

	v := &Visit{
		VisitDate: "2026-08-20",
		VitalSigns: VitalSigns{
			BloodPressureSystolic:  "150",
			BloodPressureDiastolic: "80",
		},
	}
	if err := svc.Create(context.Background(), nurseID, patientID, v); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if v.VisitType != TypeNurseVisit {
		t.Errorf("visit_type = %q, want default %q", v.VisitType, TypeNurseVisit)
	}
	if !v.VitalSigns.BPAbnormal {
		t.Error("expected bp_abnormal recomputed on create")
	}
	last := dir.lastVitals[patientID]
	if last == nil || last.BloodPressureSystolic != "150" {
		t.Errorf("last vitals not denormalized: %+v", last)
	}

	// A second visit overwrites, not merges.
	v2 := &Visit{
		VitalSigns: VitalSigns{BloodPressureSystolic: "118", BloodPressureDiastolic: "76"},
	}
	if err := svc.Create(context.Background(), nurseID, patientID, v2); err != nil {
		t.Fatalf("Create: %v", err)
	}
	last = dir.lastVitals[patientID]
	if last.BloodPressureSystolic != "118" || last.BPAbnormal {
		t.Errorf("last vitals not overwritten: %+v", last)
	}
}

func TestService_Create_SucceedsWhenLastVitalsUpdateFails(t *testing.T) {
	repo := newMockRepo()
	dir := newMockDirectory()
	dir.lastVitalsErr = errors.New("cache backend down")
	svc := NewService(repo, dir)

	nurseID := uuid.New()
	patientID := uuid.New()
	dir.owner[patientID] = nurseID

	v := &Visit{VitalSigns: VitalSigns{BloodPressureSystolic: "120"}}
	if err := svc.Create(context.Background(), nurseID, patientID, v); err != nil {
		t.Fatalf("Create: %v, want success when only the vitals push fails", err)
	}
	if len(repo.visits) != 1 {
		t.Errorf("stored %d visits, want 1", len(repo.visits))
	}
}

func TestService_Create_RejectsUnownedPatient(t *testing.T) {
	repo := newMockRepo()
	dir := newMockDirectory()
	svc := NewService(repo, dir)

	nurseA := uuid.New()
	nurseB := uuid.New()
	patientID := uuid.New()
	dir.owner[patientID] = nurseA

	err := svc.Create(context.Background(), nurseB, patientID, &Visit{})
	if err != ErrPatientNotFound {
		t.Fatalf("err = %v, want ErrPatientNotFound", err)
	}
	if len(repo.visits) != 0 {
		t.Error("visit stored despite ownership failure")
	}
}

func TestService_Create_RejectsInvalidVisitType(t *testing.T) {
	repo := newMockRepo()
	dir := newMockDirectory()
	svc := NewService(repo, dir)

	nurseID := uuid.New()
	patientID := uuid.New()
	dir.owner[patientID] = nurseID

	err := svc.Create(context.Background(), nurseID, patientID, &Visit{VisitType: "house_call"})
	if err == nil {
		t.Fatal("expected invalid visit_type error")
	}
	if len(repo.visits) != 0 {
		t.Error("visit stored despite invalid type")
	}
}

func TestService_ListByPatient_OwnershipScoped(t *testing.T) {
	repo := newMockRepo()
	dir := newMockDirectory()
	svc := NewService(repo, dir)

	nurseA := uuid.New()
	nurseB := uuid.New()
	patientID := uuid.New()
	dir.owner[patientID] = nurseA

	if err := svc.Create(context.Background(), nurseA, patientID, &Visit{}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	items, total, err := svc.ListByPatient(context.Background(), patientID, nurseA, 20, 0)
	if err != nil || total != 1 || len(items) != 1 {
		t.Fatalf("owner list = %d items, total %d, err %v", len(items), total, err)
	}

	if _, _, err := svc.ListByPatient(context.Background(), patientID, nurseB, 20, 0); err != ErrPatientNotFound {
		t.Fatalf("other nurse err = %v, want ErrPatientNotFound", err)
	}
}

func TestService_Get_OtherNurseNotFound(t *testing.T) {
	repo := newMockRepo()
	dir := newMockDirectory()
	svc := NewService(repo, dir)

	nurseA := uuid.New()
	patientID := uuid.New()
	dir.owner[patientID] = nurseA

	v := &Visit{}
	if err := svc.Create(context.Background(), nurseA, patientID, v); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Get(context.Background(), v.ID, uuid.New()); err == nil {
		t.Error("expected not-found for another nurse")
	}
	got, err := svc.Get(context.Background(), v.ID, nurseA)
	if err != nil || got.ID != v.ID {
		t.Errorf("owner get: %v, err %v", got, err)
	}
}
