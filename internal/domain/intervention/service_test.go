package intervention

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/visitdocs/visitdocs/internal/domain/visit"
)

type mockRepo struct {
	items map[uuid.UUID]*Intervention
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[uuid.UUID]*Intervention)}
}

func (m *mockRepo) Create(_ context.Context, iv *Intervention) error {
	if iv.ID == uuid.Nil {
		iv.ID = uuid.New()
	}
	cp := *iv
	m.items[iv.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id, nurseID uuid.UUID) (*Intervention, error) {
	iv, ok := m.items[id]
	if !ok || iv.NurseID != nurseID {
		return nil, pgx.ErrNoRows
	}
	return iv, nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID, nurseID uuid.UUID, limit, offset int) ([]*Intervention, int, error) {
	var out []*Intervention
	for _, iv := range m.items {
		if iv.PatientID == patientID && iv.NurseID == nurseID {
			out = append(out, iv)
		}
	}
	return out, len(out), nil
}

func (m *mockRepo) Delete(_ context.Context, id, nurseID uuid.UUID) error {
	iv, ok := m.items[id]
	if !ok || iv.NurseID != nurseID {
		return pgx.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

type mockDirectory struct {
	owner map[uuid.UUID]uuid.UUID
}

func (m *mockDirectory) Owned(_ context.Context, patientID, nurseID uuid.UUID) (bool, error) {
	return m.owner[patientID] == nurseID, nil
}

func (m *mockDirectory) SetLastVitals(_ context.Context, _, _ uuid.UUID, _ *visit.VitalSigns) error {
	return nil
}

func newTestService() (*Service, *mockRepo, uuid.UUID, uuid.UUID) {
	repo := newMockRepo()
	nurseID := uuid.New()
	patientID := uuid.New()
	dir := &mockDirectory{owner: map[uuid.UUID]uuid.UUID{patientID: nurseID}}
	return NewService(repo, dir), repo, nurseID, patientID
}

func TestService_Create_NormalizesBeforePersist(t *testing.T) {
	svc, repo, nurseID, patientID := newTestService()

	iv := validInjection()
	iv.TestDetails = &TestDetails{TestName: "smuggled"}
	if err := svc.Create(context.Background(), nurseID, patientID, iv); err != nil {
		t.Fatalf("Create: %v", err)
	}

	stored := repo.items[iv.ID]
	if stored.TestDetails != nil || stored.TreatmentDetails != nil || stored.ProcedureDetails != nil {
		t.Error("stored record must have exactly one non-null detail sub-record")
	}
	if stored.InjectionDetails == nil {
		t.Error("matching detail missing from stored record")
	}
	if stored.InterventionDate == "" {
		t.Error("intervention_date not defaulted")
	}
}

func TestService_Create_ValidationBlocksPersist(t *testing.T) {
	svc, repo, nurseID, patientID := newTestService()

	iv := validInjection()
	iv.Adhered8Rights = false
	err := svc.Create(context.Background(), nurseID, patientID, iv)
	if err != Err8RightsNotAdhered {
		t.Fatalf("err = %v, want Err8RightsNotAdhered", err)
	}
	if len(repo.items) != 0 {
		t.Error("invalid draft reached the repository")
	}
}

func TestService_Create_UnknownType(t *testing.T) {
	svc, _, nurseID, patientID := newTestService()

	iv := validInjection()
	iv.InterventionType = "massage"
	if err := svc.Create(context.Background(), nurseID, patientID, iv); err == nil {
		t.Error("expected invalid intervention_type error")
	}
}

func TestService_Create_UnownedPatient(t *testing.T) {
	svc, _, _, patientID := newTestService()

	if err := svc.Create(context.Background(), uuid.New(), patientID, validInjection()); err != ErrPatientNotFound {
		t.Fatalf("err = %v, want ErrPatientNotFound", err)
	}
}
