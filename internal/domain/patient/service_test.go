package patient

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/visitdocs/visitdocs/internal/domain/visit"
	"github.com/visitdocs/visitdocs/internal/platform/cache"
)

type mockRepo struct {
	patients map[uuid.UUID]*Patient
	listHits int
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.patients[p.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id, nurseID uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok || p.NurseID != nurseID {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

func (m *mockRepo) List(_ context.Context, nurseID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	m.listHits++
	var out []*Patient
	for _, p := range m.patients {
		if p.NurseID == nurseID {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	cur, ok := m.patients[p.ID]
	if !ok || cur.NurseID != p.NurseID {
		return pgx.ErrNoRows
	}
	cur.FullName = p.FullName
	cur.PermanentInfo = p.PermanentInfo
	cur.UpdatedAt = time.Now()
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id, nurseID uuid.UUID) error {
	p, ok := m.patients[id]
	if !ok || p.NurseID != nurseID {
		return pgx.ErrNoRows
	}
	delete(m.patients, id)
	return nil
}

func (m *mockRepo) Owned(_ context.Context, id, nurseID uuid.UUID) (bool, error) {
	p, ok := m.patients[id]
	return ok && p.NurseID == nurseID, nil
}

func (m *mockRepo) SetLastVitals(_ context.Context, id uuid.UUID, vitals *visit.VitalSigns) error {
	p, ok := m.patients[id]
	if !ok {
		return pgx.ErrNoRows
	}
	p.LastVitals = vitals
	return nil
}

// memKV is an in-process cache.KV for tests.
type memKV struct {
	mu sync.Mutex
	m  map[string]string
}

func newMemKV() *memKV { return &memKV{m: make(map[string]string)} }

func (k *memKV) Get(_ context.Context, key string) (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.m[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return v, nil
}

func (k *memKV) Set(_ context.Context, key, value string, _ time.Duration) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.m[key] = value
	return nil
}

func (k *memKV) Delete(_ context.Context, keys ...string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, key := range keys {
		delete(k.m, key)
	}
	return nil
}

func TestService_CRUD(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, newMemKV())
	nurseID := uuid.New()

	p := &Patient{FullName: "  Rosa Martin  ", PermanentInfo: PermanentInfo{Gender: "female"}}
	if err := svc.Create(context.Background(), nurseID, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.FullName != "Rosa Martin" {
		t.Errorf("full name not trimmed: %q", p.FullName)
	}
	if p.NurseID != nurseID {
		t.Error("nurse id not assigned")
	}

	got, err := svc.Get(context.Background(), p.ID, nurseID)
	if err != nil || got.FullName != "Rosa Martin" {
		t.Fatalf("Get: %+v, err %v", got, err)
	}

	got.FullName = "Rosa Martin-Lee"
	if err := svc.Update(context.Background(), nurseID, got); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if err := svc.Delete(context.Background(), p.ID, nurseID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), p.ID, nurseID); err == nil {
		t.Error("expected not-found after delete")
	}
}

func TestService_Create_RequiresName(t *testing.T) {
	svc := NewService(newMockRepo(), newMemKV())
	if err := svc.Create(context.Background(), uuid.New(), &Patient{FullName: "   "}); err == nil {
		t.Error("expected error for blank full_name")
	}
}

func TestService_List_CachesAndInvalidates(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, newMemKV())
	nurseID := uuid.New()

	if err := svc.Create(context.Background(), nurseID, &Patient{FullName: "A"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, total, err := svc.List(context.Background(), nurseID, 20, 0); err != nil || total != 1 {
		t.Fatalf("first list: total %d, err %v", total, err)
	}
	if _, total, err := svc.List(context.Background(), nurseID, 20, 0); err != nil || total != 1 {
		t.Fatalf("second list: total %d, err %v", total, err)
	}
	if repo.listHits != 1 {
		t.Errorf("repo hit %d times, want 1 (second list served from cache)", repo.listHits)
	}

	// A write drops the cached page.
	if err := svc.Create(context.Background(), nurseID, &Patient{FullName: "B"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, total, err := svc.List(context.Background(), nurseID, 20, 0); err != nil || total != 2 {
		t.Fatalf("list after create: total %d, err %v", total, err)
	}
	if repo.listHits != 2 {
		t.Errorf("repo hit %d times, want 2 (cache invalidated by create)", repo.listHits)
	}
}

func TestService_SetLastVitals_InvalidatesRoster(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, newMemKV())
	nurseID := uuid.New()

	p := &Patient{FullName: "Dana Cole"}
	if err := svc.Create(context.Background(), nurseID, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Warm several pages, not just the default one.
	for _, offset := range []int{0, 20} {
		if _, _, err := svc.List(context.Background(), nurseID, 20, offset); err != nil {
			t.Fatalf("warm list offset %d: %v", offset, err)
		}
	}
	hitsBefore := repo.listHits

	vitals := &visit.VitalSigns{BloodPressureSystolic: "150", BPAbnormal: true}
	if err := svc.SetLastVitals(context.Background(), p.ID, nurseID, vitals); err != nil {
		t.Fatalf("SetLastVitals: %v", err)
	}

	for _, offset := range []int{0, 20} {
		patients, _, err := svc.List(context.Background(), nurseID, 20, offset)
		if err != nil {
			t.Fatalf("list offset %d: %v", offset, err)
		}
		if offset == 0 {
			if len(patients) != 1 || patients[0].LastVitals == nil ||
				patients[0].LastVitals.BloodPressureSystolic != "150" {
				t.Errorf("roster served stale last vitals: %+v", patients)
			}
		}
	}
	if repo.listHits != hitsBefore+2 {
		t.Errorf("repo hit %d times after vitals write, want %d (all cached pages dropped)",
			repo.listHits, hitsBefore+2)
	}
}

func TestService_List_NilCacheWorks(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, (*cache.RedisKV)(nil))
	nurseID := uuid.New()

	if err := svc.Create(context.Background(), nurseID, &Patient{FullName: "A"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, total, err := svc.List(context.Background(), nurseID, 20, 0); err != nil || total != 1 {
		t.Fatalf("list: total %d, err %v", total, err)
	}
}

func TestService_PatientDirectory(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, newMemKV())
	nurseID := uuid.New()

	p := &Patient{FullName: "C"}
	if err := svc.Create(context.Background(), nurseID, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Service satisfies the directory contract the visit domain needs.
	var dir visit.PatientDirectory = svc

	owned, err := dir.Owned(context.Background(), p.ID, nurseID)
	if err != nil || !owned {
		t.Errorf("Owned = %v, err %v", owned, err)
	}
	owned, err = dir.Owned(context.Background(), p.ID, uuid.New())
	if err != nil || owned {
		t.Errorf("Owned for other nurse = %v, err %v", owned, err)
	}

	vitals := &visit.VitalSigns{BloodPressureSystolic: "122"}
	if err := dir.SetLastVitals(context.Background(), p.ID, nurseID, vitals); err != nil {
		t.Fatalf("SetLastVitals: %v", err)
	}
	got, err := svc.Get(context.Background(), p.ID, nurseID)
	if err != nil || got.LastVitals == nil || got.LastVitals.BloodPressureSystolic != "122" {
		t.Errorf("last vitals not stored: %+v, err %v", got.LastVitals, err)
	}
}
