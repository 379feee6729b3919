package patient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/visitdocs/visitdocs/internal/domain/visit"
	"github.com/visitdocs/visitdocs/internal/platform/cache"
)

const rosterCacheTTL = 5 * time.Minute

// Service owns the roster. It also implements visit.PatientDirectory so
// the visit service can check ownership and push last-vitals updates
// without importing this package.
type Service struct {
	repo Repository
	kv   cache.KV
}

func NewService(repo Repository, kv cache.KV) *Service {
	return &Service{repo: repo, kv: kv}
}

func rosterVersionKey(nurseID uuid.UUID) string {
	return fmt.Sprintf("patients:ver:%s", nurseID)
}

func rosterKey(nurseID uuid.UUID, version string, limit, offset int) string {
	return fmt.Sprintf("patients:%s:%s:%d:%d", nurseID, version, limit, offset)
}

// rosterVersion returns the namespace token baked into every cached roster
// page key for the nurse, minting one if none exists yet.
func (s *Service) rosterVersion(ctx context.Context, nurseID uuid.UUID) string {
	ver, err := s.kv.Get(ctx, rosterVersionKey(nurseID))
	if err == nil && ver != "" {
		return ver
	}
	ver = uuid.NewString()
	if err := s.kv.Set(ctx, rosterVersionKey(nurseID), ver, 0); err != nil {
		log.Warn().Err(err).Msg("roster version write failed")
	}
	return ver
}

// invalidateRoster rotates the nurse's version token, orphaning every cached
// roster page at once. Orphaned pages age out via their own TTL.
func (s *Service) invalidateRoster(ctx context.Context, nurseID uuid.UUID) {
	if err := s.kv.Set(ctx, rosterVersionKey(nurseID), uuid.NewString(), 0); err != nil {
		log.Warn().Err(err).Msg("roster cache invalidation failed")
	}
}

func (s *Service) Create(ctx context.Context, nurseID uuid.UUID, p *Patient) error {
	p.FullName = strings.TrimSpace(p.FullName)
	if p.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	p.NurseID = nurseID
	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}
	s.invalidateRoster(ctx, nurseID)
	return nil
}

func (s *Service) Get(ctx context.Context, id, nurseID uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id, nurseID)
}

type rosterPage struct {
	Patients []*Patient `json:"patients"`
	Total    int        `json:"total"`
}

func (s *Service) List(ctx context.Context, nurseID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	key := rosterKey(nurseID, s.rosterVersion(ctx, nurseID), limit, offset)
	if raw, err := s.kv.Get(ctx, key); err == nil {
		var page rosterPage
		if err := json.Unmarshal([]byte(raw), &page); err == nil {
			return page.Patients, page.Total, nil
		}
		// A corrupt entry is dropped and the query falls through.
		_ = s.kv.Delete(ctx, key)
	}

	patients, total, err := s.repo.List(ctx, nurseID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	if raw, err := json.Marshal(rosterPage{Patients: patients, Total: total}); err == nil {
		if err := s.kv.Set(ctx, key, string(raw), rosterCacheTTL); err != nil {
			log.Warn().Err(err).Msg("roster cache write failed")
		}
	}
	return patients, total, nil
}

func (s *Service) Update(ctx context.Context, nurseID uuid.UUID, p *Patient) error {
	p.FullName = strings.TrimSpace(p.FullName)
	if p.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	p.NurseID = nurseID
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}
	s.invalidateRoster(ctx, nurseID)
	return nil
}

// Delete removes the patient. Visits and related records go with it via
// the ON DELETE CASCADE foreign keys.
func (s *Service) Delete(ctx context.Context, id, nurseID uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, nurseID); err != nil {
		return err
	}
	s.invalidateRoster(ctx, nurseID)
	return nil
}

// Owned implements visit.PatientDirectory.
func (s *Service) Owned(ctx context.Context, patientID, nurseID uuid.UUID) (bool, error) {
	return s.repo.Owned(ctx, patientID, nurseID)
}

// SetLastVitals implements visit.PatientDirectory. Cached roster pages
// embed the vitals; a visit write invalidates them like any other write.
func (s *Service) SetLastVitals(ctx context.Context, patientID, nurseID uuid.UUID, vitals *visit.VitalSigns) error {
	if err := s.repo.SetLastVitals(ctx, patientID, vitals); err != nil {
		return err
	}
	s.invalidateRoster(ctx, nurseID)
	return nil
}
