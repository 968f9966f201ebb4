package store

import (
	"context"
	"sync"
	"time"

	"aegis/internal/violation/models"
	id "aegis/pkg/domain"
	"aegis/pkg/platform/sentinel"
)

// InMemoryStore stores safety violations in memory.
type InMemoryStore struct {
	mu         sync.RWMutex
	violations map[id.ViolationID]*models.Violation
}

// New constructs an empty in-memory violation store.
func New() *InMemoryStore {
	return &InMemoryStore{violations: make(map[id.ViolationID]*models.Violation)}
}

func (s *InMemoryStore) Save(_ context.Context, violation *models.Violation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copyViolation := *violation
	s.violations[violation.ID] = &copyViolation
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, violationID id.ViolationID) (*models.Violation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	violation, ok := s.violations[violationID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copyViolation := *violation
	return &copyViolation, nil
}

// Resolve closes an open violation. Re-resolving overwrites the notes but
// keeps the original resolved-at timestamp.
func (s *InMemoryStore) Resolve(_ context.Context, violationID id.ViolationID, resolvedAt time.Time, notes string) (*models.Violation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	violation, ok := s.violations[violationID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if violation.ResolvedAt == nil {
		violation.ResolvedAt = &resolvedAt
	}
	violation.ResolutionNotes = notes
	copyViolation := *violation
	return &copyViolation, nil
}

func (s *InMemoryStore) ListByCampaign(_ context.Context, campaignID id.CampaignID) ([]*models.Violation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*models.Violation
	for _, violation := range s.violations {
		if violation.CampaignID != campaignID {
			continue
		}
		copyViolation := *violation
		matched = append(matched, &copyViolation)
	}
	return matched, nil
}
