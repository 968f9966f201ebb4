package store

import (
	"context"
	"sync"
	"time"

	"aegis/internal/consent/models"
	id "aegis/pkg/domain"
	"aegis/pkg/platform/middleware/requesttime"
	"aegis/pkg/platform/sentinel"
)

// InMemoryStore stores consent records in memory. The engine owns the records
// exclusively; callers only ever see copies.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[id.ConsentID]*models.Record
}

// New constructs an empty in-memory consent store.
func New() *InMemoryStore {
	return &InMemoryStore{records: make(map[id.ConsentID]*models.Record)}
}

func (s *InMemoryStore) Save(_ context.Context, record *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copyRecord := *record
	s.records[record.ID] = &copyRecord
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, consentID id.ConsentID) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[consentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copyRecord := *record
	return &copyRecord, nil
}

// Grant moves a pending record into Granted. The status check and the write
// share the lock, which is what makes grant idempotence safe under
// concurrent callers.
func (s *InMemoryStore) Grant(_ context.Context, consentID id.ConsentID, grantedAt time.Time, witness, fingerprint string) (*models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[consentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if !record.CanGrant() {
		return nil, sentinel.ErrInvalidState
	}
	record.Status = models.StatusGranted
	record.GrantedAt = &grantedAt
	if witness != "" {
		record.Witness = witness
	}
	if fingerprint != "" {
		record.Fingerprint = fingerprint
	}
	copyRecord := *record
	return &copyRecord, nil
}

// Revoke moves a pending or granted record into Revoked and stores the reason
// in the record notes.
func (s *InMemoryStore) Revoke(_ context.Context, consentID id.ConsentID, revokedAt time.Time, reason string) (*models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[consentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if !record.CanRevoke() {
		return nil, sentinel.ErrInvalidState
	}
	record.Status = models.StatusRevoked
	record.RevokedAt = &revokedAt
	record.Notes = reason
	copyRecord := *record
	return &copyRecord, nil
}

func (s *InMemoryStore) ListByCampaign(ctx context.Context, campaignID id.CampaignID, filter *models.RecordFilter) ([]*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := requesttime.Now(ctx)
	var filtered []*models.Record
	for _, record := range s.records {
		if record.CampaignID != campaignID {
			continue
		}
		if filter != nil {
			if filter.ConsentType != nil && record.ConsentType != *filter.ConsentType {
				continue
			}
			if filter.Status != nil && record.ComputeStatus(now) != *filter.Status {
				continue
			}
		}
		copyRecord := *record
		filtered = append(filtered, &copyRecord)
	}
	return filtered, nil
}

func (s *InMemoryStore) ListByParticipant(_ context.Context, participantID id.ParticipantID, campaignID id.CampaignID) ([]*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*models.Record
	for _, record := range s.records {
		if record.ParticipantID != participantID || record.CampaignID != campaignID {
			continue
		}
		copyRecord := *record
		matched = append(matched, &copyRecord)
	}
	return matched, nil
}
