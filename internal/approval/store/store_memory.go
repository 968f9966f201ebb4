package store

import (
	"context"
	"sync"
	"time"

	"aegis/internal/approval/models"
	id "aegis/pkg/domain"
	"aegis/pkg/platform/sentinel"
)

// InMemoryStore stores approval requests in memory.
type InMemoryStore struct {
	mu       sync.RWMutex
	requests map[id.ApprovalID]*models.Request
}

// New constructs an empty in-memory approval store.
func New() *InMemoryStore {
	return &InMemoryStore{requests: make(map[id.ApprovalID]*models.Request)}
}

func (s *InMemoryStore) Save(_ context.Context, request *models.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copyRequest := *request
	s.requests[request.ID] = &copyRequest
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, approvalID id.ApprovalID) (*models.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	request, ok := s.requests[approvalID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copyRequest := *request
	return &copyRequest, nil
}

// Decide moves a pending request into a terminal decision. The pending check
// and the write happen under the same lock.
func (s *InMemoryStore) Decide(_ context.Context, approvalID id.ApprovalID, decision models.Decision, decidedAt time.Time, notes string) (*models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	request, ok := s.requests[approvalID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if request.Decision.IsTerminal() {
		return nil, sentinel.ErrInvalidState
	}
	request.Decision = decision
	request.DecidedAt = &decidedAt
	request.Notes = notes
	copyRequest := *request
	return &copyRequest, nil
}
