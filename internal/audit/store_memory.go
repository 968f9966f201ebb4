package audit

import (
	"context"
	"sync"

	id "aegis/pkg/domain"
)

type InMemoryStore struct {
	mu     sync.RWMutex
	events map[id.CampaignID][]Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[id.CampaignID][]Event)}
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[id.CampaignID][]Event)
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.CampaignID] = append(s.events[event.CampaignID], event)
	return nil
}

func (s *InMemoryStore) ListByCampaign(_ context.Context, campaignID id.CampaignID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events[campaignID]...), nil
}
