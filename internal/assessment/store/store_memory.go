package store

import (
	"context"
	"sync"
	"time"

	"aegis/internal/assessment/models"
	id "aegis/pkg/domain"
	"aegis/pkg/platform/sentinel"
)

// InMemoryStore stores safety assessments in memory.
type InMemoryStore struct {
	mu          sync.RWMutex
	assessments map[id.AssessmentID]*models.Assessment
}

// New constructs an empty in-memory assessment store.
func New() *InMemoryStore {
	return &InMemoryStore{assessments: make(map[id.AssessmentID]*models.Assessment)}
}

func (s *InMemoryStore) Save(_ context.Context, assessment *models.Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assessments[assessment.ID] = copyAssessment(assessment)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, assessmentID id.AssessmentID) (*models.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	assessment, ok := s.assessments[assessmentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return copyAssessment(assessment), nil
}

// RecordApproval writes the approver fields exactly once. A second write
// returns ErrAlreadySet; an assessment cannot be re-approved.
func (s *InMemoryStore) RecordApproval(_ context.Context, assessmentID id.AssessmentID, approver string, approvedAt time.Time) (*models.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	assessment, ok := s.assessments[assessmentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if assessment.IsApproved() {
		return nil, sentinel.ErrAlreadySet
	}
	assessment.Approver = approver
	assessment.ApprovedAt = &approvedAt
	return copyAssessment(assessment), nil
}

func (s *InMemoryStore) ListByCampaign(_ context.Context, campaignID id.CampaignID) ([]*models.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*models.Assessment
	for _, assessment := range s.assessments {
		if assessment.CampaignID != campaignID {
			continue
		}
		matched = append(matched, copyAssessment(assessment))
	}
	return matched, nil
}

// copyAssessment deep-copies slices so callers never alias store memory.
func copyAssessment(a *models.Assessment) *models.Assessment {
	copied := *a
	copied.RiskFactors = append([]string{}, a.RiskFactors...)
	copied.Mitigations = append([]string{}, a.Mitigations...)
	if a.ApprovedAt != nil {
		t := *a.ApprovedAt
		copied.ApprovedAt = &t
	}
	return &copied
}
