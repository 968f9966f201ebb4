package store

import (
	"context"
	"time"

	"aegis/internal/assessment/models"
	id "aegis/pkg/domain"
)

// Store defines the persistence interface for safety assessments.
//
// Error Contract:
//   - FindByID returns sentinel.ErrNotFound when no assessment exists
//   - RecordApproval returns sentinel.ErrAlreadySet when the approver fields
//     were already written; the write-once check and the write share a lock
//   - Other methods return nil on success or wrapped errors on failure
type Store interface {
	Save(ctx context.Context, assessment *models.Assessment) error
	FindByID(ctx context.Context, assessmentID id.AssessmentID) (*models.Assessment, error)
	RecordApproval(ctx context.Context, assessmentID id.AssessmentID, approver string, approvedAt time.Time) (*models.Assessment, error)
	ListByCampaign(ctx context.Context, campaignID id.CampaignID) ([]*models.Assessment, error)
}
