package store

import (
	"context"
	"time"

	"aegis/internal/violation/models"
	id "aegis/pkg/domain"
)

// Store defines the persistence interface for safety violations.
//
// Error Contract:
//   - FindByID and Resolve return sentinel.ErrNotFound when no violation
//     exists
//   - Resolve on an already-resolved violation overwrites the resolution
//     notes but keeps the original resolved-at timestamp
type Store interface {
	Save(ctx context.Context, violation *models.Violation) error
	FindByID(ctx context.Context, violationID id.ViolationID) (*models.Violation, error)
	Resolve(ctx context.Context, violationID id.ViolationID, resolvedAt time.Time, notes string) (*models.Violation, error)
	ListByCampaign(ctx context.Context, campaignID id.CampaignID) ([]*models.Violation, error)
}
