package store

import (
	"context"
	"time"

	"aegis/internal/approval/models"
	id "aegis/pkg/domain"
)

// Store defines the persistence interface for approval requests.
//
// Error Contract:
//   - FindByID returns sentinel.ErrNotFound when no request exists
//   - Decide returns sentinel.ErrInvalidState when the request already holds
//     a terminal decision; the pending check and the write share a lock so
//     two concurrent decisions cannot both land
type Store interface {
	Save(ctx context.Context, request *models.Request) error
	FindByID(ctx context.Context, approvalID id.ApprovalID) (*models.Request, error)
	Decide(ctx context.Context, approvalID id.ApprovalID, decision models.Decision, decidedAt time.Time, notes string) (*models.Request, error)
}
