package store

import (
	"context"
	"time"

	"aegis/internal/consent/models"
	id "aegis/pkg/domain"
)

// Store defines the persistence interface for consent records.
//
// Error Contract:
//   - Lookup methods return sentinel.ErrNotFound when no record exists
//   - Grant/Revoke return sentinel.ErrInvalidState when the transition is
//     illegal for the record's current status; the transition check and the
//     write happen under the same lock so concurrent callers cannot both win
//   - Other methods return nil on success or wrapped errors on failure
type Store interface {
	Save(ctx context.Context, record *models.Record) error
	FindByID(ctx context.Context, consentID id.ConsentID) (*models.Record, error)
	Grant(ctx context.Context, consentID id.ConsentID, grantedAt time.Time, witness, fingerprint string) (*models.Record, error)
	Revoke(ctx context.Context, consentID id.ConsentID, revokedAt time.Time, reason string) (*models.Record, error)
	ListByCampaign(ctx context.Context, campaignID id.CampaignID, filter *models.RecordFilter) ([]*models.Record, error)
	ListByParticipant(ctx context.Context, participantID id.ParticipantID, campaignID id.CampaignID) ([]*models.Record, error)
}
