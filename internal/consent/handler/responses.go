package handler

import (
	"time"

	"aegis/internal/consent/models"
)

// CreateResponse is returned after opening a consent record.
type CreateResponse struct {
	ConsentID string        `json:"consent_id"`
	Status    models.Status `json:"status"`
}

// UpdateResponse is returned after a grant or revoke attempt. Updated is
// false when the record was absent or the transition was not legal; the
// request itself still succeeds.
type UpdateResponse struct {
	ConsentID string `json:"consent_id"`
	Updated   bool   `json:"updated"`
}

// StatusResponse is returned for a participant consent check.
type StatusResponse struct {
	ParticipantID string        `json:"participant_id"`
	CampaignID    string        `json:"campaign_id"`
	Status        models.Status `json:"status"`
}

// ListResponse is returned when listing a campaign's consent records.
type ListResponse struct {
	Consents []*Consent `json:"consents"`
}

// Consent represents a consent record in HTTP responses. Status is the
// derived lifecycle state at response time.
type Consent struct {
	ConsentID       string        `json:"consent_id"`
	ParticipantID   string        `json:"participant_id"`
	ParticipantName string        `json:"participant_name"`
	ConsentType     string        `json:"consent_type"`
	Status          models.Status `json:"status"`
	GrantedAt       *time.Time    `json:"granted_at,omitempty"`
	RevokedAt       *time.Time    `json:"revoked_at,omitempty"`
	ExpiresAt       *time.Time    `json:"expires_at,omitempty"`
	ConsentMethod   models.Method `json:"consent_method"`
	Witness         string        `json:"witness,omitempty"`
}

func toListResponse(records []*models.Record, now time.Time) *ListResponse {
	consents := make([]*Consent, 0, len(records))
	for _, record := range records {
		consents = append(consents, &Consent{
			ConsentID:       record.ID.String(),
			ParticipantID:   record.ParticipantID.String(),
			ParticipantName: record.ParticipantName,
			ConsentType:     record.ConsentType,
			Status:          record.ComputeStatus(now),
			GrantedAt:       record.GrantedAt,
			RevokedAt:       record.RevokedAt,
			ExpiresAt:       record.ExpiresAt,
			ConsentMethod:   record.Method,
			Witness:         record.Witness,
		})
	}
	return &ListResponse{Consents: consents}
}
