package models

import (
	"time"

	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
)

// Record captures a participant's consent decision for one campaign activity.
//
// # Lifecycle Invariants
//
// A record is created in StatusPending and is never deleted (audit trail).
// The only legal transitions are:
//   - Pending -> Granted (grant)
//   - Pending -> Revoked (revoke before deciding)
//   - Granted -> Revoked (withdrawal)
//
// Expiry is a derived predicate evaluated at read time, never a stored
// transition: a granted record whose ExpiresAt has passed simply stops being
// effective.
type Record struct {
	ID              id.ConsentID
	ParticipantID   id.ParticipantID
	ParticipantName string
	CampaignID      id.CampaignID
	ConsentType     string
	Status          Status
	GrantedAt       *time.Time
	RevokedAt       *time.Time
	ExpiresAt       *time.Time
	Method          Method
	Witness         string
	// Fingerprint is a hashed summary of the client that granted consent,
	// captured for dispute handling. Never a raw user agent.
	Fingerprint string
	Notes       string
}

// NewRecord creates a pending Record with domain invariant checks.
func NewRecord(consentID id.ConsentID, participantID id.ParticipantID, participantName string,
	campaignID id.CampaignID, consentType string, method Method, witness string,
	requestedAt time.Time, expiresAt *time.Time) (*Record, error) {
	if consentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "consent ID required")
	}
	if participantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "participant ID cannot be empty")
	}
	if campaignID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "campaign ID cannot be empty")
	}
	if consentType == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "consent type cannot be empty")
	}
	if expiresAt != nil && !expiresAt.After(requestedAt) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "expiry must be after request time")
	}
	return &Record{
		ID:              consentID,
		ParticipantID:   participantID,
		ParticipantName: participantName,
		CampaignID:      campaignID,
		ConsentType:     consentType,
		Status:          StatusPending,
		ExpiresAt:       expiresAt,
		Method:          method.OrDefault(),
		Witness:         witness,
	}, nil
}

// IsEffective reports whether this record authorizes activity at the provided
// time: granted and not past expiry.
func (c Record) IsEffective(now time.Time) bool {
	if c.Status != StatusGranted {
		return false
	}
	if c.ExpiresAt != nil && !c.ExpiresAt.After(now) {
		return false
	}
	return true
}

// CanGrant returns true if the record may transition into Granted.
func (c Record) CanGrant() bool {
	return c.Status == StatusPending
}

// CanRevoke returns true if the record may transition into Revoked.
func (c Record) CanRevoke() bool {
	return c.Status == StatusPending || c.Status == StatusGranted
}

// ComputeStatus reports the consent lifecycle state at the provided time.
// A granted record past its expiry reads as expired without mutating the
// stored status.
func (c Record) ComputeStatus(now time.Time) Status {
	if c.Status == StatusGranted && c.ExpiresAt != nil && !c.ExpiresAt.After(now) {
		return StatusExpired
	}
	return c.Status
}

// RecordFilter allows filtering consent records by type and status.
type RecordFilter struct {
	ConsentType *string
	Status      *Status
}

// Summary aggregates a campaign's consent records by derived status.
// Field names mirror the export contract consumed by compliance tooling.
type Summary struct {
	TotalParticipants int `json:"total_participants"`
	Granted           int `json:"consent_granted"`
	Pending           int `json:"consent_pending"`
	Denied            int `json:"consent_denied"`
	Revoked           int `json:"consent_revoked"`
	Expired           int `json:"expired_consents"`
}
