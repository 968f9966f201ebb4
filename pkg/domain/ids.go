// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "aegis/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing a ConsentID where an
// AssessmentID is expected.
type (
	ConsentID    uuid.UUID
	AssessmentID uuid.UUID
	ApprovalID   uuid.UUID
	ViolationID  uuid.UUID
)

// ParticipantID and CampaignID arrive from external orchestrators and are
// treated as opaque, non-empty strings. The engine never interprets them.
type (
	ParticipantID string
	CampaignID    string
)

// New functions - used when the engine mints an identifier.

func NewConsentID() ConsentID       { return ConsentID(uuid.New()) }
func NewAssessmentID() AssessmentID { return AssessmentID(uuid.New()) }
func NewApprovalID() ApprovalID     { return ApprovalID(uuid.New()) }
func NewViolationID() ViolationID   { return ViolationID(uuid.New()) }

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseConsentID(s string) (ConsentID, error) {
	id, err := parseUUID(s, "consent ID")
	return ConsentID(id), err
}

func ParseAssessmentID(s string) (AssessmentID, error) {
	id, err := parseUUID(s, "assessment ID")
	return AssessmentID(id), err
}

func ParseApprovalID(s string) (ApprovalID, error) {
	id, err := parseUUID(s, "approval ID")
	return ApprovalID(id), err
}

func ParseViolationID(s string) (ViolationID, error) {
	id, err := parseUUID(s, "violation ID")
	return ViolationID(id), err
}

func ParseParticipantID(s string) (ParticipantID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "participant ID cannot be empty")
	}
	return ParticipantID(s), nil
}

func ParseCampaignID(s string) (CampaignID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "campaign ID cannot be empty")
	}
	return CampaignID(s), nil
}

// String methods - for logging and serialization.

func (id ConsentID) String() string    { return uuid.UUID(id).String() }
func (id AssessmentID) String() string { return uuid.UUID(id).String() }
func (id ApprovalID) String() string   { return uuid.UUID(id).String() }
func (id ViolationID) String() string  { return uuid.UUID(id).String() }
func (id ParticipantID) String() string { return string(id) }
func (id CampaignID) String() string    { return string(id) }

// IsNil checks - used for service-layer validation.

func (id ConsentID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id AssessmentID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ApprovalID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id ViolationID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id ParticipantID) IsNil() bool { return id == "" }
func (id CampaignID) IsNil() bool    { return id == "" }

// parseUUID is the shared validation logic. Nil UUIDs are allowed here; use
// IsNil() at the service layer so store lookups can return proper "not found"
// errors for consistency.
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	return id, nil
}
