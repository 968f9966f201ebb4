package audit

import (
	"time"

	id "aegis/pkg/domain"
)

// Event is emitted from domain logic to capture key governance actions.
// Keep it transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp     time.Time
	CampaignID    id.CampaignID
	ParticipantID id.ParticipantID
	Subject       string
	Action        string
	Decision      string
	Reason        string
}

// Audit event actions.
const (
	ActionConsentRequested   = "consent_requested"
	ActionConsentGranted     = "consent_granted"
	ActionConsentRevoked     = "consent_revoked"
	ActionConsentCheckPassed = "consent_check_passed"
	ActionConsentCheckFailed = "consent_check_failed"
	ActionAssessmentCreated  = "assessment_created"
	ActionApprovalRequested  = "approval_requested"
	ActionApprovalGranted    = "approval_granted"
	ActionApprovalRejected   = "approval_rejected"
	ActionViolationReported  = "violation_reported"
	ActionViolationResolved  = "violation_resolved"
)

// Audit event decisions.
const (
	DecisionGranted  = "granted"
	DecisionDenied   = "denied"
	DecisionRevoked  = "revoked"
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
	DecisionRecorded = "recorded"
)
