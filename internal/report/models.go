// Package report serializes one campaign's full governance state as a single
// JSON document for downstream compliance tooling.
//
// The document layout is a stable contract: field names and enum string
// values must not change without a version bump. Enum values serialize as
// lowercase strings and timestamps as ISO-8601 (RFC 3339).
package report

import (
	"time"

	consentmodels "aegis/internal/consent/models"
	"aegis/internal/risk"
	"aegis/internal/verdict"
)

// Report is the exported document for one campaign.
type Report struct {
	CampaignID        string                 `json:"campaign_id"`
	GeneratedAt       time.Time              `json:"generated_at"`
	SafetyValidation  *verdict.Verdict       `json:"safety_validation"`
	ConsentSummary    *consentmodels.Summary `json:"consent_summary"`
	ConsentRecords    []ConsentRecord        `json:"consent_records"`
	SafetyAssessments []Assessment           `json:"safety_assessments"`
	SafetyViolations  []Violation            `json:"safety_violations"`
	EthicalGuidelines map[string][]string    `json:"ethical_guidelines"`
}

// ConsentRecord is the export shape of one consent record. Status is the
// derived lifecycle state at export time, so a stale grant reads as expired.
type ConsentRecord struct {
	ConsentID       string                `json:"consent_id"`
	ParticipantID   string                `json:"participant_id"`
	ParticipantName string                `json:"participant_name"`
	ConsentType     string                `json:"consent_type"`
	Status          consentmodels.Status  `json:"status"`
	GrantedDate     *time.Time            `json:"granted_date"`
	RevokedDate     *time.Time            `json:"revoked_date"`
	ExpirationDate  *time.Time            `json:"expiration_date"`
	ConsentMethod   consentmodels.Method  `json:"consent_method"`
	Witness         string                `json:"witness,omitempty"`
	Notes           string                `json:"notes,omitempty"`
}

// Assessment is the export shape of one safety assessment.
type Assessment struct {
	AssessmentID       string     `json:"assessment_id"`
	ActivityType       string     `json:"activity_type"`
	SafetyLevel        risk.Level `json:"safety_level"`
	RiskFactors        []string   `json:"risk_factors"`
	MitigationMeasures []string   `json:"mitigation_measures"`
	ApprovalRequired   bool       `json:"approval_required"`
	Approver           string     `json:"approver,omitempty"`
	ApprovalDate       *time.Time `json:"approval_date"`
}

// Violation is the export shape of one safety violation.
type Violation struct {
	ViolationID     string     `json:"violation_id"`
	ParticipantID   string     `json:"participant_id"`
	ViolationType   string     `json:"violation_type"`
	Description     string     `json:"description"`
	Severity        risk.Level `json:"severity"`
	ReportedDate    time.Time  `json:"reported_date"`
	ResolvedDate    *time.Time `json:"resolved_date"`
	ResolutionNotes string     `json:"resolution_notes,omitempty"`
}
