package handler

import (
	"time"

	"aegis/internal/assessment/models"
	"aegis/internal/risk"
)

// AssessmentResponse is returned after conducting a safety assessment.
type AssessmentResponse struct {
	AssessmentID       string     `json:"assessment_id"`
	CampaignID         string     `json:"campaign_id"`
	ActivityType       string     `json:"activity_type"`
	SafetyLevel        risk.Level `json:"safety_level"`
	RiskFactors        []string   `json:"risk_factors"`
	MitigationMeasures []string   `json:"mitigation_measures"`
	ApprovalRequired   bool       `json:"approval_required"`
	AssessedAt         time.Time  `json:"assessed_at"`
}

func toAssessmentResponse(a *models.Assessment) *AssessmentResponse {
	return &AssessmentResponse{
		AssessmentID:       a.ID.String(),
		CampaignID:         a.CampaignID.String(),
		ActivityType:       a.ActivityType,
		SafetyLevel:        a.Level,
		RiskFactors:        a.RiskFactors,
		MitigationMeasures: a.Mitigations,
		ApprovalRequired:   a.ApprovalRequired,
		AssessedAt:         a.AssessedAt,
	}
}

// ApprovalRequestResponse is returned after requesting approval for an
// assessment. ApprovalID is empty when the assessment sits below the
// approval threshold.
type ApprovalRequestResponse struct {
	ApprovalID       string `json:"approval_id,omitempty"`
	ApprovalRequired bool   `json:"approval_required"`
}

// DecisionResponse is returned after an approve or reject attempt. Updated is
// false when the approval was absent or already decided.
type DecisionResponse struct {
	ApprovalID string `json:"approval_id"`
	Updated    bool   `json:"updated"`
}

// ViolationResponse is returned after reporting a violation.
type ViolationResponse struct {
	ViolationID string     `json:"violation_id"`
	Severity    risk.Level `json:"severity"`
}

// ResolveResponse is returned after a resolve attempt.
type ResolveResponse struct {
	ViolationID string `json:"violation_id"`
	Updated     bool   `json:"updated"`
}
