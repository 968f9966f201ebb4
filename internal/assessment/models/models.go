package models

import (
	"time"

	"aegis/internal/risk"
	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
)

// Assessment is a risk-factor-driven classification of one planned activity.
//
// An assessment is immutable once conducted, except for the approver fields,
// which the approval workflow writes exactly once. While ApprovalRequired is
// true and no decision exists, Approver stays empty and ApprovedAt nil.
type Assessment struct {
	ID               id.AssessmentID
	CampaignID       id.CampaignID
	ActivityType     string
	Level            risk.Level
	RiskFactors      []string
	Mitigations      []string
	ApprovalRequired bool
	Approver         string
	ApprovedAt       *time.Time
	AssessedAt       time.Time
}

// New creates an Assessment with domain invariant checks. The level,
// mitigations and approval flag come from the risk classifier, never from the
// caller.
func New(assessmentID id.AssessmentID, campaignID id.CampaignID, activityType string,
	riskFactors []string, assessedAt time.Time) (*Assessment, error) {
	if assessmentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "assessment ID required")
	}
	if campaignID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "campaign ID cannot be empty")
	}
	if activityType == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "activity type cannot be empty")
	}

	level := risk.Classify(riskFactors)
	return &Assessment{
		ID:               assessmentID,
		CampaignID:       campaignID,
		ActivityType:     activityType,
		Level:            level,
		RiskFactors:      append([]string{}, riskFactors...),
		Mitigations:      risk.DeriveMitigations(riskFactors, level),
		ApprovalRequired: risk.ApprovalRequired(level),
		AssessedAt:       assessedAt,
	}, nil
}

// IsApproved reports whether an approval decision has been written back.
func (a Assessment) IsApproved() bool {
	return a.Approver != ""
}

// NeedsApproval reports whether the assessment still blocks its campaign.
func (a Assessment) NeedsApproval() bool {
	return a.ApprovalRequired && !a.IsApproved()
}
