package models

import (
	"time"

	"aegis/internal/risk"
	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
)

// Violation records one deviation from safe conduct during a campaign.
// A violation with no ResolvedAt is open, and an open violation fails the
// campaign's safety verdict. Records are never deleted.
type Violation struct {
	ID              id.ViolationID
	CampaignID      id.CampaignID
	ParticipantID   id.ParticipantID
	ViolationType   string
	Description     string
	Severity        risk.Level
	ReportedAt      time.Time
	ResolvedAt      *time.Time
	ResolutionNotes string
}

// New creates an open Violation with domain invariant checks.
func New(violationID id.ViolationID, campaignID id.CampaignID, participantID id.ParticipantID,
	violationType, description string, severity risk.Level, reportedAt time.Time) (*Violation, error) {
	if violationID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "violation ID required")
	}
	if campaignID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "campaign ID cannot be empty")
	}
	if participantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "participant ID cannot be empty")
	}
	if violationType == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "violation type cannot be empty")
	}
	if !severity.IsValid() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "invalid severity level")
	}
	return &Violation{
		ID:            violationID,
		CampaignID:    campaignID,
		ParticipantID: participantID,
		ViolationType: violationType,
		Description:   description,
		Severity:      severity,
		ReportedAt:    reportedAt,
	}, nil
}

// IsOpen reports whether the violation still blocks its campaign.
func (v Violation) IsOpen() bool {
	return v.ResolvedAt == nil
}
