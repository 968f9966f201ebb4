package handler

import (
	"strings"

	"aegis/internal/risk"
	dErrors "aegis/pkg/domain-errors"
)

const (
	maxFieldLen       = 256
	maxDescriptionLen = 2048
	maxRiskFactors    = 32
)

// AssessRequest specifies the activity to classify.
type AssessRequest struct {
	ActivityType string   `json:"activity_type"`
	RiskFactors  []string `json:"risk_factors"`
}

// Normalize applies business defaults and sanitizes inputs. Factor tags are
// lowercased so callers cannot dodge the classifier by casing.
func (r *AssessRequest) Normalize() {
	if r == nil {
		return
	}
	r.ActivityType = strings.TrimSpace(r.ActivityType)
	factors := make([]string, 0, len(r.RiskFactors))
	for _, factor := range r.RiskFactors {
		factor = strings.ToLower(strings.TrimSpace(factor))
		if factor != "" {
			factors = append(factors, factor)
		}
	}
	r.RiskFactors = factors
}

// Validate checks that the request is well-formed.
func (r *AssessRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.ActivityType == "" {
		return dErrors.New(dErrors.CodeValidation, "activity_type is required")
	}
	if len(r.ActivityType) > maxFieldLen {
		return dErrors.New(dErrors.CodeValidation, "activity_type exceeds maximum length")
	}
	if len(r.RiskFactors) > maxRiskFactors {
		return dErrors.New(dErrors.CodeValidation, "too many risk factors")
	}
	for _, factor := range r.RiskFactors {
		if len(factor) > maxFieldLen {
			return dErrors.New(dErrors.CodeValidation, "risk factor exceeds maximum length")
		}
	}
	return nil
}

// DecideRequest carries notes for an approval decision.
type DecideRequest struct {
	Notes string `json:"notes"`
}

// Normalize applies business defaults and sanitizes inputs.
func (r *DecideRequest) Normalize() {
	if r == nil {
		return
	}
	r.Notes = strings.TrimSpace(r.Notes)
}

// Validate checks that the request is well-formed.
func (r *DecideRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if len(r.Notes) > maxDescriptionLen {
		return dErrors.New(dErrors.CodeValidation, "notes exceed maximum length")
	}
	return nil
}

// ReportViolationRequest describes one observed deviation from safe conduct.
type ReportViolationRequest struct {
	ParticipantID string `json:"participant_id"`
	ViolationType string `json:"violation_type"`
	Description   string `json:"description"`
	Severity      string `json:"severity"`
}

// Normalize applies business defaults and sanitizes inputs.
func (r *ReportViolationRequest) Normalize() {
	if r == nil {
		return
	}
	r.ParticipantID = strings.TrimSpace(r.ParticipantID)
	r.ViolationType = strings.TrimSpace(r.ViolationType)
	r.Description = strings.TrimSpace(r.Description)
	r.Severity = strings.ToLower(strings.TrimSpace(r.Severity))
}

// Validate checks that the request is well-formed.
func (r *ReportViolationRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.ParticipantID == "" {
		return dErrors.New(dErrors.CodeValidation, "participant_id is required")
	}
	if r.ViolationType == "" {
		return dErrors.New(dErrors.CodeValidation, "violation_type is required")
	}
	if r.Severity == "" {
		return dErrors.New(dErrors.CodeValidation, "severity is required")
	}
	if len(r.ParticipantID) > maxFieldLen || len(r.ViolationType) > maxFieldLen {
		return dErrors.New(dErrors.CodeValidation, "field exceeds maximum length")
	}
	if len(r.Description) > maxDescriptionLen {
		return dErrors.New(dErrors.CodeValidation, "description exceeds maximum length")
	}
	return nil
}

// ParseSeverity converts the requested severity into a risk level.
func (r *ReportViolationRequest) ParseSeverity() (risk.Level, error) {
	return risk.ParseLevel(r.Severity)
}

// ResolveRequest carries how a violation was addressed.
type ResolveRequest struct {
	ResolutionNotes string `json:"resolution_notes"`
}

// Normalize applies business defaults and sanitizes inputs.
func (r *ResolveRequest) Normalize() {
	if r == nil {
		return
	}
	r.ResolutionNotes = strings.TrimSpace(r.ResolutionNotes)
}

// Validate checks that the request is well-formed.
func (r *ResolveRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if len(r.ResolutionNotes) > maxDescriptionLen {
		return dErrors.New(dErrors.CodeValidation, "resolution notes exceed maximum length")
	}
	return nil
}
