package handler

import (
	"strings"

	"aegis/internal/consent/models"
	dErrors "aegis/pkg/domain-errors"
)

const maxFieldLen = 256

// CreateRequest specifies the participant and activity a consent record is
// opened for.
type CreateRequest struct {
	ParticipantID   string `json:"participant_id"`
	ParticipantName string `json:"participant_name"`
	CampaignID      string `json:"campaign_id"`
	ConsentType     string `json:"consent_type"`
	ConsentMethod   string `json:"consent_method"`
	Witness         string `json:"witness"`
}

// Normalize applies business defaults and sanitizes inputs.
func (r *CreateRequest) Normalize() {
	if r == nil {
		return
	}
	r.ParticipantID = strings.TrimSpace(r.ParticipantID)
	r.ParticipantName = strings.TrimSpace(r.ParticipantName)
	r.CampaignID = strings.TrimSpace(r.CampaignID)
	r.ConsentType = strings.TrimSpace(r.ConsentType)
	r.ConsentMethod = strings.ToLower(strings.TrimSpace(r.ConsentMethod))
	r.Witness = strings.TrimSpace(r.Witness)
}

// Validate checks that the request is well-formed.
func (r *CreateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.ParticipantID == "" {
		return dErrors.New(dErrors.CodeValidation, "participant_id is required")
	}
	if r.CampaignID == "" {
		return dErrors.New(dErrors.CodeValidation, "campaign_id is required")
	}
	if r.ConsentType == "" {
		return dErrors.New(dErrors.CodeValidation, "consent_type is required")
	}
	for _, field := range []string{r.ParticipantID, r.ParticipantName, r.CampaignID, r.ConsentType, r.Witness} {
		if len(field) > maxFieldLen {
			return dErrors.New(dErrors.CodeValidation, "field exceeds maximum length")
		}
	}
	return nil
}

// Method converts the requested collection method into a domain value.
func (r *CreateRequest) Method() models.Method {
	return models.Method(r.ConsentMethod).OrDefault()
}

// GrantRequest carries the grant-time facts for a pending consent record.
type GrantRequest struct {
	Witness string `json:"witness"`
}

// Normalize applies business defaults and sanitizes inputs.
func (r *GrantRequest) Normalize() {
	if r == nil {
		return
	}
	r.Witness = strings.TrimSpace(r.Witness)
}

// Validate checks that the request is well-formed.
func (r *GrantRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if len(r.Witness) > maxFieldLen {
		return dErrors.New(dErrors.CodeValidation, "witness exceeds maximum length")
	}
	return nil
}

// RevokeRequest carries the reason a consent record is being withdrawn.
type RevokeRequest struct {
	Reason string `json:"reason"`
}

// Normalize applies business defaults and sanitizes inputs.
func (r *RevokeRequest) Normalize() {
	if r == nil {
		return
	}
	r.Reason = strings.TrimSpace(r.Reason)
}

// Validate checks that the request is well-formed.
func (r *RevokeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if len(r.Reason) > maxFieldLen {
		return dErrors.New(dErrors.CodeValidation, "reason exceeds maximum length")
	}
	return nil
}
