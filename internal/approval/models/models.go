package models

import (
	"time"

	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
)

// Decision represents the state of an approval request.
type Decision string

const (
	DecisionPending  Decision = "pending"
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// IsValid checks if the decision is one of the supported enum values.
func (d Decision) IsValid() bool {
	return d == DecisionPending || d == DecisionApproved || d == DecisionRejected
}

// IsTerminal reports whether the request can no longer change.
func (d Decision) IsTerminal() bool {
	return d == DecisionApproved || d == DecisionRejected
}

// Request tracks one pending human decision gating a high-risk assessment.
// At most one terminal decision is ever recorded; once approved or rejected
// the request is immutable.
type Request struct {
	ID           id.ApprovalID
	AssessmentID id.AssessmentID
	Approver     string
	Decision     Decision
	RequestedAt  time.Time
	DecidedAt    *time.Time
	Notes        string
}

// New creates a pending Request with domain invariant checks.
func New(approvalID id.ApprovalID, assessmentID id.AssessmentID, approver string, requestedAt time.Time) (*Request, error) {
	if approvalID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "approval ID required")
	}
	if assessmentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "assessment ID required")
	}
	if approver == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "approver cannot be empty")
	}
	return &Request{
		ID:           approvalID,
		AssessmentID: assessmentID,
		Approver:     approver,
		Decision:     DecisionPending,
		RequestedAt:  requestedAt,
	}, nil
}
