package service

import (
	"context"
	"errors"
	"log/slog"

	"aegis/internal/approval/models"
	"aegis/internal/approval/store"
	assessmentstore "aegis/internal/assessment/store"
	"aegis/internal/audit"
	"aegis/internal/safety/metrics"
	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/platform/middleware/requesttime"
	"aegis/pkg/platform/sentinel"
	psync "aegis/pkg/platform/sync"
)

// Workflow drives approval requests through their single-decision state
// machine and writes approved outcomes back into the owning assessment.
type Workflow struct {
	store       store.Store
	assessments assessmentstore.Store
	auditor     *audit.Publisher
	metrics     *metrics.Metrics
	logger      *slog.Logger
	// locks serializes the decision and the assessment write-back per
	// assessment, so two racing approvals for the same assessment cannot
	// interleave between the two stores.
	locks *psync.ShardedMutex
}

type Option func(*Workflow)

// WithMetrics sets the metrics instance for the workflow.
func WithMetrics(m *metrics.Metrics) Option {
	return func(w *Workflow) {
		w.metrics = m
	}
}

func NewWorkflow(store store.Store, assessments assessmentstore.Store, auditor *audit.Publisher, logger *slog.Logger, opts ...Option) *Workflow {
	w := &Workflow{
		store:       store,
		assessments: assessments,
		auditor:     auditor,
		logger:      logger,
		locks:       psync.NewShardedMutex(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Create opens a pending approval request against an assessment that the
// registry has already verified to require one.
func (w *Workflow) Create(ctx context.Context, assessmentID id.AssessmentID, campaignID id.CampaignID, approver string) (id.ApprovalID, error) {
	now := requesttime.Now(ctx)
	request, err := models.New(id.NewApprovalID(), assessmentID, approver, now)
	if err != nil {
		return id.ApprovalID{}, err
	}
	if err := w.store.Save(ctx, request); err != nil {
		return id.ApprovalID{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save approval request")
	}

	w.emitAudit(ctx, audit.Event{
		CampaignID: campaignID,
		Subject:    request.ID.String(),
		Action:     audit.ActionApprovalRequested,
		Decision:   audit.DecisionRecorded,
		Reason:     assessmentID.String(),
		Timestamp:  now,
	})
	if w.metrics != nil {
		w.metrics.IncrementApprovalsRequested()
	}
	return request.ID, nil
}

// Approve records the terminal Approved decision and writes the approver into
// the owning assessment. Returns false without an error when the request is
// absent or already decided.
func (w *Workflow) Approve(ctx context.Context, approvalID id.ApprovalID, notes string) (bool, error) {
	return w.decide(ctx, approvalID, models.DecisionApproved, notes)
}

// Reject records the terminal Rejected decision with the given reason.
// Same boolean no-op contract as Approve; no assessment write-back happens.
func (w *Workflow) Reject(ctx context.Context, approvalID id.ApprovalID, reason string) (bool, error) {
	return w.decide(ctx, approvalID, models.DecisionRejected, reason)
}

func (w *Workflow) decide(ctx context.Context, approvalID id.ApprovalID, decision models.Decision, notes string) (bool, error) {
	request, err := w.store.FindByID(ctx, approvalID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read approval request")
	}

	w.locks.Lock(request.AssessmentID.String())
	defer w.locks.Unlock(request.AssessmentID.String())

	now := requesttime.Now(ctx)
	decided, err := w.store.Decide(ctx, approvalID, decision, now, notes)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) || errors.Is(err, sentinel.ErrInvalidState) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to decide approval request")
	}

	action := audit.ActionApprovalRejected
	auditDecision := audit.DecisionRejected
	if decision == models.DecisionApproved {
		action = audit.ActionApprovalGranted
		auditDecision = audit.DecisionApproved
		w.recordOutcome(ctx, decided)
	}

	campaignID := w.campaignFor(ctx, decided.AssessmentID)
	w.emitAudit(ctx, audit.Event{
		CampaignID: campaignID,
		Subject:    decided.ID.String(),
		Action:     action,
		Decision:   auditDecision,
		Reason:     notes,
		Timestamp:  now,
	})
	if w.metrics != nil {
		w.metrics.IncrementApprovalsDecided(string(decision))
	}
	return true, nil
}

// recordOutcome writes the approver fields into the owning assessment.
// The store enforces write-once; a second approved request for the same
// assessment keeps its own terminal decision but does not re-approve.
func (w *Workflow) recordOutcome(ctx context.Context, request *models.Request) {
	_, err := w.assessments.RecordApproval(ctx, request.AssessmentID, request.Approver, *request.DecidedAt)
	if err == nil {
		return
	}
	if errors.Is(err, sentinel.ErrAlreadySet) {
		if w.logger != nil {
			w.logger.WarnContext(ctx, "assessment already approved, write-back skipped",
				"assessment_id", request.AssessmentID.String(),
				"approval_id", request.ID.String(),
			)
		}
		return
	}
	if w.logger != nil {
		w.logger.ErrorContext(ctx, "failed to record approval outcome",
			"error", err,
			"assessment_id", request.AssessmentID.String(),
		)
	}
}

func (w *Workflow) campaignFor(ctx context.Context, assessmentID id.AssessmentID) id.CampaignID {
	assessment, err := w.assessments.FindByID(ctx, assessmentID)
	if err != nil {
		return ""
	}
	return assessment.CampaignID
}

func (w *Workflow) emitAudit(ctx context.Context, event audit.Event) {
	if w.auditor == nil {
		return
	}
	_ = w.auditor.Emit(ctx, event)
}
