package service

import (
	"context"
	"errors"
	"log/slog"

	"aegis/internal/assessment/models"
	"aegis/internal/assessment/store"
	"aegis/internal/audit"
	"aegis/internal/safety/metrics"
	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/platform/middleware/requesttime"
	"aegis/pkg/platform/sentinel"
)

// ApprovalRequester opens approval requests. Implemented by the approval
// workflow; an interface here keeps the dependency one-directional.
type ApprovalRequester interface {
	Create(ctx context.Context, assessmentID id.AssessmentID, campaignID id.CampaignID, approver string) (id.ApprovalID, error)
}

// Registry creates and stores safety assessments and mediates approval
// requests for the ones that need them.
type Registry struct {
	store     store.Store
	approvals ApprovalRequester
	auditor   *audit.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

type Option func(*Registry)

// WithMetrics sets the metrics instance for the registry.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

func NewRegistry(store store.Store, approvals ApprovalRequester, auditor *audit.Publisher, logger *slog.Logger, opts ...Option) *Registry {
	r := &Registry{
		store:     store,
		approvals: approvals,
		auditor:   auditor,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Conduct classifies the activity's risk factors, persists the resulting
// assessment and returns it. Pure composition; no external I/O.
func (r *Registry) Conduct(ctx context.Context, campaignID id.CampaignID, activityType string, riskFactors []string) (*models.Assessment, error) {
	now := requesttime.Now(ctx)
	assessment, err := models.New(id.NewAssessmentID(), campaignID, activityType, riskFactors, now)
	if err != nil {
		return nil, err
	}
	if err := r.store.Save(ctx, assessment); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save assessment")
	}

	r.emitAudit(ctx, audit.Event{
		CampaignID: campaignID,
		Subject:    assessment.ID.String(),
		Action:     audit.ActionAssessmentCreated,
		Decision:   string(assessment.Level),
		Reason:     activityType,
		Timestamp:  now,
	})
	if r.metrics != nil {
		r.metrics.IncrementAssessmentsConducted(string(assessment.Level))
	}
	if r.logger != nil {
		r.logger.InfoContext(ctx, "assessment_conducted",
			"assessment_id", assessment.ID.String(),
			"campaign_id", campaignID.String(),
			"level", assessment.Level,
			"approval_required", assessment.ApprovalRequired,
		)
	}
	return assessment, nil
}

// Get returns a stored assessment by id.
func (r *Registry) Get(ctx context.Context, assessmentID id.AssessmentID) (*models.Assessment, error) {
	assessment, err := r.store.FindByID(ctx, assessmentID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "assessment not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read assessment")
	}
	return assessment, nil
}

// RequestApproval opens an approval request for an assessment.
// Unknown assessment ids fail with a not-found error: that is a caller bug,
// not a transient condition. Assessments below the approval threshold return
// required=false and a zero approval id; that outcome is an answer, not an
// error.
func (r *Registry) RequestApproval(ctx context.Context, assessmentID id.AssessmentID, approver string) (approvalID id.ApprovalID, required bool, err error) {
	assessment, err := r.store.FindByID(ctx, assessmentID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return id.ApprovalID{}, false, dErrors.New(dErrors.CodeNotFound, "assessment not found")
		}
		return id.ApprovalID{}, false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read assessment")
	}

	if !assessment.ApprovalRequired {
		return id.ApprovalID{}, false, nil
	}

	approvalID, err = r.approvals.Create(ctx, assessment.ID, assessment.CampaignID, approver)
	if err != nil {
		return id.ApprovalID{}, true, err
	}
	return approvalID, true, nil
}

func (r *Registry) emitAudit(ctx context.Context, event audit.Event) {
	if r.auditor == nil {
		return
	}
	_ = r.auditor.Emit(ctx, event)
}
