package service

import (
	"context"
	"errors"
	"log/slog"

	"aegis/internal/audit"
	"aegis/internal/risk"
	"aegis/internal/safety/metrics"
	"aegis/internal/violation/models"
	"aegis/internal/violation/store"
	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/platform/middleware/requesttime"
	"aegis/pkg/platform/sentinel"
)

// Tracker records and resolves safety incidents tied to a campaign and
// participant. Reporting is append-only; nothing is ever deleted.
type Tracker struct {
	store   store.Store
	auditor *audit.Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger
}

type Option func(*Tracker)

// WithMetrics sets the metrics instance for the tracker.
func WithMetrics(m *metrics.Metrics) Option {
	return func(t *Tracker) {
		t.metrics = m
	}
}

func NewTracker(store store.Store, auditor *audit.Publisher, logger *slog.Logger, opts ...Option) *Tracker {
	t := &Tracker{
		store:   store,
		auditor: auditor,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Report records a new open violation and returns its identifier.
// It never fails except on malformed inputs.
func (t *Tracker) Report(ctx context.Context, campaignID id.CampaignID, participantID id.ParticipantID,
	violationType, description string, severity risk.Level) (id.ViolationID, error) {
	now := requesttime.Now(ctx)
	violation, err := models.New(id.NewViolationID(), campaignID, participantID, violationType, description, severity, now)
	if err != nil {
		return id.ViolationID{}, err
	}
	if err := t.store.Save(ctx, violation); err != nil {
		return id.ViolationID{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save violation")
	}

	t.emitAudit(ctx, audit.Event{
		CampaignID:    campaignID,
		ParticipantID: participantID,
		Subject:       violation.ID.String(),
		Action:        audit.ActionViolationReported,
		Decision:      audit.DecisionRecorded,
		Reason:        violationType,
		Timestamp:     now,
	})
	if t.metrics != nil {
		t.metrics.IncrementViolationsReported(string(severity))
	}
	if t.logger != nil {
		t.logger.WarnContext(ctx, "violation_reported",
			"violation_id", violation.ID.String(),
			"campaign_id", campaignID.String(),
			"type", violationType,
			"severity", severity,
		)
	}
	return violation.ID, nil
}

// Resolve closes an open violation with the given notes. Returns false
// without an error when the violation id is unknown. Resolving an
// already-resolved violation succeeds and overwrites the notes only; the
// original resolved-at timestamp stands.
func (t *Tracker) Resolve(ctx context.Context, violationID id.ViolationID, notes string) (bool, error) {
	now := requesttime.Now(ctx)
	violation, err := t.store.Resolve(ctx, violationID, now, notes)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve violation")
	}

	t.emitAudit(ctx, audit.Event{
		CampaignID:    violation.CampaignID,
		ParticipantID: violation.ParticipantID,
		Subject:       violation.ID.String(),
		Action:        audit.ActionViolationResolved,
		Decision:      audit.DecisionRecorded,
		Reason:        notes,
		Timestamp:     now,
	})
	if t.metrics != nil {
		t.metrics.IncrementViolationsResolved()
	}
	return true, nil
}

func (t *Tracker) emitAudit(ctx context.Context, event audit.Event) {
	if t.auditor == nil {
		return
	}
	_ = t.auditor.Emit(ctx, event)
}
