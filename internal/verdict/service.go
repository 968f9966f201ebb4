package verdict

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	assessmentmodels "aegis/internal/assessment/models"
	assessmentstore "aegis/internal/assessment/store"
	"aegis/internal/platform/tracer"
	"aegis/internal/safety/metrics"
	violationmodels "aegis/internal/violation/models"
	violationstore "aegis/internal/violation/store"
	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
)

// Validator aggregates the campaign's stores into one verdict. It holds no
// state of its own; under concurrent mutation a verdict may race with an
// in-flight approval, which is acceptable as long as each record read is
// whole (the stores guarantee that).
type Validator struct {
	assessments assessmentstore.Store
	violations  violationstore.Store
	metrics     *metrics.Metrics
	tracer      tracer.Tracer
}

type Option func(*Validator)

// WithMetrics sets the metrics instance for the validator.
func WithMetrics(m *metrics.Metrics) Option {
	return func(v *Validator) {
		v.metrics = m
	}
}

// WithTracer sets the tracer for validation spans.
func WithTracer(t tracer.Tracer) Option {
	return func(v *Validator) {
		v.tracer = t
	}
}

func NewValidator(assessments assessmentstore.Store, violations violationstore.Store, opts ...Option) *Validator {
	v := &Validator{
		assessments: assessments,
		violations:  violations,
		tracer:      tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate computes the campaign's safety verdict.
func (v *Validator) Validate(ctx context.Context, campaignID id.CampaignID) (*Verdict, error) {
	if campaignID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "campaign ID cannot be empty")
	}

	start := time.Now()
	ctx, span := v.tracer.Start(ctx, tracer.SpanVerdictValidate,
		tracer.String(tracer.AttrCampaignID, campaignID.String()),
	)

	assessments, violations, err := v.gather(ctx, campaignID)
	if err != nil {
		span.End(err)
		return nil, err
	}

	verdict := Build(campaignID, assessments, violations)

	span.SetAttributes(
		tracer.Bool(tracer.AttrIsSafe, verdict.IsSafe),
		tracer.String(tracer.AttrRiskLevel, string(verdict.RiskLevel)),
		tracer.Int64(tracer.AttrAssessmentCount, int64(len(assessments))),
		tracer.Int64(tracer.AttrRequiredApprovals, int64(len(verdict.RequiredApprovals))),
	)
	span.End(nil)

	if v.metrics != nil {
		v.metrics.IncrementVerdictsComputed(verdict.IsSafe)
		v.metrics.ObserveVerdictLatency(time.Since(start).Seconds())
	}
	return verdict, nil
}

// gather reads both stores concurrently. Each goroutine writes to its own
// variable, so there are no shared writes to race on.
func (v *Validator) gather(ctx context.Context, campaignID id.CampaignID) ([]*assessmentmodels.Assessment, []*violationmodels.Violation, error) {
	ctx, span := v.tracer.Start(ctx, tracer.SpanVerdictGather)

	g, ctx := errgroup.WithContext(ctx)

	var assessments []*assessmentmodels.Assessment
	var violations []*violationmodels.Violation

	g.Go(func() error {
		var err error
		assessments, err = v.assessments.ListByCampaign(ctx, campaignID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list assessments")
		}
		return nil
	})
	g.Go(func() error {
		var err error
		violations, err = v.violations.ListByCampaign(ctx, campaignID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list violations")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		span.End(err)
		return nil, nil, err
	}
	span.End(nil)
	return assessments, violations, nil
}
