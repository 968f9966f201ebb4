package report

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	assessmentmodels "aegis/internal/assessment/models"
	assessmentstore "aegis/internal/assessment/store"
	consentmodels "aegis/internal/consent/models"
	consentservice "aegis/internal/consent/service"
	"aegis/internal/platform/tracer"
	"aegis/internal/risk"
	"aegis/internal/verdict"
	violationmodels "aegis/internal/violation/models"
	violationstore "aegis/internal/violation/store"
	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/platform/middleware/requesttime"
)

// Exporter assembles campaign reports from the governance stores. The report
// is a point-in-time snapshot: records are gathered concurrently and each
// section is internally consistent, but a mutation racing the export may land
// in one section and not another.
type Exporter struct {
	consents    *consentservice.Ledger
	assessments assessmentstore.Store
	violations  violationstore.Store
	validator   *verdict.Validator
	tracer      tracer.Tracer
	logger      *slog.Logger
}

type Option func(*Exporter)

// WithTracer sets the tracer for export spans.
func WithTracer(t tracer.Tracer) Option {
	return func(e *Exporter) {
		e.tracer = t
	}
}

// WithLogger sets the exporter's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Exporter) {
		e.logger = l
	}
}

func NewExporter(consents *consentservice.Ledger, assessments assessmentstore.Store,
	violations violationstore.Store, validator *verdict.Validator, opts ...Option) *Exporter {
	e := &Exporter{
		consents:    consents,
		assessments: assessments,
		violations:  violations,
		validator:   validator,
		tracer:      tracer.NewNoop(),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export builds the full governance report for one campaign. A campaign with
// no records at all still yields a complete document: empty sections, a
// summary of zeros and an unsafe verdict.
func (e *Exporter) Export(ctx context.Context, campaignID id.CampaignID) (*Report, error) {
	if campaignID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "campaign ID cannot be empty")
	}

	ctx, span := e.tracer.Start(ctx, tracer.SpanReportExport,
		tracer.String(tracer.AttrCampaignID, campaignID.String()))

	now := requesttime.Now(ctx)

	var (
		records     []*consentmodels.Record
		summary     *consentmodels.Summary
		assessments []*assessmentmodels.Assessment
		violations  []*violationmodels.Violation
		validation  *verdict.Verdict
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = e.consents.List(gctx, campaignID, nil)
		return err
	})
	g.Go(func() error {
		var err error
		summary, err = e.consents.Summary(gctx, campaignID)
		return err
	})
	g.Go(func() error {
		var err error
		assessments, err = e.assessments.ListByCampaign(gctx, campaignID)
		return err
	})
	g.Go(func() error {
		var err error
		violations, err = e.violations.ListByCampaign(gctx, campaignID)
		return err
	})
	g.Go(func() error {
		var err error
		validation, err = e.validator.Validate(gctx, campaignID)
		return err
	})
	if err := g.Wait(); err != nil {
		wrapped := dErrors.Wrap(err, dErrors.CodeInternal, "failed to gather campaign records")
		span.End(wrapped)
		return nil, wrapped
	}

	report := &Report{
		CampaignID:        campaignID.String(),
		GeneratedAt:       now,
		SafetyValidation:  validation,
		ConsentSummary:    summary,
		ConsentRecords:    make([]ConsentRecord, 0, len(records)),
		SafetyAssessments: make([]Assessment, 0, len(assessments)),
		SafetyViolations:  make([]Violation, 0, len(violations)),
		EthicalGuidelines: risk.Guidelines(),
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].ParticipantID != records[j].ParticipantID {
			return records[i].ParticipantID < records[j].ParticipantID
		}
		return records[i].ID.String() < records[j].ID.String()
	})
	for _, r := range records {
		report.ConsentRecords = append(report.ConsentRecords, ConsentRecord{
			ConsentID:       r.ID.String(),
			ParticipantID:   r.ParticipantID.String(),
			ParticipantName: r.ParticipantName,
			ConsentType:     r.ConsentType,
			Status:          r.ComputeStatus(now),
			GrantedDate:     r.GrantedAt,
			RevokedDate:     r.RevokedAt,
			ExpirationDate:  r.ExpiresAt,
			ConsentMethod:   r.Method,
			Witness:         r.Witness,
			Notes:           r.Notes,
		})
	}

	sort.Slice(assessments, func(i, j int) bool {
		if !assessments[i].AssessedAt.Equal(assessments[j].AssessedAt) {
			return assessments[i].AssessedAt.Before(assessments[j].AssessedAt)
		}
		return assessments[i].ID.String() < assessments[j].ID.String()
	})
	for _, a := range assessments {
		report.SafetyAssessments = append(report.SafetyAssessments, Assessment{
			AssessmentID:       a.ID.String(),
			ActivityType:       a.ActivityType,
			SafetyLevel:        a.Level,
			RiskFactors:        append([]string{}, a.RiskFactors...),
			MitigationMeasures: append([]string{}, a.Mitigations...),
			ApprovalRequired:   a.ApprovalRequired,
			Approver:           a.Approver,
			ApprovalDate:       a.ApprovedAt,
		})
	}

	sort.Slice(violations, func(i, j int) bool {
		if !violations[i].ReportedAt.Equal(violations[j].ReportedAt) {
			return violations[i].ReportedAt.Before(violations[j].ReportedAt)
		}
		return violations[i].ID.String() < violations[j].ID.String()
	})
	for _, v := range violations {
		report.SafetyViolations = append(report.SafetyViolations, Violation{
			ViolationID:     v.ID.String(),
			ParticipantID:   v.ParticipantID.String(),
			ViolationType:   v.ViolationType,
			Description:     v.Description,
			Severity:        v.Severity,
			ReportedDate:    v.ReportedAt,
			ResolvedDate:    v.ResolvedAt,
			ResolutionNotes: v.ResolutionNotes,
		})
	}

	span.SetAttributes(
		tracer.Bool(tracer.AttrIsSafe, validation.IsSafe),
		tracer.Int64(tracer.AttrAssessmentCount, int64(len(report.SafetyAssessments))),
	)
	span.End(nil)

	e.logger.Info("campaign report exported",
		"campaign_id", campaignID.String(),
		"consent_records", len(report.ConsentRecords),
		"assessments", len(report.SafetyAssessments),
		"violations", len(report.SafetyViolations),
		"is_safe", validation.IsSafe)

	return report, nil
}
