package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"aegis/internal/audit"
	"aegis/internal/consent/metrics"
	"aegis/internal/consent/models"
	"aegis/internal/consent/store"
	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/platform/middleware/requesttime"
	"aegis/pkg/platform/sentinel"
)

// defaultConsentTTL implements the renewal policy: consent must be renewed at
// least annually.
const defaultConsentTTL = 365 * 24 * time.Hour

// RequestConsent carries the inputs for creating a pending consent record.
type RequestConsent struct {
	ParticipantID   id.ParticipantID
	ParticipantName string
	CampaignID      id.CampaignID
	ConsentType     string
	Method          models.Method
	Witness         string
}

// Ledger owns the consent record lifecycle for every (participant, campaign)
// pair and enforces the transition rules.
type Ledger struct {
	store      store.Store
	auditor    *audit.Publisher
	metrics    *metrics.Metrics
	logger     *slog.Logger
	consentTTL time.Duration
}

type Option func(*Ledger)

// WithMetrics sets the metrics instance for the ledger.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Ledger) {
		l.metrics = m
	}
}

// WithConsentTTL configures the time-to-live duration for granted consents.
// If not set or set to zero/negative, defaults to 1 year.
func WithConsentTTL(ttl time.Duration) Option {
	return func(l *Ledger) {
		if ttl > 0 {
			l.consentTTL = ttl
		}
	}
}

func NewLedger(store store.Store, auditor *audit.Publisher, logger *slog.Logger, opts ...Option) *Ledger {
	l := &Ledger{
		store:      store,
		auditor:    auditor,
		logger:     logger,
		consentTTL: defaultConsentTTL,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.consentTTL <= 0 {
		l.consentTTL = defaultConsentTTL
	}
	return l
}

// Request creates a pending consent record and returns its identifier.
// It never fails except on malformed identifiers.
func (l *Ledger) Request(ctx context.Context, req RequestConsent) (id.ConsentID, error) {
	now := requesttime.Now(ctx)
	expiry := now.Add(l.consentTTL)

	record, err := models.NewRecord(id.NewConsentID(), req.ParticipantID, req.ParticipantName,
		req.CampaignID, req.ConsentType, req.Method, req.Witness, now, &expiry)
	if err != nil {
		return id.ConsentID{}, err
	}
	if err := l.store.Save(ctx, record); err != nil {
		return id.ConsentID{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save consent")
	}

	l.emitAudit(ctx, audit.Event{
		CampaignID:    req.CampaignID,
		ParticipantID: req.ParticipantID,
		Subject:       record.ID.String(),
		Action:        audit.ActionConsentRequested,
		Decision:      audit.DecisionRecorded,
		Reason:        req.ConsentType,
		Timestamp:     now,
	})
	if l.metrics != nil {
		l.metrics.IncrementConsentsRequested(req.ConsentType)
	}
	return record.ID, nil
}

// Grant transitions a pending record into Granted. Returns false without an
// error when the record is absent or already decided; orchestration code
// polls this result rather than branching on exceptions.
func (l *Ledger) Grant(ctx context.Context, consentID id.ConsentID, witness, fingerprint string) (bool, error) {
	start := time.Now()
	defer func() {
		if l.metrics != nil {
			l.metrics.ObserveGrantLatency(time.Since(start).Seconds())
		}
	}()

	now := requesttime.Now(ctx)
	record, err := l.store.Grant(ctx, consentID, now, witness, fingerprint)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) || errors.Is(err, sentinel.ErrInvalidState) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to grant consent")
	}

	l.emitAudit(ctx, audit.Event{
		CampaignID:    record.CampaignID,
		ParticipantID: record.ParticipantID,
		Subject:       record.ID.String(),
		Action:        audit.ActionConsentGranted,
		Decision:      audit.DecisionGranted,
		Timestamp:     now,
	})
	if l.metrics != nil {
		l.metrics.IncrementConsentsGranted(record.ConsentType)
	}
	return true, nil
}

// Revoke transitions a pending or granted record into Revoked, storing the
// reason in the record notes. Same boolean no-op contract as Grant.
func (l *Ledger) Revoke(ctx context.Context, consentID id.ConsentID, reason string) (bool, error) {
	now := requesttime.Now(ctx)
	record, err := l.store.Revoke(ctx, consentID, now, reason)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) || errors.Is(err, sentinel.ErrInvalidState) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke consent")
	}

	l.emitAudit(ctx, audit.Event{
		CampaignID:    record.CampaignID,
		ParticipantID: record.ParticipantID,
		Subject:       record.ID.String(),
		Action:        audit.ActionConsentRevoked,
		Decision:      audit.DecisionRevoked,
		Reason:        reason,
		Timestamp:     now,
	})
	if l.metrics != nil {
		l.metrics.IncrementConsentsRevoked(record.ConsentType)
	}
	return true, nil
}

// CheckStatus answers the single gating question: is this participant
// currently covered by at least one effective consent for this campaign?
// It collapses pending, revoked and expired records into StatusDenied;
// callers needing the distinction must inspect raw records via List.
func (l *Ledger) CheckStatus(ctx context.Context, participantID id.ParticipantID, campaignID id.CampaignID) (models.Status, error) {
	if participantID.IsNil() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "participant ID cannot be empty")
	}
	if campaignID.IsNil() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "campaign ID cannot be empty")
	}

	records, err := l.store.ListByParticipant(ctx, participantID, campaignID)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to read consents")
	}

	now := requesttime.Now(ctx)
	for _, record := range records {
		if record.IsEffective(now) {
			l.emitAudit(ctx, audit.Event{
				CampaignID:    campaignID,
				ParticipantID: participantID,
				Subject:       record.ID.String(),
				Action:        audit.ActionConsentCheckPassed,
				Decision:      audit.DecisionGranted,
				Timestamp:     now,
			})
			if l.metrics != nil {
				l.metrics.IncrementConsentCheckPassed()
			}
			return models.StatusGranted, nil
		}
	}

	l.emitAudit(ctx, audit.Event{
		CampaignID:    campaignID,
		ParticipantID: participantID,
		Action:        audit.ActionConsentCheckFailed,
		Decision:      audit.DecisionDenied,
		Timestamp:     now,
	})
	if l.logger != nil {
		l.logger.WarnContext(ctx, "consent_check_failed",
			"participant_id", participantID.String(),
			"campaign_id", campaignID.String(),
		)
	}
	if l.metrics != nil {
		l.metrics.IncrementConsentCheckFailed()
	}
	return models.StatusDenied, nil
}

// List returns the raw records for a campaign, optionally filtered.
func (l *Ledger) List(ctx context.Context, campaignID id.CampaignID, filter *models.RecordFilter) ([]*models.Record, error) {
	if campaignID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "campaign ID cannot be empty")
	}
	records, err := l.store.ListByCampaign(ctx, campaignID, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list consents")
	}
	return records, nil
}

// Summary aggregates a campaign's consent records by derived status.
// Pure aggregation, no mutation.
func (l *Ledger) Summary(ctx context.Context, campaignID id.CampaignID) (*models.Summary, error) {
	records, err := l.List(ctx, campaignID, nil)
	if err != nil {
		return nil, err
	}

	now := requesttime.Now(ctx)
	summary := &models.Summary{TotalParticipants: len(records)}
	for _, record := range records {
		switch record.ComputeStatus(now) {
		case models.StatusGranted:
			summary.Granted++
		case models.StatusPending:
			summary.Pending++
		case models.StatusDenied:
			summary.Denied++
		case models.StatusRevoked:
			summary.Revoked++
		case models.StatusExpired:
			summary.Expired++
		}
	}
	return summary, nil
}

func (l *Ledger) emitAudit(ctx context.Context, event audit.Event) {
	if l.auditor == nil {
		return
	}
	_ = l.auditor.Emit(ctx, event)
}
