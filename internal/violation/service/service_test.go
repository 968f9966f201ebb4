package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aegis/internal/audit"
	"aegis/internal/platform/logger"
	"aegis/internal/risk"
	"aegis/internal/violation/store"
	id "aegis/pkg/domain"
	"aegis/pkg/platform/middleware/requesttime"
)

func newTestTracker() (*Tracker, *store.InMemoryStore) {
	violations := store.New()
	auditor := audit.NewPublisher(audit.NewInMemoryStore())
	return NewTracker(violations, auditor, logger.New()), violations
}

func TestReportAndResolve(t *testing.T) {
	tracker, violations := newTestTracker()
	now := time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC)
	ctx := requesttime.WithTime(context.Background(), now)
	campaignID := id.CampaignID("q2-awareness")

	violationID, err := tracker.Report(ctx, campaignID, id.ParticipantID("emp-200"),
		"unauthorized_scope", "called a participant outside the approved list", risk.LevelHigh)
	require.NoError(t, err)
	require.False(t, violationID.IsNil())

	stored, err := violations.FindByID(ctx, violationID)
	require.NoError(t, err)
	assert.True(t, stored.IsOpen())
	assert.Equal(t, now, stored.ReportedAt)
	assert.Equal(t, risk.LevelHigh, stored.Severity)

	resolveTime := now.Add(time.Hour)
	resolveCtx := requesttime.WithTime(context.Background(), resolveTime)
	updated, err := tracker.Resolve(resolveCtx, violationID, "participant debriefed")
	require.NoError(t, err)
	assert.True(t, updated)

	stored, err = violations.FindByID(ctx, violationID)
	require.NoError(t, err)
	assert.False(t, stored.IsOpen())
	require.NotNil(t, stored.ResolvedAt)
	assert.Equal(t, resolveTime, *stored.ResolvedAt)
	assert.Equal(t, "participant debriefed", stored.ResolutionNotes)
}

func TestReResolveOverwritesNotesOnly(t *testing.T) {
	tracker, violations := newTestTracker()
	now := time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC)
	ctx := requesttime.WithTime(context.Background(), now)

	violationID, err := tracker.Report(ctx, id.CampaignID("q2-awareness"), id.ParticipantID("emp-201"),
		"data_mishandling", "", risk.LevelMedium)
	require.NoError(t, err)

	firstResolve := requesttime.WithTime(context.Background(), now.Add(time.Hour))
	updated, err := tracker.Resolve(firstResolve, violationID, "initial notes")
	require.NoError(t, err)
	require.True(t, updated)

	secondResolve := requesttime.WithTime(context.Background(), now.Add(2*time.Hour))
	updated, err = tracker.Resolve(secondResolve, violationID, "corrected notes")
	require.NoError(t, err)
	assert.True(t, updated)

	stored, err := violations.FindByID(ctx, violationID)
	require.NoError(t, err)
	require.NotNil(t, stored.ResolvedAt)
	assert.Equal(t, now.Add(time.Hour), *stored.ResolvedAt, "first resolution timestamp stands")
	assert.Equal(t, "corrected notes", stored.ResolutionNotes)
}

func TestResolveUnknownViolation(t *testing.T) {
	tracker, _ := newTestTracker()
	ctx := context.Background()

	updated, err := tracker.Resolve(ctx, id.NewViolationID(), "nothing here")
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestReportRejectsInvalidSeverity(t *testing.T) {
	tracker, _ := newTestTracker()
	ctx := context.Background()

	_, err := tracker.Report(ctx, id.CampaignID("q2-awareness"), id.ParticipantID("emp-202"),
		"unauthorized_scope", "", risk.Level("extreme"))
	require.Error(t, err)
}
