package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aegis/internal/consent/models"
	id "aegis/pkg/domain"
	"aegis/pkg/platform/sentinel"
)

func newTestRecord(t *testing.T, campaignID id.CampaignID, participant string, now time.Time) *models.Record {
	t.Helper()
	expiry := now.Add(24 * time.Hour)
	record, err := models.NewRecord(id.NewConsentID(), id.ParticipantID(participant), "Test Participant",
		campaignID, "phishing_simulation", models.MethodEmail, "", now, &expiry)
	require.NoError(t, err)
	return record
}

func TestInMemoryStoreLifecycle(t *testing.T) {
	store := New()
	ctx := context.Background()
	now := time.Now()
	campaignID := id.CampaignID("campaign-1")

	// Save and find
	record := newTestRecord(t, campaignID, "emp-001", now)
	require.NoError(t, store.Save(ctx, record))

	fetched, err := store.FindByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, fetched.ID)
	assert.Equal(t, models.StatusPending, fetched.Status)

	// Grant
	grantTime := now.Add(time.Minute)
	granted, err := store.Grant(ctx, record.ID, grantTime, "supervisor", "fp-abc")
	require.NoError(t, err)
	assert.Equal(t, models.StatusGranted, granted.Status)
	require.NotNil(t, granted.GrantedAt)
	assert.Equal(t, grantTime, *granted.GrantedAt)
	assert.Equal(t, "supervisor", granted.Witness)
	assert.Equal(t, "fp-abc", granted.Fingerprint)

	// Double grant is an invalid transition
	_, err = store.Grant(ctx, record.ID, grantTime, "", "")
	require.ErrorIs(t, err, sentinel.ErrInvalidState)

	// Revoke after grant
	revokeTime := now.Add(2 * time.Minute)
	revoked, err := store.Revoke(ctx, record.ID, revokeTime, "changed my mind")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRevoked, revoked.Status)
	require.NotNil(t, revoked.RevokedAt)
	assert.Equal(t, "changed my mind", revoked.Notes)

	// Revoking a revoked record is an invalid transition
	_, err = store.Revoke(ctx, record.ID, revokeTime, "again")
	require.ErrorIs(t, err, sentinel.ErrInvalidState)

	// Unknown ids surface the sentinel
	_, err = store.FindByID(ctx, id.NewConsentID())
	require.ErrorIs(t, err, sentinel.ErrNotFound)
	_, err = store.Grant(ctx, id.NewConsentID(), grantTime, "", "")
	require.ErrorIs(t, err, sentinel.ErrNotFound)
	_, err = store.Revoke(ctx, id.NewConsentID(), revokeTime, "")
	require.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestInMemoryStoreCopyIntegrity(t *testing.T) {
	store := New()
	ctx := context.Background()
	now := time.Now()
	campaignID := id.CampaignID("campaign-copy")

	record := newTestRecord(t, campaignID, "emp-002", now)
	require.NoError(t, store.Save(ctx, record))

	// Mutating the caller's struct after Save must not leak into the store
	record.ParticipantName = "Mutated"
	fetched, err := store.FindByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Participant", fetched.ParticipantName)

	// Mutating a fetched copy must not leak either
	fetched.Status = models.StatusDenied
	again, err := store.FindByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, again.Status)
}

func TestInMemoryStoreListByCampaign(t *testing.T) {
	store := New()
	ctx := context.Background()
	now := time.Now()
	campaignID := id.CampaignID("campaign-list")

	first := newTestRecord(t, campaignID, "emp-010", now)
	second := newTestRecord(t, campaignID, "emp-011", now)
	other := newTestRecord(t, id.CampaignID("campaign-other"), "emp-012", now)
	require.NoError(t, store.Save(ctx, first))
	require.NoError(t, store.Save(ctx, second))
	require.NoError(t, store.Save(ctx, other))

	_, err := store.Grant(ctx, first.ID, now, "", "")
	require.NoError(t, err)

	all, err := store.ListByCampaign(ctx, campaignID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	grantedStatus := models.StatusGranted
	granted, err := store.ListByCampaign(ctx, campaignID, &models.RecordFilter{Status: &grantedStatus})
	require.NoError(t, err)
	require.Len(t, granted, 1)
	assert.Equal(t, first.ID, granted[0].ID)

	consentType := "phishing_simulation"
	byType, err := store.ListByCampaign(ctx, campaignID, &models.RecordFilter{ConsentType: &consentType})
	require.NoError(t, err)
	assert.Len(t, byType, 2)

	missing := "tailgating_test"
	none, err := store.ListByCampaign(ctx, campaignID, &models.RecordFilter{ConsentType: &missing})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestInMemoryStoreListByParticipant(t *testing.T) {
	store := New()
	ctx := context.Background()
	now := time.Now()
	campaignID := id.CampaignID("campaign-participant")

	record := newTestRecord(t, campaignID, "emp-020", now)
	require.NoError(t, store.Save(ctx, record))

	matched, err := store.ListByParticipant(ctx, record.ParticipantID, campaignID)
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, record.ID, matched[0].ID)

	empty, err := store.ListByParticipant(ctx, id.ParticipantID("emp-999"), campaignID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
