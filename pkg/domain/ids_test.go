package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConsentIDRoundTrip(t *testing.T) {
	original := NewConsentID()

	parsed, err := ParseConsentID(original.String())
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}

func TestParseRejectsMalformedUUIDs(t *testing.T) {
	_, err := ParseConsentID("not-a-uuid")
	assert.Error(t, err)
	_, err = ParseAssessmentID("")
	assert.Error(t, err)
	_, err = ParseApprovalID("12345")
	assert.Error(t, err)
	_, err = ParseViolationID("zzzz")
	assert.Error(t, err)
}

func TestOpaqueIDs(t *testing.T) {
	participant, err := ParseParticipantID("emp-001")
	require.NoError(t, err)
	assert.Equal(t, "emp-001", participant.String())
	assert.False(t, participant.IsNil())

	_, err = ParseParticipantID("")
	assert.Error(t, err)

	campaign, err := ParseCampaignID("q1-awareness")
	require.NoError(t, err)
	assert.False(t, campaign.IsNil())
	assert.True(t, CampaignID("").IsNil())
}

func TestIsNilOnZeroValues(t *testing.T) {
	assert.True(t, ConsentID{}.IsNil())
	assert.True(t, AssessmentID{}.IsNil())
	assert.False(t, NewApprovalID().IsNil())
}
