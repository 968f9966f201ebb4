package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		factors []string
		want    Level
	}{
		{
			name:    "no factors is low",
			factors: nil,
			want:    LevelLow,
		},
		{
			name:    "empty slice is low",
			factors: []string{},
			want:    LevelLow,
		},
		{
			name:    "single high factor is high",
			factors: []string{FactorRemoteAccessRequests},
			want:    LevelHigh,
		},
		{
			name:    "two high factors is critical",
			factors: []string{FactorRemoteAccessRequests, FactorFinancialTransactions},
			want:    LevelCritical,
		},
		{
			name:    "single medium factor is medium",
			factors: []string{FactorEmailSimulations},
			want:    LevelMedium,
		},
		{
			name:    "two medium factors is still medium",
			factors: []string{FactorEmailSimulations, FactorPhoneCommunications},
			want:    LevelMedium,
		},
		{
			name:    "three medium factors is high",
			factors: []string{FactorEmailSimulations, FactorPhoneCommunications, FactorDataCollection},
			want:    LevelHigh,
		},
		{
			name:    "duplicate high factor counts once",
			factors: []string{FactorSensitiveData, FactorSensitiveData},
			want:    LevelHigh,
		},
		{
			name:    "duplicate medium factors count once",
			factors: []string{FactorGroupActivities, FactorGroupActivities, FactorGroupActivities},
			want:    LevelMedium,
		},
		{
			name:    "unknown tags score low",
			factors: []string{"unknown_tag", "another_unknown"},
			want:    LevelLow,
		},
		{
			name:    "unknown tags do not raise a medium classification",
			factors: []string{FactorBehavioralAnalysis, "unknown_tag", "typo_factor"},
			want:    LevelMedium,
		},
		{
			name:    "high and mediums mixed stays high",
			factors: []string{FactorPhysicalBreach, FactorEmailSimulations, FactorPhoneCommunications, FactorDataCollection},
			want:    LevelHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.factors))
		})
	}
}

func TestApprovalRequired(t *testing.T) {
	assert.False(t, ApprovalRequired(LevelLow))
	assert.False(t, ApprovalRequired(LevelMedium))
	assert.True(t, ApprovalRequired(LevelHigh))
	assert.True(t, ApprovalRequired(LevelCritical))
}

func TestDeriveMitigationsBaseline(t *testing.T) {
	measures := DeriveMitigations(nil, LevelLow)

	require.Len(t, measures, 4)
	assert.Equal(t, "Clear opt-out mechanisms provided", measures[0])
	assert.Equal(t, "Participant consent documented", measures[1])
	assert.Equal(t, "Activity clearly identified as simulation", measures[2])
	assert.Equal(t, "Escalation procedures established", measures[3])
}

func TestDeriveMitigationsFactorBlocks(t *testing.T) {
	factors := []string{FactorSensitiveData, FactorExternalParticipants}
	level := Classify(factors)
	require.Equal(t, LevelCritical, level)

	measures := DeriveMitigations(factors, level)

	// Baseline, then factor blocks in fixed factor order regardless of input
	// order, then critical measures.
	assert.Equal(t, "Additional consent verification required", measures[4])
	assert.Equal(t, "Data anonymization implemented", measures[7])
	assert.Contains(t, measures, "Executive approval required")
	assert.Contains(t, measures, "Enhanced monitoring implemented")
	assert.NotContains(t, measures, "Security team approval required")
}

func TestDeriveMitigationsHighLevel(t *testing.T) {
	factors := []string{FactorRemoteAccessRequests}
	measures := DeriveMitigations(factors, Classify(factors))

	assert.Contains(t, measures, "No actual remote access granted")
	assert.Contains(t, measures, "Security team approval required")
	assert.NotContains(t, measures, "Executive approval required")
}

func TestDeriveMitigationsStableAcrossCalls(t *testing.T) {
	factors := []string{FactorPhysicalBreach, FactorFinancialTransactions, FactorEmailSimulations}
	level := Classify(factors)

	first := DeriveMitigations(factors, level)
	second := DeriveMitigations([]string{FactorEmailSimulations, FactorFinancialTransactions, FactorPhysicalBreach}, level)

	assert.Equal(t, first, second)
}

func TestGuidelinesCatalog(t *testing.T) {
	guidelines := Guidelines()

	require.NotEmpty(t, guidelines)
	for group, entries := range guidelines {
		assert.NotEmpty(t, entries, "group %q has no entries", group)
	}
}
