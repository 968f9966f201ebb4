package verdict

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assessmentmodels "aegis/internal/assessment/models"
	"aegis/internal/risk"
	violationmodels "aegis/internal/violation/models"
	id "aegis/pkg/domain"
)

var testCampaign = id.CampaignID("q3-awareness")

func makeAssessment(t *testing.T, factors []string, at time.Time) *assessmentmodels.Assessment {
	t.Helper()
	assessment, err := assessmentmodels.New(id.NewAssessmentID(), testCampaign, "test_activity", factors, at)
	require.NoError(t, err)
	return assessment
}

func makeViolation(t *testing.T, violationType string, at time.Time, resolved bool) *violationmodels.Violation {
	t.Helper()
	violation, err := violationmodels.New(id.NewViolationID(), testCampaign, id.ParticipantID("emp-300"),
		violationType, "", risk.LevelMedium, at)
	require.NoError(t, err)
	if resolved {
		resolvedAt := at.Add(time.Hour)
		violation.ResolvedAt = &resolvedAt
	}
	return violation
}

func TestBuildEmptyCampaignIsUnsafe(t *testing.T) {
	v := Build(testCampaign, nil, nil)

	assert.False(t, v.IsSafe)
	assert.Equal(t, []string{IssueNoAssessment}, v.SafetyIssues)
	assert.Equal(t, risk.LevelLow, v.RiskLevel)
	assert.Empty(t, v.RequiredApprovals)
	assert.Empty(t, v.Recommendations)
}

func TestBuildLowRiskAssessedCampaignIsSafe(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	assessments := []*assessmentmodels.Assessment{makeAssessment(t, nil, now)}

	v := Build(testCampaign, assessments, nil)

	assert.True(t, v.IsSafe)
	assert.Empty(t, v.SafetyIssues)
	assert.Equal(t, risk.LevelLow, v.RiskLevel)
	assert.Empty(t, v.Recommendations)
}

func TestBuildPendingApprovalBlocks(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	assessment := makeAssessment(t, []string{risk.FactorRemoteAccessRequests}, now)
	require.True(t, assessment.ApprovalRequired)

	v := Build(testCampaign, []*assessmentmodels.Assessment{assessment}, nil)

	assert.False(t, v.IsSafe)
	assert.Equal(t, []string{assessment.ID.String()}, v.RequiredApprovals)
	assert.Equal(t, risk.LevelHigh, v.RiskLevel)
	assert.Contains(t, v.Recommendations, RecommendAdditionalMeasures)
	assert.Contains(t, v.Recommendations, RecommendObtainApprovals)
}

func TestBuildApprovedAssessmentUnblocks(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	assessment := makeAssessment(t, []string{risk.FactorRemoteAccessRequests}, now)
	approvedAt := now.Add(time.Hour)
	assessment.Approver = "sec-lead"
	assessment.ApprovedAt = &approvedAt

	v := Build(testCampaign, []*assessmentmodels.Assessment{assessment}, nil)

	assert.True(t, v.IsSafe)
	assert.Empty(t, v.RequiredApprovals)
	assert.Equal(t, risk.LevelHigh, v.RiskLevel)
	// The risk level recommendation survives approval.
	assert.Equal(t, []string{RecommendAdditionalMeasures}, v.Recommendations)
}

func TestBuildOpenViolationBlocks(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	assessments := []*assessmentmodels.Assessment{makeAssessment(t, nil, now)}
	violations := []*violationmodels.Violation{
		makeViolation(t, "unauthorized_scope", now, false),
		makeViolation(t, "data_mishandling", now.Add(time.Minute), true),
	}

	v := Build(testCampaign, assessments, violations)

	assert.False(t, v.IsSafe)
	assert.Equal(t, []string{UnresolvedIssue("unauthorized_scope")}, v.SafetyIssues)
}

func TestBuildRiskLevelIsMaximum(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	assessments := []*assessmentmodels.Assessment{
		makeAssessment(t, nil, now),
		makeAssessment(t, []string{risk.FactorEmailSimulations}, now.Add(time.Minute)),
		makeAssessment(t, []string{risk.FactorSensitiveData, risk.FactorFinancialTransactions}, now.Add(2*time.Minute)),
	}

	v := Build(testCampaign, assessments, nil)

	assert.Equal(t, risk.LevelCritical, v.RiskLevel)
	assert.Contains(t, v.Recommendations, RecommendPostpone)
}

func TestBuildIsReproducible(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	a1 := makeAssessment(t, []string{risk.FactorPhysicalBreach}, now)
	a2 := makeAssessment(t, []string{risk.FactorGroupActivities}, now.Add(time.Minute))
	v1 := makeViolation(t, "unauthorized_scope", now, false)
	v2 := makeViolation(t, "off_hours_contact", now.Add(time.Minute), false)

	first := Build(testCampaign,
		[]*assessmentmodels.Assessment{a1, a2},
		[]*violationmodels.Violation{v1, v2})
	second := Build(testCampaign,
		[]*assessmentmodels.Assessment{a2, a1},
		[]*violationmodels.Violation{v2, v1})

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON, "input order must not leak into the verdict")
}

func TestVerdictJSONShape(t *testing.T) {
	v := Build(testCampaign, nil, nil)

	raw, err := json.Marshal(v)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "q3-awareness", doc["campaign_id"])
	assert.Equal(t, false, doc["is_safe"])
	assert.Equal(t, "low", doc["risk_level"])
	// Empty collections serialize as [] rather than null.
	assert.NotNil(t, doc["required_approvals"])
	assert.IsType(t, []any{}, doc["required_approvals"])
	assert.IsType(t, []any{}, doc["recommendations"])
}
