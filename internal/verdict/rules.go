package verdict

import (
	"sort"

	assessmentmodels "aegis/internal/assessment/models"
	"aegis/internal/risk"
	violationmodels "aegis/internal/violation/models"
	id "aegis/pkg/domain"
)

// Build applies the verdict rules to a campaign's gathered records.
// Pure and reproducible: inputs are sorted internally so map-ordered stores
// cannot leak nondeterminism into the output.
//
// Rule chain:
//  1. no assessments at all is itself a safety issue
//  2. every assessment still awaiting a required approval blocks the campaign
//  3. risk level is the maximum across assessments (Low when there are none)
//  4. every open violation blocks the campaign
//  5. recommendations derive from the final level and pending approvals
func Build(campaignID id.CampaignID, assessments []*assessmentmodels.Assessment, violations []*violationmodels.Violation) *Verdict {
	sortAssessments(assessments)
	sortViolations(violations)

	v := &Verdict{
		CampaignID:        campaignID,
		IsSafe:            true,
		SafetyIssues:      []string{},
		RequiredApprovals: []string{},
		RiskLevel:         risk.LevelLow,
		Recommendations:   []string{},
	}

	if len(assessments) == 0 {
		v.SafetyIssues = append(v.SafetyIssues, IssueNoAssessment)
		v.IsSafe = false
	}

	for _, assessment := range assessments {
		if assessment.NeedsApproval() {
			v.RequiredApprovals = append(v.RequiredApprovals, assessment.ID.String())
			v.IsSafe = false
		}
		v.RiskLevel = risk.Max(v.RiskLevel, assessment.Level)
	}

	for _, violation := range violations {
		if violation.IsOpen() {
			v.SafetyIssues = append(v.SafetyIssues, UnresolvedIssue(violation.ViolationType))
			v.IsSafe = false
		}
	}

	switch v.RiskLevel {
	case risk.LevelCritical:
		v.Recommendations = append(v.Recommendations, RecommendPostpone)
	case risk.LevelHigh:
		v.Recommendations = append(v.Recommendations, RecommendAdditionalMeasures)
	}
	if len(v.RequiredApprovals) > 0 {
		v.Recommendations = append(v.Recommendations, RecommendObtainApprovals)
	}

	return v
}

func sortAssessments(assessments []*assessmentmodels.Assessment) {
	sort.Slice(assessments, func(i, j int) bool {
		if !assessments[i].AssessedAt.Equal(assessments[j].AssessedAt) {
			return assessments[i].AssessedAt.Before(assessments[j].AssessedAt)
		}
		return assessments[i].ID.String() < assessments[j].ID.String()
	})
}

func sortViolations(violations []*violationmodels.Violation) {
	sort.Slice(violations, func(i, j int) bool {
		if !violations[i].ReportedAt.Equal(violations[j].ReportedAt) {
			return violations[i].ReportedAt.Before(violations[j].ReportedAt)
		}
		return violations[i].ID.String() < violations[j].ID.String()
	})
}
