// Package verdict computes the deterministic go/no-go judgment for a
// campaign from its assessments, approvals and violations.
package verdict

import (
	"aegis/internal/risk"
	id "aegis/pkg/domain"
)

// Verdict is the on-demand aggregate judgment for one campaign. It is derived,
// never stored: calling Validate twice without mutation in between yields
// identical output.
type Verdict struct {
	CampaignID        id.CampaignID `json:"campaign_id"`
	IsSafe            bool          `json:"is_safe"`
	SafetyIssues      []string      `json:"safety_issues"`
	RequiredApprovals []string      `json:"required_approvals"`
	RiskLevel         risk.Level    `json:"risk_level"`
	Recommendations   []string      `json:"recommendations"`
}

// Issue and recommendation strings are a stable contract; compliance tooling
// matches on them.
const (
	IssueNoAssessment            = "No safety assessment conducted"
	issueUnresolvedPrefix        = "Unresolved violation: "
	RecommendPostpone            = "Consider postponing campaign until risks are mitigated"
	RecommendAdditionalMeasures  = "Implement additional safety measures"
	RecommendObtainApprovals     = "Obtain required approvals before proceeding"
)

// UnresolvedIssue formats the safety issue for one open violation.
func UnresolvedIssue(violationType string) string {
	return issueUnresolvedPrefix + violationType
}
