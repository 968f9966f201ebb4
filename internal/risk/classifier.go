// Package risk classifies activity risk factors into safety levels and
// derives the mitigation measures each classification demands. Everything in
// this package is a pure function: same factors in, same answer out.
package risk

// Recognized high-risk factor tags.
const (
	FactorExternalParticipants  = "external_participants"
	FactorSensitiveData         = "sensitive_data_involved"
	FactorAuthorityImpersonation = "high_authority_impersonation"
	FactorFinancialTransactions = "financial_transactions"
	FactorRemoteAccessRequests  = "remote_access_requests"
	FactorPhysicalBreach        = "physical_security_breach"
)

// Recognized medium-risk factor tags.
const (
	FactorPhoneCommunications = "phone_communications"
	FactorEmailSimulations    = "email_simulations"
	FactorGroupActivities     = "group_activities"
	FactorDataCollection      = "data_collection"
	FactorBehavioralAnalysis  = "behavioral_analysis"
)

// highRiskFactors in the fixed order mitigation blocks are emitted.
var highRiskFactors = []string{
	FactorExternalParticipants,
	FactorSensitiveData,
	FactorAuthorityImpersonation,
	FactorFinancialTransactions,
	FactorRemoteAccessRequests,
	FactorPhysicalBreach,
}

var mediumRiskFactors = map[string]bool{
	FactorPhoneCommunications: true,
	FactorEmailSimulations:    true,
	FactorGroupActivities:     true,
	FactorDataCollection:      true,
	FactorBehavioralAnalysis:  true,
}

var highRiskSet = func() map[string]bool {
	set := make(map[string]bool, len(highRiskFactors))
	for _, f := range highRiskFactors {
		set[f] = true
	}
	return set
}()

// Classify maps a set of risk-factor tags to a safety level.
// Duplicate tags count once. Unrecognized tags count toward neither bucket;
// unknown risk deliberately scores low rather than high, so a typo in a tag
// never silently blocks a campaign.
//
// Rule chain, evaluated in this exact order:
//  1. two or more high-risk factors -> Critical
//  2. any high-risk factor, or three or more medium-risk factors -> High
//  3. any medium-risk factor -> Medium
//  4. otherwise -> Low
func Classify(riskFactors []string) Level {
	seen := make(map[string]bool, len(riskFactors))
	highCount, mediumCount := 0, 0
	for _, factor := range riskFactors {
		if seen[factor] {
			continue
		}
		seen[factor] = true
		switch {
		case highRiskSet[factor]:
			highCount++
		case mediumRiskFactors[factor]:
			mediumCount++
		}
	}

	switch {
	case highCount >= 2:
		return LevelCritical
	case highCount >= 1 || mediumCount >= 3:
		return LevelHigh
	case mediumCount >= 1:
		return LevelMedium
	default:
		return LevelLow
	}
}

// ApprovalRequired reports whether the level gates activity behind a human
// decision.
func ApprovalRequired(level Level) bool {
	return level == LevelHigh || level == LevelCritical
}

// baselineMeasures apply to every assessment regardless of level.
var baselineMeasures = []string{
	"Clear opt-out mechanisms provided",
	"Participant consent documented",
	"Activity clearly identified as simulation",
	"Escalation procedures established",
}

// factorMeasures holds the fixed mitigation block per recognized high-risk tag.
var factorMeasures = map[string][]string{
	FactorExternalParticipants: {
		"Additional consent verification required",
		"External participant briefing conducted",
		"Legal team approval obtained",
	},
	FactorSensitiveData: {
		"Data anonymization implemented",
		"Data protection protocols followed",
		"Privacy impact assessment completed",
	},
	FactorAuthorityImpersonation: {
		"Authority verification procedures established",
		"Management approval obtained",
		"Clear boundaries defined for impersonation",
	},
	FactorFinancialTransactions: {
		"No actual financial transactions allowed",
		"Simulation clearly identified",
		"Financial team approval obtained",
	},
	FactorRemoteAccessRequests: {
		"No actual remote access granted",
		"Simulation environment used",
		"IT security team approval obtained",
	},
	FactorPhysicalBreach: {
		"Controlled environment only",
		"Physical security team approval obtained",
		"No actual security vulnerabilities created",
	},
}

var criticalMeasures = []string{
	"Executive approval required",
	"Legal team review completed",
	"Risk management team approval obtained",
	"Enhanced monitoring implemented",
}

var highMeasures = []string{
	"Security team approval required",
	"Enhanced consent verification",
	"Additional monitoring implemented",
}

// DeriveMitigations returns the ordered mitigation list for the given factors
// and level: baseline measures first, then one fixed block per recognized
// high-risk tag (in the fixed factor order, not input order), then
// level-specific measures. The order is stable across calls for the same
// input set.
func DeriveMitigations(riskFactors []string, level Level) []string {
	present := make(map[string]bool, len(riskFactors))
	for _, factor := range riskFactors {
		present[factor] = true
	}

	measures := make([]string, 0, len(baselineMeasures))
	measures = append(measures, baselineMeasures...)

	for _, factor := range highRiskFactors {
		if present[factor] {
			measures = append(measures, factorMeasures[factor]...)
		}
	}

	switch level {
	case LevelCritical:
		measures = append(measures, criticalMeasures...)
	case LevelHigh:
		measures = append(measures, highMeasures...)
	}

	return measures
}
