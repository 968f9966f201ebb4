package risk

// Guidelines returns the fixed catalog of ethical guidelines embedded in
// exported safety reports. The catalog is advisory text for compliance
// reviewers; nothing in the engine branches on it.
func Guidelines() map[string][]string {
	return map[string][]string{
		"consent_requirements": {
			"Explicit consent must be obtained before any simulation activities",
			"Consent must be informed and specific to the activity type",
			"Participants must be able to withdraw consent at any time",
			"Consent must be documented and verifiable",
			"Consent must be renewed periodically (annually minimum)",
		},
		"harm_prevention": {
			"No actual harm or damage to participants or systems",
			"No collection of real passwords or sensitive information",
			"No psychological manipulation beyond educational purposes",
			"No targeting of vulnerable populations",
			"No activities that could cause embarrassment or humiliation",
		},
		"privacy_protection": {
			"Participant data must be anonymized when possible",
			"Personal information must be protected and secured",
			"Data collection must be limited to educational purposes",
			"Participants must be informed of data usage",
			"Data retention must follow company policies",
		},
		"transparency_requirements": {
			"All activities must be clearly identified as simulations",
			"Participants must understand the educational purpose",
			"Clear opt-out mechanisms must be provided",
			"Escalation procedures must be clearly communicated",
			"Results must be used only for educational purposes",
		},
		"approval_requirements": {
			"Security team approval required for all activities",
			"Legal team approval required for sensitive activities",
			"HR approval required for employee-targeted activities",
			"Management approval required for department-wide activities",
			"External activities require additional approvals",
		},
	}
}
