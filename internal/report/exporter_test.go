package report

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	approvalservice "aegis/internal/approval/service"
	approvalstore "aegis/internal/approval/store"
	assessmentservice "aegis/internal/assessment/service"
	assessmentstore "aegis/internal/assessment/store"
	"aegis/internal/audit"
	consentmodels "aegis/internal/consent/models"
	consentservice "aegis/internal/consent/service"
	consentstore "aegis/internal/consent/store"
	"aegis/internal/platform/logger"
	"aegis/internal/risk"
	"aegis/internal/verdict"
	violationservice "aegis/internal/violation/service"
	violationstore "aegis/internal/violation/store"
	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/platform/middleware/requesttime"
)

// ExporterSuite drives one full campaign through every module and checks the
// exported document against the compliance contract.
type ExporterSuite struct {
	suite.Suite
	exporter   *Exporter
	consents   *consentservice.Ledger
	registry   *assessmentservice.Registry
	workflow   *approvalservice.Workflow
	tracker    *violationservice.Tracker
	ctx        context.Context
	now        time.Time
	campaignID id.CampaignID
}

func TestExporterSuite(t *testing.T) {
	suite.Run(t, new(ExporterSuite))
}

func (s *ExporterSuite) SetupTest() {
	log := logger.New()
	auditor := audit.NewPublisher(audit.NewInMemoryStore())

	s.consents = consentservice.NewLedger(consentstore.New(), auditor, log)

	assessments := assessmentstore.New()
	s.workflow = approvalservice.NewWorkflow(approvalstore.New(), assessments, auditor, log)
	s.registry = assessmentservice.NewRegistry(assessments, s.workflow, auditor, log)

	violations := violationstore.New()
	s.tracker = violationservice.NewTracker(violations, auditor, log)

	validator := verdict.NewValidator(assessments, violations)
	s.exporter = NewExporter(s.consents, assessments, violations, validator, WithLogger(log))

	s.now = time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)
	s.ctx = requesttime.WithTime(context.Background(), s.now)
	s.campaignID = id.CampaignID("q3-awareness")
}

func (s *ExporterSuite) TestExportEmptyCampaign() {
	doc, err := s.exporter.Export(s.ctx, s.campaignID)
	s.Require().NoError(err)

	s.Equal("q3-awareness", doc.CampaignID)
	s.Equal(s.now, doc.GeneratedAt)
	s.Require().NotNil(doc.SafetyValidation)
	s.False(doc.SafetyValidation.IsSafe)
	s.Require().NotNil(doc.ConsentSummary)
	s.Zero(doc.ConsentSummary.TotalParticipants)
	s.Empty(doc.ConsentRecords)
	s.Empty(doc.SafetyAssessments)
	s.Empty(doc.SafetyViolations)
	s.NotEmpty(doc.EthicalGuidelines)
}

func (s *ExporterSuite) TestExportRejectsEmptyCampaignID() {
	_, err := s.exporter.Export(s.ctx, id.CampaignID(""))
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *ExporterSuite) TestExportFullCampaign() {
	// One granted consent, one pending.
	grantedID, err := s.consents.Request(s.ctx, consentservice.RequestConsent{
		ParticipantID:   id.ParticipantID("emp-400"),
		ParticipantName: "Avery Chen",
		CampaignID:      s.campaignID,
		ConsentType:     "phishing_simulation",
		Method:          consentmodels.MethodForm,
	})
	s.Require().NoError(err)
	updated, err := s.consents.Grant(s.ctx, grantedID, "supervisor", "")
	s.Require().NoError(err)
	s.Require().True(updated)

	_, err = s.consents.Request(s.ctx, consentservice.RequestConsent{
		ParticipantID: id.ParticipantID("emp-401"),
		CampaignID:    s.campaignID,
		ConsentType:   "phishing_simulation",
	})
	s.Require().NoError(err)

	// One approved critical assessment.
	assessment, err := s.registry.Conduct(s.ctx, s.campaignID, "spearphish_wave",
		[]string{risk.FactorExternalParticipants, risk.FactorSensitiveData})
	s.Require().NoError(err)
	approvalID, required, err := s.registry.RequestApproval(s.ctx, assessment.ID, "sec-lead")
	s.Require().NoError(err)
	s.Require().True(required)
	updated, err = s.workflow.Approve(s.ctx, approvalID, "controls verified")
	s.Require().NoError(err)
	s.Require().True(updated)

	// One open violation.
	_, err = s.tracker.Report(s.ctx, s.campaignID, id.ParticipantID("emp-400"),
		"unauthorized_scope", "contacted finance team without approval", risk.LevelHigh)
	s.Require().NoError(err)

	doc, err := s.exporter.Export(s.ctx, s.campaignID)
	s.Require().NoError(err)

	s.Require().Len(doc.ConsentRecords, 2)
	s.Equal("emp-400", doc.ConsentRecords[0].ParticipantID)
	s.Equal(consentmodels.StatusGranted, doc.ConsentRecords[0].Status)
	s.Equal(consentmodels.StatusPending, doc.ConsentRecords[1].Status)

	s.Equal(2, doc.ConsentSummary.TotalParticipants)
	s.Equal(1, doc.ConsentSummary.Granted)
	s.Equal(1, doc.ConsentSummary.Pending)

	s.Require().Len(doc.SafetyAssessments, 1)
	s.Equal(risk.LevelCritical, doc.SafetyAssessments[0].SafetyLevel)
	s.Equal("sec-lead", doc.SafetyAssessments[0].Approver)
	s.Require().NotNil(doc.SafetyAssessments[0].ApprovalDate)

	s.Require().Len(doc.SafetyViolations, 1)
	s.True(doc.SafetyValidation.IsSafe == false, "open violation keeps the campaign blocked")
	s.Contains(doc.SafetyValidation.SafetyIssues, verdict.UnresolvedIssue("unauthorized_scope"))
	s.Empty(doc.SafetyValidation.RequiredApprovals)
}

func (s *ExporterSuite) TestExportJSONContract() {
	consentID, err := s.consents.Request(s.ctx, consentservice.RequestConsent{
		ParticipantID: id.ParticipantID("emp-410"),
		CampaignID:    s.campaignID,
		ConsentType:   "phishing_simulation",
	})
	s.Require().NoError(err)
	updated, err := s.consents.Grant(s.ctx, consentID, "", "")
	s.Require().NoError(err)
	s.Require().True(updated)

	_, err = s.registry.Conduct(s.ctx, s.campaignID, "email_wave",
		[]string{risk.FactorEmailSimulations})
	s.Require().NoError(err)

	doc, err := s.exporter.Export(s.ctx, s.campaignID)
	s.Require().NoError(err)

	raw, err := json.Marshal(doc)
	s.Require().NoError(err)

	var parsed map[string]any
	s.Require().NoError(json.Unmarshal(raw, &parsed))

	for _, key := range []string{"campaign_id", "generated_at", "safety_validation",
		"consent_summary", "consent_records", "safety_assessments",
		"safety_violations", "ethical_guidelines"} {
		s.Contains(parsed, key)
	}

	// Enum values are lowercase strings and timestamps are ISO-8601.
	records := parsed["consent_records"].([]any)
	s.Require().Len(records, 1)
	record := records[0].(map[string]any)
	s.Equal("granted", record["status"])
	grantedAt, ok := record["granted_date"].(string)
	s.Require().True(ok)
	_, err = time.Parse(time.RFC3339, grantedAt)
	s.NoError(err)

	assessments := parsed["safety_assessments"].([]any)
	s.Require().Len(assessments, 1)
	s.Equal("medium", assessments[0].(map[string]any)["safety_level"])

	validation := parsed["safety_validation"].(map[string]any)
	s.Equal("medium", validation["risk_level"])
	s.Equal(true, validation["is_safe"])

	// Exporting again without mutation yields an identical document.
	again, err := s.exporter.Export(s.ctx, s.campaignID)
	s.Require().NoError(err)
	rawAgain, err := json.Marshal(again)
	s.Require().NoError(err)
	s.Equal(raw, rawAgain)
}
