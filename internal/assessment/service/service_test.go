package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	approvalservice "aegis/internal/approval/service"
	approvalstore "aegis/internal/approval/store"
	"aegis/internal/assessment/store"
	"aegis/internal/audit"
	"aegis/internal/platform/logger"
	"aegis/internal/risk"
	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/platform/middleware/requesttime"
)

// RegistrySuite exercises assessment creation and the approval bridge against
// the real workflow and in-memory stores.
type RegistrySuite struct {
	suite.Suite
	registry    *Registry
	workflow    *approvalservice.Workflow
	assessments *store.InMemoryStore
	ctx         context.Context
	now         time.Time
	campaignID  id.CampaignID
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	log := logger.New()
	auditor := audit.NewPublisher(audit.NewInMemoryStore())
	s.assessments = store.New()
	s.workflow = approvalservice.NewWorkflow(approvalstore.New(), s.assessments, auditor, log)
	s.registry = NewRegistry(s.assessments, s.workflow, auditor, log)
	s.now = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	s.ctx = requesttime.WithTime(context.Background(), s.now)
	s.campaignID = id.CampaignID("q2-awareness")
}

func (s *RegistrySuite) TestConductClassifies() {
	assessment, err := s.registry.Conduct(s.ctx, s.campaignID, "vishing_call",
		[]string{risk.FactorPhoneCommunications})
	s.Require().NoError(err)

	s.Equal(risk.LevelMedium, assessment.Level)
	s.False(assessment.ApprovalRequired)
	s.Equal(s.now, assessment.AssessedAt)
	s.NotEmpty(assessment.Mitigations)

	stored, err := s.registry.Get(s.ctx, assessment.ID)
	s.Require().NoError(err)
	s.Equal(assessment.Level, stored.Level)
}

func (s *RegistrySuite) TestConductRejectsEmptyActivity() {
	_, err := s.registry.Conduct(s.ctx, s.campaignID, "", nil)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *RegistrySuite) TestRequestApprovalBelowThreshold() {
	assessment, err := s.registry.Conduct(s.ctx, s.campaignID, "poster_campaign", nil)
	s.Require().NoError(err)
	s.Equal(risk.LevelLow, assessment.Level)

	approvalID, required, err := s.registry.RequestApproval(s.ctx, assessment.ID, "sec-lead")
	s.Require().NoError(err)
	s.False(required)
	s.True(approvalID.IsNil())
}

func (s *RegistrySuite) TestRequestApprovalUnknownAssessment() {
	_, _, err := s.registry.RequestApproval(s.ctx, id.NewAssessmentID(), "sec-lead")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *RegistrySuite) TestApproveWritesBackOnce() {
	assessment, err := s.registry.Conduct(s.ctx, s.campaignID, "ceo_fraud_drill",
		[]string{risk.FactorExternalParticipants, risk.FactorSensitiveData})
	s.Require().NoError(err)
	s.Equal(risk.LevelCritical, assessment.Level)
	s.True(assessment.ApprovalRequired)

	approvalID, required, err := s.registry.RequestApproval(s.ctx, assessment.ID, "sec-lead")
	s.Require().NoError(err)
	s.True(required)
	s.False(approvalID.IsNil())

	updated, err := s.workflow.Approve(s.ctx, approvalID, "controls verified")
	s.Require().NoError(err)
	s.True(updated)

	stored, err := s.registry.Get(s.ctx, assessment.ID)
	s.Require().NoError(err)
	s.True(stored.IsApproved())
	s.Equal("sec-lead", stored.Approver)
	s.Require().NotNil(stored.ApprovedAt)
	s.Equal(s.now, *stored.ApprovedAt)

	// Deciding the same request again is a no-op, not an error.
	updated, err = s.workflow.Approve(s.ctx, approvalID, "second attempt")
	s.Require().NoError(err)
	s.False(updated)
}

func (s *RegistrySuite) TestRejectLeavesAssessmentUnapproved() {
	assessment, err := s.registry.Conduct(s.ctx, s.campaignID, "badge_cloning_demo",
		[]string{risk.FactorPhysicalBreach})
	s.Require().NoError(err)

	approvalID, required, err := s.registry.RequestApproval(s.ctx, assessment.ID, "sec-lead")
	s.Require().NoError(err)
	s.True(required)

	updated, err := s.workflow.Reject(s.ctx, approvalID, "scope too broad")
	s.Require().NoError(err)
	s.True(updated)

	stored, err := s.registry.Get(s.ctx, assessment.ID)
	s.Require().NoError(err)
	s.False(stored.IsApproved())
	s.Nil(stored.ApprovedAt)
}

func (s *RegistrySuite) TestSecondApprovedRequestDoesNotOverwrite() {
	assessment, err := s.registry.Conduct(s.ctx, s.campaignID, "wire_fraud_drill",
		[]string{risk.FactorFinancialTransactions, risk.FactorRemoteAccessRequests})
	s.Require().NoError(err)

	firstID, _, err := s.registry.RequestApproval(s.ctx, assessment.ID, "first-approver")
	s.Require().NoError(err)
	secondID, _, err := s.registry.RequestApproval(s.ctx, assessment.ID, "second-approver")
	s.Require().NoError(err)

	updated, err := s.workflow.Approve(s.ctx, firstID, "")
	s.Require().NoError(err)
	s.True(updated)

	updated, err = s.workflow.Approve(s.ctx, secondID, "")
	s.Require().NoError(err)
	s.True(updated, "the second request still reaches its own terminal decision")

	stored, err := s.registry.Get(s.ctx, assessment.ID)
	s.Require().NoError(err)
	s.Equal("first-approver", stored.Approver, "approver fields are write-once")
}

func (s *RegistrySuite) TestApproveUnknownApproval() {
	updated, err := s.workflow.Approve(s.ctx, id.NewApprovalID(), "")
	s.Require().NoError(err)
	s.False(updated)
}
