package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	assessmentmodels "aegis/internal/assessment/models"
	"aegis/internal/report"
	"aegis/internal/risk"
	"aegis/internal/verdict"
	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/platform/httputil"
	"aegis/pkg/platform/middleware/operator"
	"aegis/pkg/secrets"
)

// exportKeyHeader carries the shared export key for report downloads.
const exportKeyHeader = "X-Export-Key"

// Registry defines the interface for assessment operations.
type Registry interface {
	Conduct(ctx context.Context, campaignID id.CampaignID, activityType string, riskFactors []string) (*assessmentmodels.Assessment, error)
	RequestApproval(ctx context.Context, assessmentID id.AssessmentID, approver string) (id.ApprovalID, bool, error)
}

// Workflow defines the interface for approval decisions.
type Workflow interface {
	Approve(ctx context.Context, approvalID id.ApprovalID, notes string) (bool, error)
	Reject(ctx context.Context, approvalID id.ApprovalID, reason string) (bool, error)
}

// Tracker defines the interface for violation operations.
type Tracker interface {
	Report(ctx context.Context, campaignID id.CampaignID, participantID id.ParticipantID,
		violationType, description string, severity risk.Level) (id.ViolationID, error)
	Resolve(ctx context.Context, violationID id.ViolationID, notes string) (bool, error)
}

// Validator defines the interface for campaign verdicts.
type Validator interface {
	Validate(ctx context.Context, campaignID id.CampaignID) (*verdict.Verdict, error)
}

// Exporter defines the interface for campaign report exports.
type Exporter interface {
	Export(ctx context.Context, campaignID id.CampaignID) (*report.Report, error)
}

// Handler handles assessment, approval, violation, verdict and report
// endpoints.
type Handler struct {
	logger        *slog.Logger
	registry      Registry
	workflow      Workflow
	tracker       Tracker
	validator     Validator
	exporter      Exporter
	exportKeyHash string
}

// New creates a new safety Handler. exportKeyHash may be empty, which
// disables report downloads entirely.
func New(registry Registry, workflow Workflow, tracker Tracker, validator Validator,
	exporter Exporter, exportKeyHash string, logger *slog.Logger) *Handler {
	return &Handler{
		logger:        logger,
		registry:      registry,
		workflow:      workflow,
		tracker:       tracker,
		validator:     validator,
		exporter:      exporter,
		exportKeyHash: exportKeyHash,
	}
}

// Register registers the safety routes with the chi router. The router is
// expected to already carry the operator token middleware.
func (h *Handler) Register(r chi.Router) {
	r.Post("/campaigns/{campaignID}/assessments", h.handleAssess)
	r.Post("/assessments/{assessmentID}/approval-requests", h.handleRequestApproval)
	r.Post("/approvals/{approvalID}/approve", h.handleApprove)
	r.Post("/approvals/{approvalID}/reject", h.handleReject)
	r.Post("/campaigns/{campaignID}/violations", h.handleReportViolation)
	r.Post("/violations/{violationID}/resolve", h.handleResolveViolation)
	r.Get("/campaigns/{campaignID}/verdict", h.handleVerdict)
	r.Get("/campaigns/{campaignID}/report", h.handleReport)
}

func (h *Handler) handleAssess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	campaignID, err := id.ParseCampaignID(chi.URLParam(r, "campaignID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req AssessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode assessment request", "error", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	assessment, err := h.registry.Conduct(ctx, campaignID, req.ActivityType, req.RiskFactors)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to conduct assessment",
			"campaign_id", campaignID.String(), "error", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toAssessmentResponse(assessment))
}

func (h *Handler) handleRequestApproval(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	assessmentID, err := id.ParseAssessmentID(chi.URLParam(r, "assessmentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	approver := operator.FromContext(ctx)
	if approver == "" {
		h.logger.ErrorContext(ctx, "operator missing from context despite token middleware")
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}

	approvalID, required, err := h.registry.RequestApproval(ctx, assessmentID, approver)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to request approval",
			"assessment_id", assessmentID.String(), "error", err)
		httputil.WriteError(w, err)
		return
	}

	res := &ApprovalRequestResponse{ApprovalRequired: required}
	if required {
		res.ApprovalID = approvalID.String()
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.handleDecision(w, r, h.workflow.Approve, "approve")
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.handleDecision(w, r, h.workflow.Reject, "reject")
}

func (h *Handler) handleDecision(w http.ResponseWriter, r *http.Request,
	decide func(context.Context, id.ApprovalID, string) (bool, error), action string) {
	ctx := r.Context()

	approvalID, err := id.ParseApprovalID(chi.URLParam(r, "approvalID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode decision request", "error", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	updated, err := decide(ctx, approvalID, req.Notes)
	if err != nil {
		h.logger.ErrorContext(ctx, "approval decision failed",
			"approval_id", approvalID.String(), "action", action, "error", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &DecisionResponse{
		ApprovalID: approvalID.String(),
		Updated:    updated,
	})
}

func (h *Handler) handleReportViolation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	campaignID, err := id.ParseCampaignID(chi.URLParam(r, "campaignID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req ReportViolationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode violation report", "error", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	severity, err := req.ParseSeverity()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	participantID, err := id.ParseParticipantID(req.ParticipantID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	violationID, err := h.tracker.Report(ctx, campaignID, participantID,
		req.ViolationType, req.Description, severity)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to report violation",
			"campaign_id", campaignID.String(), "error", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, &ViolationResponse{
		ViolationID: violationID.String(),
		Severity:    severity,
	})
}

func (h *Handler) handleResolveViolation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	violationID, err := id.ParseViolationID(chi.URLParam(r, "violationID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode resolve request", "error", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	updated, err := h.tracker.Resolve(ctx, violationID, req.ResolutionNotes)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to resolve violation",
			"violation_id", violationID.String(), "error", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &ResolveResponse{
		ViolationID: violationID.String(),
		Updated:     updated,
	})
}

func (h *Handler) handleVerdict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	campaignID, err := id.ParseCampaignID(chi.URLParam(r, "campaignID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.validator.Validate(ctx, campaignID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to validate campaign",
			"campaign_id", campaignID.String(), "error", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	campaignID, err := id.ParseCampaignID(chi.URLParam(r, "campaignID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if h.exportKeyHash == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "report export is disabled"))
		return
	}
	if err := secrets.Verify(r.Header.Get(exportKeyHeader), h.exportKeyHash); err != nil {
		h.logger.WarnContext(ctx, "report export key rejected", "campaign_id", campaignID.String())
		httputil.WriteError(w, err)
		return
	}

	doc, err := h.exporter.Export(ctx, campaignID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to export campaign report",
			"campaign_id", campaignID.String(), "error", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, doc)
}
