package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"aegis/internal/consent/device"
	"aegis/internal/consent/models"
	"aegis/internal/consent/service"
	id "aegis/pkg/domain"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/platform/httputil"
	"aegis/pkg/platform/middleware/requesttime"
)

// Service defines the interface for consent ledger operations.
type Service interface {
	Request(ctx context.Context, req service.RequestConsent) (id.ConsentID, error)
	Grant(ctx context.Context, consentID id.ConsentID, witness, fingerprint string) (bool, error)
	Revoke(ctx context.Context, consentID id.ConsentID, reason string) (bool, error)
	CheckStatus(ctx context.Context, participantID id.ParticipantID, campaignID id.CampaignID) (models.Status, error)
	List(ctx context.Context, campaignID id.CampaignID, filter *models.RecordFilter) ([]*models.Record, error)
	Summary(ctx context.Context, campaignID id.CampaignID) (*models.Summary, error)
}

// Handler handles consent-related endpoints.
type Handler struct {
	logger  *slog.Logger
	ledger  Service
	devices *device.Service
}

// New creates a new consent Handler.
func New(ledger Service, devices *device.Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		ledger:  ledger,
		devices: devices,
	}
}

// Register registers the consent routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/consents", h.handleCreate)
	r.Post("/consents/{consentID}/grant", h.handleGrant)
	r.Post("/consents/{consentID}/revoke", h.handleRevoke)
	r.Get("/campaigns/{campaignID}/consents", h.handleList)
	r.Get("/campaigns/{campaignID}/consents/summary", h.handleSummary)
	r.Get("/campaigns/{campaignID}/participants/{participantID}/consent", h.handleCheckStatus)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode consent create request", "error", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	participantID, err := id.ParseParticipantID(req.ParticipantID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	campaignID, err := id.ParseCampaignID(req.CampaignID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	consentID, err := h.ledger.Request(ctx, service.RequestConsent{
		ParticipantID:   participantID,
		ParticipantName: req.ParticipantName,
		CampaignID:      campaignID,
		ConsentType:     req.ConsentType,
		Method:          req.Method(),
		Witness:         req.Witness,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create consent record", "error", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, &CreateResponse{
		ConsentID: consentID.String(),
		Status:    models.StatusPending,
	})
}

func (h *Handler) handleGrant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	consentID, err := id.ParseConsentID(chi.URLParam(r, "consentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req GrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode consent grant request", "error", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	fingerprint := h.devices.ComputeFingerprint(r.UserAgent())

	updated, err := h.ledger.Grant(ctx, consentID, req.Witness, fingerprint)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to grant consent", "consent_id", consentID.String(), "error", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &UpdateResponse{
		ConsentID: consentID.String(),
		Updated:   updated,
	})
}

func (h *Handler) handleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	consentID, err := id.ParseConsentID(chi.URLParam(r, "consentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req RevokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode consent revoke request", "error", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	updated, err := h.ledger.Revoke(ctx, consentID, req.Reason)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to revoke consent", "consent_id", consentID.String(), "error", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &UpdateResponse{
		ConsentID: consentID.String(),
		Updated:   updated,
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	campaignID, err := id.ParseCampaignID(chi.URLParam(r, "campaignID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	filter, err := parseRecordFilter(r.URL.Query().Get("status"), r.URL.Query().Get("consent_type"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	records, err := h.ledger.List(ctx, campaignID, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list consents", "campaign_id", campaignID.String(), "error", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toListResponse(records, requesttime.Now(ctx)))
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	campaignID, err := id.ParseCampaignID(chi.URLParam(r, "campaignID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	summary, err := h.ledger.Summary(ctx, campaignID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to summarize consents", "campaign_id", campaignID.String(), "error", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) handleCheckStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	campaignID, err := id.ParseCampaignID(chi.URLParam(r, "campaignID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	participantID, err := id.ParseParticipantID(chi.URLParam(r, "participantID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	status, err := h.ledger.CheckStatus(ctx, participantID, campaignID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to check consent status",
			"campaign_id", campaignID.String(), "error", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, &StatusResponse{
		ParticipantID: participantID.String(),
		CampaignID:    campaignID.String(),
		Status:        status,
	})
}
