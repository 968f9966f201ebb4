package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	approvalservice "aegis/internal/approval/service"
	approvalstore "aegis/internal/approval/store"
	assessmentservice "aegis/internal/assessment/service"
	assessmentstore "aegis/internal/assessment/store"
	"aegis/internal/audit"
	consentdevice "aegis/internal/consent/device"
	consenthandler "aegis/internal/consent/handler"
	consentmetrics "aegis/internal/consent/metrics"
	consentservice "aegis/internal/consent/service"
	consentstore "aegis/internal/consent/store"
	"aegis/internal/opstoken"
	"aegis/internal/platform/config"
	"aegis/internal/platform/logger"
	"aegis/internal/platform/tracer"
	"aegis/internal/report"
	safetyhandler "aegis/internal/safety/handler"
	safetymetrics "aegis/internal/safety/metrics"
	"aegis/internal/verdict"
	violationservice "aegis/internal/violation/service"
	violationstore "aegis/internal/violation/store"
	"aegis/pkg/platform/middleware/operator"
	"aegis/pkg/platform/middleware/requesttime"
)

const tokenIssuer = "aegis"

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing aegis governance engine",
		"addr", cfg.Addr,
		"consent_ttl", cfg.ConsentTTL.String(),
	)

	auditor := audit.NewPublisher(audit.NewInMemoryStore(),
		audit.WithAsyncBuffer(cfg.AuditBufferLen),
		audit.WithPublisherLogger(log),
	)
	defer auditor.Close()

	cMetrics := consentmetrics.New()
	sMetrics := safetymetrics.New()
	trace := tracer.NewOTel()

	consents := consentservice.NewLedger(consentstore.New(), auditor, log,
		consentservice.WithMetrics(cMetrics),
		consentservice.WithConsentTTL(cfg.ConsentTTL),
	)
	devices := consentdevice.NewService(true)

	assessments := assessmentstore.New()
	approvals := approvalservice.NewWorkflow(approvalstore.New(), assessments, auditor, log,
		approvalservice.WithMetrics(sMetrics))
	registry := assessmentservice.NewRegistry(assessments, approvals, auditor, log,
		assessmentservice.WithMetrics(sMetrics))

	violations := violationstore.New()
	tracker := violationservice.NewTracker(violations, auditor, log,
		violationservice.WithMetrics(sMetrics))

	validator := verdict.NewValidator(assessments, violations,
		verdict.WithMetrics(sMetrics),
		verdict.WithTracer(trace),
	)
	exporter := report.NewExporter(consents, assessments, violations, validator,
		report.WithTracer(trace),
		report.WithLogger(log),
	)

	tokens := opstoken.NewService(cfg.JWTSigningKey, tokenIssuer, cfg.TokenTTL)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(requesttime.Middleware)

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	consenthandler.New(consents, devices, log).Register(router)

	router.Group(func(r chi.Router) {
		r.Use(operator.Require(tokens, log))
		safetyhandler.New(registry, approvals, tracker, validator, exporter,
			cfg.ExportKeyHash, log).Register(r)
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
