// Package tracer provides a lightweight tracing abstraction for the
// governance engine.
//
// It defines an internal tracer interface that doesn't depend directly on
// OpenTelemetry APIs, so the verdict and report paths can emit spans while
// remaining decoupled from specific tracing implementations.
//
// Implementations:
//   - NoopTracer: for tests (zero overhead)
//   - OTelTracer: OpenTelemetry adapter for production
package tracer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span, recording any error that occurred.
	// End must be called exactly once, typically via defer.
	End(err error)

	// SetAttributes adds key-value pairs to the span.
	SetAttributes(attrs ...Attribute)

	// AddEvent records a timestamped event within the span.
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a new span with the given name and attributes.
	// The returned context contains the new span and should be passed to
	// child operations. The span must be ended by calling Span.End().
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

// String creates a string attribute.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Bool creates a boolean attribute.
func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int64 creates an int64 attribute.
func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// HashParticipantID returns a SHA-256 hash of a participant ID for safe
// correlation in traces without exposing the raw identifier.
func HashParticipantID(participantID string) string {
	if participantID == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(participantID))
	return hex.EncodeToString(hash[:8])
}

// Span names used by the engine.
const (
	SpanVerdictValidate = "verdict.validate"
	SpanVerdictGather   = "verdict.gather"
	SpanReportExport    = "report.export"
)

// Attribute keys used by the engine.
const (
	AttrCampaignID        = "campaign_id"
	AttrRiskLevel         = "risk_level"
	AttrIsSafe            = "is_safe"
	AttrAssessmentCount   = "assessment_count"
	AttrOpenViolations    = "open_violations"
	AttrRequiredApprovals = "required_approvals"
)
