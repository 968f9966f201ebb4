// Package operator provides middleware that resolves the acting operator from
// a bearer token and stores the identity in the request context. Handlers that
// record human decisions (approvals, rejections, violation resolutions) read
// the operator from context rather than trusting a request body field.
package operator

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

// TokenValidator validates a bearer token and returns the operator identity.
type TokenValidator interface {
	Validate(tokenString string) (string, error)
}

type contextKeyOperator struct{}

// writeJSONError writes a JSON error response with the given status code and error details.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// Require returns middleware that validates the bearer token and populates
// the context with the operator identity.
func Require(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing operator token",
					"path", r.URL.Path,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
				return
			}

			op, err := validator.Validate(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid operator token",
					"error", err,
					"path", r.URL.Path,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithOperator(ctx, op)))
		})
	}
}

// WithOperator injects an operator identity into the context.
func WithOperator(ctx context.Context, operator string) context.Context {
	return context.WithValue(ctx, contextKeyOperator{}, operator)
}

// FromContext returns the operator identity, or "" when no middleware ran.
func FromContext(ctx context.Context) string {
	if op, ok := ctx.Value(contextKeyOperator{}).(string); ok {
		return op
	}
	return ""
}
