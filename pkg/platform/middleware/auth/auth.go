package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	request "vkyc/pkg/platform/middleware/request"
	"vkyc/pkg/requestcontext"
)

// TokenValidator validates a bearer token and returns the agent claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (*AgentClaims, error)
}

// AgentClaims are the claims the middleware needs from an agent token.
type AgentClaims struct {
	AgentID string
	Name    string
}

// AuthFailureRecorder is notified when a request is rejected, for the
// security audit trail.
type AuthFailureRecorder interface {
	RecordAuthFailure(r *http.Request, reason string)
}

// writeJSONError writes a JSON error response with the given status code and error details.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// RequireAgent rejects requests without a valid agent bearer token and
// stores the agent ID in the request context.
func RequireAgent(validator TokenValidator, recorder AuthFailureRecorder, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := request.GetRequestID(ctx)

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				if recorder != nil {
					recorder.RecordAuthFailure(r, "missing token")
				}
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil || claims.AgentID == "" {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				if recorder != nil {
					recorder.RecordAuthFailure(r, "invalid token")
				}
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			ctx = requestcontext.WithAgentID(ctx, claims.AgentID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
