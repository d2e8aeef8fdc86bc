package auth

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"vkyc/pkg/requestcontext"
)

type stubValidator struct {
	claims *AgentClaims
	err    error
}

func (s stubValidator) ValidateToken(string) (*AgentClaims, error) {
	return s.claims, s.err
}

type recordingRecorder struct {
	reasons []string
}

func (r *recordingRecorder) RecordAuthFailure(_ *http.Request, reason string) {
	r.reasons = append(r.reasons, reason)
}

func TestRequireAgent(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		header     string
		validator  stubValidator
		wantStatus int
		wantAgent  string
		wantReason string
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized, wantReason: "missing token"},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantReason: "missing token"},
		{
			name:       "invalid token",
			header:     "Bearer bad",
			validator:  stubValidator{err: errors.New("signature invalid")},
			wantStatus: http.StatusUnauthorized,
			wantReason: "invalid token",
		},
		{
			name:       "valid token",
			header:     "Bearer good",
			validator:  stubValidator{claims: &AgentClaims{AgentID: "agent-7"}},
			wantStatus: http.StatusOK,
			wantAgent:  "agent-7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingRecorder{}
			var agent string
			h := RequireAgent(tt.validator, rec, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				agent = requestcontext.AgentID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/kyc/catalog", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantAgent, agent)
			if tt.wantReason != "" {
				assert.Equal(t, []string{tt.wantReason}, rec.reasons)
				assert.Contains(t, rr.Body.String(), `"error":"unauthorized"`)
			} else {
				assert.Empty(t, rec.reasons)
			}
		})
	}
}
