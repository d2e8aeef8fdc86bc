package testutil

import (
	"net/http"

	"vkyc/pkg/requestcontext"
)

// WithAgent simulates the auth middleware for an authenticated agent.
func WithAgent(req *http.Request, agentID string) *http.Request {
	return req.WithContext(requestcontext.WithAgentID(req.Context(), agentID))
}
