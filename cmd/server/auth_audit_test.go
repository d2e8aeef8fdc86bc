package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vkyc/pkg/platform/audit"
	"vkyc/pkg/platform/audit/store/memory"
)

type storeEmitter struct{ store audit.Store }

func (e storeEmitter) Emit(ctx context.Context, event audit.Event) error {
	return e.store.Append(ctx, event)
}

func TestAuthFailureAuditorRecordsSecurityEvent(t *testing.T) {
	store := memory.NewInMemoryStore()
	auditor := authFailureAuditor{
		emitter: storeEmitter{store: store},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	req := httptest.NewRequest(http.MethodPost, "/kyc/sessions", nil)
	auditor.RecordAuthFailure(req, "invalid token")

	events, err := store.ListBySession(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, audit.CategorySecurity, events[0].Category)
	assert.Equal(t, string(audit.EventAuthFailed), events[0].Action)
	assert.Equal(t, "POST /kyc/sessions", events[0].Subject)
	assert.Equal(t, "invalid token", events[0].Reason)
}
