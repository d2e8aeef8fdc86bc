package httputil

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dErrors "vkyc/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	t.Run("internal error omits description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeInternal, "db failed"))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "internal_error" {
			t.Fatalf("expected error code internal_error, got %q", body["error"])
		}
		if _, ok := body["error_description"]; ok {
			t.Fatalf("expected error_description to be omitted for internal errors")
		}
	})

	t.Run("unknown step maps to not found with description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeUnknownStep, `unknown verification step "x"`))

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "unknown_step" {
			t.Fatalf("expected error code unknown_step, got %q", body["error"])
		}
		if body["error_description"] != `unknown verification step "x"` {
			t.Fatalf("unexpected description %q", body["error_description"])
		}
	})

	t.Run("incomplete workflow maps to conflict", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeIncompleteWorkflow, "no steps evaluated"))
		if w.Code != http.StatusConflict {
			t.Fatalf("expected status %d, got %d", http.StatusConflict, w.Code)
		}
	})

	t.Run("uncoded error is internal", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, io.ErrUnexpectedEOF)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}
	})
}

type notesBody struct {
	Notes string `json:"notes"`
}

func (b *notesBody) Normalize() { b.Notes = strings.TrimSpace(b.Notes) }

func (b *notesBody) Validate() error {
	if b.Notes == "" {
		return dErrors.New(dErrors.CodeValidation, "notes is required")
	}
	return nil
}

func TestDecodeAndPrepare(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("normalizes and validates", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"notes":"  ok  "}`))
		w := httptest.NewRecorder()
		body, ok := DecodeAndPrepare[notesBody](w, r, logger, r.Context(), "req-1")
		if !ok {
			t.Fatalf("expected decode to succeed, got status %d", w.Code)
		}
		if body.Notes != "ok" {
			t.Fatalf("expected trimmed notes, got %q", body.Notes)
		}
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"notes":`))
		w := httptest.NewRecorder()
		if _, ok := DecodeAndPrepare[notesBody](w, r, logger, r.Context(), "req-1"); ok {
			t.Fatalf("expected decode failure")
		}
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"notes":"a","extra":1}`))
		w := httptest.NewRecorder()
		if _, ok := DecodeAndPrepare[notesBody](w, r, logger, r.Context(), "req-1"); ok {
			t.Fatalf("expected decode failure")
		}
	})

	t.Run("surfaces validation errors", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"notes":"   "}`))
		w := httptest.NewRecorder()
		if _, ok := DecodeAndPrepare[notesBody](w, r, logger, r.Context(), "req-1"); ok {
			t.Fatalf("expected validation failure")
		}
		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["error"] != "validation_error" {
			t.Fatalf("expected validation_error, got %q", body["error"])
		}
	})
}
