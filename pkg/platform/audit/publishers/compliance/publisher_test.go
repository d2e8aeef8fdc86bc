package compliance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "vkyc/pkg/platform/audit"
	"vkyc/pkg/platform/audit/store/memory"
	"vkyc/pkg/requestcontext"
)

type brokenStore struct{}

func (brokenStore) Append(context.Context, audit.Event) error { return errors.New("write failed") }
func (brokenStore) ListBySession(context.Context, string) ([]audit.Event, error) {
	return nil, nil
}

func TestEmit(t *testing.T) {
	t.Run("persists with compliance category", func(t *testing.T) {
		store := memory.NewInMemoryStore()
		p := New(store)
		err := p.Emit(context.Background(), audit.Event{
			SessionID: "KYC-1",
			Action:    string(audit.EventSessionSubmitted),
			Decision:  "submitted",
		})
		require.NoError(t, err)

		events, err := store.ListBySession(context.Background(), "KYC-1")
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, audit.CategoryCompliance, events[0].Category)
		assert.False(t, events[0].Timestamp.IsZero())
	})

	t.Run("requires session and action", func(t *testing.T) {
		p := New(memory.NewInMemoryStore())
		assert.Error(t, p.Emit(context.Background(), audit.Event{Action: "x"}))
		assert.Error(t, p.Emit(context.Background(), audit.Event{SessionID: "KYC-1"}))
	})

	t.Run("fails closed when the store fails", func(t *testing.T) {
		p := New(brokenStore{})
		err := p.Emit(context.Background(), audit.Event{SessionID: "KYC-1", Action: "x"})
		assert.Error(t, err)
	})
}

func TestEmitUsesRequestTimeAndCountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	store := memory.NewInMemoryStore()
	p := New(store, WithMetrics(m))

	at := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), at)
	require.NoError(t, p.Emit(ctx, audit.Event{SessionID: "KYC-9", Action: string(audit.EventSessionSubmitted)}))

	events, err := store.ListBySession(ctx, "KYC-9")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, at, events[0].Timestamp)

	require.Error(t, New(brokenStore{}, WithMetrics(m)).Emit(ctx, audit.Event{SessionID: "KYC-9", Action: "x"}))
	assert.InDelta(t, 1, testutil.ToFloat64(m.Writes.WithLabelValues("ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Writes.WithLabelValues("error")), 0)
}
