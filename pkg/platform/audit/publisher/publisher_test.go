package publisher

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "vkyc/pkg/platform/audit"
	"vkyc/pkg/platform/audit/store/memory"
)

func TestPublisher_SyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	event := audit.Event{
		SessionID: "KYC-1",
		Action:    string(audit.EventSessionCreated),
	}

	err := pub.Emit(context.Background(), event)
	require.NoError(t, err)

	events, err := pub.List(context.Background(), "KYC-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventSessionCreated), events[0].Action)
	assert.Equal(t, audit.CategoryOperations, events[0].Category)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestPublisher_AsyncDrainsOnClose(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(100))

	for range 10 {
		err := pub.Emit(context.Background(), audit.Event{
			SessionID: "KYC-2",
			Action:    string(audit.EventVerdictRecorded),
		})
		require.NoError(t, err)
	}

	pub.Close()

	events, err := store.ListBySession(context.Background(), "KYC-2")
	require.NoError(t, err)
	assert.Len(t, events, 10)
	assert.Equal(t, audit.CategoryOperations, events[0].Category)
}

func TestPublisher_CloseIsIdempotent(t *testing.T) {
	pub := NewPublisher(memory.NewInMemoryStore(), WithAsyncBuffer(1))
	pub.Close()
	pub.Close()
}

type failingStore struct {
	mu    sync.Mutex
	calls int
}

func (f *failingStore) Append(context.Context, audit.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return errors.New("disk full")
}

func (f *failingStore) ListBySession(context.Context, string) ([]audit.Event, error) {
	return nil, nil
}

func TestPublisher_SyncModeReturnsStoreErrors(t *testing.T) {
	pub := NewPublisher(&failingStore{})
	err := pub.Emit(context.Background(), audit.Event{Action: string(audit.EventNotesUpdated)})
	assert.Error(t, err)
}

func TestPublisher_AsyncModeSwallowsStoreErrors(t *testing.T) {
	store := &failingStore{}
	pub := NewPublisher(store, WithAsyncBuffer(4))
	require.NoError(t, pub.Emit(context.Background(), audit.Event{Action: string(audit.EventNotesUpdated)}))
	pub.Close()

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, 1, store.calls)
}

func TestPublisher_CountsEmittedAndDropped(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	pub := NewPublisher(memory.NewInMemoryStore(), WithAsyncBuffer(8), WithMetrics(m))

	require.NoError(t, pub.Emit(context.Background(), audit.Event{SessionID: "KYC-1", Action: string(audit.EventSessionCreated)}))
	pub.Close()
	require.NoError(t, pub.Emit(context.Background(), audit.Event{SessionID: "KYC-1", Action: string(audit.EventNotesUpdated)}))

	assert.InDelta(t, 1, testutil.ToFloat64(m.Events.WithLabelValues("emitted")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Events.WithLabelValues("dropped")), 0)
}
