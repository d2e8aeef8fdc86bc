// Package publisher emits routine audit events, synchronously or through a
// bounded async buffer drained by a background worker.
package publisher

import (
	"context"
	"log/slog"
	"sync"

	audit "vkyc/pkg/platform/audit"
	"vkyc/pkg/platform/audit/worker"
	"vkyc/pkg/requestcontext"
)

// Publisher is the default audit emitter for operational events.
type Publisher struct {
	store   audit.Store
	logger  *slog.Logger
	metrics *Metrics

	bufferSize int
	inbox      chan audit.Event
	cancel     context.CancelFunc
	done       chan struct{}

	mu     sync.RWMutex
	closed bool
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithAsyncBuffer makes Emit non-blocking, queueing up to size events.
// When the buffer is full new events are dropped and counted.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.bufferSize = size
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// NewPublisher creates a publisher. Call Close to drain async buffers.
func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufferSize > 0 {
		p.inbox = make(chan audit.Event, p.bufferSize)
		p.done = make(chan struct{})
		ctx, cancel := context.WithCancel(context.Background())
		p.cancel = cancel
		w := worker.NewWorker(store, p.inbox, p.logger, p.metrics.IncPersistFailures)
		go func() {
			defer close(p.done)
			_ = w.Run(ctx)
		}()
	}
	return p
}

// Emit records an event. In async mode it never blocks.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}

	if p.inbox == nil {
		if err := p.store.Append(ctx, event); err != nil {
			p.metrics.IncPersistFailures()
			return err
		}
		p.metrics.IncEmitted()
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.metrics.IncDropped()
		return nil
	}
	select {
	case p.inbox <- event:
		p.metrics.IncEmitted()
	default:
		p.metrics.IncDropped()
		if p.logger != nil {
			p.logger.WarnContext(ctx, "audit buffer full, dropping event",
				"action", event.Action,
				"session_id", event.SessionID,
			)
		}
	}
	return nil
}

// List returns stored events for a session.
func (p *Publisher) List(ctx context.Context, sessionID string) ([]audit.Event, error) {
	return p.store.ListBySession(ctx, sessionID)
}

// Close stops accepting events and waits for buffered events to be written.
func (p *Publisher) Close() {
	if p.inbox == nil {
		return
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.inbox)
	p.mu.Unlock()

	<-p.done
	p.cancel()
}
