package worker

import (
	"context"
	"log/slog"

	audit "vkyc/pkg/platform/audit"
)

// Worker drains audit events from a channel into a store. A failed write is
// logged and the worker keeps going; compliance events never take this path.
type Worker struct {
	store   audit.Store
	inbox   <-chan audit.Event
	logger  *slog.Logger
	onError func()
}

func NewWorker(store audit.Store, inbox <-chan audit.Event, logger *slog.Logger, onError func()) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger, onError: onError}
}

// Run consumes until the inbox is closed. When ctx is cancelled it drains
// whatever is already buffered, then returns.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return ctx.Err()
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			w.persist(ctx, event)
		}
	}
}

func (w *Worker) drain() {
	for {
		select {
		case event, ok := <-w.inbox:
			if !ok {
				return
			}
			w.persist(context.Background(), event)
		default:
			return
		}
	}
}

func (w *Worker) persist(ctx context.Context, event audit.Event) {
	if err := w.store.Append(ctx, event); err != nil {
		if w.onError != nil {
			w.onError()
		}
		if w.logger != nil {
			w.logger.Error("audit event persistence failed",
				"action", event.Action,
				"session_id", event.SessionID,
				"error", err,
			)
		}
	}
}
