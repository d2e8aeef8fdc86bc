package publisher

import (
	"context"
	"errors"
	"log/slog"

	"vkyc/internal/verification/models"
	"vkyc/pkg/platform/circuit"
)

// ErrCircuitOpen is returned without calling the broker while it is
// considered down.
var ErrCircuitOpen = errors.New("submission publisher circuit open")

// Publisher is anything that can hand a submission downstream.
type Publisher interface {
	Publish(ctx context.Context, sub models.Submission) error
}

// Guarded stops calling next after repeated failures so a broker outage
// does not add a produce timeout to every submit.
type Guarded struct {
	next    Publisher
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func NewGuarded(next Publisher, breaker *circuit.Breaker, logger *slog.Logger) *Guarded {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guarded{next: next, breaker: breaker, logger: logger}
}

func (g *Guarded) Publish(ctx context.Context, sub models.Submission) error {
	if !g.breaker.Allow() {
		return ErrCircuitOpen
	}
	if err := g.next.Publish(ctx, sub); err != nil {
		if _, change := g.breaker.RecordFailure(); change.Opened {
			g.logger.WarnContext(ctx, "submission publisher circuit opened",
				"breaker", g.breaker.Name(),
				"error", err,
			)
		}
		return err
	}
	if _, change := g.breaker.RecordSuccess(); change.Closed {
		g.logger.InfoContext(ctx, "submission publisher circuit closed",
			"breaker", g.breaker.Name(),
		)
	}
	return nil
}
