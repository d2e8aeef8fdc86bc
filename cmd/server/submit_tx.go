package main

import (
	"context"
	"time"

	dErrors "vkyc/pkg/domain-errors"
	txcontext "vkyc/pkg/platform/tx"
)

const defaultSubmitTxTimeout = 5 * time.Second

// boundedTx caps how long the archive write and compliance audit may hold
// a database transaction when the caller set no deadline.
type boundedTx struct {
	inner   txcontext.Runner
	timeout time.Duration
}

func newBoundedTx(inner txcontext.Runner, timeout time.Duration) *boundedTx {
	return &boundedTx{inner: inner, timeout: timeout}
}

func (t *boundedTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultSubmitTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return t.inner.RunInTx(ctx, fn)
}
