package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "vkyc/pkg/domain-errors"
	txcontext "vkyc/pkg/platform/tx"
)

func TestBoundedTxAddsDeadline(t *testing.T) {
	runner := newBoundedTx(txcontext.NopRunner{}, 50*time.Millisecond)
	err := runner.RunInTx(context.Background(), func(ctx context.Context) error {
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
		return nil
	})
	require.NoError(t, err)
}

func TestBoundedTxKeepsCallerDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()
	want, _ := ctx.Deadline()

	err := newBoundedTx(txcontext.NopRunner{}, 0).RunInTx(ctx, func(ctx context.Context) error {
		got, _ := ctx.Deadline()
		assert.Equal(t, want, got)
		return nil
	})
	require.NoError(t, err)
}

func TestBoundedTxRejectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := newBoundedTx(txcontext.NopRunner{}, 0).RunInTx(ctx, func(context.Context) error {
		called = true
		return nil
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
	assert.False(t, called)
}
