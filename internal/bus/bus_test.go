package bus_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/storefront/internal/bus"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestManager_PublishReachesEverySubscriberOnce(t *testing.T) {
	m := bus.NewManager(discardLogger())

	first := make(chan any, 2)
	second := make(chan any, 2)
	m.Subscribe("order.created", func(_ context.Context, payload any) error {
		first <- payload
		return nil
	})
	m.Subscribe("order.created", func(_ context.Context, payload any) error {
		second <- payload
		return nil
	})

	m.Publish(context.Background(), "order.created", "payload")

	assert.Equal(t, "payload", <-first)
	assert.Equal(t, "payload", <-second)

	// Exactly once: nothing else arrives.
	select {
	case extra := <-first:
		t.Fatalf("unexpected second delivery: %v", extra)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestManager_PublishIgnoresOtherKinds(t *testing.T) {
	m := bus.NewManager(discardLogger())

	called := make(chan struct{}, 1)
	m.Subscribe("user.signed_up", func(context.Context, any) error {
		called <- struct{}{}
		return nil
	})

	m.Publish(context.Background(), "order.created", nil)

	select {
	case <-called:
		t.Fatal("handler for a different kind was invoked")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestManager_HandlerFailureIsIsolated(t *testing.T) {
	m := bus.NewManager(discardLogger())

	healthy := make(chan struct{}, 1)
	m.Subscribe("order.created", func(context.Context, any) error {
		return errors.New("smtp down")
	})
	m.Subscribe("order.created", func(context.Context, any) error {
		panic("boom")
	})
	m.Subscribe("order.created", func(context.Context, any) error {
		healthy <- struct{}{}
		return nil
	})

	m.Publish(context.Background(), "order.created", nil)

	select {
	case <-healthy:
	case <-time.After(time.Second):
		t.Fatal("healthy subscriber was not invoked")
	}
}

func TestManager_PublishSurvivesCancelledCaller(t *testing.T) {
	m := bus.NewManager(discardLogger())

	got := make(chan error, 1)
	m.Subscribe("order.created", func(ctx context.Context, _ any) error {
		got <- ctx.Err()
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m.Publish(ctx, "order.created", nil)

	require.NoError(t, <-got, "handler context must be detached from the caller's cancellation")
}

func TestManager_Clear(t *testing.T) {
	m := bus.NewManager(discardLogger())

	called := make(chan struct{}, 1)
	m.Subscribe("order.created", func(context.Context, any) error {
		called <- struct{}{}
		return nil
	})
	m.Clear()

	m.Publish(context.Background(), "order.created", nil)

	select {
	case <-called:
		t.Fatal("handler survived Clear")
	case <-time.After(50 * time.Millisecond):
	}
}
