package notify_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"mealmarket/internal/adapters/out/notify"
	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink captures emitted notifications for assertions.
type recordingSink struct {
	mu      sync.Mutex
	emitted []ports.Notification
	err     error
}

func (s *recordingSink) Emit(_ context.Context, notification ports.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emitted = append(s.emitted, notification)
	return s.err
}

func (s *recordingSink) all() []ports.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ports.Notification(nil), s.emitted...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestChannelDispatcher_DeliversQueuedIntents(t *testing.T) {
	sink := &recordingSink{}
	dispatcher := notify.NewChannelDispatcher(sink, discardLogger(), 16)
	dispatcher.Start()

	first := ports.Notification{
		RecipientKind: ports.RecipientKitchen,
		RecipientID:   kernel.NewUUID(),
		Kind:          ports.NotificationOrderCancelled,
		Title:         "Order cancelled",
	}
	second := ports.Notification{
		RecipientKind: ports.RecipientBuyer,
		RecipientID:   kernel.NewUUID(),
		Kind:          ports.NotificationOrderConfirmed,
		Title:         "Order confirmed",
	}

	dispatcher.Dispatch(first)
	dispatcher.Dispatch(second)
	dispatcher.Stop()

	emitted := sink.all()
	require.Len(t, emitted, 2)
	assert.Equal(t, first, emitted[0])
	assert.Equal(t, second, emitted[1])
}

func TestChannelDispatcher_SinkFailureDoesNotPropagate(t *testing.T) {
	sink := &recordingSink{err: errors.New("broker unavailable")}
	dispatcher := notify.NewChannelDispatcher(sink, discardLogger(), 16)
	dispatcher.Start()

	// Dispatch must not panic or block on a failing sink.
	dispatcher.Dispatch(ports.Notification{
		RecipientKind: ports.RecipientBuyer,
		RecipientID:   kernel.NewUUID(),
		Kind:          ports.NotificationSubscriptionExpired,
	})
	dispatcher.Stop()

	require.Len(t, sink.all(), 1)
}

func TestChannelDispatcher_FullQueueDropsWithoutBlocking(t *testing.T) {
	sink := &recordingSink{}
	dispatcher := notify.NewChannelDispatcher(sink, discardLogger(), 1)
	// Worker not started: the queue can only hold one intent.

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 10 {
			dispatcher.Dispatch(ports.Notification{
				RecipientKind: ports.RecipientBuyer,
				RecipientID:   kernel.NewUUID(),
				Kind:          ports.NotificationOrderCompleted,
			})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatch blocked on a full queue")
	}

	dispatcher.Start()
	dispatcher.Stop()
	assert.Len(t, sink.all(), 1)
}
