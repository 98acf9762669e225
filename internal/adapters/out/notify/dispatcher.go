// Package notify decouples notification emission from request handling.
// Committed state transitions hand their intents to the dispatcher and
// return; delivery happens on a background worker and failures are only
// logged, never propagated back to the caller.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"mealmarket/internal/core/ports"
)

const emitTimeout = 10 * time.Second

// ChannelDispatcher implements NotificationDispatcher with a buffered
// queue drained by a single worker goroutine. Dispatch never blocks: when
// the queue is full the intent is dropped and logged, which is acceptable
// for at-least-once-at-best notification delivery.
type ChannelDispatcher struct {
	sink   ports.NotificationSink
	logger *slog.Logger

	queue chan ports.Notification
	done  chan struct{}
	wg    sync.WaitGroup
}

// NewChannelDispatcher creates a dispatcher with the given queue capacity.
func NewChannelDispatcher(sink ports.NotificationSink, logger *slog.Logger, capacity int) *ChannelDispatcher {
	return &ChannelDispatcher{
		sink:   sink,
		logger: logger,
		queue:  make(chan ports.Notification, capacity),
		done:   make(chan struct{}),
	}
}

// Start launches the background worker.
func (d *ChannelDispatcher) Start() {
	d.wg.Add(1)
	go d.run()
}

// Stop drains the queue and waits for the worker to finish.
func (d *ChannelDispatcher) Stop() {
	close(d.done)
	d.wg.Wait()
}

// Dispatch enqueues a notification intent without blocking. Intents that
// do not fit in the queue are dropped with a warning.
func (d *ChannelDispatcher) Dispatch(notification ports.Notification) {
	select {
	case d.queue <- notification:
	default:
		d.logger.Warn("notification queue full, dropping intent",
			"kind", notification.Kind,
			"recipient_kind", notification.RecipientKind,
			"recipient_id", notification.RecipientID.String(),
		)
	}
}

func (d *ChannelDispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case notification := <-d.queue:
			d.emit(notification)
		case <-d.done:
			// Drain what is already queued before exiting.
			for {
				select {
				case notification := <-d.queue:
					d.emit(notification)
				default:
					return
				}
			}
		}
	}
}

func (d *ChannelDispatcher) emit(notification ports.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), emitTimeout)
	defer cancel()

	if err := d.sink.Emit(ctx, notification); err != nil {
		d.logger.Error("failed to emit notification",
			"kind", notification.Kind,
			"recipient_kind", notification.RecipientKind,
			"recipient_id", notification.RecipientID.String(),
			"error", err,
		)
	}
}
