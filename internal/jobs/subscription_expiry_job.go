package jobs

import (
	"context"
	"log/slog"
	"time"

	"mealmarket/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// SubscriptionExpiryJob lapses subscription requests the kitchen never
// answered. Runs hourly; a request is expired once it has been Pending
// longer than the configured max age.
type SubscriptionExpiryJob struct {
	handler commands.ExpireSubscriptionRequestsCommandHandler
	maxAge  time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewSubscriptionExpiryJob creates a new job for expiring stale subscription requests.
func NewSubscriptionExpiryJob(
	handler commands.ExpireSubscriptionRequestsCommandHandler,
	maxAge time.Duration,
	logger *slog.Logger,
) *SubscriptionExpiryJob {
	return &SubscriptionExpiryJob{
		handler: handler,
		maxAge:  maxAge,
		cron:    cron.New(),
		logger:  logger.With("component", "subscription_expiry_job"),
	}
}

// Start begins the expiry job on an hourly schedule.
func (j *SubscriptionExpiryJob) Start() error {
	_, err := j.cron.AddFunc("@hourly", func() {
		ctx := context.Background()

		cmd, err := commands.NewExpireSubscriptionRequestsCommand(j.maxAge)
		if err != nil {
			j.logger.ErrorContext(ctx, "Subscription expiry job misconfigured", "error", err)
			return
		}

		expired, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Subscription expiry job failed", "error", err)
			return
		}

		if expired > 0 {
			j.logger.InfoContext(ctx, "Expired stale subscription requests", "count", expired)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Subscription expiry job started (running hourly)")
	return nil
}

// Stop stops the expiry job.
func (j *SubscriptionExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Subscription expiry job stopped")
}
