package scheduler

import (
	"context"
	"time"

	"apteka_notify_backend/platform/config"
	"apteka_notify_backend/platform/logger"
)

// MailCheckEnqueuer turns the configured poll interval into periodic
// mail.check tasks. Running it next to the worker gives one process that
// both schedules and executes the poll.
type MailCheckEnqueuer struct {
	client   *Client
	interval time.Duration
	log      *logger.Logger
}

func NewMailCheckEnqueuer(cfg config.MailConfig, client *Client, log *logger.Logger) *MailCheckEnqueuer {
	interval := cfg.GetMailCheckInterval()
	if interval < time.Minute {
		interval = time.Minute
	}

	return &MailCheckEnqueuer{
		client:   client,
		interval: interval,
		log:      log,
	}
}

// Run enqueues one check immediately, then on every tick, until ctx is
// cancelled.
func (e *MailCheckEnqueuer) Run(ctx context.Context) {
	if e == nil || e.client == nil {
		return
	}

	e.log.Info("mail check enqueuer started", "interval", e.interval.String())

	if err := e.client.EnqueueMailCheck(ctx, "startup"); err != nil {
		e.log.Warn("mail check enqueue failed", "error", err)
	}

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if err := e.client.EnqueueMailCheck(ctx, "ticker"); err != nil {
			e.log.Warn("mail check enqueue failed", "error", err)
		}
	}
}
