package scheduler

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"apteka_notify_backend/platform/config"
	"apteka_notify_backend/platform/logger"
)

// MailChecker runs one inbound-mail poll cycle.
type MailChecker interface {
	CheckOnce(ctx context.Context) error
}

// NotifyRunner drains pending orders and sends notifications.
type NotifyRunner interface {
	DispatchPending(ctx context.Context) error
}

type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	mail     MailChecker
	notifier NotifyRunner
	enqueuer DispatchEnqueuer
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, mail MailChecker, notifier NotifyRunner, enqueuer DispatchEnqueuer, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		mail:     mail,
		notifier: notifier,
		enqueuer: enqueuer,
		log:      log,
	}

	mux.HandleFunc(TaskMailCheck, w.handleMailCheck)
	mux.HandleFunc(TaskNotifyDispatch, w.handleNotifyDispatch)

	return w, nil
}

// handleMailCheck polls the inbox and chains a notification run so freshly
// registered orders go out without waiting for the next tick.
func (w *Worker) handleMailCheck(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseMailCheckPayload(task)
	if err != nil {
		return err
	}

	w.log.Info("mail check started", "triggered_by", payload.TriggeredBy)
	if err := w.mail.CheckOnce(ctx); err != nil {
		return fmt.Errorf("mail check: %w", err)
	}

	if w.enqueuer != nil {
		if err := w.enqueuer.EnqueueNotifyDispatch(ctx, TaskMailCheck); err != nil {
			w.log.Warn("failed to chain notify dispatch", "error", err)
		}
	}

	return nil
}

func (w *Worker) handleNotifyDispatch(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseNotifyDispatchPayload(task)
	if err != nil {
		return err
	}

	w.log.Info("notify dispatch started", "triggered_by", payload.TriggeredBy)
	if err := w.notifier.DispatchPending(ctx); err != nil {
		return fmt.Errorf("notify dispatch: %w", err)
	}

	return nil
}

// Run starts the asynq server and blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("asynq server start: %w", err)
	}

	<-ctx.Done()
	w.server.Shutdown()
	return nil
}
