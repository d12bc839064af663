package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"apteka_notify_backend/internal/mailintake"
	"apteka_notify_backend/internal/notify"
	"apteka_notify_backend/internal/orders/repository"
	"apteka_notify_backend/internal/orders/service"
	"apteka_notify_backend/internal/scheduler"
	"apteka_notify_backend/migrations"
	"apteka_notify_backend/platform/config"
	"apteka_notify_backend/platform/db"
	"apteka_notify_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	redisOpt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		log.Error("invalid redis url", "error", err)
		panic("invalid redis url: " + err.Error())
	}
	rdb := redis.NewClient(redisOpt)
	defer func() { _ = rdb.Close() }()

	ordersRepo := repository.New(pool)
	ordersSvc := service.New(ordersRepo, log)

	monitor := mailintake.NewMonitor(cfg, log, mailintake.NewAttachmentDecoders())

	var archiver *mailintake.Archiver
	if cfg.IsArchiveEnabled() {
		archiver, err = mailintake.NewArchiver(cfg)
		if err != nil {
			log.Error("failed to initialize mail archiver", "error", err)
			panic("failed to initialize mail archiver: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure mail archive bucket", 5, 2*time.Second, func() error {
			return archiver.EnsureBucket(ctx)
		}); err != nil {
			log.Error("failed to ensure mail archive bucket", "error", err)
			panic("failed to ensure mail archive bucket: " + err.Error())
		}
		log.Info("mail archive enabled", "bucket", cfg.GetMailArchiveBucket())
	}

	mailSvc := mailintake.NewService(cfg, monitor, archiver, ordersSvc, log)

	channels := []notify.Channel{
		notify.NewWhatsAppClient(cfg),
		notify.NewSMSClient(cfg),
	}
	deduper := notify.NewDeduper(rdb, cfg.GetDedupeTTL())
	logRepo := notify.NewLogRepository(pool)
	alerts := notify.NewAlertMailer(cfg)
	dispatcher := notify.NewDispatcher(cfg, ordersRepo, channels, deduper, logRepo, alerts, log)

	schedClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		panic("failed to initialize scheduler client: " + err.Error())
	}
	defer func() { _ = schedClient.Close() }()

	worker, err := scheduler.NewWorker(cfg, mailSvc, dispatcher, schedClient, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}
	enqueuer := scheduler.NewMailCheckEnqueuer(cfg, schedClient, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return worker.Run(gctx)
	})
	g.Go(func() error {
		enqueuer.Run(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error("scheduler stopped with error", "error", err)
		panic("scheduler stopped with error: " + err.Error())
	}

	log.Info("scheduler stopped")
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
