package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/property_ledger_app/internal/core/services"
	"github.com/SscSPs/property_ledger_app/internal/notifications"
	"github.com/SscSPs/property_ledger_app/internal/platform/config"
	"github.com/SscSPs/property_ledger_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/property_ledger_app/internal/tasks"
	"github.com/SscSPs/property_ledger_app/pkg/database"
	"github.com/SscSPs/property_ledger_app/pkg/queue"
	"github.com/SscSPs/property_ledger_app/pkg/util"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := util.NewLogger(cfg.Environment())
	slog.SetDefault(logger)
	logger.Info("starting property ledger worker")

	databaseURL, err := cfg.DatabaseURL()
	if err != nil {
		logger.Error("invalid database configuration", "error", err)
		os.Exit(1)
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), config.StartupCheckTimeout)
	dbPool, err := database.NewPgxPool(startupCtx, databaseURL, cfg.EnableDBCheck, logger)
	if err != nil {
		cancelStartup()
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool, logger)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
	})
	if err := redisClient.Ping(startupCtx).Err(); err != nil {
		cancelStartup()
		logger.Error("failed to reach redis", "addr", cfg.Redis.Addr(), "error", err)
		os.Exit(1)
	}
	cancelStartup()
	_ = redisClient.Close()

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(repos, notifications.New(cfg.Email, logger))

	scheduler := queue.NewScheduler(cfg.Redis)
	if err := tasks.RegisterPeriodicTasks(scheduler, cfg.RecurringCron, cfg.ReminderCron); err != nil {
		logger.Error("failed to register periodic tasks", "error", err)
		os.Exit(1)
	}
	logNextRun(logger, tasks.TypeExpandRecurring, cfg.RecurringCron)
	logNextRun(logger, tasks.TypeProcessReminders, cfg.ReminderCron)

	srv := queue.NewServer(cfg.Redis, cfg.WorkerConcurrency)
	handler := tasks.NewHandler(serviceContainer.Jobs, logger)
	mux := asynq.NewServeMux()
	handler.RegisterHandlers(mux)

	if err := scheduler.Start(); err != nil {
		logger.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	if err := srv.Start(mux); err != nil {
		scheduler.Shutdown()
		logger.Error("failed to start worker", "error", err)
		os.Exit(1)
	}
	logger.Info("worker started, waiting for tasks...", "concurrency", cfg.WorkerConcurrency)

	enqueueCatchUp(cfg, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down worker...")
	scheduler.Shutdown()
	srv.Shutdown()
	logger.Info("worker stopped")
}

// enqueueCatchUp runs both passes once at startup so a day missed while the
// worker was down is still covered. Both passes are idempotent; the task id
// keeps a restart from queueing a second copy while the first is still pending.
func enqueueCatchUp(cfg *config.Config, logger *slog.Logger) {
	client := queue.NewClient(cfg.Redis)
	defer client.Close()

	day := time.Now().UTC().Format("2006-01-02")
	expand, err := tasks.NewExpandRecurringTask(tasks.ExpandRecurringPayload{})
	if err == nil {
		_, err = client.Enqueue(expand, asynq.TaskID("startup:"+tasks.TypeExpandRecurring+":"+day))
	}
	if err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
		logger.Warn("failed to enqueue startup expansion", "error", err)
	}

	remind, err := tasks.NewProcessRemindersTask(tasks.ProcessRemindersPayload{})
	if err == nil {
		_, err = client.Enqueue(remind, asynq.TaskID("startup:"+tasks.TypeProcessReminders+":"+day))
	}
	if err != nil && !errors.Is(err, asynq.ErrTaskIDConflict) {
		logger.Warn("failed to enqueue startup reminder run", "error", err)
	}
}

func logNextRun(logger *slog.Logger, taskType, cronExpr string) {
	next, err := util.NextCronTime(cronExpr, time.Now())
	if err != nil {
		return
	}
	logger.Info("periodic task scheduled", "task", taskType, "cron", cronExpr, "next_run", next.Format(time.RFC3339))
}
