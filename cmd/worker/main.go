package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kirillkom/planetary-dem/internal/bootstrap"
	"github.com/kirillkom/planetary-dem/internal/config"
	"github.com/kirillkom/planetary-dem/internal/observability/logging"
	"github.com/kirillkom/planetary-dem/internal/observability/metrics"
)

const serviceName = "worker"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_load_failed", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logging.NewJSONLogger(serviceName, cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	workerMetrics := metrics.NewWorkerMetrics(serviceName)
	app, err := bootstrap.New(ctx, cfg, bootstrap.WithResilienceObserver(workerMetrics))
	if err != nil {
		slog.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	metricsServer := &http.Server{
		Addr:              ":" + cfg.WorkerMetricsPort,
		Handler:           workerMetrics.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.Info("worker_metrics_listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("worker_metrics_failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	jobTimeout := time.Duration(cfg.JobTimeoutSeconds) * time.Second
	slog.Info("worker_subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeJobSubmitted(ctx, func(handlerCtx context.Context, jobID string) error {
		processCtx, cancel := context.WithTimeout(handlerCtx, jobTimeout)
		defer cancel()

		if job, err := app.Repo.GetByID(processCtx, jobID); err == nil {
			workerMetrics.ObserveQueueLag(time.Since(job.CreatedAt))
		}

		workerMetrics.StartJob()
		started := time.Now()
		err := app.ProcessUC.ProcessByID(processCtx, jobID)
		workerMetrics.FinishJob(time.Since(started), err)
		return err
	})
	if err != nil {
		slog.Error("worker_subscribe_failed", "error", err)
		os.Exit(1)
	}
}
