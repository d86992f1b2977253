package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/kirillkom/planetary-dem/internal/config"
	"github.com/kirillkom/planetary-dem/internal/core/ports"
	"github.com/kirillkom/planetary-dem/internal/core/usecase"
	"github.com/kirillkom/planetary-dem/internal/infrastructure/dem"
	"github.com/kirillkom/planetary-dem/internal/infrastructure/imageprobe"
	"github.com/kirillkom/planetary-dem/internal/infrastructure/queue/nats"
	"github.com/kirillkom/planetary-dem/internal/infrastructure/repository/postgres"
	"github.com/kirillkom/planetary-dem/internal/infrastructure/resilience"
	"github.com/kirillkom/planetary-dem/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config

	Queue     ports.MessageQueue
	Repo      ports.JobReader
	Storage   ports.ObjectStorage
	SubmitUC  ports.JobSubmitter
	ProcessUC ports.JobProcessor

	closeFn func()
}

type Option func(*options)

type options struct {
	observer resilience.Observer
}

// WithResilienceObserver reports retries and breaker transitions of the
// queue and DEM adapters.
func WithResilienceObserver(observer resilience.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

func New(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	executor := resilience.NewExecutor(resilienceConfig(cfg))
	if o.observer != nil {
		executor.WithObserver(o.observer)
	}

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewJobRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	inspector := imageprobe.NewInspector(cfg.ThumbnailSize)
	generator := dem.NewWithOptions(cfg.DEMServiceURL, dem.Options{
		Timeout:            time.Duration(cfg.DEMTimeoutSeconds) * time.Second,
		ResilienceExecutor: executor,
	})

	submitUC := usecase.NewSubmitJobUseCase(repo, storage, queue, inspector)
	processUC := usecase.NewProcessJobUseCase(repo, storage, generator)

	return &App{
		Config:  cfg,
		Queue:   queue,
		Repo:    repo,
		Storage: storage,

		SubmitUC:  submitUC,
		ProcessUC: processUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

func resilienceConfig(cfg config.Config) resilience.Config {
	rc := resilience.DefaultConfig()
	if cfg.ResilienceRetryMaxAttempts > 0 {
		rc.RetryMaxAttempts = cfg.ResilienceRetryMaxAttempts
	}
	rc.BreakerEnabled = cfg.ResilienceBreakerEnabled
	if cfg.ResilienceBreakerMinRequests > 0 {
		rc.BreakerMinRequests = uint32(cfg.ResilienceBreakerMinRequests)
	}
	return rc
}
