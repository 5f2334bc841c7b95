package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/myfav-coworker/prverify/config"
	"github.com/myfav-coworker/prverify/internal/adapters/browser"
	"github.com/myfav-coworker/prverify/internal/adapters/gitcli"
	"github.com/myfav-coworker/prverify/internal/adapters/reaper"
	"github.com/myfav-coworker/prverify/internal/adapters/reasoning"
	"github.com/myfav-coworker/prverify/internal/adapters/worker"
	"github.com/myfav-coworker/prverify/internal/core"
	"github.com/myfav-coworker/prverify/internal/data"
	"github.com/myfav-coworker/prverify/internal/observability/statsd"
	"github.com/myfav-coworker/prverify/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Store         *data.JobStore
	Queue         *data.RedisQueue
	Jobs          *service.JobService
	Repositories  *service.RepositoryService
	Plans         *service.PlanService
	Executor      *service.ExecutorService
	Simulation    *service.SimulationService
	Observability ObservabilityContainer
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	MetricsSink   *statsd.Client
	MetricsConfig config.ObservabilityMetricsConfig
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// buildObservability configures the metrics sink.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	obsLogger := logger
	if obsLogger == nil {
		obsLogger = slog.Default()
	}

	var metricsSink *statsd.Client
	if cfg.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: cfg.Metrics.StatsdAddress,
			Prefix:  "prverify",
			Logger:  obsLogger,
		})
		if err != nil {
			obsLogger.Error("failed to initialise statsd client", "error", err)
		} else {
			metricsSink = client
		}
	}

	return ObservabilityContainer{
		MetricsSink:   metricsSink,
		MetricsConfig: cfg.Metrics,
	}
}

// NewServices wires the adapters and business services behind their ports.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps with config are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	observability := buildObservability(logger, cfg.Observability)

	store := data.NewJobStore(deps.DB, data.JobStoreConfig{Logger: logger})
	queue := data.NewRedisQueue(deps.RedisClient, data.RedisQueueConfig{
		Name:              cfg.Queue.Name,
		VisibilityTimeout: cfg.Queue.VisibilityTimeout,
		Logger:            logger,
	})

	jobs, err := service.NewJobService(service.JobServiceOptions{
		Store:   store,
		Logger:  logger,
		Metrics: observability.MetricsSink,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build job service: %w", err)
	}

	git := gitcli.New(gitcli.Options{
		Timeouts: gitcli.Timeouts{
			Clone:    cfg.Repository.CloneTimeout,
			Fetch:    cfg.Repository.FetchTimeout,
			Checkout: cfg.Repository.CheckoutTimeout,
			Diff:     cfg.Repository.DiffTimeout,
			RevParse: cfg.Repository.CheckoutTimeout,
		},
		Logger: logger,
	})

	repositories, err := service.NewRepositoryService(service.RepositoryServiceOptions{
		Git:         git,
		Credentials: CreateCredentialProvider(logger),
		Config:      cfg.Repository,
		Logger:      logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build repository service: %w", err)
	}

	agent, err := service.NewAgentPlanner(service.AgentPlannerOptions{
		Reasoning: reasoning.New(reasoning.Options{
			APIKey:         cfg.Planner.APIKey,
			Model:          cfg.Planner.Model,
			MaxRetries:     cfg.Planner.MaxRetries,
			RequestTimeout: cfg.Planner.RequestTimeout,
			Logger:         logger,
		}),
		Logger: logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build agent planner: %w", err)
	}

	plans, err := service.NewPlanService(service.PlanServiceOptions{
		Agent:  agent,
		Logger: logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build plan service: %w", err)
	}

	driver := browser.NewDriver(browser.Options{
		DriverURL:       cfg.Executor.DriverURL,
		ActionTimeout:   cfg.Executor.ActionTimeout,
		SelectorTimeout: cfg.Executor.SelectorTimeout,
		Logger:          logger,
	})
	sessions := core.BrowserSessionFactoryFunc(func(ctx context.Context) (core.BrowserSession, error) {
		return driver.NewSession(ctx)
	})

	executor, err := service.NewExecutorService(service.ExecutorServiceOptions{
		Sessions: sessions,
		Config:   cfg.Executor,
		Logger:   logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build executor service: %w", err)
	}

	simulation, err := service.NewSimulationService(service.SimulationServiceOptions{
		Repositories: repositories,
		Planner:      plans,
		Executor:     executor,
		Logger:       logger,
		Metrics:      observability.MetricsSink,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build simulation service: %w", err)
	}

	return ServiceContainer{
		Store:         store,
		Queue:         queue,
		Jobs:          jobs,
		Repositories:  repositories,
		Plans:         plans,
		Executor:      executor,
		Simulation:    simulation,
		Observability: observability,
	}, nil
}

// ServiceOrchestrationConfig contains configuration for service orchestration.
type ServiceOrchestrationConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// shutdownWaitTimeout is the maximum time to wait for services to stop gracefully.
const shutdownWaitTimeout = 15 * time.Second

// backgroundService describes a startable background component.
type backgroundService struct {
	mode  config.ServiceMode
	name  string
	start func(context.Context) error
}

// backgroundServiceHandle tracks a running background service.
type backgroundServiceHandle struct {
	name string
	done <-chan struct{}
}

type serviceStartupDeps struct {
	ctx             context.Context
	cfg             *ServiceOrchestrationConfig
	logger          *slog.Logger
	enabledServices map[config.ServiceMode]bool
	errCh           chan error
}

func launchBackground(deps *serviceStartupDeps, descriptor backgroundService) <-chan struct{} {
	if deps == nil || !deps.enabledServices[descriptor.mode] {
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		err := descriptor.start(deps.ctx)
		if err == nil || errors.Is(err, context.Canceled) {
			return
		}
		errMsg := fmt.Errorf("%s failed: %w", descriptor.name, err)
		select {
		case deps.errCh <- errMsg:
		case <-deps.ctx.Done():
		default:
			deps.logger.WarnContext(deps.ctx, "dropping background service error",
				"service", descriptor.name,
				"error", errMsg)
		}
	}()

	deps.logger.InfoContext(deps.ctx, "background service started",
		"service", descriptor.name,
		"mode", descriptor.mode)

	return done
}

func newWorkerBackgroundService(deps *serviceStartupDeps) backgroundService {
	return backgroundService{
		mode: config.ServiceModeWorker,
		name: "job worker",
		start: func(ctx context.Context) error {
			runner, err := worker.NewRunner(worker.RunnerOptions{
				Queue:      deps.cfg.Services.Queue,
				Jobs:       deps.cfg.Services.Jobs,
				Simulation: deps.cfg.Services.Simulation,
				Worker:     deps.cfg.Config.Worker,
				QueueCfg:   deps.cfg.Config.Queue,
				Logger:     deps.logger,
				Metrics:    deps.cfg.Services.Observability.MetricsSink,
			})
			if err != nil {
				return fmt.Errorf("build worker: %w", err)
			}
			return runner.Run(ctx)
		},
	}
}

func newReaperBackgroundService(deps *serviceStartupDeps) backgroundService {
	return backgroundService{
		mode: config.ServiceModeReaper,
		name: "queue reaper",
		start: func(ctx context.Context) error {
			runner, err := reaper.NewRunner(reaper.RunnerOptions{
				Queue:     deps.cfg.Services.Queue,
				QueueName: deps.cfg.Config.Queue.Name,
				Config:    deps.cfg.Config.Reaper,
				Logger:    deps.logger,
				Metrics:   deps.cfg.Services.Observability.MetricsSink,
			})
			if err != nil {
				return fmt.Errorf("build reaper: %w", err)
			}
			return runner.Run(ctx)
		},
	}
}

func startBackgroundServices(deps *serviceStartupDeps) []backgroundServiceHandle {
	services := []backgroundService{
		newWorkerBackgroundService(deps),
		newReaperBackgroundService(deps),
	}

	handles := make([]backgroundServiceHandle, 0, len(services))
	for _, svc := range services {
		done := launchBackground(deps, svc)
		if done == nil {
			continue
		}
		handles = append(handles, backgroundServiceHandle{name: svc.name, done: done})
	}
	return handles
}

// RunServicesWithShutdown starts all enabled services and manages their lifecycle.
// This function blocks until a shutdown signal is received or a service fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	if cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}

	serviceCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	enabledServices, err := cfg.Config.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("determine enabled services: %w", err)
	}
	errCh := make(chan error, len(enabledServices)+1)

	handles := startBackgroundServices(&serviceStartupDeps{
		ctx:             serviceCtx,
		cfg:             cfg,
		logger:          logger,
		enabledServices: enabledServices,
		errCh:           errCh,
	})

	return waitForShutdown(shutdownConfig{
		cancel:      cancel,
		errCh:       errCh,
		logger:      logger,
		backgrounds: handles,
	})
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	cancel      context.CancelFunc
	errCh       <-chan error
	logger      *slog.Logger
	backgrounds []backgroundServiceHandle
}

// waitForShutdown waits for shutdown signal or service error.
func waitForShutdown(cfg shutdownConfig) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		cfg.logger.Info("shutting down services...")
		cfg.cancel()
		gracefulStop(cfg)
		return nil
	case err := <-cfg.errCh:
		cfg.logger.Error("service error", "error", err)
		cfg.cancel()
		gracefulStop(cfg)
		return err
	}
}

// gracefulStop waits for background services to finish.
func gracefulStop(cfg shutdownConfig) {
	for _, svc := range cfg.backgrounds {
		waitForService(svc.done, svc.name, cfg.logger)
	}
}

// waitForService waits for a service to finish with timeout.
func waitForService(done <-chan struct{}, name string, logger *slog.Logger) {
	if done == nil {
		return
	}
	select {
	case <-done:
		logger.Info(name + " stopped")
	case <-time.After(shutdownWaitTimeout):
		logger.Warn("timeout waiting for " + name + " to stop")
	}
}
