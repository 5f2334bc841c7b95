package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/myfav-coworker/prverify/internal/core"
	"github.com/myfav-coworker/prverify/internal/domain/model"
	"github.com/myfav-coworker/prverify/internal/domain/verdict"
	"github.com/myfav-coworker/prverify/internal/observability/metrics"
	"github.com/myfav-coworker/prverify/internal/observability/statsd"
)

// SimulationServiceOptions groups dependencies for SimulationService.
type SimulationServiceOptions struct {
	Repositories *RepositoryService // Required
	Planner      core.PlanGenerator // Required: plan service (agent + fallback)
	Executor     *ExecutorService   // Required
	Logger       *slog.Logger       // Optional: structured logger
	Metrics      statsd.Sink        // Optional: metric sink
}

// SimulationService runs one job's verification pipeline:
// checkout, diff, plan, execute, determine.
type SimulationService struct {
	repositories *RepositoryService
	planner      core.PlanGenerator
	executor     *ExecutorService
	logger       *slog.Logger
	metrics      statsd.Sink
}

// NewSimulationService constructs a new SimulationService.
func NewSimulationService(opts SimulationServiceOptions) (*SimulationService, error) {
	if opts.Repositories == nil {
		return nil, fmt.Errorf("RepositoryService is required")
	}
	if opts.Planner == nil {
		return nil, fmt.Errorf("PlanGenerator is required")
	}
	if opts.Executor == nil {
		return nil, fmt.Errorf("ExecutorService is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &SimulationService{
		repositories: opts.Repositories,
		planner:      opts.Planner,
		executor:     opts.Executor,
		logger:       logger.With("component", "simulation_service"),
		metrics:      opts.Metrics,
	}, nil
}

// Run executes the full pipeline for a job and builds its report. An error
// return means the pipeline could not reach execution (repository or diff
// stage); the caller marks the job failed.
func (s *SimulationService) Run(ctx context.Context, job *model.JobRecord) (*model.SimulationReport, error) {
	start := time.Now()
	logger := s.logger.With("job_id", job.JobID)

	path, err := s.repositories.EnsureClone(ctx, job.PROwner, job.PRRepo, job.UserID)
	if err != nil {
		return nil, fmt.Errorf("ensure repository: %w", err)
	}

	if err := s.repositories.Checkout(ctx, path, job.PRHeadSHA); err != nil {
		return nil, fmt.Errorf("checkout head: %w", err)
	}

	summary, err := s.repositories.Diff(ctx, path, job.PRBaseSHA, job.PRHeadSHA)
	if err != nil {
		return nil, fmt.Errorf("compute diff: %w", err)
	}

	plan, err := s.planner.Generate(ctx, summary)
	if err != nil {
		// The plan service falls back internally; an error here means even
		// the fallback path was unusable.
		return nil, fmt.Errorf("generate plan: %w", err)
	}
	logger.InfoContext(ctx, "test plan ready",
		"generated_by", string(plan.GeneratedBy),
		"test_cases", len(plan.TestCases),
		"strategy", string(plan.ExecutionStrategy))

	execution, err := s.executor.Execute(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("execute plan: %w", err)
	}

	determination := verdict.Determine(execution.TestResults, plan.RiskLevel)
	logger.InfoContext(ctx, "simulation finished",
		"overall_result", string(determination.OverallResult),
		"pass_rate", determination.PassRate,
		"duration_seconds", execution.DurationSeconds)

	metrics.EmitSimulation(s.metrics, metrics.SimulationMetric{
		OverallResult: string(determination.OverallResult),
		GeneratedBy:   string(plan.GeneratedBy),
		TestsTotal:    determination.TotalTests,
		TestsPassed:   determination.PassedTests,
		Duration:      time.Since(start),
	})

	return &model.SimulationReport{
		Result:              string(determination.OverallResult),
		Summary:             execution.Summary,
		ExecutionLogs:       execution.Logs,
		TestPlan:            plan,
		TestResults:         execution.TestResults,
		ResultDetermination: determination,
		Timestamp:           time.Now().UTC(),
	}, nil
}
