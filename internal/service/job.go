package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/myfav-coworker/prverify/internal/core"
	"github.com/myfav-coworker/prverify/internal/domain/model"
	"github.com/myfav-coworker/prverify/internal/observability/metrics"
	"github.com/myfav-coworker/prverify/internal/observability/statsd"
)

// JobServiceOptions groups dependencies for JobService.
type JobServiceOptions struct {
	Store   core.JobStore // Required: job persistence
	Logger  *slog.Logger  // Optional: structured logger
	Metrics statsd.Sink   // Optional: metric sink
}

// JobService owns job state transitions. Status only moves forward; every
// transition is persisted as a full-record overwrite.
type JobService struct {
	store   core.JobStore
	logger  *slog.Logger
	metrics statsd.Sink
}

// NewJobService constructs a new JobService.
func NewJobService(opts JobServiceOptions) (*JobService, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("JobStore is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &JobService{
		store:   opts.Store,
		logger:  logger.With("component", "job_service"),
		metrics: opts.Metrics,
	}, nil
}

// Load fetches a job record.
func (s *JobService) Load(ctx context.Context, jobID string) (*model.JobRecord, error) {
	return s.store.Get(ctx, jobID)
}

// MarkRunning transitions a pending job to running and persists immediately
// as the crash-recovery checkpoint before any expensive work. A job already
// running is left as is so redelivered messages can resume it.
func (s *JobService) MarkRunning(ctx context.Context, job *model.JobRecord) error {
	if job.Status == model.JobStatusRunning {
		return nil
	}
	if !job.Status.CanTransitionTo(model.JobStatusRunning) {
		return fmt.Errorf("job %s cannot move from %s to running", job.JobID, job.Status)
	}

	job.Status = model.JobStatusRunning
	if err := s.store.Put(ctx, job); err != nil {
		return fmt.Errorf("persist running checkpoint: %w", err)
	}

	s.logger.InfoContext(ctx, "job running", "job_id", job.JobID)
	metrics.EmitJobLifecycle(s.metrics, metrics.JobMetric{
		Transition: string(model.JobStatusRunning),
		Result:     metrics.ResultSuccess,
	})
	return nil
}

// Complete moves a running job to completed with its report attached.
func (s *JobService) Complete(ctx context.Context, job *model.JobRecord, report *model.SimulationReport) error {
	if !job.Status.CanTransitionTo(model.JobStatusCompleted) {
		return fmt.Errorf("job %s cannot move from %s to completed", job.JobID, job.Status)
	}

	now := time.Now().UTC()
	job.Status = model.JobStatusCompleted
	job.Report = report
	job.ErrorMessage = ""
	job.CompletedAt = &now

	if err := s.store.Put(ctx, job); err != nil {
		return fmt.Errorf("persist completed job: %w", err)
	}

	s.logger.InfoContext(ctx, "job completed",
		"job_id", job.JobID,
		"result", report.Result)
	metrics.EmitJobLifecycle(s.metrics, metrics.JobMetric{
		Transition: string(model.JobStatusCompleted),
		Result:     metrics.ResultSuccess,
		Duration:   now.Sub(job.CreatedAt),
	})
	return nil
}

// Fail moves a running job to failed with an error message and a best-effort
// partial report. When no partial report exists a minimal one is synthesised
// so terminal records always carry a report.
func (s *JobService) Fail(ctx context.Context, job *model.JobRecord, cause error, partial *model.SimulationReport) error {
	if !job.Status.CanTransitionTo(model.JobStatusFailed) {
		return fmt.Errorf("job %s cannot move from %s to failed", job.JobID, job.Status)
	}

	now := time.Now().UTC()
	report := partial
	if report == nil {
		report = &model.SimulationReport{
			Result:        string(model.ResultFail),
			Summary:       fmt.Sprintf("Simulation failed: %v", cause),
			ExecutionLogs: []string{},
			Timestamp:     now,
		}
	}

	job.Status = model.JobStatusFailed
	job.Report = report
	job.ErrorMessage = cause.Error()
	job.CompletedAt = &now

	if err := s.store.Put(ctx, job); err != nil {
		return fmt.Errorf("persist failed job: %w", err)
	}

	s.logger.ErrorContext(ctx, "job failed",
		"job_id", job.JobID,
		"error", cause)
	metrics.EmitJobLifecycle(s.metrics, metrics.JobMetric{
		Transition: string(model.JobStatusFailed),
		Result:     metrics.ResultError,
		Duration:   now.Sub(job.CreatedAt),
		Err:        cause,
	})
	return nil
}
