// Package worker provides the queue-driven job runner.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/myfav-coworker/prverify/config"
	"github.com/myfav-coworker/prverify/internal/core"
	"github.com/myfav-coworker/prverify/internal/data"
	"github.com/myfav-coworker/prverify/internal/domain/model"
	"github.com/myfav-coworker/prverify/internal/observability/statsd"
	"github.com/myfav-coworker/prverify/internal/service"
)

// Outcome classifies how one message was handled.
type Outcome string

// Outcomes of processing a single message.
const (
	OutcomeCompleted Outcome = "completed"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeFailed    Outcome = "failed"
)

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Queue      core.MessageQueue
	Jobs       *service.JobService
	Simulation *service.SimulationService
	Worker     config.WorkerConfig
	QueueCfg   config.QueueConfig
	Logger     *slog.Logger
	Metrics    statsd.Sink
}

// Runner is the single-consumer poll/process/acknowledge loop. At most one
// message is in flight per poll; the loop itself never aborts on a single
// job's failure.
type Runner struct {
	queue        core.MessageQueue
	jobs         *service.JobService
	simulation   *service.SimulationService
	pollInterval time.Duration
	waitTime     time.Duration
	logger       *slog.Logger
	metrics      statsd.Sink
}

// NewRunner creates a new worker runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Queue == nil {
		return nil, errors.New("MessageQueue is required")
	}
	if opts.Jobs == nil {
		return nil, errors.New("JobService is required")
	}
	if opts.Simulation == nil {
		return nil, errors.New("SimulationService is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		queue:        opts.Queue,
		jobs:         opts.Jobs,
		simulation:   opts.Simulation,
		pollInterval: opts.Worker.PollInterval,
		waitTime:     opts.QueueCfg.WaitTime,
		logger:       logger.With("component", "job_worker"),
		metrics:      opts.Metrics,
	}, nil
}

// Run polls the queue until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting job worker",
		"poll_interval", r.pollInterval.String(),
		"wait_time", r.waitTime.String())

	for {
		if err := ctx.Err(); err != nil {
			r.logger.InfoContext(ctx, "job worker stopping")
			return err
		}

		messages, err := r.queue.Receive(ctx, 1, r.waitTime)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			r.logger.ErrorContext(ctx, "queue receive failed", "error", err)
			r.sleep(ctx, r.pollInterval)
			continue
		}
		if len(messages) == 0 {
			r.sleep(ctx, r.pollInterval)
			continue
		}

		for i := range messages {
			r.handleMessage(ctx, &messages[i])
		}
	}
}

func (r *Runner) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}

// handleMessage runs ProcessMessage and acknowledges per its outcome. The
// message is deleted only on a completed or skipped outcome; on failure it
// stays in flight so the visibility timeout gives an implicit retry.
func (r *Runner) handleMessage(ctx context.Context, msg *core.QueueMessage) {
	outcome := r.ProcessMessage(ctx, msg.Body)

	switch outcome {
	case OutcomeCompleted, OutcomeSkipped:
		if err := r.queue.Delete(ctx, msg.ReceiptHandle); err != nil {
			r.logger.WarnContext(ctx, "failed to delete queue message",
				"message_id", msg.MessageID,
				"error", err)
		}
	case OutcomeFailed:
		r.logger.InfoContext(ctx, "leaving message for redelivery",
			"message_id", msg.MessageID)
	}

	if r.metrics != nil {
		r.metrics.Count("worker.message", 1, map[string]string{"outcome": string(outcome)})
	}
}

// ProcessMessage advances one job through its state machine.
func (r *Runner) ProcessMessage(ctx context.Context, body []byte) Outcome {
	var msg model.SimulationMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		r.logger.WarnContext(ctx, "malformed message, deleting", "error", err)
		return OutcomeSkipped
	}
	if err := msg.Validate(); err != nil {
		r.logger.WarnContext(ctx, "invalid message, deleting", "error", err)
		return OutcomeSkipped
	}
	if msg.Action != model.ActionStartSimulation {
		r.logger.WarnContext(ctx, "unrecognized message action, deleting",
			"job_id", msg.JobID,
			"action", msg.Action)
		return OutcomeSkipped
	}

	logger := r.logger.With("job_id", msg.JobID)

	job, err := r.jobs.Load(ctx, msg.JobID)
	if err != nil {
		if errors.Is(err, data.ErrJobNotFound) {
			// Leave the message: the submission path may not have persisted
			// the record yet, and the queue's own policy bounds redelivery.
			logger.ErrorContext(ctx, "job record not found")
			return OutcomeFailed
		}
		logger.ErrorContext(ctx, "failed to load job record", "error", err)
		return OutcomeFailed
	}

	// At-least-once guard: a job already terminal was handled by an earlier
	// delivery of this message.
	if job.Status != model.JobStatusPending && job.Status != model.JobStatusRunning {
		logger.InfoContext(ctx, "job already terminal, skipping",
			"status", string(job.Status))
		return OutcomeSkipped
	}

	if err := r.jobs.MarkRunning(ctx, job); err != nil {
		logger.ErrorContext(ctx, "failed to persist running checkpoint", "error", err)
		return OutcomeFailed
	}

	report, err := r.simulation.Run(ctx, job)
	if err != nil {
		logger.ErrorContext(ctx, "simulation failed", "error", err)
		if failErr := r.jobs.Fail(ctx, job, err, nil); failErr != nil {
			logger.ErrorContext(ctx, "failed to persist failed job", "error", failErr)
		}
		return OutcomeFailed
	}

	if err := r.jobs.Complete(ctx, job, report); err != nil {
		// The job ran to completion but the write failed; leaving the
		// message lets redelivery retry the persist.
		logger.ErrorContext(ctx, "failed to persist completed job", "error", err)
		return OutcomeFailed
	}

	logger.InfoContext(ctx, "message processed",
		"result", report.Result)
	return OutcomeCompleted
}
