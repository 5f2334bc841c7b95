// Package reaper requeues queue messages whose visibility deadline lapsed.
package reaper

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/myfav-coworker/prverify/config"
	"github.com/myfav-coworker/prverify/internal/data"
	"github.com/myfav-coworker/prverify/internal/observability/metrics"
	"github.com/myfav-coworker/prverify/internal/observability/statsd"
)

// ReclaimableQueue is the slice of the queue the reaper needs.
type ReclaimableQueue interface {
	ReclaimExpired(ctx context.Context) (int, error)
	Stats(ctx context.Context) (data.QueueStats, error)
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Queue     ReclaimableQueue
	QueueName string
	Config    config.ReaperConfig
	Logger    *slog.Logger
	Metrics   statsd.Sink
}

// Runner periodically returns expired in-flight messages to the pending
// queue, completing the at-least-once redelivery contract, and reports
// queue depth on every pass.
type Runner struct {
	queue     ReclaimableQueue
	queueName string
	interval  time.Duration
	logger    *slog.Logger
	metrics   statsd.Sink
}

// NewRunner creates a new reaper runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Queue == nil {
		return nil, errors.New("queue is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		queue:     opts.Queue,
		queueName: opts.QueueName,
		interval:  opts.Config.Interval,
		logger:    logger.With("component", "queue_reaper"),
		metrics:   opts.Metrics,
	}, nil
}

// Run reclaims on the configured interval until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting queue reaper", "interval", r.interval.String())

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "queue reaper stopping")
			return ctx.Err()
		case <-ticker.C:
			r.reapOnce(ctx)
		}
	}
}

func (r *Runner) reapOnce(ctx context.Context) {
	requeued, err := r.queue.ReclaimExpired(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "reclaim pass failed", "error", err)
		return
	}
	if requeued > 0 {
		r.logger.InfoContext(ctx, "reclaimed expired messages", "count", requeued)
		if r.metrics != nil {
			r.metrics.Count("reaper.requeued", int64(requeued), nil)
		}
	}

	r.emitDepth(ctx)
}

func (r *Runner) emitDepth(ctx context.Context) {
	if r.metrics == nil {
		return
	}
	stats, err := r.queue.Stats(ctx)
	if err != nil {
		r.logger.WarnContext(ctx, "queue stats failed", "error", err)
		return
	}
	metrics.EmitQueueDepth(r.metrics, r.queueName, stats.Pending, stats.InFlight)
}
