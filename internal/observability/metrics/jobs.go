// Package metrics standardises metric emission for job and simulation events.
package metrics

import (
	"time"

	obserrors "github.com/myfav-coworker/prverify/internal/observability/errors"
	"github.com/myfav-coworker/prverify/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultSkipped = "skipped"
)

// JobMetric captures details about a job lifecycle event for metric emission.
type JobMetric struct {
	Transition string
	Result     string
	Duration   time.Duration
	Err        error
}

// EmitJobLifecycle emits standardised job lifecycle metrics.
func EmitJobLifecycle(sink statsd.Sink, in JobMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"transition": in.Transition,
		"result":     in.Result,
	}
	if in.Err != nil && in.Result == ResultError {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("job.transition", 1, tags)
	if in.Duration > 0 {
		sink.Timing("job.duration", in.Duration, tags)
	}
}

// SimulationMetric captures details about a finished simulation run.
type SimulationMetric struct {
	OverallResult string
	GeneratedBy   string
	TestsTotal    int
	TestsPassed   int
	Duration      time.Duration
}

// EmitSimulation emits verdict and coverage metrics for a simulation run.
func EmitSimulation(sink statsd.Sink, in SimulationMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"overall_result": in.OverallResult,
		"generated_by":   in.GeneratedBy,
	}

	sink.Count("simulation.completed", 1, tags)
	sink.Gauge("simulation.tests_total", float64(in.TestsTotal), tags)
	sink.Gauge("simulation.tests_passed", float64(in.TestsPassed), tags)
	if in.Duration > 0 {
		sink.Timing("simulation.duration", in.Duration, tags)
	}
}

// EmitQueueDepth emits gauges for queue backlog monitoring.
func EmitQueueDepth(sink statsd.Sink, queue string, pending, inFlight int64) {
	if sink == nil {
		return
	}
	tags := map[string]string{"queue": queue}
	sink.Gauge("queue.pending", float64(pending), tags)
	sink.Gauge("queue.in_flight", float64(inFlight), tags)
}
