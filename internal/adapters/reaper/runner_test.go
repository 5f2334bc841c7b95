package reaper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myfav-coworker/prverify/config"
	"github.com/myfav-coworker/prverify/internal/data"
)

type stubQueue struct {
	requeued   int
	reclaimErr error
	stats      data.QueueStats
	statsErr   error
	statsCalls int
}

func (q *stubQueue) ReclaimExpired(context.Context) (int, error) {
	return q.requeued, q.reclaimErr
}

func (q *stubQueue) Stats(context.Context) (data.QueueStats, error) {
	q.statsCalls++
	return q.stats, q.statsErr
}

type recordedMetric struct {
	name  string
	value float64
	tags  map[string]string
}

type recordingSink struct {
	counts []recordedMetric
	gauges []recordedMetric
}

func (s *recordingSink) Count(name string, value int64, tags map[string]string) {
	s.counts = append(s.counts, recordedMetric{name: name, value: float64(value), tags: tags})
}

func (s *recordingSink) Gauge(name string, value float64, tags map[string]string) {
	s.gauges = append(s.gauges, recordedMetric{name: name, value: value, tags: tags})
}

func (s *recordingSink) Timing(string, time.Duration, map[string]string) {}

func newTestRunner(t *testing.T, queue ReclaimableQueue, sink *recordingSink) *Runner {
	t.Helper()

	runner, err := NewRunner(RunnerOptions{
		Queue:     queue,
		QueueName: "prverify-simulation-queue",
		Config:    config.ReaperConfig{Interval: time.Second},
		Metrics:   sink,
	})
	require.NoError(t, err)
	return runner
}

func TestNewRunnerRequiresQueue(t *testing.T) {
	_, err := NewRunner(RunnerOptions{})
	require.Error(t, err)
}

func TestReapOnceEmitsRequeueCountAndQueueDepth(t *testing.T) {
	queue := &stubQueue{requeued: 2, stats: data.QueueStats{Pending: 5, InFlight: 1}}
	sink := &recordingSink{}
	runner := newTestRunner(t, queue, sink)

	runner.reapOnce(context.Background())

	require.Len(t, sink.counts, 1)
	assert.Equal(t, "reaper.requeued", sink.counts[0].name)
	assert.Equal(t, float64(2), sink.counts[0].value)

	require.Len(t, sink.gauges, 2)
	assert.Equal(t, "queue.pending", sink.gauges[0].name)
	assert.Equal(t, float64(5), sink.gauges[0].value)
	assert.Equal(t, map[string]string{"queue": "prverify-simulation-queue"}, sink.gauges[0].tags)
	assert.Equal(t, "queue.in_flight", sink.gauges[1].name)
	assert.Equal(t, float64(1), sink.gauges[1].value)
}

func TestReapOnceEmitsDepthWhenNothingReclaimed(t *testing.T) {
	queue := &stubQueue{stats: data.QueueStats{Pending: 3}}
	sink := &recordingSink{}
	runner := newTestRunner(t, queue, sink)

	runner.reapOnce(context.Background())

	assert.Empty(t, sink.counts)
	require.Len(t, sink.gauges, 2)
	assert.Equal(t, float64(3), sink.gauges[0].value)
}

func TestReapOnceSkipsDepthAfterReclaimFailure(t *testing.T) {
	queue := &stubQueue{reclaimErr: errors.New("redis down")}
	sink := &recordingSink{}
	runner := newTestRunner(t, queue, sink)

	runner.reapOnce(context.Background())

	assert.Zero(t, queue.statsCalls)
	assert.Empty(t, sink.gauges)
}

func TestReapOnceWithoutSinkSkipsStats(t *testing.T) {
	queue := &stubQueue{requeued: 1}
	runner, err := NewRunner(RunnerOptions{
		Queue:  queue,
		Config: config.ReaperConfig{Interval: time.Second},
	})
	require.NoError(t, err)

	runner.reapOnce(context.Background())

	assert.Zero(t, queue.statsCalls)
}
