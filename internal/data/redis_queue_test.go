package data

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageEnvelopeRoundTrip(t *testing.T) {
	env := messageEnvelope{
		MessageID: "0c9a7f2e-1111-4222-8333-444455556666",
		Body:      json.RawMessage(`{"job_id":"abc","action":"start_simulation"}`),
		Delivered: 2,
	}

	raw, err := json.Marshal(env)
	require.NoError(t, err)

	var decoded messageEnvelope
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, env.MessageID, decoded.MessageID)
	assert.Equal(t, env.Delivered, decoded.Delivered)
	assert.JSONEq(t, string(env.Body), string(decoded.Body))
}

func TestQueueKeyNamespacing(t *testing.T) {
	q := NewRedisQueue(nil, RedisQueueConfig{Name: "prverify-simulation-queue"})

	assert.Equal(t, "queue:prverify-simulation-queue:pending", q.pendingKey())
	assert.Equal(t, "queue:prverify-simulation-queue:processing", q.processingKey())
	assert.Equal(t, "queue:prverify-simulation-queue:inflight", q.inflightKey())
	assert.Equal(t, "queue:prverify-simulation-queue:bodies", q.bodiesKey())
}

func newTestQueue(t *testing.T, tp TimeProvider) (*RedisQueue, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	q := NewRedisQueue(client, RedisQueueConfig{
		Name:              "sim",
		VisibilityTimeout: 5 * time.Minute,
		TimeProvider:      tp,
	})
	return q, client
}

func TestReceiveParksMessageInFlight(t *testing.T) {
	ctx := context.Background()
	q, client := newTestQueue(t, nil)

	messageID, err := q.Send(ctx, []byte(`{"job_id":"j1","action":"start_simulation"}`))
	require.NoError(t, err)

	msgs, err := q.Receive(ctx, 1, 100*time.Millisecond)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	assert.Equal(t, messageID, msgs[0].MessageID)
	assert.NotEmpty(t, msgs[0].ReceiptHandle)
	assert.JSONEq(t, `{"job_id":"j1","action":"start_simulation"}`, string(msgs[0].Body))

	// Once in flight the message must be held nowhere else.
	assert.Zero(t, client.LLen(ctx, q.pendingKey()).Val())
	assert.Zero(t, client.LLen(ctx, q.processingKey()).Val())
	assert.Equal(t, int64(1), client.ZCard(ctx, q.inflightKey()).Val())
	assert.Equal(t, int64(1), client.HLen(ctx, q.bodiesKey()).Val())
}

func TestDeleteAcknowledgesInFlightMessage(t *testing.T) {
	ctx := context.Background()
	q, client := newTestQueue(t, nil)

	_, err := q.Send(ctx, []byte(`{"job_id":"j1"}`))
	require.NoError(t, err)
	msgs, err := q.Receive(ctx, 1, 100*time.Millisecond)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	require.NoError(t, q.Delete(ctx, msgs[0].ReceiptHandle))

	assert.Zero(t, client.ZCard(ctx, q.inflightKey()).Val())
	assert.Zero(t, client.HLen(ctx, q.bodiesKey()).Val())

	err = q.Delete(ctx, msgs[0].ReceiptHandle)
	assert.ErrorIs(t, err, ErrReceiptNotFound)
}

func TestReceiveReturnsNothingWhenEmpty(t *testing.T) {
	q, _ := newTestQueue(t, nil)

	msgs, err := q.Receive(context.Background(), 1, 50*time.Millisecond)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestReclaimExpiredRequeuesLapsedMessages(t *testing.T) {
	ctx := context.Background()
	tp := NewFixedTimeProvider(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	q, client := newTestQueue(t, tp)

	messageID, err := q.Send(ctx, []byte(`{"job_id":"j1"}`))
	require.NoError(t, err)
	msgs, err := q.Receive(ctx, 1, 100*time.Millisecond)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	// Still within the visibility window: nothing to do.
	requeued, err := q.ReclaimExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, requeued)

	tp.AddTime(6 * time.Minute)
	requeued, err = q.ReclaimExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, requeued)
	assert.Zero(t, client.ZCard(ctx, q.inflightKey()).Val())

	redelivered, err := q.Receive(ctx, 1, 100*time.Millisecond)
	require.NoError(t, err)
	require.Len(t, redelivered, 1)
	assert.Equal(t, messageID, redelivered[0].MessageID)
}

func TestReclaimExpiredReturnsStrandedProcessingMessages(t *testing.T) {
	ctx := context.Background()
	q, client := newTestQueue(t, nil)

	// A consumer that dies between the pop and the in-flight registration
	// leaves the envelope in the processing list.
	raw, err := json.Marshal(messageEnvelope{
		MessageID: "0c9a7f2e-1111-4222-8333-444455556666",
		Body:      json.RawMessage(`{"job_id":"j1","action":"start_simulation"}`),
	})
	require.NoError(t, err)
	require.NoError(t, client.RPush(ctx, q.processingKey(), raw).Err())

	requeued, err := q.ReclaimExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, requeued)
	assert.Zero(t, client.LLen(ctx, q.processingKey()).Val())
	assert.Equal(t, int64(1), client.LLen(ctx, q.pendingKey()).Val())

	msgs, err := q.Receive(ctx, 1, 100*time.Millisecond)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "0c9a7f2e-1111-4222-8333-444455556666", msgs[0].MessageID)
}

func TestStatsCountsPendingAndInFlight(t *testing.T) {
	ctx := context.Background()
	q, _ := newTestQueue(t, nil)

	_, err := q.Send(ctx, []byte(`{"job_id":"j1"}`))
	require.NoError(t, err)
	_, err = q.Send(ctx, []byte(`{"job_id":"j2"}`))
	require.NoError(t, err)

	msgs, err := q.Receive(ctx, 1, 100*time.Millisecond)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	stats, err := q.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, QueueStats{Pending: 1, InFlight: 1}, stats)
}

func TestJobPartitionKey(t *testing.T) {
	assert.Equal(t, "JOB#42", JobPartitionKey("42"))
}

func TestFixedTimeProvider(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tp := NewFixedTimeProvider(base)

	assert.Equal(t, base, tp.Now())

	tp.AddTime(90 * time.Second)
	assert.Equal(t, base.Add(90*time.Second), tp.Now())

	tp.SetTime(base)
	assert.Equal(t, base, tp.Now())
}
