package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/myfav-coworker/prverify/internal/core"
)

// messageEnvelope is the wire form stored in Redis. The body stays opaque so
// the queue never has to understand job payloads.
type messageEnvelope struct {
	MessageID string          `json:"message_id"`
	Body      json.RawMessage `json:"body"`
	Delivered int             `json:"delivered"`
}

// RedisQueueConfig holds configuration options for the Redis-backed queue.
type RedisQueueConfig struct {
	Name              string
	VisibilityTimeout time.Duration
	Logger            *slog.Logger
	TimeProvider      TimeProvider
}

// RedisQueue implements an at-least-once message queue on Redis.
//
// Pending messages wait in a list. Receive moves a message into a processing
// list with BLMOVE, so it is always held by exactly one Redis key, then
// registers it in a sorted set scored by its visibility deadline with the
// envelope parked in a hash under a fresh receipt handle. Delete acks by
// removing both. ReclaimExpired pushes lapsed in-flight messages back to the
// head of the pending list, so redeliveries jump the queue, and returns any
// message stranded in the processing list by a consumer crash.
type RedisQueue struct {
	client            redis.UniversalClient
	name              string
	visibilityTimeout time.Duration
	timeProvider      TimeProvider
	logger            *slog.Logger
}

// NewRedisQueue creates a new RedisQueue with the given client and configuration.
func NewRedisQueue(client redis.UniversalClient, cfg RedisQueueConfig) *RedisQueue {
	tp := cfg.TimeProvider
	if tp == nil {
		tp = &RealTimeProvider{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &RedisQueue{
		client:            client,
		name:              cfg.Name,
		visibilityTimeout: cfg.VisibilityTimeout,
		timeProvider:      tp,
		logger:            logger,
	}
}

func (q *RedisQueue) pendingKey() string { return "queue:" + q.name + ":pending" }

func (q *RedisQueue) processingKey() string { return "queue:" + q.name + ":processing" }

func (q *RedisQueue) inflightKey() string { return "queue:" + q.name + ":inflight" }

func (q *RedisQueue) bodiesKey() string { return "queue:" + q.name + ":bodies" }

// Send enqueues a message body and returns its message id.
func (q *RedisQueue) Send(ctx context.Context, body []byte) (string, error) {
	if len(body) == 0 {
		return "", ErrEmptyMessageBody
	}
	if !json.Valid(body) {
		return "", fmt.Errorf("message body is not valid JSON")
	}

	env := messageEnvelope{
		MessageID: uuid.NewString(),
		Body:      json.RawMessage(body),
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("encode message envelope: %w", err)
	}

	if err := q.client.RPush(ctx, q.pendingKey(), raw).Err(); err != nil {
		return "", fmt.Errorf("redis rpush: %w", err)
	}
	return env.MessageID, nil
}

// Receive returns up to maxMessages messages, blocking up to wait for the
// first one. Each returned message is in flight until Delete is called with
// its receipt handle or the visibility timeout lapses.
func (q *RedisQueue) Receive(ctx context.Context, maxMessages int, wait time.Duration) ([]core.QueueMessage, error) {
	if maxMessages < 1 {
		maxMessages = 1
	}

	var payloads []string

	// Block only for the first message, then drain without waiting. Each move
	// is atomic, so a message is always in either the pending or the
	// processing list until it is registered in flight.
	first, err := q.client.BLMove(ctx, q.pendingKey(), q.processingKey(), "LEFT", "RIGHT", wait).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis blmove: %w", err)
	}
	payloads = append(payloads, first)

	for len(payloads) < maxMessages {
		val, err := q.client.LMove(ctx, q.pendingKey(), q.processingKey(), "LEFT", "RIGHT").Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				break
			}
			return nil, fmt.Errorf("redis lmove: %w", err)
		}
		payloads = append(payloads, val)
	}

	deadline := q.timeProvider.Now().Add(q.visibilityTimeout)
	messages := make([]core.QueueMessage, 0, len(payloads))

	for _, payload := range payloads {
		var env messageEnvelope
		if err := json.Unmarshal([]byte(payload), &env); err != nil {
			// A corrupt envelope can never be acked by a consumer; drop it
			// here instead of letting it bounce forever.
			q.logger.WarnContext(ctx, "dropping corrupt queue envelope", "queue", q.name, "error", err)
			q.client.LRem(ctx, q.processingKey(), 1, payload)
			continue
		}
		env.Delivered++

		receipt := uuid.NewString()
		parked, err := json.Marshal(env)
		if err != nil {
			return nil, fmt.Errorf("encode message envelope: %w", err)
		}

		pipe := q.client.TxPipeline()
		pipe.ZAdd(ctx, q.inflightKey(), redis.Z{Score: float64(deadline.Unix()), Member: receipt})
		pipe.HSet(ctx, q.bodiesKey(), receipt, parked)
		pipe.LRem(ctx, q.processingKey(), 1, payload)
		if _, err := pipe.Exec(ctx); err != nil {
			// The payload stays in the processing list; the reaper will
			// return it to pending.
			return nil, fmt.Errorf("redis park in-flight: %w", err)
		}

		messages = append(messages, core.QueueMessage{
			MessageID:     env.MessageID,
			Body:          []byte(env.Body),
			ReceiptHandle: receipt,
		})
	}

	return messages, nil
}

// Delete acknowledges an in-flight message so it is never redelivered.
func (q *RedisQueue) Delete(ctx context.Context, receiptHandle string) error {
	if receiptHandle == "" {
		return ErrReceiptNotFound
	}

	pipe := q.client.TxPipeline()
	zrem := pipe.ZRem(ctx, q.inflightKey(), receiptHandle)
	pipe.HDel(ctx, q.bodiesKey(), receiptHandle)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis ack: %w", err)
	}
	if zrem.Val() == 0 {
		return fmt.Errorf("%w: %s", ErrReceiptNotFound, receiptHandle)
	}
	return nil
}

// ReclaimExpired moves messages whose visibility deadline has passed back to
// the head of the pending list and returns how many were requeued. It also
// sweeps the processing list: a message parks there only between the pop and
// the in-flight registration, so anything the reaper sees was stranded by a
// consumer that died mid-receive.
func (q *RedisQueue) ReclaimExpired(ctx context.Context) (int, error) {
	requeued, err := q.reclaimProcessing(ctx)
	if err != nil {
		return requeued, err
	}

	now := q.timeProvider.Now()
	expired, err := q.client.ZRangeByScore(ctx, q.inflightKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%d", now.Unix()),
	}).Result()
	if err != nil {
		return requeued, fmt.Errorf("redis zrangebyscore: %w", err)
	}
	if len(expired) == 0 {
		return requeued, nil
	}

	for _, receipt := range expired {
		raw, err := q.client.HGet(ctx, q.bodiesKey(), receipt).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Acked between the range scan and here; just clear the score.
				q.client.ZRem(ctx, q.inflightKey(), receipt)
				continue
			}
			return requeued, fmt.Errorf("redis hget in-flight body: %w", err)
		}

		pipe := q.client.TxPipeline()
		pipe.LPush(ctx, q.pendingKey(), raw)
		pipe.ZRem(ctx, q.inflightKey(), receipt)
		pipe.HDel(ctx, q.bodiesKey(), receipt)
		if _, err := pipe.Exec(ctx); err != nil {
			return requeued, fmt.Errorf("redis requeue: %w", err)
		}
		requeued++
	}

	q.logger.InfoContext(ctx, "requeued expired in-flight messages",
		"queue", q.name,
		"count", requeued)
	return requeued, nil
}

// reclaimProcessing returns stranded processing-list entries to the head of
// the pending list.
func (q *RedisQueue) reclaimProcessing(ctx context.Context) (int, error) {
	stranded, err := q.client.LRange(ctx, q.processingKey(), 0, -1).Result()
	if err != nil {
		return 0, fmt.Errorf("redis lrange processing: %w", err)
	}

	requeued := 0
	for _, raw := range stranded {
		pipe := q.client.TxPipeline()
		pipe.LPush(ctx, q.pendingKey(), raw)
		pipe.LRem(ctx, q.processingKey(), 1, raw)
		if _, err := pipe.Exec(ctx); err != nil {
			return requeued, fmt.Errorf("redis requeue stranded: %w", err)
		}
		requeued++
	}

	if requeued > 0 {
		q.logger.WarnContext(ctx, "requeued stranded processing messages",
			"queue", q.name,
			"count", requeued)
	}
	return requeued, nil
}

// QueueStats is a point-in-time snapshot of queue depth.
type QueueStats struct {
	Pending  int64 `json:"pending"`
	InFlight int64 `json:"in_flight"`
}

// Stats reports the current pending and in-flight message counts.
func (q *RedisQueue) Stats(ctx context.Context) (QueueStats, error) {
	pipe := q.client.TxPipeline()
	pending := pipe.LLen(ctx, q.pendingKey())
	inflight := pipe.ZCard(ctx, q.inflightKey())
	if _, err := pipe.Exec(ctx); err != nil {
		return QueueStats{}, fmt.Errorf("redis queue stats: %w", err)
	}
	return QueueStats{Pending: pending.Val(), InFlight: inflight.Val()}, nil
}

// Health checks the Redis connection.
func (q *RedisQueue) Health(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}
