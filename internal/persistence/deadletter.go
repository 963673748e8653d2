package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spec-kit/ticket-triage/internal/domain"
)

// RedisDeadLetterQueue records failed pipeline invocations in a Redis list
// for later inspection.
type RedisDeadLetterQueue struct {
	redis *Redis
	key   string
}

// NewRedisDeadLetterQueue creates a queue backed by the given list key.
func NewRedisDeadLetterQueue(r *Redis, key string) *RedisDeadLetterQueue {
	return &RedisDeadLetterQueue{redis: r, key: key}
}

// Enqueue pushes the failure record onto the queue.
func (q *RedisDeadLetterQueue) Enqueue(ctx context.Context, record domain.FailureRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("dead-letter: marshal: %w", err)
	}
	if err := q.redis.Client.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("dead-letter: %w", err)
	}
	return nil
}
