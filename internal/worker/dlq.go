package worker

// dlq.go
// Failed jobs land in a per-source-queue dead-letter list ("dlq:" + queue)
// carrying enough context to diagnose and replay them by hand.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DLQPrefix = "dlq:"

type deadLetter struct {
	Queue    string          `json:"queue"`
	JobType  string          `json:"job_type"`
	Payload  json.RawMessage `json:"payload"`
	Reason   string          `json:"reason"`
	FailedAt time.Time       `json:"failed_at"`
	Attempts int             `json:"attempts"`
}

// SendToDLQ parks a job that could not be processed. Best-effort: a DLQ
// write failure is logged, never propagated, so it cannot take a worker down.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue, jobType string, payload json.RawMessage, reason string, attempts int) {
	entry, err := json.Marshal(deadLetter{
		Queue:    queue,
		JobType:  jobType,
		Payload:  payload,
		Reason:   reason,
		FailedAt: time.Now().UTC(),
		Attempts: attempts,
	})
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: marshal entry")
		return
	}

	if err := rdb.LPush(ctx, DLQPrefix+queue, entry).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: push entry")
		return
	}

	log.Warn().
		Str("queue", queue).
		Str("job_type", jobType).
		Str("reason", reason).
		Int("attempts", attempts).
		Msg("job moved to dead letter queue")
}

// DLQLength reports how many entries are parked for a queue.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}

// RequeueDLQ drains the dead-letter list back onto its source queue and
// returns how many jobs were replayed. Entries that no longer parse stay
// parked.
func RequeueDLQ(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	var replayed int64
	for {
		raw, err := rdb.RPop(ctx, DLQPrefix+queue).Result()
		if err == redis.Nil {
			return replayed, nil
		}
		if err != nil {
			return replayed, err
		}

		var entry deadLetter
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Error().Err(err).Str("queue", queue).Msg("dlq: unparseable entry — keeping parked")
			_ = rdb.LPush(ctx, DLQPrefix+queue, raw).Err()
			return replayed, err
		}

		job, err := json.Marshal(Job{Type: entry.JobType, Payload: entry.Payload})
		if err != nil {
			return replayed, err
		}
		if err := rdb.LPush(ctx, queue, job).Err(); err != nil {
			return replayed, err
		}
		replayed++
	}
}
