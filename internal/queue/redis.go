package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"br.com.tucano.courier/internal/model"
)

// RedisQueue keeps the two lanes as redis lists so several server processes
// can share one dispatcher. BRPOP scans the urgent key before the normal one,
// which gives the same strict lane precedence as the in-memory backend.
type RedisQueue struct {
	rdb    *redis.Client
	prefix string
}

type RedisOption func(*RedisQueue)

func WithPrefix(prefix string) RedisOption {
	return func(q *RedisQueue) { q.prefix = strings.Trim(prefix, ":") }
}

func NewRedisQueue(rdb *redis.Client, opts ...RedisOption) *RedisQueue {
	q := &RedisQueue{
		rdb:    rdb,
		prefix: "courier:queue",
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func (q *RedisQueue) laneKey(priority int) string {
	if priority == PriorityUrgent {
		return q.prefix + ":urgent"
	}
	return q.prefix + ":normal"
}

func (q *RedisQueue) stateKey() string   { return q.prefix + ":state" }
func (q *RedisQueue) payloadKey() string { return q.prefix + ":payload" }

func (q *RedisQueue) Enqueue(ctx context.Context, job Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshalling job: %w", err)
	}

	created, err := q.rdb.HSetNX(ctx, q.stateKey(), string(job.ID), string(JobStateQueued)).Result()
	if err != nil {
		return fmt.Errorf("marking job queued: %w", err)
	}
	if !created {
		state, err := q.rdb.HGet(ctx, q.stateKey(), string(job.ID)).Result()
		if err != nil {
			return fmt.Errorf("reading job state: %w", err)
		}
		if JobState(state) == JobStateQueued {
			if err := q.rdb.HSet(ctx, q.payloadKey(), string(job.ID), string(payload)).Err(); err != nil {
				return fmt.Errorf("refreshing job payload: %w", err)
			}
		}
		return nil
	}

	pipe := q.rdb.Pipeline()
	pipe.HSet(ctx, q.payloadKey(), string(job.ID), string(payload))
	pipe.LPush(ctx, q.laneKey(job.Priority), string(job.ID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("enqueueing job: %w", err)
	}
	return nil
}

func (q *RedisQueue) Dequeue(ctx context.Context) (*Job, error) {
	res, err := q.rdb.BRPop(ctx, 0, q.laneKey(PriorityUrgent), q.laneKey(PriorityNormal)).Result()
	if err != nil {
		return nil, fmt.Errorf("waiting for job: %w", err)
	}

	id := res[1]
	raw, err := q.rdb.HGet(ctx, q.payloadKey(), id).Result()
	if err != nil {
		return nil, fmt.Errorf("loading job payload: %w", err)
	}

	job := &Job{}
	if err := json.Unmarshal([]byte(raw), job); err != nil {
		return nil, fmt.Errorf("unmarshalling job: %w", err)
	}

	if err := q.rdb.HSet(ctx, q.stateKey(), id, string(JobStateActive)).Err(); err != nil {
		return nil, fmt.Errorf("marking job active: %w", err)
	}
	return job, nil
}

func (q *RedisQueue) Ack(ctx context.Context, job *Job) error {
	return q.finish(ctx, job, JobStateCompleted, q.prefix+":completed")
}

func (q *RedisQueue) Fail(ctx context.Context, job *Job, _ error) error {
	return q.finish(ctx, job, JobStateFailed, q.prefix+":failed")
}

func (q *RedisQueue) finish(ctx context.Context, job *Job, state JobState, listKey string) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshalling job: %w", err)
	}

	pipe := q.rdb.Pipeline()
	pipe.HSet(ctx, q.stateKey(), string(job.ID), string(state))
	pipe.HDel(ctx, q.payloadKey(), string(job.ID))
	pipe.LPush(ctx, listKey, string(payload))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("finishing job: %w", err)
	}
	return nil
}

func (q *RedisQueue) JobState(ctx context.Context, id model.MessageID) (JobState, error) {
	state, err := q.rdb.HGet(ctx, q.stateKey(), string(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", model.ErrorJobNotFound
		}
		return "", fmt.Errorf("reading job state: %w", err)
	}
	return JobState(state), nil
}

func (q *RedisQueue) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{}

	for _, bucket := range []struct {
		key  string
		dest *[]Job
	}{
		{q.prefix + ":completed", &stats.Completed},
		{q.prefix + ":failed", &stats.Failed},
	} {
		raw, err := q.rdb.LRange(ctx, bucket.key, 0, -1).Result()
		if err != nil {
			return Stats{}, fmt.Errorf("listing %s jobs: %w", bucket.key, err)
		}
		jobs := make([]Job, 0, len(raw))
		for _, item := range raw {
			job := Job{}
			if err := json.Unmarshal([]byte(item), &job); err != nil {
				return Stats{}, fmt.Errorf("unmarshalling job: %w", err)
			}
			jobs = append(jobs, job)
		}
		*bucket.dest = jobs
	}

	return stats, nil
}
