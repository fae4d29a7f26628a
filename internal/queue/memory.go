package queue

import (
	"context"
	"sync"

	"br.com.tucano.courier/internal/model"
)

// MemoryQueue is the in-process backend. It is the default and the one the
// delivery pipeline is tested against; RedisQueue covers multi-process setups.
type MemoryQueue struct {
	mu     sync.Mutex
	urgent []*Job
	normal []*Job
	states map[model.MessageID]JobState

	completed []Job
	failed    []Job

	wake chan struct{}
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{
		states: make(map[model.MessageID]JobState),
		wake:   make(chan struct{}, 1),
	}
}

func (q *MemoryQueue) Enqueue(_ context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if state, ok := q.states[job.ID]; ok {
		if state == JobStateQueued {
			// same key resubmitted: refresh the payload, keep the lane slot
			for _, lane := range [][]*Job{q.urgent, q.normal} {
				for _, waiting := range lane {
					if waiting.ID == job.ID {
						waiting.Payload = job.Payload
						break
					}
				}
			}
		}
		return nil
	}

	queued := job
	if queued.Priority == PriorityUrgent {
		q.urgent = append(q.urgent, &queued)
	} else {
		q.normal = append(q.normal, &queued)
	}
	q.states[job.ID] = JobStateQueued

	q.signal()
	return nil
}

func (q *MemoryQueue) Dequeue(ctx context.Context) (*Job, error) {
	for {
		q.mu.Lock()
		job := q.pop()
		if job != nil {
			q.states[job.ID] = JobStateActive
			if len(q.urgent)+len(q.normal) > 0 {
				q.signal()
			}
			q.mu.Unlock()
			return job, nil
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.wake:
		}
	}
}

func (q *MemoryQueue) Ack(_ context.Context, job *Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.states[job.ID] = JobStateCompleted
	q.completed = append(q.completed, *job)
	return nil
}

func (q *MemoryQueue) Fail(_ context.Context, job *Job, _ error) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.states[job.ID] = JobStateFailed
	q.failed = append(q.failed, *job)
	return nil
}

func (q *MemoryQueue) JobState(_ context.Context, id model.MessageID) (JobState, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	state, ok := q.states[id]
	if !ok {
		return "", model.ErrorJobNotFound
	}
	return state, nil
}

func (q *MemoryQueue) Stats(_ context.Context) (Stats, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	stats := Stats{
		Completed: make([]Job, len(q.completed)),
		Failed:    make([]Job, len(q.failed)),
	}
	copy(stats.Completed, q.completed)
	copy(stats.Failed, q.failed)
	return stats, nil
}

// pop takes the next ready job, urgent lane first. Caller holds the lock.
func (q *MemoryQueue) pop() *Job {
	if len(q.urgent) > 0 {
		job := q.urgent[0]
		q.urgent = q.urgent[1:]
		return job
	}
	if len(q.normal) > 0 {
		job := q.normal[0]
		q.normal = q.normal[1:]
		return job
	}
	return nil
}

func (q *MemoryQueue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}
