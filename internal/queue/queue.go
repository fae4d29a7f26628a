// Package queue holds the two-lane priority dispatcher the delivery pipeline
// runs on. Jobs are keyed by message id; enqueueing an id that is already
// waiting replaces the payload instead of creating a second job.
package queue

import (
	"context"

	"br.com.tucano.courier/internal/model"
)

const (
	PriorityUrgent = 1
	PriorityNormal = 2
)

type JobState string

const (
	JobStateQueued    JobState = "queued"
	JobStateActive    JobState = "active"
	JobStateCompleted JobState = "completed"
	JobStateFailed    JobState = "failed"
)

type Job struct {
	ID       model.MessageID `json:"id"`
	Payload  model.Message   `json:"payload"`
	Priority int             `json:"priority"`
}

type Stats struct {
	Completed []Job `json:"completed"`
	Failed    []Job `json:"failed"`
}

// Queue is the contract any backing runtime has to satisfy. Dequeue blocks
// until a job is ready or the context is cancelled, yields every urgent job
// ahead of any normal one, FIFO within a lane, and hands a given job to
// exactly one worker per attempt.
type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Dequeue(ctx context.Context) (*Job, error)
	Ack(ctx context.Context, job *Job) error
	Fail(ctx context.Context, job *Job, cause error) error
	JobState(ctx context.Context, id model.MessageID) (JobState, error)
	Stats(ctx context.Context) (Stats, error)
}

// NewJob builds the envelope for a message, mapping its priority to a lane.
func NewJob(message *model.Message) Job {
	priority := PriorityNormal
	if message.Priority == model.PriorityUrgent {
		priority = PriorityUrgent
	}
	return Job{
		ID:       message.ID,
		Payload:  *message,
		Priority: priority,
	}
}
