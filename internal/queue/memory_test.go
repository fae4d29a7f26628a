package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"br.com.tucano.courier/internal/model"
)

func job(id string, priority int) Job {
	return Job{
		ID:       model.MessageID(id),
		Payload:  model.Message{ID: model.MessageID(id), Content: "payload-" + id},
		Priority: priority,
	}
}

func TestLanePrecedence(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	q := NewMemoryQueue()

	// arrival order mixes the lanes deliberately
	assert.Nil(q.Enqueue(ctx, job("n1", PriorityNormal)))
	assert.Nil(q.Enqueue(ctx, job("u1", PriorityUrgent)))
	assert.Nil(q.Enqueue(ctx, job("n2", PriorityNormal)))
	assert.Nil(q.Enqueue(ctx, job("u2", PriorityUrgent)))

	order := []string{}
	for i := 0; i < 4; i++ {
		dequeued, err := q.Dequeue(ctx)
		assert.Nil(err)
		order = append(order, string(dequeued.ID))
	}

	assert.Equal([]string{"u1", "u2", "n1", "n2"}, order)
}

func TestIdempotentEnqueue(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	t.Run("resubmission keeps one job with the latest payload", func(t *testing.T) {
		q := NewMemoryQueue()
		assert.Nil(q.Enqueue(ctx, job("m1", PriorityNormal)))

		updated := job("m1", PriorityNormal)
		updated.Payload.Content = "updated"
		assert.Nil(q.Enqueue(ctx, updated))

		dequeued, err := q.Dequeue(ctx)
		assert.Nil(err)
		assert.Equal("updated", dequeued.Payload.Content)

		cancelCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		_, err = q.Dequeue(cancelCtx)
		assert.NotNil(err)
	})

	t.Run("an active job is not re-queued", func(t *testing.T) {
		q := NewMemoryQueue()
		assert.Nil(q.Enqueue(ctx, job("m1", PriorityNormal)))

		_, err := q.Dequeue(ctx)
		assert.Nil(err)

		assert.Nil(q.Enqueue(ctx, job("m1", PriorityNormal)))
		state, err := q.JobState(ctx, "m1")
		assert.Nil(err)
		assert.Equal(JobStateActive, state)
	})
}

func TestJobLifecycle(t *testing.T) {
	anError := assert.AnError
	assert := assert.New(t)
	ctx := context.Background()
	q := NewMemoryQueue()

	assert.Nil(q.Enqueue(ctx, job("ok", PriorityNormal)))
	assert.Nil(q.Enqueue(ctx, job("bad", PriorityNormal)))

	state, err := q.JobState(ctx, "ok")
	assert.Nil(err)
	assert.Equal(JobStateQueued, state)

	first, err := q.Dequeue(ctx)
	assert.Nil(err)
	assert.Nil(q.Ack(ctx, first))

	second, err := q.Dequeue(ctx)
	assert.Nil(err)
	assert.Nil(q.Fail(ctx, second, anError))

	state, err = q.JobState(ctx, "ok")
	assert.Nil(err)
	assert.Equal(JobStateCompleted, state)

	state, err = q.JobState(ctx, "bad")
	assert.Nil(err)
	assert.Equal(JobStateFailed, state)

	stats, err := q.Stats(ctx)
	assert.Nil(err)
	assert.Len(stats.Completed, 1)
	assert.Len(stats.Failed, 1)
	assert.Equal(model.MessageID("ok"), stats.Completed[0].ID)
	assert.Equal(model.MessageID("bad"), stats.Failed[0].ID)

	_, err = q.JobState(ctx, "never-seen")
	assert.ErrorIs(err, model.ErrorJobNotFound)
}

func TestDequeueBlocksUntilWork(t *testing.T) {
	assert := assert.New(t)
	q := NewMemoryQueue()

	t.Run("cancellation unblocks the waiter", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := q.Dequeue(ctx)
		assert.ErrorIs(err, context.DeadlineExceeded)
	})

	t.Run("a late enqueue wakes the waiter", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		go func() {
			time.Sleep(10 * time.Millisecond)
			q.Enqueue(context.Background(), job("late", PriorityNormal))
		}()

		dequeued, err := q.Dequeue(ctx)
		assert.Nil(err)
		assert.Equal(model.MessageID("late"), dequeued.ID)
	})
}

func TestNewJobMapsPriorityToLane(t *testing.T) {
	assert := assert.New(t)

	urgent := NewJob(&model.Message{ID: "m1", Priority: model.PriorityUrgent})
	assert.Equal(PriorityUrgent, urgent.Priority)

	normal := NewJob(&model.Message{ID: "m2", Priority: model.PriorityNormal})
	assert.Equal(PriorityNormal, normal.Priority)
}
