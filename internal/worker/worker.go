// Package worker runs the asynchronous half of the pipeline: a pool of
// goroutines that drain the dispatcher and drive each message through
// QUEUED -> PROCESSING -> DELIVERED, or fail the job.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/labstack/gommon/log"

	"br.com.tucano.courier/internal/model"
	"br.com.tucano.courier/internal/queue"
)

type Store interface {
	Message(id model.MessageID) (*model.Message, error)
	TransitionMessage(id model.MessageID, status model.Status) error
}

type Pool struct {
	queue     queue.Queue
	store     Store
	deliverer Deliverer
	size      int
	logger    *log.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewPool(q queue.Queue, store Store, deliverer Deliverer, size int) *Pool {
	if size <= 0 {
		size = 1
	}
	return &Pool{
		queue:     q,
		store:     store,
		deliverer: deliverer,
		size:      size,
		logger:    log.New("worker"),
	}
}

func (p *Pool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.run(ctx)
	}
	p.logger.Infof("started %d delivery workers", p.size)
}

// Stop cancels the pool and waits for in-flight jobs to wind down. A job
// interrupted mid-delivery is failed, not retried.
func (p *Pool) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}

func (p *Pool) run(ctx context.Context) {
	defer p.wg.Done()
	for {
		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			p.logger.Errorf("dequeue: %+v", err)
			continue
		}

		if err := p.process(ctx, job); err != nil {
			p.logger.Errorf("processing job %s: %+v", job.ID, err)
			p.queue.Fail(ctx, job, err)
			continue
		}
		p.queue.Ack(ctx, job)
	}
}

// process drives one job through the status machine. On any error the message
// is left in whatever status it last reached; callers watching status have to
// tolerate a lingering PROCESSING after a failed delivery.
func (p *Pool) process(ctx context.Context, job *queue.Job) error {
	message, err := p.store.Message(job.ID)
	if err != nil {
		return fmt.Errorf("loading message: %w", err)
	}

	if err := p.store.TransitionMessage(message.ID, model.StatusProcessing); err != nil {
		return fmt.Errorf("marking message processing: %w", err)
	}

	if err := p.deliverer.Deliver(ctx, message); err != nil {
		return fmt.Errorf("delivering message: %w", err)
	}

	if err := p.store.TransitionMessage(message.ID, model.StatusDelivered); err != nil {
		return fmt.Errorf("marking message delivered: %w", err)
	}

	p.logger.Infof("message %s delivered", message.ID)
	return nil
}
