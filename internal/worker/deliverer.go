package worker

import (
	"context"
	"time"

	"br.com.tucano.courier/internal/model"
)

// Deliverer performs the actual transport call for one message.
type Deliverer interface {
	Deliver(ctx context.Context, message *model.Message) error
}

// SimulatedDeliverer stands in for a real carrier: it just waits the
// configured latency. Useful for local runs and the default wiring.
type SimulatedDeliverer struct {
	Latency time.Duration
}

func (d *SimulatedDeliverer) Deliver(ctx context.Context, _ *model.Message) error {
	select {
	case <-time.After(d.Latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
