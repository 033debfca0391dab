// Package worker runs detached background tasks that outlive the request
// that scheduled them.
package worker

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var tasksInFlight = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "journal_background_tasks_in_flight",
	Help: "Number of background tasks currently running.",
})

// Dispatcher starts fire-and-forget tasks and tracks them for shutdown.
// Tasks get a fresh background context and are never cancelled.
type Dispatcher struct {
	wg       sync.WaitGroup
	inFlight atomic.Int64
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(log zerolog.Logger) *Dispatcher {
	return &Dispatcher{log: log.With().Str("component", "worker").Logger()}
}

// Go runs fn on its own goroutine. A panic in fn is logged and contained.
func (d *Dispatcher) Go(name string, fn func(ctx context.Context)) {
	d.wg.Add(1)
	d.inFlight.Add(1)
	tasksInFlight.Inc()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				d.log.Error().
					Str("task", name).
					Interface("panic", r).
					Bytes("stack", debug.Stack()).
					Msg("background task panicked")
			}
			tasksInFlight.Dec()
			d.inFlight.Add(-1)
			d.wg.Done()
		}()

		start := time.Now()
		fn(context.Background())
		d.log.Debug().Str("task", name).Dur("elapsed", time.Since(start)).Msg("background task finished")
	}()
}

// InFlight reports how many tasks are still running.
func (d *Dispatcher) InFlight() int64 {
	return d.inFlight.Load()
}

// Shutdown waits for running tasks until ctx is done. Tasks still running
// at that point are abandoned.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%d background task(s) still running: %w", d.InFlight(), ctx.Err())
	}
}
