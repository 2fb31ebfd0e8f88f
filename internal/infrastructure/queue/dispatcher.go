package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/traveluniverse/booking-system/internal/core/domain"
	"github.com/traveluniverse/booking-system/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Stats summarises a dispatcher run. Rejected counts booking conflicts;
// Failed counts every other error plus requests still queued when the
// workers were cancelled.
type Stats struct {
	Created  int
	Rejected int
	Failed   int
}

// Dispatcher feeds reservation requests to a fixed set of workers using
// consistent hashing on the destination id, so requests for one destination
// are booked in the order they were enqueued.
type Dispatcher struct {
	workers []chan ports.CreateReservationInput
	service ports.ReservationService
	log     zerolog.Logger

	wg    sync.WaitGroup
	mu    sync.Mutex
	stats Stats
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ReservationService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.CreateReservationInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.CreateReservationInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled or
// Close is called.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a request to the worker responsible for its destination.
// It blocks while that worker's buffer is full and returns ctx.Err() once
// ctx is done.
func (d *Dispatcher) Enqueue(ctx context.Context, in ports.CreateReservationInput) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case d.workers[d.shardIndex(in.DestinationID)] <- in:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// EnqueueBatch enqueues multiple requests preserving per-destination ordering.
// It stops at the first request that could not be queued.
func (d *Dispatcher) EnqueueBatch(ctx context.Context, ins []ports.CreateReservationInput) error {
	for _, in := range ins {
		if err := d.Enqueue(ctx, in); err != nil {
			return err
		}
	}
	return nil
}

// Close stops accepting work, waits for the queued requests to drain and
// returns the totals. Enqueue must not be called afterwards.
func (d *Dispatcher) Close() Stats {
	for _, ch := range d.workers {
		close(ch)
	}
	d.wg.Wait()

	d.mu.Lock()
	defer d.mu.Unlock()
	// workers that stopped on cancellation leave their backlog behind
	for _, ch := range d.workers {
		for range ch {
			d.stats.Failed++
		}
	}
	return d.stats
}

// shardIndex maps a destination id deterministically to a worker index.
func (d *Dispatcher) shardIndex(destinationID int64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatInt(destinationID, 10)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.CreateReservationInput) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-ch:
			if !ok {
				return
			}
			_, err := d.service.Create(ctx, in)
			d.record(err)
			if err == nil {
				continue
			}
			event := d.log.Error()
			msg := "reservation import failed"
			if errors.Is(err, domain.ErrReservationConflict) {
				event, msg = d.log.Warn(), "reservation import rejected"
			}
			event.Err(err).
				Int64("destination_id", in.DestinationID).
				Str("check_in", in.CheckIn).
				Str("check_out", in.CheckOut).
				Int("worker_id", id).
				Msg(msg)
		}
	}
}

func (d *Dispatcher) record(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch {
	case err == nil:
		d.stats.Created++
	case errors.Is(err, domain.ErrReservationConflict):
		d.stats.Rejected++
	default:
		d.stats.Failed++
	}
}
