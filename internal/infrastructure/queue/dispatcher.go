package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/zapcrm/whatsapp-integration/internal/api/metrics"
	"github.com/zapcrm/whatsapp-integration/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes inbound WhatsApp messages to a fixed set of workers using
// consistent hashing on the sender, so messages from one sender are processed
// in arrival order.
type Dispatcher struct {
	workers []chan ports.InboundMessage
	service ports.InboundService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.InboundService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.InboundMessage, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.InboundMessage, channelBuffer)
	}
	return d
}

// Run processes queued messages until ctx is cancelled and every worker has
// returned. Messages still queued at that point are dropped.
func (d *Dispatcher) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	for i, ch := range d.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.runWorker(ctx, i, ch)
		}()
	}
	wg.Wait()
	return nil
}

// Enqueue hands msg to the worker responsible for its sender. It blocks while
// that worker's buffer is full, until ctx ends.
func (d *Dispatcher) Enqueue(ctx context.Context, msg ports.InboundMessage) error {
	idx := d.shardIndex(msg.From)
	select {
	case d.workers[idx] <- msg:
		metrics.InboundQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// EnqueueBatch enqueues msgs in order, preserving per-sender ordering.
func (d *Dispatcher) EnqueueBatch(ctx context.Context, msgs []ports.InboundMessage) error {
	for _, m := range msgs {
		if err := d.Enqueue(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// shardIndex maps a sender deterministically to a worker index.
func (d *Dispatcher) shardIndex(sender string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sender))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.InboundMessage) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-ch:
			metrics.InboundQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			start := time.Now()
			result := "success"
			if err := d.service.Process(ctx, msg); err != nil {
				result = "error"
				d.log.Error().Err(err).
					Str("message_id", msg.MessageID).
					Int("worker_id", id).
					Msg("inbound processing failed")
			}
			metrics.InboundProcessedTotal.WithLabelValues(result).Inc()
			metrics.InboundProcessingDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
		}
	}
}
