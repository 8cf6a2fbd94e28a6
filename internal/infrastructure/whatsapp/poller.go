package whatsapp

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/zapcrm/whatsapp-integration/internal/core/ports"
)

const defaultPollInterval = 5 * time.Second

// Source yields inbound messages captured since the previous call.
type Source interface {
	Poll(ctx context.Context) ([]ports.InboundMessage, error)
}

// Enqueuer accepts inbound messages for asynchronous processing.
type Enqueuer interface {
	EnqueueBatch(ctx context.Context, msgs []ports.InboundMessage) error
}

// Poller moves captured inbound messages from the session to the dispatcher.
type Poller struct {
	src      Source
	queue    Enqueuer
	interval time.Duration
	log      zerolog.Logger
}

func NewPoller(src Source, queue Enqueuer, interval time.Duration, log zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Poller{src: src, queue: queue, interval: interval, log: log}
}

// Run polls every interval until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	msgs, err := p.src.Poll(ctx)
	if err != nil {
		p.log.Warn().Err(err).Msg("inbound poll failed")
		return
	}
	if len(msgs) == 0 {
		return
	}
	if err := p.queue.EnqueueBatch(ctx, msgs); err != nil {
		p.log.Warn().Err(err).Int("count", len(msgs)).Msg("failed to enqueue inbound messages")
		return
	}
	p.log.Debug().Int("count", len(msgs)).Msg("inbound messages enqueued")
}
