package whatsapp

import (
	"context"
	"time"

	"github.com/zapcrm/whatsapp-integration/internal/api/metrics"
	"github.com/zapcrm/whatsapp-integration/internal/core/ports"
)

type instrumented struct {
	ports.Messenger
}

// Instrument records send counts and latency for m.
func Instrument(m ports.Messenger) ports.Messenger {
	return instrumented{m}
}

func (i instrumented) Send(ctx context.Context, to, body string) (string, error) {
	start := time.Now()
	id, err := i.Messenger.Send(ctx, to, body)
	metrics.SendDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MessagesSentTotal.WithLabelValues("error").Inc()
		return "", err
	}
	metrics.MessagesSentTotal.WithLabelValues("success").Inc()
	return id, nil
}
