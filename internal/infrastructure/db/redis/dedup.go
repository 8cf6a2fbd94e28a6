package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zapcrm/whatsapp-integration/internal/api/metrics"
)

const dedupTTL = 24 * time.Hour

// Deduper remembers which inbound WhatsApp message ids were already handled.
// Key format: wa:inbound:<message_id>
type Deduper struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewDeduper(client redis.Cmdable) *Deduper {
	return &Deduper{client: client, ttl: dedupTTL}
}

// Claim marks messageID as handled and reports whether this call was the
// first to do so.
func (d *Deduper) Claim(ctx context.Context, messageID string) (bool, error) {
	fresh, err := d.client.SetNX(ctx, key(messageID), "1", d.ttl).Result()
	if err != nil {
		metrics.InboundDedupTotal.WithLabelValues("error").Inc()
		return false, fmt.Errorf("dedup claim: %w", err)
	}
	if fresh {
		metrics.InboundDedupTotal.WithLabelValues("miss").Inc()
	} else {
		metrics.InboundDedupTotal.WithLabelValues("hit").Inc()
	}
	return fresh, nil
}

// Release forgets messageID so a later delivery is processed again.
func (d *Deduper) Release(ctx context.Context, messageID string) error {
	if err := d.client.Del(ctx, key(messageID)).Err(); err != nil {
		return fmt.Errorf("dedup release: %w", err)
	}
	return nil
}

func key(messageID string) string {
	return "wa:inbound:" + messageID
}
