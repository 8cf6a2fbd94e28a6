package whatsapp

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/zapcrm/whatsapp-integration/internal/core/ports"
)

func zeroLogger() zerolog.Logger { return zerolog.Nop() }

type stubSource struct {
	mu      sync.Mutex
	batches [][]ports.InboundMessage
	err     error
}

func (s *stubSource) Poll(context.Context) ([]ports.InboundMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if len(s.batches) == 0 {
		return nil, nil
	}
	b := s.batches[0]
	s.batches = s.batches[1:]
	return b, nil
}

type stubQueue struct {
	mu   sync.Mutex
	got  []ports.InboundMessage
	sent chan struct{}
}

func (q *stubQueue) EnqueueBatch(_ context.Context, msgs []ports.InboundMessage) error {
	q.mu.Lock()
	q.got = append(q.got, msgs...)
	q.mu.Unlock()
	q.sent <- struct{}{}
	return nil
}

func TestPoller_ForwardsCapturedMessages(t *testing.T) {
	src := &stubSource{batches: [][]ports.InboundMessage{
		{{MessageID: "a", From: "111"}, {MessageID: "b", From: "222"}},
	}}
	q := &stubQueue{sent: make(chan struct{}, 4)}
	p := NewPoller(src, q, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	select {
	case <-q.sent:
	case <-time.After(2 * time.Second):
		t.Fatalf("poller never enqueued")
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("run returned %v", err)
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.got) != 2 || q.got[0].MessageID != "a" || q.got[1].MessageID != "b" {
		t.Fatalf("unexpected enqueued messages: %+v", q.got)
	}
}

func TestPoller_PollErrorsAreSkipped(t *testing.T) {
	src := &stubSource{err: errors.New("tab gone")}
	q := &stubQueue{sent: make(chan struct{}, 1)}
	p := NewPoller(src, q, time.Millisecond, zerolog.Nop())

	p.tick(context.Background())
	p.tick(context.Background())

	if len(q.got) != 0 {
		t.Fatalf("expected nothing enqueued, got %+v", q.got)
	}
}
