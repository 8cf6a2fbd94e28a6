package whatsapp

import (
	"context"

	"github.com/zapcrm/whatsapp-integration/internal/core/domain"
	"github.com/zapcrm/whatsapp-integration/internal/core/ports"
)

// Disabled stands in for the browser session when WHATSAPP_ENABLED=false.
type Disabled struct{}

func (Disabled) Send(context.Context, string, string) (string, error) {
	return "", domain.ErrMessengerUnavailable
}

func (Disabled) Status(context.Context) ports.MessengerStatus { return ports.MessengerStatus{} }

func (Disabled) Restart(context.Context) error { return domain.ErrMessengerUnavailable }

func (Disabled) Poll(context.Context) ([]ports.InboundMessage, error) { return nil, nil }
