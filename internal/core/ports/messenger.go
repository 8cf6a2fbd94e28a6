package ports

import (
	"context"
	"time"
)

// MessengerStatus reports the state of the WhatsApp session.
type MessengerStatus struct {
	Authenticated bool
	Connected     bool
	// QRCode holds the pairing payload while the session waits for a scan.
	QRCode        string
}

// Messenger is the outbound WhatsApp transport.
type Messenger interface {
	// Send delivers body to the phone number or chat id in to and returns the
	// transport's message id.
	Send(ctx context.Context, to, body string) (string, error)
	Status(ctx context.Context) MessengerStatus
	Restart(ctx context.Context) error
}

// InboundMessage is a message captured from the WhatsApp session.
type InboundMessage struct {
	MessageID string
	From      string // sender phone number, digits only
	Body      string
	Timestamp time.Time
}

// InboundService processes messages received from WhatsApp.
type InboundService interface {
	Process(ctx context.Context, msg InboundMessage) error
}
