// Package whatsapp drives a WhatsApp Web session in a headless Chrome through
// chromedp. The session is persisted in a Chrome user-data directory, so the
// QR pairing only happens once per host.
package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zapcrm/whatsapp-integration/internal/core/domain"
	"github.com/zapcrm/whatsapp-integration/internal/core/ports"
)

const (
	webURL             = "https://web.whatsapp.com/"
	defaultSendTimeout = 45 * time.Second
	statusTimeout      = 5 * time.Second
	launchTimeout      = 60 * time.Second

	selComposer = `footer div[contenteditable="true"]`
	selSend     = `span[data-icon="send"]`
)

// Options configures the browser session.
type Options struct {
	SessionDir  string
	Headless    bool
	ChromePath  string
	SendTimeout time.Duration
}

// Client is a ports.Messenger backed by one WhatsApp Web tab. Tab operations
// are serialised; the session can be restarted without recreating the Client.
type Client struct {
	opts Options
	log  zerolog.Logger

	mu          sync.Mutex
	allocCancel context.CancelFunc
	tab         context.Context
	tabCancel   context.CancelFunc
	restarting  atomic.Bool
}

func NewClient(opts Options, log zerolog.Logger) *Client {
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = defaultSendTimeout
	}
	return &Client{opts: opts, log: log.With().Str("component", "whatsapp").Logger()}
}

// Start launches the browser and opens WhatsApp Web. The session is not
// necessarily authenticated when Start returns; see Status.
func (c *Client) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.launch(ctx)
}

func (c *Client) launch(ctx context.Context) error {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserDataDir(c.opts.SessionDir),
		chromedp.Flag("headless", c.opts.Headless),
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)
	if c.opts.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(c.opts.ChromePath))
	}

	// The browser outlives the caller's context; Close ends it.
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.WithoutCancel(ctx), allocOpts...)
	tab, tabCancel := chromedp.NewContext(allocCtx,
		chromedp.WithErrorf(func(format string, args ...any) {
			c.log.Debug().Msgf(format, args...)
		}),
	)

	// Allocate the browser on the long-lived tab context first; a timeout on
	// the first Run would tear the browser down with it.
	if err := chromedp.Run(tab); err != nil {
		tabCancel()
		allocCancel()
		return fmt.Errorf("start browser: %w", err)
	}

	launchCtx, cancel := context.WithTimeout(tab, launchTimeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(launchCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(inboundObserverJS).Do(ctx)
			return err
		}),
		chromedp.Navigate(webURL),
	)
	if err != nil {
		tabCancel()
		allocCancel()
		return fmt.Errorf("launch whatsapp web: %w", err)
	}

	c.allocCancel, c.tab, c.tabCancel = allocCancel, tab, tabCancel
	c.log.Info().Str("session_dir", c.opts.SessionDir).Bool("headless", c.opts.Headless).Msg("whatsapp web opened")
	return nil
}

func (c *Client) shutdown() {
	if c.tabCancel != nil {
		c.tabCancel()
	}
	if c.allocCancel != nil {
		c.allocCancel()
	}
	c.tab, c.tabCancel, c.allocCancel = nil, nil, nil
}

// Close terminates the browser.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shutdown()
}

// run executes actions on the tab, bounded by timeout and by ctx.
func (c *Client) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if c.tab == nil {
		return domain.ErrMessengerUnavailable
	}
	runCtx, cancel := context.WithTimeout(c.tab, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

type pageState struct {
	Authenticated bool   `json:"authenticated"`
	QR            string `json:"qr"`
}

const pageStateJS = `(() => {
	const qr = document.querySelector('div[data-ref]');
	return {
		authenticated: !!document.querySelector('#pane-side'),
		qr: qr ? qr.getAttribute('data-ref') : ''
	};
})()`

func (c *Client) Status(ctx context.Context) ports.MessengerStatus {
	if c.restarting.Load() {
		return ports.MessengerStatus{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var st pageState
	if err := c.run(ctx, statusTimeout, chromedp.Evaluate(pageStateJS, &st)); err != nil {
		c.log.Debug().Err(err).Msg("status probe failed")
		return ports.MessengerStatus{}
	}
	if st.QR != "" && !st.Authenticated {
		c.log.Info().Msg("whatsapp web is waiting for a QR scan")
	}
	return ports.MessengerStatus{
		Authenticated: st.Authenticated,
		Connected:     true,
		QRCode:        st.QR,
	}
}

const lastOutgoingIDJS = `(() => {
	const rows = document.querySelectorAll('[data-id^="true_"]');
	return rows.length ? rows[rows.length - 1].getAttribute('data-id') : '';
})()`

// Send opens the chat with to, types body and submits it. The returned id is
// WhatsApp's id of the sent message when it can be read back from the page.
func (c *Client) Send(ctx context.Context, to, body string) (string, error) {
	phone := domain.NormalizePhone(to)
	if phone == "" {
		return "", fmt.Errorf("%w: invalid recipient %q", domain.ErrSendFailed, to)
	}
	if c.restarting.Load() {
		return "", domain.ErrMessengerUnavailable
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var st pageState
	if err := c.run(ctx, statusTimeout, chromedp.Evaluate(pageStateJS, &st)); err != nil {
		if errors.Is(err, domain.ErrMessengerUnavailable) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", domain.ErrMessengerUnavailable, err)
	}
	if !st.Authenticated {
		return "", domain.ErrMessengerUnavailable
	}

	var dataID string
	err := c.run(ctx, c.opts.SendTimeout,
		chromedp.Navigate(sendURL(phone, body)),
		chromedp.WaitVisible(selComposer, chromedp.ByQuery),
		chromedp.Click(selSend, chromedp.ByQuery),
		chromedp.Sleep(time.Second),
		chromedp.Evaluate(lastOutgoingIDJS, &dataID, awaitPromise),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSendFailed, err)
	}

	if id := messageIDFromDataID(dataID); id != "" {
		return id, nil
	}
	return uuid.NewString(), nil
}

// Restart tears the browser down and launches it again in the background.
func (c *Client) Restart(context.Context) error {
	if !c.restarting.CompareAndSwap(false, true) {
		return nil
	}
	go func() {
		defer c.restarting.Store(false)

		c.mu.Lock()
		defer c.mu.Unlock()

		c.shutdown()
		if err := c.launch(context.Background()); err != nil {
			c.log.Error().Err(err).Msg("whatsapp restart failed")
			return
		}
		c.log.Info().Msg("whatsapp restarted")
	}()
	return nil
}

type capturedMessage struct {
	DataID string `json:"id"`
	Body   string `json:"body"`
	At     int64  `json:"at"`
}

const drainInboundJS = `(() => {
	const q = window.__waInbound || [];
	window.__waInbound = [];
	return q;
})()`

// Poll drains the messages captured by the in-page observer since the last call.
func (c *Client) Poll(ctx context.Context) ([]ports.InboundMessage, error) {
	if c.restarting.Load() {
		return nil, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var captured []capturedMessage
	if err := c.run(ctx, statusTimeout, chromedp.Evaluate(drainInboundJS, &captured)); err != nil {
		return nil, fmt.Errorf("poll inbound: %w", err)
	}

	out := make([]ports.InboundMessage, 0, len(captured))
	for _, m := range captured {
		from := senderFromDataID(m.DataID)
		if from == "" {
			continue
		}
		out = append(out, ports.InboundMessage{
			MessageID: messageIDFromDataID(m.DataID),
			From:      from,
			Body:      m.Body,
			Timestamp: time.UnixMilli(m.At).UTC(),
		})
	}
	return out, nil
}

func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}

func sendURL(phone, body string) string {
	q := url.Values{}
	q.Set("phone", phone)
	q.Set("text", body)
	return webURL + "send?" + q.Encode()
}

// Message rows carry data-id="<fromMe>_<chatId>_<messageId>", e.g.
// "false_5511999999999@c.us_3EB0C431D5A3B1F4".
func splitDataID(dataID string) (fromMe, chat, id string, ok bool) {
	parts := strings.SplitN(dataID, "_", 3)
	if len(parts) != 3 || parts[2] == "" {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

// senderFromDataID returns the sender phone of an incoming one-to-one message.
// Group chats (@g.us) and own messages yield "".
func senderFromDataID(dataID string) string {
	fromMe, chat, _, ok := splitDataID(dataID)
	if !ok || fromMe != "false" || !strings.HasSuffix(chat, "@c.us") {
		return ""
	}
	return domain.NormalizePhone(chat)
}

func messageIDFromDataID(dataID string) string {
	_, _, id, ok := splitDataID(dataID)
	if !ok {
		return ""
	}
	return id
}
