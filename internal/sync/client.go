package sync

import (
	"context"
	"encoding/json"
	"log"
	gosync "sync"

	"github.com/louisbranch/tavern/internal/notify"
)

// Client owns at most one live Connection, keyed by the current (token,
// userID) credential pair. Changing either credential tears the old
// connection down and, when both are present, starts a brand-new one; no
// state carries across credential changes.
type Client struct {
	cfg        Config
	dispatcher *Dispatcher
	notifier   notify.Notifier

	mu            gosync.Mutex
	conn          *Connection
	token         string
	userID        string
	onReconnected func()
}

// NewClient creates a client with no credentials and no connection.
func NewClient(cfg Config, dispatcher *Dispatcher, notifier notify.Notifier) *Client {
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}
	return &Client{
		cfg:        cfg,
		dispatcher: dispatcher,
		notifier:   notifier,
	}
}

// SetOnReconnected installs a hook run after every recovered drop of the
// current or any future connection. Events sent while disconnected are gone;
// the embedder uses this hook to re-fetch full state and close the gap.
func (c *Client) SetOnReconnected(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onReconnected = fn
}

// SetCredentials installs a new credential pair. The existing connection, if
// any, is stopped first. A new connection starts only when both the token and
// the user id are non-empty; until then the client stays in disconnected mode
// and no sync events are applied.
func (c *Client) SetCredentials(ctx context.Context, token, userID string) {
	c.mu.Lock()
	if token == c.token && userID == c.userID && c.conn != nil {
		c.mu.Unlock()
		return
	}
	old := c.conn
	c.conn = nil
	c.token = token
	c.userID = userID
	c.mu.Unlock()

	if old != nil {
		old.Stop()
	}
	if token == "" || userID == "" {
		return
	}

	registry := NewRegistry()
	conn, err := NewConnection(c.cfg, token, userID, registry, c.notifier)
	if err != nil {
		log.Printf("sync: cannot build connection: %v", err)
		return
	}
	conn.SetOnStarted(func() {
		if err := registry.Attach(standardBindings(c.dispatcher, c.notifier)); err != nil {
			log.Printf("sync: attach handlers: %v", err)
		}
	})
	conn.SetOnReconnected(func() {
		c.mu.Lock()
		fn := c.onReconnected
		c.mu.Unlock()
		if fn != nil {
			fn()
		}
	})

	c.mu.Lock()
	// Credentials may have changed again while the old connection stopped.
	if c.token != token || c.userID != userID {
		c.mu.Unlock()
		return
	}
	c.conn = conn
	c.mu.Unlock()

	conn.Start(ctx)
}

// Connection returns the current connection, or nil in disconnected mode.
func (c *Client) Connection() *Connection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn
}

// IsConnected reports whether a live push channel exists right now.
func (c *Client) IsConnected() bool {
	conn := c.Connection()
	return conn != nil && conn.IsConnected()
}

// Close stops any live connection. The client can be reused afterwards by
// setting credentials again.
func (c *Client) Close() {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.token = ""
	c.userID = ""
	c.mu.Unlock()
	if conn != nil {
		conn.Stop()
	}
}

// standardBindings maps the three supported frame kinds onto the dispatcher
// and the notification sink.
func standardBindings(d *Dispatcher, sink notify.Notifier) map[string]Handler {
	return map[string]Handler{
		FrameNotification: func(_ context.Context, payload json.RawMessage) {
			var n UserNotification
			if err := json.Unmarshal(payload, &n); err != nil {
				log.Printf("sync: dropping undecodable notification: %v", err)
				return
			}
			sink.Notify(notify.Notification{
				Title:       n.Sender,
				Message:     n.Content,
				Severity:    notify.SeverityInfo,
				AutoCloseMs: 5000,
			})
		},
		FrameEntityChanged: func(ctx context.Context, payload json.RawMessage) {
			var evt ChangeEvent
			if err := json.Unmarshal(payload, &evt); err != nil {
				log.Printf("sync: dropping undecodable change event: %v", err)
				return
			}
			d.DispatchEvent(ctx, evt)
		},
		FrameEntityBatchChanged: func(ctx context.Context, payload json.RawMessage) {
			var batch ChangeBatch
			if err := json.Unmarshal(payload, &batch); err != nil {
				log.Printf("sync: dropping undecodable change batch: %v", err)
				return
			}
			d.DispatchBatch(ctx, batch)
		},
	}
}
