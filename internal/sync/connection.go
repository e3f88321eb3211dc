package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	gosync "sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/louisbranch/tavern/internal/notify"
)

// State names one phase of the connection lifecycle.
type State string

const (
	// StateIdle means the connection was built but never started.
	StateIdle State = "idle"
	// StateConnecting means the first dial has not yet succeeded.
	StateConnecting State = "connecting"
	// StateConnected means the push channel is live.
	StateConnected State = "connected"
	// StateReconnecting means an established channel dropped and the
	// connection is retrying.
	StateReconnecting State = "reconnecting"
	// StateClosed means the connection was stopped and will never retry.
	StateClosed State = "closed"
)

const defaultHandshakeTimeout = 10 * time.Second

// Config carries the transport settings for a push-channel connection.
type Config struct {
	// Endpoint is the ws:// or wss:// URL of the campaign sync channel.
	Endpoint string
	// HandshakeTimeout bounds the websocket upgrade. Zero means 10s.
	HandshakeTimeout time.Duration
}

// Connection maintains exactly one logical push channel for a (token, user)
// pair. A changed credential never mutates an existing Connection; the owner
// builds a new one. Transport failures are logged and retried, never
// surfaced to callers.
type Connection struct {
	endpoint   string
	token      string
	userID     string
	registry   *Registry
	notifier   notify.Notifier
	dialer     *websocket.Dialer
	retryDelay func(previousRetries int) time.Duration

	// onStarted runs once, after the first successful dial and before the
	// read loop delivers any frame. onReconnected runs after every recovered
	// drop. Both are invoked from the connection goroutine.
	onStarted     func()
	onReconnected func()

	mu     gosync.Mutex
	state  State
	id     string
	ws     *websocket.Conn
	cancel context.CancelFunc
	done   chan struct{}
}

// NewConnection builds an idle connection bound to a credential pair. Both
// the bearer token and the user id are required; the owning client only
// constructs a connection once it holds both.
func NewConnection(cfg Config, token, userID string, registry *Registry, notifier notify.Notifier) (*Connection, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("sync endpoint is required")
	}
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("bearer token is required")
	}
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse sync endpoint: %w", err)
	}
	q := u.Query()
	q.Set("userId", userID)
	u.RawQuery = q.Encode()

	handshake := cfg.HandshakeTimeout
	if handshake <= 0 {
		handshake = defaultHandshakeTimeout
	}

	return &Connection{
		endpoint:   u.String(),
		token:      token,
		userID:     userID,
		registry:   registry,
		notifier:   notifier,
		dialer:     &websocket.Dialer{HandshakeTimeout: handshake},
		retryDelay: RetryDelay,
		state:      StateIdle,
	}, nil
}

// SetOnStarted installs the hook run once after the first successful dial.
// Must be called before Start.
func (c *Connection) SetOnStarted(fn func()) {
	c.onStarted = fn
}

// SetOnReconnected installs the hook run after every recovered drop. Must be
// called before Start.
func (c *Connection) SetOnReconnected(fn func()) {
	c.onReconnected = fn
}

// State returns the current lifecycle state.
func (c *Connection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsConnected reports whether the push channel is currently live.
func (c *Connection) IsConnected() bool {
	return c.State() == StateConnected
}

// ID returns the connection identifier, empty until the first successful
// dial.
func (c *Connection) ID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

// Start launches the connection loop. It returns immediately; dial failures
// are logged and retried on the backoff schedule rather than reported to the
// caller. Starting an already-started or closed connection is a no-op.
func (c *Connection) Start(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	c.state = StateConnecting
	c.cancel = cancel
	c.done = make(chan struct{})
	c.mu.Unlock()

	go c.run(runCtx)
}

// Stop tears the connection down: the transport is closed, the loop exits,
// and the registry's handlers are released so a successor connection never
// double-delivers. Stop is idempotent and safe to call in any state,
// including before Start.
func (c *Connection) Stop() {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return
	}
	c.state = StateClosed
	cancel := c.cancel
	ws := c.ws
	done := c.done
	c.cancel = nil
	c.ws = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if ws != nil {
		// Unblocks a pending ReadMessage so the loop can notice the cancel.
		_ = ws.Close()
	}
	if done != nil {
		<-done
	}
	c.registry.Detach()
}

func (c *Connection) run(ctx context.Context) {
	defer close(c.done)

	retries := 0
	everConnected := false

	for {
		if c.closed(ctx) {
			return
		}

		header := http.Header{}
		header.Set("Authorization", "Bearer "+c.token)
		ws, resp, err := c.dialer.DialContext(ctx, c.endpoint, header)
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		if err != nil {
			log.Printf("sync: connect %s: %v", c.userID, err)
			if !c.sleep(ctx, c.retryDelay(retries)) {
				c.markClosed()
				return
			}
			retries++
			continue
		}

		c.mu.Lock()
		if c.state == StateClosed {
			c.mu.Unlock()
			_ = ws.Close()
			return
		}
		c.ws = ws
		c.state = StateConnected
		c.id = uuid.NewString()
		c.mu.Unlock()
		retries = 0

		if !everConnected {
			everConnected = true
			if c.onStarted != nil {
				c.onStarted()
			}
		} else {
			log.Printf("sync: reconnected %s", c.userID)
			c.notifier.Notify(notify.Notification{
				Message:     "Reconnected to live sync",
				Severity:    notify.SeveritySuccess,
				AutoCloseMs: 4000,
			})
			if c.onReconnected != nil {
				c.onReconnected()
			}
		}

		readErr := c.readLoop(ctx, ws)
		_ = ws.Close()

		if c.closed(ctx) {
			c.markClosed()
			return
		}

		log.Printf("sync: connection dropped for %s: %v", c.userID, readErr)
		c.mu.Lock()
		c.ws = nil
		c.state = StateReconnecting
		c.mu.Unlock()
	}
}

// readLoop decodes frames and hands them to the registry until the transport
// errors. Undecodable frames are dropped; they never kill the connection.
func (c *Connection) readLoop(ctx context.Context, ws *websocket.Conn) error {
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			return err
		}
		var f frame
		if err := json.Unmarshal(data, &f); err != nil {
			log.Printf("sync: dropping undecodable frame: %v", err)
			continue
		}
		c.registry.Dispatch(ctx, f.Type, f.Payload)
	}
}

// closed reports whether the loop should exit: either Stop flipped the state
// or the owning context ended.
func (c *Connection) closed(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateClosed
}

func (c *Connection) markClosed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateClosed
	c.ws = nil
}

// sleep waits for the given delay, returning false when the context ends
// first.
func (c *Connection) sleep(ctx context.Context, delay time.Duration) bool {
	if delay <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
