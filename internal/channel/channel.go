package channel

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// TypeCSVListUpdated announces a change to the server-side file set.
// Listening views respond with a full list refetch.
const TypeCSVListUpdated = "csv_list_updated"

// DefaultRetryDelay is the fixed delay between reconnection attempts.
const DefaultRetryDelay = 3 * time.Second

// Message is a push notification from the server. Unknown types are
// delivered to the handler, which ignores them.
type Message struct {
	Type   string `json:"type"`
	Action string `json:"action,omitempty"`
	FileID int64  `json:"file_id,omitempty"`
}

// Handler receives each parsed inbound message.
type Handler func(Message)

// Conn is the subset of a websocket connection the listener reads from.
type Conn interface {
	ReadMessage() ([]byte, error)
	Close() error
}

// DialFunc opens a connection to the push channel.
type DialFunc func(ctx context.Context, url string) (Conn, error)

// State of the connection loop.
type State int

const (
	StateConnecting State = iota
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	default:
		return "closed"
	}
}

// Listener maintains one persistent connection to the push channel.
// Every close, clean or not, schedules a reconnection attempt after a
// fixed delay; the loop retries forever until Stop. At most one retry
// timer is pending at any time, and Stop cancels it.
type Listener struct {
	url        string
	handler    Handler
	dial       DialFunc
	retryDelay time.Duration
	logger     *slog.Logger

	mu     sync.Mutex
	state  State
	conn   Conn
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Listener.
type Option func(*Listener)

// WithDialer replaces the websocket dialer (tests inject fakes).
func WithDialer(dial DialFunc) Option {
	return func(l *Listener) { l.dial = dial }
}

// WithRetryDelay replaces the fixed reconnection delay.
func WithRetryDelay(d time.Duration) Option {
	return func(l *Listener) { l.retryDelay = d }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Listener) { l.logger = logger }
}

// New creates a Listener delivering messages to handler. Call Start to
// connect.
func New(url string, handler Handler, opts ...Option) *Listener {
	l := &Listener{
		url:        url,
		handler:    handler,
		dial:       dialWebSocket,
		retryDelay: DefaultRetryDelay,
		logger:     slog.Default(),
		state:      StateClosed,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With("component", "channel")
	return l
}

// Start launches the connection loop. It returns immediately.
func (l *Listener) Start() {
	ctx, cancel := context.WithCancel(context.Background())

	l.mu.Lock()
	l.cancel = cancel
	l.done = make(chan struct{})
	l.state = StateConnecting
	l.mu.Unlock()

	go l.run(ctx)
}

// Stop tears the listener down: it cancels any pending reconnection
// timer, closes the socket if open, and waits for the loop to exit.
// No reconnection attempt happens after Stop returns.
func (l *Listener) Stop() {
	l.mu.Lock()
	cancel := l.cancel
	conn := l.conn
	done := l.done
	l.cancel = nil
	l.conn = nil
	l.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	if conn != nil {
		conn.Close()
	}
	<-done

	l.mu.Lock()
	l.state = StateClosed
	l.mu.Unlock()
}

// State returns the current connection state.
func (l *Listener) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Listener) run(ctx context.Context) {
	defer close(l.done)

	for {
		l.setState(StateConnecting)
		conn, err := l.dial(ctx, l.url)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			l.logger.Warn("connect failed", "url", l.url, "error", err)
		} else {
			l.logger.Debug("connected", "url", l.url)
			if !l.adopt(conn) {
				conn.Close()
				return
			}
			l.setState(StateOpen)
			l.readLoop(conn)
			l.release()
		}
		if ctx.Err() != nil {
			return
		}

		// One timer pending at most; ctx cancellation stops it.
		l.setState(StateClosed)
		timer := time.NewTimer(l.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// readLoop delivers messages until the connection fails or is closed.
// Payloads that fail to parse are logged and dropped; they never kill
// the connection.
func (l *Listener) readLoop(conn Conn) {
	for {
		data, err := conn.ReadMessage()
		if err != nil {
			l.logger.Debug("disconnected", "error", err)
			return
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			l.logger.Error("parse push message", "error", err)
			continue
		}
		l.handler(msg)
	}
}

// adopt records the live connection so Stop can close it. Returns
// false if Stop already ran.
func (l *Listener) adopt(conn Conn) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel == nil {
		return false
	}
	l.conn = conn
	return true
}

func (l *Listener) release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.conn != nil {
		l.conn.Close()
		l.conn = nil
	}
}

func (l *Listener) setState(s State) {
	l.mu.Lock()
	l.state = s
	l.mu.Unlock()
}

type wsConn struct {
	*websocket.Conn
}

func (c wsConn) ReadMessage() ([]byte, error) {
	_, data, err := c.Conn.ReadMessage()
	return data, err
}

func dialWebSocket(ctx context.Context, url string) (Conn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return wsConn{conn}, nil
}
