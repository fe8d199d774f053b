// Package realtime maintains subscriptions to the platform's push channels
// over a single shared websocket connection.
//
// The manager owns channel bookkeeping only: one underlying subscription per
// logical channel name, any number of independently removable handler
// bindings per channel. Reconnection, delivery guarantees, and message
// ordering are the server's concern; a dropped connection surfaces in the
// log and the manager stays closed until the owner reconnects it.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/specwork/specwork-go/internal/metrics"
)

// Config holds manager construction options.
type Config struct {
	// URL is the websocket endpoint, e.g. wss://ws.specwork.app/v1
	URL string

	// Token authenticates the connection. Sent as a query parameter on
	// dial, matching the platform's websocket auth scheme.
	Token string

	// Logger defaults to a disabled logger.
	Logger *zerolog.Logger

	// HeartbeatInterval defaults to 30s.
	HeartbeatInterval time.Duration
}

// Manager is the realtime channel manager. Safe for concurrent use.
type Manager struct {
	url       string
	token     string
	log       zerolog.Logger
	heartbeat time.Duration

	mu       sync.RWMutex
	conn     *websocket.Conn
	writeMu  sync.Mutex
	channels map[string]*Channel
	done     chan struct{}
}

// Channel is one logical subscription. All bindings share the single
// underlying subscription; Subscribe for an existing name returns the same
// Channel.
type Channel struct {
	manager *Manager
	name    string

	// handlers: event name -> binding ID -> handler. Guarded by manager.mu.
	handlers map[string]map[string]Handler
}

// Binding is one handler registration on a channel. Unbind removes only
// this handler, leaving other consumers of the channel untouched.
type Binding struct {
	channel *Channel
	event   string
	id      string
}

// New creates a manager. Call Connect before subscribing.
func New(cfg Config) (*Manager, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("websocket URL is required")
	}

	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	heartbeat := cfg.HeartbeatInterval
	if heartbeat == 0 {
		heartbeat = 30 * time.Second
	}

	return &Manager{
		url:       cfg.URL,
		token:     cfg.Token,
		log:       log,
		heartbeat: heartbeat,
		channels:  make(map[string]*Channel),
	}, nil
}

// Connect dials the websocket and starts the read and heartbeat loops.
// Connecting an already connected manager is a no-op.
func (m *Manager) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn != nil {
		return nil
	}

	dialURL := m.url
	if m.token != "" {
		sep := "?"
		if strings.Contains(dialURL, "?") {
			sep = "&"
		}
		dialURL += sep + "token=" + m.token
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, dialURL, nil)
	if err != nil {
		return fmt.Errorf("websocket dial: %w", err)
	}

	m.conn = conn
	m.done = make(chan struct{})

	go m.readLoop(conn, m.done)
	go m.heartbeatLoop(conn, m.done)

	return nil
}

// Close unsubscribes every channel and closes the connection.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn == nil {
		return nil
	}

	close(m.done)

	for name := range m.channels {
		// Best effort; the close frame tears the subscriptions down anyway.
		_ = m.send(m.conn, wireMessage{Event: "unsubscribe", Channel: name})
	}
	m.channels = make(map[string]*Channel)

	m.writeMu.Lock()
	_ = m.conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	)
	m.writeMu.Unlock()

	closeErr := m.conn.Close()
	m.conn = nil
	return closeErr
}

// Subscribe returns the channel for name, creating the underlying
// subscription on first call. A second Subscribe with the same name reuses
// the existing subscription rather than creating another.
func (m *Manager) Subscribe(name string) (*Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ch, ok := m.channels[name]; ok {
		return ch, nil
	}

	if m.conn == nil {
		return nil, fmt.Errorf("manager is not connected")
	}

	if err := m.send(m.conn, wireMessage{Event: "subscribe", Channel: name}); err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", name, err)
	}

	ch := &Channel{
		manager:  m,
		name:     name,
		handlers: make(map[string]map[string]Handler),
	}
	m.channels[name] = ch
	return ch, nil
}

// Unsubscribe tears down the channel and all its bindings.
func (m *Manager) Unsubscribe(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.channels[name]; !ok {
		return nil
	}
	delete(m.channels, name)

	if m.conn == nil {
		return nil
	}
	if err := m.send(m.conn, wireMessage{Event: "unsubscribe", Channel: name}); err != nil {
		return fmt.Errorf("unsubscribe %s: %w", name, err)
	}
	return nil
}

// Bind registers a handler for an event on the channel.
func (c *Channel) Bind(event string, handler Handler) *Binding {
	c.manager.mu.Lock()
	defer c.manager.mu.Unlock()

	if c.handlers[event] == nil {
		c.handlers[event] = make(map[string]Handler)
	}
	id := uuid.NewString()
	c.handlers[event][id] = handler

	return &Binding{channel: c, event: event, id: id}
}

// Name returns the channel's logical name.
func (c *Channel) Name() string {
	return c.name
}

// Unbind removes this binding's handler. Other bindings on the same channel
// and event keep firing. Unbinding twice is a no-op.
func (b *Binding) Unbind() {
	m := b.channel.manager
	m.mu.Lock()
	defer m.mu.Unlock()

	if handlers, ok := b.channel.handlers[b.event]; ok {
		delete(handlers, b.id)
		if len(handlers) == 0 {
			delete(b.channel.handlers, b.event)
		}
	}
}

// wireMessage is the outbound frame format.
type wireMessage struct {
	Event   string `json:"event"`
	Channel string `json:"channel,omitempty"`
}

// send writes a frame on conn; writeMu serializes writers.
func (m *Manager) send(conn *websocket.Conn, msg wireMessage) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	return conn.WriteJSON(msg)
}

func (m *Manager) readLoop(conn *websocket.Conn, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		default:
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-done:
			default:
				m.log.Warn().Err(err).Msg("realtime connection lost")
			}
			return
		}

		var event Event
		if err := json.Unmarshal(message, &event); err != nil {
			m.log.Debug().Err(err).Msg("unparseable realtime frame")
			continue
		}
		if event.Name == "" || event.Name == "pong" {
			continue
		}

		m.dispatch(event)
	}
}

func (m *Manager) dispatch(event Event) {
	if !payloadMatchesChannel(event) {
		metrics.RealtimeDropped()
		m.log.Debug().
			Str("channel", event.Channel).
			Str("event", event.Name).
			Msg("dropped event with mismatched payload identifier")
		return
	}

	m.mu.RLock()
	ch, ok := m.channels[event.Channel]
	var handlers []Handler
	if ok {
		for _, h := range ch.handlers[event.Name] {
			handlers = append(handlers, h)
		}
	}
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}
	metrics.RealtimeEvent(event.Name)

	for _, handler := range handlers {
		go handler(event)
	}
}

// payloadMatchesChannel guards against cross-talk: an event delivered on
// conversation-{id} must carry a matching conversation_id, and one on
// user-{id} a matching user_id. Events without a payload pass through.
func payloadMatchesChannel(event Event) bool {
	if len(event.Data) == 0 {
		return true
	}

	var field string
	var want string
	switch {
	case strings.HasPrefix(event.Channel, "conversation-"):
		field = "conversation_id"
		want = strings.TrimPrefix(event.Channel, "conversation-")
	case strings.HasPrefix(event.Channel, "user-"):
		field = "user_id"
		want = strings.TrimPrefix(event.Channel, "user-")
	default:
		return true
	}

	value := gjson.GetBytes(event.Data, field)
	if !value.Exists() {
		return true
	}

	switch value.Type {
	case gjson.Number:
		return strconv.FormatInt(value.Int(), 10) == want
	default:
		return value.String() == want
	}
}

func (m *Manager) heartbeatLoop(conn *websocket.Conn, done chan struct{}) {
	ticker := time.NewTicker(m.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := m.send(conn, wireMessage{Event: "ping"}); err != nil {
				m.log.Warn().Err(err).Msg("heartbeat write failed")
				return
			}
		}
	}
}
