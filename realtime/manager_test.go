package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// wsServer is a minimal push server for manager tests. It records inbound
// frames and lets tests push events to the connected client.
type wsServer struct {
	server   *httptest.Server
	upgrader websocket.Upgrader

	mu       sync.Mutex
	writeMu  sync.Mutex
	conn     *websocket.Conn
	received []wireMessage
}

func newWSServer(t *testing.T) *wsServer {
	t.Helper()

	s := &wsServer{}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		s.mu.Lock()
		s.conn = conn
		s.mu.Unlock()

		for {
			var msg wireMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			s.mu.Lock()
			s.received = append(s.received, msg)
			s.mu.Unlock()
		}
	}))
	t.Cleanup(s.server.Close)
	return s
}

func (s *wsServer) url() string {
	return "ws" + strings.TrimPrefix(s.server.URL, "http")
}

func (s *wsServer) push(t *testing.T, event Event) {
	t.Helper()

	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		t.Fatal("no client connected")
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := conn.WriteJSON(event); err != nil {
		t.Fatalf("push event: %v", err)
	}
}

func (s *wsServer) countFrames(event, channel string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, msg := range s.received {
		if msg.Event == event && msg.Channel == channel {
			n++
		}
	}
	return n
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal(msg)
}

func newConnectedManager(t *testing.T, s *wsServer) *Manager {
	t.Helper()

	m, err := New(Config{URL: s.url()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := m.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestNew_RequiresURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("New() should fail without a URL")
	}
}

func TestSubscribe_RequiresConnection(t *testing.T) {
	m, err := New(Config{URL: "ws://localhost:1"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := m.Subscribe("user-1"); err == nil {
		t.Error("Subscribe() before Connect() should fail")
	}
}

func TestSubscribe_ReusesUnderlyingSubscription(t *testing.T) {
	s := newWSServer(t)
	m := newConnectedManager(t, s)

	ch1, err := m.Subscribe("conversation-1")
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	ch2, err := m.Subscribe("conversation-1")
	if err != nil {
		t.Fatalf("second Subscribe() error = %v", err)
	}

	if ch1 != ch2 {
		t.Error("second Subscribe() should return the same channel handle")
	}

	waitFor(t, func() bool {
		return s.countFrames("subscribe", "conversation-1") >= 1
	}, "subscribe frame never reached the server")

	if got := s.countFrames("subscribe", "conversation-1"); got != 1 {
		t.Errorf("subscribe frames = %d, want 1", got)
	}
}

func TestBind_IndependentHandlers(t *testing.T) {
	s := newWSServer(t)
	m := newConnectedManager(t, s)

	ch, err := m.Subscribe("conversation-1")
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	first := make(chan Event, 4)
	second := make(chan Event, 4)
	bindingA := ch.Bind(EventNewMessage, func(e Event) { first <- e })
	ch.Bind(EventNewMessage, func(e Event) { second <- e })

	s.push(t, Event{
		Channel: "conversation-1",
		Name:    EventNewMessage,
		Data:    json.RawMessage(`{"conversation_id":1,"text":"hi"}`),
	})

	for name, c := range map[string]chan Event{"first": first, "second": second} {
		select {
		case e := <-c:
			if e.Name != EventNewMessage {
				t.Errorf("%s handler got event %q", name, e.Name)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("%s handler never fired", name)
		}
	}

	// Unbinding one handler must leave the other firing.
	bindingA.Unbind()

	s.push(t, Event{
		Channel: "conversation-1",
		Name:    EventNewMessage,
		Data:    json.RawMessage(`{"conversation_id":1,"text":"again"}`),
	})

	select {
	case <-second:
	case <-time.After(2 * time.Second):
		t.Fatal("remaining handler never fired after Unbind of the other")
	}

	select {
	case <-first:
		t.Error("unbound handler still fired")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestDispatch_DropsMismatchedPayload(t *testing.T) {
	s := newWSServer(t)
	m := newConnectedManager(t, s)

	ch, err := m.Subscribe("conversation-1")
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	events := make(chan Event, 4)
	ch.Bind(EventNewMessage, func(e Event) { events <- e })

	// Wrong conversation ID in the payload: cross-talk, must be dropped.
	s.push(t, Event{
		Channel: "conversation-1",
		Name:    EventNewMessage,
		Data:    json.RawMessage(`{"conversation_id":2,"text":"leak"}`),
	})
	// Matching ID arrives afterwards; receiving it proves the first was
	// dropped rather than still in flight.
	s.push(t, Event{
		Channel: "conversation-1",
		Name:    EventNewMessage,
		Data:    json.RawMessage(`{"conversation_id":1,"text":"ok"}`),
	})

	select {
	case e := <-events:
		var payload struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(e.Data, &payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload.Text != "ok" {
			t.Errorf("payload text = %q, want ok", payload.Text)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("matching event never fired")
	}

	select {
	case <-events:
		t.Error("mismatched event was dispatched")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestUnsubscribe_StopsDispatch(t *testing.T) {
	s := newWSServer(t)
	m := newConnectedManager(t, s)

	ch, err := m.Subscribe("user-7")
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	events := make(chan Event, 4)
	ch.Bind(EventNotificationCreated, func(e Event) { events <- e })

	if err := m.Unsubscribe("user-7"); err != nil {
		t.Fatalf("Unsubscribe() error = %v", err)
	}

	waitFor(t, func() bool {
		return s.countFrames("unsubscribe", "user-7") >= 1
	}, "unsubscribe frame never reached the server")

	s.push(t, Event{
		Channel: "user-7",
		Name:    EventNotificationCreated,
		Data:    json.RawMessage(`{"user_id":7}`),
	})

	select {
	case <-events:
		t.Error("handler fired after Unsubscribe")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestPayloadMatchesChannel(t *testing.T) {
	cases := []struct {
		name  string
		event Event
		want  bool
	}{
		{
			"conversation match",
			Event{Channel: "conversation-42", Name: EventNewMessage, Data: json.RawMessage(`{"conversation_id":42}`)},
			true,
		},
		{
			"conversation mismatch",
			Event{Channel: "conversation-42", Name: EventNewMessage, Data: json.RawMessage(`{"conversation_id":43}`)},
			false,
		},
		{
			"string-typed identifier",
			Event{Channel: "user-7", Name: EventNotificationCreated, Data: json.RawMessage(`{"user_id":"7"}`)},
			true,
		},
		{
			"user mismatch",
			Event{Channel: "user-7", Name: EventNotificationCreated, Data: json.RawMessage(`{"user_id":8}`)},
			false,
		},
		{
			"missing identifier passes",
			Event{Channel: "user-7", Name: EventNotificationCreated, Data: json.RawMessage(`{"kind":"promo"}`)},
			true,
		},
		{
			"empty payload passes",
			Event{Channel: "conversation-42", Name: EventConversationUpdated},
			true,
		},
		{
			"unknown channel shape passes",
			Event{Channel: "presence-global", Name: "someone-joined", Data: json.RawMessage(`{"user_id":1}`)},
			true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := payloadMatchesChannel(tc.event); got != tc.want {
				t.Errorf("payloadMatchesChannel() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestConversationAndUserChannelNames(t *testing.T) {
	if got := ConversationChannel(42); got != "conversation-42" {
		t.Errorf("ConversationChannel(42) = %q", got)
	}
	if got := UserChannel(7); got != "user-7" {
		t.Errorf("UserChannel(7) = %q", got)
	}
}
