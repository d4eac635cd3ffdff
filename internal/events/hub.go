// Package events fans out screen changes to WebSocket subscribers.
package events

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	TypeLocation     = "location"
	TypeSearch       = "search"
	TypeSearchFailed = "search_failed"
	TypeRoute        = "route"
	TypeRouteFailed  = "route_failed"
	TypeClosed       = "closed"
)

const (
	bufferSize = 16
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// Event is one change of a session's screen state.
type Event struct {
	Type    string      `json:"type"`
	Session string      `json:"session"`
	Time    time.Time   `json:"time"`
	Data    interface{} `json:"data,omitempty"`
}

// Subscription receives the events of one session until closed.
type Subscription struct {
	hub     *Hub
	session string
	ch      chan Event
	once    sync.Once
}

// Events returns the delivery channel. It is closed by Close.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Close detaches the subscription from the hub.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s)
		close(s.ch)
	})
}

// Hub routes published events to the subscribers of the same session.
type Hub struct {
	mu       sync.RWMutex
	subs     map[string]map[*Subscription]struct{}
	upgrader websocket.Upgrader
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[*Subscription]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Subscribe registers a new subscriber for session.
func (h *Hub) Subscribe(session string) *Subscription {
	s := &Subscription{hub: h, session: session, ch: make(chan Event, bufferSize)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[session] == nil {
		h.subs[session] = make(map[*Subscription]struct{})
	}
	h.subs[session][s] = struct{}{}
	return s
}

func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[s.session], s)
	if len(h.subs[s.session]) == 0 {
		delete(h.subs, s.session)
	}
}

// Publish delivers e to every subscriber of e.Session. Subscribers with a full buffer miss the event.
func (h *Hub) Publish(e Event) {
	if e.Time.IsZero() {
		e.Time = time.Now().UTC()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs[e.Session] {
		select {
		case s.ch <- e:
		default:
			log.Warn().Str("session", e.Session).Str("type", e.Type).Msg("dropping event for slow subscriber")
		}
	}
}

// CloseSession sends a closed event to every subscriber of session and detaches them.
// Their event channels are closed, which ends any ServeWS stream for the session.
func (h *Hub) CloseSession(session string) {
	closed := Event{Type: TypeClosed, Session: session, Time: time.Now().UTC()}

	h.mu.RLock()
	subs := make([]*Subscription, 0, len(h.subs[session]))
	for s := range h.subs[session] {
		select {
		case s.ch <- closed:
		default:
		}
		subs = append(subs, s)
	}
	h.mu.RUnlock()

	for _, s := range subs {
		s.Close()
	}
	if len(subs) > 0 {
		log.Debug().Str("session", session).Int("subscribers", len(subs)).Msg("closed session subscribers")
	}
}

// Subscribers reports the number of subscribers of session.
func (h *Hub) Subscribers(session string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[session])
}

// ServeWS upgrades the request and streams the session's events as JSON messages until the peer goes away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, session string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	sub := h.Subscribe(session)
	defer sub.Close()

	// The read loop only watches for the peer closing the connection.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return nil
		case <-r.Context().Done():
			return nil
		case e, ok := <-sub.Events():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"))
				return nil
			}
			if err := conn.WriteJSON(e); err != nil {
				log.Debug().Err(err).Str("session", session).Msg("websocket write failed")
				return nil
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		}
	}
}
