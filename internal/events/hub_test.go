package events

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishRoutesBySession(t *testing.T) {
	hub := NewHub()
	a := hub.Subscribe("a")
	b := hub.Subscribe("b")
	defer a.Close()
	defer b.Close()

	hub.Publish(Event{Type: TypeSearch, Session: "a", Data: 3})

	select {
	case e := <-a.Events():
		assert.Equal(t, TypeSearch, e.Type)
		assert.Equal(t, 3, e.Data)
		assert.False(t, e.Time.IsZero())
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}

	select {
	case e := <-b.Events():
		t.Fatalf("unexpected event for other session: %+v", e)
	default:
	}
}

func TestHub_SlowSubscriberDropsEvents(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("a")
	defer sub.Close()

	for i := 0; i < bufferSize+5; i++ {
		hub.Publish(Event{Type: TypeRoute, Session: "a", Data: i})
	}

	assert.Len(t, sub.ch, bufferSize)
	first := <-sub.Events()
	assert.Equal(t, 0, first.Data)
}

func TestSubscription_Close(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("a")
	assert.Equal(t, 1, hub.Subscribers("a"))

	sub.Close()
	sub.Close()
	assert.Equal(t, 0, hub.Subscribers("a"))

	_, open := <-sub.Events()
	assert.False(t, open)

	// Publishing after close must not panic.
	hub.Publish(Event{Type: TypeSearch, Session: "a"})
}

func TestHub_ServeWS(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, "s1")
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Subscribers("s1") == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish(Event{Type: TypeLocation, Session: "s1", Data: map[string]float64{"latitude": 1}})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, TypeLocation, got.Type)
	assert.Equal(t, "s1", got.Session)
	assert.Equal(t, map[string]interface{}{"latitude": 1.0}, got.Data)

	conn.Close()
	require.Eventually(t, func() bool { return hub.Subscribers("s1") == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_CloseSession(t *testing.T) {
	hub := NewHub()
	a1 := hub.Subscribe("a")
	a2 := hub.Subscribe("a")
	b := hub.Subscribe("b")
	defer b.Close()

	hub.CloseSession("a")

	assert.Equal(t, 0, hub.Subscribers("a"))
	assert.Equal(t, 1, hub.Subscribers("b"))
	for _, sub := range []*Subscription{a1, a2} {
		e, open := <-sub.Events()
		require.True(t, open)
		assert.Equal(t, TypeClosed, e.Type)
		_, open = <-sub.Events()
		assert.False(t, open)
	}

	// Closing twice or closing an unknown session is a no-op.
	hub.CloseSession("a")
	hub.CloseSession("missing")
	a1.Close()
}

func TestHub_ServeWSEndsOnCloseSession(t *testing.T) {
	hub := NewHub()
	served := make(chan error, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		served <- hub.ServeWS(w, r, "s1")
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Subscribers("s1") == 1 }, time.Second, 10*time.Millisecond)

	hub.CloseSession("s1")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, TypeClosed, got.Type)

	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "unexpected error: %v", err)

	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("ServeWS did not return after CloseSession")
	}
}
