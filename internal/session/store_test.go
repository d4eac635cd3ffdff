package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"coffeefinder-api/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateGetDelete(t *testing.T) {
	store := NewStore(new(MockSearcher), new(MockRouter), nil, Options{RegionRadiusMeters: 1000, PinIcon: "coffee-pin"})

	sess := store.Create()
	require.NotEmpty(t, sess.ID())
	assert.Equal(t, 1, store.Len())
	assert.True(t, sess.Screen.Listening())

	got, err := store.Get(sess.ID())
	require.NoError(t, err)
	assert.Same(t, sess, got)

	other := store.Create()
	assert.NotEqual(t, sess.ID(), other.ID())

	require.NoError(t, store.Delete(sess.ID()))
	_, err = store.Get(sess.ID())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(sess.ID()), ErrNotFound)
	assert.Equal(t, 1, store.Len())
}

func TestStore_Sweep(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	store := NewStore(new(MockSearcher), new(MockRouter), nil, Options{TTL: time.Minute})
	store.now = func() time.Time { return now }

	idle := store.Create()
	active := store.Create()

	now = now.Add(50 * time.Second)
	_, err := store.Get(active.ID())
	require.NoError(t, err)

	now = now.Add(20 * time.Second)
	assert.Equal(t, 1, store.Sweep())

	_, err = store.Get(idle.ID())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(active.ID())
	assert.NoError(t, err)
}

func TestStore_SweepDisabled(t *testing.T) {
	store := NewStore(new(MockSearcher), new(MockRouter), nil, Options{})
	store.now = func() time.Time { return time.Now().Add(24 * time.Hour) }
	store.Create()
	assert.Equal(t, 0, store.Sweep())
}

func TestStore_RunStopsWithContext(t *testing.T) {
	store := NewStore(new(MockSearcher), new(MockRouter), nil, Options{TTL: time.Minute})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		store.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

// closingPublisher records which sessions were closed.
type closingPublisher struct {
	recordingPublisher
	closeMu sync.Mutex
	closed  []string
}

func (p *closingPublisher) CloseSession(id string) {
	p.closeMu.Lock()
	defer p.closeMu.Unlock()
	p.closed = append(p.closed, id)
}

func (p *closingPublisher) closedSessions() []string {
	p.closeMu.Lock()
	defer p.closeMu.Unlock()
	return append([]string{}, p.closed...)
}

func TestStore_RemovedSessionsAreClosed(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	publisher := &closingPublisher{}
	store := NewStore(new(MockSearcher), new(MockRouter), publisher, Options{TTL: time.Minute})
	store.now = func() time.Time { return now }

	deleted := store.Create()
	idle := store.Create()
	active := store.Create()

	require.NoError(t, store.Delete(deleted.ID()))
	assert.Equal(t, []string{deleted.ID()}, publisher.closedSessions())

	assert.ErrorIs(t, store.Delete(deleted.ID()), ErrNotFound)
	assert.Len(t, publisher.closedSessions(), 1)

	now = now.Add(50 * time.Second)
	_, err := store.Get(active.ID())
	require.NoError(t, err)
	now = now.Add(20 * time.Second)

	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, []string{deleted.ID(), idle.ID()}, publisher.closedSessions())
}

func TestStore_DeleteEndsEventStream(t *testing.T) {
	hub := events.NewHub()
	store := NewStore(new(MockSearcher), new(MockRouter), hub, Options{})
	sess := store.Create()
	sub := hub.Subscribe(sess.ID())

	require.NoError(t, store.Delete(sess.ID()))

	e, open := <-sub.Events()
	require.True(t, open)
	assert.Equal(t, events.TypeClosed, e.Type)
	_, open = <-sub.Events()
	assert.False(t, open)
	assert.Zero(t, hub.Subscribers(sess.ID()))
}
