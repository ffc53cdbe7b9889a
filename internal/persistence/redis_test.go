package persistence

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-triage/internal/events"
)

// stalledRedis accepts connections and never answers.
func stalledRedis(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var mu sync.Mutex
	var conns []net.Conn
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, conn)
			mu.Unlock()
		}
	}()
	t.Cleanup(func() {
		_ = ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, conn := range conns {
			_ = conn.Close()
		}
	})
	return ln.Addr().String()
}

func newStalledSink(t *testing.T) *Redis {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:                  stalledRedis(t),
		ContextTimeoutEnabled: true,
		MaxRetries:            -1,
	})
	r := newRedis(client, "test-events", nil)
	r.publishTimeout = 200 * time.Millisecond
	return r
}

func TestPublishEventIsBoundedByTimeout(t *testing.T) {
	r := newStalledSink(t)
	defer r.Close()

	start := time.Now()
	err := r.PublishEvent(context.Background(), events.Event{Type: events.EventTicketCreated, TicketID: "T-1"})
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestEventSinkDoesNotBlockPublishers(t *testing.T) {
	r := newStalledSink(t)
	dispatcher := events.NewInMemoryDispatcher(nil)
	r.AttachEventSink(dispatcher)

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: "T-1024",
		}))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	closed := time.Now()
	r.Close()
	assert.Less(t, time.Since(closed), 3*time.Second)

	// Events after Close are ignored rather than queued.
	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventTicketAssigned}))
}

func TestEventSinkDropsWhenQueueFull(t *testing.T) {
	r := newRedis(nil, "test-events", nil)
	defer r.Close()

	for i := 0; i < eventQueueSize+5; i++ {
		require.NoError(t, r.enqueue(context.Background(), events.Event{Type: events.EventTicketCreated}))
	}
	assert.Len(t, r.queue, eventQueueSize)
}
