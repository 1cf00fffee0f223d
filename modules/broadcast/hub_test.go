package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/example/code-playground/modules/chat"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(_ string, _ ...any)         {}
func (m *mockLogger) Info(_ string, _ ...any)          {}
func (m *mockLogger) Warn(_ string, _ ...any)          {}
func (m *mockLogger) Error(_ string, _ ...any)         {}
func (m *mockLogger) With(_ ...any) types.Logger       { return m }
func (m *mockLogger) WithError(_ error) types.Logger   { return m }
func (m *mockLogger) WithModule(_ string) types.Logger { return m }

// fakeConn records written frames. A non-nil gate blocks each write until it is closed.
type fakeConn struct {
	mu       sync.Mutex
	frames   [][]byte
	closed   bool
	gate     chan struct{}
	writeErr error
}

func (c *fakeConn) WriteMessage(_ int, data []byte) error {
	if c.gate != nil {
		<-c.gate
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeErr != nil {
		return c.writeErr
	}
	c.frames = append(c.frames, data)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) events(t *testing.T) []chat.Event {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]chat.Event, 0, len(c.frames))
	for _, f := range c.frames {
		var ev chat.Event
		require.NoError(t, json.Unmarshal(f, &ev))
		out = append(out, ev)
	}
	return out
}

func (c *fakeConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.frames)
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func startHub(t *testing.T, queueSize int) *Hub {
	t.Helper()
	hub := NewHub(&mockLogger{}, queueSize)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(func() {
		cancel()
		hub.Wait()
	})
	return hub
}

func TestHub_SendToAllAndSendTo(t *testing.T) {
	hub := startHub(t, 8)
	a, b := &fakeConn{}, &fakeConn{}
	hub.Add("a", a)
	hub.Add("b", b)

	hub.SendToAll(chat.Event{Name: chat.EventUserJoined, Data: "x"})
	hub.SendTo("b", chat.Event{Name: chat.EventUserList, Data: "y"})

	assert.Eventually(t, func() bool { return a.count() == 1 && b.count() == 2 }, time.Second, 5*time.Millisecond)

	gotB := b.events(t)
	assert.Equal(t, chat.EventUserJoined, gotB[0].Name)
	assert.Equal(t, chat.EventUserList, gotB[1].Name)
	assert.Equal(t, chat.EventUserJoined, a.events(t)[0].Name)
	assert.Equal(t, 2, hub.ClientCount())
}

func TestHub_PreservesOrderPerClient(t *testing.T) {
	hub := startHub(t, 128)
	conn := &fakeConn{}
	hub.Add("a", conn)

	for i := 0; i < 100; i++ {
		hub.SendToAll(chat.Event{Name: chat.EventChatMessage, Data: fmt.Sprint(i)})
	}

	require.Eventually(t, func() bool { return conn.count() == 100 }, time.Second, 5*time.Millisecond)
	for i, ev := range conn.events(t) {
		assert.Equal(t, fmt.Sprint(i), ev.Data)
	}
}

func TestHub_SlowClientDoesNotBlockOthers(t *testing.T) {
	hub := startHub(t, 2)
	slow := &fakeConn{gate: make(chan struct{})}
	fast := &fakeConn{}
	hub.Add("slow", slow)
	hub.Add("fast", fast)

	for i := 0; i < 20; i++ {
		hub.SendToAll(chat.Event{Name: chat.EventChatMessage, Data: i})
		want := i + 1
		require.Eventually(t, func() bool { return fast.count() == want }, time.Second, time.Millisecond)
	}

	assert.Equal(t, 0, slow.count())
	close(slow.gate)
}

func TestHub_Remove(t *testing.T) {
	hub := startHub(t, 8)
	a, b := &fakeConn{}, &fakeConn{}
	hub.Add("a", a)
	clientB := hub.Add("b", b)

	hub.Remove("b")
	select {
	case <-clientB.Done():
	case <-time.After(time.Second):
		t.Fatal("writer did not stop after Remove")
	}
	assert.True(t, b.isClosed())

	hub.SendToAll(chat.Event{Name: chat.EventUserLeft, Data: "b"})
	assert.Eventually(t, func() bool { return a.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, b.count())
	assert.Equal(t, 1, hub.ClientCount())

	// Removing an unknown client is harmless.
	hub.Remove("missing")
}

func TestHub_WriteErrorClosesOnlyThatClient(t *testing.T) {
	hub := startHub(t, 8)
	broken := &fakeConn{writeErr: errors.New("broken pipe")}
	healthy := &fakeConn{}
	hub.Add("broken", broken)
	hub.Add("healthy", healthy)

	hub.SendToAll(chat.Event{Name: chat.EventChatMessage, Data: "one"})
	hub.SendToAll(chat.Event{Name: chat.EventChatMessage, Data: "two"})

	assert.Eventually(t, func() bool { return healthy.count() == 2 }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, broken.isClosed, time.Second, 5*time.Millisecond)
	assert.False(t, healthy.isClosed())
}

func TestHub_StopClosesClients(t *testing.T) {
	hub := NewHub(&mockLogger{}, 8)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	conn := &fakeConn{}
	client := hub.Add("a", conn)

	cancel()
	hub.Wait()

	<-client.Done()
	assert.True(t, conn.isClosed())
	assert.Equal(t, 0, hub.ClientCount())

	// Calls after shutdown return instead of blocking.
	hub.SendToAll(chat.Event{Name: chat.EventChatMessage})
	hub.Remove("a")
	late := hub.Add("late", &fakeConn{})
	<-late.Done()
}
