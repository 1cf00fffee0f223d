package broadcast

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/example/code-playground/modules/chat"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/contrib/websocket"
)

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one open transport connection, joined or not.
type Client struct {
	ID   string
	conn Conn
	send chan []byte
	done chan struct{}
}

// Done is closed once the client's writer has stopped and its connection is closed.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// delivery is a serialised event; an empty target means every client.
type delivery struct {
	target string
	data   []byte
}

// Hub fans events out to websocket clients. Each client has a bounded queue
// drained by its own writer, so a slow client only loses its own deliveries.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan string
	deliver    chan delivery
	done       chan struct{}
	queueSize  int
	logger     types.Logger
	mu         sync.RWMutex
}

var _ chat.Broadcaster = (*Hub)(nil)

// NewHub creates a Hub whose clients buffer up to queueSize pending messages.
func NewHub(logger types.Logger, queueSize int) *Hub {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan string),
		deliver:    make(chan delivery, 256),
		done:       make(chan struct{}),
		queueSize:  queueSize,
		logger:     logger,
	}
}

// Run starts the hub's main loop. It returns when ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("Hub shutting down", "clients", h.ClientCount())
			h.closeAllClients()
			close(h.done)
			return
		case client := <-h.register:
			h.handleRegister(client)
		case id := <-h.unregister:
			h.handleUnregister(id)
		case d := <-h.deliver:
			h.handleDeliver(d)
		}
	}
}

// Wait blocks until the hub has stopped.
func (h *Hub) Wait() {
	<-h.done
}

// Add registers a connection under id and starts its writer.
func (h *Hub) Add(id string, conn Conn) *Client {
	client := &Client{
		ID:   id,
		conn: conn,
		send: make(chan []byte, h.queueSize),
		done: make(chan struct{}),
	}
	go h.writePump(client)

	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
	return client
}

// Remove unregisters a connection. Its queued messages are still written.
func (h *Hub) Remove(id string) {
	select {
	case h.unregister <- id:
	case <-h.done:
	}
}

// SendTo delivers ev to a single connection.
func (h *Hub) SendTo(connID string, ev chat.Event) {
	h.enqueue(connID, ev)
}

// SendToAll delivers ev to every connection.
func (h *Hub) SendToAll(ev chat.Event) {
	h.enqueue("", ev)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) enqueue(target string, ev chat.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("Failed to marshal event", "event", ev.Name, "error", err)
		return
	}
	select {
	case h.deliver <- delivery{target: target, data: data}:
	case <-h.done:
	}
}

func (h *Hub) handleRegister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.clients[client.ID]; ok {
		close(old.send)
	}
	h.clients[client.ID] = client
	h.logger.Debug("Client registered", "clientID", client.ID)
}

func (h *Hub) handleUnregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client, ok := h.clients[id]; ok {
		delete(h.clients, id)
		close(client.send)
		h.logger.Debug("Client unregistered", "clientID", id)
	}
}

func (h *Hub) handleDeliver(d delivery) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if d.target != "" {
		if client, ok := h.clients[d.target]; ok {
			h.sendToClient(client, d.data)
		}
		return
	}
	for _, client := range h.clients {
		h.sendToClient(client, d.data)
	}
}

func (h *Hub) sendToClient(client *Client, data []byte) {
	select {
	case client.send <- data:
	default:
		h.logger.Warn("Send queue full, dropping message", "clientID", client.ID)
	}
}

// writePump writes queued messages until the queue is closed.
// After a write error the rest of the queue is discarded.
func (h *Hub) writePump(client *Client) {
	defer close(client.done)

	failed := false
	for data := range client.send {
		if failed {
			continue
		}
		if err := client.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Warn("Failed to write to client", "clientID", client.ID, "error", err)
			failed = true
			_ = client.conn.Close()
		}
	}
	if !failed {
		_ = client.conn.Close()
	}
}

// closeAllClients stops every writer, closing its connection.
func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.send)
	}
	h.clients = make(map[string]*Client)
}
