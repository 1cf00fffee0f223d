package api

import (
	"errors"

	"github.com/example/code-playground/modules/chat"
	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// handleWebSocket runs one connection: frames are read here and handed to
// the chat service, while the hub owns all writes.
func (m *Module) handleWebSocket(c *websocket.Conn) {
	connID := uuid.New().String()
	client := m.hub.Add(connID, c)
	m.logger.Debug("WebSocket connected", "connID", connID)

	for {
		_, frame, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				m.logger.Warn("WebSocket read error", "connID", connID, "error", err)
			}
			break
		}

		if err := m.chat.HandleFrame(connID, frame); err != nil {
			if errors.Is(err, chat.ErrMalformedFrame) {
				m.logger.Debug("Ignoring malformed frame", "connID", connID, "error", err)
				continue
			}
			m.logger.Warn("Frame handling failed", "connID", connID, "error", err)
		}
	}

	// Remove from the hub first so the departing socket is not sent its own user_left.
	m.hub.Remove(connID)
	m.chat.OnDisconnect(connID)
	<-client.Done()

	m.logger.Debug("WebSocket disconnected", "connID", connID)
}
