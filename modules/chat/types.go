package chat

import (
	"encoding/json"

	domain "github.com/example/code-playground/domain/chat"
)

// Event names carried on the websocket transport.
const (
	EventJoin        = "join"
	EventChatMessage = "chat_message"
	EventUserJoined  = "user_joined"
	EventUserLeft    = "user_left"
	EventUserList    = "user_list"
)

// Event is the envelope written to clients.
type Event struct {
	Name string `json:"event"`
	Data any    `json:"data"`
}

// Broadcaster delivers events to transport connections.
// Implementations must not block on slow receivers.
type Broadcaster interface {
	SendTo(connID string, ev Event)
	SendToAll(ev Event)
}

// Observer is notified after an accepted join, leave or relay.
type Observer interface {
	Joined(user domain.User, online int)
	Left(user domain.User, online int)
	Relayed(msg domain.ChatMessage)
}

// PresencePayload is the data of user_joined and user_left.
type PresencePayload struct {
	ID       string        `json:"id"`
	Username string        `json:"username"`
	Users    []domain.User `json:"users"`
}

// InboundFrame is the envelope read from clients.
type InboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ChatMessageInput is the data of an inbound chat_message.
type ChatMessageInput struct {
	Message string `json:"message"`
	IsCode  bool   `json:"isCode"`
}

// Options bounds user-supplied chat input.
type Options struct {
	MaxUsernameLength int
	MaxMessageLength  int
}

// DefaultOptions returns the limits used when none are configured.
func DefaultOptions() Options {
	return Options{
		MaxUsernameLength: 50,
		MaxMessageLength:  10000,
	}
}
