package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// UserJoinedEvent is emitted after a connection completes join.
type UserJoinedEvent struct {
	ConnectionID string    `json:"connection_id"`
	Username     string    `json:"username"`
	OnlineCount  int       `json:"online_count"`
	Timestamp    time.Time `json:"timestamp"`
}

// UserLeftEvent is emitted after a joined connection disconnects.
type UserLeftEvent struct {
	ConnectionID string    `json:"connection_id"`
	Username     string    `json:"username"`
	OnlineCount  int       `json:"online_count"`
	Timestamp    time.Time `json:"timestamp"`
}

// MessageRelayedEvent is emitted after a chat message has been fanned out.
// The body is not included.
type MessageRelayedEvent struct {
	ConnectionID string    `json:"connection_id"`
	Username     string    `json:"username"`
	IsCode       bool      `json:"is_code"`
	Length       int       `json:"length"`
	Timestamp    time.Time `json:"timestamp"`
}

// Event definitions for the chat domain.
var (
	UserJoinedV1 = helper.EventDefinition[UserJoinedEvent](
		"chat",
		"UserJoined",
		"v1",
	)

	UserLeftV1 = helper.EventDefinition[UserLeftEvent](
		"chat",
		"UserLeft",
		"v1",
	)

	MessageRelayedV1 = helper.EventDefinition[MessageRelayedEvent](
		"chat",
		"MessageRelayed",
		"v1",
	)
)
