package chat

import "time"

// TimestampLayout renders relay timestamps as ISO-8601 with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// User is a joined connection as seen by other clients.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ChatMessage is a relayed message, stamped by the server. It is never stored.
type ChatMessage struct {
	SenderID       string `json:"id"`
	SenderUsername string `json:"username"`
	Body           string `json:"message"`
	Timestamp      string `json:"timestamp"`
	IsCode         bool   `json:"isCode"`
}

// FormatTimestamp formats t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
