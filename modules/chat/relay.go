package chat

import (
	"strings"
	"unicode/utf8"

	domain "github.com/example/code-playground/domain/chat"
)

// OnChatMessage stamps a message from a joined connection and sends it to everyone,
// the sender included. Messages from unjoined connections, blank bodies and
// oversized bodies are dropped. It reports whether the message was relayed.
func (s *Service) OnChatMessage(connID, body string, isCode bool) bool {
	if strings.TrimSpace(body) == "" {
		return false
	}
	if utf8.RuneCountInString(body) > s.opts.MaxMessageLength {
		s.logger.Debug("Dropping oversized message", "connID", connID, "length", len(body))
		return false
	}

	s.mu.Lock()
	user, ok := s.registry.Lookup(connID)
	if !ok {
		s.mu.Unlock()
		s.logger.Debug("Dropping message from unjoined connection", "connID", connID)
		return false
	}
	msg := domain.ChatMessage{
		SenderID:       user.ID,
		SenderUsername: user.Username,
		Body:           body,
		Timestamp:      domain.FormatTimestamp(s.now()),
		IsCode:         isCode,
	}
	s.broadcaster.SendToAll(Event{Name: EventChatMessage, Data: msg})
	s.mu.Unlock()

	if s.observer != nil {
		s.observer.Relayed(msg)
	}
	return true
}
