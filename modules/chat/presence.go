package chat

import (
	"html"
	"strings"

	domain "github.com/example/code-playground/domain/chat"
)

// OnJoin registers connID under username and announces it.
// Blank names and repeated joins are ignored. It reports whether the join was accepted.
func (s *Service) OnJoin(connID, username string) bool {
	name := s.cleanUsername(username)
	if name == "" {
		s.logger.Debug("Ignoring join with empty username", "connID", connID)
		return false
	}

	s.mu.Lock()
	if _, joined := s.registry.Lookup(connID); joined {
		s.mu.Unlock()
		s.logger.Debug("Ignoring repeated join", "connID", connID)
		return false
	}
	if err := s.registry.Register(connID, name); err != nil {
		s.mu.Unlock()
		s.logger.Warn("Failed to register connection", "connID", connID, "error", err)
		return false
	}

	users := s.registry.Snapshot()
	user := domain.User{ID: connID, Username: name}
	s.broadcaster.SendToAll(Event{
		Name: EventUserJoined,
		Data: PresencePayload{ID: connID, Username: name, Users: users},
	})
	s.broadcaster.SendTo(connID, Event{Name: EventUserList, Data: users})
	s.mu.Unlock()

	s.logger.Info("User joined", "connID", connID, "username", name, "online", len(users))
	if s.observer != nil {
		s.observer.Joined(user, len(users))
	}
	return true
}

// OnDisconnect removes connID and announces the departure if it had joined.
func (s *Service) OnDisconnect(connID string) bool {
	s.mu.Lock()
	user, ok := s.registry.Remove(connID)
	if !ok {
		s.mu.Unlock()
		return false
	}
	users := s.registry.Snapshot()
	s.broadcaster.SendToAll(Event{
		Name: EventUserLeft,
		Data: PresencePayload{ID: user.ID, Username: user.Username, Users: users},
	})
	s.mu.Unlock()

	s.logger.Info("User left", "connID", connID, "username", user.Username, "online", len(users))
	if s.observer != nil {
		s.observer.Left(user, len(users))
	}
	return true
}

// cleanUsername trims, bounds and strips markup from the display name.
// The result is plain text; clients escape it on render.
func (s *Service) cleanUsername(raw string) string {
	name := strings.TrimSpace(html.UnescapeString(raw))
	if runes := []rune(name); len(runes) > s.opts.MaxUsernameLength {
		name = string(runes[:s.opts.MaxUsernameLength])
	}
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(name)))
}
