package chat

import (
	"context"
	"time"

	domain "github.com/example/code-playground/domain/chat"
	"github.com/example/code-playground/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
)

// Module owns the chat Service and publishes its activity on the EventBus.
type Module struct {
	service  *Service
	eventBus mono.EventBus
	logger   types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.EventBusAwareModule   = (*Module)(nil)
	_ mono.EventEmitterModule    = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
	_ Observer                   = (*Module)(nil)
)

// NewModule creates a chat module delivering events through broadcaster.
func NewModule(broadcaster Broadcaster, logger types.Logger, opts Options) *Module {
	m := &Module{
		service: NewService(broadcaster, logger, opts),
		logger:  logger,
	}
	m.service.SetObserver(m)
	return m
}

// Name returns the module name.
func (m *Module) Name() string {
	return "chat"
}

// SetEventBus receives the EventBus from the framework.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module can emit.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.UserJoinedV1.ToBase(),
		events.UserLeftV1.ToBase(),
		events.MessageRelayedV1.ToBase(),
	}
}

// Start starts the module.
func (m *Module) Start(_ context.Context) error {
	if m.eventBus == nil {
		m.logger.Warn("EventBus not set, chat events will not be published")
	}
	m.logger.Info("Chat module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Chat module stopped", "online", m.service.Registry().Len())
	return nil
}

// Health returns the health status.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"online_users": m.service.Registry().Len(),
		},
	}
}

// Service returns the presence and relay service.
func (m *Module) Service() *Service {
	return m.service
}

// Joined publishes UserJoined.
func (m *Module) Joined(user domain.User, online int) {
	if m.eventBus == nil {
		return
	}
	event := events.UserJoinedEvent{
		ConnectionID: user.ID,
		Username:     user.Username,
		OnlineCount:  online,
		Timestamp:    time.Now(),
	}
	if err := events.UserJoinedV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish UserJoined event", "connID", user.ID, "error", err)
	}
}

// Left publishes UserLeft.
func (m *Module) Left(user domain.User, online int) {
	if m.eventBus == nil {
		return
	}
	event := events.UserLeftEvent{
		ConnectionID: user.ID,
		Username:     user.Username,
		OnlineCount:  online,
		Timestamp:    time.Now(),
	}
	if err := events.UserLeftV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish UserLeft event", "connID", user.ID, "error", err)
	}
}

// Relayed publishes MessageRelayed.
func (m *Module) Relayed(msg domain.ChatMessage) {
	if m.eventBus == nil {
		return
	}
	event := events.MessageRelayedEvent{
		ConnectionID: msg.SenderID,
		Username:     msg.SenderUsername,
		IsCode:       msg.IsCode,
		Length:       len(msg.Body),
		Timestamp:    time.Now(),
	}
	if err := events.MessageRelayedV1.Publish(m.eventBus, event, nil); err != nil {
		m.logger.Warn("Failed to publish MessageRelayed event", "connID", msg.SenderID, "error", err)
	}
}
