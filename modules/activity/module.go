package activity

import (
	"context"
	"fmt"

	"github.com/example/code-playground/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// topSenders is how many senders Stats reports.
const topSenders = 5

// Module consumes chat events and keeps activity counters.
type Module struct {
	store  *Store
	logger types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.EventConsumerModule   = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates the activity module.
func NewModule(logger types.Logger) *Module {
	return &Module{
		store:  NewStore(DefaultMaxRecent),
		logger: logger,
	}
}

func (m *Module) Name() string {
	return "activity"
}

// RegisterEventConsumers subscribes to the chat events.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(
		registry, events.UserJoinedV1, m.handleUserJoined, m,
	); err != nil {
		return fmt.Errorf("failed to register UserJoined consumer: %w", err)
	}

	if err := helper.RegisterTypedEventConsumer(
		registry, events.UserLeftV1, m.handleUserLeft, m,
	); err != nil {
		return fmt.Errorf("failed to register UserLeft consumer: %w", err)
	}

	if err := helper.RegisterTypedEventConsumer(
		registry, events.MessageRelayedV1, m.handleMessageRelayed, m,
	); err != nil {
		return fmt.Errorf("failed to register MessageRelayed consumer: %w", err)
	}

	m.logger.Info("Registered event consumers",
		"events", []string{"UserJoined.v1", "UserLeft.v1", "MessageRelayed.v1"})
	return nil
}

func (m *Module) handleUserJoined(_ context.Context, event events.UserJoinedEvent, _ *mono.Msg) error {
	m.store.RecordJoin(event.Username, event.OnlineCount, event.Timestamp)
	m.logger.Debug("Recorded join", "username", event.Username, "online", event.OnlineCount)
	return nil
}

func (m *Module) handleUserLeft(_ context.Context, event events.UserLeftEvent, _ *mono.Msg) error {
	m.store.RecordLeave(event.Username, event.OnlineCount, event.Timestamp)
	m.logger.Debug("Recorded leave", "username", event.Username, "online", event.OnlineCount)
	return nil
}

func (m *Module) handleMessageRelayed(_ context.Context, event events.MessageRelayedEvent, _ *mono.Msg) error {
	m.store.RecordMessage(event.Username, event.IsCode, event.Timestamp)
	return nil
}

func (m *Module) Start(_ context.Context) error {
	m.logger.Info("Activity module started")
	return nil
}

func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Activity module stopped")
	return nil
}

func (m *Module) Health(_ context.Context) mono.HealthStatus {
	stats := m.store.Snapshot(0)
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"joins":    stats.Joins,
			"messages": stats.Messages,
			"online":   stats.Online,
		},
	}
}

// Stats returns the current activity snapshot.
func (m *Module) Stats() Stats {
	return m.store.Snapshot(topSenders)
}
