package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/redis/go-redis/v9"
)

// Config configures the executor module.
type Config struct {
	PistonURL string
	Timeout   time.Duration
	// CacheEnabled turns on the Redis outcome cache at RedisAddr.
	CacheEnabled bool
	RedisAddr    string
	CacheTTL     time.Duration
}

// Module exposes code execution and debugging as request/reply services.
type Module struct {
	config  Config
	service *Service
	cache   *RedisOutcomeCache
	client  *redis.Client
	logger  types.Logger
}

var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates the executor module. The Redis client, if any, is
// created here so the service is usable before Start.
func NewModule(config Config, logger types.Logger) *Module {
	m := &Module{
		config: config,
		logger: logger,
	}

	var store OutcomeStore
	if config.CacheEnabled && config.RedisAddr != "" {
		m.client = redis.NewClient(&redis.Options{Addr: config.RedisAddr})
		m.cache = NewRedisOutcomeCache(m.client, "playground:outcome:", config.CacheTTL)
		store = m.cache
	}
	m.service = NewService(NewGateway(config.PistonURL, config.Timeout), store, logger)
	return m
}

func (m *Module) Name() string {
	return "executor"
}

func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceExecute, json.Unmarshal, json.Marshal, m.handleExecute,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceExecute, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceDebug, json.Unmarshal, json.Marshal, m.handleDebug,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceDebug, err)
	}

	m.logger.Info("Registered services", "services", []string{ServiceExecute, ServiceDebug})
	return nil
}

func (m *Module) Start(ctx context.Context) error {
	if m.cache != nil {
		if err := m.cache.Ping(ctx); err != nil {
			m.logger.Warn("Redis unavailable, outcome cache disabled", "addr", m.config.RedisAddr, "error", err)
			m.service.cache = nil
		} else {
			m.logger.Info("Outcome cache enabled", "addr", m.config.RedisAddr, "ttl", m.config.CacheTTL)
		}
	}
	m.logger.Info("Executor module started", "piston_url", m.config.PistonURL, "timeout", m.config.Timeout)
	return nil
}

func (m *Module) Stop(_ context.Context) error {
	if m.client != nil {
		if err := m.client.Close(); err != nil {
			m.logger.Warn("Error closing Redis connection", "error", err)
		}
	}
	m.logger.Info("Executor module stopped")
	return nil
}

func (m *Module) Health(_ context.Context) mono.HealthStatus {
	details := map[string]any{
		"languages": SupportedLanguages(),
		"cache":     m.service.cache != nil,
	}
	if m.cache != nil && m.service.cache != nil {
		details["cache_stats"] = m.cache.Stats()
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: details,
	}
}

// Service returns the execution service.
func (m *Module) Service() *Service {
	return m.service
}

func (m *Module) handleExecute(ctx context.Context, req ExecuteRequest, _ *mono.Msg) (ExecuteResponse, error) {
	outcome, err := m.service.Execute(ctx, req.Code, req.Language)
	if err != nil {
		return ExecuteResponse{}, err
	}
	return ExecuteResponse{Outcome: outcome}, nil
}

func (m *Module) handleDebug(ctx context.Context, req ExecuteRequest, _ *mono.Msg) (DebugResponse, error) {
	report, err := m.service.Debug(ctx, req.Code, req.Language)
	if err != nil {
		return DebugResponse{}, err
	}
	return DebugResponse{Report: report}, nil
}
