package ratelimit

import (
	"context"

	"github.com/example/code-playground/domain/ratelimit"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces the sliding window keys in Redis.
const keyPrefix = "playground:ratelimit:ip:"

// Module owns the Redis connection behind the execution rate limit.
type Module struct {
	client     *redis.Client
	limiter    *SlidingWindowLimiter
	middleware *Middleware
	redisAddr  string
	logger     types.Logger
}

var (
	_ mono.Module                = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates the rate limiting module. With an empty redisAddr the
// middleware is a pass-through.
func NewModule(redisAddr string, config ratelimit.Config, logger types.Logger) *Module {
	m := &Module{
		redisAddr: redisAddr,
		logger:    logger,
	}
	if redisAddr == "" {
		m.middleware = NewMiddleware(nil, config.RequestsPerWindow)
		return m
	}

	m.client = redis.NewClient(&redis.Options{Addr: redisAddr})
	m.limiter = NewSlidingWindowLimiter(m.client, config, keyPrefix)
	m.middleware = NewMiddleware(m.limiter, config.RequestsPerWindow)
	return m
}

func (m *Module) Name() string {
	return "rate-limiter"
}

func (m *Module) Start(ctx context.Context) error {
	if m.client == nil {
		m.logger.Info("Rate limiting disabled, no Redis address configured")
		return nil
	}

	if err := m.client.Ping(ctx).Err(); err != nil {
		m.logger.Warn("Redis unavailable, rate limiting disabled", "addr", m.redisAddr, "error", err)
		m.middleware.Disable()
		return nil
	}

	cfg := m.limiter.Config()
	m.logger.Info("Rate limiting enabled",
		"addr", m.redisAddr,
		"requests", cfg.RequestsPerWindow,
		"window", cfg.WindowSize)
	return nil
}

func (m *Module) Stop(_ context.Context) error {
	if m.client != nil {
		if err := m.client.Close(); err != nil {
			m.logger.Warn("Error closing Redis connection", "error", err)
		}
	}
	m.logger.Info("Rate limiter stopped")
	return nil
}

func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if !m.middleware.Enabled() {
		return mono.HealthStatus{
			Healthy: true,
			Message: "disabled",
			Details: map[string]any{"enabled": false},
		}
	}

	if err := m.client.Ping(ctx).Err(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "redis unreachable",
			Details: map[string]any{"enabled": true, "error": err.Error()},
		}
	}

	cfg := m.limiter.Config()
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"enabled":  true,
			"requests": cfg.RequestsPerWindow,
			"window":   cfg.WindowSize.String(),
		},
	}
}

// Middleware returns the Fiber middleware applied to execution routes.
func (m *Module) Middleware() *Middleware {
	return m.middleware
}
