package api

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/example/code-playground/modules/assistant"
	"github.com/example/code-playground/modules/broadcast"
	"github.com/example/code-playground/modules/executor"
	"github.com/example/code-playground/modules/ratelimit"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
)

// Config configures the HTTP server.
type Config struct {
	Port      string
	StaticDir string
	// AccessLog enables per-request logging.
	AccessLog bool
	// ExecutorTimeout bounds calls to the execute and debug services.
	ExecutorTimeout time.Duration
	// AssistantTimeout bounds calls to the assistant services.
	AssistantTimeout time.Duration
}

// healthCheck is a named module reported by GET /health.
type healthCheck struct {
	name   string
	module mono.HealthCheckableModule
}

// Module is the HTTP API module with WebSocket support.
type Module struct {
	config    Config
	app       *fiber.App
	executor  executor.ExecutorPort
	assistant assistant.AssistantPort
	chat      ChatService
	hub       *broadcast.Hub
	stats     StatsSource
	limiter   *ratelimit.Middleware
	checks    []healthCheck
	logger    types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.DependentModule       = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates the API module.
func NewModule(config Config, logger types.Logger) *Module {
	return &Module{
		config: config,
		logger: logger,
	}
}

func (m *Module) Name() string {
	return "api"
}

func (m *Module) Dependencies() []string {
	return []string{"executor", "assistant"}
}

// SetDependencyServiceContainer builds the adapters for the executor and
// assistant services.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "executor":
		m.executor = executor.NewExecutorAdapter(container, m.config.ExecutorTimeout)
	case "assistant":
		m.assistant = assistant.NewAssistantAdapter(container, m.config.AssistantTimeout)
	}
}

// SetChat sets the chat service driven by websocket frames.
func (m *Module) SetChat(chat ChatService) {
	m.chat = chat
}

// SetHub sets the broadcast hub that owns websocket writers.
func (m *Module) SetHub(hub *broadcast.Hub) {
	m.hub = hub
}

// SetStats sets the activity counters served at /api/stats.
func (m *Module) SetStats(stats StatsSource) {
	m.stats = stats
}

// SetRateLimiter sets the middleware guarding the execution routes.
func (m *Module) SetRateLimiter(limiter *ratelimit.Middleware) {
	m.limiter = limiter
}

// AddHealthCheck includes module in the GET /health report under name.
func (m *Module) AddHealthCheck(name string, module mono.HealthCheckableModule) {
	m.checks = append(m.checks, healthCheck{name: name, module: module})
}

func (m *Module) Start(_ context.Context) error {
	if m.executor == nil || m.assistant == nil {
		return errors.New("executor and assistant dependencies not set")
	}
	if m.chat == nil || m.hub == nil {
		return errors.New("chat service and broadcast hub must be set")
	}

	m.app = m.newApp()

	errCh := make(chan error, 1)
	go func() {
		if err := m.app.Listen(":" + m.config.Port); err != nil {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
	}

	m.logger.Info("HTTP server started", "port", m.config.Port, "static_dir", m.config.StaticDir)
	return nil
}

func (m *Module) Stop(ctx context.Context) error {
	if m.app == nil {
		return nil
	}
	if err := m.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	m.logger.Info("HTTP server stopped")
	return nil
}

func (m *Module) Health(_ context.Context) mono.HealthStatus {
	details := map[string]any{"port": m.config.Port}
	if m.hub != nil {
		details["connected_clients"] = m.hub.ClientCount()
	}
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: details,
	}
}

// newApp builds the Fiber app with middleware and routes.
func (m *Module) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Code Playground",
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          60 * time.Second,
		IdleTimeout:           120 * time.Second,
	})

	app.Use(recover.New())
	if m.config.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} ${method} ${path} ${latency}\n",
			Next:   websocket.IsWebSocketUpgrade,
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
	}))

	m.setupRoutes(app)

	if dir := m.config.StaticDir; dir != "" {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			m.logger.Warn("Static directory not found, static files disabled", "dir", dir)
		} else {
			app.Static("/", dir)
		}
	}
	return app
}

// customErrorHandler renders Fiber errors in the API error shape.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Server error: " + err.Error()

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	status := utils.StatusMessage(code)
	if code == fiber.StatusInternalServerError {
		status = statusServerError
	}
	return c.Status(code).JSON(ErrorResponse{
		Success: false,
		Error:   message,
		Status:  status,
	})
}
