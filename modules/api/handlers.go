package api

import (
	"context"

	"github.com/example/code-playground/modules/executor"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

const (
	msgCodeAndLanguage = "Code and language are required"
	msgTranslateFields = "Code, source language, and target language are required"
)

var validate = newValidator()

// newValidator rejects whitespace-only fields as well as empty ones.
func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// setupRoutes configures all HTTP and WebSocket routes.
func (m *Module) setupRoutes(app *fiber.App) {
	app.Get("/health", m.healthHandler)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(m.handleWebSocket))

	api := app.Group("/api")
	api.Get("/users", m.listUsers)
	api.Get("/stats", m.getStats)

	limit := m.rateLimit()
	api.Post("/execute", limit, m.execute)
	api.Post("/debug", limit, m.debug)

	api.Post("/analyze", m.report(
		func(ctx context.Context, code, language string) (string, error) {
			return m.assistant.Analyze(ctx, code, language)
		},
		func(report string) any {
			return AnalyzeResponse{Success: true, Analysis: report, Status: statusSuccess}
		},
	))
	api.Post("/optimize", m.report(
		func(ctx context.Context, code, language string) (string, error) {
			return m.assistant.Optimize(ctx, code, language)
		},
		func(report string) any {
			return OptimizeResponse{Success: true, Optimized: report, Status: statusSuccess}
		},
	))
	api.Post("/explain", m.report(
		func(ctx context.Context, code, language string) (string, error) {
			return m.assistant.Explain(ctx, code, language)
		},
		func(report string) any {
			return ExplainResponse{Success: true, Explanation: report, Status: statusSuccess}
		},
	))
	api.Post("/translate", m.translate)
}

func (m *Module) rateLimit() fiber.Handler {
	if m.limiter == nil {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return m.limiter.IPRateLimit()
}

// healthHandler handles GET /health.
func (m *Module) healthHandler(c *fiber.Ctx) error {
	resp := HealthResponse{
		Status:  "healthy",
		Modules: make(map[string]ModuleHealth, len(m.checks)),
	}
	for _, check := range m.checks {
		h := check.module.Health(c.UserContext())
		resp.Modules[check.name] = ModuleHealth{
			Healthy: h.Healthy,
			Message: h.Message,
			Details: h.Details,
		}
		if !h.Healthy {
			resp.Status = "degraded"
		}
	}

	if resp.Status != "healthy" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}

// listUsers handles GET /api/users.
func (m *Module) listUsers(c *fiber.Ctx) error {
	users := m.chat.Users()
	return c.JSON(UsersResponse{Users: users, Count: len(users)})
}

// getStats handles GET /api/stats.
func (m *Module) getStats(c *fiber.Ctx) error {
	if m.stats == nil {
		return fiber.ErrNotFound
	}
	return c.JSON(m.stats.Stats())
}

// execute handles POST /api/execute.
func (m *Module) execute(c *fiber.Ctx) error {
	var req CodeRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, msgCodeAndLanguage)
	}
	if !executor.IsSupported(req.Language) {
		return badRequest(c, "Unsupported language: "+req.Language)
	}

	outcome, err := m.executor.Execute(c.UserContext(), req.Code, req.Language)
	if err != nil {
		return m.serverError(c, "execute", err)
	}
	return c.JSON(outcome)
}

// debug handles POST /api/debug.
func (m *Module) debug(c *fiber.Ctx) error {
	var req CodeRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, msgCodeAndLanguage)
	}
	if !executor.IsSupported(req.Language) {
		return badRequest(c, "Unsupported language: "+req.Language)
	}

	report, err := m.executor.Debug(c.UserContext(), req.Code, req.Language)
	if err != nil {
		return m.serverError(c, "debug", err)
	}
	return c.JSON(DebugResponse{Success: true, DebugResults: report, Status: statusSuccess})
}

// report builds a handler for the code-and-language assistant endpoints.
func (m *Module) report(
	run func(ctx context.Context, code, language string) (string, error),
	wrap func(report string) any,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CodeRequest
		if err := bind(c, &req); err != nil {
			return badRequest(c, msgCodeAndLanguage)
		}

		report, err := run(c.UserContext(), req.Code, req.Language)
		if err != nil {
			return m.serverError(c, c.Path(), err)
		}
		return c.JSON(wrap(report))
	}
}

// translate handles POST /api/translate.
func (m *Module) translate(c *fiber.Ctx) error {
	var req TranslateRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, msgTranslateFields)
	}

	translated, err := m.assistant.Translate(c.UserContext(), req.Code, req.FromLanguage, req.ToLanguage)
	if err != nil {
		return m.serverError(c, "translate", err)
	}
	return c.JSON(TranslateResponse{Success: true, TranslatedCode: translated, Status: statusSuccess})
}

// bind parses the JSON body into req and validates it.
func bind[T any](c *fiber.Ctx, req *T) error {
	if err := c.BodyParser(req); err != nil {
		return err
	}
	return validate.Struct(req)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Success: false,
		Error:   message,
		Status:  statusBadRequest,
	})
}

func (m *Module) serverError(c *fiber.Ctx, op string, err error) error {
	m.logger.Error("Request failed", "op", op, "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Success: false,
		Error:   "Server error: " + err.Error(),
		Status:  statusServerError,
	})
}
