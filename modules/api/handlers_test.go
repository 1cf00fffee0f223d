package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	domain "github.com/example/code-playground/domain/chat"
	"github.com/example/code-playground/domain/execution"
	domainrl "github.com/example/code-playground/domain/ratelimit"
	"github.com/example/code-playground/modules/activity"
	"github.com/example/code-playground/modules/ratelimit"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(_ string, _ ...any)         {}
func (m *mockLogger) Info(_ string, _ ...any)          {}
func (m *mockLogger) Warn(_ string, _ ...any)          {}
func (m *mockLogger) Error(_ string, _ ...any)         {}
func (m *mockLogger) With(_ ...any) types.Logger       { return m }
func (m *mockLogger) WithError(_ error) types.Logger   { return m }
func (m *mockLogger) WithModule(_ string) types.Logger { return m }

type fakeExecutor struct {
	outcome execution.Outcome
	report  string
	err     error
	calls   int
}

func (f *fakeExecutor) Execute(_ context.Context, _, _ string) (execution.Outcome, error) {
	f.calls++
	return f.outcome, f.err
}

func (f *fakeExecutor) Debug(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return f.report, f.err
}

type fakeAssistant struct {
	err  error
	last []string
}

func (f *fakeAssistant) record(kind string, args ...string) (string, error) {
	f.last = append([]string{kind}, args...)
	if f.err != nil {
		return "", f.err
	}
	return "# " + kind + " report", nil
}

func (f *fakeAssistant) Analyze(_ context.Context, code, language string) (string, error) {
	return f.record("analyze", code, language)
}

func (f *fakeAssistant) Optimize(_ context.Context, code, language string) (string, error) {
	return f.record("optimize", code, language)
}

func (f *fakeAssistant) Explain(_ context.Context, code, language string) (string, error) {
	return f.record("explain", code, language)
}

func (f *fakeAssistant) Translate(_ context.Context, code, from, to string) (string, error) {
	return f.record("translate", code, from, to)
}

type fakeChat struct {
	users []domain.User
}

func (f *fakeChat) HandleFrame(_ string, _ []byte) error { return nil }
func (f *fakeChat) OnDisconnect(_ string) bool          { return false }
func (f *fakeChat) Users() []domain.User                { return f.users }

type panicChat struct{ *fakeChat }

func (panicChat) Users() []domain.User { panic("registry corrupted") }

type fakeStats struct{ stats activity.Stats }

func (f *fakeStats) Stats() activity.Stats { return f.stats }

type fakeHealth struct{ status mono.HealthStatus }

func (f *fakeHealth) Name() string                              { return "fake" }
func (f *fakeHealth) Start(_ context.Context) error              { return nil }
func (f *fakeHealth) Stop(_ context.Context) error               { return nil }
func (f *fakeHealth) Health(_ context.Context) mono.HealthStatus { return f.status }

type denyLimiter struct{}

func (denyLimiter) Allow(_ context.Context, _ string) (*domainrl.Result, error) {
	return &domainrl.Result{Allowed: false, ResetAt: time.Now(), RetryAfter: 3 * time.Second}, nil
}

type testEnv struct {
	module    *Module
	executor  *fakeExecutor
	assistant *fakeAssistant
	app       *fiber.App
}

func newTestEnv(t *testing.T, opts ...func(*Module)) *testEnv {
	t.Helper()

	env := &testEnv{
		executor:  &fakeExecutor{},
		assistant: &fakeAssistant{},
	}
	m := NewModule(Config{Port: "0"}, &mockLogger{})
	m.executor = env.executor
	m.assistant = env.assistant
	m.SetChat(&fakeChat{})
	for _, opt := range opts {
		opt(m)
	}
	env.module = m
	env.app = m.newApp()
	return env
}

func (e *testEnv) post(t *testing.T, path string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return e.do(t, req)
}

func (e *testEnv) do(t *testing.T, req *http.Request) (int, map[string]any) {
	t.Helper()

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload map[string]any
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &payload), string(data))
	}
	return resp.StatusCode, payload
}

func TestExecute_Success(t *testing.T) {
	env := newTestEnv(t)
	out := "42"
	env.executor.outcome = execution.Outcome{
		Succeeded: true,
		Output:    &out,
		Category:  execution.CategorySuccess,
	}

	status, body := env.post(t, "/api/execute", CodeRequest{Code: "print(42)", Language: "python"})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "42", body["output"])
	assert.Equal(t, "Success", body["status"])
	assert.Nil(t, body["error"])
	assert.NotContains(t, body, "compile_output")
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    any
		message string
	}{
		{name: "missing code", body: map[string]string{"language": "python"}, message: "Code and language are required"},
		{name: "missing language", body: map[string]string{"code": "x = 1"}, message: "Code and language are required"},
		{name: "empty body", body: map[string]string{}, message: "Code and language are required"},
		{name: "blank code", body: CodeRequest{Code: "   ", Language: "python"}, message: "Code and language are required"},
		{name: "blank language", body: CodeRequest{Code: "x = 1", Language: " \t"}, message: "Code and language are required"},
		{name: "unsupported language", body: CodeRequest{Code: "x", Language: "csharp"}, message: "Unsupported language: csharp"},
	}

	for _, path := range []string{"/api/execute", "/api/debug"} {
		for _, tt := range tests {
			t.Run(path+" "+tt.name, func(t *testing.T) {
				env := newTestEnv(t)

				status, body := env.post(t, path, tt.body)

				assert.Equal(t, fiber.StatusBadRequest, status)
				assert.Equal(t, false, body["success"])
				assert.Equal(t, tt.message, body["error"])
				assert.Equal(t, "Bad Request", body["status"])
				assert.Zero(t, env.executor.calls)
			})
		}
	}
}

func TestExecute_ServiceFailure(t *testing.T) {
	env := newTestEnv(t)
	env.executor.err = errors.New("service unavailable")

	status, body := env.post(t, "/api/execute", CodeRequest{Code: "1", Language: "javascript"})

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Server error: service unavailable", body["error"])
	assert.Equal(t, "Server Error", body["status"])
}

func TestDebug_Success(t *testing.T) {
	env := newTestEnv(t)
	env.executor.report = "# Debugging Results\n"

	status, body := env.post(t, "/api/debug", CodeRequest{Code: "1/0", Language: "python"})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "# Debugging Results\n", body["debug_results"])
	assert.Equal(t, "Success", body["status"])
}

func TestAssistantEndpoints(t *testing.T) {
	tests := []struct {
		path string
		key  string
		kind string
	}{
		{path: "/api/analyze", key: "analysis", kind: "analyze"},
		{path: "/api/optimize", key: "optimized", kind: "optimize"},
		{path: "/api/explain", key: "explanation", kind: "explain"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			env := newTestEnv(t)

			status, body := env.post(t, tt.path, CodeRequest{Code: "let x = 1", Language: "ruby"})

			assert.Equal(t, fiber.StatusOK, status)
			assert.Equal(t, true, body["success"])
			assert.Equal(t, "# "+tt.kind+" report", body[tt.key])
			assert.Equal(t, "Success", body["status"])
			assert.Equal(t, []string{tt.kind, "let x = 1", "ruby"}, env.assistant.last)
		})

		t.Run(tt.kind+" missing fields", func(t *testing.T) {
			env := newTestEnv(t)

			status, body := env.post(t, tt.path, map[string]string{"code": "x"})

			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Equal(t, "Code and language are required", body["error"])
			assert.Nil(t, env.assistant.last)
		})

		t.Run(tt.kind+" blank code", func(t *testing.T) {
			env := newTestEnv(t)

			status, body := env.post(t, tt.path, CodeRequest{Code: "   \n", Language: "python"})

			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Equal(t, "Code and language are required", body["error"])
			assert.Equal(t, "Bad Request", body["status"])
			assert.Nil(t, env.assistant.last)
		})

		t.Run(tt.kind+" failure", func(t *testing.T) {
			env := newTestEnv(t)
			env.assistant.err = errors.New("timed out")

			status, body := env.post(t, tt.path, CodeRequest{Code: "x", Language: "python"})

			assert.Equal(t, fiber.StatusInternalServerError, status)
			assert.Equal(t, "Server error: timed out", body["error"])
			assert.Equal(t, "Server Error", body["status"])
		})
	}
}

func TestTranslate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		env := newTestEnv(t)

		status, body := env.post(t, "/api/translate", TranslateRequest{
			Code: "print('hi')", FromLanguage: "python", ToLanguage: "java",
		})

		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "# translate report", body["translated_code"])
		assert.Equal(t, []string{"translate", "print('hi')", "python", "java"}, env.assistant.last)
	})

	t.Run("missing target", func(t *testing.T) {
		env := newTestEnv(t)

		status, body := env.post(t, "/api/translate", map[string]string{
			"code": "x", "fromLanguage": "python",
		})

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "Code, source language, and target language are required", body["error"])
	})

	t.Run("blank code", func(t *testing.T) {
		env := newTestEnv(t)

		status, body := env.post(t, "/api/translate", TranslateRequest{
			Code: "   ", FromLanguage: "python", ToLanguage: "java",
		})

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "Code, source language, and target language are required", body["error"])
		assert.Nil(t, env.assistant.last)
	})
}

func TestListUsers(t *testing.T) {
	env := newTestEnv(t, func(m *Module) {
		m.SetChat(&fakeChat{users: []domain.User{{ID: "c1", Username: "alice"}, {ID: "c2", Username: "bob"}}})
	})

	status, body := env.do(t, httptest.NewRequest(http.MethodGet, "/api/users", nil))

	assert.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 2, body["count"])
	users := body["users"].([]any)
	require.Len(t, users, 2)
	assert.Equal(t, map[string]any{"id": "c1", "username": "alice"}, users[0])
}

func TestPanicIsRecovered(t *testing.T) {
	env := newTestEnv(t, func(m *Module) {
		m.SetChat(panicChat{&fakeChat{}})
	})

	status, body := env.do(t, httptest.NewRequest(http.MethodGet, "/api/users", nil))

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Server error: registry corrupted", body["error"])
	assert.Equal(t, "Server Error", body["status"])
}

func TestGetStats(t *testing.T) {
	t.Run("served", func(t *testing.T) {
		env := newTestEnv(t, func(m *Module) {
			m.SetStats(&fakeStats{stats: activity.Stats{Joins: 3, Messages: 7, Online: 2}})
		})

		status, body := env.do(t, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

		assert.Equal(t, fiber.StatusOK, status)
		assert.EqualValues(t, 3, body["joins"])
		assert.EqualValues(t, 7, body["messages"])
		assert.EqualValues(t, 2, body["online"])
	})

	t.Run("not configured", func(t *testing.T) {
		env := newTestEnv(t)

		status, body := env.do(t, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Not Found", body["status"])
	})
}

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		env := newTestEnv(t, func(m *Module) {
			m.AddHealthCheck("executor", &fakeHealth{mono.HealthStatus{Healthy: true, Message: "operational"}})
		})

		status, body := env.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "healthy", body["status"])
		modules := body["modules"].(map[string]any)
		assert.Contains(t, modules, "executor")
	})

	t.Run("degraded", func(t *testing.T) {
		env := newTestEnv(t, func(m *Module) {
			m.AddHealthCheck("executor", &fakeHealth{mono.HealthStatus{Healthy: true}})
			m.AddHealthCheck("rate-limiter", &fakeHealth{mono.HealthStatus{Healthy: false, Message: "redis unreachable"}})
		})

		status, body := env.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, fiber.StatusServiceUnavailable, status)
		assert.Equal(t, "degraded", body["status"])
		limiter := body["modules"].(map[string]any)["rate-limiter"].(map[string]any)
		assert.Equal(t, false, limiter["healthy"])
		assert.Equal(t, "redis unreachable", limiter["message"])
	})
}

func TestRateLimitGuardsExecution(t *testing.T) {
	env := newTestEnv(t, func(m *Module) {
		m.SetRateLimiter(ratelimit.NewMiddleware(denyLimiter{}, 1))
	})

	status, body := env.post(t, "/api/execute", CodeRequest{Code: "1", Language: "python"})
	assert.Equal(t, fiber.StatusTooManyRequests, status)
	assert.Equal(t, "Too Many Requests", body["status"])
	assert.Zero(t, env.executor.calls)

	status, _ = env.post(t, "/api/analyze", CodeRequest{Code: "1", Language: "python"})
	assert.Equal(t, fiber.StatusOK, status)
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/execute", nil)
	req.Header.Set("Origin", "http://example.test")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Not Found", body["status"])
}

func TestWebSocketRouteRequiresUpgrade(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, httptest.NewRequest(http.MethodGet, "/ws", nil))

	assert.Equal(t, fiber.StatusUpgradeRequired, status)
	assert.Equal(t, "Upgrade Required", body["status"])
}

func TestStaticFiles(t *testing.T) {
	t.Run("served from directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>playground</h1>"), 0o644))
		env := newTestEnv(t, func(m *Module) { m.config.StaticDir = dir })

		resp, err := env.app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "<h1>playground</h1>", string(body))
	})

	t.Run("missing directory is skipped", func(t *testing.T) {
		env := newTestEnv(t, func(m *Module) {
			m.config.StaticDir = filepath.Join(t.TempDir(), "absent")
		})

		status, body := env.do(t, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Equal(t, "Not Found", body["status"])
		status, _ = env.do(t, httptest.NewRequest(http.MethodGet, "/api/users", nil))
		assert.Equal(t, fiber.StatusOK, status)
	})
}
