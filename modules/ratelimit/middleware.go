package ratelimit

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/example/code-playground/domain/ratelimit"
	"github.com/gofiber/fiber/v2"
)

// Middleware limits requests per client IP.
type Middleware struct {
	limiter ratelimit.Limiter
	limit   int
	enabled atomic.Bool
}

// NewMiddleware creates an enabled middleware around limiter. A nil limiter
// yields a middleware that lets everything through.
func NewMiddleware(limiter ratelimit.Limiter, limit int) *Middleware {
	m := &Middleware{limiter: limiter, limit: limit}
	m.enabled.Store(limiter != nil)
	return m
}

// Enabled reports whether requests are being limited.
func (m *Middleware) Enabled() bool {
	return m != nil && m.enabled.Load()
}

// Disable turns the middleware into a pass-through.
func (m *Middleware) Disable() {
	m.enabled.Store(false)
}

// IPRateLimit returns middleware that limits requests by client IP.
func (m *Middleware) IPRateLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !m.Enabled() {
			return c.Next()
		}

		result, err := m.limiter.Allow(c.Context(), c.IP())
		if err != nil {
			// Fail open.
			c.Set("X-RateLimit-Error", err.Error())
			return c.Next()
		}

		setRateLimitHeaders(c, result, m.limit)

		if !result.Allowed {
			return sendRateLimitExceeded(c, result)
		}
		return c.Next()
	}
}

func setRateLimitHeaders(c *fiber.Ctx, result *ratelimit.Result, limit int) {
	c.Set("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

func sendRateLimitExceeded(c *fiber.Ctx, result *ratelimit.Result) error {
	retryAfter := int(result.RetryAfter.Seconds())
	if retryAfter < 1 {
		retryAfter = 1
	}

	c.Set("Retry-After", strconv.Itoa(retryAfter))

	return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
		"success": false,
		"error":   fmt.Sprintf("Rate limit exceeded. Please retry after %d seconds.", retryAfter),
		"status":  "Too Many Requests",
	})
}
