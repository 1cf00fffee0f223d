// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every tunable of the playground service.
type Config struct {
	Port      string `envconfig:"PORT" default:"3001" validate:"required,numeric"`
	StaticDir string `envconfig:"STATIC_DIR"` // served at / when set

	// PistonURL is the base URL of the code execution service; /execute is appended.
	PistonURL        string        `envconfig:"PISTON_URL" default:"https://emkc.org/api/v2/piston" validate:"required,url"`
	ExecutionTimeout time.Duration `envconfig:"EXECUTION_TIMEOUT" default:"15s" validate:"gt=0"`

	// RedisAddr enables rate limiting when set.
	RedisAddr         string        `envconfig:"REDIS_ADDR" validate:"omitempty,hostname_port"`
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"30" validate:"gte=1"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m" validate:"gt=0"`

	// OutcomeCache replays identical submissions from Redis for OutcomeCacheTTL.
	// Programs that read time or randomness get stale output, so it is opt-in.
	OutcomeCache    bool          `envconfig:"OUTCOME_CACHE" default:"false"`
	OutcomeCacheTTL time.Duration `envconfig:"OUTCOME_CACHE_TTL" default:"5m" validate:"gt=0"`

	MaxUsernameLength int `envconfig:"MAX_USERNAME_LENGTH" default:"50" validate:"gte=1"`
	MaxMessageLength  int `envconfig:"MAX_MESSAGE_LENGTH" default:"10000" validate:"gte=1"`
	SendQueueSize     int `envconfig:"SEND_QUEUE_SIZE" default:"64" validate:"gte=1"`

	AssistantDelay  time.Duration `envconfig:"ASSISTANT_DELAY" default:"1s" validate:"gte=0"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s" validate:"gt=0"`

	// LogLevel is "info" or "error"; "error" silences request and presence logs.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=info error"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// OutcomeCacheEnabled reports whether execution outcomes are cached in Redis.
func (c *Config) OutcomeCacheEnabled() bool {
	return c.OutcomeCache && c.RedisEnabled()
}

// RedisEnabled reports whether Redis-backed features should be wired.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}
