package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/example/code-playground/config"
	"github.com/example/code-playground/domain/ratelimit"
	"github.com/example/code-playground/modules/activity"
	"github.com/example/code-playground/modules/api"
	"github.com/example/code-playground/modules/assistant"
	"github.com/example/code-playground/modules/broadcast"
	"github.com/example/code-playground/modules/chat"
	"github.com/example/code-playground/modules/executor"
	ratelimitmod "github.com/example/code-playground/modules/ratelimit"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

// Headroom added to service call timeouts on top of the work they bound.
const (
	executorCallHeadroom  = 5 * time.Second
	assistantCallHeadroom = 10 * time.Second
)

func main() {
	log.Println("=== Code Playground - Fiber + WebSocket Chat + Piston Execution ===")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel := mono.WithLogLevel(mono.LogLevelInfo)
	if cfg.LogLevel == "error" {
		logLevel = mono.WithLogLevel(mono.LogLevelError)
	}

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		logLevel,
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	logger := app.Logger()

	broadcastModule := broadcast.NewModule(logger.WithModule("broadcast"), cfg.SendQueueSize)
	chatModule := chat.NewModule(broadcastModule.Hub(), logger.WithModule("chat"), chat.Options{
		MaxUsernameLength: cfg.MaxUsernameLength,
		MaxMessageLength:  cfg.MaxMessageLength,
	})
	activityModule := activity.NewModule(logger.WithModule("activity"))
	executorModule := executor.NewModule(executor.Config{
		PistonURL:    cfg.PistonURL,
		Timeout:      cfg.ExecutionTimeout,
		CacheEnabled: cfg.OutcomeCacheEnabled(),
		RedisAddr:    cfg.RedisAddr,
		CacheTTL:     cfg.OutcomeCacheTTL,
	}, logger.WithModule("executor"))
	assistantModule, err := assistant.NewModule(cfg.AssistantDelay, logger.WithModule("assistant"))
	if err != nil {
		log.Fatalf("Failed to create assistant module: %v", err)
	}
	rateLimitModule := ratelimitmod.NewModule(cfg.RedisAddr, ratelimit.Config{
		RequestsPerWindow: cfg.RateLimitRequests,
		WindowSize:        cfg.RateLimitWindow,
	}, logger.WithModule("rate-limiter"))
	apiModule := api.NewModule(api.Config{
		Port:             cfg.Port,
		StaticDir:        cfg.StaticDir,
		AccessLog:        cfg.LogLevel != "error",
		ExecutorTimeout:  cfg.ExecutionTimeout + executorCallHeadroom,
		AssistantTimeout: cfg.AssistantDelay + assistantCallHeadroom,
	}, logger.WithModule("api"))

	// The hub, chat service and counters are plain Go values, not services,
	// so they are handed to the API module directly.
	apiModule.SetHub(broadcastModule.Hub())
	apiModule.SetChat(chatModule.Service())
	apiModule.SetStats(activityModule)
	apiModule.SetRateLimiter(rateLimitModule.Middleware())
	apiModule.AddHealthCheck(broadcastModule.Name(), broadcastModule)
	apiModule.AddHealthCheck(chatModule.Name(), chatModule)
	apiModule.AddHealthCheck(activityModule.Name(), activityModule)
	apiModule.AddHealthCheck(executorModule.Name(), executorModule)
	apiModule.AddHealthCheck(assistantModule.Name(), assistantModule)
	apiModule.AddHealthCheck(rateLimitModule.Name(), rateLimitModule)

	// Order: independent modules first, then modules with dependencies
	// - broadcast: websocket hub, owns every socket write
	// - activity: event consumer for chat events
	// - chat: presence and relay, emits chat events
	// - executor, assistant: request/reply services
	// - rate-limiter: Redis sliding window for execution routes
	// - api: driving adapter (Fiber HTTP/WebSocket), depends on executor and assistant
	modules := []mono.Module{
		broadcastModule,
		activityModule,
		chatModule,
		executorModule,
		assistantModule,
		rateLimitModule,
		apiModule,
	}
	for _, m := range modules {
		if err := app.Register(m); err != nil {
			log.Fatalf("Failed to register %s module: %v", m.Name(), err)
		}
	}

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg, rateLimitModule.Middleware().Enabled())

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg *config.Config, rateLimited bool) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("  - Execution service: %s (timeout %s)", cfg.PistonURL, cfg.ExecutionTimeout)
	log.Printf("  - Languages: %s", strings.Join(executor.SupportedLanguages(), ", "))
	if cfg.RedisEnabled() {
		log.Printf("  - Redis: %s (rate limiting: %t, outcome cache: %t)",
			cfg.RedisAddr, rateLimited, cfg.OutcomeCacheEnabled())
	} else {
		log.Println("  - Redis: disabled")
	}
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%s):", cfg.Port)
	log.Println("  GET    /health          - Aggregated module health")
	log.Println("  GET    /api/users       - Joined chat users")
	log.Println("  GET    /api/stats       - Chat activity counters")
	log.Println("  POST   /api/execute     - Run code")
	log.Println("  POST   /api/debug       - Run code and annotate errors")
	log.Println("  POST   /api/analyze     - Code analysis report")
	log.Println("  POST   /api/optimize    - Optimization report")
	log.Println("  POST   /api/explain     - Code explanation")
	log.Println("  POST   /api/translate   - Best-effort language translation")
	log.Println("")
	log.Printf("WebSocket Endpoint (ws://localhost:%s/ws):", cfg.Port)
	log.Println(`  {"event":"join","data":"<username>"}`)
	log.Println(`  {"event":"chat_message","data":{"message":"...","isCode":false}}`)
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
