package executor

import (
	"context"

	"github.com/example/code-playground/domain/execution"
	"github.com/go-monolith/mono/pkg/types"
	"golang.org/x/sync/singleflight"
)

// Runner executes code and classifies the result.
type Runner interface {
	Execute(ctx context.Context, code, language string) (execution.Outcome, error)
}

// Service fronts a Runner with an optional outcome cache. Identical
// submissions in flight at the same time share one upstream call.
type Service struct {
	runner  Runner
	cache   OutcomeStore
	sfGroup singleflight.Group
	logger  types.Logger
}

// NewService creates a Service; cache may be nil.
func NewService(runner Runner, cache OutcomeStore, logger types.Logger) *Service {
	return &Service{
		runner: runner,
		cache:  cache,
		logger: logger,
	}
}

// Execute returns the classified outcome of running code.
func (s *Service) Execute(ctx context.Context, code, language string) (execution.Outcome, error) {
	if !IsSupported(language) {
		return s.runner.Execute(ctx, code, language)
	}

	key := submissionKey(language, code)
	if s.cache != nil {
		outcome, found, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("Outcome cache read failed", "error", err)
		}
		if found {
			s.logger.Debug("Outcome cache hit", "language", language)
			return outcome, nil
		}
	}

	// The shared call outlives any one caller; the gateway applies its own timeout.
	runCtx := context.WithoutCancel(ctx)
	val, err, shared := s.sfGroup.Do(key, func() (any, error) {
		return s.runner.Execute(runCtx, code, language)
	})
	if err != nil {
		return execution.Outcome{}, err
	}
	outcome := val.(execution.Outcome)
	if shared {
		s.logger.Debug("Shared in-flight execution", "language", language)
	}

	s.logger.Info("Code executed", "language", language, "status", outcome.Category)
	if s.cache != nil && outcome.Cacheable() {
		if err := s.cache.Set(ctx, key, outcome); err != nil {
			s.logger.Warn("Outcome cache write failed", "error", err)
		}
	}
	return outcome, nil
}

// Debug executes code and renders the debugging report.
func (s *Service) Debug(ctx context.Context, code, language string) (string, error) {
	outcome, err := s.Execute(ctx, code, language)
	if err != nil {
		return "", err
	}
	return RenderDebugReport(outcome), nil
}
