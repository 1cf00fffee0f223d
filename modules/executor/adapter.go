package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/code-playground/domain/execution"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// ExecutorPort is how other modules reach the executor.
type ExecutorPort interface {
	Execute(ctx context.Context, code, language string) (execution.Outcome, error)
	Debug(ctx context.Context, code, language string) (string, error)
}

// executorAdapter wraps ServiceContainer for type-safe cross-module communication.
type executorAdapter struct {
	container mono.ServiceContainer
	timeout   time.Duration
}

// NewExecutorAdapter creates an adapter for the executor services. Each call
// is bounded by timeout, which should exceed the execution timeout.
func NewExecutorAdapter(container mono.ServiceContainer, timeout time.Duration) ExecutorPort {
	if container == nil {
		panic("executor adapter requires non-nil ServiceContainer")
	}
	return &executorAdapter{container: container, timeout: timeout}
}

// Execute runs code via the execute service.
func (a *executorAdapter) Execute(ctx context.Context, code, language string) (execution.Outcome, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	req := ExecuteRequest{Code: code, Language: language}
	var resp ExecuteResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceExecute,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return execution.Outcome{}, fmt.Errorf("execute service call failed: %w", err)
	}
	return resp.Outcome, nil
}

// Debug renders a debugging report via the debug service.
func (a *executorAdapter) Debug(ctx context.Context, code, language string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	req := ExecuteRequest{Code: code, Language: language}
	var resp DebugResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceDebug,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return "", fmt.Errorf("debug service call failed: %w", err)
	}
	return resp.Report, nil
}
