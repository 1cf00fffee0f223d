package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AssistantPort is how other modules reach the assistant.
type AssistantPort interface {
	Analyze(ctx context.Context, code, language string) (string, error)
	Optimize(ctx context.Context, code, language string) (string, error)
	Explain(ctx context.Context, code, language string) (string, error)
	Translate(ctx context.Context, code, from, to string) (string, error)
}

// assistantAdapter wraps ServiceContainer for type-safe cross-module communication.
type assistantAdapter struct {
	container mono.ServiceContainer
	timeout   time.Duration
}

// NewAssistantAdapter creates an adapter for the assistant services.
func NewAssistantAdapter(container mono.ServiceContainer, timeout time.Duration) AssistantPort {
	if container == nil {
		panic("assistant adapter requires non-nil ServiceContainer")
	}
	return &assistantAdapter{container: container, timeout: timeout}
}

func (a *assistantAdapter) Analyze(ctx context.Context, code, language string) (string, error) {
	return callReport(ctx, a, ServiceAnalyze, CodeRequest{Code: code, Language: language})
}

func (a *assistantAdapter) Optimize(ctx context.Context, code, language string) (string, error) {
	return callReport(ctx, a, ServiceOptimize, CodeRequest{Code: code, Language: language})
}

func (a *assistantAdapter) Explain(ctx context.Context, code, language string) (string, error) {
	return callReport(ctx, a, ServiceExplain, CodeRequest{Code: code, Language: language})
}

func (a *assistantAdapter) Translate(ctx context.Context, code, from, to string) (string, error) {
	return callReport(ctx, a, ServiceTranslate, TranslateRequest{Code: code, FromLanguage: from, ToLanguage: to})
}

func callReport[Req any](ctx context.Context, a *assistantAdapter, service string, req Req) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var resp ReportResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		service,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return "", fmt.Errorf("%s service call failed: %w", service, err)
	}
	return resp.Report, nil
}
