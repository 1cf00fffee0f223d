package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// Module exposes the report generators as request/reply services.
type Module struct {
	generator *Generator
	delay     time.Duration
	logger    types.Logger
}

var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates the assistant module. delay is the simulated
// processing time of every request.
func NewModule(delay time.Duration, logger types.Logger) (*Module, error) {
	generator, err := NewGenerator(time.Now().UnixNano())
	if err != nil {
		return nil, err
	}
	return &Module{
		generator: generator,
		delay:     delay,
		logger:    logger,
	}, nil
}

func (m *Module) Name() string {
	return "assistant"
}

func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	generators := map[string]func(code, language string) string{
		ServiceAnalyze:  m.generator.Analyze,
		ServiceOptimize: m.generator.Optimize,
		ServiceExplain:  m.generator.Explain,
	}
	for name, generate := range generators {
		if err := helper.RegisterTypedRequestReplyService(
			container, name, json.Unmarshal, json.Marshal, m.reportHandler(name, generate),
		); err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceTranslate, json.Unmarshal, json.Marshal, m.handleTranslate,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceTranslate, err)
	}

	m.logger.Info("Registered services",
		"services", []string{ServiceAnalyze, ServiceOptimize, ServiceExplain, ServiceTranslate})
	return nil
}

func (m *Module) Start(_ context.Context) error {
	m.logger.Info("Assistant module started", "delay", m.delay)
	return nil
}

func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Assistant module stopped")
	return nil
}

func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"translatable": translatable,
		},
	}
}

// Generator returns the report generator.
func (m *Module) Generator() *Generator {
	return m.generator
}

func (m *Module) reportHandler(
	name string,
	generate func(code, language string) string,
) func(context.Context, CodeRequest, *mono.Msg) (ReportResponse, error) {
	return func(ctx context.Context, req CodeRequest, _ *mono.Msg) (ReportResponse, error) {
		if err := m.simulateWork(ctx); err != nil {
			return ReportResponse{}, err
		}
		report := generate(req.Code, req.Language)
		m.logger.Debug("Generated report", "service", name, "language", req.Language)
		return ReportResponse{Report: report}, nil
	}
}

func (m *Module) handleTranslate(ctx context.Context, req TranslateRequest, _ *mono.Msg) (ReportResponse, error) {
	if err := m.simulateWork(ctx); err != nil {
		return ReportResponse{}, err
	}
	report := Translate(req.Code, req.FromLanguage, req.ToLanguage)
	m.logger.Debug("Translated code", "from", req.FromLanguage, "to", req.ToLanguage)
	return ReportResponse{Report: report}, nil
}

// simulateWork waits for the configured delay or until ctx is done.
func (m *Module) simulateWork(ctx context.Context) error {
	if m.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(m.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
