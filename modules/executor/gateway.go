package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/code-playground/domain/execution"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

var errMalformedResponse = errors.New("malformed response: missing run result")

// Gateway submits code to a Piston-compatible execution service.
type Gateway struct {
	baseURL string
	timeout time.Duration
}

// NewGateway creates a Gateway for the service at baseURL.
func NewGateway(baseURL string, timeout time.Duration) *Gateway {
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
}

// Execute runs code and classifies the result. Only an unsupported language
// is returned as an error; a failed call yields a CategoryGatewayError outcome.
func (g *Gateway) Execute(ctx context.Context, code, language string) (execution.Outcome, error) {
	lang, ok := LookupLanguage(language)
	if !ok {
		return execution.Outcome{}, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, language)
	}

	resp, err := g.submit(ctx, lang, code)
	if err != nil {
		return gatewayFailure(err), nil
	}
	return classify(resp), nil
}

// submit performs the HTTP call, bounded by the gateway timeout and ctx.
func (g *Gateway) submit(ctx context.Context, lang execution.Language, code string) (*pistonResponse, error) {
	timeout := g.timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, &GatewayError{Cause: context.DeadlineExceeded}
		}
		if timeout <= 0 || remaining < timeout {
			timeout = remaining
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, &GatewayError{Cause: err}
	}

	agent := fiber.Post(g.baseURL + "/execute")
	agent.JSON(pistonRequest{
		Language: lang.Runtime,
		Version:  lang.Version,
		Files:    []pistonFile{{Content: code}},
	})
	if timeout > 0 {
		agent.Timeout(timeout)
	}

	var resp pistonResponse
	status, _, errs := agent.Struct(&resp)
	if len(errs) > 0 {
		return nil, &GatewayError{Cause: errors.Join(errs...)}
	}
	if status >= fiber.StatusBadRequest {
		cause := fmt.Errorf("request failed with status code %d", status)
		if resp.Message != "" {
			cause = fmt.Errorf("%w: %s", cause, resp.Message)
		}
		return nil, &GatewayError{Cause: cause}
	}
	if resp.Run == nil && (resp.Compile == nil || resp.Compile.Stderr == "") {
		return nil, &GatewayError{Cause: errMalformedResponse}
	}
	return &resp, nil
}

// classify maps a service response onto an outcome. Compile errors take
// precedence over anything the run phase reports.
func classify(resp *pistonResponse) execution.Outcome {
	if resp.Compile != nil && resp.Compile.Stderr != "" {
		return execution.Outcome{
			Succeeded: false,
			Error:     lo.ToPtr(resp.Compile.Stderr),
			Category:  execution.CategoryCompilationError,
		}
	}

	if resp.Run.Stderr != "" {
		return execution.Outcome{
			Succeeded: false,
			Output:    nonEmpty(resp.Run.Stdout),
			Error:     lo.ToPtr(resp.Run.Stderr),
			Category:  execution.CategoryRuntimeError,
		}
	}

	output := resp.Run.Stdout
	if output == "" {
		output = execution.NoOutputPlaceholder
	}
	var compileOutput *string
	if resp.Compile != nil {
		compileOutput = nonEmpty(resp.Compile.Stdout)
	}
	return execution.Outcome{
		Succeeded:     true,
		Output:        lo.ToPtr(output),
		Category:      execution.CategorySuccess,
		CompileOutput: compileOutput,
	}
}

// gatewayFailure reports a failed call as an outcome.
func gatewayFailure(err error) execution.Outcome {
	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		gwErr = &GatewayError{Cause: err}
	}
	return execution.Outcome{
		Succeeded: false,
		Error:     lo.ToPtr("Code execution failed: " + gwErr.Cause.Error()),
		Category:  execution.CategoryGatewayError,
	}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return lo.ToPtr(s)
}
