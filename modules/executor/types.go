package executor

import (
	"errors"
	"fmt"

	"github.com/example/code-playground/domain/execution"
)

// Service names registered in the ServiceContainer.
const (
	ServiceExecute = "execute"
	ServiceDebug   = "debug"
)

// ErrUnsupportedLanguage is returned before any call to the execution service.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// GatewayError reports a failure of the execution service call itself,
// as opposed to a failure of the submitted program.
type GatewayError struct {
	Cause error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("code execution failed: %v", e.Cause)
}

func (e *GatewayError) Unwrap() error {
	return e.Cause
}

// ExecuteRequest is the request for the execute and debug services.
type ExecuteRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

// ExecuteResponse is the response for the execute service.
type ExecuteResponse struct {
	Outcome execution.Outcome `json:"outcome"`
}

// DebugResponse is the response for the debug service.
type DebugResponse struct {
	Report string `json:"report"`
}

// pistonFile is one source file in an execution request.
type pistonFile struct {
	Content string `json:"content"`
}

// pistonRequest is the body POSTed to <base>/execute.
type pistonRequest struct {
	Language string       `json:"language"`
	Version  string       `json:"version"`
	Files    []pistonFile `json:"files"`
}

// pistonStage is the result of the compile or run phase.
type pistonStage struct {
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
	Output string `json:"output"`
	Code   *int   `json:"code"`
}

// pistonResponse is the execution service reply. Compile is absent for
// interpreted languages.
type pistonResponse struct {
	Language string       `json:"language"`
	Version  string       `json:"version"`
	Compile  *pistonStage `json:"compile"`
	Run      *pistonStage `json:"run"`
	Message  string       `json:"message"`
}
