package api

import (
	domain "github.com/example/code-playground/domain/chat"
	"github.com/example/code-playground/modules/activity"
)

// Status labels returned alongside every response.
const (
	statusSuccess     = "Success"
	statusBadRequest  = "Bad Request"
	statusServerError = "Server Error"
)

// ChatService is the part of the chat service the transport drives.
type ChatService interface {
	HandleFrame(connID string, frame []byte) error
	OnDisconnect(connID string) bool
	Users() []domain.User
}

// StatsSource provides chat activity counters.
type StatsSource interface {
	Stats() activity.Stats
}

// CodeRequest is the body of execute, debug, analyze, optimize and explain.
type CodeRequest struct {
	Code     string `json:"code" validate:"required,notblank"`
	Language string `json:"language" validate:"required,notblank"`
}

// TranslateRequest is the body of translate.
type TranslateRequest struct {
	Code         string `json:"code" validate:"required,notblank"`
	FromLanguage string `json:"fromLanguage" validate:"required,notblank"`
	ToLanguage   string `json:"toLanguage" validate:"required,notblank"`
}

// ErrorResponse is the API error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Status  string `json:"status"`
}

// DebugResponse is the response of POST /api/debug.
type DebugResponse struct {
	Success      bool   `json:"success"`
	DebugResults string `json:"debug_results"`
	Status       string `json:"status"`
}

// AnalyzeResponse is the response of POST /api/analyze.
type AnalyzeResponse struct {
	Success  bool   `json:"success"`
	Analysis string `json:"analysis"`
	Status   string `json:"status"`
}

// OptimizeResponse is the response of POST /api/optimize.
type OptimizeResponse struct {
	Success   bool   `json:"success"`
	Optimized string `json:"optimized"`
	Status    string `json:"status"`
}

// ExplainResponse is the response of POST /api/explain.
type ExplainResponse struct {
	Success     bool   `json:"success"`
	Explanation string `json:"explanation"`
	Status      string `json:"status"`
}

// TranslateResponse is the response of POST /api/translate.
type TranslateResponse struct {
	Success        bool   `json:"success"`
	TranslatedCode string `json:"translated_code"`
	Status         string `json:"status"`
}

// UsersResponse lists the joined users.
type UsersResponse struct {
	Users []domain.User `json:"users"`
	Count int           `json:"count"`
}

// ModuleHealth is one module's entry in the health response.
type ModuleHealth struct {
	Healthy bool           `json:"healthy"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthResponse is the API health check response.
type HealthResponse struct {
	Status  string                  `json:"status"`
	Modules map[string]ModuleHealth `json:"modules"`
}
