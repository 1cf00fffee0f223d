package execution

// Category classifies the result of submitting code to the execution service.
// The values double as the status labels returned to clients.
type Category string

const (
	CategorySuccess          Category = "Success"
	CategoryCompilationError Category = "Compilation Error"
	CategoryRuntimeError     Category = "Runtime Error"
	CategoryGatewayError     Category = "Server Error"
)

// NoOutputPlaceholder replaces empty run output on success.
const NoOutputPlaceholder = "Program executed successfully with no output"

// Outcome is the classified result of one execution request.
type Outcome struct {
	Succeeded     bool     `json:"success"`
	Output        *string  `json:"output"`
	Error         *string  `json:"error"`
	Category      Category `json:"status"`
	CompileOutput *string  `json:"compile_output,omitempty"`
}

// Cacheable reports whether the outcome describes the submitted program
// rather than a failure of the gateway itself.
func (o Outcome) Cacheable() bool {
	return o.Category != CategoryGatewayError
}

// Language pins a playground language to the execution service's runtime.
type Language struct {
	Runtime string `json:"runtime"`
	Version string `json:"version"`
}
