package assistant

// Service names registered in the ServiceContainer.
const (
	ServiceAnalyze   = "analyze"
	ServiceOptimize  = "optimize"
	ServiceExplain   = "explain"
	ServiceTranslate = "translate"
)

// CodeRequest is the request for the analyze, optimize and explain services.
type CodeRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

// TranslateRequest is the request for the translate service.
type TranslateRequest struct {
	Code         string `json:"code"`
	FromLanguage string `json:"fromLanguage"`
	ToLanguage   string `json:"toLanguage"`
}

// ReportResponse carries a generated markdown report.
type ReportResponse struct {
	Report string `json:"report"`
}

// focus is a named angle a report is written from.
type focus struct {
	name        string
	description string
}

// codeRule is a canned remark that only applies to matching code.
type codeRule struct {
	applies func(code string) bool
	text    string
}
