package executor

import (
	"slices"

	"github.com/example/code-playground/domain/execution"
	"github.com/samber/lo"
)

// languages pins each playground language to an execution-service runtime.
var languages = map[string]execution.Language{
	"javascript": {Runtime: "javascript", Version: "18.15.0"},
	"python":     {Runtime: "python3", Version: "3.10.0"},
	"cpp":        {Runtime: "c++", Version: "10.2.0"},
	"java":       {Runtime: "java", Version: "15.0.2"},
}

// LookupLanguage returns the runtime pin for a playground language.
func LookupLanguage(name string) (execution.Language, bool) {
	lang, ok := languages[name]
	return lang, ok
}

// IsSupported reports whether name can be executed.
func IsSupported(name string) bool {
	_, ok := languages[name]
	return ok
}

// SupportedLanguages returns the executable language names, sorted.
func SupportedLanguages() []string {
	names := lo.Keys(languages)
	slices.Sort(names)
	return names
}
