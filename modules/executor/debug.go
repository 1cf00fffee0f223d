package executor

import (
	"regexp"
	"strings"

	"github.com/example/code-playground/domain/execution"
)

// lineNumberPattern recognises "line N", "(N:M)", ":N:" and "at line N".
var lineNumberPattern = regexp.MustCompile(`(?i)line (\d+)|\((\d+):(\d+)\)|:(\d+):|at line (\d+)`)

var debuggingTips = []string{
	"Use console.log() or print() statements to track variable values",
	"Check for off-by-one errors in loops and array indices",
	"Verify that all variables are properly initialized before use",
	"Test your code with different inputs to ensure it works in all cases",
}

// RenderDebugReport renders an outcome as a markdown debugging report.
func RenderDebugReport(o execution.Outcome) string {
	var b strings.Builder
	b.WriteString("# Debugging Results\n\n")

	switch o.Category {
	case execution.CategoryCompilationError:
		b.WriteString("## Compilation Error Detected\n\n")
		b.WriteString(annotateLines(deref(o.Error)))
	case execution.CategoryRuntimeError:
		b.WriteString("## Runtime Error Detected\n\n")
		b.WriteString(annotateLines(deref(o.Error)))
		if out := deref(o.Output); out != "" {
			b.WriteString("\n## Program Output (before error)\n\n```\n" + out + "\n```\n")
		}
	case execution.CategorySuccess:
		b.WriteString("✅ **No issues found**. Your code compiled and ran successfully.\n")
		if out := deref(o.Output); strings.TrimSpace(out) != "" {
			b.WriteString("\n## Program Output\n\n```\n" + out + "\n```\n")
		} else {
			b.WriteString("\n## Program Output\n\nYour program ran without producing any output.\n")
		}
		if compiled := deref(o.CompileOutput); strings.TrimSpace(compiled) != "" {
			b.WriteString("\n## Compilation Output\n\n```\n" + compiled + "\n```\n")
		}
	default:
		b.WriteString("## Error Detected\n\n")
		b.WriteString(deref(o.Error))
	}

	b.WriteString("\n## Debugging Tips\n\n")
	for _, tip := range debuggingTips {
		b.WriteString("- " + tip + "\n")
	}
	return b.String()
}

// annotateLines prefixes each stderr line carrying a line number with "**Line N**: ".
func annotateLines(stderr string) string {
	var b strings.Builder
	for _, line := range strings.Split(stderr, "\n") {
		if n, ok := ExtractLineNumber(line); ok {
			b.WriteString("**Line " + n + "**: ")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// ExtractLineNumber returns the first source line number found in an error line.
func ExtractLineNumber(line string) (string, bool) {
	match := lineNumberPattern.FindStringSubmatch(line)
	if match == nil {
		return "", false
	}
	for _, group := range match[1:] {
		if group != "" {
			return group, true
		}
	}
	return "", false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
