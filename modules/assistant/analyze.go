package assistant

import "strings"

var analysisApproaches = []focus{
	{"comprehensive", "Examining all aspects of code quality and structure"},
	{"security-focused", "Identifying potential security vulnerabilities and risks"},
	{"performance-oriented", "Evaluating code efficiency and execution speed"},
	{"readability-focused", "Assessing code clarity and maintainability"},
	{"best-practices", "Comparing against industry standard conventions"},
	{"architecture-centric", "Evaluating overall code structure and organization"},
	{"complexity-analysis", "Measuring cognitive and cyclomatic complexity"},
	{"modularity-assessment", "Examining component separation and reusability"},
	{"error-handling", "Focusing on robustness and failure management"},
	{"style-consistency", "Checking adherence to consistent coding patterns"},
}

var javascriptIssues = []codeRule{
	{contains("var "), "- **Use of var**: Consider using let/const instead of var for better variable scoping.\n"},
	{lacks("use strict"), "- **Missing Strict Mode**: Adding \"use strict\" can help catch common coding mistakes.\n"},
	{both(contains("=="), lacks("===")), "- **Loose Equality**: Using == instead of === can lead to unexpected type coercion.\n"},
	{contains("eval("), "- **Eval Usage**: Avoid using eval() as it can lead to security vulnerabilities.\n"},
	{either("setTimeout", "setInterval"), "- **Timer Functions**: Be careful with setTimeout/setInterval to avoid memory leaks in closures.\n"},
	{contains("innerHTML"), "- **innerHTML Usage**: Consider using textContent or DOM methods to avoid XSS vulnerabilities.\n"},
	{lacks("try", "catch"), "- **Error Handling**: Consider adding try/catch blocks for better error handling.\n"},
}

var pythonIssues = []codeRule{
	{lacks(`if __name__ == "__main__"`), "- **Main Guard**: Consider adding an if __name__ == \"__main__\": guard for better modularity.\n"},
	{both(contains("except:"), lacks("except ")), "- **Bare Except**: Using bare except clauses is not recommended. Specify exceptions.\n"},
	{contains("global "), "- **Global Variables**: Consider avoiding global variables for better code organization.\n"},
	{lacks("def "), "- **Function Definition**: Consider organizing your code into functions for better reusability.\n"},
	{both(contains("print("), lacks("logging")), "- **Logging**: Consider using the logging module instead of print statements.\n"},
	{contains(".append", "for "), "- **List Building**: Consider using list comprehensions for cleaner list creation.\n"},
}

var bestPractices = []string{
	"- **Documentation**: Add comments to explain complex logic or important decisions.\n",
	"- **Consistent Naming**: Use consistent naming conventions for variables and functions.\n",
	"- **Code Organization**: Group related functionality together for better readability.\n",
	"- **DRY Principle**: Avoid repeating code by extracting common functionality into functions.\n",
	"- **Single Responsibility**: Each function should have a single, well-defined purpose.\n",
	"- **Meaningful Names**: Use descriptive names for variables and functions.\n",
}

var performanceConsiderations = []string{
	"- Consider optimizing loops and data structures for better performance.\n",
	"- Avoid unnecessary calculations or operations within loops.\n",
	"- Be mindful of memory usage, especially with large data structures.\n",
	"- Consider caching results of expensive operations.\n",
	"- Minimize DOM manipulations in browser environments.\n",
	"- Use appropriate data structures for your specific use case.\n",
}

var securityConsiderations = []string{
	"- Validate all user inputs to prevent injection attacks.\n",
	"- Avoid storing sensitive information in client-side code.\n",
	"- Use parameterized queries to prevent SQL injection.\n",
	"- Implement proper authentication and authorization.\n",
	"- Be cautious with third-party libraries and keep them updated.\n",
	"- Sanitize user input before displaying it to prevent XSS attacks.\n",
}

// Analyze returns a markdown code review of code.
func (g *Generator) Analyze(code, language string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var b strings.Builder
	b.WriteString("# Code Analysis Results\n\n")
	b.WriteString(g.header("Analysis"))

	approaches := sample(g, analysisApproaches, 2)
	b.WriteString("Primary focus: " + approaches[0].name + " (" + approaches[0].description + ")\n")
	b.WriteString("Secondary focus: " + approaches[1].name + " (" + approaches[1].description + ")\n\n")

	var issues []string
	heading := "## Issues Found\n\n"
	switch language {
	case "javascript":
		issues = applicable(javascriptIssues, code)
	case "python":
		issues = applicable(pythonIssues, code)
		heading = "## Suggestions\n\n"
	}
	if len(issues) > 0 {
		b.WriteString(heading)
		n := max(1, g.rng.Intn(len(issues)))
		for _, issue := range sample(g, issues, n) {
			b.WriteString(issue)
		}
	}

	b.WriteString("\n## Best Practices\n\n")
	for _, s := range sample(g, bestPractices, g.between(2, 4)) {
		b.WriteString(s)
	}
	b.WriteString("\n## Performance Considerations\n\n")
	for _, s := range sample(g, performanceConsiderations, g.between(2, 3)) {
		b.WriteString(s)
	}
	b.WriteString("\n## Security Considerations\n\n")
	for _, s := range sample(g, securityConsiderations, g.between(2, 3)) {
		b.WriteString(s)
	}
	return b.String()
}
