package assistant

import (
	"fmt"
	"regexp"
	"strings"
)

var explanationStyles = []focus{
	{"detailed", "Providing a comprehensive breakdown of each component"},
	{"concise", "Offering a brief and to-the-point explanation"},
	{"beginner-friendly", "Explaining concepts in simple terms for newcomers"},
	{"technical", "Focusing on the technical implementation details"},
	{"conceptual", "Emphasizing the underlying programming concepts"},
	{"algorithmic", "Analyzing the algorithmic approach and complexity"},
	{"structural", "Examining the code structure and organization"},
	{"educational", "Providing learning-oriented insights"},
	{"practical", "Highlighting real-world applications and use cases"},
	{"comparative", "Comparing with alternative implementation approaches"},
}

var (
	namedFunctionPattern = regexp.MustCompile(`function\s+\w+\s*\(`)
	arrowBlockPattern    = regexp.MustCompile(`=>\s*\{`)
)

// lineKinds classifies a source line for the walkthrough; first match wins.
var lineKinds = []struct {
	matches func(line string) bool
	pool    []string
}{
	{contains("function"), []string{
		"Defines a function that encapsulates a specific task.",
		"Creates a reusable block of code that can be called later.",
		"Declares a function to handle a particular operation.",
	}},
	{either("const", "let", "var"), []string{
		"Declares a variable to store data.",
		"Creates a named container for a value.",
		"Initializes a variable with a value for later use.",
	}},
	{contains("if"), []string{
		"Checks a condition to determine which code to execute.",
		"Evaluates an expression to decide on a course of action.",
		"Creates a branch in the code based on a condition.",
	}},
	{either("for", "while"), []string{
		"Creates a loop to repeat actions.",
		"Sets up iteration over a collection or for a specified number of times.",
		"Establishes a repeating block of code.",
	}},
	{contains("return"), []string{
		"Returns a value from a function.",
		"Provides the result of the function's operation.",
		"Sends a value back to where the function was called.",
	}},
	{contains("console.log"), []string{
		"Outputs information to the console for debugging.",
		"Displays a message or value in the browser's developer console.",
		"Logs data to help with troubleshooting and development.",
	}},
	{func(line string) bool { return strings.TrimSpace(line) == "}" }, []string{
		"Closes a code block.",
		"Ends a function, loop, or conditional statement.",
		"Marks the end of a block of code.",
	}},
	{always, []string{
		"Performs an operation or calculation.",
		"Executes a specific instruction.",
		"Processes data or updates the program state.",
	}},
}

var summaryHeaders = []string{"## Summary\n\n", "## Overview\n\n", "## Conclusion\n\n", "## Key Takeaways\n\n"}

var summaryContents = []string{
	"This code is designed to perform specific tasks in %[1]s. It uses standard programming constructs like variables, functions, and control flow statements to achieve its goals.\n\n",
	"The %[1]s code implements functionality through a combination of data structures, algorithms, and programming patterns appropriate for the task at hand.\n\n",
	"This implementation demonstrates how %[1]s can be used to solve problems through structured programming techniques and language-specific features.\n\n",
	"The code shows a practical application of %[1]s programming concepts to implement specific functionality and handle data processing requirements.\n\n",
}

var purposeConclusions = []string{
	"The overall purpose seems to be to process data and produce some kind of output or perform actions based on the input.",
	"The main goal of this code appears to be handling specific operations and producing results based on the given inputs.",
	"This code serves to implement business logic that transforms input data into meaningful output through a series of operations.",
	"The implementation aims to solve a specific problem through algorithmic steps and data manipulation techniques.",
}

// Explain returns a markdown walkthrough of code.
func (g *Generator) Explain(code, language string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var b strings.Builder
	b.WriteString("# Code Explanation\n\n")
	b.WriteString(g.header("Explanation"))

	style := explanationStyles[g.rng.Intn(len(explanationStyles))]
	b.WriteString("Explanation style: " + style.name + " (" + style.description + ")\n\n")

	switch language {
	case "javascript":
		g.explainJavaScript(&b, code)
	case "python":
		g.explainPython(&b, code)
	default:
		intro := g.pick([]string{
			"This is {language} code that performs various operations.\n\n",
			"The code is written in {language} and implements specific functionality.\n\n",
			"This {language} program contains logic to process data and perform tasks.\n\n",
			"The {language} code shown here demonstrates programming concepts and techniques.\n\n",
		})
		description := g.pick([]string{
			"The code appears to be structured with functions and control flow statements to achieve its purpose.\n\n",
			"It uses standard programming constructs like variables, conditions, and loops to implement its logic.\n\n",
			"The implementation follows common patterns in {language} to accomplish its tasks efficiently.\n\n",
			"This code demonstrates how {language} can be used to solve specific programming problems.\n\n",
		})
		b.WriteString(strings.ReplaceAll(intro+description, "{language}", language))
	}

	b.WriteString(g.pick(summaryHeaders))
	b.WriteString(fmt.Sprintf(g.pick(summaryContents), language))
	b.WriteString(g.pick(purposeConclusions))
	return b.String()
}

func (g *Generator) explainJavaScript(b *strings.Builder, code string) {
	has := func(s string) bool { return strings.Contains(code, s) }

	b.WriteString(g.pick([]string{
		"This JavaScript code implements functionality that processes data and performs operations.\n\n",
		"The code is written in JavaScript and appears to handle various programming tasks.\n\n",
		"This is a JavaScript program that contains logic for manipulating data and controlling program flow.\n\n",
		"The JavaScript code shown here demonstrates various programming concepts and techniques.\n\n",
		"This code snippet contains JavaScript logic that performs specific operations.\n\n",
		"The JavaScript implementation shown here utilizes " +
			when(has("=>") || has("const"), "modern ES6+ features", "standard language features") + " to accomplish its goals.\n\n",
		"This JavaScript code is structured to " +
			when(has("function"), "separate concerns through function definitions", "perform its operations in a sequential manner") + ".\n\n",
		"This code represents a JavaScript solution that " +
			when(has("async"), "handles asynchronous operations", "executes synchronously") + " to complete its intended purpose.\n\n",
	}))

	var patterns []string
	if has("function") {
		count := len(namedFunctionPattern.FindAllString(code, -1)) + len(arrowBlockPattern.FindAllString(code, -1))
		kind := when(has("function*"), "generator functions", "regular functions")
		patterns = append(patterns,
			"The code defines "+when(count > 1, "multiple", "a")+" JavaScript "+kind+" that encapsulate specific tasks for better organization and reusability.\n",
			"Functions are used in this code to group related operations and enable code reuse."+
				when(has("=>"), " Modern arrow function syntax is utilized for more concise expressions.", "")+"\n",
			when(count > 1, "Multiple functions are", "A function is")+" defined to separate concerns and create modular code that's easier to maintain.\n",
		)
	}
	if has("const") || has("let") || has("var") {
		modern := has("const") || has("let")
		patterns = append(patterns,
			"Variables are declared to store and manage data throughout the program's execution."+
				when(modern, " Modern variable declarations (const/let) are used for better scoping control.", "")+"\n",
			"The code manages state through "+when(modern, "modern", "traditional")+" variable declarations, creating a "+
				when(has("const"), "more predictable data flow", "flexible execution environment")+".\n",
		)
	}
	if has("if") || has("else") {
		compound := has("&&") || has("||")
		patterns = append(patterns,
			"Conditional statements are used to create different execution paths based on specific conditions.\n",
			"The implementation uses conditional logic to "+when(compound, "evaluate complex conditions and ", "")+
				"determine appropriate execution paths based on runtime conditions.\n",
		)
	}
	if has("for") || has("while") {
		functional := has(".forEach") || has(".map(") || has(".filter(") || has(".reduce(")
		patterns = append(patterns,
			"Loops are utilized to repeat actions multiple times, improving code efficiency."+
				when(functional, " Modern array methods provide a more declarative approach to iteration.", "")+"\n",
			"Repetitive tasks are handled through "+when(functional, "both imperative loops and functional programming constructs", "loop structures")+
				" to process multiple items or repeat actions.\n",
		)
	}
	if has("async") || has("await") || has("Promise") {
		patterns = append(patterns,
			"The code uses asynchronous programming techniques to handle operations that take time to complete.\n",
			"Asynchronous operations are managed using "+
				when(has("async") && has("await"), "async/await syntax for cleaner, more sequential code.",
					when(has("Promise") || has(".then("), "Promises for better composability and error handling.", "callback patterns."))+"\n",
		)
	}
	if has("document.") || has("getElementById") || has("querySelector") {
		patterns = append(patterns,
			"The code interacts with the Document Object Model (DOM) to manipulate webpage elements.\n",
			"DOM manipulation is used to dynamically modify the content or appearance of the webpage.\n",
		)
	}
	if has("addEventListener") || has("event") {
		patterns = append(patterns,
			"Event listeners are implemented to respond to user interactions or system events.\n",
			"The implementation uses event-driven programming to respond to external triggers.\n",
		)
	}
	if has("class ") || has("prototype") || has("this.") {
		patterns = append(patterns,
			"The code implements "+when(has("class "), "class-based", "object-oriented")+" patterns to organize related data and functionality.\n",
			"Code organization follows object-oriented design, encapsulating state and behavior within "+
				when(has("class "), "class definitions", "object structures")+".\n",
		)
	}
	g.writeKeyComponents(b, patterns)

	lines := strings.Split(code, "\n")
	if len(lines) < 15 {
		b.WriteString(g.pick([]string{
			"## Line-by-Line Explanation\n\n",
			"## Detailed Breakdown\n\n",
			"## Code Walkthrough\n\n",
			"## Step-by-Step Analysis\n\n",
		}))
		var walkthrough []string
		for i, line := range lines {
			if strings.TrimSpace(line) == "" {
				continue
			}
			for _, kind := range lineKinds {
				if kind.matches(line) {
					walkthrough = append(walkthrough, fmt.Sprintf("**Line %d**: %s", i+1, g.pick(kind.pool)))
					break
				}
			}
		}
		b.WriteString(strings.Join(walkthrough, "\n") + "\n\n")
		return
	}

	b.WriteString(g.pick([]string{
		"The code is quite lengthy, so here's a summary of its main components and functionality.\n\n",
		"Since this is a larger code snippet, here is a high-level overview of what it does.\n\n",
		"This is a more complex piece of code, so let's focus on the key aspects and functionality.\n\n",
	}))
	b.WriteString(g.pick([]string{
		"It appears to be a JavaScript program that ",
		"This code seems to be designed to ",
		"The main purpose of this code is to ",
	}))
	var purposes []string
	if has("fetch") || has("axios") {
		purposes = append(purposes, "makes API requests to fetch or send data", "communicates with external services or APIs")
	}
	if has("addEventListener") {
		purposes = append(purposes, "handles user interactions through event listeners", "responds to user actions and events")
	}
	if has("document.querySelector") || has("getElementById") {
		purposes = append(purposes, "manipulates the DOM to update the user interface", "modifies HTML elements dynamically")
	}
	if len(purposes) == 0 {
		b.WriteString("performs various operations and calculations")
	} else {
		b.WriteString(strings.Join(sample(g, purposes, g.between(1, 2)), " and "))
	}
	b.WriteString(".")
	b.WriteString(g.pick([]string{
		"\n\nThe code is structured with functions to organize logic and improve maintainability.",
		"\n\nThe implementation uses a modular approach to separate concerns and manage complexity.",
		"\n\nThis code follows common JavaScript patterns to achieve its functionality efficiently.",
		"\n\nThe structure demonstrates good practices in organizing related functionality.",
	}) + "\n\n")
}

func (g *Generator) explainPython(b *strings.Builder, code string) {
	has := func(s string) bool { return strings.Contains(code, s) }

	b.WriteString(g.pick([]string{
		"This Python code implements functionality for processing data and performing operations.\n\n",
		"The code is written in Python and appears to handle various programming tasks.\n\n",
		"This is a Python program that contains logic for manipulating data and controlling program flow.\n\n",
		"The Python code shown here demonstrates various programming concepts and techniques.\n\n",
		"This code snippet contains Python logic that performs specific operations.\n\n",
	}))

	var patterns []string
	if has("def ") {
		patterns = append(patterns,
			"The code defines Python function(s) that encapsulate specific tasks for better organization.\n",
			"Functions are used to group related operations and enable code reuse.\n",
			"The code uses functions to break down complex tasks into smaller, manageable pieces.\n",
		)
	}
	if has("class ") {
		patterns = append(patterns,
			"The code creates classes to organize related data and functions in an object-oriented approach.\n",
			"Classes are used to define custom data types with their own attributes and methods.\n",
		)
	}
	if has("import ") {
		patterns = append(patterns,
			"External libraries are imported to leverage existing functionality and extend the code's capabilities.\n",
			"Dependencies are managed through import statements to utilize external functionality.\n",
		)
	}
	if has("if ") || has("else") {
		patterns = append(patterns,
			"Conditional statements are used to create different execution paths based on specific conditions.\n",
			"The code makes decisions using if/else statements to control the flow of execution.\n",
		)
	}
	if has("for ") || has("while ") {
		patterns = append(patterns,
			"Loops are utilized to repeat actions multiple times, improving code efficiency.\n",
			"The code uses "+when(has("for "), "for", "while")+" loops to iterate over data or repeat operations.\n",
		)
	}
	g.writeKeyComponents(b, patterns)
}

// writeKeyComponents writes two or three of patterns under a heading.
func (g *Generator) writeKeyComponents(b *strings.Builder, patterns []string) {
	if len(patterns) == 0 {
		return
	}
	b.WriteString("## Key Components\n\n")
	for _, p := range sample(g, patterns, g.between(2, 3)) {
		b.WriteString(p)
	}
	b.WriteString("\n")
}
