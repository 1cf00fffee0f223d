package assistant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslate_SameLanguage(t *testing.T) {
	report := Translate("print(1)", "python", "python")

	assert.Equal(t, "# No translation needed (python to python)\n\n```python\nprint(1)\n```\n\n"+
		"## Translation Notes\n\nNo translation was performed as the source and target languages are the same.", report)
}

func TestTranslate_ReportFormat(t *testing.T) {
	report := Translate("console.log(1);", "javascript", "python")

	assert.True(t, strings.HasPrefix(report, "# Translated Code (javascript to python)\n\n```python\n"))
	assert.Contains(t, report, "## Translation Notes\n\n- Converted syntax from javascript to python\n")
}

func TestTranslateSource_PythonToJavaScript(t *testing.T) {
	code := "def greet(name):\n    message = \"Hi \" + name\n    print(message)\n\ngreet(\"Bob\")"

	got := translateSource(code, "python", "javascript")

	want := "function main() {\n" +
		"    function greet(name) {\n" +
		"        let message = \"Hi \" + name;\n" +
		"        console.log(message);\n" +
		"\n" +
		"    }\n" +
		"    greet(\"Bob\");\n" +
		"}\n\nmain();\n"
	assert.Equal(t, want, got)
}

func TestTranslateSource_JavaScriptToPython(t *testing.T) {
	code := "function add(a, b) {\n  return a + b;\n}\nconsole.log(add(1, 2));"

	got := translateSource(code, "javascript", "python")

	want := "def main():\n" +
		"    def add(a, b):\n" +
		"      return a + b\n" +
		"    print(add(1, 2))\n" +
		"\n\nif __name__ == \"__main__\":\n    main()\n"
	assert.Equal(t, want, got)
}

func TestTranslateSource_JavaScriptConditionals(t *testing.T) {
	code := "function main() {\n  if (a === b && c) {\n    x();\n  } else {\n    y();\n  }\n}"

	got := translateSource(code, "javascript", "python")

	assert.Contains(t, got, "def main():")
	assert.Contains(t, got, "if a == b and c:")
	assert.Contains(t, got, "else:")
	assert.NotContains(t, got, "}")
	assert.NotContains(t, got, ";")
}

func TestTranslateSource_PythonToCpp(t *testing.T) {
	got := translateSource("name = input()\nprint(name)", "python", "cpp")

	assert.True(t, strings.HasPrefix(got, "#include <iostream>\n#include <string>\n\nint main() {\n"))
	assert.Equal(t, 1, strings.Count(got, "#include <string>"))
	assert.Contains(t, got, "    std::cin >> name;\n")
	assert.Contains(t, got, "    std::cout << name << std::endl;\n")
	assert.True(t, strings.HasSuffix(got, "    return 0;\n}\n"))
}

func TestTranslateSource_ToJavaAddsImportAndClass(t *testing.T) {
	got := translateSource("name = input()", "python", "java")

	assert.True(t, strings.HasPrefix(got, "import java.util.Scanner;\npublic class Main {\n"))
	assert.Contains(t, got, "        String name = new Scanner(System.in).nextLine();\n")
}

func TestTranslateSource_ToCSharp(t *testing.T) {
	got := translateSource("console.log(\"hi\");", "javascript", "csharp")

	assert.Equal(t, 1, strings.Count(got, "using System;"))
	assert.Contains(t, got, "        Console.WriteLine(\"hi\");\n")
	assert.Contains(t, got, "static void Main() {")
}

func TestTranslateSource_KeepsControlFlowOutOfFunctionRule(t *testing.T) {
	code := "int main() {\n    if (x) {\n        return 1;\n    } else if (y) {\n        return 2;\n    }\n}"

	got := translateSource(code, "cpp", "java")

	assert.Contains(t, got, "} else if (y) {")
	assert.NotContains(t, got, "void if(")
}

func TestTranslateSource_UnknownLanguages(t *testing.T) {
	t.Run("unknown source scaffolds the target", func(t *testing.T) {
		got := translateSource("anything", "cobol", "python")
		assert.Equal(t, "def main():\n    print(\"Hello, world!\")\n\n\nif __name__ == \"__main__\":\n    main()\n", got)
	})

	t.Run("unknown target", func(t *testing.T) {
		got := translateSource("print(1)", "python", "rust")
		assert.Equal(t, "// Code could not be translated to rust\n// Please check the documentation for rust syntax", got)
	})
}

func TestCloseBlocks(t *testing.T) {
	code := "if (a) {\n    if (b) {\n        x;\n\n    y;\nz;"

	got := closeBlocks(code)

	assert.Equal(t, "if (a) {\n    if (b) {\n        x;\n\n    }\n    y;\n}\nz;", got)
}

func TestNeedsBoilerplate(t *testing.T) {
	assert.False(t, needsBoilerplate("function main() {}", "javascript"))
	assert.False(t, needsBoilerplate("def main():", "python"))
	assert.False(t, needsBoilerplate("class A { public static void main(String[] args) {} }", "java"))
	assert.False(t, needsBoilerplate("class P { static void Main() {} }", "csharp"))
	assert.False(t, needsBoilerplate("int main() {}", "cpp"))
	assert.True(t, needsBoilerplate("x = 1", "python"))
}
