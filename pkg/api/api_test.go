package api_test

import (
	"testing"

	"github.com/lucab/oxc/internal/test"
	"github.com/lucab/oxc/pkg/api"
)

func checkJS(t *testing.T, input string, options api.ParseOptions, expected string) {
	t.Helper()
	t.Run(input, func(t *testing.T) {
		t.Helper()
		result := api.Parse(input, options)
		test.AssertEqual(t, len(result.Errors), 0)
		test.AssertEqual(t, len(result.Warnings), 0)
		test.AssertEqualWithDiff(t, string(result.JS), expected)
	})
}

func TestParseJS(t *testing.T) {
	checkJS(t, "let x = 1", api.ParseOptions{}, "let x = 1;\n")
	checkJS(t, "x = {a: 1}", api.ParseOptions{}, "x = { a: 1 };\n")
	checkJS(t, "for (let x of y) z()", api.ParseOptions{}, "for (let x of y)\n  z();\n")
	checkJS(t, "x = (a)", api.ParseOptions{}, "x = a;\n")
	checkJS(t, "x = (a)", api.ParseOptions{PreserveParens: true}, "x = (a);\n")
}

func TestParseTS(t *testing.T) {
	checkJS(t, "let x: number = 1", api.ParseOptions{TS: true}, "let x = 1;\n")
	checkJS(t, "x = y as const", api.ParseOptions{TS: true}, "x = y;\n")
	checkJS(t, "x = y!", api.ParseOptions{TS: true}, "x = y;\n")

	t.Run("declare emits nothing", func(t *testing.T) {
		result := api.Parse("declare const x: number", api.ParseOptions{TS: true})
		test.AssertEqual(t, len(result.Errors), 0)
		test.AssertEqualWithDiff(t, string(result.JS), "")
	})
}

func TestParseMinifyWhitespace(t *testing.T) {
	checkJS(t, "let x = 1", api.ParseOptions{MinifyWhitespace: true}, "let x=1")
	checkJS(t, "if (a) b(); else c()", api.ParseOptions{MinifyWhitespace: true}, "if(a)b();else c()")
}

func TestParseError(t *testing.T) {
	result := api.Parse("const x", api.ParseOptions{})
	test.AssertEqual(t, len(result.Errors), 1)
	test.AssertEqual(t, len(result.Warnings), 0)
	test.AssertEqual(t, result.Errors[0].Text, "The constant \"x\" must be initialized")

	location := result.Errors[0].Location
	if location == nil {
		t.Fatal("Expected a location")
	}
	test.AssertEqual(t, *location, api.Location{
		File:     "<stdin>",
		Line:     1,
		Column:   6,
		Length:   1,
		LineText: "const x",
	})

	// No output is generated when the input has syntax errors
	test.AssertEqual(t, len(result.JS), 0)
}

func TestParseWarning(t *testing.T) {
	result := api.Parse("!x in y", api.ParseOptions{})
	test.AssertEqual(t, len(result.Errors), 0)
	test.AssertEqual(t, len(result.Warnings), 1)
	test.AssertEqual(t, result.Warnings[0].Text,
		"Suspicious use of the \"!\" operator inside the \"in\" operator")

	location := result.Warnings[0].Location
	if location == nil {
		t.Fatal("Expected a location")
	}
	test.AssertEqual(t, location.Line, 1)
	test.AssertEqual(t, location.Column, 0)
	test.AssertEqual(t, location.Length, 2)

	// Warnings don't block output
	test.AssertEqualWithDiff(t, string(result.JS), "!x in y;\n")
}

func TestParseSourcefile(t *testing.T) {
	result := api.Parse("const x", api.ParseOptions{Sourcefile: "in.js"})
	test.AssertEqual(t, len(result.Errors), 1)
	if result.Errors[0].Location == nil {
		t.Fatal("Expected a location")
	}
	test.AssertEqual(t, result.Errors[0].Location.File, "in.js")
}

func TestParseJSONOutline(t *testing.T) {
	result := api.Parse("x", api.ParseOptions{Format: api.FormatJSON})
	test.AssertEqual(t, len(result.Errors), 0)
	test.AssertEqualWithDiff(t, string(result.JS), `[
  {
    "kind": "SExpr",
    "start": 0,
    "end": 1,
    "children": [
      {
        "kind": "EIdentifier",
        "start": 0,
        "end": 1
      }
    ]
  }
]
`)
}

func TestFormatMessages(t *testing.T) {
	formatted := api.FormatMessages([]api.Message{
		{Text: "boom"},
	}, api.FormatMessagesOptions{Kind: api.ErrorMessage})
	test.AssertEqual(t, len(formatted), 1)
	test.AssertEqualWithDiff(t, formatted[0], "error: boom\n")

	formatted = api.FormatMessages([]api.Message{
		{Text: "boom"},
	}, api.FormatMessagesOptions{Kind: api.WarningMessage})
	test.AssertEqual(t, len(formatted), 1)
	test.AssertEqualWithDiff(t, formatted[0], "warning: boom\n")
}

func TestFormatMessagesLocation(t *testing.T) {
	formatted := api.FormatMessages([]api.Message{
		{Text: "boom", Location: &api.Location{
			File:     "file.js",
			Line:     1,
			Column:   4,
			Length:   1,
			LineText: "let x = 1",
		}},
	}, api.FormatMessagesOptions{Kind: api.ErrorMessage})
	test.AssertEqual(t, len(formatted), 1)
	test.AssertEqualWithDiff(t, formatted[0], "file.js:1:4: error: boom\nlet x = 1\n    ^\n")
}
