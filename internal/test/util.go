package test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lucab/oxc/internal/logger"
)

func AssertEqual(t *testing.T, observed interface{}, expected interface{}) {
	t.Helper()
	if observed != expected {
		t.Fatalf("%s != %s", observed, expected)
	}
}

func AssertEqualWithDiff(t *testing.T, observed interface{}, expected interface{}) {
	t.Helper()
	if observed != expected {
		stringObserved := fmt.Sprintf("%v", observed)
		stringExpected := fmt.Sprintf("%v", expected)
		if strings.Contains(stringObserved, "\n") || strings.Contains(stringExpected, "\n") {
			t.Fatal("\n" + Diff(stringExpected, stringObserved, logger.SupportsColorEscapes))
		} else {
			t.Fatalf("%s != %s", observed, expected)
		}
	}
}

func SourceForTest(contents string) logger.Source {
	return logger.Source{
		Index:          0,
		KeyPath:        logger.Path{Text: "<stdin>"},
		PrettyPath:     "<stdin>",
		IdentifierName: "stdin",
		Contents:       contents,
	}
}
