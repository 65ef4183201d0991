package logger_test

import (
	"strings"
	"testing"

	"github.com/lucab/oxc/internal/logger"
	"github.com/lucab/oxc/internal/test"
)

func TestMsgString(t *testing.T) {
	opts := logger.StderrOptions{}
	term := logger.TerminalInfo{}

	msg := logger.Msg{Kind: logger.Error, Text: "boom"}
	test.AssertEqual(t, msg.String(opts, term), "error: boom\n")

	msg.Kind = logger.Warning
	test.AssertEqual(t, msg.String(opts, term), "warning: boom\n")

	msg = logger.Msg{Kind: logger.Error, Text: "boom", Location: &logger.MsgLocation{
		File:     "file.js",
		Line:     1,
		Column:   4,
		LineText: "let x = 1",
	}}
	test.AssertEqual(t, msg.String(opts, term), "file.js: error: boom\n")

	withSource := logger.StderrOptions{IncludeSource: true}
	test.AssertEqualWithDiff(t, msg.String(withSource, term),
		"file.js:1:4: error: boom\nlet x = 1\n    ^\n")
}

func TestMsgStringMarker(t *testing.T) {
	withSource := logger.StderrOptions{IncludeSource: true}
	term := logger.TerminalInfo{}

	// A non-zero length widens the marker to cover the range
	msg := logger.Msg{Kind: logger.Error, Text: "boom", Location: &logger.MsgLocation{
		File:     "file.js",
		Line:     1,
		Column:   0,
		Length:   3,
		LineText: "let x = 1",
	}}
	test.AssertEqualWithDiff(t, msg.String(withSource, term),
		"file.js:1:0: error: boom\nlet x = 1\n~~~\n")

	// Tabs render as two-column tab stops but the column stays in bytes
	msg.Location = &logger.MsgLocation{
		File:     "file.js",
		Line:     1,
		Column:   1,
		Length:   1,
		LineText: "\tx = 1",
	}
	test.AssertEqualWithDiff(t, msg.String(withSource, term),
		"file.js:1:1: error: boom\n  x = 1\n  ^\n")

	// A marker at the end of the line points one column past the end
	msg.Location = &logger.MsgLocation{
		File:     "file.js",
		Line:     1,
		Column:   9,
		LineText: "let x = 1",
	}
	test.AssertEqualWithDiff(t, msg.String(withSource, term),
		"file.js:1:9: error: boom\nlet x = 1\n         ^\n")

	// Only the first line is highlighted, and the range is clipped to it
	msg.Location = &logger.MsgLocation{
		File:     "file.js",
		Line:     1,
		Column:   2,
		Length:   10,
		LineText: "abcd\nefgh",
	}
	test.AssertEqualWithDiff(t, msg.String(withSource, term),
		"file.js:1:2: error: boom\nabcd\n  ~~\nefgh\n")

	// Long lines are trimmed to the terminal width
	msg.Location = &logger.MsgLocation{
		File:     "file.js",
		Line:     1,
		Column:   0,
		LineText: strings.Repeat("x", 100),
	}
	test.AssertEqualWithDiff(t, msg.String(withSource, term),
		"file.js:1:0: error: boom\n"+strings.Repeat("x", 77)+"...\n^\n")
}

func TestDeferLog(t *testing.T) {
	log := logger.NewDeferLog()
	test.AssertEqual(t, log.HasErrors(), false)

	a := logger.Source{PrettyPath: "a.js", Contents: "abc\ndef"}
	b := logger.Source{PrettyPath: "b.js", Contents: "xyz"}
	log.AddWarning(&b, logger.Loc{}, "fourth")
	log.AddError(&a, logger.Loc{Start: 4}, "third")
	log.AddError(&a, logger.Loc{}, "second")
	log.AddMsg(logger.Msg{Kind: logger.Warning, Text: "first"})
	test.AssertEqual(t, log.HasErrors(), true)

	// Messages come back sorted by file and position, not insertion order
	msgs := log.Done()
	test.AssertEqual(t, len(msgs), 4)
	test.AssertEqual(t, msgs[0].Text, "first")
	test.AssertEqual(t, msgs[1].Text, "second")
	test.AssertEqual(t, msgs[2].Text, "third")
	test.AssertEqual(t, msgs[3].Text, "fourth")
}

func TestHasErrors(t *testing.T) {
	source := logger.Source{PrettyPath: "file.js", Contents: "xyz"}

	log := logger.NewDeferLog()
	log.AddWarning(&source, logger.Loc{}, "careful")
	test.AssertEqual(t, log.HasErrors(), false)

	log.AddError(&source, logger.Loc{}, "broken")
	test.AssertEqual(t, log.HasErrors(), true)
}

func TestLocationOfOffset(t *testing.T) {
	source := logger.Source{Contents: "a\r\nb\nc\u2028d"}

	check := func(offset int, expectedLine int, expectedColumn int) {
		t.Helper()
		line, column := source.LocationOfOffset(offset)
		test.AssertEqual(t, line, expectedLine)
		test.AssertEqual(t, column, expectedColumn)
	}

	check(0, 1, 0)
	check(1, 1, 1)
	check(3, 2, 0)
	check(5, 3, 0)
	check(9, 4, 0)
}

func TestRangeOfString(t *testing.T) {
	source := logger.Source{Contents: "let x = 'abc'"}
	r := source.RangeOfString(logger.Loc{Start: 8})
	test.AssertEqual(t, r.Loc.Start, int32(8))
	test.AssertEqual(t, r.Len, int32(5))
	test.AssertEqual(t, source.TextForRange(r), "'abc'")

	// A backslash skips the next character
	source = logger.Source{Contents: "'a\\'b'"}
	test.AssertEqual(t, source.RangeOfString(logger.Loc{}).Len, int32(6))

	// Unterminated strings and non-strings have no range
	source = logger.Source{Contents: "'abc"}
	test.AssertEqual(t, source.RangeOfString(logger.Loc{}).Len, int32(0))
	source = logger.Source{Contents: "abc"}
	test.AssertEqual(t, source.RangeOfString(logger.Loc{}).Len, int32(0))
}

func TestRangeOfNumber(t *testing.T) {
	source := logger.Source{Contents: "x = 123n;"}
	r := source.RangeOfNumber(logger.Loc{Start: 4})
	test.AssertEqual(t, r.Loc.Start, int32(4))
	test.AssertEqual(t, r.Len, int32(4))
	test.AssertEqual(t, source.TextForRange(r), "123n")

	source = logger.Source{Contents: "1.5e10 + 2"}
	test.AssertEqual(t, source.RangeOfNumber(logger.Loc{}).Len, int32(6))

	// Must start with a digit
	source = logger.Source{Contents: ".5"}
	test.AssertEqual(t, source.RangeOfNumber(logger.Loc{}).Len, int32(0))
}

func TestRangeOfOperator(t *testing.T) {
	source := logger.Source{Contents: "a == b"}

	r := source.RangeOfOperatorBefore(logger.Loc{Start: 5}, "==")
	test.AssertEqual(t, r.Loc.Start, int32(2))
	test.AssertEqual(t, r.Len, int32(2))

	r = source.RangeOfOperatorAfter(logger.Loc{Start: 1}, "==")
	test.AssertEqual(t, r.Loc.Start, int32(2))
	test.AssertEqual(t, r.Len, int32(2))

	// Falls back to a point range at the given location when not found
	r = source.RangeOfOperatorBefore(logger.Loc{Start: 1}, "**")
	test.AssertEqual(t, r.Loc.Start, int32(1))
	test.AssertEqual(t, r.Len, int32(0))
}
