package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/lucab/oxc/pkg/api"
)

// diagnosticsForResult converts parse messages into LSP diagnostics. The
// result is never nil so that publishing it clears stale diagnostics.
func diagnosticsForResult(result api.ParseResult) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	for _, msg := range result.Errors {
		diagnostics = append(diagnostics, diagnosticFromMessage(msg, protocol.DiagnosticSeverityError))
	}
	for _, msg := range result.Warnings {
		diagnostics = append(diagnostics, diagnosticFromMessage(msg, protocol.DiagnosticSeverityWarning))
	}
	return diagnostics
}

func diagnosticFromMessage(msg api.Message, severity protocol.DiagnosticSeverity) protocol.Diagnostic {
	source := lsName
	diagnostic := protocol.Diagnostic{
		Severity: &severity,
		Source:   &source,
		Message:  msg.Text,
	}
	if msg.Location != nil {
		diagnostic.Range = rangeFromLocation(*msg.Location)
	}
	return diagnostic
}

// rangeFromLocation maps a byte-oriented source location onto the UTF-16
// code unit offsets that LSP positions count. The range never extends past
// the first line of the location's text.
func rangeFromLocation(loc api.Location) protocol.Range {
	endOfFirstLine := len(loc.LineText)
	for i, c := range loc.LineText {
		if c == '\r' || c == '\n' || c == '\u2028' || c == '\u2029' {
			endOfFirstLine = i
			break
		}
	}

	column := loc.Column
	if column < 0 {
		column = 0
	}
	if column > endOfFirstLine {
		column = endOfFirstLine
	}
	length := loc.Length
	if length < 0 {
		length = 0
	}
	if length > endOfFirstLine-column {
		length = endOfFirstLine - column
	}

	line := 0
	if loc.Line > 0 {
		line = loc.Line - 1
	}

	return protocol.Range{
		Start: protocol.Position{
			Line:      protocol.UInteger(line),
			Character: protocol.UInteger(utf16Length(loc.LineText[:column])),
		},
		End: protocol.Position{
			Line:      protocol.UInteger(line),
			Character: protocol.UInteger(utf16Length(loc.LineText[:column+length])),
		},
	}
}

// utf16Length counts UTF-16 code units. Astral code points count twice.
func utf16Length(s string) int {
	n := 0
	for _, r := range s {
		n++
		if r > 0xFFFF {
			n++
		}
	}
	return n
}
