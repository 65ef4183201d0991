package lsp

import (
	"testing"

	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/lucab/oxc/pkg/api"
)

func TestDiagnosticsForError(t *testing.T) {
	result := api.Parse("const x", api.ParseOptions{Sourcefile: "in.js"})
	diagnostics := diagnosticsForResult(result)
	require.Len(t, diagnostics, 1)

	d := diagnostics[0]
	require.Equal(t, "The constant \"x\" must be initialized", d.Message)
	require.NotNil(t, d.Severity)
	require.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	require.NotNil(t, d.Source)
	require.Equal(t, "oxc-ls", *d.Source)
	require.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 0, Character: 6},
		End:   protocol.Position{Line: 0, Character: 7},
	}, d.Range)
}

func TestDiagnosticsForWarning(t *testing.T) {
	result := api.Parse("!x in y", api.ParseOptions{})
	diagnostics := diagnosticsForResult(result)
	require.Len(t, diagnostics, 1)

	d := diagnostics[0]
	require.NotNil(t, d.Severity)
	require.Equal(t, protocol.DiagnosticSeverityWarning, *d.Severity)
	require.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: 0, Character: 2},
	}, d.Range)
}

func TestDiagnosticsOrder(t *testing.T) {
	// Errors come before warnings
	result := api.Parse("!x in y; const z", api.ParseOptions{})
	diagnostics := diagnosticsForResult(result)
	require.Len(t, diagnostics, 2)
	require.Equal(t, protocol.DiagnosticSeverityError, *diagnostics[0].Severity)
	require.Equal(t, protocol.DiagnosticSeverityWarning, *diagnostics[1].Severity)
}

func TestDiagnosticsClean(t *testing.T) {
	result := api.Parse("let x = 1", api.ParseOptions{})
	diagnostics := diagnosticsForResult(result)
	require.NotNil(t, diagnostics)
	require.Empty(t, diagnostics)
}

func TestDiagnosticWithoutLocation(t *testing.T) {
	d := diagnosticFromMessage(api.Message{Text: "boom"}, protocol.DiagnosticSeverityError)
	require.Equal(t, "boom", d.Message)
	require.Equal(t, protocol.Range{}, d.Range)
}

func TestRangeFromLocation(t *testing.T) {
	// Tabs count as one UTF-16 unit, unlike in terminal output
	r := rangeFromLocation(api.Location{Line: 2, Column: 1, Length: 1, LineText: "\tx = 1"})
	require.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 1, Character: 1},
		End:   protocol.Position{Line: 1, Character: 2},
	}, r)

	// Astral code points count twice
	r = rangeFromLocation(api.Location{Line: 1, Column: 11, Length: 1, LineText: "q = \"\U0001F600\" + r"})
	require.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 0, Character: 9},
		End:   protocol.Position{Line: 0, Character: 10},
	}, r)

	// Ranges are clipped to the first line
	r = rangeFromLocation(api.Location{Line: 1, Column: 2, Length: 10, LineText: "abcd\nefgh"})
	require.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 0, Character: 2},
		End:   protocol.Position{Line: 0, Character: 4},
	}, r)

	require.Equal(t, protocol.Range{}, rangeFromLocation(api.Location{}))
}

func TestIsTypeScriptPath(t *testing.T) {
	require.True(t, isTypeScriptPath("file.ts"))
	require.True(t, isTypeScriptPath("file.mts"))
	require.True(t, isTypeScriptPath("file.cts"))
	require.False(t, isTypeScriptPath("file.js"))
	require.False(t, isTypeScriptPath("file.mjs"))
	require.False(t, isTypeScriptPath("file.cjs"))
	require.False(t, isTypeScriptPath("file.tsx"))
}

func TestURIToPath(t *testing.T) {
	path, err := uriToPath("file:///tmp/in.js")
	require.NoError(t, err)
	require.Equal(t, "/tmp/in.js", path)

	path, err = uriToPath("in.js")
	require.NoError(t, err)
	require.Equal(t, "in.js", path)
}
