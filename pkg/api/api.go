package api

type Location struct {
	File     string
	Line     int // 1-based
	Column   int // 0-based, in bytes
	Length   int // in bytes
	LineText string
}

type Message struct {
	Text     string
	Location *Location
}

type MessageKind uint8

const (
	ErrorMessage MessageKind = iota
	WarningMessage
)

type Format uint8

const (
	// Print the syntax tree back out as JavaScript
	FormatJS Format = iota

	// Print a JSON outline of node kinds and source spans
	FormatJSON
)

////////////////////////////////////////////////////////////////////////////////
// Parse API

type ParseOptions struct {
	// The file name reported in message locations. Defaults to "<stdin>".
	Sourcefile string

	// Parse TypeScript type annotations instead of treating them as errors
	TS bool

	// Treat the whole file as an ambient TypeScript declaration file
	AmbientContext bool

	// Represent parentheses explicitly in the syntax tree
	PreserveParens bool

	Format           Format
	MinifyWhitespace bool
}

type ParseResult struct {
	Errors   []Message
	Warnings []Message

	// The printed output, or nil if there were syntax errors
	JS []byte
}

func Parse(input string, options ParseOptions) ParseResult {
	return parseImpl(input, options)
}

////////////////////////////////////////////////////////////////////////////////
// FormatMessages API

type FormatMessagesOptions struct {
	Kind          MessageKind
	Color         bool
	TerminalWidth int
}

func FormatMessages(msgs []Message, options FormatMessagesOptions) []string {
	return formatMessagesImpl(msgs, options)
}
