package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lucab/oxc/internal/logger"
	"github.com/lucab/oxc/pkg/api"
)

const version = "0.1.0"

var colorMode string
var errorLimit int

func main() {
	rootCmd := &cobra.Command{
		Use:           "oxc",
		Short:         "A JavaScript and TypeScript syntax toolkit",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "color diagnostics (auto, always, never)")
	rootCmd.PersistentFlags().IntVar(&errorLimit, "error-limit", 10, "maximum errors to print (0 for no limit)")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		logger.PrintErrorToStderr(err.Error())
		os.Exit(1)
	}
}

// stderrLog builds the log that CLI diagnostics stream into. Messages print
// as they are added and a summary line comes out on Done.
func stderrLog() logger.Log {
	options := logger.StderrOptions{
		IncludeSource: true,
		ErrorLimit:    errorLimit,
	}
	switch colorMode {
	case "always":
		options.Color = logger.ColorAlways
	case "never":
		options.Color = logger.ColorNever
	}
	return logger.NewStderrLog(options)
}

// addMessages streams a parse result's diagnostics into a log, errors first.
func addMessages(log logger.Log, result api.ParseResult) {
	for _, message := range result.Errors {
		log.AddMsg(msgOfMessage(logger.Error, message))
	}
	for _, message := range result.Warnings {
		log.AddMsg(msgOfMessage(logger.Warning, message))
	}
}

func msgOfMessage(kind logger.MsgKind, message api.Message) logger.Msg {
	msg := logger.Msg{Kind: kind, Text: message.Text}
	if message.Location != nil {
		msg.Location = &logger.MsgLocation{
			File:     message.Location.File,
			Line:     message.Location.Line,
			Column:   message.Location.Column,
			Length:   message.Location.Length,
			LineText: message.Location.LineText,
		}
	}
	return msg
}

func isTypeScriptPath(path string) bool {
	switch filepath.Ext(path) {
	case ".ts", ".mts", ".cts":
		return true
	}
	return false
}

func isScriptPath(path string) bool {
	switch filepath.Ext(path) {
	case ".js", ".mjs", ".cjs", ".ts", ".mts", ".cts":
		return true
	}
	return false
}
