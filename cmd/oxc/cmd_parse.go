package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lucab/oxc/pkg/api"
)

func newParseCmd() *cobra.Command {
	var ts bool
	var preserveParens bool
	var format string
	var minifyWhitespace bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a file and print its syntax tree back out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			var outputFormat api.Format
			switch format {
			case "js":
				outputFormat = api.FormatJS
			case "json":
				outputFormat = api.FormatJSON
			default:
				return fmt.Errorf("unknown format: %s (expected js or json)", format)
			}

			contents, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read %s: %w", filename, err)
			}

			result := api.Parse(string(contents), api.ParseOptions{
				Sourcefile:       filename,
				TS:               ts || isTypeScriptPath(filename),
				PreserveParens:   preserveParens,
				Format:           outputFormat,
				MinifyWhitespace: minifyWhitespace,
			})

			log := stderrLog()
			addMessages(log, result)
			log.Done()

			if len(result.Errors) > 0 {
				os.Exit(1)
			}

			os.Stdout.Write(result.JS)
			return nil
		},
	}

	cmd.Flags().BoolVar(&ts, "ts", false, "parse as TypeScript regardless of extension")
	cmd.Flags().BoolVar(&preserveParens, "preserve-parens", false, "keep parenthesized expressions as nodes")
	cmd.Flags().StringVarP(&format, "format", "f", "js", "output format (js, json)")
	cmd.Flags().BoolVar(&minifyWhitespace, "minify-whitespace", false, "print without whitespace")

	return cmd
}
