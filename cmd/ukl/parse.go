package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ukl/internal/driver"
	"ukl/internal/source"
	"ukl/internal/token"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.ukl",
	Short: "Drain a source file through the parser",
	Long: `Parse feeds the meaningful token stream of a file to the parser and
reports how many tokens it consumed. The first lexical error is fatal.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().Bool("tokens", false, "print every consumed token")
	parseCmd.Flags().String("diag-format", "pretty", "diagnostics format (pretty|json|sarif|short)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	global, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}
	showTokens, err := cmd.Flags().GetBool("tokens")
	if err != nil {
		return fmt.Errorf("failed to get tokens flag: %w", err)
	}
	output, err := readTokenizeOutput(cmd)
	if err != nil {
		return err
	}
	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	opts, err := buildDriverOptions(cmd, global, lexFlags{}, manifest)
	if err != nil {
		return err
	}
	defer printTimings(cmd.ErrOrStderr(), opts.Timer)

	out := cmd.OutOrStdout()
	if !global.quiet {
		printBanner(out, filePath)
	}

	var onToken func(source.Spanned[token.Token])
	if showTokens {
		onToken = func(tok source.Spanned[token.Token]) {
			fmt.Fprintf(out, "%s %s\n", tok.Span, tok.Value)
		}
	}

	result, err := driver.Parse(cmd.Context(), filePath, opts, onToken)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if err := writeDiagnostics(cmd, result.Bag, result.FileSet, global, output.diagFormat, opts.MaxDiagnostics); err != nil {
		return err
	}
	if result.Err != nil {
		if result.Bag.Len() == 0 {
			// отмена контекста: диагностики нет, показываем ошибку как есть
			return result.Err
		}
		return errReported
	}
	fmt.Fprintf(out, "parsed %d tokens\n", result.Count)
	return nil
}
