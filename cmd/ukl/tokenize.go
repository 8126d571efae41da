package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ukl/internal/diag"
	"ukl/internal/diagfmt"
	"ukl/internal/driver"
	"ukl/internal/source"
	"ukl/internal/token"
	"ukl/internal/version"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] [file.ukl|directory]",
	Short: "Tokenize an unknown-lang source file or directory",
	Long: `Tokenize breaks an unknown-lang source file (or every *.ukl file in a
directory) into tokens. Without an argument the [run].main entry of ukl.toml is
used. The exit status is 1 when a lexical error is reported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().Bool("raw", false, "keep comments in the token stream")
	tokenizeCmd.Flags().Bool("keep-going", false, "continue scanning after a lexical error")
	tokenizeCmd.Flags().String("format", "pretty", "token output format (pretty|json|msgpack)")
	tokenizeCmd.Flags().String("diag-format", "pretty", "diagnostics format (pretty|json|sarif|short)")
	tokenizeCmd.Flags().String("ui", "auto", "directory progress UI (auto|on|off)")
	tokenizeCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	tokenizeCmd.Flags().Bool("cache", false, "reuse cached tokens of unchanged files")
	tokenizeCmd.Flags().Bool("clear-cache", false, "drop all cached tokens before tokenizing")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 1 {
		target = args[0]
	}
	return tokenizeTarget(cmd, target)
}

// tokenizeOutput - формат вывода, общий для файла и директории.
type tokenizeOutput struct {
	format     string
	diagFormat string
}

func readTokenizeOutput(cmd *cobra.Command) (tokenizeOutput, error) {
	out := tokenizeOutput{format: "pretty", diagFormat: "pretty"}
	var err error
	if cmd.Flags().Lookup("format") != nil {
		if out.format, err = cmd.Flags().GetString("format"); err != nil {
			return out, fmt.Errorf("failed to get format flag: %w", err)
		}
	}
	if cmd.Flags().Lookup("diag-format") != nil {
		if out.diagFormat, err = cmd.Flags().GetString("diag-format"); err != nil {
			return out, fmt.Errorf("failed to get diag-format flag: %w", err)
		}
	}
	switch out.format {
	case "pretty", "json", "msgpack":
	default:
		return out, fmt.Errorf("unknown format: %s", out.format)
	}
	switch out.diagFormat {
	case "pretty", "json", "sarif", "short":
	default:
		return out, fmt.Errorf("unknown diagnostics format: %s", out.diagFormat)
	}
	return out, nil
}

// tokenizeTarget обслуживает и `ukl tokenize`, и `ukl -f FILE`.
func tokenizeTarget(cmd *cobra.Command, target string) error {
	global, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}
	lf, err := readLexFlags(cmd)
	if err != nil {
		return err
	}
	output, err := readTokenizeOutput(cmd)
	if err != nil {
		return err
	}
	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	if target == "" {
		if target, err = resolveRunTarget(manifest); err != nil {
			return err
		}
	}
	opts, err := buildDriverOptions(cmd, global, lf, manifest)
	if err != nil {
		return err
	}
	defer printTimings(cmd.ErrOrStderr(), opts.Timer)

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if st.IsDir() {
		return tokenizeDirectory(cmd, target, global, output, opts)
	}
	return tokenizeSingle(cmd, target, global, output, opts)
}

func tokenizeSingle(cmd *cobra.Command, path string, global globalOptions, output tokenizeOutput, opts driver.Options) error {
	out := cmd.OutOrStdout()
	if !global.quiet {
		printBanner(out, path)
	}

	result, err := driver.Tokenize(cmd.Context(), path, opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	if err := writeTokens(out, output.format, result.Tokens, result.FileSet); err != nil {
		return err
	}
	if err := writeDiagnostics(cmd, result.Bag, result.FileSet, global, output.diagFormat, opts.MaxDiagnostics); err != nil {
		return err
	}
	if result.Failed() {
		return errReported
	}
	return nil
}

func tokenizeDirectory(cmd *cobra.Command, dir string, global globalOptions, output tokenizeOutput, opts driver.Options) error {
	// корневая команда (-f DIR) этих флагов не объявляет
	jobs, uiFlag := 0, "auto"
	var err error
	if cmd.Flags().Lookup("jobs") != nil {
		if jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if cmd.Flags().Lookup("ui") != nil {
		if uiFlag, err = cmd.Flags().GetString("ui"); err != nil {
			return fmt.Errorf("failed to get ui flag: %w", err)
		}
	}
	uiMode, err := parseSwitch("ui", uiFlag)
	if err != nil {
		return err
	}

	var (
		fileSet *source.FileSet
		results []driver.TokenizeDirResult
	)
	// TUI рисует в stdout, поэтому токены в этом режиме не печатаются
	useUI := uiMode.enabled(isTerminal(os.Stdout)) && !global.quiet
	if useUI {
		files, listErr := driver.ListSourceFiles(dir)
		if listErr != nil {
			return fmt.Errorf("failed to list %s: %w", dir, listErr)
		}
		fileSet, results, err = runTokenizeDirWithUI(cmd.Context(), "tokenize "+dir, files, dir, opts, jobs)
	} else {
		fileSet, results, err = driver.TokenizeDir(cmd.Context(), dir, opts, jobs, nil)
	}
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	out := cmd.OutOrStdout()
	merged := diag.NewBag(opts.MaxDiagnostics)
	failed := 0
	for _, res := range results {
		if res.Bag != nil {
			merged.Merge(res.Bag)
		}
		if res.LexErr != nil {
			failed++
		}
		if useUI {
			continue
		}
		if !global.quiet {
			printBanner(out, res.Path)
		}
		if err := writeTokens(out, output.format, res.Tokens, fileSet); err != nil {
			return err
		}
	}

	merged.Sort()
	merged.Dedup()
	if err := writeDiagnostics(cmd, merged, fileSet, global, output.diagFormat, opts.MaxDiagnostics); err != nil {
		return err
	}
	if !global.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d files, %d failed\n", len(results), failed)
	}
	if failed > 0 {
		return errReported
	}
	return nil
}

var bannerColor = color.New(color.FgGreen, color.Bold)

// printBanner печатает строку "> Compiling file: <path>".
func printBanner(out io.Writer, path string) {
	fmt.Fprintf(out, "%s %s\n", bannerColor.Sprint("> Compiling file:"), path)
}

func writeTokens(out io.Writer, format string, tokens []source.Spanned[token.Token], fs *source.FileSet) error {
	switch format {
	case "json":
		return diagfmt.FormatTokensJSON(out, tokens, fs)
	case "msgpack":
		return diagfmt.FormatTokensMsgpack(out, tokens, fs)
	default:
		return diagfmt.FormatTokensPretty(out, tokens, fs)
	}
}

// writeDiagnostics печатает bag в stderr; limit - действующий предел
// (флаг или манифест), а не только значение --max-diagnostics.
func writeDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, global globalOptions, format string, limit int) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	errOut := cmd.ErrOrStderr()
	switch format {
	case "json":
		return diagfmt.JSON(errOut, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			Max:              limit,
		})
	case "sarif":
		return diagfmt.Sarif(errOut, bag, fs, diagfmt.SarifRunMeta{
			ToolName:       "ukl",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		})
	case "short":
		_, err := fmt.Fprintln(errOut, diag.FormatShortDiagnostics(bag.Items(), fs, true))
		return err
	default:
		diagfmt.Pretty(errOut, bag, fs, diagfmt.PrettyOpts{
			Color:     global.colorFor(errOut),
			Context:   2,
			ShowNotes: true,
		})
		return nil
	}
}
