package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"ukl/internal/diagfmt"
	"ukl/internal/driver"
	"ukl/internal/token"
)

const (
	replPrompt     = "ukl> "
	replSourceName = "<repl>"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Tokenize lines interactively",
	Long: `Repl reads source lines and prints their tokens. Commands:
  :raw   toggle comments in the output
  :help  show this help
  :quit  leave the REPL (also Ctrl-D)`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	replCmd.Flags().Bool("raw", false, "start with comments visible")
}

// lineReader отдаёт по одной строке; io.EOF означает конец ввода.
type lineReader interface {
	ReadLine() (string, error)
	Close() error
}

// directReader читает из произвольного потока (pipe, файл, тесты).
type directReader struct {
	r *bufio.Reader
}

func newDirectReader(r io.Reader) *directReader {
	return &directReader{r: bufio.NewReader(r)}
}

func (d *directReader) ReadLine() (string, error) {
	line, err := d.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (d *directReader) Close() error { return nil }

// interactiveReader даёт редактирование строки и историю на tty.
type interactiveReader struct {
	rl *readline.Instance
}

func newInteractiveReader() (*interactiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		InterruptPrompt: "^C",
		EOFPrompt:       ":quit",
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}
	return &interactiveReader{rl: rl}, nil
}

func (i *interactiveReader) ReadLine() (string, error) {
	for {
		line, err := i.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			// Ctrl-C сбрасывает строку, но не выходит
			continue
		}
		return line, err
	}
}

func (i *interactiveReader) Close() error { return i.rl.Close() }

type replSession struct {
	out    io.Writer
	errOut io.Writer
	opts   driver.Options
	color  bool
	// prompt печатается перед каждой строкой, когда readline этого не делает.
	prompt string
}

func runREPL(cmd *cobra.Command, _ []string) error {
	global, err := readGlobalOptions(cmd)
	if err != nil {
		return err
	}
	lf, err := readLexFlags(cmd)
	if err != nil {
		return err
	}
	manifest, _, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	opts, err := buildDriverOptions(cmd, global, lf, manifest)
	if err != nil {
		return err
	}
	// ошибка в строке не должна прятать остальные токены
	opts.KeepGoing = true
	opts.Cache = nil

	session := &replSession{
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
		opts:   opts,
		color:  global.colorFor(cmd.ErrOrStderr()),
	}

	var reader lineReader
	if isTerminal(os.Stdin) && isTerminal(os.Stdout) {
		ir, err := newInteractiveReader()
		if err != nil {
			return err
		}
		reader = ir
	} else {
		reader = newDirectReader(cmd.InOrStdin())
	}
	defer reader.Close()

	if !global.quiet {
		fmt.Fprintln(session.out, "ukl repl, :help for commands, :quit to exit")
	}
	return session.run(cmd.Context(), reader)
}

// run читает строки до :quit или EOF.
func (s *replSession) run(ctx context.Context, r lineReader) error {
	if ctx == nil {
		ctx = context.Background()
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.prompt != "" {
			fmt.Fprint(s.out, s.prompt)
		}
		line, err := r.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}
		quit, err := s.eval(ctx, line)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// eval обрабатывает одну строку; true означает выход.
func (s *replSession) eval(ctx context.Context, line string) (bool, error) {
	switch strings.TrimSpace(line) {
	case "":
		return false, nil
	case ":quit", ":q", ":exit":
		return true, nil
	case ":help":
		fmt.Fprintln(s.out, ":raw toggles comments, :quit exits; anything else is tokenized")
		return false, nil
	case ":raw":
		s.opts.Raw = !s.opts.Raw
		fmt.Fprintf(s.out, "comments %s\n", onOff(s.opts.Raw))
		return false, nil
	}

	res, err := driver.TokenizeSource(ctx, replSourceName, []byte(line), s.opts)
	if err != nil {
		return false, err
	}
	tokens := res.Tokens
	if n := len(tokens); n > 0 && tokens[n-1].Value.Kind == token.EOF {
		tokens = tokens[:n-1]
	}
	if err := diagfmt.FormatTokensPretty(s.out, tokens, res.FileSet); err != nil {
		return false, err
	}
	if res.Bag.Len() > 0 {
		diagfmt.Pretty(s.errOut, res.Bag, res.FileSet, diagfmt.PrettyOpts{Color: s.color, ShowNotes: true})
	}
	return false, nil
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
