package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ukl/internal/diag"
	"ukl/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		code:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
		note:   mk(color.FgCyan),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	sev := pal.severity(d.Severity)
	if !hasSource(fs, d.Primary) {
		// I/O ошибки и прочее без привязки к файлу
		fmt.Fprintf(w, "%s %s: %s\n", sev.Sprint(d.Severity), pal.code.Sprint(d.Code.ID()), d.Message)
		return
	}

	f := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		formatPath(f, opts.PathMode, fs.BaseDir()), start.Line, start.Col,
		sev.Sprint(d.Severity), pal.code.Sprint(d.Code.ID()), d.Message)

	lineCount := uint32(len(f.LineIdx)) + 1
	ctx := uint32(max(opts.Context, 0))
	first := start.Line - min(ctx, start.Line-1)
	last := min(start.Line+ctx, lineCount)
	gutterWidth := len(fmt.Sprint(last))

	for n := first; n <= last; n++ {
		text := expandTabs(f.GetLine(n))
		fmt.Fprintf(w, " %s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, n), text)
		if n != start.Line {
			continue
		}
		raw := f.GetLine(n)
		endCol := end.Col
		if end.Line != start.Line {
			endCol = uint32(len(raw)) + 1
		}
		pad, width := underline(raw, start.Col, endCol)
		marker := "^" + strings.Repeat("~", max(width-1, 0))
		fmt.Fprintf(w, " %s %s%s\n",
			pal.gutter.Sprintf("%*s |", gutterWidth, ""),
			strings.Repeat(" ", pad), pal.caret.Sprint(marker))
	}

	if opts.ShowNotes {
		for _, note := range d.Notes {
			if hasSource(fs, note.Span) {
				ns, _ := fs.Resolve(note.Span)
				fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"),
					formatPath(fs.Get(note.Span.File), opts.PathMode, fs.BaseDir()), ns.Line, ns.Col, note.Msg)
				continue
			}
			fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("note:"), note.Msg)
		}
	}
}

func hasSource(fs *source.FileSet, sp source.Span) bool {
	return fs != nil && sp.File != source.NoFileID && int(sp.File) < fs.Len()
}

// underline считает отступ и ширину подчёркивания в колонках терминала.
// startCol/endCol - 1-based байтовые колонки из source.LineCol.
func underline(line string, startCol, endCol uint32) (pad, width int) {
	s := clampCol(line, startCol)
	e := max(clampCol(line, endCol), s)
	pad = runewidth.StringWidth(expandTabs(line[:s]))
	width = runewidth.StringWidth(expandTabs(line[:e])) - pad
	return pad, max(width, 1)
}

func clampCol(line string, col uint32) int {
	if col == 0 {
		return 0
	}
	return min(int(col-1), len(line))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
