package diag

import (
	"fmt"
	"strings"

	"ukl/internal/source"
)

// FormatShortDiagnostics renders diagnostics one per line as
// "<severity> <ID> <path>:<line>:<col> <message>". Multi-line messages are
// folded onto a single line.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	lines := make([]string, 0, len(diags))
	for _, d := range diags {
		lines = append(lines, shortLine(strings.ToLower(d.Severity.String()), d.Code, d.Primary, d.Message, fs))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			lines = append(lines, shortLine("note", d.Code, n.Span, n.Msg, fs))
		}
	}
	return strings.Join(lines, "\n")
}

func shortLine(sev string, code Code, sp source.Span, msg string, fs *source.FileSet) string {
	text := strings.Join(strings.Fields(msg), " ")
	if sp.File == source.NoFileID || int(sp.File) >= fs.Len() {
		return fmt.Sprintf("%s %s %s", sev, code.ID(), text)
	}
	start, _ := fs.Resolve(sp)
	path := fs.Get(sp.File).Path
	return fmt.Sprintf("%s %s %s:%d:%d %s", sev, code.ID(), path, start.Line, start.Col, text)
}
