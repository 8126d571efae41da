package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"ukl/internal/diag"
	"ukl/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	content := []byte("let x = \"unterminated string\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.ukl", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 8, End: 28},
		"unclosed string",
	))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.ukl:1:9"},
		{"Relative path", PathModeRelative, "src/test.ukl:1:9"},
		{"Basename only", PathModeBasename, "test.ukl:1:9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			for _, want := range []string{"ERROR", "LEX1002", "unclosed string"} {
				if !strings.Contains(output, want) {
					t.Errorf("Expected %q in output:\n%s", want, output)
				}
			}
		})
	}
}

func TestPathModeAuto(t *testing.T) {
	fs := source.NewFileSet()
	short := fs.AddVirtual("test.ukl", []byte("x"))
	long := fs.AddVirtual("/very/long/absolute/path/to/some/nested/directory/file.ukl", []byte("x"))

	if got := formatPath(fs.Get(short), PathModeAuto, ""); got != "test.ukl" {
		t.Errorf("short path: %q", got)
	}
	if got := formatPath(fs.Get(long), PathModeAuto, ""); got != "file.ukl" {
		t.Errorf("long path: %q", got)
	}
}

func TestPrettyCaret(t *testing.T) {
	fs := source.NewFileSet()
	src := "a = 1\n\tb = 0(99)7\nc\n"
	id := fs.AddVirtual("caret.ukl", []byte(src))
	start := source.BytePos(strings.Index(src, "0(99)"))

	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.LexBaseTooLarge, source.Span{File: id, Start: start, End: start + 5}, "unsupported base: 99"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1})
	lines := strings.Split(buf.String(), "\n")

	want := []string{
		"caret.ukl:2:6: ERROR LEX1007: unsupported base: 99",
		" 1 | a = 1",
		" 2 |     b = 0(99)7",
		"   |         ^~~~~",
		" 3 | c",
	}
	for i, w := range want {
		if i >= len(lines) || lines[i] != w {
			t.Fatalf("line %d:\n got: %q\nwant: %q\nfull output:\n%s", i, safeLine(lines, i), w, buf.String())
		}
	}
}

func TestPrettyWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	src := "名前 @"
	id := fs.AddVirtual("wide.ukl", []byte(src))
	at := source.BytePos(strings.Index(src, "@"))

	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: id, Start: at, End: at + 1}, "unknown character encountered while lexing: @"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	// два широких символа по 2 колонки + пробел
	if !strings.Contains(buf.String(), "   |      ^\n") {
		t.Fatalf("caret not aligned to display width:\n%s", buf.String())
	}
}

func TestPrettyWithoutSource(t *testing.T) {
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: source.NoFileID}, "failed to load x.ukl"))

	var buf bytes.Buffer
	Pretty(&buf, bag, source.NewFileSet(), PrettyOpts{})
	if got := buf.String(); got != "ERROR IO4001: failed to load x.ukl\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("n.ukl", []byte("\"abc"))
	d := diag.NewError(diag.LexUnterminatedString, source.Span{File: id, Start: 0, End: 4}, "unclosed string").
		WithNote(source.Span{File: id, Start: 0, End: 1}, "string starts here")
	bag := diag.NewBag(4)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})
	if !strings.Contains(buf.String(), "note: n.ukl:1:1: string starts here") {
		t.Fatalf("note missing:\n%s", buf.String())
	}
}

func safeLine(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return "<missing>"
}
