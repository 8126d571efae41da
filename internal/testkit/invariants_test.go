package testkit

import (
	"strings"
	"testing"

	"ukl/internal/lexer"
	"ukl/internal/source"
	"ukl/internal/token"
)

func lexAll(t *testing.T, src string) ([]source.Spanned[token.Token], *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("inv.ukl", []byte(src)))
	var toks []source.Spanned[token.Token]
	for tok := range lexer.New(file, lexer.Options{}).Tokens(true) {
		toks = append(toks, tok)
	}
	return toks, file
}

func TestCheckTokenSpansOnLexerOutput(t *testing.T) {
	for _, src := range []string{
		"",
		"a => 0x1F // tail",
		"0(128)123 \"\\q\" @ /* open",
		"строка = \"привет\";\n",
	} {
		toks, file := lexAll(t, src)
		if err := CheckTokenSpans(toks, file); err != nil {
			t.Fatalf("%q: %v", src, err)
		}
	}
}

func TestCheckTokenSpansRejectsBrokenStreams(t *testing.T) {
	toks, file := lexAll(t, "ab cd")
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(toks))
	}

	cases := []struct {
		name   string
		mutate func([]source.Spanned[token.Token]) []source.Spanned[token.Token]
		want   string
	}{
		{"overlap", func(ts []source.Spanned[token.Token]) []source.Spanned[token.Token] {
			ts[1].Span.Start = 1
			return ts
		}, "overlaps"},
		{"beyond content", func(ts []source.Spanned[token.Token]) []source.Spanned[token.Token] {
			ts[1].Span.End = 99
			return ts
		}, "beyond content"},
		{"empty token", func(ts []source.Spanned[token.Token]) []source.Spanned[token.Token] {
			ts[0].Span.End = ts[0].Span.Start
			return ts
		}, "empty span"},
		{"eof not last", func(ts []source.Spanned[token.Token]) []source.Spanned[token.Token] {
			return append([]source.Spanned[token.Token]{ts[2]}, ts[:2]...)
		}, "EOF"},
		{"wrong file", func(ts []source.Spanned[token.Token]) []source.Spanned[token.Token] {
			ts[0].Span.File = file.ID + 1
			return ts
		}, "file mismatch"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			broken := tc.mutate(append([]source.Spanned[token.Token](nil), toks...))
			err := CheckTokenSpans(broken, file)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error = %v, want substring %q", err, tc.want)
			}
		})
	}
	if err := CheckTokenSpans(toks, nil); err == nil {
		t.Fatal("nil file must be rejected")
	}
}
