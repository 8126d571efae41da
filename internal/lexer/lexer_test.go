package lexer_test

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"ukl/internal/diag"
	"ukl/internal/lexer"
	"ukl/internal/source"
	"ukl/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.ukl", []byte(input))
	reporter := &testReporter{}
	return lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter}), reporter
}

// collect тянет токены до EOF; ошибка завершает тест.
func collect(t *testing.T, input string, raw bool) []token.Token {
	t.Helper()
	lx, _ := makeTestLexer(input)
	next := lx.Next
	if raw {
		next = lx.NextRaw
	}
	var out []token.Token
	for i := 0; ; i++ {
		if i > len(input)+1 {
			t.Fatalf("lexer made no progress on %q", input)
		}
		tok, err := next()
		if err != nil {
			t.Fatalf("unexpected error on %q: %v", input, err)
		}
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func expectTokens(t *testing.T, input string, raw bool, want ...token.Token) {
	t.Helper()
	want = append(want, token.Punct(token.EOF))
	got := collect(t, input, raw)
	if len(got) != len(want) {
		t.Fatalf("%q: got %d tokens %v, want %d %v", input, len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%q: token %d = %v (%s), want %v (%s)", input, i, got[i], got[i].Kind, want[i], want[i].Kind)
		}
	}
}

func p(k token.Kind) token.Token { return token.Punct(k) }

func TestEOFIsSticky(t *testing.T) {
	for _, input := range []string{"", "   \n\t", "a"} {
		lx, _ := makeTestLexer(input)
		if input == "a" {
			if tok, _ := lx.Next(); tok.Kind != token.Ident {
				t.Fatalf("expected ident, got %v", tok)
			}
		}
		for range 3 {
			tok, err := lx.NextRaw()
			if err != nil || tok.Kind != token.EOF {
				t.Fatalf("%q: expected EOF, got %v, %v", input, tok, err)
			}
		}
	}
}

func TestMaximalMunch(t *testing.T) {
	expectTokens(t, "<<<>>>", false, p(token.Shl), p(token.Lt), p(token.Shr), p(token.Gt))
	expectTokens(t, "...", false, p(token.DotDot), p(token.Dot))
	expectTokens(t, "==>", false, p(token.EqEq), p(token.Gt))
	expectTokens(t, "=>=", false, p(token.FatArrow), p(token.Assign))
	expectTokens(t, ":::", false, p(token.ColonColon), p(token.Colon))
	expectTokens(t, "->>", false, p(token.Arrow), p(token.Gt))
	expectTokens(t, "+==", false, p(token.PlusAssign), p(token.Assign))
	expectTokens(t, "!!=", false, p(token.Bang), p(token.BangEq))
	// "- >" не склеивается через пробел
	expectTokens(t, "- >", false, p(token.Minus), p(token.Gt))
}

func TestAllPunctuation(t *testing.T) {
	tests := []struct {
		src  string
		kind token.Kind
	}{
		{"(", token.LParen}, {")", token.RParen},
		{"[", token.LBracket}, {"]", token.RBracket},
		{"{", token.LBrace}, {"}", token.RBrace},
		{"=", token.Assign}, {"==", token.EqEq}, {"=>", token.FatArrow},
		{":", token.Colon}, {"::", token.ColonColon},
		{";", token.Semicolon}, {"$", token.Dollar}, {",", token.Comma},
		{"->", token.Arrow}, {".", token.Dot}, {"..", token.DotDot},
		{"~", token.Tilde}, {"+", token.Plus}, {"+=", token.PlusAssign},
		{"-", token.Minus}, {"*", token.Star}, {"/", token.Slash},
		{"%", token.Percent}, {"&", token.Amp}, {"|", token.Pipe}, {"^", token.Caret},
		{">", token.Gt}, {">=", token.GtEq}, {">>", token.Shr},
		{"<", token.Lt}, {"<=", token.LtEq}, {"<<", token.Shl},
		{"!", token.Bang}, {"!=", token.BangEq},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expectTokens(t, tt.src, false, p(tt.kind))
			if got := tt.kind.Lexeme(); got != tt.src {
				t.Errorf("Lexeme() = %q, want %q", got, tt.src)
			}
		})
	}
}

func TestLineCommentRawAndMeaningful(t *testing.T) {
	expectTokens(t, "//test\n+", true, token.NewComment(false, "test"), p(token.Plus))
	expectTokens(t, "//test\n+", false, p(token.Plus))
	// комментарий до конца входа
	expectTokens(t, "a // tail", true, token.NewIdent("a"), token.NewComment(false, " tail"))
}

func TestBlockComment(t *testing.T) {
	expectTokens(t, "/* a * b */x", true, token.NewComment(true, " a * b "), token.NewIdent("x"))
	expectTokens(t, "/**/", true, token.NewComment(true, ""))
	// вложенности нет: первый "*/" закрывает комментарий
	expectTokens(t, "/* /* */ */", true,
		token.NewComment(true, " /* "), p(token.Star), p(token.Slash))
	expectTokens(t, "x/*\nmulti\nline*/y", false, token.NewIdent("x"), token.NewIdent("y"))
}

func TestLongCommentRuns(t *testing.T) {
	for name, input := range map[string]string{
		"line":  strings.Repeat("//c\n", 200000) + "+",
		"block": strings.Repeat("/*c*/", 200000) + "+",
	} {
		t.Run(name, func(t *testing.T) {
			lx, _ := makeTestLexer(input)
			tok, err := lx.Next()
			if err != nil || tok.Kind != token.Plus {
				t.Fatalf("got %v, %v", tok, err)
			}
			if tok, _ = lx.Next(); tok.Kind != token.EOF {
				t.Fatalf("expected EOF, got %v", tok)
			}
		})
	}
}

func TestUnclosedDelimiterNotes(t *testing.T) {
	tests := []struct {
		src  string
		end  source.BytePos
		note string
	}{
		{`x "abc`, 3, "string starts here"},
		{"x /* abc", 4, "comment starts here"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			lx, rep := makeTestLexer(tt.src)
			for {
				tok, _ := lx.NextRaw()
				if tok.Kind == token.EOF {
					break
				}
			}
			if len(rep.diagnostics) != 1 {
				t.Fatalf("diagnostics = %+v", rep.diagnostics)
			}
			notes := rep.diagnostics[0].Notes
			if len(notes) != 1 || notes[0].Msg != tt.note {
				t.Fatalf("notes = %+v", notes)
			}
			if notes[0].Span.Start != 2 || notes[0].Span.End != tt.end {
				t.Errorf("note span = %v, want 2..%d", notes[0].Span, tt.end)
			}
		})
	}
	lx, rep := makeTestLexer("@")
	_, _ = lx.Next()
	if len(rep.diagnostics) != 1 || len(rep.diagnostics[0].Notes) != 0 {
		t.Fatalf("unknown character must carry no notes: %+v", rep.diagnostics)
	}
}

func TestUnclosedBlockComment(t *testing.T) {
	lx, rep := makeTestLexer("/* never closed")
	tok, err := lx.NextRaw()
	if !errors.Is(err, lexer.ErrUnclosedMutlilineComment) {
		t.Fatalf("expected unclosed comment error, got %v", err)
	}
	if tok.Kind != token.Malformed || tok.Char != '/' {
		t.Fatalf("expected Malformed('/'), got %v", tok)
	}
	if tok, err = lx.NextRaw(); err != nil || tok.Kind != token.EOF {
		t.Fatalf("expected EOF after unclosed comment, got %v, %v", tok, err)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnterminatedComment {
		t.Fatalf("unexpected diagnostics: %+v", rep.diagnostics)
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		src    string
		base   uint8
		digits string
	}{
		{"0b100101", 2, "100101"},
		{"0B11", 2, "11"},
		{"0X13F", 16, "13F"},
		{"0xdead_BEEF", 16, "dead_BEEF"},
		{"0o17", 8, "17"},
		{"0O7_7", 8, "7_7"},
		{"0(17)123", 17, "123"},
		{"0(36)zZ_9", 36, "zZ_9"},
		{"0(2)101", 2, "101"},
		{"123", 10, "123"},
		{"0123", 10, "0123"},
		{"0", 10, "0"},
		{"1_000_000", 10, "1_000_000"},
		// пустые цифры после префикса
		{"0x", 16, "0"},
		{"0b", 2, "0"},
		{"0(7)", 7, "0"},
		// только разделители - тоже пусто
		{"0x_", 16, "0"},
		{"0b__", 2, "0"},
		{"0(7)_", 7, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expectTokens(t, tt.src, false, token.NewNumber(tt.base, tt.digits))
		})
	}
}

func TestNumberStopsAtInvalidDigit(t *testing.T) {
	expectTokens(t, "0b1012", false, token.NewNumber(2, "101"), token.NewNumber(10, "2"))
	expectTokens(t, "12abc", false, token.NewNumber(10, "12"), token.NewIdent("abc"))
	expectTokens(t, "0o78", false, token.NewNumber(8, "7"), token.NewNumber(10, "8"))
	// нет float: точка - отдельный токен
	expectTokens(t, "1.5", false, token.NewNumber(10, "1"), p(token.Dot), token.NewNumber(10, "5"))
}

func TestNegativeNumberIsTwoTokens(t *testing.T) {
	expectTokens(t, "-123", false, p(token.Minus), token.NewNumber(10, "123"))
}

func TestExplicitBaseErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		want  error
		check func(t *testing.T, e *lexer.Error)
		after []token.Token
	}{
		{
			name: "too large",
			src:  "0(128)123",
			want: lexer.ErrBaseTooLarge,
			check: func(t *testing.T, e *lexer.Error) {
				if e.Base != 128 {
					t.Errorf("Base = %d, want 128", e.Base)
				}
				if e.Span.Start != 0 || e.Span.End != 6 {
					t.Errorf("Span = %v, want 0..6", e.Span)
				}
			},
			after: []token.Token{token.NewNumber(10, "123")},
		},
		{
			name: "not a number",
			src:  "0(abc)1",
			want: lexer.ErrUnknownBase,
			check: func(t *testing.T, e *lexer.Error) {
				if e.Text != "abc" {
					t.Errorf("Text = %q, want abc", e.Text)
				}
			},
			after: []token.Token{token.NewNumber(10, "1")},
		},
		{
			name: "base one",
			src:  "0(1)0",
			want: lexer.ErrUnknownBase,
			check: func(t *testing.T, e *lexer.Error) {
				if e.Error() != "base must be at least 2: 1" {
					t.Errorf("message = %q", e.Error())
				}
			},
			after: []token.Token{token.NewNumber(10, "0")},
		},
		{
			name: "base zero",
			src:  "0(0)",
			want: lexer.ErrUnknownBase,
			check: func(t *testing.T, e *lexer.Error) {
				if e.Error() != "base must be at least 2: 0" {
					t.Errorf("message = %q", e.Error())
				}
			},
		},
		{
			name:  "unclosed",
			src:   "0(12",
			want:  lexer.ErrUnclosedBaseSpecifier,
			after: nil,
		},
		{
			name:  "unclosed before space",
			src:   "0(12 x",
			want:  lexer.ErrUnclosedBaseSpecifier,
			after: []token.Token{token.NewIdent("x")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, rep := makeTestLexer(tt.src)
			tok, err := lx.Next()
			if !errors.Is(err, tt.want) {
				t.Fatalf("got error %v, want %v", err, tt.want)
			}
			if tok.Kind != token.Malformed || tok.Char != '0' {
				t.Errorf("expected Malformed('0'), got %v", tok)
			}
			var lexErr *lexer.Error
			if !errors.As(err, &lexErr) {
				t.Fatalf("error is not *lexer.Error: %T", err)
			}
			if tt.check != nil {
				tt.check(t, lexErr)
			}
			for _, want := range append(tt.after, token.Punct(token.EOF)) {
				got, err := lx.Next()
				if err != nil || got != want {
					t.Fatalf("after error: got %v, %v; want %v", got, err, want)
				}
			}
			if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != lexErr.Kind.Code() {
				t.Errorf("expected one %s diagnostic, got %+v", lexErr.Kind.Code().ID(), rep.diagnostics)
			}
		})
	}
}

func TestStrings(t *testing.T) {
	expectTokens(t, `"hello"`, false, token.NewString("hello"))
	expectTokens(t, `""`, false, token.NewString(""))
	expectTokens(t, `"a\tb\nc"`, false, token.NewString("a\tb\nc"))
	expectTokens(t, `"\'\"\r\0\\"`, false, token.NewString("'\"\r\x00\\"))
	expectTokens(t, "\"line1\nline2\"", false, token.NewString("line1\nline2"))
	expectTokens(t, `"привет" x`, false, token.NewString("привет"), token.NewIdent("x"))
	// невалидный байт внутри строки заменяется на U+FFFD
	expectTokens(t, "\"a\xffb\"", false, token.NewString("a\uFFFDb"))
}

func TestStringErrors(t *testing.T) {
	tests := []struct {
		src  string
		want error
		char rune
	}{
		{`"abc`, lexer.ErrUnclosedString, 0},
		{`"abc\`, lexer.ErrUnusedEscape, 0},
		{`"a\qb"`, lexer.ErrUnknownEscapedCharacter, 'q'},
		{`"`, lexer.ErrUnclosedString, 0},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			lx, _ := makeTestLexer(tt.src)
			tok, err := lx.Next()
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			if tok.Kind != token.Malformed || tok.Char != '"' {
				t.Errorf("expected Malformed('\"'), got %v", tok)
			}
			var lexErr *lexer.Error
			if errors.As(err, &lexErr) && lexErr.Char != tt.char {
				t.Errorf("Char = %q, want %q", lexErr.Char, tt.char)
			}
		})
	}
}

func TestUnknownEscapeAbortsAfterEscapedChar(t *testing.T) {
	lx, _ := makeTestLexer(`"\q" + 1`)
	if _, err := lx.Next(); !errors.Is(err, lexer.ErrUnknownEscapedCharacter) {
		t.Fatalf("got %v", err)
	}
	if off := lx.Offset(); off != 3 {
		t.Fatalf("cursor must stop right after the escaped char, off=%d", off)
	}
}

// escapeForSource превращает строку в литерал исходника.
func escapeForSource(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case 0:
			sb.WriteString(`\0`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{
		"", "plain", "quote \" inside", `back\slash`, "tab\tnl\ncr\r",
		"nul\x00byte", "юникод 😀", "'single'",
	} {
		expectTokens(t, escapeForSource(s), false, token.NewString(s))
	}
}

func TestIdentifiers(t *testing.T) {
	expectTokens(t, "foo _bar baz_9 привет_1 λx",
		false,
		token.NewIdent("foo"),
		token.NewIdent("_bar"),
		token.NewIdent("baz_9"),
		token.NewIdent("привет_1"),
		token.NewIdent("λx"),
	)
	// ключевых слов нет
	expectTokens(t, "fn let", false, token.NewIdent("fn"), token.NewIdent("let"))
}

func TestUnknownCharacter(t *testing.T) {
	lx, rep := makeTestLexer("a @ b")
	if tok, _ := lx.Next(); tok != token.NewIdent("a") {
		t.Fatalf("got %v", tok)
	}
	tok, err := lx.Next()
	if !errors.Is(err, lexer.ErrUnknownCharacter) {
		t.Fatalf("got %v", err)
	}
	if tok != token.NewMalformed('@') {
		t.Fatalf("got %v", tok)
	}
	if sp := lx.LastSpan(); sp.Start != 2 || sp.End != 3 {
		t.Fatalf("error span = %v", sp)
	}
	if tok, err = lx.Next(); err != nil || tok != token.NewIdent("b") {
		t.Fatalf("lexing must resume after unknown char, got %v, %v", tok, err)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnknownChar {
		t.Fatalf("diagnostics = %+v", rep.diagnostics)
	}
}

func TestInvalidUTF8(t *testing.T) {
	lx, _ := makeTestLexer("\xff+")
	tok, err := lx.Next()
	if !errors.Is(err, lexer.ErrUnknownCharacter) || tok.Char != utf8.RuneError {
		t.Fatalf("got %v, %v", tok, err)
	}
	if tok, err = lx.Next(); err != nil || tok.Kind != token.Plus {
		t.Fatalf("got %v, %v", tok, err)
	}
}

func TestSpans(t *testing.T) {
	lx, _ := makeTestLexer("ab  +=\n\"x\" // c")
	want := []struct {
		kind       token.Kind
		start, end source.BytePos
	}{
		{token.Ident, 0, 2},
		{token.PlusAssign, 4, 6},
		{token.StringLit, 7, 10},
		{token.Comment, 11, 15},
		{token.EOF, 15, 15},
	}
	for _, w := range want {
		got, err := lx.NextRawSpanned()
		if err != nil {
			t.Fatal(err)
		}
		if got.Value.Kind != w.kind || got.Span.Start != w.start || got.Span.End != w.end {
			t.Fatalf("got %s %v, want %s %d..%d", got.Value.Kind, got.Span, w.kind, w.start, w.end)
		}
	}
}

func TestSpansAreMonotonic(t *testing.T) {
	lx, _ := makeTestLexer("let x = 0(40)1 + \"a\\q\" @ 0b1 /* c */ y -> z")
	var prev source.BytePos
	for tok := range lx.Tokens(true) {
		if tok.Span.Start < prev || tok.Span.End < tok.Span.Start {
			t.Fatalf("non-monotonic span %v after %d", tok.Span, prev)
		}
		prev = tok.Span.End
	}
}

func TestTokensIterator(t *testing.T) {
	lx, _ := makeTestLexer("a /* c */ 1 @ b")
	var kinds []token.Kind
	var errs int
	for tok, err := range lx.Tokens(false) {
		if err != nil {
			errs++
		}
		kinds = append(kinds, tok.Value.Kind)
	}
	want := []token.Kind{token.Ident, token.NumberLit, token.Malformed, token.Ident, token.EOF}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", kinds, want)
		}
	}
	if errs != 1 {
		t.Fatalf("errs = %d, want 1", errs)
	}
}

func TestReporterAdapterDedup(t *testing.T) {
	bag := diag.NewBag(10)
	adapter := &lexer.ReporterAdapter{Bag: bag}
	fs := source.NewFileSet()
	id := fs.AddVirtual("dup.ukl", []byte("@ #"))
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: adapter.Reporter()})
	for range lx.Tokens(false) {
	}
	if bag.Len() != 2 {
		t.Fatalf("bag has %d diagnostics, want 2", bag.Len())
	}
	if !bag.HasErrors() {
		t.Fatal("expected errors in bag")
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  *lexer.Error
		want string
	}{
		{&lexer.Error{Kind: lexer.UnclosedString}, "unclosed string"},
		{&lexer.Error{Kind: lexer.UnknownEscapedCharacter, Char: 'q'}, "unknown escape character: q"},
		{&lexer.Error{Kind: lexer.UnknownBase, Text: "zz"}, "invalid base: zz"},
		{&lexer.Error{Kind: lexer.UnknownBase, Text: "1"}, "base must be at least 2: 1"},
		{&lexer.Error{Kind: lexer.UnknownBase, Text: "0"}, "base must be at least 2: 0"},
		{&lexer.Error{Kind: lexer.BaseTooLarge, Base: 99}, "unsupported base: 99"},
		{&lexer.Error{Kind: lexer.UnknownCharacter, Char: '@'}, "unknown character encountered while lexing: @"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("%s: %q, want %q", tt.err.Kind, got, tt.want)
		}
	}
	if errors.Is(lexer.ErrUnclosedString, lexer.ErrUnusedEscape) {
		t.Error("different kinds must not match")
	}
}
