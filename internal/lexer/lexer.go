package lexer

import (
	"iter"

	"ukl/internal/source"
	"ukl/internal/token"
)

// Lexer превращает один исходный файл в поток токенов.
// Создаётся один раз на файл, двигается только вперёд и не сбрасывается.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	last   source.Span // span последней лексемы (или ошибки)
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// NextRaw возвращает следующий токен, включая комментарии.
// После конца входа всегда возвращает EOF.
func (lx *Lexer) NextRaw() (token.Token, error) {
	t, err := lx.NextRawSpanned()
	return t.Value, err
}

// Next возвращает следующий **значимый** токен: комментарии пропускаются,
// ошибки пробрасываются без изменений.
func (lx *Lexer) Next() (token.Token, error) {
	t, err := lx.NextSpanned()
	return t.Value, err
}

// NextSpanned is Next with the token's source span attached.
func (lx *Lexer) NextSpanned() (source.Spanned[token.Token], error) {
	for {
		t, err := lx.NextRawSpanned()
		if err != nil || !t.Value.IsComment() {
			return t, err
		}
	}
}

// NextRawSpanned is NextRaw with the token's source span attached.
// On error the returned token is Malformed, carrying the lexeme's first
// character, and the cursor has moved past the offending input.
func (lx *Lexer) NextRawSpanned() (source.Spanned[token.Token], error) {
	lx.skipTrivia()

	start := lx.cursor.Mark()
	ch, ok := lx.cursor.Peek()
	if !ok {
		lx.last = lx.cursor.SpanFrom(start)
		return source.At(token.Punct(token.EOF), lx.last), nil
	}

	var (
		tok token.Token
		err *Error
	)
	switch {
	case ch == '"':
		tok, err = lx.scanString()
	case isDec(ch):
		tok, err = lx.scanNumber()
	case isIdentStart(ch):
		tok = lx.scanIdent()
	case ch == '/':
		tok, err = lx.scanSlashOrComment()
	default:
		tok, err = lx.scanOperatorOrPunct()
	}

	lx.last = lx.cursor.SpanFrom(start)
	if err != nil {
		err.Span = lx.last
		lx.report(err)
		return source.At(token.NewMalformed(ch), lx.last), err
	}
	return source.At(tok, lx.last), nil
}

// LastSpan returns the span of the most recently produced token or error.
func (lx *Lexer) LastSpan() source.Span {
	return lx.last
}

// Offset returns the current byte offset of the cursor.
func (lx *Lexer) Offset() source.BytePos {
	return lx.cursor.Off
}

// Tokens yields raw (comments included) or meaningful tokens until EOF.
// Iteration continues past errors; the consumer decides when to stop.
func (lx *Lexer) Tokens(raw bool) iter.Seq2[source.Spanned[token.Token], error] {
	return func(yield func(source.Spanned[token.Token], error) bool) {
		next := lx.NextSpanned
		if raw {
			next = lx.NextRawSpanned
		}
		for {
			t, err := next()
			if !yield(t, err) || (err == nil && t.Value.Kind == token.EOF) {
				return
			}
		}
	}
}
