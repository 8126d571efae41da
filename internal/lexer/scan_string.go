package lexer

import (
	"strings"

	"ukl/internal/token"
)

var escapes = map[rune]rune{
	'\'': '\'',
	'"':  '"',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'0':  0,
	'\\': '\\',
}

// scanString читает "..." с разрешением escape-последовательностей.
// При первой ошибке скан прерывается; следующий вызов продолжит с текущей позиции.
func (lx *Lexer) scanString() (token.Token, *Error) {
	lx.cursor.Bump() // opening '"'
	var sb strings.Builder
	for {
		r, ok := lx.cursor.Peek()
		if !ok {
			return token.Token{}, &Error{Kind: UnclosedString}
		}
		lx.cursor.Bump()
		switch r {
		case '"':
			return token.NewString(sb.String()), nil
		case '\\':
			esc, ok := lx.cursor.Bump()
			if !ok {
				return token.Token{}, &Error{Kind: UnusedEscape}
			}
			resolved, known := escapes[esc]
			if !known {
				return token.Token{}, &Error{Kind: UnknownEscapedCharacter, Char: esc}
			}
			sb.WriteRune(resolved)
		default:
			// невалидный UTF-8 байт приходит как utf8.RuneError и
			// попадает в значение как U+FFFD
			sb.WriteRune(r)
		}
	}
}
