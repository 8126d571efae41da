package lexer

import (
	"ukl/internal/token"
)

// twoCharOps - допустимые продолжения для ведущего символа.
// Жадность ограничена двумя символами: "<<<" это Shl, затем Lt.
var twoCharOps = map[rune][]struct {
	next rune
	kind token.Kind
}{
	'.': {{'.', token.DotDot}},
	'=': {{'=', token.EqEq}, {'>', token.FatArrow}},
	':': {{':', token.ColonColon}},
	'-': {{'>', token.Arrow}},
	'+': {{'=', token.PlusAssign}},
	'>': {{'=', token.GtEq}, {'>', token.Shr}},
	'<': {{'=', token.LtEq}, {'<', token.Shl}},
	'!': {{'=', token.BangEq}},
}

var oneCharOps = map[rune]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
	'{': token.LBrace,
	'}': token.RBrace,
	'=': token.Assign,
	':': token.Colon,
	';': token.Semicolon,
	'$': token.Dollar,
	',': token.Comma,
	'-': token.Minus,
	'.': token.Dot,
	'~': token.Tilde,
	'+': token.Plus,
	'*': token.Star,
	'%': token.Percent,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	'>': token.Gt,
	'<': token.Lt,
	'!': token.Bang,
}

// scanOperatorOrPunct потребляет ведущий символ и, если следующий символ
// продолжает известный двухсимвольный оператор, ещё один.
func (lx *Lexer) scanOperatorOrPunct() (token.Token, *Error) {
	ch, _ := lx.cursor.Bump()

	if next, ok := lx.cursor.Peek(); ok {
		for _, op := range twoCharOps[ch] {
			if op.next == next {
				lx.cursor.Bump()
				return token.Punct(op.kind), nil
			}
		}
	}
	if k, ok := oneCharOps[ch]; ok {
		return token.Punct(k), nil
	}

	// неизвестный символ: курсор уже сдвинут за него
	return token.NewMalformed(ch), &Error{Kind: UnknownCharacter, Char: ch}
}

// scanSlashOrComment: "/" - оператор, "//" и "/*" - комментарии.
func (lx *Lexer) scanSlashOrComment() (token.Token, *Error) {
	lx.cursor.Bump() // '/'
	switch next, _ := lx.cursor.Peek(); next {
	case '/':
		lx.cursor.Bump()
		return lx.scanLineComment(), nil
	case '*':
		lx.cursor.Bump()
		return lx.scanBlockComment()
	default:
		return token.Punct(token.Slash), nil
	}
}
