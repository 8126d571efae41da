package token

import (
	"fmt"
	"strconv"
)

// Token is a closed tagged union; Kind selects which payload fields apply.
type Token struct {
	Kind      Kind
	Text      string // Ident, StringLit, NumberLit digits, Comment body
	Base      uint8  // NumberLit only
	Multiline bool   // Comment only
	Char      rune   // Malformed only
}

// Punct builds a payload-free token.
func Punct(k Kind) Token { return Token{Kind: k} }

// NewIdent builds an identifier token.
func NewIdent(text string) Token { return Token{Kind: Ident, Text: text} }

// NewString builds a string literal token from its resolved contents.
func NewString(text string) Token { return Token{Kind: StringLit, Text: text} }

// NewNumber builds a number literal token with its base and digit text.
func NewNumber(base uint8, digits string) Token {
	return Token{Kind: NumberLit, Base: base, Text: digits}
}

// NewComment builds a comment token.
func NewComment(multiline bool, text string) Token {
	return Token{Kind: Comment, Multiline: multiline, Text: text}
}

// NewMalformed builds a token for an unrecognised character.
func NewMalformed(ch rune) Token { return Token{Kind: Malformed, Char: ch} }

// IsComment reports whether the token is a comment.
func (t Token) IsComment() bool { return t.Kind == Comment }

// IsLiteral reports whether the token is a string or number literal.
func (t Token) IsLiteral() bool {
	return t.Kind == StringLit || t.Kind == NumberLit
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// String renders the token roughly as it would read in source.
func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "<EOF>"
	case Malformed:
		return fmt.Sprintf("ERR[%c]", t.Char)
	case Ident:
		return "[" + t.Text + "]"
	case StringLit:
		return strconv.Quote(t.Text)
	case NumberLit:
		return fmt.Sprintf("Num(%d, %s)", t.Base, t.Text)
	case Comment:
		if t.Multiline {
			return "/*" + t.Text + "*/"
		}
		return "//" + t.Text
	default:
		return t.Kind.Lexeme()
	}
}
