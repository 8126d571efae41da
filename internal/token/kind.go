package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Malformed marks an unrecognised character; Token.Char holds it.
	Malformed Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// StringLit represents a double-quoted string literal with escapes resolved.
	StringLit
	// NumberLit represents an integer literal in some base (2..36).
	NumberLit
	// Comment represents a line or block comment.
	Comment

	LParen   // (
	RParen   // )
	LBracket // [
	RBracket // ]
	LBrace   // {
	RBrace   // }

	// Assign represents the assign operator token.
	Assign // =
	// EqEq represents the equality operator token.
	EqEq // ==
	// FatArrow represents the fat arrow token.
	FatArrow // =>
	// Colon represents the colon token.
	Colon // :
	// ColonColon represents the path separator token.
	ColonColon // ::
	Semicolon  // ;
	Dollar     // $
	Comma      // ,
	// Arrow represents the right arrow token.
	Arrow  // ->
	Dot    // .
	DotDot // ..
	Tilde  // ~

	Plus       // +
	PlusAssign // +=
	Minus      // -
	Star       // *
	Slash      // /
	Percent    // %
	Amp        // &
	Pipe       // |
	Caret      // ^
	Gt         // >
	GtEq       // >=
	Shr        // >>
	Lt         // <
	LtEq       // <=
	Shl        // <<
	Bang       // !
	BangEq     // !=

	kindCount
)

var kindNames = [kindCount]string{
	Malformed:  "Malformed",
	EOF:        "EOF",
	Ident:      "Ident",
	StringLit:  "StringLit",
	NumberLit:  "NumberLit",
	Comment:    "Comment",
	LParen:     "LParen",
	RParen:     "RParen",
	LBracket:   "LBracket",
	RBracket:   "RBracket",
	LBrace:     "LBrace",
	RBrace:     "RBrace",
	Assign:     "Assign",
	EqEq:       "EqEq",
	FatArrow:   "FatArrow",
	Colon:      "Colon",
	ColonColon: "ColonColon",
	Semicolon:  "Semicolon",
	Dollar:     "Dollar",
	Comma:      "Comma",
	Arrow:      "Arrow",
	Dot:        "Dot",
	DotDot:     "DotDot",
	Tilde:      "Tilde",
	Plus:       "Plus",
	PlusAssign: "PlusAssign",
	Minus:      "Minus",
	Star:       "Star",
	Slash:      "Slash",
	Percent:    "Percent",
	Amp:        "Amp",
	Pipe:       "Pipe",
	Caret:      "Caret",
	Gt:         "Gt",
	GtEq:       "GtEq",
	Shr:        "Shr",
	Lt:         "Lt",
	LtEq:       "LtEq",
	Shl:        "Shl",
	Bang:       "Bang",
	BangEq:     "BangEq",
}

var kindLexemes = [kindCount]string{
	LParen:     "(",
	RParen:     ")",
	LBracket:   "[",
	RBracket:   "]",
	LBrace:     "{",
	RBrace:     "}",
	Assign:     "=",
	EqEq:       "==",
	FatArrow:   "=>",
	Colon:      ":",
	ColonColon: "::",
	Semicolon:  ";",
	Dollar:     "$",
	Comma:      ",",
	Arrow:      "->",
	Dot:        ".",
	DotDot:     "..",
	Tilde:      "~",
	Plus:       "+",
	PlusAssign: "+=",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Percent:    "%",
	Amp:        "&",
	Pipe:       "|",
	Caret:      "^",
	Gt:         ">",
	GtEq:       ">=",
	Shr:        ">>",
	Lt:         "<",
	LtEq:       "<=",
	Shl:        "<<",
	Bang:       "!",
	BangEq:     "!=",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Lexeme returns the fixed source spelling of a punctuation kind, or "" for
// kinds whose text varies.
func (k Kind) Lexeme() string {
	if k < kindCount {
		return kindLexemes[k]
	}
	return ""
}

// IsEOF reports whether k marks the end of input.
func (k Kind) IsEOF() bool { return k == EOF }

// IsPunct reports whether k is a fixed punctuation or operator kind.
func (k Kind) IsPunct() bool { return k >= LParen && k < kindCount }
