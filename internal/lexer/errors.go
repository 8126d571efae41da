package lexer

import (
	"fmt"
	"strconv"

	"ukl/internal/diag"
	"ukl/internal/source"
)

// ErrorKind classifies a lexical error.
type ErrorKind uint8

const (
	UnclosedString ErrorKind = iota + 1
	UnclosedMutlilineComment
	UnusedEscape
	UnknownEscapedCharacter // Error.Char
	UnknownBase             // Error.Text
	BaseTooLarge            // Error.Base
	UnclosedBaseSpecifier
	UnknownCharacter // Error.Char
)

func (k ErrorKind) String() string {
	switch k {
	case UnclosedString:
		return "UnclosedString"
	case UnclosedMutlilineComment:
		return "UnclosedMutlilineComment"
	case UnusedEscape:
		return "UnusedEscape"
	case UnknownEscapedCharacter:
		return "UnknownEscapedCharacter"
	case UnknownBase:
		return "UnknownBase"
	case BaseTooLarge:
		return "BaseTooLarge"
	case UnclosedBaseSpecifier:
		return "UnclosedBaseSpecifier"
	case UnknownCharacter:
		return "UnknownCharacter"
	}
	return "ErrorKind(?)"
}

// Code maps the kind to its diagnostic code.
func (k ErrorKind) Code() diag.Code {
	switch k {
	case UnclosedString:
		return diag.LexUnterminatedString
	case UnclosedMutlilineComment:
		return diag.LexUnterminatedComment
	case UnusedEscape:
		return diag.LexUnusedEscape
	case UnknownEscapedCharacter:
		return diag.LexUnknownEscape
	case UnknownBase:
		return diag.LexUnknownBase
	case BaseTooLarge:
		return diag.LexBaseTooLarge
	case UnclosedBaseSpecifier:
		return diag.LexUnclosedBaseSpecifier
	case UnknownCharacter:
		return diag.LexUnknownChar
	}
	return diag.UnknownCode
}

// Error is a recoverable lexical error. Only the payload field matching Kind
// is set. Span covers the bytes consumed by the failed scan.
type Error struct {
	Kind ErrorKind
	Char rune
	Text string
	Base uint64
	Span source.Span
}

// Sentinels for errors.Is; matching compares Kind only.
var (
	ErrUnclosedString           = &Error{Kind: UnclosedString}
	ErrUnclosedMutlilineComment = &Error{Kind: UnclosedMutlilineComment}
	ErrUnusedEscape             = &Error{Kind: UnusedEscape}
	ErrUnknownEscapedCharacter  = &Error{Kind: UnknownEscapedCharacter}
	ErrUnknownBase              = &Error{Kind: UnknownBase}
	ErrBaseTooLarge             = &Error{Kind: BaseTooLarge}
	ErrUnclosedBaseSpecifier    = &Error{Kind: UnclosedBaseSpecifier}
	ErrUnknownCharacter         = &Error{Kind: UnknownCharacter}
)

func (e *Error) Error() string {
	switch e.Kind {
	case UnclosedString:
		return "unclosed string"
	case UnclosedMutlilineComment:
		return "unclosed multi-line comment"
	case UnusedEscape:
		return "unused escape sequence"
	case UnknownEscapedCharacter:
		return fmt.Sprintf("unknown escape character: %c", e.Char)
	case UnknownBase:
		if n, err := strconv.ParseUint(e.Text, 10, 64); err == nil && n < 2 {
			return fmt.Sprintf("base must be at least 2: %s", e.Text)
		}
		return fmt.Sprintf("invalid base: %s", e.Text)
	case BaseTooLarge:
		return fmt.Sprintf("unsupported base: %d", e.Base)
	case UnclosedBaseSpecifier:
		return "unclosed base specifier"
	case UnknownCharacter:
		return fmt.Sprintf("unknown character encountered while lexing: %c", e.Char)
	}
	return "lexing error"
}

// Is reports whether target is a lexer error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
