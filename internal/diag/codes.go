package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo                  Code = 1000
	LexUnknownChar           Code = 1001
	LexUnterminatedString    Code = 1002
	LexUnterminatedComment   Code = 1003
	LexUnusedEscape          Code = 1004
	LexUnknownEscape         Code = 1005
	LexUnknownBase           Code = 1006
	LexBaseTooLarge          Code = 1007
	LexUnclosedBaseSpecifier Code = 1008

	// Синтаксические
	SynInfo       Code = 2000
	SynLexAborted Code = 2001

	// I/O
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:              "Unknown error",
	LexInfo:                  "Lexical information",
	LexUnknownChar:           "Unknown character",
	LexUnterminatedString:    "Unterminated string",
	LexUnterminatedComment:   "Unterminated block comment",
	LexUnusedEscape:          "Unused escape",
	LexUnknownEscape:         "Unknown escape sequence",
	LexUnknownBase:           "Invalid base specifier",
	LexBaseTooLarge:          "Base too large",
	LexUnclosedBaseSpecifier: "Unclosed base specifier",
	SynInfo:                  "Syntax information",
	SynLexAborted:            "Parsing stopped on a lexical error",
	IOLoadFileError:          "I/O error",
}

// ID returns the stable short identifier of the code, e.g. LEX1002.
func (c Code) ID() string {
	ic := int(c)
	switch {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
