package lexer

import (
	"strconv"
	"strings"

	"ukl/internal/token"
)

const maxBase = 36

// emptyDigits - текст цифр для префиксной формы без единой цифры ("0x", "0(7)", "0x_").
const emptyDigits = "0"

// Поддержка: 123, 0123, 0b..., 0o..., 0x..., 0(N)... где N - основание 2..36.
// '_' допустим как разделитель в любой форме и остаётся в Token.Text.
// Знак не часть литерала: "-1" это Minus, NumberLit.
func (lx *Lexer) scanNumber() (token.Token, *Error) {
	start := lx.cursor.Mark()
	lead, _ := lx.cursor.Bump()

	if lead == '0' {
		next, _ := lx.cursor.Peek()
		switch next {
		case 'x', 'X':
			lx.cursor.Bump()
			return lx.scanDigits(16), nil
		case 'b', 'B':
			lx.cursor.Bump()
			return lx.scanDigits(2), nil
		case 'o', 'O':
			lx.cursor.Bump()
			return lx.scanDigits(8), nil
		case '(':
			lx.cursor.Bump()
			return lx.scanExplicitBase()
		}
	}

	// десятичная форма: ведущая цифра уже съедена и входит в текст
	lx.cursor.AccumulateWhile(digitIn(10))
	return token.NewNumber(10, lx.cursor.Since(start)), nil
}

// scanExplicitBase разбирает "N)" после "0(" и затем цифры в основании N.
// Во всех ошибочных случаях спецификатор уже потреблён.
func (lx *Lexer) scanExplicitBase() (token.Token, *Error) {
	baseText := lx.cursor.AccumulateWhile(func(r rune) bool {
		return r != ')' && !isTrivia(r)
	})
	if !lx.cursor.Eat(')') {
		return token.Token{}, &Error{Kind: UnclosedBaseSpecifier}
	}

	base, err := strconv.ParseUint(baseText, 10, 64)
	switch {
	case err != nil || base < 2:
		return token.Token{}, &Error{Kind: UnknownBase, Text: baseText}
	case base > maxBase:
		return token.Token{}, &Error{Kind: BaseTooLarge, Base: base}
	}
	return lx.scanDigits(uint8(base)), nil
}

func (lx *Lexer) scanDigits(base uint8) token.Token {
	digits := lx.cursor.AccumulateWhile(digitIn(base))
	// одни разделители значения не несут
	if strings.Trim(digits, "_") == "" {
		digits = emptyDigits
	}
	return token.NewNumber(base, digits)
}
