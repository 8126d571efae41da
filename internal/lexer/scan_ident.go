package lexer

import (
	"ukl/internal/token"
)

// scanIdent: ключевых слов в языке нет. Идентификатор - буква или '_', затем
// жадно буквы, цифры и '_'. Token.Text - ровно исходный срез.
func (lx *Lexer) scanIdent() token.Token {
	return token.NewIdent(lx.cursor.AccumulateWhile(isIdentContinue))
}
