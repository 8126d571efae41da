package lexer

import (
	"ukl/internal/token"
)

// skipTrivia пропускает пробелы, \r, \t и переводы строк.
// Цикл, а не рекурсия: длинные серии пробелов не растят стек.
func (lx *Lexer) skipTrivia() {
	lx.cursor.AccumulateWhile(isTrivia)
}

// scanLineComment - после "//": текст до '\n' (не включая) или конца входа.
func (lx *Lexer) scanLineComment() token.Token {
	text := lx.cursor.AccumulateWhile(func(r rune) bool { return r != '\n' })
	return token.NewComment(false, text)
}

// scanBlockComment - после "/*": текст до первого "*/", без вложенности.
// Незакрытый комментарий - ошибка, частичный токен не создаётся.
func (lx *Lexer) scanBlockComment() (token.Token, *Error) {
	body := lx.cursor.Mark()
	for {
		end := lx.cursor.Mark()
		r, ok := lx.cursor.Bump()
		if !ok {
			return token.Token{}, &Error{Kind: UnclosedMutlilineComment}
		}
		if r == '*' && lx.cursor.Eat('/') {
			return token.NewComment(true, string(lx.file.Content[body:end])), nil
		}
	}
}
