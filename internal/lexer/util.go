package lexer

import (
	"unicode"
)

// ===== Классификаторы =====

func isTrivia(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

// ASCII fast-path; остальное через unicode.
func isIdentStart(r rune) bool {
	if r < unicode.MaxASCII {
		return r == '_' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
	}
	return unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	if r < unicode.MaxASCII {
		return isIdentStart(r) || isDec(r)
	}
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

func isDec(r rune) bool { return r >= '0' && r <= '9' }

// digitValue возвращает значение цифры 0-9a-zA-Z или 255.
func digitValue(r rune) uint8 {
	switch {
	case r >= '0' && r <= '9':
		return uint8(r - '0')
	case r >= 'a' && r <= 'z':
		return uint8(r-'a') + 10
	case r >= 'A' && r <= 'Z':
		return uint8(r-'A') + 10
	}
	return 255
}

// digitIn возвращает предикат "цифра в основании base или '_'".
func digitIn(base uint8) func(rune) bool {
	return func(r rune) bool {
		return r == '_' || digitValue(r) < base
	}
}
