package lexer

import (
	"ukl/internal/diag"
	"ukl/internal/source"
)

type Options struct {
	// Reporter получает каждую лексическую ошибку; может быть nil.
	// Ошибка всё равно возвращается вызывающему из NextRaw/Next.
	Reporter diag.Reporter
}

func (lx *Lexer) report(err *Error) {
	if lx.opts.Reporter == nil {
		return
	}
	d := diag.NewError(err.Kind.Code(), err.Span, err.Error())
	if sp, msg, ok := openerOf(err); ok {
		d = d.WithNote(sp, msg)
	}
	lx.opts.Reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
}

// openerOf указывает на открывающий разделитель незакрытой строки или комментария.
func openerOf(err *Error) (source.Span, string, bool) {
	var width source.BytePos
	var msg string
	switch err.Kind {
	case UnclosedString:
		width, msg = 1, "string starts here"
	case UnclosedMutlilineComment:
		width, msg = 2, "comment starts here"
	default:
		return source.Span{}, "", false
	}
	sp := err.Span
	sp.End = min(sp.Start+width, sp.End)
	return sp, msg, true
}
