package parser

import (
	"context"
	"fmt"

	"ukl/internal/diag"
	"ukl/internal/lexer"
	"ukl/internal/source"
	"ukl/internal/token"
)

// Options управляет заглушкой парсера.
type Options struct {
	// Reporter получает SynLexAborted, когда разбор прерван лексической ошибкой.
	Reporter diag.Reporter
	// OnToken вызывается для каждого значимого токена (без EOF); может быть nil.
	OnToken func(source.Spanned[token.Token])
}

// Parser - заглушка: грамматики пока нет, парсер только вытягивает значимые
// токены из лексера до EOF. Это первый потребитель потока Next.
type Parser struct {
	lx       *lexer.Lexer
	opts     Options
	count    int
	lastSpan source.Span // span последнего съеденного токена для диагностики
}

func New(lx *lexer.Lexer, opts Options) *Parser {
	return &Parser{lx: lx, opts: opts}
}

// Drain pulls meaningful tokens until EOF and returns how many were seen.
// The first lexical error stops the parser; ctx is checked between tokens.
func (p *Parser) Drain(ctx context.Context) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return p.count, err
		}
		tok, err := p.lx.NextSpanned()
		p.lastSpan = tok.Span
		if err != nil {
			diag.ReportError(p.opts.Reporter, diag.SynLexAborted, tok.Span,
				fmt.Sprintf("parsing stopped after %d tokens", p.count))
			return p.count, fmt.Errorf("parse aborted at %s: %w", tok.Span, err)
		}
		if tok.Value.Kind.IsEOF() {
			return p.count, nil
		}
		p.count++
		if p.opts.OnToken != nil {
			p.opts.OnToken(tok)
		}
	}
}

// Count returns the number of meaningful tokens consumed so far.
func (p *Parser) Count() int { return p.count }

// LastSpan returns the span of the last token pulled from the lexer.
func (p *Parser) LastSpan() source.Span { return p.lastSpan }
