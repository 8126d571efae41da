package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ukl/internal/diag"
	"ukl/internal/lexer"
	"ukl/internal/source"
	"ukl/internal/token"
)

func newParser(t *testing.T, src string, opts Options) (*Parser, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.ukl", []byte(src))
	bag := diag.NewBag(16)
	if opts.Reporter == nil {
		opts.Reporter = diag.BagReporter{Bag: bag}
	}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: opts.Reporter})
	return New(lx, opts), bag
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag.Len() == 0 {
		return "<none>"
	}
	lines := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		lines = append(lines, fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message))
	}
	return strings.Join(lines, "; ")
}

func TestDrainCountsMeaningfulTokens(t *testing.T) {
	var seen []token.Kind
	p, bag := newParser(t, "let x = 0x1F; // comment\n/* block */ x -> y", Options{
		OnToken: func(tok source.Spanned[token.Token]) { seen = append(seen, tok.Value.Kind) },
	})
	n, err := p.Drain(context.Background())
	require.NoError(t, err, diagnosticsSummary(bag))
	assert.Equal(t, 8, n)
	assert.Equal(t, []token.Kind{
		token.Ident, token.Ident, token.Assign, token.NumberLit, token.Semicolon,
		token.Ident, token.Arrow, token.Ident,
	}, seen)
	assert.Equal(t, 0, bag.Len())
}

func TestDrainEmpty(t *testing.T) {
	p, _ := newParser(t, "  // only comments\n", Options{})
	n, err := p.Drain(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDrainStopsAtFirstLexError(t *testing.T) {
	p, bag := newParser(t, "a b \"oops\\q\" c d", Options{})
	n, err := p.Drain(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, lexer.ErrUnknownEscapedCharacter))
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, p.Count())

	items := bag.Items()
	require.Len(t, items, 2, diagnosticsSummary(bag))
	assert.Equal(t, diag.LexUnknownEscape, items[0].Code)
	assert.Equal(t, diag.SynLexAborted, items[1].Code)
	assert.Equal(t, source.BytePos(4), p.LastSpan().Start)
}

func TestDrainHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p, _ := newParser(t, "a b c", Options{})
	n, err := p.Drain(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
}
