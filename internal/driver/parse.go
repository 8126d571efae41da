package driver

import (
	"context"
	"fmt"

	"ukl/internal/diag"
	"ukl/internal/lexer"
	"ukl/internal/parser"
	"ukl/internal/source"
	"ukl/internal/token"
	"ukl/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Count   int // значимых токенов до EOF или до ошибки
	Bag     *diag.Bag
	// Err - ошибка, прервавшая разбор (лексическая или отмена контекста).
	Err error
}

// Parse loads path and drains it through the stub parser.
// The first lexical error is fatal for the file; see ParseResult.Err.
func Parse(ctx context.Context, path string, opts Options, onToken func(source.Spanned[token.Token])) (*ParseResult, error) {
	fs := source.NewFileSet()
	fs.SetNFC(opts.NFC)

	fileID, err := loadFile(ctx, fs, path, opts)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}

	ctx, span := trace.BeginCtx(ctx, trace.ScopePass, "parse")
	idx := opts.Timer.Begin("parse " + source.BaseName(path))

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	p := parser.New(lx, parser.Options{Reporter: reporter, OnToken: onToken})
	count, perr := p.Drain(ctx)

	opts.Timer.End(idx, fmt.Sprintf("%d tokens", count))
	span.WithExtra("tokens", fmt.Sprint(count)).End(errDetail(perr))

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Count:   count,
		Bag:     bag,
		Err:     perr,
	}, nil
}
