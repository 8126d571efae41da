package driver

import (
	"context"
	"fmt"

	"ukl/internal/diag"
	"ukl/internal/lexer"
	"ukl/internal/source"
	"ukl/internal/token"
	"ukl/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []source.Spanned[token.Token] // включая финальный EOF, если до него дошли
	Bag     *diag.Bag
	// LexErr - первая лексическая ошибка (nil, если их не было).
	LexErr error
	// Cached сообщает, что токены взяты из TokenCache.
	Cached bool
}

// Failed reports whether lexing produced at least one error.
func (r *TokenizeResult) Failed() bool {
	return r != nil && r.LexErr != nil
}

// Tokenize loads path and lexes it. Lexical errors land in Bag and LexErr;
// the returned error is reserved for I/O and cancellation.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fs.SetNFC(opts.NFC)

	fileID, err := loadFile(ctx, fs, path, opts)
	if err != nil {
		return nil, err
	}
	return tokenizeLoaded(ctx, fs, fs.Get(fileID), opts)
}

// TokenizeSource lexes an in-memory buffer, e.g. one REPL line.
func TokenizeSource(ctx context.Context, name string, content []byte, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, content)
	return tokenizeLoaded(ctx, fs, fs.Get(id), opts)
}

func loadFile(ctx context.Context, fs *source.FileSet, path string, opts Options) (source.FileID, error) {
	_, span := trace.BeginCtx(ctx, trace.ScopePass, "load")
	idx := opts.Timer.Begin("load " + source.BaseName(path))
	fileID, err := fs.Load(path)
	opts.Timer.End(idx, "")
	if err != nil {
		span.End(err.Error())
		return 0, fmt.Errorf("failed to load %s: %w", path, err)
	}
	span.WithExtra("bytes", fmt.Sprint(len(fs.Get(fileID).Content))).End("")
	return fileID, nil
}

func tokenizeLoaded(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) (*TokenizeResult, error) {
	bag := diag.NewBag(opts.MaxDiagnostics)
	res := &TokenizeResult{FileSet: fs, File: file, Bag: bag}

	if tokens, ok := opts.Cache.Lookup(file, opts); ok {
		res.Tokens = tokens
		res.Cached = true
		return res, nil
	}

	ctx, span := trace.BeginCtx(ctx, trace.ScopePass, "lex")
	idx := opts.Timer.Begin("lex " + source.BaseName(file.Path))

	tokens, lexErr := lexAll(ctx, file, bag, opts)

	opts.Timer.End(idx, fmt.Sprintf("%d tokens", len(tokens)))
	span.WithExtra("tokens", fmt.Sprint(len(tokens))).End(errDetail(lexErr))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.Tokens = tokens
	res.LexErr = lexErr
	if lexErr == nil {
		opts.Cache.Store(file, opts, tokens)
	}
	return res, nil
}

// lexAll тянет токены до EOF. Без KeepGoing останавливается на первой ошибке;
// Malformed-токен ошибки остаётся в потоке. Возвращает первую лексическую ошибку.
func lexAll(ctx context.Context, file *source.File, bag *diag.Bag, opts Options) ([]source.Spanned[token.Token], error) {
	adapter := &lexer.ReporterAdapter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: adapter.Reporter()})
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)

	var (
		tokens   []source.Spanned[token.Token]
		firstErr error
	)
	for tok, lexErr := range lx.Tokens(opts.Raw) {
		if ctx.Err() != nil {
			break
		}
		tokens = append(tokens, tok)
		if lexErr == nil {
			continue
		}
		trace.Point(tracer, trace.ScopeToken, "lex-error", fmt.Sprintf("%s: %v", tok.Span, lexErr), parent)
		if firstErr == nil {
			firstErr = lexErr
		}
		if !opts.KeepGoing {
			break
		}
	}
	return tokens, firstErr
}

func errDetail(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
