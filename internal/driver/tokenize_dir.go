package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"ukl/internal/diag"
	"ukl/internal/source"
	"ukl/internal/token"
	"ukl/internal/trace"
)

// SourceExt - расширение исходников unknown-lang.
const SourceExt = ".ukl"

// TokenizeDirResult содержит результат токенизации одного файла
type TokenizeDirResult struct {
	Path   string        // путь к файлу
	FileID source.FileID // ID файла в FileSet (не валиден, если файл не загрузился)
	Tokens []source.Spanned[token.Token]
	Bag    *diag.Bag
	LexErr error
	Cached bool
}

// ProgressStatus - стадия обработки файла.
type ProgressStatus uint8

const (
	ProgressQueued ProgressStatus = iota
	ProgressWorking
	ProgressDone
	ProgressFailed
)

func (s ProgressStatus) String() string {
	switch s {
	case ProgressQueued:
		return "queued"
	case ProgressWorking:
		return "working"
	case ProgressDone:
		return "done"
	case ProgressFailed:
		return "failed"
	}
	return "unknown"
}

// ProgressEvent сообщает о смене стадии одного файла.
type ProgressEvent struct {
	Path   string
	Status ProgressStatus
	Tokens int
	Err    error
}

// ProgressSink receives events from worker goroutines; it must be safe for
// concurrent calls. A nil sink is allowed.
type ProgressSink func(ProgressEvent)

func (s ProgressSink) emit(ev ProgressEvent) {
	if s != nil {
		s(ev)
	}
}

// ListSourceFiles возвращает отсортированный список всех *.ukl файлов в директории
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// TokenizeDir токенизирует все *.ukl файлы в директории параллельно.
// Каждый файл получает свой Lexer и свой Bag; FileSet заполняется заранее,
// поэтому горутины только читают его.
func TokenizeDir(ctx context.Context, dir string, opts Options, jobs int, sink ProgressSink) (*source.FileSet, []TokenizeDirResult, error) {
	ctx, span := trace.BeginCtx(ctx, trace.ScopeDriver, "tokenize-dir")
	defer span.End("")

	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	fileSet.SetNFC(opts.NFC)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		sink.emit(ProgressEvent{Path: path, Status: ProgressQueued})
		fileID, err := loadFile(ctx, fileSet, path, opts)
		if err != nil {
			// Сохраняем ошибку загрузки для последующей обработки
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]TokenizeDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sink.emit(ProgressEvent{Path: path, Status: ProgressWorking})

			if loadErr, hadError := loadErrors[path]; hadError {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: source.NoFileID}, loadErr.Error()))
				results[i] = TokenizeDirResult{Path: path, Bag: bag, LexErr: loadErr}
				sink.emit(ProgressEvent{Path: path, Status: ProgressFailed, Err: loadErr})
				return nil
			}

			fctx, fspan := trace.BeginCtx(gctx, trace.ScopeFile, "file:"+source.BaseName(path))
			res, err := tokenizeLoaded(fctx, fileSet, fileSet.Get(fileIDs[path]), opts)
			fspan.End("")
			if err != nil {
				return err
			}

			results[i] = TokenizeDirResult{
				Path:   path,
				FileID: res.File.ID,
				Tokens: res.Tokens,
				Bag:    res.Bag,
				LexErr: res.LexErr,
				Cached: res.Cached,
			}
			status := ProgressDone
			if res.LexErr != nil {
				status = ProgressFailed
			}
			sink.emit(ProgressEvent{Path: path, Status: status, Tokens: len(res.Tokens), Err: res.LexErr})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
