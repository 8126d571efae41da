package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"ukl/internal/driver"
	"ukl/internal/source"
	"ukl/internal/ui"
)

type tokenizeDirOutcome struct {
	fileSet *source.FileSet
	results []driver.TokenizeDirResult
	err     error
}

// runTokenizeDirWithUI запускает TokenizeDir в фоне и рисует прогресс через
// bubbletea, пока канал событий не закроется.
func runTokenizeDirWithUI(ctx context.Context, title string, files []string, dir string, opts driver.Options, jobs int) (*source.FileSet, []driver.TokenizeDirResult, error) {
	events := make(chan driver.ProgressEvent, 256)
	outcomeCh := make(chan tokenizeDirOutcome, 1)

	go func() {
		sink := func(ev driver.ProgressEvent) { events <- ev }
		fs, res, err := driver.TokenizeDir(ctx, dir, opts, jobs, sink)
		outcomeCh <- tokenizeDirOutcome{fileSet: fs, results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// модель могла выйти раньше (ctrl+c), не даём воркерам заблокироваться
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
