package ui

import (
	"strings"
	"testing"

	"ukl/internal/driver"
)

func TestApplyEventUpdatesStatus(t *testing.T) {
	files := []string{"a.ukl", "b.ukl"}
	m := NewProgressModel("tokenize", files, nil).(*progressModel)

	m.applyEvent(driver.ProgressEvent{Path: "a.ukl", Status: driver.ProgressWorking})
	if got := m.percent(); got != 0.25 {
		t.Fatalf("percent = %v, want 0.25", got)
	}
	m.applyEvent(driver.ProgressEvent{Path: "a.ukl", Status: driver.ProgressDone, Tokens: 7})
	m.applyEvent(driver.ProgressEvent{Path: "b.ukl", Status: driver.ProgressFailed, Tokens: 2})
	m.applyEvent(driver.ProgressEvent{Path: "unknown.ukl", Status: driver.ProgressDone})

	if m.finished() != 2 || m.percent() != 1.0 {
		t.Fatalf("finished=%d percent=%v", m.finished(), m.percent())
	}
	view := m.View()
	for _, want := range []string{"(2/2)", "a.ukl", "7 tokens", "error"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestDoneOnClosedChannel(t *testing.T) {
	events := make(chan driver.ProgressEvent)
	close(events)
	m := NewProgressModel("tokenize", []string{"a.ukl"}, events).(*progressModel)
	msg := m.listenForEvent()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("expected doneMsg, got %T", msg)
	}
	m.Update(msg)
	if !m.done {
		t.Fatal("model must be done after channel close")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncate("a/very/long/path/file.ukl", 10); got != "a/very/..." {
		t.Errorf("got %q", got)
	}
	if got := truncate("日本語のパス", 5); got != "日..." {
		t.Errorf("got %q", got)
	}
}
