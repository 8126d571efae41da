package observ

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerReport(t *testing.T) {
	timer := NewTimer()
	idx := timer.Begin("lex")
	timer.End(idx, "12 tokens")
	timer.Record("parse", 3*time.Millisecond, "")

	report := timer.Report()
	require.Len(t, report.Phases, 2)
	assert.Equal(t, "lex", report.Phases[0].Name)
	assert.Equal(t, "12 tokens", report.Phases[0].Note)
	assert.InDelta(t, 3.0, report.Phases[1].DurationMS, 0.001)
	assert.GreaterOrEqual(t, report.TotalMS, 3.0)

	summary := timer.Summary()
	assert.Contains(t, summary, "// 12 tokens")
	assert.Contains(t, summary, "total")
}

func TestTimerConcurrent(t *testing.T) {
	timer := NewTimer()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			timer.End(timer.Begin("file"), "")
		}()
	}
	wg.Wait()
	assert.Len(t, timer.Report().Phases, 16)
}

func TestNilTimer(t *testing.T) {
	var timer *Timer
	timer.End(timer.Begin("x"), "")
	assert.Empty(t, timer.Report().Phases)
}
