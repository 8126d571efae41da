package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestColoredPlain(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "1.2.3-rc1"
	if got := Colored(); got != "1.2.3-rc1" {
		t.Errorf("Colored() = %q", got)
	}
	Version = "weird"
	if got := Colored(); got != "weird" {
		t.Errorf("Colored() = %q", got)
	}
}

func TestLongIncludesOptionalFields(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	origCommit, origDate := GitCommit, BuildDate
	t.Cleanup(func() { GitCommit, BuildDate = origCommit, origDate })

	GitCommit, BuildDate = "", ""
	if strings.Contains(Long(), "commit:") {
		t.Error("empty commit must be omitted")
	}
	GitCommit, BuildDate = "abc123", "2024-01-15T10:30:00Z"
	out := Long()
	for _, want := range []string{"ukl ", "commit: abc123", "built:  2024-01-15"} {
		if !strings.Contains(out, want) {
			t.Errorf("Long() missing %q:\n%s", want, out)
		}
	}
}
