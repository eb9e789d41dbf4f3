package ui

import (
	"strings"
	"testing"
)

func TestColorizeLogLine_KeepsText(t *testing.T) {
	th := GetTheme("Dracula")
	line := "09:30:05 ERROR Error fetching recipes ingredients=[egg rice] – api /recipes/findByIngredients returned status 402"

	got := colorizeLogLine(th, line)
	for _, want := range []string{"09:30:05", "ERROR", "Error fetching recipes", "status 402"} {
		if !strings.Contains(got, want) {
			t.Fatalf("colorizeLogLine = %q, want it to contain %q", got, want)
		}
	}
}

func TestColorizeLogLine_UnknownShapeUnchanged(t *testing.T) {
	th := GetTheme("Dracula")
	for _, line := range []string{"", "plain", "not a level line"} {
		if got := colorizeLogLine(th, line); got != line {
			t.Fatalf("colorizeLogLine(%q) = %q, want unchanged", line, got)
		}
	}
}

func TestLevelColor(t *testing.T) {
	th := GetTheme("Slate")
	tests := map[string]string{
		"error": th.Danger,
		"WARN":  th.Warning,
		"debug": th.Info,
		"info":  th.Success,
		"trace": "",
	}
	for level, want := range tests {
		if got := th.levelColor(level); got != want {
			t.Fatalf("levelColor(%q) = %q, want %q", level, got, want)
		}
	}
}
