package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// levelColor maps a zap level name to a theme color.
func (t Theme) levelColor(level string) string {
	switch strings.ToUpper(level) {
	case "ERROR", "DPANIC", "PANIC", "FATAL":
		return t.Danger
	case "WARN":
		return t.Warning
	case "DEBUG":
		return t.Info
	case "INFO":
		return t.Success
	default:
		return ""
	}
}

// colorizeLogLine styles a formatted diagnostics line of the form
// "15:04:05 LEVEL message ...". Lines in any other shape come back as they are.
func colorizeLogLine(theme Theme, line string) string {
	fields := strings.SplitN(line, " ", 3)
	if len(fields) < 2 {
		return line
	}

	tsIdx := -1
	if len(fields[0]) == len("15:04:05") && strings.Count(fields[0], ":") == 2 {
		tsIdx = 0
	}
	levelIdx := tsIdx + 1
	color := theme.levelColor(fields[levelIdx])
	if color == "" {
		return line
	}

	var b strings.Builder
	if tsIdx == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Faint)).Render(fields[0]))
		b.WriteByte(' ')
	}
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(fields[levelIdx]))
	rest := strings.Join(fields[levelIdx+1:], " ")
	if rest != "" {
		b.WriteByte(' ')
		b.WriteString(rest)
	}
	return b.String()
}

func colorizeLogLines(theme Theme, lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = colorizeLogLine(theme, line)
	}
	return out
}
