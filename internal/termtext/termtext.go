// Package termtext makes remote text safe to print on a terminal.
package termtext

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// Clean removes ANSI escape sequences (CSI, OSC, DCS and the rest) and any
// remaining C0/C1 control characters except newline and tab. A carriage
// return becomes a newline only as part of CRLF; a lone one is dropped.
func Clean(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// CleanLine is Clean for single-line fields such as titles: line breaks and
// tabs become spaces.
func CleanLine(s string) string {
	s = Clean(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return ' '
		}
		return r
	}, s)
}
