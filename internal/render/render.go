// Package render turns the HTML fragments the recipe API returns into
// terminal text.
package render

import (
	"fmt"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/glamour"

	"github.com/five82/sous/internal/termtext"
)

// Mode selects how HTML is rendered.
type Mode int

const (
	// Plain strips all markup. It is the default.
	Plain Mode = iota
	// Rich converts markup to Markdown and renders it with glamour.
	Rich
)

func (m Mode) String() string {
	if m == Rich {
		return "rich"
	}
	return "plain"
}

// ModeFor maps a rich-text toggle to a Mode.
func ModeFor(rich bool) Mode {
	if rich {
		return Rich
	}
	return Plain
}

// Renderer renders HTML at a fixed wrap width.
type Renderer struct {
	mode  Mode
	width int
	style string
	term  *glamour.TermRenderer
}

// Options configure New.
type Options struct {
	Mode  Mode
	Width int
	Style string // glamour standard style; empty picks one from the terminal
}

// New builds a Renderer. A Rich renderer that glamour cannot initialise
// returns the error; callers typically fall back to Plain.
func New(opts Options) (*Renderer, error) {
	r := &Renderer{mode: opts.Mode, width: opts.Width, style: opts.Style}
	if r.width <= 0 {
		r.width = 80
	}
	if r.mode != Rich {
		return r, nil
	}

	styleOpt := glamour.WithAutoStyle()
	if r.style != "" {
		styleOpt = glamour.WithStandardStyle(r.style)
	}
	term, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(r.width))
	if err != nil {
		return nil, fmt.Errorf("init rich renderer: %w", err)
	}
	r.term = term
	return r, nil
}

// Mode reports the renderer's mode.
func (r *Renderer) Mode() Mode {
	if r == nil {
		return Plain
	}
	return r.mode
}

// Width reports the wrap width.
func (r *Renderer) Width() int {
	if r == nil {
		return 0
	}
	return r.width
}

// Render renders an HTML fragment. A failed rich render degrades to plain
// text and returns the error alongside it.
func (r *Renderer) Render(html string) (string, error) {
	if r == nil || r.mode != Rich || r.term == nil {
		return PlainText(html), nil
	}
	md, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return PlainText(html), fmt.Errorf("convert html: %w", err)
	}
	out, err := r.term.Render(termtext.Clean(md))
	if err != nil {
		return PlainText(html), fmt.Errorf("render markdown: %w", err)
	}
	return strings.Trim(out, "\n"), nil
}

var (
	blockTags  = "p, div, li, h1, h2, h3, h4, h5, h6, tr, blockquote"
	spaceRun   = regexp.MustCompile(`[ \t\f\r]+`)
	blankLines = regexp.MustCompile(`\n{3,}`)
)

// PlainText extracts readable text from an HTML fragment. Block elements and
// <br> become line breaks, list items get a bullet, and everything else is
// dropped, scripts and styles included. Terminal escape sequences and
// control characters in the text are removed.
func PlainText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(termtext.Clean(html))
	}

	doc.Find("script, style").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("• ")
	})
	doc.Find(blockTags).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	text := termtext.Clean(doc.Find("body").Text())
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
	}
	text = strings.Join(lines, "\n")
	text = blankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
