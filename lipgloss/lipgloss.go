// Package lipgloss paints a [newspro.Document] as ANSI-styled terminal text
// using lipgloss for styling.
package lipgloss

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/gknews/newspro"
)

const defaultWidth = 80

// Painter renders documents with a fixed theme and lipgloss renderer.
type Painter struct {
	renderer *lipgloss.Renderer
	styles   styles
}

// Option configures a [Painter].
type Option func(*Painter)

// WithRenderer sets the lipgloss renderer, and with it the color profile.
// A renderer with the Ascii profile produces plain text.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(p *Painter) { p.renderer = r }
}

// New creates a Painter for theme.
func New(theme newspro.Theme, opts ...Option) *Painter {
	p := &Painter{renderer: lipgloss.DefaultRenderer()}
	for _, o := range opts {
		o(p)
	}
	p.styles = newStyles(p.renderer, theme)
	return p
}

// Paint renders doc with the default renderer. Paragraphs and list items
// are word-wrapped to width; code blocks are never reflowed.
func Paint(doc newspro.Document, width int, theme newspro.Theme) string {
	return New(theme).Paint(doc, width)
}

type styles struct {
	heading  [4]lipgloss.Style
	accent   lipgloss.Style
	muted    lipgloss.Style
	link     lipgloss.Style
	code     lipgloss.Style
	codeSpan lipgloss.Style
	quote    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, t newspro.Theme) styles {
	accent := r.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true)
	return styles{
		heading: [4]lipgloss.Style{
			1: accent.Underline(true),
			2: accent,
			3: r.NewStyle().Foreground(ansiColor(t.Accent)),
		},
		accent:   accent,
		muted:    r.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		link:     r.NewStyle().Foreground(ansiColor(t.Link)).Underline(true),
		code:     r.NewStyle().Foreground(ansiColor(t.Code)),
		codeSpan: r.NewStyle().Foreground(ansiColor(t.Code)).Background(ansiColor(t.CodeBg)),
		quote:    r.NewStyle().Foreground(ansiColor(t.Quote)),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
