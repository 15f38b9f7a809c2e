package lipgloss

import (
	"strings"

	"github.com/gknews/newspro"
	"github.com/rivo/uniseg"
)

// Paint renders doc wrapped to width. A width of zero or less means 80.
func (p *Painter) Paint(doc newspro.Document, width int) string {
	if len(doc.Blocks) == 0 {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}
	var buf strings.Builder
	for i, b := range doc.Blocks {
		if i > 0 {
			buf.WriteString(newspro.BlockSeparator)
		}
		p.block(&buf, b, width)
	}
	return buf.String()
}

func (p *Painter) block(buf *strings.Builder, b newspro.Block, width int) {
	switch b.Kind {
	case newspro.BlockHeading1, newspro.BlockHeading2, newspro.BlockHeading3:
		style := p.styles.heading[b.Kind.HeadingLevel()]
		buf.WriteString(p.wrap(style.Render(b.Text()), width))

	case newspro.BlockCode:
		if b.Language != "" {
			buf.WriteString(p.styles.muted.Render(b.Language))
			buf.WriteString("\n")
		}
		gutter := p.styles.muted.Render("│") + " "
		for i, line := range strings.Split(b.Text(), "\n") {
			if i > 0 {
				buf.WriteString("\n")
			}
			buf.WriteString(gutter + p.styles.code.Render(line))
		}

	case newspro.BlockQuote, newspro.BlockUnorderedList, newspro.BlockOrderedList:
		for i, line := range splitLines(b.Runs) {
			if i > 0 {
				buf.WriteString("\n")
			}
			p.writeLine(buf, b.Kind, line, width)
		}

	default:
		// Paragraphs keep their source whitespace; blank edge lines are
		// not painted.
		buf.WriteString(strings.Trim(p.wrap(p.runs(b.Runs), width), "\n"))
	}
}

// splitLines cuts runs at RunBreak runs.
func splitLines(runs []newspro.StyledRun) [][]newspro.StyledRun {
	var (
		lines [][]newspro.StyledRun
		cur   []newspro.StyledRun
	)
	for _, r := range runs {
		if r.Kind == newspro.RunBreak {
			lines = append(lines, cur)
			cur = nil
			continue
		}
		cur = append(cur, r)
	}
	return append(lines, cur)
}

// writeLine writes one list item or quote line, wrapping continuation lines
// under the text rather than the marker.
func (p *Painter) writeLine(buf *strings.Builder, kind newspro.BlockKind, line []newspro.StyledRun, width int) {
	var marker string
	if len(line) > 0 && line[0].Kind == newspro.RunMarker {
		marker = line[0].Text
		line = line[1:]
	}
	prefixWidth := uniseg.StringWidth(marker)
	itemWidth := width - prefixWidth
	if itemWidth < 10 {
		itemWidth = 10
	}

	prefix := p.styles.accent.Render(marker)
	if kind == newspro.BlockQuote {
		prefix = p.styles.quote.Render(marker)
	}
	continuation := strings.Repeat(" ", prefixWidth)

	for i, l := range strings.Split(p.wrap(p.runs(line), itemWidth), "\n") {
		if i == 0 {
			buf.WriteString(prefix + l)
		} else {
			buf.WriteString("\n" + continuation + l)
		}
	}
}

// wrap word-wraps s to width and drops the padding lipgloss adds to
// short lines.
func (p *Painter) wrap(s string, width int) string {
	wrapped := p.renderer.NewStyle().Width(width).Render(s)
	lines := strings.Split(wrapped, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}

func (p *Painter) runs(runs []newspro.StyledRun) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(p.run(r))
	}
	return sb.String()
}

func (p *Painter) run(r newspro.StyledRun) string {
	if r.Plain() {
		return r.Text
	}
	style := p.renderer.NewStyle()
	switch {
	case r.LinkURL != "":
		style = p.styles.link
	case r.Monospace:
		style = p.styles.codeSpan
	}
	if r.Bold {
		style = style.Bold(true)
	}
	if r.Italic {
		style = style.Italic(true)
	}
	if r.Strikethrough {
		style = style.Strikethrough(true)
	}
	out := style.Render(r.Text)
	if r.LinkURL != "" && r.LinkURL != r.Text {
		out += " " + p.styles.muted.Render("("+r.LinkURL+")")
	}
	return out
}
