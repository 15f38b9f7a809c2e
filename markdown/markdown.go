// Package markdown formats the loosely structured markdown produced by text
// generation services into a [newspro.Document].
//
// The engine is deliberately forgiving: it never fails, and anything it
// does not recognize is kept as literal text. Inline styles do not nest;
// the first style (in [newspro.Style] order) to claim a range wins.
package markdown

import (
	"strconv"

	"github.com/gknews/newspro"
)

// Interface compliance check.
var _ newspro.Formatter = Formatter{}

// Formatter implements [newspro.Formatter] with [Format].
type Formatter struct{}

// Format implements [newspro.Formatter].
func (Formatter) Format(source string) newspro.Document {
	return Format(source)
}

// Format splits source into blocks and returns their styled runs in source
// order. Empty input yields an empty Document.
func Format(source string) newspro.Document {
	raw := segment(source)
	if len(raw) == 0 {
		return newspro.Document{}
	}
	doc := newspro.Document{Blocks: make([]newspro.Block, 0, len(raw))}
	for _, rb := range raw {
		doc.Blocks = append(doc.Blocks, assemble(rb))
	}
	return doc
}

// Inline runs the extractor and resolver over one unit of text.
func Inline(text string) []newspro.StyledRun {
	return Resolve(text, Extract(text))
}

func assemble(rb rawBlock) newspro.Block {
	b := newspro.Block{Kind: rb.kind}
	switch rb.kind {
	case newspro.BlockHeading1, newspro.BlockHeading2, newspro.BlockHeading3:
		b.Runs = []newspro.StyledRun{{Text: rb.text, Bold: true, Heading: rb.kind.HeadingLevel()}}
	case newspro.BlockQuote:
		b.Runs = lineRuns(rb.lines, func(int) string { return newspro.QuoteGlyph }, true)
	case newspro.BlockUnorderedList:
		b.Runs = lineRuns(rb.lines, func(int) string { return newspro.BulletGlyph }, false)
	case newspro.BlockOrderedList:
		b.Runs = lineRuns(rb.lines, func(i int) string { return strconv.Itoa(i+1) + ". " }, false)
	case newspro.BlockCode:
		b.Language = rb.lang
		b.Runs = []newspro.StyledRun{{Text: rb.text, Monospace: true}}
	default:
		b.Runs = Inline(rb.text)
	}
	return b
}

// lineRuns styles each line behind its marker and joins lines with
// RunBreak runs. italic ORs the italic preset into every content run.
func lineRuns(lines []string, marker func(i int) string, italic bool) []newspro.StyledRun {
	var runs []newspro.StyledRun
	for i, line := range lines {
		if i > 0 {
			runs = append(runs, newspro.StyledRun{Text: newspro.LineBreak, Kind: newspro.RunBreak})
		}
		runs = append(runs, newspro.StyledRun{Text: marker(i), Kind: newspro.RunMarker})
		for _, r := range Inline(line) {
			if italic {
				r.Italic = true
			}
			runs = append(runs, r)
		}
	}
	return runs
}
