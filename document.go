package newspro

import "strings"

// Text of the structural runs formatters inject.
const (
	BlockSeparator = "\n\n" // RunSeparator between blocks
	LineBreak      = "\n"   // RunBreak between list items and quote lines
	QuoteGlyph     = "❝ "   // RunMarker before each quote line
	BulletGlyph    = "• "   // RunMarker before each unordered item
)

// Block is one classified block with its runs in display order.
type Block struct {
	Kind     BlockKind
	Runs     []StyledRun
	Language string // code blocks only; empty when no known tag was given
}

// Text concatenates the text of every run in the block.
func (b Block) Text() string {
	var sb strings.Builder
	for _, r := range b.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Content concatenates only the RunText runs, dropping injected structure.
func (b Block) Content() string {
	var sb strings.Builder
	for _, r := range b.Runs {
		if r.Kind == RunText {
			sb.WriteString(r.Text)
		}
	}
	return sb.String()
}

// Document is the result of formatting one source text.
type Document struct {
	Blocks []Block
}

// Runs flattens the document into one ordered run sequence with a
// RunSeparator run between consecutive blocks.
func (d Document) Runs() []StyledRun {
	var n int
	for _, b := range d.Blocks {
		n += len(b.Runs) + 1
	}
	runs := make([]StyledRun, 0, n)
	for i, b := range d.Blocks {
		if i > 0 {
			runs = append(runs, StyledRun{Text: BlockSeparator, Kind: RunSeparator})
		}
		runs = append(runs, b.Runs...)
	}
	return runs
}

// Text concatenates the text of [Document.Runs].
func (d Document) Text() string {
	var sb strings.Builder
	for _, r := range d.Runs() {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Formatter turns raw text into a Document. Implementations must be total:
// every input, however malformed, yields a Document.
type Formatter interface {
	Format(source string) Document
}
