// Package goldmark formats markdown into a [newspro.Document] using the
// CommonMark parser from goldmark. Unlike the builtin formatter it follows
// CommonMark: emphasis nests, code spans are not padded and ordered lists
// keep their start number.
package goldmark

import (
	"github.com/gknews/newspro"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Interface compliance check.
var _ newspro.Formatter = Formatter{}

// Formatter implements [newspro.Formatter] with [Format].
type Formatter struct{}

// Format implements [newspro.Formatter].
func (Formatter) Format(source string) newspro.Document {
	return Format(source)
}

// Format parses source and converts the resulting AST into a Document.
func Format(source string) newspro.Document {
	if source == "" {
		return newspro.Document{}
	}
	src := []byte(source)
	p := goldmark.New(goldmark.WithExtensions(extension.Strikethrough)).Parser()
	doc := p.Parse(text.NewReader(src))

	b := &builder{source: src}
	return newspro.Document{Blocks: b.blocks(doc)}
}
