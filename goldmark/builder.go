package goldmark

import (
	"strconv"
	"strings"

	"github.com/gknews/newspro"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

type builder struct {
	source []byte
}

func (b *builder) blocks(node ast.Node) []newspro.Block {
	var out []newspro.Block
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, b.block(c)...)
	}
	return out
}

func (b *builder) block(node ast.Node) []newspro.Block {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return []newspro.Block{{Kind: newspro.BlockParagraph, Runs: b.inline(n, newspro.StyledRun{})}}

	case *ast.Heading:
		kind := newspro.BlockHeading3
		switch n.Level {
		case 1:
			kind = newspro.BlockHeading1
		case 2:
			kind = newspro.BlockHeading2
		}
		title := plainText(b.inline(n, newspro.StyledRun{}))
		run := newspro.StyledRun{Text: title, Bold: true, Heading: kind.HeadingLevel()}
		return []newspro.Block{{Kind: kind, Runs: []newspro.StyledRun{run}}}

	case *ast.Blockquote:
		return []newspro.Block{{Kind: newspro.BlockQuote, Runs: b.quote(n)}}

	case *ast.List:
		kind := newspro.BlockUnorderedList
		if n.IsOrdered() {
			kind = newspro.BlockOrderedList
		}
		return []newspro.Block{{Kind: kind, Runs: b.list(n, 0)}}

	case *ast.FencedCodeBlock:
		return []newspro.Block{{
			Kind:     newspro.BlockCode,
			Runs:     []newspro.StyledRun{{Text: b.lines(n), Monospace: true}},
			Language: string(n.Language(b.source)),
		}}

	case *ast.CodeBlock:
		return []newspro.Block{{
			Kind: newspro.BlockCode,
			Runs: []newspro.StyledRun{{Text: b.lines(n), Monospace: true}},
		}}

	case *ast.HTMLBlock:
		raw := strings.TrimRight(b.lines(n), "\n")
		if raw == "" {
			return nil
		}
		return []newspro.Block{{Kind: newspro.BlockParagraph, Runs: []newspro.StyledRun{{Text: raw}}}}

	case *ast.ThematicBreak:
		return nil

	default:
		return b.blocks(node)
	}
}

// quote emits one glyph-prefixed line per paragraph line in the quote.
// Other children are flattened onto their own lines: their breaks start
// new quote lines and their markers become italic text after the glyph.
func (b *builder) quote(n *ast.Blockquote) []newspro.StyledRun {
	var runs []newspro.StyledRun
	newLine := func() {
		if len(runs) > 0 {
			runs = append(runs, newspro.StyledRun{Text: newspro.LineBreak, Kind: newspro.RunBreak})
		}
		runs = append(runs, newspro.StyledRun{Text: newspro.QuoteGlyph, Kind: newspro.RunMarker})
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		var content []newspro.StyledRun
		if _, ok := c.(*ast.Paragraph); ok {
			content = b.inline(c, newspro.StyledRun{Italic: true})
		} else {
			for _, blk := range b.block(c) {
				for _, r := range blk.Runs {
					if r.Kind == newspro.RunText {
						r.Italic = true
					}
					content = append(content, r)
				}
			}
		}
		newLine()
		for _, r := range content {
			switch r.Kind {
			case newspro.RunBreak, newspro.RunSeparator:
				newLine()
				continue
			case newspro.RunMarker:
				r = newspro.StyledRun{Text: r.Text, Italic: true}
			}
			if !strings.Contains(r.Text, "\n") {
				runs = append(runs, r)
				continue
			}
			parts := strings.Split(r.Text, "\n")
			for i, part := range parts {
				if i > 0 {
					newLine()
				}
				if part != "" {
					r.Text = part
					runs = append(runs, r)
				}
			}
		}
	}
	return merge(runs)
}

// list emits marker-prefixed items; nested lists follow their parent item
// with two spaces of indent per level.
func (b *builder) list(n *ast.List, depth int) []newspro.StyledRun {
	var runs []newspro.StyledRun
	indent := strings.Repeat("  ", depth)
	num := n.Start
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		marker := newspro.BulletGlyph
		if n.IsOrdered() {
			marker = strconv.Itoa(num) + ". "
			num++
		}
		if len(runs) > 0 {
			runs = append(runs, newspro.StyledRun{Text: newspro.LineBreak, Kind: newspro.RunBreak})
		}
		runs = append(runs, newspro.StyledRun{Text: indent + marker, Kind: newspro.RunMarker})

		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			switch in := ic.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				runs = append(runs, b.inline(in, newspro.StyledRun{})...)
			case *ast.List:
				runs = append(runs, newspro.StyledRun{Text: newspro.LineBreak, Kind: newspro.RunBreak})
				runs = append(runs, b.list(in, depth+1)...)
			default:
				for _, blk := range b.block(ic) {
					runs = append(runs, blk.Runs...)
				}
			}
		}
	}
	return runs
}

func (b *builder) lines(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		sb.Write(line.Value(b.source))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// inline converts the inline children of a block node. style carries the
// attributes every run starts from.
func (b *builder) inline(node ast.Node, style newspro.StyledRun) []newspro.StyledRun {
	return trimTrailingBreak(merge(b.children(node, style)))
}

func (b *builder) children(node ast.Node, style newspro.StyledRun) []newspro.StyledRun {
	var runs []newspro.StyledRun
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		runs = append(runs, b.inlineNode(c, style)...)
	}
	return runs
}

func (b *builder) inlineNode(node ast.Node, style newspro.StyledRun) []newspro.StyledRun {
	switch n := node.(type) {
	case *ast.Text:
		runs := withText(style, string(n.Segment.Value(b.source)))
		if n.SoftLineBreak() || n.HardLineBreak() {
			runs = append(runs, withText(style, "\n")...)
		}
		return runs

	case *ast.String:
		return withText(style, string(n.Value))

	case *ast.Emphasis:
		if n.Level == 1 {
			style.Italic = true
		} else {
			style.Bold = true
		}
		return b.children(n, style)

	case *ast.CodeSpan:
		style.Monospace = true
		return b.children(n, style)

	case *ast.Link:
		style.LinkURL = string(n.Destination)
		return b.children(n, style)

	case *ast.Image:
		style.LinkURL = string(n.Destination)
		return b.children(n, style)

	case *ast.AutoLink:
		style.LinkURL = string(n.URL(b.source))
		return withText(style, string(n.Label(b.source)))

	case *extast.Strikethrough:
		style.Strikethrough = true
		return b.children(n, style)

	case *ast.RawHTML:
		var sb strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			sb.Write(seg.Value(b.source))
		}
		return withText(style, sb.String())

	default:
		return b.children(node, style)
	}
}

func withText(style newspro.StyledRun, s string) []newspro.StyledRun {
	if s == "" {
		return nil
	}
	style.Text = s
	return []newspro.StyledRun{style}
}

// merge joins adjacent content runs with identical attributes. goldmark
// splits text at every delimiter it considered, which would otherwise
// leave runs of one or two characters.
func merge(runs []newspro.StyledRun) []newspro.StyledRun {
	var out []newspro.StyledRun
	for _, r := range runs {
		if n := len(out); n > 0 && sameStyle(out[n-1], r) && r.Kind == newspro.RunText {
			out[n-1].Text += r.Text
			continue
		}
		out = append(out, r)
	}
	return out
}

func sameStyle(a, b newspro.StyledRun) bool {
	a.Text, b.Text = "", ""
	return a == b
}

func trimTrailingBreak(runs []newspro.StyledRun) []newspro.StyledRun {
	if n := len(runs); n > 0 && runs[n-1].Kind == newspro.RunText {
		runs[n-1].Text = strings.TrimRight(runs[n-1].Text, "\n")
		if runs[n-1].Text == "" {
			runs = runs[:n-1]
		}
	}
	return runs
}

func plainText(runs []newspro.StyledRun) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}
