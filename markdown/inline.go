package markdown

import (
	"regexp"
	"slices"
	"sort"

	"github.com/gknews/newspro"
)

// stylePass scans text for one inline style.
type stylePass struct {
	style newspro.Style
	re    *regexp.Regexp
}

// stylePasses run in precedence order. A later pass cannot claim bytes
// already claimed by an earlier one.
var stylePasses = []stylePass{
	{newspro.StyleBold, regexp.MustCompile(`\*\*(.*?)\*\*`)},
	{newspro.StyleItalic, regexp.MustCompile(`\*(.*?)\*|_(.*?)_`)},
	{newspro.StyleCode, regexp.MustCompile("`(.*?)`")},
	{newspro.StyleLink, regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)},
	{newspro.StyleStrikethrough, regexp.MustCompile(`~~(.*?)~~`)},
}

// segment builds the InlineSegment for submatch indices m of text.
func (p stylePass) segment(text string, m []int) newspro.InlineSegment {
	seg := newspro.InlineSegment{Start: m[0], End: m[1], Style: p.style}
	switch p.style {
	case newspro.StyleItalic:
		if m[2] >= 0 {
			seg.Content = text[m[2]:m[3]]
		} else {
			seg.Content = text[m[4]:m[5]]
		}
	case newspro.StyleLink:
		seg.Content = text[m[2]:m[3]]
		seg.URL = text[m[4]:m[5]]
	default:
		seg.Content = text[m[2]:m[3]]
	}
	return seg
}

// span is a claimed half-open byte range.
type span struct{ start, end int }

// claimSet holds claimed ranges sorted by start. Claims never overlap, so
// ends are sorted too.
type claimSet struct {
	spans []span
}

// claim records [start,end) and reports true unless it touches a range
// claimed earlier.
func (c *claimSet) claim(start, end int) bool {
	i := sort.Search(len(c.spans), func(i int) bool { return c.spans[i].end > start })
	if i < len(c.spans) && c.spans[i].start < end {
		return false
	}
	c.spans = slices.Insert(c.spans, i, span{start, end})
	return true
}

// Extract finds the inline segments of text. Each style pass scans the
// original text; matches that overlap a segment accepted by an earlier
// pass are dropped and their markers stay literal. The result is in
// acceptance order, not position order.
func Extract(text string) []newspro.InlineSegment {
	if text == "" {
		return nil
	}
	var (
		claims   claimSet
		segments []newspro.InlineSegment
	)
	for _, p := range stylePasses {
		for _, m := range p.re.FindAllStringSubmatchIndex(text, -1) {
			if !claims.claim(m[0], m[1]) {
				continue
			}
			segments = append(segments, p.segment(text, m))
		}
	}
	return segments
}
