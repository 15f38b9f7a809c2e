package markdown

import (
	"cmp"
	"slices"

	"github.com/gknews/newspro"
)

// Resolve walks text and emits literal runs for the gaps between segments
// and styled runs for the segments themselves. Segments are ordered by
// Start; any that are out of range or overlap an earlier one are ignored.
// Without segments the whole text is one literal run.
func Resolve(text string, segments []newspro.InlineSegment) []newspro.StyledRun {
	if text == "" {
		return nil
	}
	sorted := slices.Clone(segments)
	slices.SortStableFunc(sorted, func(a, b newspro.InlineSegment) int {
		return cmp.Compare(a.Start, b.Start)
	})

	var runs []newspro.StyledRun
	cursor := 0
	for _, seg := range sorted {
		if seg.Start < cursor || seg.End > len(text) || seg.Start >= seg.End {
			continue
		}
		if seg.Start > cursor {
			runs = append(runs, newspro.StyledRun{Text: text[cursor:seg.Start]})
		}
		runs = append(runs, styledRun(seg))
		cursor = seg.End
	}
	if cursor < len(text) {
		runs = append(runs, newspro.StyledRun{Text: text[cursor:]})
	}
	return runs
}

func styledRun(seg newspro.InlineSegment) newspro.StyledRun {
	run := newspro.StyledRun{Text: seg.Content}
	switch seg.Style {
	case newspro.StyleBold:
		run.Bold = true
	case newspro.StyleItalic:
		run.Italic = true
	case newspro.StyleCode:
		// One space of padding on each side of inline code.
		run.Monospace = true
		run.Text = " " + seg.Content + " "
	case newspro.StyleLink:
		run.LinkURL = seg.URL
	case newspro.StyleStrikethrough:
		run.Strikethrough = true
	}
	return run
}
