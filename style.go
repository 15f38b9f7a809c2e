package newspro

import "fmt"

// Style is an inline style. The declaration order is the precedence order:
// earlier styles claim overlapping ranges before later ones.
type Style int

const (
	StyleBold Style = iota
	StyleItalic
	StyleCode
	StyleLink
	StyleStrikethrough
)

var styleNames = [...]string{
	StyleBold:          "bold",
	StyleItalic:        "italic",
	StyleCode:          "code",
	StyleLink:          "link",
	StyleStrikethrough: "strikethrough",
}

// String returns the stable name of the style.
func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return fmt.Sprintf("Style(%d)", int(s))
	}
	return styleNames[s]
}

// ParseStyle is the inverse of [Style.String].
func ParseStyle(s string) (Style, error) {
	for i, name := range styleNames {
		if name == s {
			return Style(i), nil
		}
	}
	return 0, fmt.Errorf("unknown style %q: %w", s, ErrValidation)
}

// InlineSegment is a styled range within a unit of text. Start and End are
// half-open byte offsets into that text: 0 <= Start < End <= len(text).
// Content is the text shown for the segment with its markers removed; for
// links it is the label and URL holds the destination.
type InlineSegment struct {
	Start   int
	End     int
	Content string
	Style   Style
	URL     string
}

// Overlaps reports whether s and o share at least one byte.
func (s InlineSegment) Overlaps(o InlineSegment) bool {
	return s.Start < o.End && o.Start < s.End
}
