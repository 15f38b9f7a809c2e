package newspro

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so rendered
// articles match any color scheme. A negative index means no color.
type Theme struct {
	Accent int // Headings, list numbers
	Muted  int // Gutters, link URLs, status bar
	Link   int // Link labels
	Code   int // Inline and block code text
	CodeBg int // Inline code background
	Quote  int // Quote glyph and text
	Error  int // Error messages
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Accent: 5,
		Muted:  8,
		Link:   4,
		Code:   3,
		CodeBg: 0,
		Quote:  6,
		Error:  1,
	}
}
