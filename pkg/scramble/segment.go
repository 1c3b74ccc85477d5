package scramble

import (
	"html"
	"strings"
)

// Segment is a run of displayed text. Accent runs are in-flight scrambled
// glyphs and are drawn in the accent color.
type Segment struct {
	Text   string
	Accent bool
}

// Segments is the displayed content of a host, in order.
type Segments []Segment

// appendPlain adds plain text, merging it into a trailing plain segment.
func (s Segments) appendPlain(text string) Segments {
	if text == "" {
		return s
	}
	if n := len(s); n > 0 && !s[n-1].Accent {
		s[n-1].Text += text
		return s
	}
	return append(s, Segment{Text: text})
}

// Plain returns the content without styling.
func (s Segments) Plain() string {
	var b strings.Builder
	for _, seg := range s {
		b.WriteString(seg.Text)
	}
	return b.String()
}

// Markup returns the content as HTML, each accent run wrapped in a span
// with the given class.
func (s Segments) Markup(accentClass string) string {
	var b strings.Builder
	for _, seg := range s {
		if seg.Accent {
			b.WriteString(`<span class="`)
			b.WriteString(html.EscapeString(accentClass))
			b.WriteString(`">`)
			b.WriteString(html.EscapeString(seg.Text))
			b.WriteString(`</span>`)
			continue
		}
		b.WriteString(html.EscapeString(seg.Text))
	}
	return b.String()
}

// AccentCount returns the number of accent segments.
func (s Segments) AccentCount() int {
	n := 0
	for _, seg := range s {
		if seg.Accent {
			n++
		}
	}
	return n
}
