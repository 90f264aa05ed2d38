// Package sanitize bounds resolved text before it reaches the clipboard,
// the printer, or any other consumer.
package sanitize

import (
	"strings"
	"unicode/utf8"

	"github.com/mj1618/grabtext/internal/model"
)

// Text trims s and truncates it to at most max code points.
// Whitespace-only input becomes "". A max of 0 or less disables truncation.
func Text(s string, max int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if max > 0 && utf8.RuneCountInString(s) > max {
		s = truncate(s, max)
		// Cutting may expose trailing whitespace; trim again so that
		// Text(Text(s)) == Text(s).
		s = strings.TrimSpace(s)
	}
	return s
}

// Result sanitizes r.Text. A result whose text vanishes becomes Empty().
func Result(r model.ResolvedText, max int) model.ResolvedText {
	return model.NewResolvedText(Text(r.Text, max), r.Rect)
}

func truncate(s string, max int) string {
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
