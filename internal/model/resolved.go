package model

import "strings"

// ResolvedText is the text found at a screen point plus the bounds of the
// element that owns it.
//
// An empty Text always comes with the zero Rect, and a zero Rect always
// comes with an empty Text. Use NewResolvedText to keep the pairing.
type ResolvedText struct {
	Text string `yaml:"text" json:"text"`
	Rect Rect   `yaml:"rect" json:"rect"`
}

// Empty returns the canonical "no text here" result.
func Empty() ResolvedText {
	return ResolvedText{}
}

// NewResolvedText pairs text with rect. Blank text or a zero rect
// yields Empty().
func NewResolvedText(text string, rect Rect) ResolvedText {
	if strings.TrimSpace(text) == "" || rect.IsZero() {
		return Empty()
	}
	return ResolvedText{Text: text, Rect: rect}
}

// IsEmpty reports whether r carries no text.
func (r ResolvedText) IsEmpty() bool {
	return r.Text == ""
}
