//go:build linux

package linux

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Clipboard implements platform.ClipboardManager. It shells out to xclip,
// xsel or wl-copy, whichever is installed.
type Clipboard struct{}

// NewClipboard returns a new Clipboard instance.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

// GetText reads the current text content from the clipboard.
func (c *Clipboard) GetText() (string, error) {
	if clipboard.Unsupported {
		return "", fmt.Errorf("clipboard: no xclip, xsel or wl-clipboard found")
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}

// SetText writes text to the clipboard.
func (c *Clipboard) SetText(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard: no xclip, xsel or wl-clipboard found")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}
