//go:build windows && (amd64 || arm64)

package windows

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Clipboard implements platform.ClipboardManager using the Win32 clipboard.
type Clipboard struct{}

// NewClipboard returns a new Clipboard instance.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

// GetText reads the current text content from the clipboard.
func (c *Clipboard) GetText() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}

// SetText writes text to the clipboard.
func (c *Clipboard) SetText(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}
