//go:build linux

package linux

import (
	"errors"
	"fmt"

	"github.com/mj1618/grabtext/internal/platform"
)

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		a11y, err := ConnectAccessibility()
		if err != nil {
			return nil, fmt.Errorf("accessibility unavailable: %w", err)
		}
		display, err := OpenDisplay()
		if err != nil {
			a11y.Close()
			return nil, err
		}
		return &platform.Provider{
			Name:          "linux",
			Strategy:      platform.StrategyStack,
			Cursor:        display,
			Windows:       display,
			Tree:          a11y,
			Screenshotter: display,
			Clipboard:     NewClipboard(),
			Close: func() error {
				return errors.Join(display.Close(), a11y.Close())
			},
		}, nil
	}
}
