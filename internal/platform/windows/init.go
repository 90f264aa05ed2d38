//go:build windows && (amd64 || arm64)

package windows

import (
	"fmt"

	"github.com/mj1618/grabtext/internal/platform"
)

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		automation, err := NewAutomation()
		if err != nil {
			return nil, fmt.Errorf("UI Automation unavailable: %w", err)
		}
		desktop := NewDesktop()
		return &platform.Provider{
			Name:      "windows",
			Strategy:  platform.StrategyFlat,
			Cursor:    desktop,
			Windows:   desktop,
			Lookup:    automation,
			Clipboard: NewClipboard(),
			Close:     automation.Close,
		}, nil
	}
}
