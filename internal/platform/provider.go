package platform

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Strategy selects how a provider set resolves text at a point.
type Strategy int

const (
	// StrategyFlat asks the OS for the innermost element at the point.
	StrategyFlat Strategy = iota
	// StrategyStack walks windows front-to-back and searches each
	// application's tree.
	StrategyStack
)

func (s Strategy) String() string {
	switch s {
	case StrategyFlat:
		return "flat"
	case StrategyStack:
		return "stack"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// Provider bundles all platform backends for the current OS.
type Provider struct {
	Name     string
	Strategy Strategy

	Cursor        CursorLocator
	Windows       WindowStack
	Tree          Tree        // required by StrategyStack
	Lookup        PointLookup // required by StrategyFlat
	Screenshotter Screenshotter
	Clipboard     ClipboardManager

	// Close releases connections held by the backends.
	Close func() error
}

// Supported lists the GOOS values that register a provider.
var Supported = []string{"linux", "windows"}

// ErrUnsupported matches any *UnsupportedPlatformError via errors.Is.
var ErrUnsupported = errors.New("unsupported platform")

// UnsupportedPlatformError is returned when no backend is available for the
// host OS.
type UnsupportedPlatformError struct {
	Platform  string
	Supported []string
}

func (e *UnsupportedPlatformError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "The platform %q is unsupported!\n", e.Platform)
	b.WriteString("Currently supported platforms are:")
	for _, p := range e.Supported {
		b.WriteString("\n- ")
		b.WriteString(p)
	}
	return b.String()
}

func (e *UnsupportedPlatformError) Is(target error) bool {
	return target == ErrUnsupported
}

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/linux/init.go and internal/platform/windows/init.go.
var NewProviderFunc func() (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, &UnsupportedPlatformError{
			Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			Supported: Supported,
		}
	}
	p, err := NewProviderFunc()
	if err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		if p.Close != nil {
			_ = p.Close()
		}
		return nil, err
	}
	return p, nil
}

func (p *Provider) validate() error {
	if p.Cursor == nil {
		return fmt.Errorf("%s provider: no cursor locator", p.Name)
	}
	switch p.Strategy {
	case StrategyFlat:
		if p.Lookup == nil {
			return fmt.Errorf("%s provider: flat strategy needs a point lookup", p.Name)
		}
	case StrategyStack:
		if p.Tree == nil {
			return fmt.Errorf("%s provider: stack strategy needs an accessibility tree", p.Name)
		}
	default:
		return fmt.Errorf("%s provider: unknown strategy %v", p.Name, p.Strategy)
	}
	return nil
}
