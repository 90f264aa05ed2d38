// Package hotkeys registers global key combinations and dispatches their
// presses.
package hotkeys

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.design/x/hotkey"
)

// ErrConflict is returned when the combination is already registered by
// another application.
var ErrConflict = errors.New("hotkey: key combination already registered by another application")

// ErrInvalid is returned when a combination string cannot be parsed.
var ErrInvalid = errors.New("hotkey: invalid key combination")

// Binding ties a combination such as "ctrl+alt+c" to an action.
type Binding struct {
	Name  string
	Combo string
	Fire  func()
}

// backend abstracts golang.design/x/hotkey so tests can use a fake.
type backend interface {
	Register() error
	Unregister() error
	Keydown() <-chan hotkey.Event
}

type realBackend struct {
	*hotkey.Hotkey
}

func (r realBackend) Register() error {
	if err := r.Hotkey.Register(); err != nil {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return nil
}

func newRealBackend(combo string) (backend, error) {
	mods, key, err := Parse(combo)
	if err != nil {
		return nil, err
	}
	return realBackend{hotkey.New(mods, key)}, nil
}

// Listener owns a set of registered bindings.
type Listener struct {
	log     *zap.Logger
	factory func(combo string) (backend, error)
}

// NewListener returns a Listener backed by the OS hotkey API.
func NewListener(log *zap.Logger) *Listener {
	return &Listener{log: log, factory: newRealBackend}
}

// Run registers every binding with a non-empty combo and calls its Fire
// function on each press until ctx is cancelled. Presses are handled one
// at a time. If any registration fails, the ones already made are undone.
func (l *Listener) Run(ctx context.Context, bindings []Binding) error {
	type active struct {
		Binding
		b backend
	}
	var registered []active
	unregister := func() {
		for _, a := range registered {
			if err := a.b.Unregister(); err != nil {
				l.log.Warn("hotkey unregister failed", zap.String("combo", a.Combo), zap.Error(err))
			}
		}
	}

	for _, bind := range bindings {
		if strings.TrimSpace(bind.Combo) == "" {
			continue
		}
		b, err := l.factory(bind.Combo)
		if err == nil {
			err = b.Register()
		}
		if err != nil {
			unregister()
			return fmt.Errorf("hotkey %s (%s): %w", bind.Name, bind.Combo, err)
		}
		registered = append(registered, active{bind, b})
		l.log.Info("hotkey registered", zap.String("name", bind.Name), zap.String("combo", bind.Combo))
	}
	if len(registered) == 0 {
		return errors.New("no hotkeys configured")
	}
	defer unregister()

	presses := make(chan Binding)
	var wg sync.WaitGroup
	for _, a := range registered {
		wg.Add(1)
		go func(a active) {
			defer wg.Done()
			keydown := a.b.Keydown()
			for {
				select {
				case <-ctx.Done():
					return
				case _, ok := <-keydown:
					if !ok {
						return
					}
					select {
					case presses <- a.Binding:
					case <-ctx.Done():
						return
					}
				}
			}
		}(a)
	}

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil
		case bind := <-presses:
			l.log.Debug("hotkey triggered", zap.String("name", bind.Name))
			l.fire(bind)
		}
	}
}

func (l *Listener) fire(bind Binding) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error("hotkey action panicked", zap.String("name", bind.Name), zap.Any("panic", r))
		}
	}()
	if bind.Fire != nil {
		bind.Fire()
	}
}

var keyMap = map[string]hotkey.Key{
	"space":  hotkey.KeySpace,
	"tab":    hotkey.KeyTab,
	"return": hotkey.KeyReturn,
	"enter":  hotkey.KeyReturn,
	"escape": hotkey.KeyEscape,
	"a":      hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"f1": hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3, "f4": hotkey.KeyF4,
	"f5": hotkey.KeyF5, "f6": hotkey.KeyF6, "f7": hotkey.KeyF7, "f8": hotkey.KeyF8,
	"f9": hotkey.KeyF9, "f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,
}

// Parse turns a combo like "ctrl+alt+c" into modifiers and a key.
// Modifier names are those of the current OS, see modMap.
func Parse(combo string) ([]hotkey.Modifier, hotkey.Key, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(combo)), "+")
	if len(parts) < 2 {
		return nil, 0, fmt.Errorf("%w: %q (need at least one modifier)", ErrInvalid, combo)
	}
	keyPart := strings.TrimSpace(parts[len(parts)-1])
	key, ok := keyMap[keyPart]
	if !ok {
		return nil, 0, fmt.Errorf("%w: unknown key %q", ErrInvalid, keyPart)
	}

	var mods []hotkey.Modifier
	seen := map[hotkey.Modifier]bool{}
	for _, m := range parts[:len(parts)-1] {
		mod, ok := modMap[strings.TrimSpace(m)]
		if !ok {
			return nil, 0, fmt.Errorf("%w: unknown modifier %q", ErrInvalid, m)
		}
		if seen[mod] {
			continue
		}
		seen[mod] = true
		mods = append(mods, mod)
	}
	return mods, key, nil
}
