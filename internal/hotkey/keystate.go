package hotkey

import (
	"context"
	"fmt"
	"strings"
	"sync"

	hook "github.com/robotn/gohook"
)

// ValidateKeys checks that every key name maps to a known keycode.
func ValidateKeys(keys []string) error {
	if len(keys) == 0 {
		return fmt.Errorf("no hotkeys given")
	}
	_, err := newKeyState(keys)
	return err
}

// keyState tracks which keys of the configured combination are currently
// held, fed by the global keyboard hook.
type keyState struct {
	codes []uint16

	mu   sync.Mutex
	held map[uint16]bool
}

func newKeyState(keys []string) (*keyState, error) {
	codes := make([]uint16, 0, len(keys))
	for _, key := range keys {
		code, ok := hook.Keycode[strings.ToLower(strings.TrimSpace(key))]
		if !ok {
			return nil, fmt.Errorf("unknown hotkey %q", key)
		}
		codes = append(codes, code)
	}
	return &keyState{
		codes: codes,
		held:  make(map[uint16]bool),
	}, nil
}

// run consumes hook events until ctx is cancelled. gohook delivers
// KeyHold for auto-repeat, which we treat the same as KeyDown so a key
// held across repeats never reads as released.
func (k *keyState) run(ctx context.Context) {
	events := hook.Start()

	go func() {
		<-ctx.Done()
		hook.End()
	}()

	go func() {
		for ev := range events {
			switch ev.Kind {
			case hook.KeyDown, hook.KeyHold:
				k.set(ev.Keycode, true)
			case hook.KeyUp:
				k.set(ev.Keycode, false)
			}
		}
	}()
}

func (k *keyState) set(code uint16, down bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if down {
		k.held[code] = true
	} else {
		delete(k.held, code)
	}
}

// comboHeld reports whether every key of the combination is down.
func (k *keyState) comboHeld() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, code := range k.codes {
		if !k.held[code] {
			return false
		}
	}
	return true
}
