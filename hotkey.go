package main

import (
	"fmt"
	"strings"
	"sync"

	"golang.design/x/hotkey"
)

// globalShortcuts implements host.Shortcuts with system-wide hotkeys.
type globalShortcuts struct {
	mu     sync.Mutex
	active map[string]*boundHotkey
}

type boundHotkey struct {
	hk   *hotkey.Hotkey
	stop chan struct{}
}

func newGlobalShortcuts() *globalShortcuts {
	return &globalShortcuts{active: make(map[string]*boundHotkey)}
}

func (g *globalShortcuts) Register(accel string, fn func()) error {
	mods, key, err := parseAccelerator(accel)
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.active[accel]; ok {
		return fmt.Errorf("shortcut %s already registered", accel)
	}

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("register %s: %w", accel, err)
	}
	b := &boundHotkey{hk: hk, stop: make(chan struct{})}
	g.active[accel] = b

	go func() {
		for {
			select {
			case <-b.stop:
				return
			case _, ok := <-hk.Keydown():
				if !ok {
					return
				}
				fn()
			}
		}
	}()
	return nil
}

func (g *globalShortcuts) Unregister(accel string) error {
	g.mu.Lock()
	b, ok := g.active[accel]
	delete(g.active, accel)
	g.mu.Unlock()
	if !ok {
		return fmt.Errorf("shortcut %s not registered", accel)
	}
	close(b.stop)
	return b.hk.Unregister()
}

// parseAccelerator turns "Control+Shift+P" into hotkey modifiers and a key.
// Only modifiers available on every platform are accepted.
func parseAccelerator(accel string) ([]hotkey.Modifier, hotkey.Key, error) {
	parts := strings.Split(accel, "+")
	if len(parts) < 2 {
		return nil, 0, fmt.Errorf("shortcut %q needs a modifier and a key", accel)
	}

	var mods []hotkey.Modifier
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "control", "ctrl":
			mods = append(mods, hotkey.ModCtrl)
		case "shift":
			mods = append(mods, hotkey.ModShift)
		default:
			return nil, 0, fmt.Errorf("unsupported modifier %q in %q", p, accel)
		}
	}

	name := strings.ToUpper(strings.TrimSpace(parts[len(parts)-1]))
	key, ok := hotkeyKeys[name]
	if !ok {
		return nil, 0, fmt.Errorf("unsupported key %q in %q", name, accel)
	}
	return mods, key, nil
}

var hotkeyKeys = map[string]hotkey.Key{
	"A": hotkey.KeyA, "B": hotkey.KeyB, "C": hotkey.KeyC, "D": hotkey.KeyD,
	"E": hotkey.KeyE, "F": hotkey.KeyF, "G": hotkey.KeyG, "H": hotkey.KeyH,
	"I": hotkey.KeyI, "J": hotkey.KeyJ, "K": hotkey.KeyK, "L": hotkey.KeyL,
	"M": hotkey.KeyM, "N": hotkey.KeyN, "O": hotkey.KeyO, "P": hotkey.KeyP,
	"Q": hotkey.KeyQ, "R": hotkey.KeyR, "S": hotkey.KeyS, "T": hotkey.KeyT,
	"U": hotkey.KeyU, "V": hotkey.KeyV, "W": hotkey.KeyW, "X": hotkey.KeyX,
	"Y": hotkey.KeyY, "Z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"SPACE": hotkey.KeySpace,
}
