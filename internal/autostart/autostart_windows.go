//go:build windows

package autostart

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

const runKey = `Software\Microsoft\Windows\CurrentVersion\Run`

// runEntry is a value under the HKCU Run key.
type runEntry struct {
	name    string
	command string
}

func newEntry(m *Manager) loginEntry {
	return &runEntry{name: m.Name, command: m.commandLine()}
}

// IsEnabled reports whether the HKCU Run value exists.
func (e *runEntry) IsEnabled() bool {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer k.Close()
	_, _, err = k.GetStringValue(e.name)
	return err == nil
}

// Enable writes the HKCU Run value.
func (e *runEntry) Enable() error {
	k, _, err := registry.CreateKey(registry.CURRENT_USER, runKey, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("open Run key: %w", err)
	}
	defer k.Close()
	if err := k.SetStringValue(e.name, e.command); err != nil {
		return fmt.Errorf("write Run value: %w", err)
	}
	return nil
}

// Disable deletes the HKCU Run value.
func (e *runEntry) Disable() error {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.SET_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open Run key: %w", err)
	}
	defer k.Close()
	if err := k.DeleteValue(e.name); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("delete Run value: %w", err)
	}
	return nil
}
