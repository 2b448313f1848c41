// Package autostart registers the application to launch at login.
package autostart

import (
	"fmt"
	"strings"
)

// loginEntry is the per-OS login item.
type loginEntry interface {
	IsEnabled() bool
	Enable() error
	Disable() error
}

// Manager adds or removes the login entry for one executable.
type Manager struct {
	Name        string
	DisplayName string
	Exec        string
	Args        []string

	entry loginEntry
}

// New returns a manager for the executable at exec. name identifies the
// entry (a reverse-DNS id works on every OS); displayName is shown to users.
func New(name, displayName, exec string, args ...string) *Manager {
	m := &Manager{Name: name, DisplayName: displayName, Exec: exec, Args: args}
	m.entry = newEntry(m)
	return m
}

// IsEnabled reports whether the login entry exists.
func (m *Manager) IsEnabled() bool {
	return m.entry.IsEnabled()
}

// Enable creates or overwrites the login entry.
func (m *Manager) Enable() error {
	if err := m.entry.Enable(); err != nil {
		return fmt.Errorf("enable login item: %w", err)
	}
	return nil
}

// Disable removes the login entry. A missing entry is not an error.
func (m *Manager) Disable() error {
	if !m.entry.IsEnabled() {
		return nil
	}
	if err := m.entry.Disable(); err != nil {
		return fmt.Errorf("disable login item: %w", err)
	}
	return nil
}

// Set enables or disables the login entry.
func (m *Manager) Set(enabled bool) error {
	if enabled {
		return m.Enable()
	}
	return m.Disable()
}

// argv is the full command the entry launches.
func (m *Manager) argv() []string {
	return append([]string{m.Exec}, m.Args...)
}

// commandLine is argv as a single quoted string.
func (m *Manager) commandLine() string {
	argv := m.argv()
	parts := make([]string, 0, len(argv))
	for _, a := range argv {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if strings.ContainsAny(s, " \t\"") {
		return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}
	return s
}
