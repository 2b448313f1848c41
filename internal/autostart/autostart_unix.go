//go:build !windows

package autostart

import goautostart "github.com/emersion/go-autostart"

// newEntry writes a LaunchAgent plist on macOS and an XDG .desktop file
// elsewhere.
func newEntry(m *Manager) loginEntry {
	return &goautostart.App{
		Name:        m.Name,
		DisplayName: m.DisplayName,
		Exec:        m.argv(),
	}
}
