//go:build !windows

package main

import "entropy/internal/tray"

// trayIcon returns the PNG icon bytes for non-Windows systray.
func trayIcon() []byte {
	return appIconPNG
}

// subclassSystray is a no-op: outside Windows the tray library opens the
// menu on any click and reports no icon events.
func subclassSystray(fn func(tray.IconEvent)) {}

func nativeWindowState() (visible, minimized, ok bool) {
	return false, false, false
}
