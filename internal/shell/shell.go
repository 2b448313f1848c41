// Package shell sequences application startup and exposes the commands the
// front-end calls. It owns the window state machine, the tray controller and
// the notification spawner and hands the same instances to each of them.
package shell

import (
	"fmt"
	"io"
	"log/slog"

	"entropy/internal/host"
	"entropy/internal/notify"
	"entropy/internal/tray"
	"entropy/internal/windowstate"
)

// ToggleShortcut toggles the main window from anywhere.
const ToggleShortcut = "Control+Shift+P"

// Shell ties the native pieces of the application together.
type Shell struct {
	host      host.Host
	shortcuts host.Shortcuts
	state     *windowstate.Machine
	tray      *tray.Controller
	notify    *notify.Spawner
	log       *slog.Logger
}

// Config holds the collaborators a Shell is built from.
type Config struct {
	Host        host.Host
	Shortcuts   host.Shortcuts
	Store       *windowstate.Store
	TrayBackend tray.Backend
	TrayIcon    []byte
	TrayTooltip string
	Logger      *slog.Logger
}

// New builds a shell. Nothing touches the windowing system until Startup.
func New(cfg Config) *Shell {
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Shell{
		host:      cfg.Host,
		shortcuts: cfg.Shortcuts,
		state:     windowstate.NewMachine(cfg.Host, cfg.Store, log.With("component", "windowstate")),
		tray:      tray.NewController(cfg.Host, cfg.TrayBackend, cfg.TrayIcon, cfg.TrayTooltip, log.With("component", "tray")),
		notify:    notify.NewSpawner(cfg.Host, log.With("component", "notify")),
		log:       log,
	}
}

// State returns the window state machine.
func (s *Shell) State() *windowstate.Machine { return s.state }

// Tray returns the tray controller.
func (s *Shell) Tray() *tray.Controller { return s.tray }

// Startup restores the main window, installs the tray and registers the
// global shortcut. A tray failure is returned and should abort the app.
func (s *Shell) Startup() error {
	s.state.Startup()

	if err := s.tray.Create(); err != nil {
		return fmt.Errorf("create tray: %w", err)
	}

	if s.shortcuts != nil {
		// A previous run may have left the combination registered.
		_ = s.shortcuts.Unregister(ToggleShortcut)
		if err := s.shortcuts.Register(ToggleShortcut, s.ToggleVisibility); err != nil {
			s.log.Error("register global shortcut failed", "shortcut", ToggleShortcut, "error", err)
		}
	}
	return nil
}

// Shutdown stops state mutations and releases the global shortcut.
func (s *Shell) Shutdown() {
	s.state.Close()
	if s.shortcuts != nil {
		_ = s.shortcuts.Unregister(ToggleShortcut)
	}
}

// ToggleVisibility hides the main window if shown, shows and focuses it if hidden.
func (s *Shell) ToggleVisibility() {
	if err := host.ToggleMainVisibility(s.host); err != nil {
		s.log.Error("toggle window visibility failed", "error", err)
	}
}

// ForceShow un-hides, un-minimizes and focuses the main window.
func (s *Shell) ForceShow() error {
	w, ok := s.host.Window(host.MainWindowLabel)
	if !ok {
		return nil
	}
	if err := w.Show(); err != nil {
		return fmt.Errorf("show window: %w", err)
	}
	if err := w.Unminimize(); err != nil {
		return fmt.Errorf("unminimize window: %w", err)
	}
	if err := w.Focus(); err != nil {
		return fmt.Errorf("focus window: %w", err)
	}
	return nil
}

// SecondInstance brings the existing window forward when the app is launched again.
func (s *Shell) SecondInstance() {
	if err := s.ForceShow(); err != nil {
		s.log.Error("show window for second instance failed", "error", err)
	}
}

// ToggleMiniWindow switches between the main and mini layouts.
func (s *Shell) ToggleMiniWindow(isMini, isPinned bool) error {
	return s.state.ToggleMode(isMini, isPinned)
}

// UpdateTrayPinState makes the tray checkmark match a pin change made in the UI.
func (s *Shell) UpdateTrayPinState(isPinned bool) error {
	return s.tray.Resync(isPinned)
}

// ShowNotification opens a popup and returns its label.
func (s *Shell) ShowNotification(title, body, kind string) (string, error) {
	return s.notify.Show(title, body, kind)
}

// CloseNotification closes a popup. Unknown labels are ignored.
func (s *Shell) CloseNotification(label string) error {
	return s.notify.Close(label)
}

// IsPinned reports whether the main window is always on top.
func (s *Shell) IsPinned() bool {
	w, ok := s.host.Window(host.MainWindowLabel)
	if !ok {
		return false
	}
	onTop, err := w.IsAlwaysOnTop()
	return err == nil && onTop
}

// SetPinned applies the pin to the main window and resyncs the tray.
func (s *Shell) SetPinned(pinned bool) error {
	w, ok := s.host.Window(host.MainWindowLabel)
	if !ok {
		return nil
	}
	if err := w.SetAlwaysOnTop(pinned); err != nil {
		return fmt.Errorf("set always on top: %w", err)
	}
	return s.tray.Resync(pinned)
}

// Hide hides the main window.
func (s *Shell) Hide() error {
	w, ok := s.host.Window(host.MainWindowLabel)
	if !ok {
		return nil
	}
	return w.Hide()
}
