package tray

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"entropy/internal/host"
)

// MouseButton identifies the button of a tray icon click.
type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonRight
	ButtonMiddle
)

// ButtonState is the phase of a click.
type ButtonState int

const (
	ButtonDown ButtonState = iota
	ButtonUp
)

// IconEvent is a mouse event on the tray icon.
type IconEvent struct {
	Button MouseButton
	State  ButtonState
	Double bool
}

// Options is everything a backend needs to put the icon on screen.
type Options struct {
	ID      string
	Icon    []byte
	Tooltip string
	Menu    Menu
	OnMenu  func(id string)
	OnIcon  func(ev IconEvent)
}

// Backend draws the tray icon and menu on the host platform.
type Backend interface {
	Install(opts Options) error
	SetMenu(menu Menu) error
}

// ErrNoIcon is returned by Create when no icon image is supplied.
var ErrNoIcon = errors.New("tray icon image is empty")

// Controller binds the tray to the main window.
type Controller struct {
	host    host.Host
	backend Backend
	icon    []byte
	tooltip string
	log     *slog.Logger

	mu        sync.Mutex
	menu      Menu
	installed bool
}

// NewController returns a controller that has not installed its icon yet.
func NewController(h host.Host, b Backend, icon []byte, tooltip string, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{host: h, backend: b, icon: icon, tooltip: tooltip, log: log}
}

// Create installs the icon with an unchecked pin item. An error here leaves
// the application without a tray and should abort startup.
func (c *Controller) Create() error {
	if len(c.icon) == 0 {
		return ErrNoIcon
	}

	menu := BuildMenu(false)
	err := c.backend.Install(Options{
		ID:      TrayID,
		Icon:    c.icon,
		Tooltip: c.tooltip,
		Menu:    menu,
		OnMenu:  c.HandleMenuEvent,
		OnIcon:  c.HandleIconEvent,
	})
	if err != nil {
		return fmt.Errorf("install tray icon: %w", err)
	}

	c.mu.Lock()
	c.menu = menu
	c.installed = true
	c.mu.Unlock()
	return nil
}

// Resync rebuilds the menu so the pin checkmark matches pinned and swaps it
// into the tray. Before Create it does nothing.
func (c *Controller) Resync(pinned bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.installed {
		return nil
	}

	menu := BuildMenu(pinned)
	if err := c.backend.SetMenu(menu); err != nil {
		return fmt.Errorf("replace tray menu: %w", err)
	}
	c.menu = menu
	return nil
}

// Menu returns the menu currently installed in the tray.
func (c *Controller) Menu() Menu {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.menu
}

// HandleMenuEvent dispatches a click on the menu item with the given id.
func (c *Controller) HandleMenuEvent(id string) {
	switch id {
	case ItemQuit:
		c.log.Info("quit requested from tray")
		c.host.Exit(0)
	case ItemTogglePin:
		c.togglePin()
	}
}

func (c *Controller) togglePin() {
	w, ok := c.host.Window(host.MainWindowLabel)
	if !ok {
		return
	}

	onTop, err := w.IsAlwaysOnTop()
	if err != nil {
		onTop = false
	}
	pinned := !onTop
	if err := w.SetAlwaysOnTop(pinned); err != nil {
		c.log.Error("toggle pin failed", "error", err)
	}
	c.host.Emit(EventPinStateChanged, pinned)

	// Native checkboxes do not toggle themselves on every platform.
	if err := c.Resync(pinned); err != nil {
		c.log.Error("tray menu resync failed", "error", err)
	}
}

// HandleIconEvent toggles the main window on a left-button release and
// ignores everything else.
func (c *Controller) HandleIconEvent(ev IconEvent) {
	if ev.Button != ButtonLeft || ev.State != ButtonUp || ev.Double {
		return
	}
	if err := host.ToggleMainVisibility(c.host); err != nil {
		c.log.Error("toggle window visibility failed", "error", err)
	}
}
