// Package host defines the window, tray and shortcut capabilities the shell
// needs from the desktop runtime. The root package implements it on Wails;
// hosttest implements it in memory.
package host

import "errors"

// MainWindowLabel is the label of the application's primary window.
const MainWindowLabel = "main"

var (
	// ErrNoMonitor is returned when no primary display can be resolved.
	ErrNoMonitor = errors.New("no monitor found")
	// ErrWindowExists is returned when a window with the same label is alive.
	ErrWindowExists = errors.New("window label already in use")
)

// Size is a window size in logical pixels.
type Size struct {
	Width  int
	Height int
}

// Monitor describes a display. Width and Height are physical pixels.
type Monitor struct {
	Width       int
	Height      int
	ScaleFactor float64
}

// LogicalSize converts the physical monitor size to logical pixels.
func (m Monitor) LogicalSize() (float64, float64) {
	scale := m.ScaleFactor
	if scale <= 0 {
		scale = 1
	}
	return float64(m.Width) / scale, float64(m.Height) / scale
}

// WindowSpec describes an auxiliary window to create.
type WindowSpec struct {
	Label       string
	Title       string
	URL         string
	Width       int
	Height      int
	X           int
	Y           int
	Resizable   bool
	Decorations bool
	AlwaysOnTop bool
	SkipTaskbar bool
	Focused     bool
}

// Window is a live native window.
type Window interface {
	Label() string
	// Position returns the outer position in physical pixels.
	Position() (x, y int32, err error)
	SetPosition(x, y int32) error
	SetSize(size Size) error
	SetResizable(resizable bool) error
	SetAlwaysOnTop(onTop bool) error
	IsAlwaysOnTop() (bool, error)
	IsVisible() (bool, error)
	Center() error
	Show() error
	Hide() error
	Unminimize() error
	Focus() error
	Close() error
	// OnMoved registers fn to be called with the new outer position after
	// every move. Only one listener is kept.
	OnMoved(fn func(x, y int32))
}

// Host is the application-level capability surface.
type Host interface {
	// Window looks a window up by label.
	Window(label string) (Window, bool)
	CreateWindow(spec WindowSpec) (Window, error)
	PrimaryMonitor() (Monitor, error)
	Emit(event string, payload any)
	Exit(code int)
}

// Shortcuts registers process-wide keyboard shortcuts.
type Shortcuts interface {
	Register(accelerator string, fn func()) error
	Unregister(accelerator string) error
}

// ToggleMainVisibility hides the main window when it is visible and shows and
// focuses it otherwise. A missing main window is a no-op.
func ToggleMainVisibility(h Host) error {
	w, ok := h.Window(MainWindowLabel)
	if !ok {
		return nil
	}
	visible, err := w.IsVisible()
	if err != nil {
		visible = false
	}
	if visible {
		return w.Hide()
	}
	if err := w.Show(); err != nil {
		return err
	}
	return w.Focus()
}
