// Package hosttest provides an in-memory host.Host for tests.
package hosttest

import (
	"errors"
	"sync"

	"entropy/internal/host"
)

// Event is one emitted front-end event.
type Event struct {
	Name    string
	Payload any
}

// Host records every call made through the host.Host interface.
type Host struct {
	mu        sync.Mutex
	windows   map[string]*Window
	Monitor   *host.Monitor
	CreateErr error
	Events    []Event
	ExitCode  *int
	Created   []host.WindowSpec
}

// New returns a host with a visible main window at (0,0) and a 1920x1080
// primary monitor at scale 1.
func New() *Host {
	h := &Host{
		windows: make(map[string]*Window),
		Monitor: &host.Monitor{Width: 1920, Height: 1080, ScaleFactor: 1},
	}
	h.AddWindow(NewWindow(host.MainWindowLabel))
	return h
}

// AddWindow registers w under its label.
func (h *Host) AddWindow(w *Window) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.windows[w.label] = w
	w.host = h
}

// RemoveWindow forgets the window with the given label.
func (h *Host) RemoveWindow(label string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.windows, label)
}

// Main returns the main window, or nil when it was removed.
func (h *Host) Main() *Window {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.windows[host.MainWindowLabel]
}

func (h *Host) Window(label string) (host.Window, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	w, ok := h.windows[label]
	if !ok {
		return nil, false
	}
	return w, true
}

func (h *Host) CreateWindow(spec host.WindowSpec) (host.Window, error) {
	if h.CreateErr != nil {
		return nil, h.CreateErr
	}
	h.mu.Lock()
	if _, exists := h.windows[spec.Label]; exists {
		h.mu.Unlock()
		return nil, host.ErrWindowExists
	}
	h.Created = append(h.Created, spec)
	h.mu.Unlock()

	w := NewWindow(spec.Label)
	w.X, w.Y = int32(spec.X), int32(spec.Y)
	w.Size = host.Size{Width: spec.Width, Height: spec.Height}
	w.Resizable = spec.Resizable
	w.OnTop = spec.AlwaysOnTop
	w.Visible = true
	h.AddWindow(w)
	return w, nil
}

func (h *Host) PrimaryMonitor() (host.Monitor, error) {
	if h.Monitor == nil {
		return host.Monitor{}, host.ErrNoMonitor
	}
	return *h.Monitor, nil
}

func (h *Host) Emit(event string, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Events = append(h.Events, Event{Name: event, Payload: payload})
}

func (h *Host) Exit(code int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ExitCode = &code
}

// Window is an in-memory host.Window.
type Window struct {
	mu        sync.Mutex
	host      *Host
	label     string
	X, Y      int32
	Size      host.Size
	Resizable bool
	OnTop     bool
	Visible   bool
	Minimized bool
	Focused   bool
	Centered  bool
	Closed    bool

	// FailPosition makes Position return an error.
	FailPosition bool
	// Calls lists the mutating methods invoked, in order.
	Calls []string

	moved func(x, y int32)
}

// NewWindow returns a visible, resizable window at the origin.
func NewWindow(label string) *Window {
	return &Window{label: label, Visible: true, Resizable: true}
}

func (w *Window) record(call string) {
	w.Calls = append(w.Calls, call)
}

func (w *Window) Label() string { return w.label }

func (w *Window) Position() (int32, int32, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.FailPosition {
		return 0, 0, errors.New("position unavailable")
	}
	return w.X, w.Y, nil
}

func (w *Window) SetPosition(x, y int32) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("SetPosition")
	w.X, w.Y = x, y
	return nil
}

func (w *Window) SetSize(size host.Size) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("SetSize")
	w.Size = size
	return nil
}

func (w *Window) SetResizable(resizable bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("SetResizable")
	w.Resizable = resizable
	return nil
}

func (w *Window) SetAlwaysOnTop(onTop bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("SetAlwaysOnTop")
	w.OnTop = onTop
	return nil
}

func (w *Window) IsAlwaysOnTop() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.OnTop, nil
}

func (w *Window) IsVisible() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Visible, nil
}

func (w *Window) Center() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("Center")
	w.Centered = true
	return nil
}

func (w *Window) Show() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("Show")
	w.Visible = true
	return nil
}

func (w *Window) Hide() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("Hide")
	w.Visible = false
	w.Focused = false
	return nil
}

func (w *Window) Unminimize() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("Unminimize")
	w.Minimized = false
	return nil
}

func (w *Window) Focus() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record("Focus")
	w.Focused = true
	return nil
}

func (w *Window) Close() error {
	w.mu.Lock()
	w.record("Close")
	w.Closed = true
	h := w.host
	w.mu.Unlock()
	if h != nil {
		h.RemoveWindow(w.label)
	}
	return nil
}

func (w *Window) OnMoved(fn func(x, y int32)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.moved = fn
}

// Move simulates the user dragging the window to (x, y).
func (w *Window) Move(x, y int32) {
	w.mu.Lock()
	w.X, w.Y = x, y
	fn := w.moved
	w.mu.Unlock()
	if fn != nil {
		fn(x, y)
	}
}

// Shortcuts is an in-memory host.Shortcuts.
type Shortcuts struct {
	mu          sync.Mutex
	handlers    map[string]func()
	RegisterErr error
	Calls       []string
}

// NewShortcuts returns an empty registry.
func NewShortcuts() *Shortcuts {
	return &Shortcuts{handlers: make(map[string]func())}
}

func (s *Shortcuts) Register(accel string, fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, "register:"+accel)
	if s.RegisterErr != nil {
		return s.RegisterErr
	}
	if _, ok := s.handlers[accel]; ok {
		return errors.New("shortcut already registered")
	}
	s.handlers[accel] = fn
	return nil
}

func (s *Shortcuts) Unregister(accel string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, "unregister:"+accel)
	if _, ok := s.handlers[accel]; !ok {
		return errors.New("shortcut not registered")
	}
	delete(s.handlers, accel)
	return nil
}

// Press fires the handler bound to accel and reports whether one existed.
func (s *Shortcuts) Press(accel string) bool {
	s.mu.Lock()
	fn, ok := s.handlers[accel]
	s.mu.Unlock()
	if ok {
		fn()
	}
	return ok
}
