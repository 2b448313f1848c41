package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"entropy/internal/host"
	"entropy/internal/windowstate"
)

// movePollInterval is how often the main window position is sampled.
// Wails v2 has no native move event.
const movePollInterval = 250 * time.Millisecond

// mainWindowTitle must match options.App.Title; the Win32 lookups use it.
const mainWindowTitle = "Entropy"

var errNoContext = errors.New("window runtime not started")

// Runtime size calls, swappable in tests. On macOS and Linux they are queued
// onto the UI thread, so the window size is never read back after them.
var (
	windowSetSize    = wailsRuntime.WindowSetSize
	windowSetMinSize = wailsRuntime.WindowSetMinSize
	windowSetMaxSize = wailsRuntime.WindowSetMaxSize
)

// launchHelper starts a notification process; swappable in tests.
var launchHelper = startHelperWindow

// wailsHost implements host.Host on top of the Wails v2 runtime. Wails v2
// drives a single webview, so every other window is a child process running
// the hidden "notification" command.
type wailsHost struct {
	ctx  context.Context
	main *mainWindow

	mu      sync.Mutex
	helpers map[string]*helperWindow
}

func newWailsHost() *wailsHost {
	return &wailsHost{helpers: make(map[string]*helperWindow)}
}

// bind attaches the runtime context handed to OnStartup.
func (h *wailsHost) bind(ctx context.Context) {
	h.ctx = ctx
	h.main = &mainWindow{ctx: ctx, visible: true, size: windowstate.MainSize}
}

func (h *wailsHost) Window(label string) (host.Window, bool) {
	if label == host.MainWindowLabel {
		if h.main == nil {
			return nil, false
		}
		return h.main, true
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	w, ok := h.helpers[label]
	if !ok {
		return nil, false
	}
	return w, true
}

func (h *wailsHost) CreateWindow(spec host.WindowSpec) (host.Window, error) {
	if spec.Label == host.MainWindowLabel {
		return nil, host.ErrWindowExists
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.helpers[spec.Label]; exists {
		return nil, host.ErrWindowExists
	}

	w, err := launchHelper(spec, h.forgetHelper)
	if err != nil {
		return nil, err
	}
	h.helpers[spec.Label] = w
	return w, nil
}

// forgetHelper drops w once its process has exited. A newer window that
// reused the label stays registered.
func (h *wailsHost) forgetHelper(w *helperWindow) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.helpers[w.label] == w {
		delete(h.helpers, w.label)
	}
}

func (h *wailsHost) PrimaryMonitor() (host.Monitor, error) {
	if h.ctx == nil {
		return host.Monitor{}, errNoContext
	}
	screens, err := wailsRuntime.ScreenGetAll(h.ctx)
	if err != nil {
		return host.Monitor{}, fmt.Errorf("query screens: %w", err)
	}
	for _, s := range screens {
		if !s.IsPrimary {
			continue
		}
		m := host.Monitor{Width: s.PhysicalSize.Width, Height: s.PhysicalSize.Height, ScaleFactor: 1}
		if m.Width == 0 || m.Height == 0 {
			m.Width, m.Height = s.Size.Width, s.Size.Height
		}
		if s.Size.Width > 0 {
			m.ScaleFactor = float64(m.Width) / float64(s.Size.Width)
		}
		return m, nil
	}
	return host.Monitor{}, host.ErrNoMonitor
}

func (h *wailsHost) Emit(event string, payload any) {
	emitEvent(h.ctx, event, payload)
}

func (h *wailsHost) Exit(code int) {
	h.closeHelpers()
	if h.ctx != nil && code == 0 {
		wailsRuntime.Quit(h.ctx)
		return
	}
	exitProcess(code)
}

// closeHelpers kills every notification process still alive.
func (h *wailsHost) closeHelpers() {
	h.mu.Lock()
	helpers := make([]*helperWindow, 0, len(h.helpers))
	for _, w := range h.helpers {
		helpers = append(helpers, w)
	}
	h.mu.Unlock()
	for _, w := range helpers {
		w.Close()
	}
}

// mainWindow is the Wails-managed webview window.
type mainWindow struct {
	ctx context.Context

	mu        sync.Mutex
	visible   bool
	onTop     bool
	resizable bool
	size      host.Size
	watching  bool
	moved     func(x, y int32)
}

func (w *mainWindow) Label() string { return host.MainWindowLabel }

func (w *mainWindow) Position() (int32, int32, error) {
	x, y := wailsRuntime.WindowGetPosition(w.ctx)
	return clampInt32(x), clampInt32(y), nil
}

func (w *mainWindow) SetPosition(x, y int32) error {
	wailsRuntime.WindowSetPosition(w.ctx, int(x), int(y))
	return nil
}

// SetSize resizes the window. A fixed-size window gets its limits pinned to
// the new size before the resize so the limits never clamp it.
func (w *mainWindow) SetSize(size host.Size) error {
	w.mu.Lock()
	w.size = size
	fixed := !w.resizable
	w.mu.Unlock()

	w.unpinSize()
	if fixed {
		w.pinSize(size)
	}
	windowSetSize(w.ctx, size.Width, size.Height)
	return nil
}

// SetResizable pins the min and max size to the last size set. Wails v2 only
// exposes resizability as a startup option.
func (w *mainWindow) SetResizable(resizable bool) error {
	w.mu.Lock()
	w.resizable = resizable
	size := w.size
	w.mu.Unlock()

	if resizable {
		w.unpinSize()
		return nil
	}
	w.pinSize(size)
	return nil
}

func (w *mainWindow) pinSize(size host.Size) {
	windowSetMinSize(w.ctx, size.Width, size.Height)
	windowSetMaxSize(w.ctx, size.Width, size.Height)
}

func (w *mainWindow) unpinSize() {
	windowSetMinSize(w.ctx, 0, 0)
	windowSetMaxSize(w.ctx, 0, 0)
}

func (w *mainWindow) SetAlwaysOnTop(onTop bool) error {
	wailsRuntime.WindowSetAlwaysOnTop(w.ctx, onTop)
	w.mu.Lock()
	w.onTop = onTop
	w.mu.Unlock()
	return nil
}

// IsAlwaysOnTop returns the last value set; Wails v2 cannot query it.
func (w *mainWindow) IsAlwaysOnTop() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.onTop, nil
}

func (w *mainWindow) IsVisible() (bool, error) {
	if visible, minimized, ok := nativeWindowState(); ok {
		return visible && !minimized, nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible && !wailsRuntime.WindowIsMinimised(w.ctx), nil
}

func (w *mainWindow) Center() error {
	wailsRuntime.WindowCenter(w.ctx)
	return nil
}

func (w *mainWindow) Show() error {
	wailsRuntime.WindowShow(w.ctx)
	wailsRuntime.Show(w.ctx)
	w.mu.Lock()
	w.visible = true
	w.mu.Unlock()
	return nil
}

func (w *mainWindow) Hide() error {
	wailsRuntime.WindowHide(w.ctx)
	w.mu.Lock()
	w.visible = false
	w.mu.Unlock()
	return nil
}

func (w *mainWindow) Unminimize() error {
	if wailsRuntime.WindowIsMinimised(w.ctx) {
		wailsRuntime.WindowUnminimise(w.ctx)
	}
	return nil
}

// Focus raises the window by briefly setting it on top, unless it is
// already pinned.
func (w *mainWindow) Focus() error {
	w.mu.Lock()
	pinned := w.onTop
	w.mu.Unlock()
	if pinned {
		return nil
	}
	wailsRuntime.WindowSetAlwaysOnTop(w.ctx, true)
	wailsRuntime.WindowSetAlwaysOnTop(w.ctx, false)
	return nil
}

// Close hides the main window; the process keeps running in the tray.
func (w *mainWindow) Close() error {
	return w.Hide()
}

// OnMoved starts sampling the window position until the runtime context ends.
func (w *mainWindow) OnMoved(fn func(x, y int32)) {
	w.mu.Lock()
	w.moved = fn
	start := !w.watching
	w.watching = true
	w.mu.Unlock()
	if start {
		go w.watchPosition()
	}
}

func (w *mainWindow) watchPosition() {
	ticker := time.NewTicker(movePollInterval)
	defer ticker.Stop()

	lastX, lastY, _ := w.Position()
	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
		}

		w.mu.Lock()
		visible := w.visible
		fn := w.moved
		w.mu.Unlock()
		// Minimized windows report off-screen coordinates.
		if !visible || wailsRuntime.WindowIsMinimised(w.ctx) {
			continue
		}

		x, y, _ := w.Position()
		if x == lastX && y == lastY {
			continue
		}
		lastX, lastY = x, y
		if fn != nil {
			fn(x, y)
		}
	}
}

func clampInt32(v int) int32 {
	switch {
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	}
	return int32(v)
}
