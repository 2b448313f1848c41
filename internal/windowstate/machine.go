package windowstate

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"entropy/internal/host"
)

// ErrStateUnavailable is returned by ToggleMode once the machine is closed.
var ErrStateUnavailable = errors.New("window state unavailable")

// Machine owns the process-wide State. Every mutation runs under one mutex
// and writes the store before the lock is released.
type Machine struct {
	host  host.Host
	store *Store
	log   *slog.Logger

	mu     sync.Mutex
	state  State
	closed bool
}

// NewMachine returns a machine holding the zero State.
func NewMachine(h host.Host, store *Store, log *slog.Logger) *Machine {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Machine{host: h, store: store, log: log}
}

// Snapshot returns a copy of the in-memory state.
func (m *Machine) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Close makes later toggles fail and later moves no-ops.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

// Startup loads the persisted state, forces the main layout and lays the
// main window out: fixed main size, not resizable, not on top, at the saved
// main position or centered. It then starts recording move events.
func (m *Machine) Startup() State {
	saved := m.store.Load()
	// The front-end always boots into the main layout.
	saved.IsMini = false

	m.mu.Lock()
	m.state = saved
	m.mu.Unlock()

	w, ok := m.host.Window(host.MainWindowLabel)
	if !ok {
		m.log.Debug("main window missing at startup")
		return saved
	}

	m.ignore("set size", w.SetSize(MainSize))
	m.ignore("set resizable", w.SetResizable(false))
	m.ignore("set always on top", w.SetAlwaysOnTop(false))

	if saved.MainPos.Initialized {
		m.ignore("restore position", w.SetPosition(saved.MainPos.X, saved.MainPos.Y))
	} else {
		m.ignore("center", w.Center())
	}

	w.OnMoved(m.RecordMove)
	m.log.Info("window state restored", "main", saved.MainPos, "mini", saved.MiniPos)
	return saved
}

// ToggleMode switches the main window between layouts. The position of the
// layout being left is captured first; the target layout's saved position is
// restored when it has one. Mini is always on top; main takes pinIfMain.
func (m *Machine) ToggleMode(targetIsMini, pinIfMain bool) error {
	w, ok := m.host.Window(host.MainWindowLabel)
	if !ok {
		return nil
	}

	x, y, err := w.Position()
	if err != nil {
		return fmt.Errorf("read window position: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrStateUnavailable
	}

	*m.state.active() = Position{X: x, Y: y, Initialized: true}
	m.state.IsMini = targetIsMini
	// Persist even when a window call below fails so disk never lags memory.
	defer func() { m.store.Save(m.state) }()

	if err := w.SetSize(sizeFor(targetIsMini)); err != nil {
		return fmt.Errorf("resize window: %w", err)
	}
	if err := w.SetResizable(false); err != nil {
		return fmt.Errorf("lock window size: %w", err)
	}

	onTop := pinIfMain
	if targetIsMini {
		onTop = true
	}
	if err := w.SetAlwaysOnTop(onTop); err != nil {
		return fmt.Errorf("set always on top: %w", err)
	}

	if target := m.state.slot(targetIsMini); target.Initialized {
		if err := w.SetPosition(target.X, target.Y); err != nil {
			return fmt.Errorf("restore window position: %w", err)
		}
	}

	m.log.Debug("window mode toggled", "mini", targetIsMini, "onTop", onTop, "from", Position{X: x, Y: y})
	return nil
}

// RecordMove stores (x, y) in the active slot and persists it. It is a no-op
// once the machine is closed.
func (m *Machine) RecordMove(x, y int32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	*m.state.active() = Position{X: x, Y: y, Initialized: true}
	m.store.Save(m.state)
}

func (m *Machine) ignore(op string, err error) {
	if err != nil {
		m.log.Debug("startup window call failed", "op", op, "error", err)
	}
}
