package windowstate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entropy/internal/host"
	"entropy/internal/host/hosttest"
)

func newMachine(t *testing.T) (*Machine, *hosttest.Host, *Store) {
	t.Helper()
	h := hosttest.New()
	store := NewStore(filepath.Join(t.TempDir(), StateFileName), nil)
	return NewMachine(h, store, nil), h, store
}

func TestStartup_ForcesMainMode(t *testing.T) {
	m, h, store := newMachine(t)
	store.Save(State{
		MainPos: Position{X: 100, Y: 200, Initialized: true},
		MiniPos: Position{X: 7, Y: 8, Initialized: true},
		IsMini:  true,
	})

	st := m.Startup()

	assert.False(t, st.IsMini)
	assert.False(t, m.Snapshot().IsMini)
	w := h.Main()
	assert.Equal(t, MainSize, w.Size)
	assert.False(t, w.Resizable)
	assert.False(t, w.OnTop)
	assert.Equal(t, int32(100), w.X)
	assert.Equal(t, int32(200), w.Y)
	assert.False(t, w.Centered)
}

func TestStartup_CentersWithoutSavedPosition(t *testing.T) {
	m, h, _ := newMachine(t)
	h.Main().OnTop = true

	m.Startup()

	w := h.Main()
	assert.True(t, w.Centered)
	assert.NotContains(t, w.Calls, "SetPosition")
	assert.False(t, w.OnTop)
}

func TestStartup_NoMainWindow(t *testing.T) {
	m, h, store := newMachine(t)
	h.RemoveWindow(host.MainWindowLabel)
	store.Save(State{IsMini: true})

	st := m.Startup()
	assert.False(t, st.IsMini)
}

func TestToggleMode_EnterMini(t *testing.T) {
	for _, pin := range []bool{false, true} {
		m, h, store := newMachine(t)
		m.Startup()
		w := h.Main()
		w.X, w.Y = 300, 400

		require.NoError(t, m.ToggleMode(true, pin))

		assert.Equal(t, MiniSize, w.Size)
		assert.True(t, w.OnTop, "mini mode is always on top")
		assert.False(t, w.Resizable)
		// No saved mini position: window stays where it was.
		assert.Equal(t, int32(300), w.X)
		assert.Equal(t, int32(400), w.Y)

		want := State{MainPos: Position{X: 300, Y: 400, Initialized: true}, IsMini: true}
		assert.Equal(t, want, m.Snapshot())
		assert.Equal(t, want, store.Load())
	}
}

func TestToggleMode_RestoresTargetSlot(t *testing.T) {
	m, h, store := newMachine(t)
	store.Save(State{MiniPos: Position{X: 1500, Y: 20, Initialized: true}})
	m.Startup()
	w := h.Main()
	w.X, w.Y = 10, 10

	require.NoError(t, m.ToggleMode(true, false))
	assert.Equal(t, int32(1500), w.X)
	assert.Equal(t, int32(20), w.Y)

	// User drags the mini window, then returns to main pinned.
	w.Move(1600, 30)
	require.NoError(t, m.ToggleMode(false, true))

	assert.Equal(t, MainSize, w.Size)
	assert.True(t, w.OnTop)
	assert.Equal(t, int32(10), w.X)
	assert.Equal(t, int32(10), w.Y)

	want := State{
		MainPos: Position{X: 10, Y: 10, Initialized: true},
		MiniPos: Position{X: 1600, Y: 30, Initialized: true},
	}
	assert.Equal(t, want, store.Load())
}

func TestToggleMode_ReturnToMainUsesPin(t *testing.T) {
	for _, pin := range []bool{false, true} {
		m, h, _ := newMachine(t)
		m.Startup()
		require.NoError(t, m.ToggleMode(true, !pin))
		require.NoError(t, m.ToggleMode(false, pin))

		w := h.Main()
		assert.Equal(t, MainSize, w.Size)
		assert.Equal(t, pin, w.OnTop)
	}
}

func TestToggleMode_CapturesOutgoingPosition(t *testing.T) {
	m, h, _ := newMachine(t)
	m.Startup()
	w := h.Main()

	seq := []struct {
		mini bool
		x, y int32
	}{
		{true, 11, 12},
		{false, 21, 22},
		{true, 31, 32},
		{true, 41, 42}, // mini -> mini captures into the mini slot
		{false, 51, 52},
	}
	for _, step := range seq {
		before := m.Snapshot()
		w.X, w.Y = step.x, step.y
		require.NoError(t, m.ToggleMode(step.mini, false))

		got := m.Snapshot()
		left := got.MainPos
		if before.IsMini {
			left = got.MiniPos
		}
		assert.Equal(t, Position{X: step.x, Y: step.y, Initialized: true}, left)
	}
}

func TestToggleMode_NoMainWindow(t *testing.T) {
	m, h, store := newMachine(t)
	h.RemoveWindow(host.MainWindowLabel)

	assert.NoError(t, m.ToggleMode(true, false))
	assert.Equal(t, State{}, m.Snapshot())
	assert.Equal(t, State{}, store.Load())
}

func TestToggleMode_PositionError(t *testing.T) {
	m, h, _ := newMachine(t)
	h.Main().FailPosition = true

	err := m.ToggleMode(true, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read window position")
	assert.False(t, m.Snapshot().IsMini)
}

func TestToggleMode_Closed(t *testing.T) {
	m, _, _ := newMachine(t)
	m.Close()
	assert.ErrorIs(t, m.ToggleMode(true, false), ErrStateUnavailable)
}

func TestRecordMove_UpdatesActiveSlotOnly(t *testing.T) {
	m, h, store := newMachine(t)
	m.Startup()
	h.Main().Move(5, 6)

	assert.Equal(t, State{MainPos: Position{X: 5, Y: 6, Initialized: true}}, store.Load())

	require.NoError(t, m.ToggleMode(true, false))
	h.Main().Move(70, 80)

	got := store.Load()
	assert.Equal(t, Position{X: 5, Y: 6, Initialized: true}, got.MainPos)
	assert.Equal(t, Position{X: 70, Y: 80, Initialized: true}, got.MiniPos)
	assert.True(t, got.IsMini)
}

func TestRecordMove_ClosedIsSkipped(t *testing.T) {
	m, _, store := newMachine(t)
	m.Close()
	m.RecordMove(1, 2)
	assert.Equal(t, State{}, m.Snapshot())
	assert.Equal(t, State{}, store.Load())
}
