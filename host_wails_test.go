package main

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entropy/internal/host"
	"entropy/internal/windowstate"
)

// recordSizeCalls replaces the runtime size calls for one test.
func recordSizeCalls(t *testing.T) *[]string {
	t.Helper()
	var calls []string
	setSize, setMin, setMax := windowSetSize, windowSetMinSize, windowSetMaxSize
	t.Cleanup(func() {
		windowSetSize, windowSetMinSize, windowSetMaxSize = setSize, setMin, setMax
	})
	windowSetSize = func(_ context.Context, w, h int) { calls = append(calls, fmt.Sprintf("size %dx%d", w, h)) }
	windowSetMinSize = func(_ context.Context, w, h int) { calls = append(calls, fmt.Sprintf("min %dx%d", w, h)) }
	windowSetMaxSize = func(_ context.Context, w, h int) { calls = append(calls, fmt.Sprintf("max %dx%d", w, h)) }
	return &calls
}

// lastLimits returns the final min and max calls in calls.
func lastLimits(calls []string) (minCall, maxCall string) {
	for _, c := range calls {
		switch c[:3] {
		case "min":
			minCall = c
		case "max":
			maxCall = c
		}
	}
	return minCall, maxCall
}

func newTestMainWindow() *mainWindow {
	return &mainWindow{ctx: context.Background(), visible: true, size: windowstate.MainSize}
}

func TestMainWindow_MiniSizeIsPinned(t *testing.T) {
	calls := recordSizeCalls(t)
	w := newTestMainWindow()

	// The order the mode switch uses.
	require.NoError(t, w.SetSize(windowstate.MiniSize))
	require.NoError(t, w.SetResizable(false))

	minCall, maxCall := lastLimits(*calls)
	assert.Equal(t, "min 180x44", minCall)
	assert.Equal(t, "max 180x44", maxCall)
	assert.Equal(t, "size 180x44", (*calls)[len(*calls)-3])
	assert.NotContains(t, *calls, "min 385x640")
}

func TestMainWindow_FixedSizePinnedBeforeResize(t *testing.T) {
	calls := recordSizeCalls(t)
	w := newTestMainWindow()

	require.NoError(t, w.SetSize(windowstate.MiniSize))
	assert.Equal(t, []string{
		"min 0x0", "max 0x0",
		"min 180x44", "max 180x44",
		"size 180x44",
	}, *calls)

	*calls = nil
	require.NoError(t, w.SetSize(windowstate.MainSize))
	require.NoError(t, w.SetResizable(false))
	minCall, maxCall := lastLimits(*calls)
	assert.Equal(t, "min 385x640", minCall)
	assert.Equal(t, "max 385x640", maxCall)
}

func TestMainWindow_Resizable(t *testing.T) {
	calls := recordSizeCalls(t)
	w := newTestMainWindow()

	require.NoError(t, w.SetResizable(true))
	require.NoError(t, w.SetSize(host.Size{Width: 500, Height: 700}))
	assert.Equal(t, []string{
		"min 0x0", "max 0x0",
		"min 0x0", "max 0x0",
		"size 500x700",
	}, *calls)

	*calls = nil
	require.NoError(t, w.SetResizable(false))
	assert.Equal(t, []string{"min 500x700", "max 500x700"}, *calls)
}

// fakeLaunches replaces the notification process launcher for one test.
func fakeLaunches(t *testing.T) (launched *int, exits map[*helperWindow]func(*helperWindow)) {
	t.Helper()
	count := 0
	exits = make(map[*helperWindow]func(*helperWindow))
	saved := launchHelper
	t.Cleanup(func() { launchHelper = saved })
	launchHelper = func(spec host.WindowSpec, onExit func(*helperWindow)) (*helperWindow, error) {
		count++
		w := &helperWindow{label: spec.Label}
		exits[w] = onExit
		return w, nil
	}
	return &count, exits
}

func TestCreateWindow_LabelInUse(t *testing.T) {
	launched, _ := fakeLaunches(t)
	h := newWailsHost()
	spec := host.WindowSpec{Label: "notification-1"}

	_, err := h.CreateWindow(spec)
	require.NoError(t, err)
	_, err = h.CreateWindow(spec)
	assert.ErrorIs(t, err, host.ErrWindowExists)
	assert.Equal(t, 1, *launched)

	_, err = h.CreateWindow(host.WindowSpec{Label: host.MainWindowLabel})
	assert.ErrorIs(t, err, host.ErrWindowExists)
}

func TestCreateWindow_ConcurrentSameLabel(t *testing.T) {
	launched, _ := fakeLaunches(t)
	h := newWailsHost()
	spec := host.WindowSpec{Label: "notification-1"}

	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, err := h.CreateWindow(spec)
			errs <- err
		}()
	}
	created := 0
	for i := 0; i < 8; i++ {
		if <-errs == nil {
			created++
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, *launched)
}

func TestForgetHelper_KeepsNewerWindow(t *testing.T) {
	_, exits := fakeLaunches(t)
	h := newWailsHost()
	spec := host.WindowSpec{Label: "notification-1"}

	first, err := h.CreateWindow(spec)
	require.NoError(t, err)
	firstHelper := first.(*helperWindow)
	exits[firstHelper](firstHelper)
	_, ok := h.Window(spec.Label)
	require.False(t, ok)

	second, err := h.CreateWindow(spec)
	require.NoError(t, err)

	// A late exit report for the first process must not drop the second.
	exits[firstHelper](firstHelper)
	got, ok := h.Window(spec.Label)
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestEmit_BeforeStartupIsDropped(t *testing.T) {
	h := newWailsHost()
	assert.NotPanics(t, func() { h.Emit("pin-state-changed", true) })
}
