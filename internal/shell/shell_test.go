package shell

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entropy/internal/host"
	"entropy/internal/host/hosttest"
	"entropy/internal/tray"
	"entropy/internal/windowstate"
)

type trayStub struct {
	opts       *tray.Options
	installErr error
}

func (b *trayStub) Install(opts tray.Options) error {
	if b.installErr != nil {
		return b.installErr
	}
	b.opts = &opts
	return nil
}

func (b *trayStub) SetMenu(tray.Menu) error { return nil }

type fixture struct {
	shell     *Shell
	host      *hosttest.Host
	shortcuts *hosttest.Shortcuts
	tray      *trayStub
	store     *windowstate.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		host:      hosttest.New(),
		shortcuts: hosttest.NewShortcuts(),
		tray:      &trayStub{},
		store:     windowstate.NewStore(filepath.Join(t.TempDir(), windowstate.StateFileName), nil),
	}
	f.shell = New(Config{
		Host:        f.host,
		Shortcuts:   f.shortcuts,
		Store:       f.store,
		TrayBackend: f.tray,
		TrayIcon:    []byte{0x89, 'P', 'N', 'G'},
		TrayTooltip: "Entropy",
	})
	return f
}

func TestStartup(t *testing.T) {
	f := newFixture(t)
	f.store.Save(windowstate.State{
		MainPos: windowstate.Position{X: 40, Y: 50, Initialized: true},
		IsMini:  true,
	})

	require.NoError(t, f.shell.Startup())

	w := f.host.Main()
	assert.Equal(t, windowstate.MainSize, w.Size)
	assert.Equal(t, int32(40), w.X)
	assert.False(t, f.shell.State().Snapshot().IsMini)
	require.NotNil(t, f.tray.opts)
	assert.Equal(t, tray.TrayID, f.tray.opts.ID)
	assert.Equal(t,
		[]string{"unregister:" + ToggleShortcut, "register:" + ToggleShortcut},
		f.shortcuts.Calls)
}

func TestStartup_TrayFailureIsFatal(t *testing.T) {
	f := newFixture(t)
	f.tray.installErr = errors.New("no status notifier")

	err := f.shell.Startup()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create tray")
}

func TestStartup_ShortcutFailureIsLogged(t *testing.T) {
	f := newFixture(t)
	f.shortcuts.RegisterErr = errors.New("grabbed by another app")
	assert.NoError(t, f.shell.Startup())
}

func TestStartup_MoveListenerPersists(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.shell.Startup())

	f.host.Main().Move(123, 456)
	assert.Equal(t,
		windowstate.Position{X: 123, Y: 456, Initialized: true},
		f.store.Load().MainPos)
}

func TestShortcutTogglesVisibility(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.shell.Startup())
	w := f.host.Main()

	require.True(t, f.shortcuts.Press(ToggleShortcut))
	assert.False(t, w.Visible)

	require.True(t, f.shortcuts.Press(ToggleShortcut))
	assert.True(t, w.Visible)
	assert.True(t, w.Focused)
}

func TestTrayClickMatchesShortcut(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.shell.Startup())
	w := f.host.Main()

	f.tray.opts.OnIcon(tray.IconEvent{Button: tray.ButtonLeft, State: tray.ButtonUp})
	assert.False(t, w.Visible)
	f.shortcuts.Press(ToggleShortcut)
	assert.True(t, w.Visible)
}

func TestForceShow(t *testing.T) {
	f := newFixture(t)
	w := f.host.Main()
	w.Visible = false
	w.Minimized = true

	require.NoError(t, f.shell.ForceShow())
	assert.True(t, w.Visible)
	assert.False(t, w.Minimized)
	assert.True(t, w.Focused)
	assert.Equal(t, []string{"Show", "Unminimize", "Focus"}, w.Calls)
}

func TestForceShow_NoWindow(t *testing.T) {
	f := newFixture(t)
	f.host.RemoveWindow(host.MainWindowLabel)
	assert.NoError(t, f.shell.ForceShow())
	assert.NotPanics(t, f.shell.SecondInstance)
}

func TestSecondInstance(t *testing.T) {
	f := newFixture(t)
	w := f.host.Main()
	w.Visible = false

	f.shell.SecondInstance()
	assert.True(t, w.Visible)
	assert.True(t, w.Focused)
}

func TestToggleMiniWindow(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.shell.Startup())

	require.NoError(t, f.shell.ToggleMiniWindow(true, false))
	assert.Equal(t, windowstate.MiniSize, f.host.Main().Size)
	assert.True(t, f.store.Load().IsMini)

	require.NoError(t, f.shell.ToggleMiniWindow(false, true))
	assert.Equal(t, windowstate.MainSize, f.host.Main().Size)
	assert.True(t, f.host.Main().OnTop)
}

func TestPinCommands(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.shell.Startup())

	require.NoError(t, f.shell.UpdateTrayPinState(true))
	assert.True(t, f.shell.Tray().Menu().Pinned())
	require.NoError(t, f.shell.UpdateTrayPinState(false))
	assert.False(t, f.shell.Tray().Menu().Pinned())

	require.NoError(t, f.shell.SetPinned(true))
	assert.True(t, f.shell.IsPinned())
	assert.True(t, f.shell.Tray().Menu().Pinned())

	require.NoError(t, f.shell.Hide())
	assert.False(t, f.host.Main().Visible)
}

func TestNotifications(t *testing.T) {
	f := newFixture(t)

	label, err := f.shell.ShowNotification("Break over", "Back to work", "pomodoro")
	require.NoError(t, err)
	_, ok := f.host.Window(label)
	assert.True(t, ok)

	require.NoError(t, f.shell.CloseNotification(label))
	assert.NoError(t, f.shell.CloseNotification(label))
	assert.NoError(t, f.shell.CloseNotification("notification-unknown"))
}

func TestShutdown(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.shell.Startup())
	f.shell.Shutdown()

	assert.ErrorIs(t, f.shell.ToggleMiniWindow(true, false), windowstate.ErrStateUnavailable)
	assert.False(t, f.shortcuts.Press(ToggleShortcut))
}
