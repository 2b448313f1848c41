package autostart

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEntry struct {
	enabled    bool
	enableErr  error
	disableErr error
	calls      []string
}

func (f *fakeEntry) IsEnabled() bool { return f.enabled }

func (f *fakeEntry) Enable() error {
	f.calls = append(f.calls, "enable")
	if f.enableErr != nil {
		return f.enableErr
	}
	f.enabled = true
	return nil
}

func (f *fakeEntry) Disable() error {
	f.calls = append(f.calls, "disable")
	if f.disableErr != nil {
		return f.disableErr
	}
	f.enabled = false
	return nil
}

func newTestManager(e *fakeEntry) *Manager {
	m := New("com.entropy.app", "Entropy", "/opt/Entropy Shell/entropy", "--minimized")
	m.entry = e
	return m
}

func TestSet(t *testing.T) {
	e := &fakeEntry{}
	m := newTestManager(e)

	assert.False(t, m.IsEnabled())
	require.NoError(t, m.Set(true))
	assert.True(t, m.IsEnabled())
	require.NoError(t, m.Set(false))
	assert.False(t, m.IsEnabled())
	assert.Equal(t, []string{"enable", "disable"}, e.calls)
}

func TestDisable_MissingEntry(t *testing.T) {
	e := &fakeEntry{disableErr: errors.New("remove: no such file")}
	m := newTestManager(e)

	assert.NoError(t, m.Disable())
	assert.Empty(t, e.calls)
}

func TestErrorsAreWrapped(t *testing.T) {
	cause := errors.New("permission denied")

	err := newTestManager(&fakeEntry{enableErr: cause}).Set(true)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "enable login item")

	err = newTestManager(&fakeEntry{enabled: true, disableErr: cause}).Set(false)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disable login item")
}

func TestCommandLine(t *testing.T) {
	m := New("com.entropy.app", "Entropy", `/Applications/My App/entropy`, "plain", `say "hi"`)
	assert.Equal(t, `"/Applications/My App/entropy" plain "say \"hi\""`, m.commandLine())
}
