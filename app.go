package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/gen2brain/beeep"
	"github.com/ra1phdd/systray-on-wails"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"entropy/internal/autostart"
	"entropy/internal/config"
	"entropy/internal/shell"
	"entropy/internal/sqlbridge"
	"entropy/internal/windowstate"
)

//go:embed build/appicon.png
var appIconPNG []byte

// DesktopApp is the Wails application binding struct.
// Methods on this struct are exposed to the frontend via window.go.main.DesktopApp.
type DesktopApp struct {
	ctx       context.Context
	host      *wailsHost
	shell     *shell.Shell
	autostart *autostart.Manager

	cfgMu sync.Mutex
	cfg   *config.AppConfig

	dbPath   string
	dbMu     sync.Mutex
	db       *sqlbridge.Bridge
	dbClosed bool
}

var errDatabaseClosed = errors.New("database is closed")

// NewDesktopApp wires the shell to the Wails host. Nothing native runs
// until startup.
func NewDesktopApp(cfg *config.AppConfig) *DesktopApp {
	h := newWailsHost()
	a := &DesktopApp{host: h, cfg: cfg, dbPath: config.Path(sqlbridge.DBFileName)}
	a.shell = shell.New(shell.Config{
		Host:        h,
		Shortcuts:   newGlobalShortcuts(),
		Store:       windowstate.NewStore(config.Path(windowstate.StateFileName), Log.With("component", "store")),
		TrayBackend: newSystrayBackend(),
		TrayIcon:    trayIcon(),
		TrayTooltip: mainWindowTitle,
		Logger:      Log,
	})

	exe, err := os.Executable()
	if err != nil {
		Log.Error("locate executable for autostart", "error", err)
		exe = os.Args[0]
	}
	a.autostart = autostart.New(config.Identifier, mainWindowTitle, exe)
	return a
}

// startup is called when the Wails app starts.
func (a *DesktopApp) startup(ctx context.Context) {
	Log.Debug("Wails OnStartup begin")
	a.ctx = ctx
	a.host.bind(ctx)

	beeep.AppName = mainWindowTitle

	if err := a.shell.Startup(); err != nil {
		Log.Error("startup failed", "error", err)
		wailsRuntime.Quit(ctx)
		return
	}
	Log.Debug("Wails OnStartup done")
}

// onDomReady is called when the DOM is fully loaded.
func (a *DesktopApp) onDomReady(ctx context.Context) {
	Log.Debug("Wails OnDomReady: UI ready")
}

// shutdown is called when the Wails app is closing.
func (a *DesktopApp) shutdown(ctx context.Context) {
	a.shell.Shutdown()
	a.host.closeHelpers()
	a.closeDatabase()
	systray.Quit()
}

// onSecondInstance re-shows the window when the app is launched again.
func (a *DesktopApp) onSecondInstance() {
	Log.Info("second instance launched")
	a.shell.SecondInstance()
}

// Greet returns a greeting for name.
func (a *DesktopApp) Greet(name string) string {
	return fmt.Sprintf("Hello, %s! You've been greeted from Go!", name)
}

// ShowNotification opens a notification popup and returns its label.
func (a *DesktopApp) ShowNotification(title, body, notificationType string) (string, error) {
	return a.shell.ShowNotification(title, body, notificationType)
}

// CloseNotification closes the popup with the given label.
func (a *DesktopApp) CloseNotification(label string) error {
	return a.shell.CloseNotification(label)
}

// ForceShowWindow brings the main window to the front.
func (a *DesktopApp) ForceShowWindow() error {
	return a.shell.ForceShow()
}

// UpdateTrayPinState syncs the tray checkmark with the UI pin state.
func (a *DesktopApp) UpdateTrayPinState(isPinned bool) error {
	return a.shell.UpdateTrayPinState(isPinned)
}

// ToggleMiniWindow switches between the main and mini layouts.
func (a *DesktopApp) ToggleMiniWindow(isMini, isPinned bool) error {
	return a.shell.ToggleMiniWindow(isMini, isPinned)
}

// IsWindowPinned reports whether the main window is always on top.
func (a *DesktopApp) IsWindowPinned() bool {
	return a.shell.IsPinned()
}

// SetWindowPinned pins or unpins the main window.
func (a *DesktopApp) SetWindowPinned(pinned bool) error {
	return a.shell.SetPinned(pinned)
}

// HideWindow hides the main window to the tray.
func (a *DesktopApp) HideWindow() error {
	return a.shell.Hide()
}

// SendSystemNotification shows an OS toast.
func (a *DesktopApp) SendSystemNotification(title, body string) error {
	if err := beeep.Notify(title, body, appIconPNG); err != nil {
		return fmt.Errorf("send system notification: %w", err)
	}
	return nil
}

// IsAutostartEnabled reports whether the app launches at login.
func (a *DesktopApp) IsAutostartEnabled() bool {
	return a.autostart.IsEnabled()
}

// SetAutostart adds or removes the login entry.
func (a *DesktopApp) SetAutostart(enabled bool) error {
	if err := a.autostart.Set(enabled); err != nil {
		return fmt.Errorf("set autostart: %w", err)
	}
	a.cfgMu.Lock()
	defer a.cfgMu.Unlock()
	a.cfg.Autostart = enabled
	if err := config.Save(config.Path(config.FileName), a.cfg); err != nil {
		Log.Error("save config failed", "error", err)
	}
	return nil
}

// SetLogLevel changes the log level and persists it.
func (a *DesktopApp) SetLogLevel(level string) {
	SetLogLevel(level)
	a.cfgMu.Lock()
	defer a.cfgMu.Unlock()
	a.cfg.LogLevel = GetLogLevel()
	if err := config.Save(config.Path(config.FileName), a.cfg); err != nil {
		Log.Error("save config failed", "error", err)
	}
}

// GetLogLevel returns the current log level.
func (a *DesktopApp) GetLogLevel() string {
	return GetLogLevel()
}

// database opens the SQLite file on first use.
func (a *DesktopApp) database() (*sqlbridge.Bridge, error) {
	a.dbMu.Lock()
	defer a.dbMu.Unlock()
	if a.dbClosed {
		return nil, errDatabaseClosed
	}
	if a.db == nil {
		db, err := sqlbridge.Open(a.dbPath)
		if err != nil {
			Log.Error("open database", "error", err)
			return nil, err
		}
		a.db = db
	}
	return a.db, nil
}

// closeDatabase closes the database if it was opened. Later queries fail
// with errDatabaseClosed instead of opening it again.
func (a *DesktopApp) closeDatabase() {
	a.dbMu.Lock()
	defer a.dbMu.Unlock()
	a.dbClosed = true
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		Log.Error("close database", "error", err)
	}
	a.db = nil
}

// DBExecute runs a statement against the app database.
func (a *DesktopApp) DBExecute(query string, args []any) (sqlbridge.ExecResult, error) {
	db, err := a.database()
	if err != nil {
		return sqlbridge.ExecResult{}, err
	}
	return db.Execute(a.context(), query, args...)
}

// DBSelect runs a query against the app database and returns its rows.
func (a *DesktopApp) DBSelect(query string, args []any) ([]map[string]any, error) {
	db, err := a.database()
	if err != nil {
		return nil, err
	}
	return db.Select(a.context(), query, args...)
}

func (a *DesktopApp) context() context.Context {
	if a.ctx == nil {
		return context.Background()
	}
	return a.ctx
}
