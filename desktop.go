package main

import (
	"embed"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"entropy/internal/config"
	"entropy/internal/windowstate"
)

//go:embed all:frontend/dist
var assets embed.FS

// exitProcess ends the process with a non-zero code, skipping Wails'
// orderly shutdown.
var exitProcess = os.Exit

// runDesktop starts the main window and blocks until the app quits.
func runDesktop(cfg *config.AppConfig) error {
	app := NewDesktopApp(cfg)

	return wails.Run(&options.App{
		Title:             mainWindowTitle,
		Width:             windowstate.MainSize.Width,
		Height:            windowstate.MainSize.Height,
		DisableResize:     true,
		Frameless:         true,
		HideWindowOnClose: true,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		SingleInstanceLock: &options.SingleInstanceLock{
			UniqueId: config.Identifier,
			OnSecondInstanceLaunch: func(options.SecondInstanceData) {
				app.onSecondInstance()
			},
		},
		OnStartup:  app.startup,
		OnDomReady: app.onDomReady,
		OnShutdown: app.shutdown,
		Bind: []interface{}{
			app,
		},
	})
}
