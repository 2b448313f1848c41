package main

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"sync"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"entropy/internal/host"
)

// notificationOptions are the flags of the hidden "notification" command.
type notificationOptions struct {
	Label       string
	Title       string
	URL         string
	X, Y        int
	Width       int
	Height      int
	Resizable   bool
	Decorations bool
	AlwaysOnTop bool
}

func (o notificationOptions) args() []string {
	return []string{
		"notification",
		"--label", o.Label,
		"--title", o.Title,
		"--url", o.URL,
		"--x", strconv.Itoa(o.X),
		"--y", strconv.Itoa(o.Y),
		"--width", strconv.Itoa(o.Width),
		"--height", strconv.Itoa(o.Height),
		"--resizable=" + strconv.FormatBool(o.Resizable),
		"--decorations=" + strconv.FormatBool(o.Decorations),
		"--on-top=" + strconv.FormatBool(o.AlwaysOnTop),
	}
}

// helperWindow is a notification window living in a child process.
type helperWindow struct {
	label string
	cmd   *exec.Cmd

	mu     sync.Mutex
	closed bool
}

// startHelperWindow launches this executable with the notification command.
// onExit runs once the child has exited, however it ended.
func startHelperWindow(spec host.WindowSpec, onExit func(w *helperWindow)) (*helperWindow, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}

	opts := notificationOptions{
		Label:       spec.Label,
		Title:       spec.Title,
		URL:         spec.URL,
		X:           spec.X,
		Y:           spec.Y,
		Width:       spec.Width,
		Height:      spec.Height,
		Resizable:   spec.Resizable,
		Decorations: spec.Decorations,
		AlwaysOnTop: spec.AlwaysOnTop,
	}
	cmd := exec.Command(exe, opts.args()...)
	setHelperProcessAttrs(cmd)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start notification process: %w", err)
	}

	w := &helperWindow{label: spec.Label, cmd: cmd}
	go func() {
		err := cmd.Wait()
		Log.Debug("notification process exited", "label", spec.Label, "error", err)
		w.mu.Lock()
		w.closed = true
		w.mu.Unlock()
		onExit(w)
	}()
	return w, nil
}

func (w *helperWindow) Label() string { return w.label }

func (w *helperWindow) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}

var errHelperWindow = errors.New("operation not supported on notification windows")

func (w *helperWindow) Position() (int32, int32, error) { return 0, 0, errHelperWindow }
func (w *helperWindow) SetPosition(x, y int32) error { return errHelperWindow }
func (w *helperWindow) SetSize(host.Size) error { return errHelperWindow }
func (w *helperWindow) SetResizable(bool) error { return errHelperWindow }
func (w *helperWindow) SetAlwaysOnTop(bool) error { return errHelperWindow }
func (w *helperWindow) IsAlwaysOnTop() (bool, error) { return true, nil }
func (w *helperWindow) Center() error { return errHelperWindow }
func (w *helperWindow) Show() error { return nil }
func (w *helperWindow) Hide() error { return w.Close() }
func (w *helperWindow) Unminimize() error { return nil }
func (w *helperWindow) Focus() error { return errHelperWindow }
func (w *helperWindow) OnMoved(func(x, y int32)) {}

func (w *helperWindow) IsVisible() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.closed, nil
}

// runNotificationWindow is the child side: a frameless webview showing the
// notification page at a fixed position.
func runNotificationWindow(opts notificationOptions) error {
	dist, err := fs.Sub(assets, "frontend/dist")
	if err != nil {
		return err
	}

	popup := &NotificationWindow{}
	return wails.Run(&options.App{
		Title:         opts.Title,
		Width:         opts.Width,
		Height:        opts.Height,
		Frameless:     !opts.Decorations,
		DisableResize: !opts.Resizable,
		AlwaysOnTop:   opts.AlwaysOnTop,
		AssetServer: &assetserver.Options{
			Handler: notificationHandler(dist, opts.URL),
		},
		OnStartup: func(ctx context.Context) {
			popup.ctx = ctx
			wailsRuntime.WindowSetPosition(ctx, opts.X, opts.Y)
		},
		Bind: []interface{}{
			popup,
		},
	})
}

// notificationHandler serves the front-end assets. The root document only
// forwards the webview to the notification URL, since webviews do not all
// follow redirects from the asset handler.
func notificationHandler(dist fs.FS, target string) http.Handler {
	files := http.FileServer(http.FS(dist))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" || r.URL.Path == "/index.html" {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			if err := forwardPage.Execute(w, target); err != nil {
				Log.Error("render notification page", "error", err)
			}
			return
		}
		files.ServeHTTP(w, r)
	})
}

var forwardPage = template.Must(template.New("forward").Parse(
	`<!DOCTYPE html><html><head><meta charset="UTF-8"></head><body><script>location.replace({{.}});</script></body></html>`))

// NotificationWindow is bound into the notification page so it can dismiss
// itself. Exposed as window.go.main.NotificationWindow.
type NotificationWindow struct {
	ctx context.Context
}

// Dismiss closes the popup by ending its process.
func (n *NotificationWindow) Dismiss() {
	if n.ctx != nil {
		wailsRuntime.Quit(n.ctx)
	}
}
