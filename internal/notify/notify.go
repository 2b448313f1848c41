// Package notify opens small borderless popup windows in the bottom-right
// corner of the primary display.
package notify

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"entropy/internal/host"
)

const (
	Width  = 320
	Height = 100
	// Margin is kept between the popup and the screen edges.
	Margin = 20
	// TaskbarOffset is the extra space left at the bottom for a taskbar.
	TaskbarOffset = 50

	LabelPrefix = "notification-"
	PagePath    = "/notification.html"
	Title       = "Entropy Notification"
)

// Spawner creates and closes notification windows.
type Spawner struct {
	host host.Host
	now  func() time.Time
	log  *slog.Logger
}

// NewSpawner returns a spawner using the wall clock.
func NewSpawner(h host.Host, log *slog.Logger) *Spawner {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Spawner{host: h, now: time.Now, log: log}
}

// Position returns the logical top-left corner for a popup on m.
func Position(m host.Monitor) (x, y int) {
	w, h := m.LogicalSize()
	x = int(w) - Width - Margin
	y = int(h) - Height - Margin - TaskbarOffset
	return x, y
}

// PageURL returns the content URL with every parameter percent-encoded.
func PageURL(title, body, kind string) string {
	return PagePath +
		"?title=" + encode(title) +
		"&body=" + encode(body) +
		"&type=" + encode(kind)
}

// encode percent-encodes s, spaces included.
func encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Label returns the window label for a popup created at t.
func Label(t time.Time) string {
	return LabelPrefix + strconv.FormatInt(t.UnixMilli(), 10)
}

// Show opens a popup and returns its label for a later Close.
func (s *Spawner) Show(title, body, kind string) (string, error) {
	m, err := s.host.PrimaryMonitor()
	if err != nil {
		return "", fmt.Errorf("resolve primary monitor: %w", err)
	}

	x, y := Position(m)
	label := Label(s.now())
	spec := host.WindowSpec{
		Label:       label,
		Title:       Title,
		URL:         PageURL(title, body, kind),
		Width:       Width,
		Height:      Height,
		X:           x,
		Y:           y,
		Resizable:   false,
		Decorations: false,
		AlwaysOnTop: true,
		SkipTaskbar: true,
		Focused:     false,
	}
	if _, err := s.host.CreateWindow(spec); err != nil {
		return "", fmt.Errorf("create notification window: %w", err)
	}

	s.log.Debug("notification shown", "label", label, "type", kind, "x", x, "y", y)
	return label, nil
}

// Close closes the popup with the given label. Unknown labels are ignored.
func (s *Spawner) Close(label string) error {
	w, ok := s.host.Window(label)
	if !ok {
		return nil
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close notification %s: %w", label, err)
	}
	return nil
}
