// Package tray owns the system tray icon: its two-item menu, the pin toggle
// and the icon click behaviour.
package tray

// Fixed identifiers.
const (
	TrayID        = "main-tray"
	ItemTogglePin = "toggle_pin"
	ItemQuit      = "quit"
)

// EventPinStateChanged is emitted to the front-end with the new pin flag.
const EventPinStateChanged = "pin-state-changed"

// MenuItem is one entry of the tray menu.
type MenuItem struct {
	ID        string
	Title     string
	Tooltip   string
	Checkable bool
	Checked   bool
}

// Menu is an immutable description of the tray menu. Updates build a new
// Menu and swap it in.
type Menu struct {
	Items []MenuItem
}

// BuildMenu returns the tray menu with the pin item checked when pinned.
func BuildMenu(pinned bool) Menu {
	return Menu{Items: []MenuItem{
		{ID: ItemTogglePin, Title: "Pin Window", Tooltip: "Keep the window above others", Checkable: true, Checked: pinned},
		{ID: ItemQuit, Title: "Quit", Tooltip: "Quit Entropy"},
	}}
}

// Item looks an item up by id.
func (m Menu) Item(id string) (MenuItem, bool) {
	for _, it := range m.Items {
		if it.ID == id {
			return it, true
		}
	}
	return MenuItem{}, false
}

// Pinned reports whether the pin item is checked.
func (m Menu) Pinned() bool {
	it, _ := m.Item(ItemTogglePin)
	return it.Checked
}
