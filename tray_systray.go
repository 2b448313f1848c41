package main

import (
	"errors"
	"sync"

	"github.com/ra1phdd/systray-on-wails"

	"entropy/internal/tray"
)

// systrayBackend draws the tray with systray-on-wails. The native library
// cannot remove menu items, so a swapped-in menu is applied onto the native
// items created for the first one, matched by id.
type systrayBackend struct {
	mu      sync.Mutex
	items   map[string]*systray.MenuItem
	ready   bool
	pending *tray.Menu
}

func newSystrayBackend() *systrayBackend {
	return &systrayBackend{items: make(map[string]*systray.MenuItem)}
}

func (b *systrayBackend) Install(opts tray.Options) error {
	if len(opts.Menu.Items) == 0 {
		return errors.New("tray menu is empty")
	}

	systray.Register(func() {
		systray.SetIcon(opts.Icon)
		systray.SetTooltip(opts.Tooltip)

		b.mu.Lock()
		for _, it := range opts.Menu.Items {
			var item *systray.MenuItem
			if it.Checkable {
				item = systray.AddMenuItemCheckbox(it.Title, it.Tooltip, it.Checked)
			} else {
				item = systray.AddMenuItem(it.Title, it.Tooltip)
			}
			b.items[it.ID] = item
			go forwardClicks(it.ID, item, opts.OnMenu)
		}
		b.ready = true
		pending := b.pending
		b.pending = nil
		b.mu.Unlock()

		if pending != nil {
			b.SetMenu(*pending)
		}

		// Left clicks toggle the window instead of opening the menu.
		subclassSystray(opts.OnIcon)
	}, nil)
	return nil
}

func (b *systrayBackend) SetMenu(menu tray.Menu) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.ready {
		b.pending = &menu
		return nil
	}

	for _, it := range menu.Items {
		item, ok := b.items[it.ID]
		if !ok {
			return errors.New("tray menu item " + it.ID + " does not exist")
		}
		item.SetTitle(it.Title)
		item.SetTooltip(it.Tooltip)
		if !it.Checkable {
			continue
		}
		if it.Checked {
			item.Check()
		} else {
			item.Uncheck()
		}
	}
	return nil
}

func forwardClicks(id string, item *systray.MenuItem, fn func(string)) {
	for range item.ClickedCh {
		if fn != nil {
			fn(id)
		}
	}
}
