// Package windowstate remembers where the main window sits in each of its two
// layouts and persists that record to disk after every change.
package windowstate

import "entropy/internal/host"

// StateFileName is the file the state is persisted to, inside the app config dir.
const StateFileName = "window-state-custom.json"

var (
	// MainSize is the full layout.
	MainSize = host.Size{Width: 385, Height: 640}
	// MiniSize is the compact always-on-top layout.
	MiniSize = host.Size{Width: 180, Height: 44}
)

// Position is a remembered outer window position in physical pixels.
// Initialized is false until a position has been recorded.
type Position struct {
	X           int32 `json:"x" yaml:"x"`
	Y           int32 `json:"y" yaml:"y"`
	Initialized bool  `json:"initialized" yaml:"initialized"`
}

// State holds one slot per layout. IsMini selects the active slot.
type State struct {
	MainPos Position `json:"main_pos" yaml:"main_pos"`
	MiniPos Position `json:"mini_pos" yaml:"mini_pos"`
	IsMini  bool     `json:"is_mini" yaml:"is_mini"`
}

// active returns the slot move events currently write to.
func (s *State) active() *Position {
	if s.IsMini {
		return &s.MiniPos
	}
	return &s.MainPos
}

// slot returns the slot belonging to the given layout.
func (s *State) slot(mini bool) *Position {
	if mini {
		return &s.MiniPos
	}
	return &s.MainPos
}

func sizeFor(mini bool) host.Size {
	if mini {
		return MiniSize
	}
	return MainSize
}
