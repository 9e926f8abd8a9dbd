package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rhythm/internal/config"
	"github.com/vovakirdan/tui-rhythm/internal/core"
	"github.com/vovakirdan/tui-rhythm/internal/rhythm"
)

// KeyMap defines the key bindings of the game screen.
type KeyMap struct {
	Left    key.Binding
	Up      key.Binding
	Down    key.Binding
	Right   key.Binding
	Start   key.Binding
	Reset   key.Binding
	Record  key.Binding
	AutoHit key.Binding
	Copy    key.Binding
	Import  key.Binding
	Stop    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Reset, k.Record, k.AutoHit, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Up, k.Down, k.Right},
		{k.Start, k.Reset, k.Stop},
		{k.Record, k.Copy, k.Import, k.AutoHit},
		{k.Help, k.Quit},
	}
}

// NewKeyMap builds bindings with lane keys taken from the input config.
func NewKeyMap(in config.InputConfig) KeyMap {
	lane := func(k, name string) key.Binding {
		return key.NewBinding(key.WithKeys(k), key.WithHelp(k, name))
	}
	return KeyMap{
		Left:  lane(in.Left, "left lane"),
		Up:    lane(in.Up, "up lane"),
		Down:  lane(in.Down, "down lane"),
		Right: lane(in.Right, "right lane"),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "play"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Record: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "record"),
		),
		AutoHit: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "auto-hit"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy chart"),
		),
		Import: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("paste", "import chart"),
		),
		Stop: key.NewBinding(
			key.WithKeys("x", "esc"),
			key.WithHelp("x", "stop"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to actions.
// Lane keys are checked first so a lane bound to a command key wins.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a mapper for the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	return &KeyMapper{keys: keys}
}

// MapKey translates a key message to an action (may be ActionNone).
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	k := km.keys
	switch {
	case key.Matches(msg, k.Left):
		return core.ActionLaneLeft
	case key.Matches(msg, k.Up):
		return core.ActionLaneUp
	case key.Matches(msg, k.Down):
		return core.ActionLaneDown
	case key.Matches(msg, k.Right):
		return core.ActionLaneRight
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Start):
		return core.ActionStart
	case key.Matches(msg, k.Reset):
		return core.ActionReset
	case key.Matches(msg, k.Record):
		return core.ActionRecord
	case key.Matches(msg, k.AutoHit):
		return core.ActionAutoHit
	case key.Matches(msg, k.Copy):
		return core.ActionCopy
	case key.Matches(msg, k.Import):
		return core.ActionImport
	case key.Matches(msg, k.Stop):
		return core.ActionStop
	case key.Matches(msg, k.Help):
		return core.ActionHelp
	}
	return core.ActionNone
}

// LaneOf returns the lane a lane action presses.
func LaneOf(a core.Action) (rhythm.Lane, bool) {
	if !a.IsLane() {
		return 0, false
	}
	return rhythm.Lanes[a-core.ActionLaneLeft], true
}

// holdTracker synthesizes key releases. Terminals only report presses,
// and auto-repeat while a key is held, so a lane counts as held until no
// press for it has arrived within the release window.
type holdTracker struct {
	window time.Duration
	down   [len(rhythm.Lanes)]bool
	seen   [len(rhythm.Lanes)]time.Time
}

func newHoldTracker(window time.Duration) *holdTracker {
	return &holdTracker{window: window}
}

// Press records a press and reports whether it is a new press edge.
func (h *holdTracker) Press(l rhythm.Lane, now time.Time) bool {
	edge := !h.down[l]
	h.down[l] = true
	h.seen[l] = now
	return edge
}

// Expired returns the lanes whose release window has passed and marks
// them released.
func (h *holdTracker) Expired(now time.Time) []rhythm.Lane {
	var released []rhythm.Lane
	for _, l := range rhythm.Lanes {
		if h.down[l] && now.Sub(h.seen[l]) >= h.window {
			h.down[l] = false
			released = append(released, l)
		}
	}
	return released
}
