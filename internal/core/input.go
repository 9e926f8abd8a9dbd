package core

// Action is a semantic input, abstracted from physical keys.
// Hosts map keys to actions; the session only ever sees actions.
type Action int

const (
	ActionNone Action = iota
	ActionLaneLeft
	ActionLaneUp
	ActionLaneDown
	ActionLaneRight
	ActionStart   // Enter - start playing from Idle
	ActionReset   // R - stop everything and restart Playing
	ActionRecord  // E - toggle recording
	ActionAutoHit // T - toggle auto-hit
	ActionCopy    // C - copy the saved chart to the clipboard
	ActionImport  // Ctrl+V - prompt for a pasted chart
	ActionStop    // X - stop to Idle
	ActionHelp    // ? - toggle the full help view
	ActionQuit    // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLaneLeft:
		return "Left"
	case ActionLaneUp:
		return "Up"
	case ActionLaneDown:
		return "Down"
	case ActionLaneRight:
		return "Right"
	case ActionStart:
		return "Start"
	case ActionReset:
		return "Reset"
	case ActionRecord:
		return "Record"
	case ActionAutoHit:
		return "AutoHit"
	case ActionCopy:
		return "Copy"
	case ActionImport:
		return "Import"
	case ActionStop:
		return "Stop"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsLane reports whether the action presses one of the four lanes.
func (a Action) IsLane() bool {
	return a >= ActionLaneLeft && a <= ActionLaneRight
}
