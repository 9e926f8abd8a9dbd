// Package rhythm implements the timing and scoring engine of the game:
// spawn scheduling, motion and misses, hit judging, recording, the chart
// codec and the session state machine that ties them together.
//
// Nothing in this package talks to a terminal, a speaker or a database;
// hosts plug those in through the Cue and ChartSlot interfaces and drive
// the session with Tick, KeyDown and KeyUp.
package rhythm

import (
	"fmt"

	"github.com/vovakirdan/tui-rhythm/internal/config"
)

// Lane is one of the four input channels.
type Lane int

const (
	LaneLeft Lane = iota
	LaneUp
	LaneDown
	LaneRight
)

const laneCount = 4

// Lanes lists every lane in field order, left to right.
var Lanes = [laneCount]Lane{LaneLeft, LaneUp, LaneDown, LaneRight}

// Valid reports whether l names one of the four lanes.
func (l Lane) Valid() bool {
	return l >= LaneLeft && l <= LaneRight
}

// String returns the lane name used in the structured chart form.
func (l Lane) String() string {
	switch l {
	case LaneLeft:
		return "left"
	case LaneUp:
		return "up"
	case LaneDown:
		return "down"
	case LaneRight:
		return "right"
	default:
		return fmt.Sprintf("lane(%d)", int(l))
	}
}

// Char returns the single-letter code used in the compact chart form.
func (l Lane) Char() byte {
	switch l {
	case LaneLeft:
		return 'L'
	case LaneUp:
		return 'U'
	case LaneDown:
		return 'D'
	case LaneRight:
		return 'R'
	default:
		return '?'
	}
}

// ParseLane converts a structured-form lane name.
func ParseLane(s string) (Lane, error) {
	for _, l := range Lanes {
		if l.String() == s {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown lane %q", s)
}

func laneFromChar(s string) (Lane, bool) {
	if len(s) != 1 {
		return 0, false
	}
	for _, l := range Lanes {
		if l.Char() == s[0] {
			return l, true
		}
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (l Lane) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("cannot marshal %s", l)
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Lane) UnmarshalText(text []byte) error {
	parsed, err := ParseLane(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Note is a falling token. Real notes score when struck and cost points
// when missed; echo notes are visual feedback spawned while recording and
// never take part in scoring.
type Note struct {
	ID   uint64  // Spawn sequence number, unique per session
	Lane Lane
	Echo bool
	Y    float64 // Vertical position in field units, grows downward
	X    float64 // Horizontal position, fixed per lane
}

// LaneX returns the horizontal field position of a lane.
func LaneX(field config.FieldConfig, l Lane) float64 {
	center := field.Width / 2
	switch l {
	case LaneLeft:
		return center - field.LaneOuter
	case LaneUp:
		return center - field.LaneSpacing
	case LaneDown:
		return center + field.LaneSpacing
	default:
		return center + field.LaneOuter
	}
}
