package rhythm

import (
	"fmt"
	"slices"
	"time"

	"github.com/vovakirdan/tui-rhythm/internal/config"
)

// Recorder captures key presses as chart events relative to the moment
// recording began, minus a fixed calibration offset.
type Recorder struct {
	calibrationMs int
	maxLines      int

	active bool
	start  time.Time
	events []Event
	lines  []string
}

// NewRecorder creates an inactive recorder.
func NewRecorder(cfg config.RecordingConfig) *Recorder {
	return &Recorder{calibrationMs: cfg.CalibrationMs, maxLines: cfg.LogLines}
}

// Begin starts a fresh capture at now, discarding any previous one.
func (r *Recorder) Begin(now time.Time) {
	r.active = true
	r.start = now
	r.events = nil
	r.lines = nil
}

// Capture records a press on lane at now.
func (r *Recorder) Capture(lane Lane, now time.Time) Event {
	ev := Event{
		Lane:     lane,
		OffsetMs: int(now.Sub(r.start).Milliseconds()) - r.calibrationMs,
	}
	r.events = append(r.events, ev)

	r.lines = append(r.lines, fmt.Sprintf("Recorded: %s, at %dms", lane, ev.OffsetMs))
	if over := len(r.lines) - r.maxLines; over > 0 {
		r.lines = r.lines[over:]
	}
	return ev
}

// End stops capturing and returns the recorded chart.
func (r *Recorder) End() []Event {
	r.active = false
	events := r.events
	if events == nil {
		events = []Event{}
	}
	return slices.Clone(events)
}

// Active reports whether a capture is in progress.
func (r *Recorder) Active() bool { return r.active }

// Events returns a copy of the events captured so far.
func (r *Recorder) Events() []Event { return slices.Clone(r.events) }

// Lines returns the rolling display log, oldest first.
func (r *Recorder) Lines() []string { return slices.Clone(r.lines) }

// Clear drops the display log.
func (r *Recorder) Clear() { r.lines = nil }
