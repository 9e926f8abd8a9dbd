package rhythm

import (
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/tui-rhythm/internal/config"
)

func TestRecorderOffsets(t *testing.T) {
	r := NewRecorder(config.RecordingConfig{CalibrationMs: 1100, LogLines: 10})
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	r.Begin(start)
	r.Capture(LaneUp, start.Add(1600*time.Millisecond))
	r.Capture(LaneLeft, start.Add(2000*time.Millisecond))
	r.Capture(LaneDown, start.Add(300*time.Millisecond))

	got := r.End()
	want := []Event{
		{Lane: LaneUp, OffsetMs: 500},
		{Lane: LaneLeft, OffsetMs: 900},
		{Lane: LaneDown, OffsetMs: -800},
	}
	if !slices.Equal(got, want) {
		t.Errorf("End = %+v, expected %+v", got, want)
	}
	if r.Active() {
		t.Error("recorder should be inactive after End")
	}
}

func TestRecorderLogIsCapped(t *testing.T) {
	r := NewRecorder(config.RecordingConfig{CalibrationMs: 0, LogLines: 10})
	start := time.Unix(0, 0)
	r.Begin(start)
	for i := 1; i <= 12; i++ {
		r.Capture(LaneRight, start.Add(time.Duration(i)*time.Millisecond))
	}

	lines := r.Lines()
	if len(lines) != 10 {
		t.Fatalf("log has %d lines, expected 10", len(lines))
	}
	if want := fmt.Sprintf("Recorded: right, at %dms", 3); lines[0] != want {
		t.Errorf("oldest line = %q, expected %q", lines[0], want)
	}
	if len(r.Events()) != 12 {
		t.Errorf("events = %d, expected all 12 kept", len(r.Events()))
	}
}

func TestRecorderEndEmpty(t *testing.T) {
	r := NewRecorder(config.RecordingConfig{LogLines: 10})
	r.Begin(time.Now())
	got := r.End()
	if got == nil || len(got) != 0 {
		t.Errorf("End without presses = %#v, expected empty chart", got)
	}
}
