package chartio

import (
	"bytes"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/vovakirdan/tui-rhythm/internal/rhythm"
)

func TestReadText(t *testing.T) {
	events, format, err := ReadText(strings.NewReader("L/500,U/900\n"))
	if err != nil {
		t.Fatalf("ReadText failed: %v", err)
	}
	if format != rhythm.FormatCompact || len(events) != 2 {
		t.Errorf("ReadText = %+v %v", events, format)
	}
}

func TestReadFileText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.json")
	if err := os.WriteFile(path, []byte(`[{"type":"right","timestamp":40}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	events, format, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if format != "structured" {
		t.Errorf("format = %q, expected structured", format)
	}
	want := []rhythm.Event{{Lane: rhythm.LaneRight, OffsetMs: 40}}
	if !slices.Equal(events, want) {
		t.Errorf("events = %+v, expected %+v", events, want)
	}
}

func TestReadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("nothing here"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := ReadFile(path); !errors.Is(err, rhythm.ErrMalformedChart) {
		t.Errorf("error = %v, expected ErrMalformedChart", err)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, _, err := ReadFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

// writeSMF builds a one-track file at the default 120 BPM, where a quarter
// note of 960 ticks lasts 500ms.
func writeSMF(t *testing.T) []byte {
	t.Helper()
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(960)

	var tr smf.Track
	tr.Add(0, midi.NoteOn(0, 60, 100))
	tr.Add(480, midi.NoteOff(0, 60))
	tr.Add(480, midi.NoteOn(0, 62, 100))
	tr.Add(480, midi.NoteOff(0, 62))
	tr.Add(480, midi.NoteOn(0, 65, 90))
	tr.Add(960, midi.NoteOff(0, 65))
	tr.Close(0)
	if err := s.Add(tr); err != nil {
		t.Fatalf("Add track: %v", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	return buf.Bytes()
}

func TestReadMIDI(t *testing.T) {
	events, err := ReadMIDI(bytes.NewReader(writeSMF(t)))
	if err != nil {
		t.Fatalf("ReadMIDI failed: %v", err)
	}

	want := []rhythm.Event{
		{Lane: rhythm.LaneLeft, OffsetMs: 0},
		{Lane: rhythm.LaneDown, OffsetMs: 500},
		{Lane: rhythm.LaneUp, OffsetMs: 1000},
	}
	if !slices.Equal(events, want) {
		t.Errorf("ReadMIDI = %+v, expected %+v", events, want)
	}
}

func TestReadFileMIDI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.MID")
	if err := os.WriteFile(path, writeSMF(t), 0o644); err != nil {
		t.Fatal(err)
	}

	events, format, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if format != FormatMIDI || len(events) != 3 {
		t.Errorf("ReadFile = %d events, format %q", len(events), format)
	}
}

func TestCopyToClipboard(t *testing.T) {
	t.Setenv("TMUX", "")
	var buf bytes.Buffer
	if err := CopyToClipboard(&buf, "L/500,U/900"); err != nil {
		t.Fatalf("CopyToClipboard failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "\x1b]52;") {
		t.Errorf("output %q is not an OSC52 sequence", out)
	}
	if !strings.Contains(out, base64.StdEncoding.EncodeToString([]byte("L/500,U/900"))) {
		t.Errorf("output %q does not carry the encoded chart", out)
	}
}
