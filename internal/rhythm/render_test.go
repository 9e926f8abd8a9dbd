package rhythm

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-rhythm/internal/config"
	"github.com/vovakirdan/tui-rhythm/internal/core"
)

func TestRenderIdleShowsPrompt(t *testing.T) {
	cfg := config.DefaultRhythmConfig()
	s := NewSession(cfg)
	dst := core.NewScreen(80, 24)

	Render(dst, s.Snapshot(), cfg)

	if !strings.Contains(dst.String(), "Press Enter to play") {
		t.Errorf("idle frame missing start prompt:\n%s", dst.String())
	}
}

func TestRenderPlacesNotes(t *testing.T) {
	cfg := config.DefaultRhythmConfig()
	s := NewSession(cfg, WithSeed(1))
	s.Reset()
	inject(s, LaneLeft, 360, false)
	inject(s, LaneRight, -40, false)

	dst := core.NewScreen(80, 24)
	Render(dst, s.Snapshot(), cfg)

	// 23 field rows below the HUD: y=360 maps to row 1 + 11.
	cell := dst.GetCell(31, 12)
	if cell.Rune != NoteChar || cell.Color != core.ColorMagenta {
		t.Errorf("cell at left lane = %+v, expected magenta note", cell)
	}
	if strings.Count(dst.String(), string(NoteChar)) != 1 {
		t.Error("notes above the field should not be drawn")
	}
	if !strings.HasPrefix(strings.TrimSpace(dst.Row(0)), "points: 0") {
		t.Errorf("HUD row = %q", dst.Row(0))
	}
}

func TestRenderHeldMarker(t *testing.T) {
	cfg := config.DefaultRhythmConfig()
	s := NewSession(cfg)
	s.Reset()
	s.KeyDown(LaneDown)

	dst := core.NewScreen(80, 24)
	Render(dst, s.Snapshot(), cfg)

	markerRow := 1 + int(cfg.Field.MarkerY/cfg.Field.Height*22)
	if got := dst.Get(43, markerRow); got != MarkerChar {
		t.Errorf("held marker = %q, expected %q", got, MarkerChar)
	}
	if got := dst.Get(37, markerRow); got != MarkerIdleChar {
		t.Errorf("idle marker = %q, expected %q", got, MarkerIdleChar)
	}
}

func TestFormatPoints(t *testing.T) {
	tests := map[float64]string{3: "3", 1.5: "1.5", -2: "-2", 0: "0"}
	for in, want := range tests {
		if got := formatPoints(in); got != want {
			t.Errorf("formatPoints(%v) = %q, expected %q", in, got, want)
		}
	}
}
