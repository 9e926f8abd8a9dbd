package rhythm

import (
	"testing"

	"github.com/vovakirdan/tui-rhythm/internal/config"
)

func newTestJudge() *Judge {
	cfg := config.DefaultRhythmConfig()
	return NewJudge(cfg.HitZone, cfg.Scoring)
}

func TestJudgeTiers(t *testing.T) {
	j := newTestJudge()
	tests := []struct {
		y      float64
		tier   Tier
		points float64
	}{
		{550, TierPerfect, 1},
		{535, TierPerfect, 1},
		{565, TierPerfect, 1},
		{534.9, TierEarly, 0.5},
		{485, TierEarly, 0.5},
		{565.1, TierLate, 0.5},
		{615, TierLate, 0.5},
	}

	for _, tt := range tests {
		if !j.InWindow(tt.y) {
			t.Errorf("InWindow(%v) = false, expected true", tt.y)
			continue
		}
		tier, pts := j.Classify(tt.y)
		if tier != tt.tier || pts != tt.points {
			t.Errorf("Classify(%v) = %v %v, expected %v %v", tt.y, tier, pts, tt.tier, tt.points)
		}
	}
}

func TestJudgeWindowEdges(t *testing.T) {
	j := newTestJudge()
	for _, y := range []float64{484.9, 615.1, -60, 720} {
		if j.InWindow(y) {
			t.Errorf("InWindow(%v) = true, expected false", y)
		}
	}
}

func TestJudgeFirstInSpawnOrder(t *testing.T) {
	j := newTestJudge()
	notes := []Note{
		{ID: 1, Lane: LaneUp, Y: 550},
		{ID: 2, Lane: LaneLeft, Y: 550, Echo: true},
		{ID: 3, Lane: LaneLeft, Y: 400},
		{ID: 4, Lane: LaneLeft, Y: 600},
		{ID: 5, Lane: LaneLeft, Y: 550},
	}

	got, idx, ok := j.Judge(notes, LaneLeft)
	if !ok {
		t.Fatal("expected a match")
	}
	if idx != 3 || got.NoteID != 4 {
		t.Errorf("matched index %d note %d, expected index 3 note 4", idx, got.NoteID)
	}
	if got.Tier != TierLate {
		t.Errorf("tier = %v, expected Late", got.Tier)
	}
}

func TestJudgeAirPress(t *testing.T) {
	j := newTestJudge()
	notes := []Note{
		{ID: 1, Lane: LaneDown, Y: 100},
		{ID: 2, Lane: LaneRight, Y: 550, Echo: true},
	}
	for _, lane := range Lanes {
		if _, _, ok := j.Judge(notes, lane); ok {
			t.Errorf("press on %v matched, expected none", lane)
		}
	}
}

func TestJudgeMiss(t *testing.T) {
	j := newTestJudge()
	m := j.Miss(Note{ID: 9, Lane: LaneUp, Y: 721})
	if m.Tier != TierMiss || m.Points != -1 || m.NoteID != 9 {
		t.Errorf("Miss = %+v", m)
	}
}
