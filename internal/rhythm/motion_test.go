package rhythm

import (
	"testing"

	"github.com/vovakirdan/tui-rhythm/internal/config"
)

func newTestEvaluator() *Evaluator {
	cfg := config.DefaultRhythmConfig()
	return NewEvaluator(cfg.Field, cfg.Motion)
}

func TestEvaluatorDistance(t *testing.T) {
	e := newTestEvaluator()
	tests := []struct {
		delta float64
		want  float64
	}{
		{6, 3.5},
		{12, 7},
		{0, 0},
		{-5, 0},
	}
	for _, tt := range tests {
		if got := e.Distance(tt.delta); got != tt.want {
			t.Errorf("Distance(%v) = %v, expected %v", tt.delta, got, tt.want)
		}
	}
}

func TestEvaluatorMotionIsMonotonic(t *testing.T) {
	e := newTestEvaluator()
	notes := []Note{{ID: 1, Y: -60}, {ID: 2, Y: 100}}
	prev := []float64{-60, 100}

	for step := 0; step < 50; step++ {
		notes, _ = e.Advance(notes, 16)
		for i, n := range notes {
			if n.Y <= prev[i] {
				t.Fatalf("step %d: note %d moved from %v to %v", step, n.ID, prev[i], n.Y)
			}
			prev[i] = n.Y
		}
	}
}

func TestEvaluatorMissCountedOnce(t *testing.T) {
	e := newTestEvaluator()
	notes := []Note{{ID: 1, Y: 719}, {ID: 2, Y: 300}}

	kept, missed := e.Advance(notes, 6)
	if len(missed) != 1 || missed[0].ID != 1 {
		t.Fatalf("missed = %+v, expected note 1", missed)
	}
	if len(kept) != 1 || kept[0].ID != 2 {
		t.Fatalf("kept = %+v, expected note 2", kept)
	}

	_, missed = e.Advance(kept, 6)
	if len(missed) != 0 {
		t.Errorf("second advance reported %d misses, expected 0", len(missed))
	}
}

func TestEvaluatorEchoRetiresSilently(t *testing.T) {
	e := newTestEvaluator()
	kept, missed := e.Advance([]Note{{ID: 1, Y: 719, Echo: true}}, 6)
	if len(kept) != 0 {
		t.Errorf("echo should leave the field, kept %+v", kept)
	}
	if len(missed) != 0 {
		t.Errorf("echo retirement should not be a miss, got %+v", missed)
	}
}
