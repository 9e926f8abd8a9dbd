package rhythm

import "github.com/vovakirdan/tui-rhythm/internal/config"

// Evaluator moves notes down the field at a frame-rate independent speed
// and retires those that leave it.
type Evaluator struct {
	speed  float64 // Field units per reference frame
	refMs  float64
	bottom float64
}

// NewEvaluator creates an evaluator for the given field and motion settings.
func NewEvaluator(field config.FieldConfig, motion config.MotionConfig) *Evaluator {
	return &Evaluator{
		speed:  motion.BaseSpeed,
		refMs:  motion.ReferenceFrameMs,
		bottom: field.Height,
	}
}

// Distance returns how far a note travels in deltaMs.
func (e *Evaluator) Distance(deltaMs float64) float64 {
	if deltaMs <= 0 {
		return 0
	}
	return e.speed * deltaMs / e.refMs
}

// Advance moves every note and splits them into those still on the field
// and the real notes that fell past the bottom. Echo notes that fall off
// are dropped without being reported. The input slice is reused.
func (e *Evaluator) Advance(notes []Note, deltaMs float64) (kept, missed []Note) {
	d := e.Distance(deltaMs)
	kept = notes[:0]
	for _, n := range notes {
		n.Y += d
		if n.Y > e.bottom {
			if !n.Echo {
				missed = append(missed, n)
			}
			continue
		}
		kept = append(kept, n)
	}
	return kept, missed
}
