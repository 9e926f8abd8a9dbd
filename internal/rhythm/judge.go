package rhythm

import (
	"math"

	"github.com/vovakirdan/tui-rhythm/internal/config"
)

// Tier is the quality of a judged press.
type Tier int

const (
	TierPerfect Tier = iota
	TierEarly
	TierLate
	TierMiss
)

func (t Tier) String() string {
	switch t {
	case TierPerfect:
		return "Perfect"
	case TierEarly:
		return "Early"
	case TierLate:
		return "Late"
	case TierMiss:
		return "Miss"
	default:
		return "Unknown"
	}
}

// Judgement is the outcome of a press or a missed note.
type Judgement struct {
	Tier   Tier
	Lane   Lane
	NoteID uint64
	Y      float64
	Points float64 // Signed change applied to the score
}

// Judge classifies presses against notes in the hit zone.
type Judge struct {
	zone    config.HitZoneConfig
	scoring config.ScoringConfig
}

// NewJudge creates a judge for the given hit zone and scoring table.
func NewJudge(zone config.HitZoneConfig, scoring config.ScoringConfig) *Judge {
	return &Judge{zone: zone, scoring: scoring}
}

// InWindow reports whether a note at y can be struck.
func (j *Judge) InWindow(y float64) bool {
	return y >= j.zone.Start && y <= j.zone.End
}

// Classify grades a strike at y. The caller checks InWindow first.
func (j *Judge) Classify(y float64) (Tier, float64) {
	center := j.zone.Center()
	switch {
	case math.Abs(y-center) <= j.zone.PerfectRange:
		return TierPerfect, j.scoring.PerfectPoints
	case y < center:
		return TierEarly, j.scoring.GoodPoints
	default:
		return TierLate, j.scoring.GoodPoints
	}
}

// Find returns the index of the first real note in lane that is inside the
// hit zone. Notes are kept in spawn order, so this is the oldest candidate.
func (j *Judge) Find(notes []Note, lane Lane) (int, bool) {
	for i, n := range notes {
		if n.Echo || n.Lane != lane {
			continue
		}
		if j.InWindow(n.Y) {
			return i, true
		}
	}
	return -1, false
}

// Judge grades a press on lane. ok is false when the press struck nothing,
// in which case nothing should change.
func (j *Judge) Judge(notes []Note, lane Lane) (Judgement, int, bool) {
	idx, ok := j.Find(notes, lane)
	if !ok {
		return Judgement{}, -1, false
	}
	n := notes[idx]
	tier, pts := j.Classify(n.Y)
	return Judgement{Tier: tier, Lane: lane, NoteID: n.ID, Y: n.Y, Points: pts}, idx, true
}

// Miss builds the judgement for a note that left the field.
func (j *Judge) Miss(n Note) Judgement {
	return Judgement{Tier: TierMiss, Lane: n.Lane, NoteID: n.ID, Y: n.Y, Points: -j.scoring.MissPenalty}
}
