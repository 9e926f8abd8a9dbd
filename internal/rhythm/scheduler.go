package rhythm

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-rhythm/internal/config"
)

// Mode tells whether a run replays a chart or generates random notes.
type Mode int

const (
	ModeRandom Mode = iota
	ModeChart
)

func (m Mode) String() string {
	if m == ModeChart {
		return "chart"
	}
	return "random"
}

// Scheduler decides which lanes spawn on each tick. It owns no timers:
// spawns are derived from the elapsed time passed to Advance, so a
// restarted scheduler can never emit notes from a previous run.
type Scheduler struct {
	intervalMs float64
	limit      int // Random-mode spawn cap, 0 means unbounded

	mode    Mode
	chart   []Event
	cursor  int
	spawned int
	elapsed float64
	rng     *rand.Rand
}

// NewScheduler creates an idle scheduler for the given tempo.
func NewScheduler(tempo config.TempoConfig) *Scheduler {
	return &Scheduler{
		intervalMs: tempo.IntervalMs(),
		limit:      SpawnLimit(tempo),
		rng:        rand.New(rand.NewSource(1)),
	}
}

// SpawnLimit returns how many random notes a bounded run spawns:
// floor(duration / interval), or 0 when the duration is unbounded.
func SpawnLimit(tempo config.TempoConfig) int {
	if tempo.DurationMs <= 0 || tempo.BPM <= 0 {
		return 0
	}
	return int(math.Floor(tempo.DurationMs / tempo.IntervalMs()))
}

// Start begins a run. A non-empty chart selects chart mode; the chart is
// replayed in offset order. The seed drives random lane choice.
func (s *Scheduler) Start(chart []Event, seed int64) {
	s.cursor = 0
	s.spawned = 0
	s.elapsed = 0
	s.rng = rand.New(rand.NewSource(seed))
	if len(chart) > 0 {
		s.mode = ModeChart
		s.chart = SortedByOffset(chart)
		return
	}
	s.mode = ModeRandom
	s.chart = nil
}

// Advance moves the scheduler clock forward and returns the lanes that
// became due, in spawn order.
func (s *Scheduler) Advance(deltaMs float64) []Lane {
	if deltaMs > 0 {
		s.elapsed += deltaMs
	}

	var due []Lane
	if s.mode == ModeChart {
		for s.cursor < len(s.chart) && float64(s.chart[s.cursor].OffsetMs) <= s.elapsed {
			due = append(due, s.chart[s.cursor].Lane)
			s.cursor++
			s.spawned++
		}
		return due
	}

	for !s.Done() && float64(s.spawned+1)*s.intervalMs <= s.elapsed {
		due = append(due, Lanes[s.rng.Intn(laneCount)])
		s.spawned++
	}
	return due
}

// Done reports whether the scheduler will never spawn again.
func (s *Scheduler) Done() bool {
	if s.mode == ModeChart {
		return s.cursor >= len(s.chart)
	}
	return s.limit > 0 && s.spawned >= s.limit
}

// Mode returns the mode chosen by the last Start.
func (s *Scheduler) Mode() Mode { return s.mode }

// Spawned returns how many notes have been emitted since Start.
func (s *Scheduler) Spawned() int { return s.spawned }

// ElapsedMs returns the scheduler clock.
func (s *Scheduler) ElapsedMs() float64 { return s.elapsed }

// IntervalMs returns the random-mode spawn interval.
func (s *Scheduler) IntervalMs() float64 { return s.intervalMs }
