package rhythm

import "slices"

// Snapshot is a read-only copy of everything a renderer needs for one frame.
type Snapshot struct {
	State         State
	Mode          Mode
	Notes         []Note
	Points        float64
	Streak        int
	MaxStreak     int
	Recording     bool
	Recorded      int      // Events captured in the current recording
	RecentLog     []string // Oldest first
	AutoHit       bool
	LastJudgement Judgement
	HasJudgement  bool
	Complete      bool
	Held          [laneCount]bool
	ElapsedMs     float64
	Run           RunSummary // Counters of the current or last run
}

// Snapshot copies the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:     s.state,
		Mode:      s.scheduler.Mode(),
		Notes:     slices.Clone(s.notes),
		Points:    s.points,
		Streak:    s.streak,
		MaxStreak: s.maxStreak,
		Recording: s.state == StateRecording,
		RecentLog: s.recorder.Lines(),
		AutoHit:   s.autoHit,
		Complete:  s.run.complete && s.state == StatePlaying,
		Held:      s.held,
		ElapsedMs: s.run.elapsed,
		Run:       s.run.summary(),
	}
	snap.Run.Points = s.points
	if s.state == StateRecording {
		snap.Recorded = len(s.recorder.Events())
	}
	if s.last != nil {
		snap.LastJudgement = *s.last
		snap.HasJudgement = true
	}
	return snap
}
