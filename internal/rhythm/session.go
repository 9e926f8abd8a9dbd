package rhythm

import (
	"io"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rhythm/internal/config"
)

// State is the session's top-level mode.
type State int

const (
	StateIdle State = iota
	StateRecording
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StatePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// ChartSlot persists a single saved chart.
type ChartSlot interface {
	LoadChart() ([]Event, error)
	SaveChart(events []Event) error
	ClearChart() error
}

// Cue plays feedback for a successful hit. Play must not block.
type Cue interface {
	Play(t Tier) error
}

// RunSummary describes one finished Playing period.
type RunSummary struct {
	Mode      Mode
	Points    float64
	MaxStreak int // Best streak within this run
	Perfect   int
	Early     int
	Late      int
	Miss      int
	ElapsedMs float64
	Complete  bool // Every scheduled note was spawned and resolved
}

// Hits returns the number of judged presses.
func (r RunSummary) Hits() int {
	return r.Perfect + r.Early + r.Late
}

// Accuracy returns the share of resolved notes that were hit, in [0, 1].
func (r RunSummary) Accuracy() float64 {
	total := r.Hits() + r.Miss
	if total == 0 {
		return 0
	}
	return float64(r.Hits()) / float64(total)
}

// TickResult reports what one Tick changed.
type TickResult struct {
	Spawned  int
	Missed   int
	Hits     []Judgement // Auto-hit strikes
	Complete bool        // The run finished on this tick
}

// Option configures a Session.
type Option func(*Session)

// WithSlot sets the chart persistence slot. Without one, charts live in memory.
func WithSlot(slot ChartSlot) Option {
	return func(s *Session) { s.slot = slot }
}

// WithCue sets the hit feedback sink.
func WithCue(cue Cue) Option {
	return func(s *Session) { s.cue = cue }
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithClock overrides the wall clock used for recording timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithSeed fixes the random-mode lane sequence. Zero seeds from the clock.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.seed = seed }
}

// WithRunEnd registers a hook called after a run with activity ends.
// The hook runs outside the session lock and may call back into the session.
func WithRunEnd(fn func(RunSummary)) Option {
	return func(s *Session) { s.onRunEnd = fn }
}

type runStats struct {
	mode      Mode
	points    float64
	maxStreak int
	perfect   int
	early     int
	late      int
	miss      int
	elapsed   float64
	ended     bool
	complete  bool
}

func (r *runStats) active() bool {
	return r.perfect+r.early+r.late+r.miss > 0
}

func (r *runStats) count(t Tier) {
	switch t {
	case TierPerfect:
		r.perfect++
	case TierEarly:
		r.early++
	case TierLate:
		r.late++
	case TierMiss:
		r.miss++
	}
}

// Session owns all game state. Every exported method is safe for
// concurrent use and runs atomically with respect to the others.
type Session struct {
	mu sync.Mutex

	cfg       config.RhythmConfig
	slot      ChartSlot
	cue       Cue
	logger    *log.Logger
	now       func() time.Time
	seed      int64
	onRunEnd  func(RunSummary)
	scheduler *Scheduler
	evaluator *Evaluator
	judge     *Judge
	recorder  *Recorder

	state     State
	points    float64
	streak    int
	maxStreak int
	startedAt time.Time
	notes     []Note
	nextID    uint64
	saved     []Event // Last chart recorded, imported or loaded
	unsaved   bool    // saved holds a chart the slot failed to store
	held      [laneCount]bool
	autoHit   bool
	last      *Judgement
	run       runStats

	// Collected under the lock, delivered after it is released.
	endedRuns []RunSummary
	cues      []Tier
}

// NewSession creates an Idle session.
func NewSession(cfg config.RhythmConfig, opts ...Option) *Session {
	s := &Session{
		cfg:       cfg,
		now:       time.Now,
		scheduler: NewScheduler(cfg.Tempo),
		evaluator: NewEvaluator(cfg.Field, cfg.Motion),
		judge:     NewJudge(cfg.HitZone, cfg.Scoring),
		recorder:  NewRecorder(cfg.Recording),
		autoHit:   cfg.AutoHit.Enabled,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// do runs fn under the lock, then delivers queued hooks and cues.
func (s *Session) do(fn func()) {
	s.mu.Lock()
	fn()
	ended, cues := s.endedRuns, s.cues
	s.endedRuns, s.cues = nil, nil
	s.mu.Unlock()

	if s.cue != nil {
		for _, t := range cues {
			if err := s.cue.Play(t); err != nil {
				s.logger.Debug("hit cue failed", "err", err)
			}
		}
	}
	if s.onRunEnd != nil {
		for _, r := range ended {
			s.onRunEnd(r)
		}
	}
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Reset starts a fresh Playing run. A running recording is finalized and
// persisted first. The saved chart, if any, is replayed; otherwise notes
// are generated at the configured tempo.
func (s *Session) Reset() {
	s.do(func() {
		if s.state == StateRecording {
			_, _ = s.stopRecordingLocked()
		}
		s.endRunLocked()

		s.notes = nil
		s.points = 0
		s.streak = 0
		s.last = nil
		s.recorder.Clear()

		chart := s.loadChartLocked()
		seed := s.seed
		if seed == 0 {
			seed = s.now().UnixNano()
		}
		s.scheduler.Start(chart, seed)
		s.run = runStats{mode: s.scheduler.Mode()}
		s.state = StatePlaying
		s.startedAt = s.now()
		s.logger.Debug("run started", "mode", s.scheduler.Mode(), "chart", len(chart))
	})
}

// Stop ends the current run and returns to Idle. A running recording is
// finalized as by StopRecording.
func (s *Session) Stop() {
	s.do(func() {
		switch s.state {
		case StateRecording:
			_, _ = s.stopRecordingLocked()
		case StatePlaying:
			s.endRunLocked()
			s.notes = nil
			s.state = StateIdle
			s.logger.Debug("run stopped")
		}
	})
}

// StartRecording clears the field, the score and the saved chart and
// begins capturing presses.
func (s *Session) StartRecording() {
	s.do(func() {
		if s.state == StateRecording {
			return
		}
		s.endRunLocked()

		s.notes = nil
		s.points = 0
		s.streak = 0
		s.last = nil
		s.saved = nil
		s.unsaved = false
		if s.slot != nil {
			if err := s.slot.ClearChart(); err != nil {
				s.logger.Warn("could not clear saved chart", "err", persistErr("clear", err))
			}
		}
		s.recorder.Begin(s.now())
		s.state = StateRecording
		s.startedAt = s.now()
		s.logger.Debug("recording started")
	})
}

// StopRecording returns to Idle and persists the captured chart. The chart
// is returned even when persistence fails; the error then wraps
// ErrPersistenceUnavailable.
func (s *Session) StopRecording() ([]Event, error) {
	var (
		events []Event
		err    error
	)
	s.do(func() {
		events, err = s.stopRecordingLocked()
	})
	return events, err
}

func (s *Session) stopRecordingLocked() ([]Event, error) {
	if s.state != StateRecording {
		return nil, ErrNotRecording
	}
	events := s.recorder.End()
	s.saved = slices.Clone(events)
	s.notes = nil
	s.state = StateIdle
	s.logger.Debug("recording stopped", "events", len(events))

	if s.slot == nil {
		return events, nil
	}
	if err := s.slot.SaveChart(events); err != nil {
		err = persistErr("save recording", err)
		s.logger.Warn("recording kept in memory only", "err", err)
		s.unsaved = true
		return events, err
	}
	s.unsaved = false
	return events, nil
}

// loadChartLocked returns the chart for the next run. A chart the slot
// failed to store wins over whatever the slot still holds.
func (s *Session) loadChartLocked() []Event {
	if s.slot == nil || s.unsaved {
		return slices.Clone(s.saved)
	}
	chart, err := s.slot.LoadChart()
	if err != nil {
		s.logger.Warn("saved chart unavailable, playing random notes", "err", persistErr("load", err))
		return nil
	}
	s.saved = slices.Clone(chart)
	return chart
}

// endRunLocked closes the current run once and queues its summary.
func (s *Session) endRunLocked() {
	if s.state != StatePlaying || s.run.ended {
		return
	}
	s.run.ended = true
	s.run.points = s.points
	if !s.run.active() {
		return
	}
	s.endedRuns = append(s.endedRuns, s.run.summary())
	s.logger.Debug("run ended", "points", s.run.points, "complete", s.run.complete)
}

func (r *runStats) summary() RunSummary {
	return RunSummary{
		Mode:      r.mode,
		Points:    r.points,
		MaxStreak: r.maxStreak,
		Perfect:   r.perfect,
		Early:     r.early,
		Late:      r.late,
		Miss:      r.miss,
		ElapsedMs: r.elapsed,
		Complete:  r.complete,
	}
}

// KeyDown handles a press edge on lane. Repeats while the lane is held
// are ignored.
func (s *Session) KeyDown(lane Lane) {
	if !lane.Valid() {
		return
	}
	s.do(func() {
		if s.held[lane] {
			return
		}
		s.held[lane] = true

		switch s.state {
		case StatePlaying:
			s.strikeLocked(lane)
		case StateRecording:
			ev := s.recorder.Capture(lane, s.now())
			s.spawnLocked(lane, s.cfg.Spawn.EchoY, true)
			s.logger.Debug("press recorded", "lane", lane, "offset", ev.OffsetMs)
		}
	})
}

// KeyUp handles a release edge on lane.
func (s *Session) KeyUp(lane Lane) {
	if !lane.Valid() {
		return
	}
	s.do(func() {
		s.held[lane] = false
	})
}

// strikeLocked judges a press and applies it. Presses that strike nothing
// change nothing.
func (s *Session) strikeLocked(lane Lane) (Judgement, bool) {
	j, idx, ok := s.judge.Judge(s.notes, lane)
	if !ok {
		return Judgement{}, false
	}
	s.notes = slices.Delete(s.notes, idx, idx+1)
	s.points += j.Points
	s.streak++
	s.maxStreak = max(s.maxStreak, s.streak)
	s.run.maxStreak = max(s.run.maxStreak, s.streak)
	s.run.count(j.Tier)
	s.last = &j
	s.cues = append(s.cues, j.Tier)
	return j, true
}

func (s *Session) spawnLocked(lane Lane, y float64, echo bool) {
	s.nextID++
	s.notes = append(s.notes, Note{
		ID:   s.nextID,
		Lane: lane,
		Echo: echo,
		Y:    y,
		X:    LaneX(s.cfg.Field, lane),
	})
}

// Tick advances the session by deltaMs of game time. Negative or NaN
// deltas are treated as zero.
func (s *Session) Tick(deltaMs float64) TickResult {
	if deltaMs < 0 || math.IsNaN(deltaMs) {
		deltaMs = 0
	}

	var res TickResult
	s.do(func() {
		if s.state == StateIdle {
			return
		}

		kept, missed := s.evaluator.Advance(s.notes, deltaMs)
		s.notes = kept
		for _, n := range missed {
			j := s.judge.Miss(n)
			s.points += j.Points
			s.streak = 0
			s.run.count(TierMiss)
			s.last = &j
		}
		res.Missed = len(missed)

		if s.state != StatePlaying {
			return
		}

		s.run.elapsed += deltaMs
		spawnY := s.cfg.Spawn.RandomY
		if s.scheduler.Mode() == ModeChart {
			spawnY = s.cfg.Spawn.ChartY
		}
		for _, lane := range s.scheduler.Advance(deltaMs) {
			s.spawnLocked(lane, spawnY, false)
			res.Spawned++
		}

		if s.autoHit {
			res.Hits = s.autoHitLocked()
		}

		if !s.run.ended && s.scheduler.Done() && !s.hasRealNotesLocked() {
			s.run.complete = true
			s.endRunLocked()
			res.Complete = true
		}
	})
	return res
}

// autoHitLocked strikes every lane holding a real note near the auto-hit
// line, once per such note.
func (s *Session) autoHitLocked() []Judgement {
	var lanes []Lane
	for _, n := range s.notes {
		if n.Echo {
			continue
		}
		if math.Abs(n.Y-s.cfg.AutoHit.Center) < s.cfg.AutoHit.Range {
			lanes = append(lanes, n.Lane)
		}
	}

	var hits []Judgement
	for _, lane := range lanes {
		if j, ok := s.strikeLocked(lane); ok {
			hits = append(hits, j)
		}
	}
	return hits
}

func (s *Session) hasRealNotesLocked() bool {
	for _, n := range s.notes {
		if !n.Echo {
			return true
		}
	}
	return false
}

// SetAutoHit turns auto-hit on or off.
func (s *Session) SetAutoHit(on bool) {
	s.do(func() { s.autoHit = on })
}

// ToggleAutoHit flips auto-hit and returns the new setting.
func (s *Session) ToggleAutoHit() bool {
	var on bool
	s.do(func() {
		s.autoHit = !s.autoHit
		on = s.autoHit
	})
	return on
}

// Import parses chart text in either form and saves it as the chart for
// the next Reset. Malformed text leaves the session untouched. A slot
// failure after a successful parse keeps the chart in memory and returns
// an error wrapping ErrPersistenceUnavailable.
func (s *Session) Import(text string) (Format, error) {
	events, format, err := ParseChart(text)
	if err != nil {
		return format, err
	}

	s.do(func() {
		s.saved = slices.Clone(events)
		if s.slot == nil {
			return
		}
		if serr := s.slot.SaveChart(events); serr != nil {
			err = persistErr("save import", serr)
			s.logger.Warn("imported chart kept in memory only", "err", err)
			s.unsaved = true
			return
		}
		s.unsaved = false
	})
	s.logger.Debug("chart imported", "format", format, "events", len(events))
	return format, err
}

// Export returns the saved chart in the compact form.
func (s *Session) Export() (string, error) {
	var (
		out string
		err error
	)
	s.do(func() {
		chart := s.saved
		if s.slot != nil && !s.unsaved {
			var lerr error
			chart, lerr = s.slot.LoadChart()
			if lerr != nil {
				err = persistErr("load", lerr)
				return
			}
		}
		if len(chart) == 0 {
			err = ErrNoChart
			return
		}
		out = Encode(chart)
	})
	return out, err
}
