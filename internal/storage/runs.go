package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-rhythm/internal/rhythm"
)

// RunRecord is one finished run.
type RunRecord struct {
	ID        string
	Slot      string
	Mode      string
	Points    float64
	MaxStreak int
	Perfect   int
	Early     int
	Late      int
	Miss      int
	ElapsedMs int64
	CreatedAt time.Time
}

// Accuracy returns the share of resolved notes that were hit.
func (r RunRecord) Accuracy() float64 {
	hits := r.Perfect + r.Early + r.Late
	if hits+r.Miss == 0 {
		return 0
	}
	return float64(hits) / float64(hits+r.Miss)
}

// RunFromSummary converts an engine run summary for the given slot.
func RunFromSummary(slot string, sum rhythm.RunSummary) RunRecord {
	return RunRecord{
		Slot:      slot,
		Mode:      sum.Mode.String(),
		Points:    sum.Points,
		MaxStreak: sum.MaxStreak,
		Perfect:   sum.Perfect,
		Early:     sum.Early,
		Late:      sum.Late,
		Miss:      sum.Miss,
		ElapsedMs: int64(math.Round(sum.ElapsedMs)),
	}
}

// SlotStats contains aggregated statistics for a slot.
type SlotStats struct {
	Slot       string
	Runs       int
	BestPoints float64
	AvgPoints  float64
	BestStreak int
	Perfect    int
	Early      int
	Late       int
	Miss       int
	LastPlayed time.Time
}

const runColumns = `id, slot, mode, points, max_streak, perfect, early, late, miss, elapsed_ms, created_at`

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(run RunRecord) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, slot, mode, points, max_streak, perfect, early, late, miss, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Slot, run.Mode, run.Points, run.MaxStreak,
		run.Perfect, run.Early, run.Late, run.Miss, run.ElapsedMs,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return run.ID, nil
}

// TopRuns retrieves the best N runs for the slot, by points.
func (s *Store) TopRuns(slot string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs
		 WHERE slot = ?
		 ORDER BY points DESC, max_streak DESC
		 LIMIT ?`,
		slot, limit,
	)
}

// RecentRuns retrieves the latest N runs for the slot.
func (s *Store) RecentRuns(slot string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs
		 WHERE slot = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		slot, limit,
	)
}

// BestRun returns the highest scoring run for the slot, or nil if none exist.
func (s *Store) BestRun(slot string) (*RunRecord, error) {
	runs, err := s.TopRuns(slot, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// ClearRuns deletes the run history of the slot.
func (s *Store) ClearRuns(slot string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE slot = ?", slot)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Stats retrieves aggregated statistics for the slot.
func (s *Store) Stats(slot string) (*SlotStats, error) {
	stats := &SlotStats{Slot: slot}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(points), 0), COALESCE(AVG(points), 0), COALESCE(MAX(max_streak), 0),
		        COALESCE(SUM(perfect), 0), COALESCE(SUM(early), 0), COALESCE(SUM(late), 0), COALESCE(SUM(miss), 0)
		 FROM runs WHERE slot = ?`,
		slot,
	).Scan(&stats.Runs, &stats.BestPoints, &stats.AvgPoints, &stats.BestStreak,
		&stats.Perfect, &stats.Early, &stats.Late, &stats.Miss)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE slot = ? ORDER BY created_at DESC LIMIT 1`,
		slot,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

func (s *Store) queryRuns(query string, args ...any) ([]RunRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var (
			r         RunRecord
			createdAt any
		)
		if err := rows.Scan(&r.ID, &r.Slot, &r.Mode, &r.Points, &r.MaxStreak,
			&r.Perfect, &r.Early, &r.Late, &r.Miss, &r.ElapsedMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}
