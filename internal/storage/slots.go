package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-rhythm/internal/rhythm"
)

// Slot is a named saved chart. It implements rhythm.ChartSlot.
type Slot struct {
	store *Store
	name  string
}

var _ rhythm.ChartSlot = (*Slot)(nil)

// SlotInfo summarizes a saved chart.
type SlotInfo struct {
	Name      string
	Events    int
	UpdatedAt time.Time
}

// Slot returns the chart slot with the given name. The slot need not exist yet.
func (s *Store) Slot(name string) *Slot {
	return &Slot{store: s, name: name}
}

// Name returns the slot name.
func (sl *Slot) Name() string { return sl.name }

// LoadChart returns the saved chart, or nil when the slot is empty.
func (sl *Slot) LoadChart() ([]rhythm.Event, error) {
	var data string
	err := sl.store.db.QueryRow(
		"SELECT chart FROM chart_slots WHERE name = ?",
		sl.name,
	).Scan(&data)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load chart %q: %w", sl.name, err)
	}

	events, err := rhythm.UnmarshalChart([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("storage: chart %q is corrupt: %w", sl.name, err)
	}
	return events, nil
}

// SaveChart replaces the saved chart.
func (sl *Slot) SaveChart(events []rhythm.Event) error {
	data, err := rhythm.MarshalChart(events)
	if err != nil {
		return fmt.Errorf("storage: cannot encode chart: %w", err)
	}

	_, err = sl.store.db.Exec(
		`INSERT INTO chart_slots (name, chart, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET chart = excluded.chart, updated_at = CURRENT_TIMESTAMP`,
		sl.name, string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save chart %q: %w", sl.name, err)
	}
	return nil
}

// ClearChart removes the saved chart. Clearing an empty slot is not an error.
func (sl *Slot) ClearChart() error {
	_, err := sl.store.db.Exec("DELETE FROM chart_slots WHERE name = ?", sl.name)
	if err != nil {
		return fmt.Errorf("storage: cannot clear chart %q: %w", sl.name, err)
	}
	return nil
}

// Slots lists every saved chart by name.
func (s *Store) Slots() ([]SlotInfo, error) {
	rows, err := s.db.Query("SELECT name, chart, updated_at FROM chart_slots ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query slots: %w", err)
	}
	defer rows.Close()

	var infos []SlotInfo
	for rows.Next() {
		var (
			info      SlotInfo
			data      string
			updatedAt any
		)
		if err := rows.Scan(&info.Name, &data, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if events, err := rhythm.UnmarshalChart([]byte(data)); err == nil {
			info.Events = len(events)
		}
		info.UpdatedAt = parseTime(updatedAt)
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return infos, nil
}
