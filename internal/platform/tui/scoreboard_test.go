package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rhythm/internal/rhythm"
	"github.com/vovakirdan/tui-rhythm/internal/storage"
)

func TestRunRows(t *testing.T) {
	runs := []storage.RunRecord{
		{Points: 12.5, MaxStreak: 7, Perfect: 10, Early: 3, Late: 2, Miss: 5, Mode: "chart",
			CreatedAt: time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC)},
	}

	rows := runRows(runs)
	if len(rows) != 1 {
		t.Fatalf("runRows() returned %d rows, expected 1", len(rows))
	}
	want := []string{"#1", "12.5", "7", "10/3/2/5", "75%", "chart", "Mar 04 09:30"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("column %d = %q, expected %q", i, rows[0][i], cell)
		}
	}
}

func TestScoreboardCyclesSlots(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer store.Close()

	if err := store.Slot("other").SaveChart([]rhythm.Event{{Lane: rhythm.LaneLeft, OffsetMs: 0}}); err != nil {
		t.Fatalf("SaveChart() error: %v", err)
	}
	if _, err := store.SaveRun(storage.RunRecord{Slot: "other", Mode: "chart", Points: 3}); err != nil {
		t.Fatalf("SaveRun() error: %v", err)
	}

	m := NewScoreboardModel(store, "mine", 80, 24)
	if got := m.currentSlot(); got != "mine" {
		t.Fatalf("currentSlot() = %q, expected mine", got)
	}
	if len(m.runs) != 0 {
		t.Errorf("runs for mine = %d, expected 0", len(m.runs))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if got := m.currentSlot(); got != "other" {
		t.Fatalf("currentSlot() after tab = %q, expected other", got)
	}
	if len(m.runs) != 1 {
		t.Errorf("runs for other = %d, expected 1", len(m.runs))
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	m = next.(ScoreboardModel)
	if !strings.Contains(m.View(), "RECENT RUNS") {
		t.Error("view should show recent runs after toggling")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if got := m.currentSlot(); got != "mine" {
		t.Errorf("currentSlot() after shift+tab = %q, expected mine", got)
	}
}
