package storage

import (
	"slices"
	"testing"

	"github.com/vovakirdan/tui-rhythm/internal/rhythm"
)

func TestSlotEmpty(t *testing.T) {
	store := openTestStore(t)

	events, err := store.Slot("default").LoadChart()
	if err != nil {
		t.Fatalf("LoadChart() failed: %v", err)
	}
	if events != nil {
		t.Errorf("empty slot returned %+v", events)
	}
}

func TestSlotSaveLoadClear(t *testing.T) {
	store := openTestStore(t)
	slot := store.Slot("default")

	chart := []rhythm.Event{
		{Lane: rhythm.LaneLeft, OffsetMs: 500},
		{Lane: rhythm.LaneUp, OffsetMs: 900},
	}
	if err := slot.SaveChart(chart); err != nil {
		t.Fatalf("SaveChart() failed: %v", err)
	}

	got, err := slot.LoadChart()
	if err != nil {
		t.Fatalf("LoadChart() failed: %v", err)
	}
	if !slices.Equal(got, chart) {
		t.Errorf("LoadChart() = %+v, expected %+v", got, chart)
	}

	// Overwrite
	replacement := []rhythm.Event{{Lane: rhythm.LaneRight, OffsetMs: -20}}
	if err := slot.SaveChart(replacement); err != nil {
		t.Fatalf("second SaveChart() failed: %v", err)
	}
	got, _ = slot.LoadChart()
	if !slices.Equal(got, replacement) {
		t.Errorf("LoadChart() after overwrite = %+v, expected %+v", got, replacement)
	}

	if err := slot.ClearChart(); err != nil {
		t.Fatalf("ClearChart() failed: %v", err)
	}
	got, _ = slot.LoadChart()
	if got != nil {
		t.Errorf("LoadChart() after clear = %+v, expected nil", got)
	}

	// Clearing twice is fine
	if err := slot.ClearChart(); err != nil {
		t.Errorf("ClearChart() on empty slot failed: %v", err)
	}
}

func TestSlotsAreIndependent(t *testing.T) {
	store := openTestStore(t)

	if err := store.Slot("alice").SaveChart([]rhythm.Event{{Lane: rhythm.LaneDown, OffsetMs: 1}}); err != nil {
		t.Fatalf("SaveChart() failed: %v", err)
	}
	if err := store.Slot("bob").SaveChart([]rhythm.Event{{Lane: rhythm.LaneUp, OffsetMs: 2}, {Lane: rhythm.LaneUp, OffsetMs: 3}}); err != nil {
		t.Fatalf("SaveChart() failed: %v", err)
	}

	infos, err := store.Slots()
	if err != nil {
		t.Fatalf("Slots() failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("Slots() returned %d, expected 2", len(infos))
	}
	if infos[0].Name != "alice" || infos[0].Events != 1 {
		t.Errorf("first slot = %+v", infos[0])
	}
	if infos[1].Name != "bob" || infos[1].Events != 2 {
		t.Errorf("second slot = %+v", infos[1])
	}
}

func TestSlotDrivesSession(t *testing.T) {
	store := openTestStore(t)
	slot := store.Slot("default")
	if err := slot.SaveChart([]rhythm.Event{{Lane: rhythm.LaneLeft, OffsetMs: 0}}); err != nil {
		t.Fatalf("SaveChart() failed: %v", err)
	}

	out, err := rhythm.NewSession(defaultConfig(), rhythm.WithSlot(slot)).Export()
	if err != nil || out != "L/0" {
		t.Errorf("Export() = %q, %v; expected L/0", out, err)
	}
}
