package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. Empty means fixed.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyFixed, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Fixed leaves the loaded values untouched.
func ApplyPreset(cfg *RhythmConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Tempo.BPM = 100
		cfg.HitZone.PerfectRange = 20
	case DifficultyNormal:
		cfg.Tempo.BPM = 128
		cfg.HitZone.PerfectRange = 15
	case DifficultyHard:
		cfg.Tempo.BPM = 160
		cfg.HitZone.PerfectRange = 10
		cfg.Motion.BaseSpeed *= 1.25
	}
}
