package config

import (
	_ "embed"
)

//go:embed defaults/rhythm.yaml
var defaultRhythmYAML []byte

// DefaultRhythmConfig returns the default rhythm configuration.
func DefaultRhythmConfig() RhythmConfig {
	return RhythmConfig{
		Field: FieldConfig{
			Width:       1280,
			Height:      720,
			MarkerY:     550,
			LaneSpacing: 37,
			LaneOuter:   110,
		},
		HitZone: HitZoneConfig{
			Start:        485,
			End:          615,
			PerfectRange: 15,
		},
		Motion: MotionConfig{
			BaseSpeed:        3.5,
			ReferenceFrameMs: 6,
		},
		Tempo: TempoConfig{
			BPM:        128,
			DurationMs: 0, // Indefinite
		},
		Scoring: ScoringConfig{
			PerfectPoints: 1,
			GoodPoints:    0.5,
			MissPenalty:   1,
		},
		Recording: RecordingConfig{
			CalibrationMs: 1100,
			LogLines:      10,
		},
		AutoHit: AutoHitConfig{
			Enabled: false,
			Center:  600,
			Range:   50,
		},
		Spawn: SpawnConfig{
			RandomY: -60,
			ChartY:  -78,
			EchoY:   550,
		},
		Input: InputConfig{
			Left:      "a",
			Up:        "s",
			Down:      "k",
			Right:     "l",
			ReleaseMs: 150,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.3,
			SampleRate: 44100,
			ClickMs:    60,
		},
		Storage: StorageConfig{
			Slot: "default",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultRhythmYAML
}
