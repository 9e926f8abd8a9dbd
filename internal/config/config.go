// Package config provides YAML-based configuration loading and
// difficulty presets for the rhythm game.
package config

import (
	"errors"
	"fmt"
)

// RhythmConfig contains all tunables of the rhythm engine and its hosts.
// Distances are in field units: the play field is Field.Width x Field.Height
// regardless of terminal size, and renderers scale it down.
type RhythmConfig struct {
	Field     FieldConfig     `yaml:"field"`
	HitZone   HitZoneConfig   `yaml:"hit_zone"`
	Motion    MotionConfig    `yaml:"motion"`
	Tempo     TempoConfig     `yaml:"tempo"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Recording RecordingConfig `yaml:"recording"`
	AutoHit   AutoHitConfig   `yaml:"autohit"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Input     InputConfig     `yaml:"input"`
	Audio     AudioConfig     `yaml:"audio"`
	Storage   StorageConfig   `yaml:"storage"`
}

// FieldConfig defines the virtual play field.
type FieldConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`       // Notes below this are retired
	MarkerY     float64 `yaml:"marker_y"`     // Where stationary hit markers are drawn
	LaneSpacing float64 `yaml:"lane_spacing"` // Inner lanes sit at center +- LaneSpacing
	LaneOuter   float64 `yaml:"lane_outer"`   // Outer lanes sit at center +- LaneOuter
}

// HitZoneConfig defines the judged band and its perfect sub-band.
type HitZoneConfig struct {
	Start        float64 `yaml:"start"`
	End          float64 `yaml:"end"`
	PerfectRange float64 `yaml:"perfect_range"` // Half-width of the perfect band around the center
}

// Center returns the midpoint of the hit zone.
func (h HitZoneConfig) Center() float64 {
	return (h.Start + h.End) / 2
}

// MotionConfig defines frame-rate independent note motion.
type MotionConfig struct {
	BaseSpeed        float64 `yaml:"base_speed"`         // Field units per reference frame
	ReferenceFrameMs float64 `yaml:"reference_frame_ms"` // Frame length BaseSpeed is expressed against
}

// TempoConfig defines random-mode cadence.
type TempoConfig struct {
	BPM        float64 `yaml:"bpm"`
	DurationMs float64 `yaml:"duration_ms"` // 0 means spawn indefinitely
}

// IntervalMs returns the spawn interval in milliseconds.
func (t TempoConfig) IntervalMs() float64 {
	return 60000 / t.BPM
}

// ScoringConfig defines point rewards and penalties.
type ScoringConfig struct {
	PerfectPoints float64 `yaml:"perfect_points"`
	GoodPoints    float64 `yaml:"good_points"`  // Early and Late hits
	MissPenalty   float64 `yaml:"miss_penalty"` // Subtracted when a note leaves the field unstruck
}

// RecordingConfig defines recorder behavior.
type RecordingConfig struct {
	CalibrationMs int `yaml:"calibration_ms"` // Subtracted from every recorded offset
	LogLines      int `yaml:"log_lines"`      // Size of the rolling display log
}

// AutoHitConfig defines the window in which auto-hit strikes notes.
type AutoHitConfig struct {
	Enabled bool    `yaml:"enabled"`
	Center  float64 `yaml:"center"`
	Range   float64 `yaml:"range"`
}

// SpawnConfig defines where notes appear.
type SpawnConfig struct {
	RandomY float64 `yaml:"random_y"`
	ChartY  float64 `yaml:"chart_y"`
	EchoY   float64 `yaml:"echo_y"`
}

// InputConfig defines lane key bindings and release synthesis.
type InputConfig struct {
	Left      string `yaml:"left"`
	Up        string `yaml:"up"`
	Down      string `yaml:"down"`
	Right     string `yaml:"right"`
	ReleaseMs int    `yaml:"release_ms"` // Terminals report no key-up; a lane is released after this long without a repeat
}

// AudioConfig defines the hit cue.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"`
	SampleRate int     `yaml:"sample_rate"`
	ClickMs    int     `yaml:"click_ms"`
}

// StorageConfig defines persistence defaults.
type StorageConfig struct {
	Slot string `yaml:"slot"` // Name of the saved chart slot
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate checks that the configuration describes a playable field.
func (c RhythmConfig) Validate() error {
	switch {
	case c.Tempo.BPM <= 0:
		return fmt.Errorf("%w: tempo.bpm must be positive, got %v", ErrInvalidConfig, c.Tempo.BPM)
	case c.Tempo.DurationMs < 0:
		return fmt.Errorf("%w: tempo.duration_ms must not be negative", ErrInvalidConfig)
	case c.Motion.ReferenceFrameMs <= 0:
		return fmt.Errorf("%w: motion.reference_frame_ms must be positive", ErrInvalidConfig)
	case c.Motion.BaseSpeed <= 0:
		return fmt.Errorf("%w: motion.base_speed must be positive", ErrInvalidConfig)
	case c.Field.Height <= 0:
		return fmt.Errorf("%w: field.height must be positive", ErrInvalidConfig)
	case c.HitZone.Start >= c.HitZone.End:
		return fmt.Errorf("%w: hit_zone.start (%v) must be below hit_zone.end (%v)", ErrInvalidConfig, c.HitZone.Start, c.HitZone.End)
	case c.HitZone.PerfectRange < 0:
		return fmt.Errorf("%w: hit_zone.perfect_range must not be negative", ErrInvalidConfig)
	case c.Recording.LogLines < 0:
		return fmt.Errorf("%w: recording.log_lines must not be negative", ErrInvalidConfig)
	}
	return nil
}
