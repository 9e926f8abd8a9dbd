package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-rhythm/internal/audio"
	"github.com/vovakirdan/tui-rhythm/internal/core"
	"github.com/vovakirdan/tui-rhythm/internal/platform/tui"
	"github.com/vovakirdan/tui-rhythm/internal/storage"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a rhythm session in the terminal.

Controls:
  A S K L    - Strike the left, up, down and right lanes
  Enter      - Start playing
  R          - Restart (plays the saved chart, or random notes)
  E          - Start/stop recording a chart
  T          - Toggle auto-hit
  C          - Copy the saved chart to the clipboard
  Paste      - Import a chart (L/500,U/900 or JSON)
  X/Esc      - Stop
  ?          - Full help
  Q/Ctrl+C   - Quit

Lane keys can be changed in rhythm.yaml. Logs are written to
~/.rhythm/rhythm.log.

Examples:
  rhythm play
  rhythm play --slot mysong
  rhythm play --difficulty easy --mute
  rhythm play --config ./my-rhythm.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable hit sounds")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagMute {
		cfg.Audio.Enabled = false
	}

	var logOut io.Writer = io.Discard
	if f, err := openLogFile(); err == nil {
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut, "rhythm")
	if err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database, charts will not be saved: %v\n", err)
		logger.Warn("database unavailable", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cue, closeAudio := audio.New(cfg.Audio, logger)
	defer closeAudio()

	logger.Info("session starting", "slot", slotName(cfg), "bpm", cfg.Tempo.BPM)
	return tui.Run(tui.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Store:  store,
		Slot:   slotName(cfg),
		Cue:    cue,
		Logger: logger,
	})
}
