// rhythm is a terminal rhythm game: notes fall down four lanes and you
// strike them as they cross the hit zone. Charts can be recorded by
// playing, shared as short text strings, or imported from MIDI files.
//
// Usage:
//
//	rhythm play              - Play in the terminal
//	rhythm serve             - Start SSH server for remote play
//	rhythm scores            - Show run history for a slot
//	rhythm chart <command>   - Import, export, show or clear saved charts
//	rhythm simulate          - Run a headless auto-hit session
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible random notes
//	--db <path>           - Set database path (default: ~/.rhythm/rhythm.db)
//	--config <path>       - Custom rhythm.yaml
//	--slot <name>         - Chart slot (default from config)
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rhythm/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagSlot       string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rhythm",
	Short: "Rhythm - a four-lane rhythm game for your terminal",
	Long: `Rhythm is a terminal rhythm game. Notes fall down four lanes; strike
each one with its lane key while it crosses the hit zone.

Record your own chart by playing it, share it as a compact string like
"L/500,U/900", or import one from a MIDI file.

Available commands:
  play      - Play in the terminal
  serve     - Start SSH server for remote play
  scores    - View run history
  chart     - Manage saved charts
  simulate  - Headless auto-hit run

Examples:
  rhythm play
  rhythm play --difficulty hard
  rhythm chart import song.mid
  rhythm serve --ssh :2222
  rhythm scores --slot mysong`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.rhythm/rhythm.db", "Path to chart and run database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom rhythm config YAML")
	rootCmd.PersistentFlags().StringVar(&flagSlot, "slot", "", "Chart slot name (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(simulateCmd)
}

// loadConfig loads the rhythm config and applies the difficulty flag.
func loadConfig() (config.RhythmConfig, error) {
	cfg, err := config.LoadRhythm(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplyPreset(&cfg, preset)
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// slotName resolves the --slot flag against the config default.
func slotName(cfg config.RhythmConfig) string {
	if flagSlot != "" {
		return flagSlot
	}
	if cfg.Storage.Slot != "" {
		return cfg.Storage.Slot
	}
	return "default"
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// openLogFile opens ~/.rhythm/rhythm.log for appending. The alternate
// screen owns stdout while playing, so the game logs to a file.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".rhythm")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "rhythm.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
