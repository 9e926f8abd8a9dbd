package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rhythm/internal/rhythm"
	"github.com/vovakirdan/tui-rhythm/internal/storage"
)

var (
	flagSimDuration time.Duration
	flagSimManual   bool
	flagSimSave     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless session and print the result",
	Long: `Run a session without a terminal UI. Auto-hit strikes every note in
the hit zone, so this is a quick way to check a chart or tuning. Time
advances in fixed steps of 1/fps seconds; nothing waits on the wall clock.

The slot's saved chart is played if there is one, random notes otherwise.

Examples:
  rhythm simulate
  rhythm simulate --slot mysong --save
  rhythm simulate --duration 2m --fps 120 --seed 42
  rhythm simulate --no-autohit   # every note is missed`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().DurationVar(&flagSimDuration, "duration", 30*time.Second, "Maximum simulated time")
	simulateCmd.Flags().BoolVar(&flagSimManual, "no-autohit", false, "Disable auto-hit")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Save the run to the slot's history")
}

func runSimulate(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	logger, err := newLogger(os.Stderr, "rhythm")
	if err != nil {
		return err
	}
	name := slotName(cfg)

	opts := []rhythm.Option{
		rhythm.WithLogger(logger),
		rhythm.WithSeed(flagSeed),
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("database unavailable, playing random notes", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
		opts = append(opts, rhythm.WithSlot(store.Slot(name)))
	}

	var result *rhythm.RunSummary
	opts = append(opts, rhythm.WithRunEnd(func(sum rhythm.RunSummary) {
		result = &sum
	}))

	sess := rhythm.NewSession(cfg, opts...)
	sess.SetAutoHit(!flagSimManual)
	sess.Reset()

	step := 1000 / float64(flagFPS)
	limit := float64(flagSimDuration.Milliseconds())
	for elapsed := 0.0; elapsed < limit; elapsed += step {
		if res := sess.Tick(step); res.Complete {
			break
		}
	}
	sess.Stop()

	if result == nil {
		fmt.Println("No notes were resolved.")
		return nil
	}

	fmt.Printf("Slot:       %s\n", name)
	fmt.Printf("Mode:       %s\n", result.Mode)
	fmt.Printf("Points:     %.1f\n", result.Points)
	fmt.Printf("Max streak: %d\n", result.MaxStreak)
	fmt.Printf("Perfect:    %d\n", result.Perfect)
	fmt.Printf("Early:      %d\n", result.Early)
	fmt.Printf("Late:       %d\n", result.Late)
	fmt.Printf("Miss:       %d\n", result.Miss)
	fmt.Printf("Accuracy:   %.1f%%\n", result.Accuracy()*100)
	fmt.Printf("Elapsed:    %s\n", time.Duration(result.ElapsedMs*float64(time.Millisecond)).Round(time.Millisecond))
	if result.Complete {
		fmt.Println("Chart complete.")
	}

	if flagSimSave && store != nil {
		id, err := store.SaveRun(storage.RunFromSummary(name, *result))
		if err != nil {
			return fmt.Errorf("saving run: %w", err)
		}
		fmt.Printf("Saved run %s\n", id)
	}
	return nil
}
