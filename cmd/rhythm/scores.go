package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-rhythm/internal/platform/tui"
	"github.com/vovakirdan/tui-rhythm/internal/storage"
)

var (
	flagScoresTUI    bool
	flagScoresRecent bool
	flagScoresClear  bool
	flagScoresLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show run history for a chart slot",
	Long: `Display the best runs recorded for a chart slot.

Examples:
  rhythm scores
  rhythm scores --slot mysong --recent
  rhythm scores --tui
  rhythm scores --slot mysong --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse runs in an interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the most recent runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all runs for the slot")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	slot := slotName(cfg)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(slot); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared run history for %q\n", slot)
		return
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, slot, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var runs []storage.RunRecord
	if flagScoresRecent {
		runs, err = store.RecentRuns(slot, flagScoresLimit)
	} else {
		runs, err = store.TopRuns(slot, flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Runs - %s\n", slot)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'rhythm play --slot %s' to set the first one!\n", slot)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %-15s  %-6s  %-6s  %s\n", "Rank", "Points", "Streak", "P/E/L/M", "Acc", "Mode", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %-15s  %-6s  %-6s  %s\n", "----", "------", "------", "-------", "---", "----", "----")

	for i, run := range runs {
		counts := fmt.Sprintf("%d/%d/%d/%d", run.Perfect, run.Early, run.Late, run.Miss)
		fmt.Printf("  %-4d  %-10.1f  %-6d  %-15s  %5.1f%%  %-6s  %s\n",
			i+1, run.Points, run.MaxStreak, counts, run.Accuracy()*100, run.Mode,
			run.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.Stats(slot); err == nil && stats.Runs > 0 {
		fmt.Printf("Runs: %d  Best: %.1f  Avg: %.1f  Best streak: %d\n",
			stats.Runs, stats.BestPoints, stats.AvgPoints, stats.BestStreak)
	}
}
