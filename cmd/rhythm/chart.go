package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rhythm/internal/chartio"
	"github.com/vovakirdan/tui-rhythm/internal/rhythm"
	"github.com/vovakirdan/tui-rhythm/internal/storage"
)

var (
	flagChartJSON      bool
	flagChartClipboard bool
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Import, export, show or clear saved charts",
	Long: `Manage the charts saved in the database. Each chart lives in a named
slot; the --slot flag picks which one.

Charts are exchanged as compact text ("L/500,U/900,R/1200") or as a JSON
array of {"type": "left", "timestamp": 500} objects. Standard MIDI Files
(.mid) can be imported too: each note-on becomes an event, with the lane
picked from the key number.`,
}

var chartImportCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Import a chart into the slot",
	Long: `Import a chart file into the slot, replacing what was there.
Use "-" to read chart text from stdin.

Examples:
  rhythm chart import song.mid
  rhythm chart import chart.json --slot mysong
  echo "L/0,R/500" | rhythm chart import -`,
	Args: cobra.ExactArgs(1),
	Run:  runChartImport,
}

var chartExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the slot's chart",
	Long: `Print the saved chart in compact form, or as JSON with --json.
With --clipboard the compact form is copied to the terminal clipboard.

Examples:
  rhythm chart export
  rhythm chart export --json > chart.json
  rhythm chart export --clipboard`,
	Args: cobra.NoArgs,
	Run:  runChartExport,
}

var chartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List saved slots",
	Args:  cobra.NoArgs,
	Run:   runChartShow,
}

var chartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the slot's chart",
	Args:  cobra.NoArgs,
	Run:   runChartClear,
}

func init() {
	chartExportCmd.Flags().BoolVar(&flagChartJSON, "json", false, "Print the chart as JSON")
	chartExportCmd.Flags().BoolVar(&flagChartClipboard, "clipboard", false, "Copy the chart to the clipboard via OSC52")

	chartCmd.AddCommand(chartImportCmd)
	chartCmd.AddCommand(chartExportCmd)
	chartCmd.AddCommand(chartShowCmd)
	chartCmd.AddCommand(chartClearCmd)
}

// openSlot opens the database, the slot named by the flags and a session
// bound to that slot.
func openSlot() (*storage.Store, *storage.Slot, *rhythm.Session) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	slot := store.Slot(slotName(cfg))
	return store, slot, rhythm.NewSession(cfg, rhythm.WithSlot(slot))
}

func runChartImport(_ *cobra.Command, args []string) {
	var (
		events []rhythm.Event
		format string
		err    error
	)
	if args[0] == "-" {
		var f rhythm.Format
		events, f, err = chartio.ReadText(os.Stdin)
		format = f.String()
	} else {
		events, format, err = chartio.ReadFile(args[0])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(events) == 0 {
		fmt.Fprintln(os.Stderr, "Error: chart has no events")
		os.Exit(1)
	}

	store, slot, sess := openSlot()
	defer store.Close()

	if _, err := sess.Import(rhythm.Encode(events)); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving chart: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d events (%s) into %q\n", len(events), format, slot.Name())
}

func runChartExport(_ *cobra.Command, _ []string) {
	store, slot, sess := openSlot()
	defer store.Close()

	text, err := sess.Export()
	if errors.Is(err, rhythm.ErrNoChart) {
		fmt.Fprintf(os.Stderr, "Error: %v in slot %q\n", err, slot.Name())
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading chart: %v\n", err)
		os.Exit(1)
	}

	if flagChartJSON {
		events, err := rhythm.Decode(text)
		if err == nil {
			var data []byte
			data, err = rhythm.MarshalChart(events)
			if err == nil {
				fmt.Println(string(data))
				return
			}
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagChartClipboard {
		if err := chartio.CopyToClipboard(os.Stdout, text); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "Copied chart to clipboard")
		return
	}
	fmt.Println(text)
}

func runChartShow(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	slots, err := store.Slots()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Saved charts:")
	fmt.Println()
	if len(slots) == 0 {
		fmt.Println("  (none)")
		fmt.Println()
		fmt.Println("Record one with 'rhythm play' (press E) or 'rhythm chart import'.")
		return
	}
	fmt.Printf("  %-20s  %-6s  %s\n", "Slot", "Events", "Updated")
	fmt.Printf("  %-20s  %-6s  %s\n", "----", "------", "-------")
	for _, info := range slots {
		fmt.Printf("  %-20s  %-6d  %s\n", info.Name, info.Events, info.UpdatedAt.Format("2006-01-02 15:04"))
	}
}

func runChartClear(_ *cobra.Command, _ []string) {
	store, slot, _ := openSlot()
	defer store.Close()

	if err := slot.ClearChart(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Cleared chart in %q\n", slot.Name())
}
