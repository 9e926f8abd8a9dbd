// Package chartio reads charts from files and streams and copies them to
// the terminal clipboard.
package chartio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"

	"github.com/vovakirdan/tui-rhythm/internal/rhythm"
)

// FormatMIDI names charts converted from Standard MIDI Files.
const FormatMIDI = "midi"

// ReadText parses chart text in either exchange form.
func ReadText(r io.Reader) ([]rhythm.Event, rhythm.Format, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, fmt.Errorf("chartio: cannot read chart: %w", err)
	}
	return rhythm.ParseChart(string(data))
}

// ReadFile loads a chart from disk. Files ending in .mid or .midi are read
// as Standard MIDI Files; anything else as chart text. The second result
// names the format that was read.
func ReadFile(path string) ([]rhythm.Event, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("chartio: cannot read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mid", ".midi":
		events, err := ReadMIDI(bytes.NewReader(data))
		return events, FormatMIDI, err
	}

	events, format, err := rhythm.ParseChart(string(data))
	if err != nil {
		return nil, "", fmt.Errorf("chartio: %s: %w", path, err)
	}
	return events, format.String(), nil
}

// CopyToClipboard writes text to the terminal clipboard with an OSC52
// escape sequence, wrapped for tmux when running inside it.
func CopyToClipboard(w io.Writer, text string) error {
	seq := osc52.New(text)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	}
	if _, err := seq.WriteTo(w); err != nil {
		return fmt.Errorf("chartio: clipboard write failed: %w", err)
	}
	return nil
}
