package chartio

import (
	"fmt"
	"io"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/vovakirdan/tui-rhythm/internal/rhythm"
)

// ReadMIDI converts every note start in a Standard MIDI File into a chart
// event. The lane is the key modulo four in field order and the offset is
// the absolute time of the note in milliseconds. Tempo changes are honored.
func ReadMIDI(r io.Reader) ([]rhythm.Event, error) {
	var events []rhythm.Event

	err := smf.ReadTracksFrom(r).Do(func(te smf.TrackEvent) {
		var ch, key, vel uint8
		if !midi.Message(te.Message).GetNoteStart(&ch, &key, &vel) {
			return
		}
		events = append(events, rhythm.Event{
			Lane:     rhythm.Lanes[int(key)%len(rhythm.Lanes)],
			OffsetMs: int(te.AbsMicroSeconds / 1000),
		})
	}).Error()
	if err != nil {
		return nil, fmt.Errorf("chartio: cannot read MIDI: %w", err)
	}

	if len(events) == 0 {
		return nil, fmt.Errorf("chartio: MIDI file has no notes: %w", rhythm.ErrMalformedChart)
	}
	return rhythm.SortedByOffset(events), nil
}
