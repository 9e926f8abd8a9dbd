package rhythm

import (
	"bytes"
	"cmp"
	"encoding/json"
	"slices"
	"strconv"
	"strings"
)

// Event is one recorded key press: a lane and its offset from the start of
// playback. A chart is an ordered slice of events.
type Event struct {
	Lane     Lane `json:"type"`
	OffsetMs int  `json:"timestamp"`
}

// Format identifies which external representation a chart was read from.
type Format int

const (
	FormatStructured Format = iota // JSON array of {"type","timestamp"} records
	FormatCompact                  // Comma separated "<LaneChar>/<offsetMs>" tokens
)

func (f Format) String() string {
	switch f {
	case FormatStructured:
		return "structured"
	case FormatCompact:
		return "compact"
	default:
		return "unknown"
	}
}

const (
	compactSeparator = ","
	compactDelimiter = "/"
)

// Encode renders a chart in the compact form, e.g. "L/500,U/900".
func Encode(events []Event) string {
	var sb strings.Builder
	for i, ev := range events {
		if i > 0 {
			sb.WriteString(compactSeparator)
		}
		sb.WriteByte(ev.Lane.Char())
		sb.WriteString(compactDelimiter)
		sb.WriteString(strconv.Itoa(ev.OffsetMs))
	}
	return sb.String()
}

// Decode parses the compact form. The empty string is the empty chart.
// Any bad token rejects the whole input.
func Decode(s string) ([]Event, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []Event{}, nil
	}

	tokens := strings.Split(s, compactSeparator)
	events := make([]Event, 0, len(tokens))
	for _, raw := range tokens {
		tok := strings.TrimSpace(raw)
		laneStr, offStr, ok := strings.Cut(tok, compactDelimiter)
		if !ok {
			return nil, &ChartError{Token: tok, Reason: "missing " + compactDelimiter}
		}
		lane, ok := laneFromChar(strings.TrimSpace(laneStr))
		if !ok {
			return nil, &ChartError{Token: tok, Reason: "unknown lane code"}
		}
		offset, err := strconv.Atoi(strings.TrimSpace(offStr))
		if err != nil {
			return nil, &ChartError{Token: tok, Reason: "offset is not an integer"}
		}
		events = append(events, Event{Lane: lane, OffsetMs: offset})
	}
	return events, nil
}

// MarshalChart renders a chart in the structured form. A nil chart
// marshals as an empty array.
func MarshalChart(events []Event) ([]byte, error) {
	if events == nil {
		events = []Event{}
	}
	return json.Marshal(events)
}

// structuredEvent detects missing fields, which plain Event cannot.
type structuredEvent struct {
	Lane     *Lane `json:"type"`
	OffsetMs *int  `json:"timestamp"`
}

// UnmarshalChart parses the structured form.
func UnmarshalChart(data []byte) ([]Event, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ChartError{Reason: "not a JSON array"}
	}

	events := make([]Event, 0, len(raw))
	for _, item := range raw {
		var se structuredEvent
		if err := json.Unmarshal(item, &se); err != nil {
			return nil, &ChartError{Token: string(item), Reason: err.Error()}
		}
		if se.Lane == nil || se.OffsetMs == nil {
			return nil, &ChartError{Token: string(item), Reason: "record needs type and timestamp"}
		}
		events = append(events, Event{Lane: *se.Lane, OffsetMs: *se.OffsetMs})
	}
	return events, nil
}

// ParseChart reads import text in either form. Text that is valid JSON
// and an array is structured; otherwise text containing "/" is compact;
// anything else is rejected with ErrMalformedChart.
func ParseChart(text string) ([]Event, Format, error) {
	trimmed := bytes.TrimSpace([]byte(text))
	if isJSONArray(trimmed) {
		events, err := UnmarshalChart(trimmed)
		return events, FormatStructured, err
	}
	if strings.Contains(text, compactDelimiter) {
		events, err := Decode(text)
		return events, FormatCompact, err
	}
	return nil, 0, &ChartError{Reason: "neither a JSON array nor compact L/ms tokens"}
}

// isJSONArray reports whether data is a JSON array. Only a leading '['
// counts: null and objects are not charts.
func isJSONArray(data []byte) bool {
	return len(data) > 0 && data[0] == '[' && json.Valid(data)
}

// SortedByOffset returns a copy of the chart ordered by offset.
// Events sharing an offset keep their recorded order.
func SortedByOffset(events []Event) []Event {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b Event) int {
		return cmp.Compare(a.OffsetMs, b.OffsetMs)
	})
	return sorted
}
