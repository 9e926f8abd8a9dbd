package rhythm

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestDecodeCompact(t *testing.T) {
	events, err := Decode("L/500,U/900")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	want := []Event{{Lane: LaneLeft, OffsetMs: 500}, {Lane: LaneUp, OffsetMs: 900}}
	if !slices.Equal(events, want) {
		t.Errorf("Decode = %+v, expected %+v", events, want)
	}
	if got := Encode(events); got != "L/500,U/900" {
		t.Errorf("Encode = %q, expected %q", got, "L/500,U/900")
	}
}

func TestCompactRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
	}{
		{"empty", []Event{}},
		{"single", []Event{{Lane: LaneRight, OffsetMs: 0}}},
		{"all lanes", []Event{
			{Lane: LaneLeft, OffsetMs: 100},
			{Lane: LaneDown, OffsetMs: 200},
			{Lane: LaneUp, OffsetMs: 300},
			{Lane: LaneRight, OffsetMs: 400},
		}},
		{"negative and unordered", []Event{
			{Lane: LaneUp, OffsetMs: 900},
			{Lane: LaneLeft, OffsetMs: -1100},
			{Lane: LaneUp, OffsetMs: 900},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(Encode(tt.events))
			if err != nil {
				t.Fatalf("Decode(Encode) failed: %v", err)
			}
			if !slices.Equal(got, tt.events) {
				t.Errorf("round trip = %+v, expected %+v", got, tt.events)
			}
		})
	}
}

func TestDecodeTrimsWhitespace(t *testing.T) {
	events, err := Decode(" L / 500 , D/-20 ")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	want := []Event{{Lane: LaneLeft, OffsetMs: 500}, {Lane: LaneDown, OffsetMs: -20}}
	if !slices.Equal(events, want) {
		t.Errorf("Decode = %+v, expected %+v", events, want)
	}
}

func TestDecodeEmpty(t *testing.T) {
	events, err := Decode("")
	if err != nil {
		t.Fatalf("Decode(\"\") failed: %v", err)
	}
	if events == nil || len(events) != 0 {
		t.Errorf("Decode(\"\") = %#v, expected empty chart", events)
	}
}

func TestMarshalChart(t *testing.T) {
	data, err := MarshalChart([]Event{{Lane: LaneLeft, OffsetMs: 500}})
	if err != nil {
		t.Fatalf("MarshalChart failed: %v", err)
	}
	if want := `[{"type":"left","timestamp":500}]`; string(data) != want {
		t.Errorf("MarshalChart = %s, expected %s", data, want)
	}

	data, err = MarshalChart(nil)
	if err != nil || string(data) != "[]" {
		t.Errorf("MarshalChart(nil) = %s, %v; expected []", data, err)
	}
}

func TestParseChart(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
		want   []Event
	}{
		{
			name:   "structured",
			input:  `[{"type":"left","timestamp":500},{"type":"right","timestamp":750}]`,
			format: FormatStructured,
			want:   []Event{{Lane: LaneLeft, OffsetMs: 500}, {Lane: LaneRight, OffsetMs: 750}},
		},
		{
			name:   "structured empty",
			input:  " [] ",
			format: FormatStructured,
			want:   []Event{},
		},
		{
			name:   "compact",
			input:  "R/10,D/20",
			format: FormatCompact,
			want:   []Event{{Lane: LaneRight, OffsetMs: 10}, {Lane: LaneDown, OffsetMs: 20}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, format, err := ParseChart(tt.input)
			if err != nil {
				t.Fatalf("ParseChart failed: %v", err)
			}
			if format != tt.format {
				t.Errorf("format = %v, expected %v", format, tt.format)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("events = %+v, expected %+v", got, tt.want)
			}
		})
	}
}

func TestParseChartRejects(t *testing.T) {
	inputs := []string{
		"hello",
		"X/100",
		"L100,U/200",
		"L/abc",
		"L/500,",
		`[{"type":"diagonal","timestamp":1}]`,
		`[{"type":"left"}]`,
		`[{"type":"left","timestamp":1.5}]`,
		`{"type":"left","timestamp":1}`,
		"null",
		"{}",
		"  null  ",
		"42",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			events, _, err := ParseChart(input)
			if !errors.Is(err, ErrMalformedChart) {
				t.Fatalf("ParseChart(%q) error = %v, expected ErrMalformedChart", input, err)
			}
			if events != nil {
				t.Errorf("ParseChart(%q) returned events %+v with error", input, events)
			}
			var ce *ChartError
			if !errors.As(err, &ce) {
				t.Errorf("error %v is not a *ChartError", err)
			}
		})
	}
}

func TestLaneText(t *testing.T) {
	for _, l := range Lanes {
		text, err := l.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) failed: %v", l, err)
		}
		var back Lane
		if err := back.UnmarshalText(text); err != nil || back != l {
			t.Errorf("UnmarshalText(%s) = %v, %v", text, back, err)
		}
	}

	if _, err := Lane(7).MarshalText(); err == nil {
		t.Error("invalid lane should not marshal")
	}
}

func TestSortedByOffsetIsStable(t *testing.T) {
	in := []Event{
		{Lane: LaneUp, OffsetMs: 900},
		{Lane: LaneLeft, OffsetMs: 500},
		{Lane: LaneRight, OffsetMs: 500},
	}
	got := SortedByOffset(in)
	want := []Event{
		{Lane: LaneLeft, OffsetMs: 500},
		{Lane: LaneRight, OffsetMs: 500},
		{Lane: LaneUp, OffsetMs: 900},
	}
	if !slices.Equal(got, want) {
		t.Errorf("SortedByOffset = %+v, expected %+v", got, want)
	}
	if in[0].OffsetMs != 900 {
		t.Error("SortedByOffset must not modify its input")
	}
}

func TestSortedByOffsetExtremes(t *testing.T) {
	in := []Event{
		{Lane: LaneUp, OffsetMs: math.MaxInt},
		{Lane: LaneLeft, OffsetMs: -10},
		{Lane: LaneDown, OffsetMs: math.MinInt},
	}
	got := SortedByOffset(in)
	want := []Event{
		{Lane: LaneDown, OffsetMs: math.MinInt},
		{Lane: LaneLeft, OffsetMs: -10},
		{Lane: LaneUp, OffsetMs: math.MaxInt},
	}
	if !slices.Equal(got, want) {
		t.Errorf("SortedByOffset = %+v, expected %+v", got, want)
	}
}
