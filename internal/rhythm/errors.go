package rhythm

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedChart is returned when import text matches neither chart form.
	ErrMalformedChart = errors.New("rhythm: malformed chart")

	// ErrPersistenceUnavailable wraps every chart slot failure.
	ErrPersistenceUnavailable = errors.New("rhythm: persistence unavailable")

	// ErrNoChart is returned by Export when nothing has been recorded or imported.
	ErrNoChart = errors.New("rhythm: no saved chart")

	// ErrNotRecording is returned by StopRecording outside the Recording state.
	ErrNotRecording = errors.New("rhythm: not recording")
)

// ChartError describes why chart text was rejected.
type ChartError struct {
	Token  string // Offending token, empty when the whole input is at fault
	Reason string
}

func (e *ChartError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%v: %s", ErrMalformedChart, e.Reason)
	}
	return fmt.Sprintf("%v: token %q: %s", ErrMalformedChart, e.Token, e.Reason)
}

// Unwrap lets errors.Is match ErrMalformedChart.
func (e *ChartError) Unwrap() error {
	return ErrMalformedChart
}

func persistErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistenceUnavailable, op, err)
}
