// Package audio provides hit feedback cues for the rhythm engine.
package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/vovakirdan/tui-rhythm/internal/config"
	"github.com/vovakirdan/tui-rhythm/internal/rhythm"
)

var (
	// ErrCueDropped is returned when the playback queue is full.
	ErrCueDropped = errors.New("audio: cue dropped")

	// ErrClosed is returned by Play after Close.
	ErrClosed = errors.New("audio: closed")
)

// Pitches per tier, in Hz.
const (
	PerfectHz = 1320.0
	GoodHz    = 880.0
	queueSize = 8
)

// Beeper plays a short synthesized click through the system speaker.
// Play hands cues to a worker goroutine and never blocks.
type Beeper struct {
	rate   beep.SampleRate
	volume float64
	click  time.Duration

	cues      chan rhythm.Tier
	done      chan struct{}
	closeOnce sync.Once
}

// NewBeeper opens the speaker and starts the playback worker.
func NewBeeper(cfg config.AudioConfig) (*Beeper, error) {
	rate := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(time.Second/30)); err != nil {
		return nil, fmt.Errorf("audio: cannot open speaker: %w", err)
	}

	b := &Beeper{
		rate:   rate,
		volume: cfg.Volume,
		click:  time.Duration(cfg.ClickMs) * time.Millisecond,
		cues:   make(chan rhythm.Tier, queueSize),
		done:   make(chan struct{}),
	}
	go b.loop()
	return b, nil
}

// Play queues a click for the tier.
func (b *Beeper) Play(t rhythm.Tier) error {
	select {
	case <-b.done:
		return ErrClosed
	default:
	}

	select {
	case b.cues <- t:
		return nil
	default:
		return ErrCueDropped
	}
}

func (b *Beeper) loop() {
	for {
		select {
		case <-b.done:
			return
		case t := <-b.cues:
			speaker.Play(Tone(b.rate, pitch(t), b.volume, b.click))
		}
	}
}

// Close stops the worker and releases the speaker.
func (b *Beeper) Close() error {
	b.closeOnce.Do(func() {
		close(b.done)
		speaker.Close()
	})
	return nil
}

func pitch(t rhythm.Tier) float64 {
	if t == rhythm.TierPerfect {
		return PerfectHz
	}
	return GoodHz
}

// Tone synthesizes a sine wave of the given frequency that decays
// linearly to silence over d.
func Tone(rate beep.SampleRate, freq, volume float64, d time.Duration) beep.Streamer {
	total := rate.N(d)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= total {
			return 0, false
		}
		for i := range samples {
			if pos >= total {
				return i, true
			}
			env := 1 - float64(pos)/float64(total)
			v := volume * env * math.Sin(2*math.Pi*freq*float64(pos)/float64(rate))
			samples[i] = [2]float64{v, v}
			pos++
		}
		return len(samples), true
	})
}

// Bell rings the terminal bell. Used where no local speaker is available,
// such as SSH sessions. Writes happen on a worker goroutine so a slow
// client never stalls Play.
type Bell struct {
	w io.Writer

	rings     chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewBell creates a bell writing to w and starts its worker.
func NewBell(w io.Writer) *Bell {
	b := &Bell{
		w:     w,
		rings: make(chan struct{}, queueSize),
		done:  make(chan struct{}),
	}
	go b.loop()
	return b
}

// Play queues a BEL character.
func (b *Bell) Play(rhythm.Tier) error {
	select {
	case <-b.done:
		return ErrClosed
	default:
	}

	select {
	case b.rings <- struct{}{}:
		return nil
	default:
		return ErrCueDropped
	}
}

func (b *Bell) loop() {
	for {
		select {
		case <-b.done:
			return
		case <-b.rings:
			if _, err := io.WriteString(b.w, "\a"); err != nil {
				return
			}
		}
	}
}

// Close stops the worker. A write already in progress is not interrupted.
func (b *Bell) Close() error {
	b.closeOnce.Do(func() { close(b.done) })
	return nil
}

// Silent discards every cue.
type Silent struct{}

// Play does nothing.
func (Silent) Play(rhythm.Tier) error { return nil }

var (
	_ rhythm.Cue = (*Beeper)(nil)
	_ rhythm.Cue = (*Bell)(nil)
	_ rhythm.Cue = Silent{}
)

// New returns the best available cue for a local terminal: the speaker
// when audio is enabled and can be opened, otherwise silence. The returned
// close function must be called on exit.
func New(cfg config.AudioConfig, logger *log.Logger) (rhythm.Cue, func() error) {
	if !cfg.Enabled {
		return Silent{}, func() error { return nil }
	}
	b, err := NewBeeper(cfg)
	if err != nil {
		logger.Warn("audio unavailable, hits will be silent", "err", err)
		return Silent{}, func() error { return nil }
	}
	return b, b.Close
}
