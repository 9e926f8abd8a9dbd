package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rhythm/internal/chartio"
	"github.com/vovakirdan/tui-rhythm/internal/config"
	"github.com/vovakirdan/tui-rhythm/internal/core"
	"github.com/vovakirdan/tui-rhythm/internal/rhythm"
	"github.com/vovakirdan/tui-rhythm/internal/storage"
)

// Options configures a game Model.
type Options struct {
	Config    config.RhythmConfig
	Runtime   core.RuntimeConfig
	Store     *storage.Store // May be nil; charts then live in memory
	Slot      string
	Cue       rhythm.Cue
	Logger    *log.Logger
	Clipboard io.Writer // Receives OSC52 sequences; defaults to stdout
	Palette   *Palette
}

// Model is the Bubble Tea model hosting one rhythm session.
type Model struct {
	session  *rhythm.Session
	cfg      config.RhythmConfig
	runtime  core.RuntimeConfig
	screen   *core.Screen
	keys     KeyMap
	mapper   *KeyMapper
	help     help.Model
	holds    *holdTracker
	palette  *Palette
	clip     io.Writer
	logger   *log.Logger
	slot     string
	lastTick time.Time
	status   string
	quitting bool
}

// NewModel creates a model and its session. Finished runs are saved to
// the store under the slot name.
func NewModel(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Clipboard == nil {
		opts.Clipboard = os.Stdout
	}
	if opts.Palette == nil {
		opts.Palette = NewPalette(nil)
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = core.DefaultConfig().TickRate
	}

	sessOpts := []rhythm.Option{
		rhythm.WithLogger(opts.Logger),
		rhythm.WithSeed(opts.Runtime.Seed),
	}
	if opts.Cue != nil {
		sessOpts = append(sessOpts, rhythm.WithCue(opts.Cue))
	}
	if opts.Store != nil {
		store, slot, logger := opts.Store, opts.Slot, opts.Logger
		sessOpts = append(sessOpts,
			rhythm.WithSlot(store.Slot(slot)),
			rhythm.WithRunEnd(func(sum rhythm.RunSummary) {
				if _, err := store.SaveRun(storage.RunFromSummary(slot, sum)); err != nil {
					logger.Warn("could not save run", "err", err)
				}
			}),
		)
	}

	keys := NewKeyMap(opts.Config.Input)
	h := help.New()
	h.Width = opts.Runtime.ScreenW

	return Model{
		session: rhythm.NewSession(opts.Config, sessOpts...),
		cfg:     opts.Config,
		runtime: opts.Runtime,
		screen:  core.NewScreen(opts.Runtime.ScreenW, fieldHeight(opts.Runtime.ScreenH)),
		keys:    keys,
		mapper:  NewKeyMapper(keys),
		help:    h,
		holds:   newHoldTracker(time.Duration(opts.Config.Input.ReleaseMs) * time.Millisecond),
		palette: opts.Palette,
		clip:    opts.Clipboard,
		logger:  opts.Logger,
		slot:    opts.Slot,
	}
}

// Rows below the field: status line and the short help bar.
const footerRows = 2

func fieldHeight(screenH int) int {
	return max(screenH-footerRows, 0)
}

// Session returns the hosted session.
func (m Model) Session() *rhythm.Session {
	return m.session
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, fieldHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if msg.Paste {
		m.status = m.importChart(string(msg.Runes))
		return m, nil
	}

	if msg.String() == "ctrl+s" {
		path, err := m.saveScreenshot()
		if err != nil {
			m.logger.Warn("screenshot failed", "err", err)
			m.status = "screenshot failed"
		} else {
			m.status = "saved " + path
		}
		return m, nil
	}

	action := m.mapper.MapKey(msg)

	if lane, ok := LaneOf(action); ok {
		if m.holds.Press(lane, now) {
			m.session.KeyDown(lane)
		}
		return m, nil
	}

	switch action {
	case core.ActionQuit:
		m.session.Stop()
		m.quitting = true
		return m, tea.Quit

	case core.ActionStart:
		if m.session.State() == rhythm.StateIdle {
			m.session.Reset()
			m.status = ""
		}

	case core.ActionReset:
		m.session.Reset()
		m.status = ""

	case core.ActionStop:
		m.session.Stop()

	case core.ActionRecord:
		m.status = m.toggleRecording()

	case core.ActionAutoHit:
		if m.session.ToggleAutoHit() {
			m.status = "auto-hit on"
		} else {
			m.status = "auto-hit off"
		}

	case core.ActionCopy:
		m.status = m.copyChart()

	case core.ActionImport:
		m.status = "paste a chart (L/500,U/900 or JSON) to import"

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m Model) toggleRecording() string {
	if m.session.State() != rhythm.StateRecording {
		m.session.StartRecording()
		return "recording: play your chart, E to finish"
	}

	events, err := m.session.StopRecording()
	if errors.Is(err, rhythm.ErrPersistenceUnavailable) {
		return fmt.Sprintf("recorded %d notes (not saved)", len(events))
	}
	return fmt.Sprintf("recorded %d notes", len(events))
}

func (m Model) copyChart() string {
	text, err := m.session.Export()
	if err != nil {
		if errors.Is(err, rhythm.ErrNoChart) {
			return "nothing recorded yet"
		}
		m.logger.Warn("export failed", "err", err)
		return "could not read chart"
	}
	if err := chartio.CopyToClipboard(m.clip, text); err != nil {
		m.logger.Warn("clipboard copy failed", "err", err)
		return "clipboard unavailable"
	}
	return "chart copied to clipboard"
}

// importChart loads pasted chart text for the next restart.
func (m Model) importChart(text string) string {
	format, err := m.session.Import(text)
	switch {
	case errors.Is(err, rhythm.ErrMalformedChart):
		m.logger.Debug("pasted text is not a chart", "err", err)
		return "not a chart: use L/500,U/900 or JSON"
	case errors.Is(err, rhythm.ErrPersistenceUnavailable):
		return fmt.Sprintf("imported %s chart (not saved), R to play", format)
	case err != nil:
		m.logger.Warn("import failed", "err", err)
		return "import failed"
	}
	return fmt.Sprintf("imported %s chart, R to play", format)
}

// handleTick advances the session by the time since the previous tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	var delta float64
	if !m.lastTick.IsZero() {
		delta = float64(now.Sub(m.lastTick)) / float64(time.Millisecond)
	}
	m.lastTick = now

	for _, lane := range m.holds.Expired(now) {
		m.session.KeyUp(lane)
	}

	m.session.Tick(delta)
	return m, tickCmd(m.runtime.TickRate)
}

// saveScreenshot writes the current frame as plain text under ~/.rhythm.
func (m Model) saveScreenshot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".rhythm", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	rhythm.Render(m.screen, m.session.Snapshot(), m.cfg)
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.slot, time.Now().Format("20060102_150405")))
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	helpView := m.help.View(m.keys)
	helpRows := strings.Count(helpView, "\n") + 1
	m.screen.Resize(m.runtime.ScreenW, max(m.runtime.ScreenH-helpRows-1, 0))
	rhythm.Render(m.screen, m.session.Snapshot(), m.cfg)

	var b strings.Builder
	b.WriteString(m.palette.RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(m.palette.status.Render(m.status))
	b.WriteString("\n")
	b.WriteString(m.palette.help.Render(helpView))
	return b.String()
}

// Run starts the Bubble Tea program with a new model.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
