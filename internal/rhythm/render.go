package rhythm

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-rhythm/internal/config"
	"github.com/vovakirdan/tui-rhythm/internal/core"
)

// Rendering constants.
const (
	NoteChar       = '■'
	EchoChar       = '□'
	MarkerChar     = '▣'
	MarkerIdleChar = '□'
	ZoneChar       = '·'
	LaneGap        = 6 // Columns between adjacent lanes
	hudRows        = 1
)

var laneColors = [laneCount]core.Color{
	LaneLeft:  core.ColorMagenta,
	LaneUp:    core.ColorCyan,
	LaneDown:  core.ColorGreen,
	LaneRight: core.ColorRed,
}

var tierColors = map[Tier]core.Color{
	TierPerfect: core.ColorBrightYellow,
	TierEarly:   core.ColorBrightCyan,
	TierLate:    core.ColorOrange,
	TierMiss:    core.ColorBrightRed,
}

// Render draws a snapshot onto dst. The field is scaled to the screen
// height; lanes keep a fixed column spacing around the screen center.
func Render(dst *core.Screen, snap Snapshot, cfg config.RhythmConfig) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()
	if w == 0 || h <= hudRows {
		return
	}

	v := viewport{field: cfg.Field, top: hudRows, rows: h - hudRows, center: w / 2}

	// Hit zone edges
	for _, y := range []float64{cfg.HitZone.Start, cfg.HitZone.End} {
		row := v.row(y)
		dst.DrawHLine(v.col(LaneLeft)-2, row, 3*LaneGap+5, ZoneChar, core.ColorGray)
	}

	// Markers
	markerRow := v.row(cfg.Field.MarkerY)
	for _, lane := range Lanes {
		if snap.Held[lane] {
			dst.SetColored(v.col(lane), markerRow, MarkerChar, laneColors[lane])
		} else {
			dst.SetColored(v.col(lane), markerRow, MarkerIdleChar, core.ColorGray)
		}
	}

	for _, n := range snap.Notes {
		if n.Y < 0 {
			continue
		}
		if n.Echo {
			dst.SetColored(v.col(n.Lane), v.row(n.Y), EchoChar, core.ColorGray)
			continue
		}
		dst.SetColored(v.col(n.Lane), v.row(n.Y), NoteChar, laneColors[n.Lane])
	}

	drawHUD(dst, snap)

	if snap.HasJudgement && snap.State == StatePlaying {
		text := snap.LastJudgement.Tier.String()
		dst.DrawTextColored(v.col(LaneRight)+4, markerRow, text, tierColors[snap.LastJudgement.Tier])
	}

	for i, line := range snap.RecentLog {
		// Newest on top
		row := hudRows + 1 + len(snap.RecentLog) - 1 - i
		dst.DrawTextColored(1, row, line, core.ColorYellow)
	}

	switch {
	case snap.State == StateIdle:
		drawCenteredMessage(dst, "RHYTHM", "Press Enter to play, E to record")
	case snap.Complete:
		drawCenteredMessage(dst, "CHART COMPLETE",
			fmt.Sprintf("points %s  best streak %d  R to replay", formatPoints(snap.Points), snap.Run.MaxStreak))
	}
}

func drawHUD(dst *core.Screen, snap Snapshot) {
	dst.DrawText(1, 0, "points: "+formatPoints(snap.Points))
	dst.DrawTextCentered(0, fmt.Sprintf("streak %d", snap.Streak), core.ColorBrightWhite)

	right := fmt.Sprintf("max %d", snap.MaxStreak)
	if snap.AutoHit {
		right = "AUTO  " + right
	}
	dst.DrawText(dst.Width()-len([]rune(right))-1, 0, right)

	if snap.Recording {
		label := fmt.Sprintf("● Recording Notes (%d)", snap.Recorded)
		dst.DrawTextCentered(1, label, core.ColorBrightRed)
	}
}

func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w, h := dst.Width(), dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, title, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorDefault)
}

// formatPoints prints points without trailing zeros: 3, 1.5, -2.
func formatPoints(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

type viewport struct {
	field  config.FieldConfig
	top    int
	rows   int
	center int
}

func (v viewport) row(y float64) int {
	r := int(y / v.field.Height * float64(v.rows-1))
	return v.top + core.Clamp(r, 0, v.rows-1)
}

func (v viewport) col(l Lane) int {
	// Lanes sit at -1.5, -0.5, +0.5, +1.5 gaps from the center.
	return v.center + (2*int(l)-3)*LaneGap/2
}
