package main

import (
	"fmt"
	"math"

	"github.com/chrissnell/moonorbit/internal/animation"
	"github.com/chrissnell/moonorbit/internal/engine"
	"github.com/chrissnell/moonorbit/pkg/lunar"
	"github.com/chrissnell/moonorbit/pkg/orbit"
	"github.com/gdamore/tcell/v2"
)

// Terminal cells are roughly twice as tall as they are wide.
const cellAspect = 2.0

var (
	lightStyle = tcell.StyleDefault.Background(tcell.GetColor(lunar.LightColor))
	darkStyle  = tcell.StyleDefault.Background(tcell.GetColor(lunar.DarkColor))
	textStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dimStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	sunStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	earthStyle = tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue).Bold(true)
	moonStyle  = tcell.StyleDefault.Foreground(tcell.GetColor(lunar.LightColor))
)

// view draws the top-down orbit on the left and the Moon as seen from Earth
// on the right
type view struct {
	screen tcell.Screen
	engine *engine.Engine
	driver *animation.Driver
}

// handleKey applies a key press to the driver and reports whether the
// viewer should quit
func (v *view) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		v.step(-1)
	case tcell.KeyRight:
		v.step(1)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case ' ':
			v.driver.Toggle()
		case '1':
			v.driver.SetSpeed(orbit.SpeedSlow)
		case '2':
			v.driver.SetSpeed(orbit.SpeedMedium)
		case '3':
			v.driver.SetSpeed(orbit.SpeedFast)
		case 'r':
			v.driver.Reset()
		case ',':
			v.step(-0.05)
		case '.':
			v.step(0.05)
		}
	}
	return false
}

func (v *view) step(days float64) {
	v.driver.SetDay(v.driver.State().Day + days)
}

func (v *view) draw() {
	s := v.screen
	s.Clear()

	state := v.driver.State()
	f := v.engine.FrameWithStyle(state.Day, lunar.StyleMask)
	w, h := s.Size()

	half := w / 2
	v.drawOrbit(0, 1, half, h-4, f)
	v.drawPhase(half, 1, w-half, h-4, f)

	status := "paused"
	if state.Playing {
		status = "playing"
	}
	drawText(s, 0, 0, textStyle, fmt.Sprintf("Day %d  %s  %.0f%% lit  [%s, %.2f d/tick]",
		f.DayNumber, f.Phase.Name, f.Illumination*100, status, state.Speed))
	drawText(s, 0, h-3, textStyle, f.Tip.Title)
	drawText(s, 0, h-2, dimStyle, f.Tip.Content)
	drawText(s, 0, h-1, dimStyle, "space play/pause  1/2/3 speed  ←/→ day  ,/. nudge  r reset  q quit")

	s.Show()
}

// drawOrbit plots the Sun, the Earth's orbit, the Earth and the Moon scaled
// into the w×h box at (x0, y0)
func (v *view) drawOrbit(x0, y0, w, h int, f engine.Frame) {
	c := v.engine.Constants()
	extent := c.EarthOrbitRadius + c.MoonOrbitRadius
	scale := math.Min(float64(w)/(2*extent*cellAspect), float64(h)/(2*extent))
	cx, cy := x0+w/2, y0+h/2

	toCell := func(x, y float64) (int, int) {
		return cx + int(math.Round(x*scale*cellAspect)), cy + int(math.Round(y*scale))
	}

	steps := int(2 * math.Pi * c.EarthOrbitRadius * scale * cellAspect)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x, y := toCell(c.EarthOrbitRadius*math.Cos(a), c.EarthOrbitRadius*math.Sin(a))
		v.screen.SetContent(x, y, '·', nil, dimStyle)
	}

	v.screen.SetContent(cx, cy, '☼', nil, sunStyle)
	ex, ey := toCell(f.Earth.X, f.Earth.Y)
	v.screen.SetContent(ex, ey, '●', nil, earthStyle)

	// The Moon's glyph shows which half faces the Sun.
	mx, my := toCell(f.MoonAbsolute.X, f.MoonAbsolute.Y)
	v.screen.SetContent(mx, my, halfGlyph(f.SunDirection), nil, moonStyle)
}

// halfGlyph picks a half-filled circle whose filled side points along dir
// (radians, y down)
func halfGlyph(dir float64) rune {
	glyphs := []rune{'◑', '◒', '◐', '◓'} // right, down, left, up filled
	sector := int(math.Round(lunar.NormalizeAngle(lunar.RadToDeg(dir))/90)) % 4
	return glyphs[sector]
}

// phaseDisk returns the centre and radius, in cells, of the Moon's face
// inside the w×h box at (x0, y0)
func phaseDisk(x0, y0, w, h int) (cx, cy, r float64) {
	r = math.Min(float64(h)/2-1, float64(w)/(2*cellAspect)-1)
	return float64(x0) + float64(w)/2, float64(y0) + float64(h)/2, r
}

// drawPhase rasterizes the Moon's face into the w×h box at (x0, y0), turned
// so the lit limb faces the Sun
func (v *view) drawPhase(x0, y0, w, h int, f engine.Frame) {
	cx, cy, r := phaseDisk(x0, y0, w, h)
	if r < 1 || f.Silhouette.Mask == nil {
		return
	}
	m := *f.Silhouette.Mask

	for row := y0; row < y0+h; row++ {
		for col := x0; col < x0+w; col++ {
			// Sample the cell centre in unit-disk coordinates.
			x := (float64(col) + 0.5 - cx) / (r * cellAspect)
			y := (float64(row) + 0.5 - cy) / r
			if x*x+y*y > 1 {
				continue
			}
			style := darkStyle
			if m.LitRotated(x, y) {
				style = lightStyle
			}
			v.screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
