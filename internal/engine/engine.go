// Package engine composes the orbital and lunar stages into a single frame of
// derived quantities for a simulated day. An Engine holds only immutable
// configuration and is safe to share between goroutines.
package engine

import (
	"math"

	"github.com/chrissnell/moonorbit/pkg/lunar"
	"github.com/chrissnell/moonorbit/pkg/orbit"
	"gonum.org/v1/gonum/spatial/r2"
)

// Engine computes frames from a day count
type Engine struct {
	constants  orbit.Constants
	convention lunar.Convention
	style      lunar.Style
	disk       lunar.Disk
}

// Option configures an Engine
type Option func(*Engine)

// WithConvention sets the zero point of reported phase angles
func WithConvention(c lunar.Convention) Option {
	return func(e *Engine) { e.convention = c }
}

// WithStyle sets the default silhouette style
func WithStyle(s lunar.Style) Option {
	return func(e *Engine) { e.style = s }
}

// WithDisk sets the disk the path silhouette is drawn on
func WithDisk(d lunar.Disk) Option {
	return func(e *Engine) { e.disk = d }
}

// New creates an engine over caller-supplied constants
func New(c orbit.Constants, opts ...Option) *Engine {
	e := &Engine{
		constants:  c,
		convention: lunar.NewMoonAtZero,
		style:      lunar.StylePath,
		disk:       lunar.DefaultDisk(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Constants returns the geometry the engine was built with
func (e *Engine) Constants() orbit.Constants {
	return e.constants
}

// Convention returns the configured phase angle convention
func (e *Engine) Convention() lunar.Convention {
	return e.convention
}

// Style returns the default silhouette style
func (e *Engine) Style() lunar.Style {
	return e.style
}

// Disk returns the disk used by the path silhouette
func (e *Engine) Disk() lunar.Disk {
	return e.disk
}

// PhaseInfo is the classified phase with its static text
type PhaseInfo struct {
	Phase       lunar.Phase `json:"-"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Waxing      bool        `json:"waxing"`
}

// Frame holds everything a renderer needs for one day. Angles ending in Angle
// or Direction are radians unless noted. Frame is not a wire type; the REST
// layer converts it with snake_case point fields.
type Frame struct {
	Day       float64
	DayNumber int

	Earth        r2.Vec
	MoonRelative r2.Vec
	MoonAbsolute r2.Vec
	EarthAngle   float64
	MoonAngle    float64

	// PhaseAngle is in degrees under the engine's convention;
	// CanonicalAngle is the same angle with 0° = New Moon.
	PhaseAngle     float64
	CanonicalAngle float64
	Convention     lunar.Convention
	Illumination   float64
	Phase          PhaseInfo
	Tip            lunar.Tip

	// SunDirection points from the Moon toward the Sun.
	SunDirection float64
	// TopViewRotation orients the Moon's day/night split in the top view.
	TopViewRotation float64
	// NearSideAngle is where the Moon's Earth-facing side points; it always
	// faces the Earth because the Moon is tidally locked.
	NearSideAngle float64

	Silhouette lunar.Geometry
}

// Frame computes the frame for day using the default silhouette style
func (e *Engine) Frame(day float64) Frame {
	return e.FrameWithStyle(day, e.style)
}

// FrameWithStyle computes the frame for day with an explicit silhouette style
func (e *Engine) FrameWithStyle(day float64, style lunar.Style) Frame {
	pos := orbit.Compute(day, e.constants)

	phaseAngle := lunar.PhaseAngle(pos.MoonAngle, e.convention)
	canonical := e.convention.Canonical(phaseAngle)
	phase := lunar.Classify(canonical)
	sunDir := lunar.SunDirection(pos.MoonAbsolute)

	return Frame{
		Day:          pos.Day,
		DayNumber:    int(math.Floor(pos.Day)),
		Earth:        pos.Earth,
		MoonRelative: pos.MoonRelative,
		MoonAbsolute: pos.MoonAbsolute,
		EarthAngle:   pos.EarthAngle,
		MoonAngle:    pos.MoonAngle,

		PhaseAngle:     phaseAngle,
		CanonicalAngle: canonical,
		Convention:     e.convention,
		Illumination:   lunar.Illumination(canonical),
		Phase: PhaseInfo{
			Phase:       phase,
			Name:        phase.Name(),
			Description: phase.Description(),
			Waxing:      lunar.Waxing(canonical),
		},
		Tip: lunar.TipFor(phase),

		SunDirection:    sunDir,
		TopViewRotation: math.Atan2(pos.MoonAbsolute.Y, pos.MoonAbsolute.X),
		NearSideAngle:   pos.MoonAngle + pos.EarthAngle,

		Silhouette: lunar.Silhouette(canonical, style, e.disk, lunar.RadToDeg(sunDir)),
	}
}

// Silhouette computes the silhouette for an angle given in the engine's
// convention
func (e *Engine) Silhouette(angle float64, style lunar.Style) lunar.Geometry {
	return lunar.Silhouette(e.convention.Canonical(angle), style, e.disk, 0)
}
