package restserver

import (
	"time"

	"github.com/chrissnell/moonorbit/internal/animation"
	"github.com/chrissnell/moonorbit/internal/engine"
	"github.com/chrissnell/moonorbit/pkg/lunar"
	"github.com/chrissnell/moonorbit/pkg/orbit"
	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a JSON-friendly r2.Vec
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func newPoint(v r2.Vec) Point {
	return Point{X: v.X, Y: v.Y}
}

// FrameResponse is the wire form of engine.Frame
type FrameResponse struct {
	Day       float64 `json:"day"`
	DayNumber int     `json:"day_number"`

	Earth        Point   `json:"earth"`
	MoonRelative Point   `json:"moon_relative"`
	MoonAbsolute Point   `json:"moon_absolute"`
	EarthAngle   float64 `json:"earth_angle"`
	MoonAngle    float64 `json:"moon_angle"`

	PhaseAngle     float64          `json:"phase_angle"`
	CanonicalAngle float64          `json:"canonical_angle"`
	Convention     string           `json:"convention"`
	Illumination   float64          `json:"illumination"`
	Phase          engine.PhaseInfo `json:"phase"`
	Tip            lunar.Tip        `json:"tip"`

	SunDirection    float64 `json:"sun_direction"`
	TopViewRotation float64 `json:"top_view_rotation"`
	NearSideAngle   float64 `json:"near_side_angle"`

	Silhouette SilhouetteResponse `json:"silhouette"`
}

// NewFrameResponse converts a frame into its wire form
func NewFrameResponse(f engine.Frame) FrameResponse {
	return FrameResponse{
		Day:             f.Day,
		DayNumber:       f.DayNumber,
		Earth:           newPoint(f.Earth),
		MoonRelative:    newPoint(f.MoonRelative),
		MoonAbsolute:    newPoint(f.MoonAbsolute),
		EarthAngle:      f.EarthAngle,
		MoonAngle:       f.MoonAngle,
		PhaseAngle:      f.PhaseAngle,
		CanonicalAngle:  f.CanonicalAngle,
		Convention:      f.Convention.String(),
		Illumination:    f.Illumination,
		Phase:           f.Phase,
		Tip:             f.Tip,
		SunDirection:    f.SunDirection,
		TopViewRotation: f.TopViewRotation,
		NearSideAngle:   f.NearSideAngle,
		Silhouette:      newSilhouetteResponse(f.PhaseAngle, f.Silhouette),
	}
}

// SilhouetteResponse carries whichever geometry the style produced
type SilhouetteResponse struct {
	Angle float64             `json:"angle"`
	Style string              `json:"style"`
	Path  *lunar.PathGeometry `json:"path,omitempty"`
	Mask  *lunar.MaskGeometry `json:"mask,omitempty"`
}

func newSilhouetteResponse(angle float64, g lunar.Geometry) SilhouetteResponse {
	return SilhouetteResponse{
		Angle: angle,
		Style: g.Style.String(),
		Path:  g.Path,
		Mask:  g.Mask,
	}
}

// PhaseResponse describes one of the eight named phases
type PhaseResponse struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Waxing      bool             `json:"waxing"`
	Intervals   []lunar.Interval `json:"intervals"`
	Tip         lunar.Tip        `json:"tip"`
}

func newPhaseResponse(p lunar.Phase) PhaseResponse {
	return PhaseResponse{
		Name:        p.Name(),
		Description: p.Description(),
		Waxing:      p.IsWaxing(),
		Intervals:   p.Intervals(),
		Tip:         lunar.TipFor(p),
	}
}

// ConstantsResponse reports the engine's fixed configuration
type ConstantsResponse struct {
	Orbit        orbit.Constants    `json:"orbit"`
	Convention   string             `json:"convention"`
	Style        string             `json:"style"`
	Disk         lunar.Disk         `json:"disk"`
	SpeedPresets map[string]float64 `json:"speed_presets"`
}

// SessionResponse is a session's playback state plus the frame for its day
type SessionResponse struct {
	ID      string          `json:"id"`
	Created time.Time       `json:"created"`
	State   animation.State `json:"state"`
	Frame   FrameResponse   `json:"frame"`
}

// DayRequest is the body of PUT /api/sessions/{id}/day
type DayRequest struct {
	Day *float64 `json:"day"`
}

// SpeedRequest is the body of PUT /api/sessions/{id}/speed. Speed is either
// a preset name or a number of days per tick.
type SpeedRequest struct {
	Speed any `json:"speed"`
}
