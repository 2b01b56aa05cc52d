package lunar

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Style selects how the lit region is described to a renderer
type Style int

const (
	// StylePath describes the lit region as a closed SVG path
	StylePath Style = iota
	// StyleMask describes it as a scaled ellipse over a half-lit disk
	StyleMask
)

func (s Style) String() string {
	switch s {
	case StylePath:
		return "path"
	case StyleMask:
		return "mask"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// ParseStyle accepts "path" or "mask"
func ParseStyle(s string) (Style, error) {
	switch s {
	case "", "path", "svg":
		return StylePath, nil
	case "mask":
		return StyleMask, nil
	}
	return 0, fmt.Errorf("unknown silhouette style %q", s)
}

// DegenerateEpsilon is how close, in degrees, an angle must be to New or Full
// Moon to be drawn as an empty or full disk
const DegenerateEpsilon = 0.1

// Mask colors
const (
	LightColor = "#FDF6E3"
	DarkColor  = "#1a1a1a"
)

// Disk is the circle the path strategy draws on
type Disk struct {
	CX float64 `json:"cx" yaml:"cx"`
	CY float64 `json:"cy" yaml:"cy"`
	R  float64 `json:"r" yaml:"r"`
}

// DefaultDisk fits a 100×100 viewBox with a one-unit margin
func DefaultDisk() Disk {
	return Disk{CX: 50, CY: 50, R: 49}
}

// Geometry is a silhouette in one of the two styles. Exactly one of Path and
// Mask is set, matching Style.
type Geometry struct {
	Style Style         `json:"-"`
	Path  *PathGeometry `json:"path,omitempty"`
	Mask  *MaskGeometry `json:"mask,omitempty"`
}

// PathGeometry is the lit region as SVG path data on Disk. D is empty when
// the Moon is fully dark.
type PathGeometry struct {
	Disk     Disk   `json:"disk"`
	D        string `json:"d"`
	Empty    bool   `json:"empty"`
	FullDisk bool   `json:"full_disk"`
}

// MaskGeometry drives the mask renderer: a disk lit on its right half when
// waxing (left when waning), overlaid by a centered ellipse whose horizontal
// radius is |Scale| times the disk radius, filled with EllipseColor.
type MaskGeometry struct {
	Scale        float64 `json:"scale"`
	SignedScale  float64 `json:"signed_scale"` // Scale mirrored by lit side; odd under angle -> 360-angle
	EllipseColor string  `json:"ellipse_color"`
	EllipseLit   bool    `json:"ellipse_lit"`
	IsWaxing     bool    `json:"is_waxing"`
	Rotation     float64 `json:"rotation"` // degrees, clockwise on a y-down screen
}

// Silhouette computes the lit region for a canonical phase angle. rotation
// only applies to the mask style and orients the whole disk.
func Silhouette(angle float64, style Style, disk Disk, rotation float64) Geometry {
	if style == StyleMask {
		m := SilhouetteMask(angle, rotation)
		return Geometry{Style: StyleMask, Mask: &m}
	}
	p := SilhouettePath(angle, disk)
	return Geometry{Style: StylePath, Path: &p}
}

// SilhouettePath builds the lit region from two elliptical arcs sharing the
// top and bottom points of the disk
func SilhouettePath(angle float64, disk Disk) PathGeometry {
	theta := normalizeAngle(angle)
	cx, cy, r := disk.CX, disk.CY, disk.R
	out := PathGeometry{Disk: disk}

	if theta < DegenerateEpsilon || theta > 360-DegenerateEpsilon {
		out.Empty = true
		return out
	}

	top := point{cx, cy - r}
	bottom := point{cx, cy + r}

	var b pathBuilder
	if math.Abs(theta-180) < DegenerateEpsilon {
		b.move(top)
		b.arc(r, r, true, true, bottom)
		b.arc(r, r, true, true, top)
		b.close()
		out.D = b.String()
		out.FullDisk = true
		return out
	}

	waxing := Waxing(theta)
	rx := math.Abs(math.Cos(degToRad(theta))) * r

	// The terminator bulges away from the lit limb for a crescent and toward it
	// for a gibbous moon.
	innerSweep := waxing
	if theta < 90 || theta > 270 {
		innerSweep = !waxing
	}

	b.move(top)
	b.arc(r, r, false, waxing, bottom)
	// within DegenerateEpsilon of a quarter the terminator is a straight line
	if rx < r*math.Sin(degToRad(DegenerateEpsilon)) {
		b.line(top)
	} else {
		b.arc(rx, r, false, innerSweep, top)
	}
	b.close()
	out.D = b.String()
	return out
}

// MaskScale returns the signed horizontal scale of the overlay ellipse:
// -1 at New Moon, 0 at the quarters, 1 at Full Moon
func MaskScale(angle float64) float64 {
	theta := normalizeAngle(angle)
	switch {
	case theta <= 90:
		return -1 + theta/90
	case theta <= 180:
		return (theta - 90) / 90
	case theta <= 270:
		return 1 - (theta-180)/90
	default:
		return -((theta - 270) / 90)
	}
}

// SilhouetteMask computes the mask parameters for a canonical phase angle
func SilhouetteMask(angle, rotation float64) MaskGeometry {
	theta := normalizeAngle(angle)
	scale := MaskScale(theta)
	waxing := Waxing(theta)
	lit := theta > 90 && theta < 270

	m := MaskGeometry{
		Scale:        scale,
		SignedScale:  scale,
		EllipseColor: DarkColor,
		EllipseLit:   lit,
		IsWaxing:     waxing,
		Rotation:     rotation,
	}
	if !waxing {
		m.SignedScale = -scale
	}
	if lit {
		m.EllipseColor = LightColor
	}
	return m
}

// Lit reports whether the point (x, y) of the unit disk is illuminated, in
// the disk's own unrotated frame with x pointing right
func (m MaskGeometry) Lit(x, y float64) bool {
	if x*x+y*y > 1 {
		return false
	}
	if inEllipse(x, y, math.Abs(m.Scale)) {
		return m.EllipseLit
	}
	if m.IsWaxing {
		return x >= 0
	}
	return x <= 0
}

// LitRotated is Lit for a point given in screen coordinates (y down), undoing
// the mask's Rotation first
func (m MaskGeometry) LitRotated(x, y float64) bool {
	rad := degToRad(m.Rotation)
	sin, cos := math.Sincos(rad)
	return m.Lit(x*cos+y*sin, -x*sin+y*cos)
}

// inEllipse tests a point against an axis-aligned ellipse with horizontal
// semi-axis sx and unit vertical semi-axis
func inEllipse(x, y, sx float64) bool {
	if sx == 0 {
		return x == 0
	}
	t := x / sx
	return t*t+y*y <= 1
}

type point struct{ x, y float64 }

type pathBuilder struct {
	sb strings.Builder
}

func (b *pathBuilder) move(p point) {
	b.sep()
	b.sb.WriteString("M ")
	b.coords(p)
}

func (b *pathBuilder) line(p point) {
	b.sep()
	b.sb.WriteString("L ")
	b.coords(p)
}

func (b *pathBuilder) arc(rx, ry float64, large, sweep bool, p point) {
	b.sep()
	b.sb.WriteString("A ")
	b.sb.WriteString(formatCoord(rx))
	b.sb.WriteByte(' ')
	b.sb.WriteString(formatCoord(ry))
	b.sb.WriteString(" 0 ")
	b.sb.WriteString(flag(large))
	b.sb.WriteByte(' ')
	b.sb.WriteString(flag(sweep))
	b.sb.WriteByte(' ')
	b.coords(p)
}

func (b *pathBuilder) close() {
	b.sep()
	b.sb.WriteString("Z")
}

func (b *pathBuilder) coords(p point) {
	b.sb.WriteString(formatCoord(p.x))
	b.sb.WriteByte(' ')
	b.sb.WriteString(formatCoord(p.y))
}

func (b *pathBuilder) sep() {
	if b.sb.Len() > 0 {
		b.sb.WriteByte(' ')
	}
}

func (b *pathBuilder) String() string {
	return b.sb.String()
}

func flag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// formatCoord prints at most four decimals with trailing zeros dropped
func formatCoord(v float64) string {
	v = math.Round(v*1e4) / 1e4
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
