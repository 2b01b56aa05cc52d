// Package lunar turns the Moon's orbital angle into what an observer on Earth
// sees: a phase angle, an illuminated fraction, one of eight named phases and
// the silhouette of the lit region. All functions are pure.
//
// Angles in this package are degrees in [0,360) in the canonical frame where
// 0° is New Moon and 180° is Full Moon, unless a Convention says otherwise.
package lunar

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Convention selects which extremum a phase angle of zero denotes
type Convention int

const (
	// NewMoonAtZero is the canonical frame used by Classify and Silhouette
	NewMoonAtZero Convention = iota
	// FullMoonAtZero offsets the angle by 180°
	FullMoonAtZero
)

// Offset returns the degrees added to the canonical angle under c
func (c Convention) Offset() float64 {
	if c == FullMoonAtZero {
		return 180
	}
	return 0
}

// Canonical converts an angle expressed in c into the New-at-zero frame
func (c Convention) Canonical(angle float64) float64 {
	return normalizeAngle(angle - c.Offset())
}

// FromCanonical converts a canonical angle into c
func (c Convention) FromCanonical(angle float64) float64 {
	return normalizeAngle(angle + c.Offset())
}

func (c Convention) String() string {
	switch c {
	case NewMoonAtZero:
		return "new"
	case FullMoonAtZero:
		return "full"
	default:
		return fmt.Sprintf("Convention(%d)", int(c))
	}
}

// ParseConvention accepts "new" or "full" (the extremum at zero degrees)
func ParseConvention(s string) (Convention, error) {
	switch s {
	case "", "new", "new_moon":
		return NewMoonAtZero, nil
	case "full", "full_moon":
		return FullMoonAtZero, nil
	}
	return 0, fmt.Errorf("unknown phase angle convention %q", s)
}

// PhaseAngle converts the Moon's angle around the Earth, measured from the
// Earth–Sun line in radians, into a phase angle in degrees under conv
func PhaseAngle(moonAngleRad float64, conv Convention) float64 {
	return normalizeAngle(radToDeg(moonAngleRad) + conv.Offset())
}

// SunDirection returns the bearing in radians from the Moon's absolute
// position toward the Sun at the origin. It orients the lit hemisphere in the
// Earth-view render and plays no part in classification.
func SunDirection(moonAbs r2.Vec) float64 {
	return math.Atan2(-moonAbs.Y, -moonAbs.X)
}

// Illumination returns the illuminated fraction [0,1] for a canonical angle:
// 0 at New Moon, 1 at Full Moon
func Illumination(angle float64) float64 {
	return (1 - math.Cos(degToRad(angle))) / 2
}

// Waxing reports whether the lit fraction is growing at a canonical angle.
// The first half of the cycle, New Moon up to and including Full Moon, waxes.
func Waxing(angle float64) bool {
	return normalizeAngle(angle) <= 180
}

// normalizeAngle wraps an angle to the range [0, 360)
func normalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}
	// -tiny + 360 rounds to 360
	if angle >= 360 {
		angle = 0
	}
	return angle
}

// NormalizeAngle wraps an angle in degrees to the range [0, 360)
func NormalizeAngle(angle float64) float64 {
	return normalizeAngle(angle)
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func radToDeg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// RadToDeg converts radians to degrees
func RadToDeg(rad float64) float64 {
	return radToDeg(rad)
}
