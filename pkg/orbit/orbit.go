// Package orbit computes the positions of the Earth and Moon in a simplified
// two-circular-orbit model of the Sun–Earth–Moon system. The Sun sits at the
// origin; the Earth circles it once per year and the Moon circles the Earth
// once per synodic month.
package orbit

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// EarthYear is the length of the modelled year in days
const EarthYear = 365.25

// SynodicMonth is the modelled lunar cycle in days. The same period drives
// both the Moon's revolution and its phase cycle.
const SynodicMonth = 29.53

// Constants holds the geometry shared between the engine and whatever draws
// its output. Radii and sizes are in arbitrary plane units.
type Constants struct {
	EarthOrbitRadius float64 `json:"earth_orbit_radius" yaml:"earth_orbit_radius"`
	MoonOrbitRadius  float64 `json:"moon_orbit_radius" yaml:"moon_orbit_radius"`
	EarthYearDays    float64 `json:"earth_year_days" yaml:"earth_year_days"`
	MoonSynodicDays  float64 `json:"moon_synodic_days" yaml:"moon_synodic_days"`
	SunSize          float64 `json:"sun_size" yaml:"sun_size"`
	EarthSize        float64 `json:"earth_size" yaml:"earth_size"`
	MoonSize         float64 `json:"moon_size" yaml:"moon_size"`
}

// DefaultConstants returns the geometry of the reference visualization
func DefaultConstants() Constants {
	return Constants{
		EarthOrbitRadius: 210,
		MoonOrbitRadius:  65,
		EarthYearDays:    EarthYear,
		MoonSynodicDays:  SynodicMonth,
		SunSize:          80,
		EarthSize:        30,
		MoonSize:         18,
	}
}

// Positions is the output of Compute. Angles are in radians.
type Positions struct {
	Day          float64
	EarthAngle   float64
	MoonAngle    float64 // relative to the Earth–Sun line
	Earth        r2.Vec
	MoonRelative r2.Vec
	MoonAbsolute r2.Vec
}

// WrapDay folds day into [0, year). Negative days wrap forward.
func WrapDay(day, year float64) float64 {
	if year <= 0 {
		return day
	}
	day = math.Mod(day, year)
	if day < 0 {
		day += year
	}
	// day+year can round up to exactly year for tiny negative inputs
	if day >= year {
		day = 0
	}
	return day
}

// EarthAngle returns the Earth's orbital angle in radians for a given day
func EarthAngle(day float64, c Constants) float64 {
	return day / c.EarthYearDays * 2 * math.Pi
}

// MoonAngle returns the Moon's angle around the Earth, measured from the
// Earth–Sun line, in radians for a given day
func MoonAngle(day float64, c Constants) float64 {
	return day / c.MoonSynodicDays * 2 * math.Pi
}

// Compute returns the Earth and Moon positions for a day. The day is wrapped
// into the modelled year first, so Compute(d) == Compute(d + EarthYearDays).
func Compute(day float64, c Constants) Positions {
	day = WrapDay(day, c.EarthYearDays)

	earthAngle := EarthAngle(day, c)
	moonAngle := MoonAngle(day, c)

	earth := polar(c.EarthOrbitRadius, earthAngle)
	// The Moon's orbit is given in a frame that co-rotates with the Earth's
	// position angle, hence the sum.
	moonRel := polar(c.MoonOrbitRadius, moonAngle+earthAngle)

	return Positions{
		Day:          day,
		EarthAngle:   earthAngle,
		MoonAngle:    moonAngle,
		Earth:        earth,
		MoonRelative: moonRel,
		MoonAbsolute: r2.Add(earth, moonRel),
	}
}

func polar(radius, angle float64) r2.Vec {
	return r2.Vec{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
}
