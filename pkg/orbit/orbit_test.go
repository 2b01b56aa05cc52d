package orbit

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"
)

const tolerance = 1e-9

func TestWrapDay(t *testing.T) {
	tests := []struct {
		name     string
		day      float64
		expected float64
	}{
		{"zero", 0, 0},
		{"inside year", 100.5, 100.5},
		{"exactly one year", EarthYear, 0},
		{"just over a year", EarthYear + 1, 1},
		{"two years", 2 * EarthYear, 0},
		{"negative", -1, EarthYear - 1},
		{"tiny negative", -1e-18, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapDay(tt.day, EarthYear)
			if !scalar.EqualWithinAbs(got, tt.expected, tolerance) {
				t.Errorf("WrapDay(%v) = %v, expected %v", tt.day, got, tt.expected)
			}
			if got < 0 || got >= EarthYear {
				t.Errorf("WrapDay(%v) = %v, outside [0, %v)", tt.day, got, EarthYear)
			}
		})
	}
}

func TestEarthOrbitRadius(t *testing.T) {
	c := DefaultConstants()
	for day := 0.0; day < c.EarthYearDays; day += 0.73 {
		p := Compute(day, c)
		if r := r2.Norm(p.Earth); !scalar.EqualWithinAbs(r, c.EarthOrbitRadius, 1e-9) {
			t.Fatalf("day %.2f: |earth| = %.12f, expected %.1f", day, r, c.EarthOrbitRadius)
		}
		if r := r2.Norm(p.MoonRelative); !scalar.EqualWithinAbs(r, c.MoonOrbitRadius, 1e-9) {
			t.Fatalf("day %.2f: |moon relative| = %.12f, expected %.1f", day, r, c.MoonOrbitRadius)
		}
		if d := r2.Norm(r2.Sub(p.MoonAbsolute, r2.Add(p.Earth, p.MoonRelative))); d > 1e-9 {
			t.Fatalf("day %.2f: moon absolute off by %g from earth+relative", day, d)
		}
	}
}

func TestComputeYearPeriodicity(t *testing.T) {
	c := DefaultConstants()
	for _, day := range []float64{0, 1.5, 14.765, 100, 200.25, 364.9} {
		a := Compute(day, c)
		b := Compute(day+c.EarthYearDays, c)
		if r2.Norm(r2.Sub(a.Earth, b.Earth)) > 1e-6 {
			t.Errorf("day %v: earth %v != %v one year later", day, a.Earth, b.Earth)
		}
		if r2.Norm(r2.Sub(a.MoonAbsolute, b.MoonAbsolute)) > 1e-6 {
			t.Errorf("day %v: moon %v != %v one year later", day, a.MoonAbsolute, b.MoonAbsolute)
		}
	}
}

func TestComputeDayZero(t *testing.T) {
	c := DefaultConstants()
	p := Compute(0, c)

	if p.Earth != (r2.Vec{X: c.EarthOrbitRadius, Y: 0}) {
		t.Errorf("Earth = %v, expected (%.0f, 0)", p.Earth, c.EarthOrbitRadius)
	}
	// Both bodies start on the positive x axis
	expected := r2.Vec{X: c.EarthOrbitRadius + c.MoonOrbitRadius, Y: 0}
	if r2.Norm(r2.Sub(p.MoonAbsolute, expected)) > tolerance {
		t.Errorf("MoonAbsolute = %v, expected %v", p.MoonAbsolute, expected)
	}
}

func TestComputeQuarterYear(t *testing.T) {
	c := DefaultConstants()
	p := Compute(c.EarthYearDays/4, c)

	if !scalar.EqualWithinAbs(p.EarthAngle, math.Pi/2, tolerance) {
		t.Errorf("EarthAngle = %v, expected π/2", p.EarthAngle)
	}
	if !scalar.EqualWithinAbs(p.Earth.X, 0, 1e-9) || !scalar.EqualWithinAbs(p.Earth.Y, c.EarthOrbitRadius, 1e-9) {
		t.Errorf("Earth = %v, expected (0, %.0f)", p.Earth, c.EarthOrbitRadius)
	}
}

func TestMoonAngleSynodic(t *testing.T) {
	c := DefaultConstants()
	if got := MoonAngle(c.MoonSynodicDays, c); !scalar.EqualWithinAbs(got, 2*math.Pi, tolerance) {
		t.Errorf("MoonAngle(one month) = %v, expected 2π", got)
	}
	if got := MoonAngle(c.MoonSynodicDays/2, c); !scalar.EqualWithinAbs(got, math.Pi, tolerance) {
		t.Errorf("MoonAngle(half month) = %v, expected π", got)
	}
}

func BenchmarkCompute(b *testing.B) {
	c := DefaultConstants()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Compute(float64(i%365)+0.5, c)
	}
}
