package lunar

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestPhaseAngle(t *testing.T) {
	tests := []struct {
		name     string
		rad      float64
		conv     Convention
		expected float64
	}{
		{"zero new", 0, NewMoonAtZero, 0},
		{"zero full", 0, FullMoonAtZero, 180},
		{"half turn new", math.Pi, NewMoonAtZero, 180},
		{"half turn full", math.Pi, FullMoonAtZero, 0},
		{"quarter", math.Pi / 2, NewMoonAtZero, 90},
		{"negative quarter", -math.Pi / 2, NewMoonAtZero, 270},
		{"full turn", 2 * math.Pi, NewMoonAtZero, 0},
		{"many turns", 4*math.Pi + math.Pi/2, NewMoonAtZero, 90},
		{"three quarters full", 3 * math.Pi / 2, FullMoonAtZero, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PhaseAngle(tt.rad, tt.conv)
			if !scalar.EqualWithinAbs(got, tt.expected, 1e-9) {
				t.Errorf("PhaseAngle(%v, %v) = %v, expected %v", tt.rad, tt.conv, got, tt.expected)
			}
			if got < 0 || got >= 360 {
				t.Errorf("PhaseAngle(%v, %v) = %v, outside [0, 360)", tt.rad, tt.conv, got)
			}
		})
	}
}

func TestConventionRoundTrip(t *testing.T) {
	for _, conv := range []Convention{NewMoonAtZero, FullMoonAtZero} {
		for angle := 0.0; angle < 360; angle += 7.5 {
			back := conv.Canonical(conv.FromCanonical(angle))
			if !scalar.EqualWithinAbs(back, angle, 1e-9) {
				t.Errorf("%v: round trip of %v gave %v", conv, angle, back)
			}
		}
	}

	// 0 under FullMoonAtZero is a full moon
	if got := Classify(FullMoonAtZero.Canonical(0)); got != Full {
		t.Errorf("Classify(full convention 0) = %v, expected %v", got, Full)
	}
}

func TestParseConvention(t *testing.T) {
	tests := []struct {
		in       string
		expected Convention
		wantErr  bool
	}{
		{"", NewMoonAtZero, false},
		{"new", NewMoonAtZero, false},
		{"full", FullMoonAtZero, false},
		{"full_moon", FullMoonAtZero, false},
		{"gibbous", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseConvention(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseConvention(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.expected {
			t.Errorf("ParseConvention(%q) = %v, expected %v", tt.in, got, tt.expected)
		}
	}
}

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name     string
		moon     r2.Vec
		expected float64
	}{
		{"left of sun", r2.Vec{X: -100, Y: 0}, 0},
		{"below sun", r2.Vec{X: 0, Y: 100}, -math.Pi / 2},
		{"above sun", r2.Vec{X: 0, Y: -100}, math.Pi / 2},
		{"diagonal", r2.Vec{X: 100, Y: 100}, -3 * math.Pi / 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunDirection(tt.moon)
			if !scalar.EqualWithinAbs(got, tt.expected, 1e-12) {
				t.Errorf("SunDirection(%v) = %v, expected %v", tt.moon, got, tt.expected)
			}
		})
	}
}

func TestIllumination(t *testing.T) {
	tests := []struct {
		angle    float64
		expected float64
	}{
		{0, 0},
		{90, 0.5},
		{180, 1},
		{270, 0.5},
		{60, 0.25},
	}

	for _, tt := range tests {
		if got := Illumination(tt.angle); !scalar.EqualWithinAbs(got, tt.expected, 1e-12) {
			t.Errorf("Illumination(%v) = %v, expected %v", tt.angle, got, tt.expected)
		}
	}
}

func TestWaxing(t *testing.T) {
	tests := []struct {
		angle    float64
		expected bool
	}{
		{0, true},
		{10, true},
		{179.9, true},
		{180, true},
		{180.1, false},
		{340, false},
		{350, false},
		{359.9, false},
		{360, true},
		{-10, false},
	}

	for _, tt := range tests {
		if got := Waxing(tt.angle); got != tt.expected {
			t.Errorf("Waxing(%v) = %v, expected %v", tt.angle, got, tt.expected)
		}
		if m := SilhouetteMask(tt.angle, 0); m.IsWaxing != tt.expected {
			t.Errorf("SilhouetteMask(%v).IsWaxing = %v, expected %v", tt.angle, m.IsWaxing, tt.expected)
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in       float64
		expected float64
	}{
		{0, 0},
		{360, 0},
		{720.5, 0.5},
		{-90, 270},
		{-1e-15, 0},
	}

	for _, tt := range tests {
		got := NormalizeAngle(tt.in)
		if !scalar.EqualWithinAbs(got, tt.expected, 1e-9) {
			t.Errorf("NormalizeAngle(%v) = %v, expected %v", tt.in, got, tt.expected)
		}
		if got < 0 || got >= 360 {
			t.Errorf("NormalizeAngle(%v) = %v, outside [0, 360)", tt.in, got)
		}
	}
}

func TestTipFor(t *testing.T) {
	if TipFor(Full) != tipEclipse {
		t.Errorf("TipFor(Full) = %q, expected eclipse tip", TipFor(Full).Title)
	}
	for _, p := range []Phase{New, WaningCrescent} {
		if TipFor(p) != tipReflection {
			t.Errorf("TipFor(%v) = %q, expected reflection tip", p, TipFor(p).Title)
		}
	}
	for _, p := range []Phase{WaxingCrescent, FirstQuarter, WaxingGibbous, WaningGibbous, LastQuarter} {
		if TipFor(p) != tipTidalLock {
			t.Errorf("TipFor(%v) = %q, expected tidal lock tip", p, TipFor(p).Title)
		}
	}
}

func BenchmarkPhaseAngle(b *testing.B) {
	for i := 0; i < b.N; i++ {
		PhaseAngle(float64(i)*0.01, NewMoonAtZero)
	}
}
