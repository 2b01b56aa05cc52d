package lunar

import (
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestSilhouettePath(t *testing.T) {
	disk := DefaultDisk()

	tests := []struct {
		name     string
		angle    float64
		expected string
		empty    bool
		full     bool
	}{
		{name: "new", angle: 0, empty: true},
		{name: "near new", angle: 0.05, empty: true},
		{name: "near new from below", angle: 359.95, empty: true},
		{
			name:     "waxing crescent",
			angle:    45,
			expected: "M 50 1 A 49 49 0 0 1 50 99 A 34.6482 49 0 0 0 50 1 Z",
		},
		{
			name:     "first quarter",
			angle:    90,
			expected: "M 50 1 A 49 49 0 0 1 50 99 L 50 1 Z",
		},
		{
			name:     "waxing gibbous",
			angle:    135,
			expected: "M 50 1 A 49 49 0 0 1 50 99 A 34.6482 49 0 0 1 50 1 Z",
		},
		{
			name:     "full",
			angle:    180,
			expected: "M 50 1 A 49 49 0 1 1 50 99 A 49 49 0 1 1 50 1 Z",
			full:     true,
		},
		{
			name:     "near full",
			angle:    180.05,
			expected: "M 50 1 A 49 49 0 1 1 50 99 A 49 49 0 1 1 50 1 Z",
			full:     true,
		},
		{
			name:     "waning gibbous",
			angle:    225,
			expected: "M 50 1 A 49 49 0 0 0 50 99 A 34.6482 49 0 0 0 50 1 Z",
		},
		{
			name:     "last quarter",
			angle:    270,
			expected: "M 50 1 A 49 49 0 0 0 50 99 L 50 1 Z",
		},
		{
			name:     "waning crescent",
			angle:    315,
			expected: "M 50 1 A 49 49 0 0 0 50 99 A 34.6482 49 0 0 1 50 1 Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SilhouettePath(tt.angle, disk)
			if got.Empty != tt.empty {
				t.Errorf("Empty = %v, expected %v", got.Empty, tt.empty)
			}
			if got.FullDisk != tt.full {
				t.Errorf("FullDisk = %v, expected %v", got.FullDisk, tt.full)
			}
			if got.D != tt.expected {
				t.Errorf("D = %q, expected %q", got.D, tt.expected)
			}
		})
	}
}

func TestSilhouettePathNoNaN(t *testing.T) {
	for angle := 0.0; angle < 360; angle += 0.05 {
		p := SilhouettePath(angle, DefaultDisk())
		if strings.Contains(p.D, "NaN") || strings.Contains(p.D, "Inf") {
			t.Fatalf("angle %v produced %q", angle, p.D)
		}
		if !p.Empty && !strings.HasSuffix(p.D, "Z") {
			t.Fatalf("angle %v produced an open path %q", angle, p.D)
		}
	}
}

func TestSilhouettePathMirror(t *testing.T) {
	// Mirroring flips both sweep flags and keeps the radii
	a := SilhouettePath(60, DefaultDisk()).D
	b := SilhouettePath(300, DefaultDisk()).D
	flip := strings.NewReplacer("0 0 1 ", "0 0 # ", "0 0 0 ", "0 0 1 ")
	mirrored := strings.ReplaceAll(flip.Replace(a), "#", "0")
	if mirrored != b {
		t.Errorf("mirror of %q = %q, expected %q", a, mirrored, b)
	}
}

func TestMaskScale(t *testing.T) {
	tests := []struct {
		angle    float64
		expected float64
	}{
		{0, -1},
		{45, -0.5},
		{90, 0},
		{135, 0.5},
		{180, 1},
		{225, 0.5},
		{270, 0},
		{315, -0.5},
		{359, -89.0 / 90},
	}

	for _, tt := range tests {
		if got := MaskScale(tt.angle); !scalar.EqualWithinAbs(got, tt.expected, 1e-12) {
			t.Errorf("MaskScale(%v) = %v, expected %v", tt.angle, got, tt.expected)
		}
	}
}

func TestSilhouetteMask(t *testing.T) {
	tests := []struct {
		angle  float64
		color  string
		waxing bool
	}{
		{0, DarkColor, true},
		{45, DarkColor, true},
		{90, DarkColor, true},
		{91, LightColor, true},
		{180, LightColor, true},
		{269, LightColor, false},
		{270, DarkColor, false},
		{315, DarkColor, false},
	}

	for _, tt := range tests {
		m := SilhouetteMask(tt.angle, 12.5)
		if m.EllipseColor != tt.color {
			t.Errorf("SilhouetteMask(%v).EllipseColor = %s, expected %s", tt.angle, m.EllipseColor, tt.color)
		}
		if m.IsWaxing != tt.waxing {
			t.Errorf("SilhouetteMask(%v).IsWaxing = %v, expected %v", tt.angle, m.IsWaxing, tt.waxing)
		}
		if m.Rotation != 12.5 {
			t.Errorf("SilhouetteMask(%v).Rotation = %v, expected 12.5", tt.angle, m.Rotation)
		}
	}
}

func TestMaskMirrorSymmetry(t *testing.T) {
	for angle := 0.5; angle < 180; angle += 0.5 {
		a := SilhouetteMask(angle, 0)
		b := SilhouetteMask(360-angle, 0)

		if !scalar.EqualWithinAbs(a.SignedScale, -b.SignedScale, 1e-12) {
			t.Fatalf("SignedScale(%v) = %v, SignedScale(%v) = %v; expected opposites",
				angle, a.SignedScale, 360-angle, b.SignedScale)
		}

		for x := -0.95; x <= 0.95; x += 0.1 {
			for y := -0.95; y <= 0.95; y += 0.1 {
				if a.Lit(x, y) != b.Lit(-x, y) {
					t.Fatalf("angle %v: Lit(%.2f, %.2f) = %v but mirrored Lit = %v",
						angle, x, y, a.Lit(x, y), b.Lit(-x, y))
				}
			}
		}
	}
}

func TestMaskDegenerate(t *testing.T) {
	newMoon := SilhouetteMask(0, 0)
	fullMoon := SilhouetteMask(180, 0)

	for x := -0.99; x <= 0.99; x += 0.033 {
		for y := -0.99; y <= 0.99; y += 0.033 {
			if x*x+y*y > 1 {
				continue
			}
			if newMoon.Lit(x, y) {
				t.Fatalf("new moon lit at (%.3f, %.3f)", x, y)
			}
			if !fullMoon.Lit(x, y) {
				t.Fatalf("full moon dark at (%.3f, %.3f)", x, y)
			}
		}
	}

	if fullMoon.Lit(1.1, 0) {
		t.Error("point outside the disk reported lit")
	}
}

func TestMaskLitGrowsWhileWaxing(t *testing.T) {
	prev := -1.0
	for angle := 0.0; angle <= 180; angle += 10 {
		frac := litFraction(SilhouetteMask(angle, 0))
		if frac+1e-9 < prev {
			t.Errorf("lit fraction fell from %.3f to %.3f at %v°", prev, frac, angle)
		}
		prev = frac
	}
	if !scalar.EqualWithinAbs(litFraction(SilhouetteMask(90, 0)), 0.5, 0.02) {
		t.Errorf("first quarter lit fraction = %.3f, expected ~0.5", litFraction(SilhouetteMask(90, 0)))
	}
}

func TestMaskLitRotated(t *testing.T) {
	m := SilhouetteMask(90, 180)
	if m.LitRotated(0.5, 0.1) {
		t.Error("rotated first quarter lit on the right")
	}
	if !m.LitRotated(-0.5, 0.1) {
		t.Error("rotated first quarter dark on the left")
	}

	m = SilhouetteMask(90, 90)
	// right half turned to face down on a y-down screen
	if !m.LitRotated(0.1, 0.5) {
		t.Error("quarter rotated 90° dark at the bottom")
	}
	if m.LitRotated(0.1, -0.5) {
		t.Error("quarter rotated 90° lit at the top")
	}
}

func TestSilhouetteDispatch(t *testing.T) {
	g := Silhouette(45, StylePath, DefaultDisk(), 30)
	if g.Path == nil || g.Mask != nil {
		t.Errorf("path style produced %+v", g)
	}
	g = Silhouette(45, StyleMask, DefaultDisk(), 30)
	if g.Mask == nil || g.Path != nil {
		t.Errorf("mask style produced %+v", g)
	}
	if g.Mask.Rotation != 30 {
		t.Errorf("mask rotation = %v, expected 30", g.Mask.Rotation)
	}
}

func TestParseStyle(t *testing.T) {
	for in, want := range map[string]Style{"": StylePath, "path": StylePath, "mask": StyleMask} {
		got, err := ParseStyle(in)
		if err != nil || got != want {
			t.Errorf("ParseStyle(%q) = %v, %v; expected %v", in, got, err, want)
		}
	}
	if _, err := ParseStyle("raster"); err == nil {
		t.Error("ParseStyle(raster) returned no error")
	}
}

// litFraction samples the unit disk on a grid
func litFraction(m MaskGeometry) float64 {
	const n = 200
	var lit, total int
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x := (float64(i)+0.5)/n*2 - 1
			y := (float64(j)+0.5)/n*2 - 1
			if x*x+y*y > 1 {
				continue
			}
			total++
			if m.Lit(x, y) {
				lit++
			}
		}
	}
	return float64(lit) / float64(total)
}

func BenchmarkSilhouettePath(b *testing.B) {
	disk := DefaultDisk()
	for i := 0; i < b.N; i++ {
		SilhouettePath(math.Mod(float64(i), 360), disk)
	}
}
