package orbit

import (
	"errors"
	"math"
	"testing"
)

func TestParseSpeed(t *testing.T) {
	tests := []struct {
		in       string
		expected float64
		wantErr  bool
	}{
		{"slow", SpeedSlow, false},
		{"medium", SpeedMedium, false},
		{"fast", SpeedFast, false},
		{"1.5", 1.5, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"NaN", 0, true},
		{"warp", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseSpeed(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSpeed(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrInvalidSpeed) {
			t.Errorf("ParseSpeed(%q) error = %v, expected ErrInvalidSpeed", tt.in, err)
		}
		if got != tt.expected {
			t.Errorf("ParseSpeed(%q) = %v, expected %v", tt.in, got, tt.expected)
		}
	}
}

func TestValidateSpeed(t *testing.T) {
	for _, v := range []float64{0, -0.1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if err := ValidateSpeed(v); !errors.Is(err, ErrInvalidSpeed) {
			t.Errorf("ValidateSpeed(%v) = %v, expected ErrInvalidSpeed", v, err)
		}
	}
	for _, v := range []float64{1e-6, SpeedSlow, 30} {
		if err := ValidateSpeed(v); err != nil {
			t.Errorf("ValidateSpeed(%v) = %v, expected nil", v, err)
		}
	}
}
