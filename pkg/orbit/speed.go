package orbit

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidSpeed is returned for zero, negative, NaN or infinite speeds
var ErrInvalidSpeed = errors.New("speed must be a finite, positive number of days per tick")

// Playback speed presets in simulated days per tick
const (
	SpeedSlow   = 0.05
	SpeedMedium = 0.2
	SpeedFast   = 0.8
)

// Presets maps preset names to days per tick
var Presets = map[string]float64{
	"slow":   SpeedSlow,
	"medium": SpeedMedium,
	"fast":   SpeedFast,
}

// ParseSpeed resolves a preset name or a literal number of days per tick
func ParseSpeed(s string) (float64, error) {
	if v, ok := Presets[s]; ok {
		return v, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unknown speed %q: %w", s, ErrInvalidSpeed)
	}
	if err := ValidateSpeed(v); err != nil {
		return 0, err
	}
	return v, nil
}

// ValidateSpeed rejects speeds that would stall or corrupt playback. Pausing
// is a separate state, so a speed of zero is never needed.
func ValidateSpeed(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return ErrInvalidSpeed
	}
	return nil
}
