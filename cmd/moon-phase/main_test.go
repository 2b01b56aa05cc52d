package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chrissnell/moonorbit/internal/engine"
	"github.com/chrissnell/moonorbit/pkg/orbit"
)

func TestPrintFrameDirection(t *testing.T) {
	e := engine.New(orbit.DefaultConstants())

	tests := []struct {
		name      string
		angle     float64
		phase     string
		direction string
	}{
		{"new moon just after conjunction", 10, "New Moon", "Waxing"},
		{"first quarter", 90, "First Quarter", "Waxing"},
		{"waning gibbous", 220, "Waning Gibbous", "Waning"},
		{"new moon just before conjunction", 350, "New Moon", "Waning"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printFrame(&buf, e.Frame(orbit.SynodicMonth*tt.angle/360))
			out := buf.String()

			if !strings.Contains(out, "Phase Name:   "+tt.phase) {
				t.Errorf("report does not name %q:\n%s", tt.phase, out)
			}
			if !strings.Contains(out, "Direction:    "+tt.direction) {
				t.Errorf("report does not say %q:\n%s", tt.direction, out)
			}
		})
	}
}
