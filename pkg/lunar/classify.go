package lunar

import "fmt"

// Phase is one of the eight named lunar phases
type Phase int

const (
	New Phase = iota
	WaxingCrescent
	FirstQuarter
	WaxingGibbous
	Full
	WaningGibbous
	LastQuarter
	WaningCrescent
)

// Interval is a half-open range of canonical phase angles [Lower, Upper)
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Contains reports whether angle lies in [Lower, Upper)
func (i Interval) Contains(angle float64) bool {
	return angle >= i.Lower && angle < i.Upper
}

type phaseInfo struct {
	name        string
	description string
	intervals   []Interval
}

// phaseTable is ordered by Phase value. New Moon wraps across the 0/360 seam,
// so it carries two intervals.
var phaseTable = [...]phaseInfo{
	New: {
		name:        "New Moon",
		description: "The Moon sits between the Sun and the Earth with its dark side toward us, so we cannot see it.",
		intervals:   []Interval{{340, 360}, {0, 20}},
	},
	WaxingCrescent: {
		name:        "Waxing Crescent",
		description: "A thin curved sliver appears in the western sky just after sunset.",
		intervals:   []Interval{{20, 80}},
	},
	FirstQuarter: {
		name:        "First Quarter",
		description: "The right half is lit. The Moon is a quarter of the way around its orbit.",
		intervals:   []Interval{{80, 100}},
	},
	WaxingGibbous: {
		name:        "Waxing Gibbous",
		description: "More than half is lit and the Moon keeps getting fuller.",
		intervals:   []Interval{{100, 170}},
	},
	Full: {
		name:        "Full Moon",
		description: "The Earth is between the Sun and the Moon. The whole face we see is lit.",
		intervals:   []Interval{{170, 190}},
	},
	WaningGibbous: {
		name:        "Waning Gibbous",
		description: "The Moon starts to shrink again, still more than half lit.",
		intervals:   []Interval{{190, 260}},
	},
	LastQuarter: {
		name:        "Last Quarter",
		description: "The left half is lit. It usually rises around midnight.",
		intervals:   []Interval{{260, 280}},
	},
	WaningCrescent: {
		name:        "Waning Crescent",
		description: "A thin curve in the eastern sky shortly before dawn.",
		intervals:   []Interval{{280, 340}},
	},
}

// Phases returns all eight phases in cycle order starting at New Moon
func Phases() []Phase {
	phases := make([]Phase, len(phaseTable))
	for i := range phaseTable {
		phases[i] = Phase(i)
	}
	return phases
}

// Classify maps a canonical phase angle to its named phase. Angles outside
// [0,360) are a caller error; they are normalized rather than rejected.
func Classify(angle float64) Phase {
	angle = normalizeAngle(angle)
	for i, info := range phaseTable {
		for _, iv := range info.intervals {
			if iv.Contains(angle) {
				return Phase(i)
			}
		}
	}
	// unreachable while the table tiles [0,360)
	return New
}

// Name returns the human-readable phase name
func (p Phase) Name() string {
	if !p.valid() {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseTable[p].name
}

// Description returns the explanatory text for the phase
func (p Phase) Description() string {
	if !p.valid() {
		return ""
	}
	return phaseTable[p].description
}

// Intervals returns the canonical angle ranges covered by the phase
func (p Phase) Intervals() []Interval {
	if !p.valid() {
		return nil
	}
	out := make([]Interval, len(phaseTable[p].intervals))
	copy(out, phaseTable[p].intervals)
	return out
}

// IsWaxing reports whether the phase belongs to the first half of the
// cycle. New Moon straddles 0° and counts as waxing, Full Moon as waning;
// use Waxing with the actual angle for the direction at a given moment.
func (p Phase) IsWaxing() bool {
	return p >= New && p < Full
}

func (p Phase) String() string {
	return p.Name()
}

func (p Phase) valid() bool {
	return p >= New && p <= WaningCrescent
}
