package lunar

// Tip is a short explanatory card shown alongside a phase
type Tip struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

var (
	tipEclipse = Tip{
		Title:   "Why doesn't the Earth block the sunlight?",
		Content: "The Moon is behind the Earth, but its orbit is tilted. Most months the sunlight passes above or below the Earth and lights the Moon directly, so we see a round full moon.",
	}
	tipReflection = Tip{
		Title:   "Why does the Moon shine?",
		Content: "The Moon makes no light of its own. It reflects sunlight like a mirror. When it passes between the Sun and the Earth, the lit side faces away from us and we cannot see it.",
	}
	tipTidalLock = Tip{
		Title:   "Why do we always see the same face?",
		Content: "Watch the marker on the Moon in the top view: it always points at the Earth. The Moon turns once on its axis in the same time it takes to go around the Earth. This is called tidal locking.",
	}
)

// TipFor returns the knowledge card that fits the phase
func TipFor(p Phase) Tip {
	switch p {
	case Full:
		return tipEclipse
	case New, WaningCrescent:
		return tipReflection
	default:
		return tipTidalLock
	}
}
