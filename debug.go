package wirescape

import (
	"time"
)

// frameStats holds per-frame timing and draw-call metrics.
// Only populated when Config.Debug is true.
type frameStats struct {
	tickTime   time.Duration
	renderTime time.Duration
	meshCount  int
	drawCalls  int
}

// debugLogEvery throttles frame stats to one record per this many frames.
const debugLogEvery = 60

// debugLog logs timing and draw-call stats at debug level.
func (s *Session) debugLog(stats frameStats) {
	if !s.Config.Debug || s.frame%debugLogEvery != 0 {
		return
	}
	s.log.Debug("frame",
		"frame", s.frame,
		"tick", stats.tickTime,
		"render", stats.renderTime,
		"meshes", stats.meshCount,
		"draw_calls", stats.drawCalls,
		"edges", countEdges(s.Scene),
		"reveal_percent", s.revealPercent(),
	)
}

func (s *Session) revealPercent() float64 {
	if s.Reveal == nil {
		return 0
	}
	return s.Reveal.State.Percent
}

// countEdges returns the number of wireframe segments the scene submits.
func countEdges(sc *Scene) int {
	n := 0
	for _, m := range sc.Meshes() {
		if m.Visible && m.Geometry != nil && m.Material.Wireframe {
			n += len(m.Geometry.Edges)
		}
	}
	return n
}
