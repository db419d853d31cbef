package wirescape

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrubTrack drives one float32 field along a unit-duration tween.
type scrubTrack struct {
	tween *gween.Tween
	field *float32
}

// ScrollTrigger maps an accumulated scroll offset in [Start, End] to a
// progress in [0, 1] and scrubs its tweens to that progress. Unlike a
// TweenGroup it has no clock: the value depends only on the offset.
type ScrollTrigger struct {
	Start, End float64
	// Speed is the offset added per wheel unit.
	Speed float64

	offset float64
	tracks []scrubTrack
}

// NewScrollTrigger creates a trigger over [start, end].
func NewScrollTrigger(start, end, speed float64) *ScrollTrigger {
	return &ScrollTrigger{Start: start, End: end, Speed: speed, offset: start}
}

// Scrub animates field from its current value to `to` across the scroll
// range.
func (s *ScrollTrigger) Scrub(field *float32, to float32, fn ease.TweenFunc) {
	if fn == nil {
		fn = ease.Linear
	}
	s.tracks = append(s.tracks, scrubTrack{tween: gween.New(*field, to, 1, fn), field: field})
	s.apply()
}

// Progress returns the scroll position as 0..1.
func (s *ScrollTrigger) Progress() float64 {
	if s.End <= s.Start {
		return 0
	}
	return clamp01((s.offset - s.Start) / (s.End - s.Start))
}

// Offset returns the accumulated scroll offset, clamped to [Start, End].
func (s *ScrollTrigger) Offset() float64 {
	return s.offset
}

// Scroll adds a wheel delta. Positive wheel values (scrolling up) move back
// toward Start.
func (s *ScrollTrigger) Scroll(wheelY float64) {
	if wheelY == 0 {
		return
	}
	s.SetOffset(s.offset - wheelY*s.Speed)
}

// SetOffset jumps to an absolute offset.
func (s *ScrollTrigger) SetOffset(offset float64) {
	s.offset = max(s.Start, min(s.End, offset))
	s.apply()
}

func (s *ScrollTrigger) apply() {
	p := float32(s.Progress())
	for _, t := range s.tracks {
		v, _ := t.tween.Set(p)
		*t.field = v
	}
}
