package wirescape

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Create one with
// NewTweenGroup or the convenience constructors and call Update(dt) each
// frame; the group writes the eased values straight into the fields.
//
// There is no global animation manager; owners call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// NewTweenGroup animates each field from its current value to the matching
// entry of to. Extra fields beyond four are ignored. A non-positive duration
// assigns the targets immediately and returns a finished group.
func NewTweenGroup(fields []*float64, to []float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	n := min(len(fields), len(to), len(g.fields))
	if duration <= 0 {
		for i := 0; i < n; i++ {
			*fields[i] = to[i]
		}
		g.Done = true
		return g
	}
	for i := 0; i < n; i++ {
		g.tweens[i] = gween.New(float32(*fields[i]), float32(to[i]), duration, fn)
		g.fields[i] = fields[i]
	}
	g.count = n
	return g
}

// TweenValue animates a single field.
func TweenValue(field *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return NewTweenGroup([]*float64{field}, []float64{to}, duration, fn)
}

// TweenOpacity animates a trigger's opacity.
func TweenOpacity(t *Trigger, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return TweenValue(&t.Opacity, to, duration, fn)
}

// Update advances all tweens by dt seconds and writes values to the fields.
func (g *TweenGroup) Update(dt float32) {
	if g == nil || g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}
