package wirescape

// PointerPosition holds the raw pointer position (Target) and the smoothed
// position that visuals follow (Current).
type PointerPosition struct {
	TargetX, TargetY   float64
	CurrentX, CurrentY float64
}

// PointerTracker records the latest pointer coordinates from device input.
type PointerTracker struct {
	PointerPosition
}

// Move overwrites the target with the event's viewport coordinates.
func (p *PointerTracker) Move(x, y float64) {
	p.TargetX = x
	p.TargetY = y
}

// Smooth moves Current toward Target by factor of the remaining distance.
// For factor in (0, 1) Current converges toward Target without overshooting.
func (p *PointerTracker) Smooth(factor float64) {
	p.CurrentX = lerp(p.CurrentX, p.TargetX, factor)
	p.CurrentY = lerp(p.CurrentY, p.TargetY, factor)
}

// Snap places Current on Target.
func (p *PointerTracker) Snap() {
	p.CurrentX = p.TargetX
	p.CurrentY = p.TargetY
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
