package wirescape

// maxPixelRatio caps the device pixel ratio used for offscreen surfaces.
const maxPixelRatio = 2

// Viewport is the host window size in device-independent pixels plus the
// device pixel ratio reported by the monitor.
type Viewport struct {
	Width, Height    float64
	DevicePixelRatio float64
}

// PixelRatio returns the device pixel ratio capped at 2. A zero or negative
// ratio (unknown monitor) counts as 1.
func (v Viewport) PixelRatio() float64 {
	if v.DevicePixelRatio <= 0 {
		return 1
	}
	return min(v.DevicePixelRatio, maxPixelRatio)
}

// Aspect returns width/height, or 1 for a degenerate viewport.
func (v Viewport) Aspect() float64 {
	if v.Width <= 0 || v.Height <= 0 {
		return 1
	}
	return v.Width / v.Height
}

// OutputSize returns the size of the render output in device pixels.
func (v Viewport) OutputSize() (w, h int) {
	pr := v.PixelRatio()
	return int(v.Width * pr), int(v.Height * pr)
}
