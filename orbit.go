package wirescape

import "github.com/chewxy/math32"

const (
	defaultDampingFactor = 0.05
	defaultRotateSpeed   = 1.0
	defaultZoomSpeed     = 1.0
	phiEpsilon           = 1e-6
)

// spherical holds orbit coordinates around the controls target. Theta is the
// azimuth around +Y measured from +Z, Phi the polar angle from +Y.
type spherical struct {
	radius, theta, phi float32
}

func sphericalFromOffset(o Vec3) spherical {
	r := o.Len()
	if r == 0 {
		return spherical{}
	}
	y := math32.Max(-1, math32.Min(1, o.Y/r))
	return spherical{radius: r, theta: math32.Atan2(o.X, o.Z), phi: math32.Acos(y)}
}

func (s spherical) offset() Vec3 {
	sinPhi := math32.Sin(s.phi)
	return Vec3{
		X: s.radius * sinPhi * math32.Sin(s.theta),
		Y: s.radius * math32.Cos(s.phi),
		Z: s.radius * sinPhi * math32.Cos(s.theta),
	}
}

// OrbitControls rotates and dollies a camera around a target point. With
// damping enabled, input deltas decay over several frames instead of being
// applied at once, so motion decelerates rather than stopping abruptly.
type OrbitControls struct {
	camera *PerspectiveCamera

	EnableDamping bool
	DampingFactor float32
	RotateSpeed   float32
	ZoomSpeed     float32
	MinDistance   float32
	MaxDistance   float32

	// Enabled gates user input; Update still applies pending damping.
	Enabled bool

	delta spherical
	scale float32

	dragging     bool
	lastX, lastY float64
}

// NewOrbitControls attaches controls to cam, orbiting cam.Target.
func NewOrbitControls(cam *PerspectiveCamera) *OrbitControls {
	return &OrbitControls{
		camera:        cam,
		DampingFactor: defaultDampingFactor,
		RotateSpeed:   defaultRotateSpeed,
		ZoomSpeed:     defaultZoomSpeed,
		MaxDistance:   math32.Inf(1),
		Enabled:       true,
		scale:         1,
	}
}

// Camera returns the controlled camera.
func (c *OrbitControls) Camera() *PerspectiveCamera {
	return c.camera
}

// RotateLeft queues an azimuth rotation in radians.
func (c *OrbitControls) RotateLeft(angle float32) {
	c.delta.theta -= angle
}

// RotateUp queues a polar rotation in radians.
func (c *OrbitControls) RotateUp(angle float32) {
	c.delta.phi -= angle
}

// Dolly queues a distance change. steps > 0 moves closer, < 0 further away.
func (c *OrbitControls) Dolly(steps float32) {
	c.scale *= math32.Pow(0.95, c.ZoomSpeed*steps)
}

// HandleDrag feeds a pointer sample (in viewport pixels) into the controls.
// pressed reports whether the rotate button is held; viewportHeight scales
// the rotation so a full-height drag turns the camera by 2π.
func (c *OrbitControls) HandleDrag(x, y float64, pressed bool, viewportHeight float64) {
	if !c.Enabled || !pressed {
		c.dragging = false
		return
	}
	if !c.dragging {
		c.dragging = true
		c.lastX, c.lastY = x, y
		return
	}
	if viewportHeight <= 0 {
		viewportHeight = 1
	}
	dx := float32(x - c.lastX)
	dy := float32(y - c.lastY)
	c.lastX, c.lastY = x, y
	h := float32(viewportHeight)
	c.RotateLeft(2 * math32.Pi * dx / h * c.RotateSpeed)
	c.RotateUp(2 * math32.Pi * dy / h * c.RotateSpeed)
}

// HandleWheel feeds a wheel delta into the controls.
func (c *OrbitControls) HandleWheel(dy float64) {
	if !c.Enabled || dy == 0 {
		return
	}
	c.Dolly(float32(dy))
}

// Dragging reports whether a rotate drag is in progress.
func (c *OrbitControls) Dragging() bool {
	return c.dragging
}

// Update applies pending rotation and dolly to the camera. It reports whether
// the camera moved. Call once per frame.
func (c *OrbitControls) Update() bool {
	cam := c.camera
	before := cam.Position
	s := sphericalFromOffset(cam.Position.Sub(cam.Target))

	if c.EnableDamping {
		s.theta += c.delta.theta * c.DampingFactor
		s.phi += c.delta.phi * c.DampingFactor
	} else {
		s.theta += c.delta.theta
		s.phi += c.delta.phi
	}
	s.phi = math32.Max(phiEpsilon, math32.Min(math32.Pi-phiEpsilon, s.phi))
	s.radius *= c.scale
	s.radius = math32.Max(c.MinDistance, math32.Min(c.MaxDistance, s.radius))

	cam.Position = cam.Target.Add(s.offset())

	if c.EnableDamping {
		c.delta.theta *= 1 - c.DampingFactor
		c.delta.phi *= 1 - c.DampingFactor
	} else {
		c.delta = spherical{}
	}
	c.scale = 1

	return cam.Position.Sub(before).Len() > 1e-6
}
