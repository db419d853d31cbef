package wirescape

// PerspectiveCamera projects the 3D scene onto the viewport.
type PerspectiveCamera struct {
	// FOV is the vertical field of view in degrees.
	FOV float32
	// Aspect is viewport width / height. Call UpdateProjection after changing it.
	Aspect float32
	// Near and Far are the clip plane distances.
	Near, Far float32

	// Position is the eye position in world space. The debug panel binds
	// its fields directly, so it is read fresh on every frame.
	Position Vec3
	// Target is the point the camera looks at.
	Target Vec3
	// Up is the world up direction.
	Up Vec3

	projection Mat4
	projDirty  bool
}

// NewPerspectiveCamera creates a camera looking at the origin.
func NewPerspectiveCamera(fov, aspect, near, far float32) *PerspectiveCamera {
	return &PerspectiveCamera{
		FOV:       fov,
		Aspect:    aspect,
		Near:      near,
		Far:       far,
		Up:        Vec3{0, 1, 0},
		projDirty: true,
	}
}

// SetAspect updates the aspect ratio and recomputes the projection.
func (c *PerspectiveCamera) SetAspect(aspect float32) {
	c.Aspect = aspect
	c.UpdateProjection()
}

// UpdateProjection marks the projection matrix for recomputation. Call this
// after modifying FOV, Aspect, Near or Far directly.
func (c *PerspectiveCamera) UpdateProjection() {
	c.projDirty = true
}

// ProjectionMatrix returns the cached projection, recomputing it if dirty.
func (c *PerspectiveCamera) ProjectionMatrix() Mat4 {
	if c.projDirty {
		c.projection = Perspective(c.FOV, c.Aspect, c.Near, c.Far)
		c.projDirty = false
	}
	return c.projection
}

// ViewMatrix returns the world-to-camera transform.
func (c *PerspectiveCamera) ViewMatrix() Mat4 {
	return LookAt(c.Position, c.Target, c.Up)
}

// ViewProjection returns projection * view.
func (c *PerspectiveCamera) ViewProjection() Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// Projector maps world points to screen pixels for one frame.
type Projector struct {
	vp            Mat4
	width, height float32
	near          float32
}

// Projector captures the camera's current matrices for a target of the given
// pixel size.
func (c *PerspectiveCamera) Projector(width, height float32) Projector {
	return Projector{vp: c.ViewProjection(), width: width, height: height, near: c.Near}
}

// Project maps p to screen pixels. ok is false when the point lies behind the
// near plane.
func (p Projector) Project(v Vec3) (sx, sy float32, ok bool) {
	x, y, _, w := p.vp.MulPoint(v)
	if w < p.near {
		return 0, 0, false
	}
	nx := x / w
	ny := y / w
	sx = (nx + 1) * 0.5 * p.width
	sy = (1 - ny) * 0.5 * p.height
	return sx, sy, true
}
