package morph

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CameraConfig holds projection and animation settings for an OrbitCamera.
type CameraConfig struct {
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Near and Far are the clip plane distances.
	Near, Far float64
	// Rate is the damping rate used when flying to a new orbit target.
	Rate float64
	// SettleEpsilon is the squared distance below which the flight is
	// considered finished.
	SettleEpsilon float64
	// MinDistance and MaxDistance bound Zoom.
	MinDistance, MaxDistance float64
}

// DefaultCameraConfig returns a 30° perspective camera that damps at rate 4.
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		FOV:           30,
		Near:          0.1,
		Far:           1000,
		Rate:          4,
		SettleEpsilon: 1e-4,
		MinDistance:   1,
		MaxDistance:   500,
	}
}

// maxPolar keeps Orbit away from the poles where the up vector degenerates.
const maxPolar = math.Pi/2 - 0.01

// CameraPose is a snapshot of the camera for renderers.
type CameraPose struct {
	Position mgl64.Vec3
	Focus    mgl64.Vec3
	Up       mgl64.Vec3
	View     mgl64.Mat4
}

// OrbitCamera flies toward an orbit target given in spherical coordinates and
// always looks at a fixed focal point. While the user is manipulating it,
// Advance leaves the position alone.
type OrbitCamera struct {
	// Viewport is the screen-space rectangle the camera renders into.
	Viewport Rect

	cfg    CameraConfig
	pos    mgl64.Vec3
	target mgl64.Vec3
	focus  mgl64.Vec3

	userControlled bool
	settled        bool

	viewMatrix mgl64.Mat4
	projMatrix mgl64.Mat4
	viewProj   mgl64.Mat4
	dirty      bool
}

// NewOrbitCamera creates a camera at (0, 0, 12) looking at the origin.
func NewOrbitCamera(viewport Rect, cfg CameraConfig) *OrbitCamera {
	start := mgl64.Vec3{0, 0, 12}
	return &OrbitCamera{
		Viewport: viewport,
		cfg:      cfg,
		pos:      start,
		target:   start,
		settled:  true,
		dirty:    true,
	}
}

// Config returns the camera configuration.
func (c *OrbitCamera) Config() CameraConfig {
	return c.cfg
}

// SphericalToCartesian converts an orbit (radius, polar, azimuth) to a point.
// Polar is the elevation above the XZ plane; azimuth is measured from +X
// toward +Z.
func SphericalToCartesian(radius, polar, azimuth float64) mgl64.Vec3 {
	sp, cp := math.Sincos(polar)
	sa, ca := math.Sincos(azimuth)
	return mgl64.Vec3{radius * cp * ca, radius * sp, radius * cp * sa}
}

// CartesianToSpherical is the inverse of SphericalToCartesian for a non-zero
// point.
func CartesianToSpherical(p mgl64.Vec3) (radius, polar, azimuth float64) {
	radius = p.Len()
	if radius == 0 {
		return 0, 0, 0
	}
	polar = math.Asin(mgl64.Clamp(p.Y()/radius, -1, 1))
	azimuth = math.Atan2(p.Z(), p.X())
	return radius, polar, azimuth
}

// SetTargetView sets a new orbit target and restarts the flight. It always
// takes authority back from the user.
func (c *OrbitCamera) SetTargetView(radius, polar, azimuth float64) {
	c.target = SphericalToCartesian(radius, polar, azimuth)
	c.settled = false
	c.userControlled = false
}

// Target returns the current orbit target in world space.
func (c *OrbitCamera) Target() mgl64.Vec3 {
	return c.target
}

// Position returns the current camera position.
func (c *OrbitCamera) Position() mgl64.Vec3 {
	return c.pos
}

// SetPosition moves the camera directly. Intended for manual controls.
func (c *OrbitCamera) SetPosition(p mgl64.Vec3) {
	c.pos = p
	c.dirty = true
}

// Focus returns the fixed point the camera looks at.
func (c *OrbitCamera) Focus() mgl64.Vec3 {
	return c.focus
}

// Settled reports whether the last flight has finished.
func (c *OrbitCamera) Settled() bool {
	return c.settled
}

// UserControlled reports whether the user currently owns the camera.
func (c *OrbitCamera) UserControlled() bool {
	return c.userControlled
}

// BeginUserInteraction hands the camera to the user. Advance stops writing
// the position until EndUserInteraction or the next SetTargetView.
func (c *OrbitCamera) BeginUserInteraction() {
	c.userControlled = true
}

// EndUserInteraction returns authority to the camera. An unfinished flight
// resumes; a settled camera stays wherever the user left it.
func (c *OrbitCamera) EndUserInteraction() {
	c.userControlled = false
}

// Advance moves the camera dt seconds toward its target and re-aims it.
func (c *OrbitCamera) Advance(dt float64) {
	if c.userControlled || c.settled {
		return
	}
	c.pos = DampVec3(c.pos, c.target, c.cfg.Rate, dt)
	c.dirty = true
	if distSq(c.pos, c.target) < c.cfg.SettleEpsilon {
		c.settled = true
	}
}

// Orbit rotates the camera around the focus by the given angles in radians,
// keeping its distance. The polar angle is clamped short of the poles.
func (c *OrbitCamera) Orbit(dAzimuth, dPolar float64) {
	r, polar, az := CartesianToSpherical(c.pos.Sub(c.focus))
	if r == 0 {
		return
	}
	polar = mgl64.Clamp(polar+dPolar, -maxPolar, maxPolar)
	c.SetPosition(c.focus.Add(SphericalToCartesian(r, polar, az+dAzimuth)))
}

// Zoom scales the camera's distance from the focus by factor, clamped to
// [MinDistance, MaxDistance].
func (c *OrbitCamera) Zoom(factor float64) {
	if !(factor > 0) {
		return
	}
	off := c.pos.Sub(c.focus)
	r := off.Len()
	if r == 0 {
		return
	}
	nr := mgl64.Clamp(r*factor, c.cfg.MinDistance, c.cfg.MaxDistance)
	c.SetPosition(c.focus.Add(off.Mul(nr / r)))
}

// Up returns the up vector used to aim the camera. It is +Y except when the
// camera sits directly above or below the focus.
func (c *OrbitCamera) Up() mgl64.Vec3 {
	up := mgl64.Vec3{0, 1, 0}
	fwd := c.focus.Sub(c.pos)
	if fwd.Cross(up).Len() < 1e-9*math.Max(1, fwd.Len()) {
		return mgl64.Vec3{0, 0, -1}
	}
	return up
}

// computeMatrices recomputes the cached matrices if dirty.
func (c *OrbitCamera) computeMatrices() {
	if !c.dirty {
		return
	}
	c.dirty = false

	c.viewMatrix = mgl64.LookAtV(c.pos, c.focus, c.Up())
	aspect := 1.0
	if c.Viewport.Height > 0 {
		aspect = c.Viewport.Width / c.Viewport.Height
	}
	c.projMatrix = mgl64.Perspective(mgl64.DegToRad(c.cfg.FOV), aspect, c.cfg.Near, c.cfg.Far)
	c.viewProj = c.projMatrix.Mul4(c.viewMatrix)
}

// ViewMatrix returns the world-to-camera matrix.
func (c *OrbitCamera) ViewMatrix() mgl64.Mat4 {
	c.computeMatrices()
	return c.viewMatrix
}

// ProjectionMatrix returns the perspective projection matrix.
func (c *OrbitCamera) ProjectionMatrix() mgl64.Mat4 {
	c.computeMatrices()
	return c.projMatrix
}

// MarkDirty forces the matrices to be recomputed, e.g. after the viewport
// changes.
func (c *OrbitCamera) MarkDirty() {
	c.dirty = true
}

// Pose returns a snapshot of the camera.
func (c *OrbitCamera) Pose() CameraPose {
	return CameraPose{
		Position: c.pos,
		Focus:    c.focus,
		Up:       c.Up(),
		View:     c.ViewMatrix(),
	}
}

// WorldToScreen projects a world point into viewport pixels. depth is the
// distance along the view axis; ok is false for points behind the near
// plane.
func (c *OrbitCamera) WorldToScreen(p mgl64.Vec3) (sx, sy, depth float64, ok bool) {
	c.computeMatrices()
	clip := c.viewProj.Mul4x1(p.Vec4(1))
	w := clip.W()
	if w < c.cfg.Near {
		return 0, 0, w, false
	}
	nx, ny := clip.X()/w, clip.Y()/w
	sx = c.Viewport.X + (nx+1)/2*c.Viewport.Width
	sy = c.Viewport.Y + (1-ny)/2*c.Viewport.Height
	return sx, sy, w, true
}

// ViewDirection returns the unit vector from the camera toward the focus.
func (c *OrbitCamera) ViewDirection() mgl64.Vec3 {
	d := c.focus.Sub(c.pos)
	if d.Len() == 0 {
		return mgl64.Vec3{0, 0, -1}
	}
	return d.Normalize()
}
