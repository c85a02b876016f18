package morph

import "github.com/go-gl/mathgl/mgl64"

// MorphRates are the exponential damping rates (per second) used by a Region.
type MorphRates struct {
	Position float64
	Rotation float64
	Scale    float64
	Weight   float64
}

// DefaultMorphRates returns the rates used by NewRegion: transforms settle
// quickly while shape crossfades are slower.
func DefaultMorphRates() MorphRates {
	return MorphRates{Position: 5, Rotation: 5, Scale: 5, Weight: 2}
}

// Pose is a read-only snapshot of a region's animated state.
type Pose struct {
	ID       int
	Position mgl64.Vec3
	Rotation mgl64.Vec3 // Euler XYZ, radians
	Scale    mgl64.Vec3
	Weights  [shapeCount]float64
}

// Weight returns the crossfade weight of shape s, or 0 for non-renderable
// shapes.
func (p Pose) Weight(s Shape) float64 {
	if !s.Valid() {
		return 0
	}
	return p.Weights[s]
}

// Region animates one layout slot: its transform and the visibility weight
// of each shape variant. A Region is created once per identity and keeps its
// current state across target changes, so retargeting mid-flight continues
// from wherever it is.
//
// A fresh Region sits at the origin with zero scale and zero weights, so it
// grows into its first target.
type Region struct {
	id    int
	Rates MorphRates

	targetPos   mgl64.Vec3
	targetRot   mgl64.Vec3
	targetScale mgl64.Vec3
	targetShape Shape

	pos     mgl64.Vec3
	rot     mgl64.Vec3
	scale   mgl64.Vec3
	weights [shapeCount]float64
}

// NewRegion creates a region with the given identity and default rates.
func NewRegion(id int) *Region {
	return &Region{id: id, Rates: DefaultMorphRates(), targetShape: ShapeNone}
}

// ID returns the region's stable identity.
func (r *Region) ID() int {
	return r.id
}

// SetTarget stores new targets without touching the current state. A shape
// that is not one of the renderable variants fades every variant out.
func (r *Region) SetTarget(position, rotation, scale mgl64.Vec3, shape Shape) {
	r.targetPos = position
	r.targetRot = rotation
	r.targetScale = scale
	r.targetShape = shape
}

// SetShape changes only the shape target. The transform tween is untouched.
func (r *Region) SetShape(shape Shape) {
	r.targetShape = shape
}

// Target returns the current target transform and shape.
func (r *Region) Target() (position, rotation, scale mgl64.Vec3, shape Shape) {
	return r.targetPos, r.targetRot, r.targetScale, r.targetShape
}

// Snap jumps the current state straight to the targets.
func (r *Region) Snap() {
	r.pos = r.targetPos
	r.rot = r.targetRot
	r.scale = r.targetScale
	for i, s := range Shapes {
		r.weights[i] = r.weightTarget(s)
	}
}

// Advance steps the region dt seconds toward its targets.
func (r *Region) Advance(dt float64) {
	r.pos = DampVec3(r.pos, r.targetPos, r.Rates.Position, dt)
	r.rot = DampVec3(r.rot, r.targetRot, r.Rates.Rotation, dt)
	r.scale = DampVec3(r.scale, r.targetScale, r.Rates.Scale, dt)

	k := DampFactor(r.Rates.Weight, dt)
	for i, s := range Shapes {
		w := r.weights[i]
		r.weights[i] = w + (r.weightTarget(s)-w)*k
	}
}

// Settled reports whether every field is within eps of its target.
func (r *Region) Settled(eps float64) bool {
	if distSq(r.pos, r.targetPos) > eps*eps ||
		distSq(r.rot, r.targetRot) > eps*eps ||
		distSq(r.scale, r.targetScale) > eps*eps {
		return false
	}
	for i, s := range Shapes {
		d := r.weights[i] - r.weightTarget(s)
		if d > eps || d < -eps {
			return false
		}
	}
	return true
}

// Pose returns a snapshot of the current state.
func (r *Region) Pose() Pose {
	return Pose{
		ID:       r.id,
		Position: r.pos,
		Rotation: r.rot,
		Scale:    r.scale,
		Weights:  r.weights,
	}
}

func (r *Region) weightTarget(s Shape) float64 {
	if s == r.targetShape {
		return 1
	}
	return 0
}
