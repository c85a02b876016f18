package morph

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DampFactor returns the fraction of the remaining distance covered in dt
// seconds at the given rate: 1 - e^(-rate*dt). The result is always in
// [0, 1), so damping never overshoots. Non-positive or NaN dt yields 0.
func DampFactor(rate, dt float64) float64 {
	if !(dt > 0) || !(rate > 0) {
		return 0
	}
	return -math.Expm1(-rate * dt)
}

// Damp moves current toward target by an exponential step that is
// independent of frame rate.
//
//	current + (target-current) * (1 - e^(-rate*dt))
func Damp(current, target, rate, dt float64) float64 {
	return current + (target-current)*DampFactor(rate, dt)
}

// DampVec3 damps each axis of current toward target.
func DampVec3(current, target mgl64.Vec3, rate, dt float64) mgl64.Vec3 {
	k := DampFactor(rate, dt)
	return mgl64.Vec3{
		current[0] + (target[0]-current[0])*k,
		current[1] + (target[1]-current[1])*k,
		current[2] + (target[2]-current[2])*k,
	}
}

// distSq returns the squared Euclidean distance between a and b.
func distSq(a, b mgl64.Vec3) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}
