package morph

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestRegionStartsEmpty(t *testing.T) {
	r := NewRegion(3)
	p := r.Pose()
	if p.ID != 3 {
		t.Errorf("ID = %d, want 3", p.ID)
	}
	if p.Scale != (mgl64.Vec3{}) {
		t.Errorf("Scale = %v, want zero", p.Scale)
	}
	for _, s := range Shapes {
		if p.Weight(s) != 0 {
			t.Errorf("Weight(%v) = %v, want 0", s, p.Weight(s))
		}
	}
}

func TestRegionEndToEnd(t *testing.T) {
	r := NewRegion(1)
	r.SetTarget(mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Vec3{}, ShapeCube)
	r.Snap()
	if w := r.Pose().Weight(ShapeCube); w != 1 {
		t.Fatalf("cube weight after Snap = %v, want 1", w)
	}

	r.SetTarget(mgl64.Vec3{2, 0, 0}, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, ShapeSphere)
	r.Advance(1)
	p := r.Pose()

	if !approxEqual(p.Position.X(), 2*(1-math.Exp(-5)), 1e-9) || !approxEqual(p.Position.X(), 1.986, 1e-3) {
		t.Errorf("Position.X = %v, want ~1.986", p.Position.X())
	}
	if p.Position.Y() != 0 || p.Position.Z() != 0 {
		t.Errorf("Position = %v, want Y and Z at 0", p.Position)
	}
	if !approxEqual(p.Weight(ShapeCube), 0.135, 1e-3) {
		t.Errorf("cube weight = %v, want ~0.135", p.Weight(ShapeCube))
	}
	if !approxEqual(p.Weight(ShapeSphere), 0.865, 1e-3) {
		t.Errorf("sphere weight = %v, want ~0.865", p.Weight(ShapeSphere))
	}
	if p.Weight(ShapeWedge) != 0 {
		t.Errorf("wedge weight = %v, want 0", p.Weight(ShapeWedge))
	}
}

func TestRegionMonotonicConvergence(t *testing.T) {
	r := NewRegion(1)
	target := mgl64.Vec3{-3, 4, 1.5}
	r.SetTarget(target, mgl64.Vec3{0.5, -1, 2}, mgl64.Vec3{2, 2, 2}, ShapeWedge)

	prev := math.Inf(1)
	const dt = 1.0 / 60
	for i := 0; i < 600; i++ {
		r.Advance(dt)
		d := distSq(r.Pose().Position, target)
		if d > prev {
			t.Fatalf("tick %d: distance grew from %v to %v", i, prev, d)
		}
		prev = d
	}
	if !r.Settled(1e-3) {
		t.Errorf("region not settled after 10s: %+v", r.Pose())
	}
}

func TestRegionIdempotentAtRest(t *testing.T) {
	r := NewRegion(1)
	r.SetTarget(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0.1, 0.2, 0.3}, mgl64.Vec3{1, 1, 1}, ShapeCube)
	r.Snap()
	before := r.Pose()
	for i := 0; i < 100; i++ {
		r.Advance(1.0 / 60)
	}
	after := r.Pose()
	if after != before {
		t.Errorf("pose changed at rest: %+v -> %+v", before, after)
	}
}

func TestRegionWeightExclusivity(t *testing.T) {
	for _, active := range Shapes {
		t.Run(active.String(), func(t *testing.T) {
			r := NewRegion(1)
			r.SetTarget(mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, active)
			for i := 0; i < 1200; i++ {
				r.Advance(1.0 / 60)
			}
			p := r.Pose()
			for _, s := range Shapes {
				want := 0.0
				if s == active {
					want = 1
				}
				if !approxEqual(p.Weight(s), want, 1e-6) {
					t.Errorf("Weight(%v) = %v, want %v", s, p.Weight(s), want)
				}
			}
		})
	}
}

func TestRegionContinuityAcrossRetarget(t *testing.T) {
	r := NewRegion(1)
	r.SetTarget(mgl64.Vec3{10, 0, 0}, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, ShapeCube)
	const dt = 1.0 / 60
	for i := 0; i < 20; i++ {
		r.Advance(dt)
	}
	before := r.Pose().Position

	// Retarget in the opposite direction.
	r.SetTarget(mgl64.Vec3{-10, 0, 0}, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, ShapeCube)
	if r.Pose().Position != before {
		t.Fatalf("SetTarget moved the region: %v -> %v", before, r.Pose().Position)
	}
	r.Advance(dt)
	after := r.Pose().Position

	maxStep := before.Sub(mgl64.Vec3{-10, 0, 0}).Len() * DampFactor(r.Rates.Position, dt)
	if step := after.Sub(before).Len(); step > maxStep+epsilon {
		t.Errorf("step after retarget = %v, want <= %v", step, maxStep)
	}
}

func TestRegionShapeChangeKeepsTransformTween(t *testing.T) {
	a := NewRegion(1)
	b := NewRegion(2)
	for _, r := range []*Region{a, b} {
		r.SetTarget(mgl64.Vec3{5, 0, 0}, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, ShapeCube)
	}
	const dt = 1.0 / 60
	for i := 0; i < 10; i++ {
		a.Advance(dt)
		b.Advance(dt)
	}
	b.SetShape(ShapeSphere)
	for i := 0; i < 10; i++ {
		a.Advance(dt)
		b.Advance(dt)
	}
	pa, pb := a.Pose(), b.Pose()
	if pa.Position != pb.Position || pa.Scale != pb.Scale {
		t.Errorf("shape change disturbed transform: %v/%v vs %v/%v", pa.Position, pa.Scale, pb.Position, pb.Scale)
	}
	if pb.Weight(ShapeSphere) <= 0 || pb.Weight(ShapeCube) >= pa.Weight(ShapeCube) {
		t.Errorf("crossfade not under way: cube %v sphere %v", pb.Weight(ShapeCube), pb.Weight(ShapeSphere))
	}
}

func TestRegionUnknownShapeFadesOut(t *testing.T) {
	r := NewRegion(1)
	r.SetTarget(mgl64.Vec3{}, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, ShapeCube)
	r.Snap()
	r.SetShape(Shape(42))
	for i := 0; i < 1200; i++ {
		r.Advance(1.0 / 60)
	}
	for _, s := range Shapes {
		if w := r.Pose().Weight(s); !approxEqual(w, 0, 1e-6) {
			t.Errorf("Weight(%v) = %v, want 0", s, w)
		}
	}
}

func TestRegionZeroDtIsNoop(t *testing.T) {
	r := NewRegion(1)
	r.SetTarget(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, ShapeCube)
	before := r.Pose()
	r.Advance(0)
	if r.Pose() != before {
		t.Errorf("Advance(0) changed pose")
	}
}
