package morph

import "github.com/go-gl/mathgl/mgl64"

// eulerXYZ builds a rotation matrix from Euler angles applied in X, Y, Z
// order (R = Rx * Ry * Rz).
func eulerXYZ(r mgl64.Vec3) mgl64.Mat4 {
	return mgl64.HomogRotate3DX(r[0]).
		Mul4(mgl64.HomogRotate3DY(r[1])).
		Mul4(mgl64.HomogRotate3DZ(r[2]))
}

// ModelMatrix returns the region's local-to-world matrix.
//
// Composition order:
//
//	Scale -> Rotate(XYZ) -> Translate
func (p Pose) ModelMatrix() mgl64.Mat4 {
	t := mgl64.Translate3D(p.Position[0], p.Position[1], p.Position[2])
	s := mgl64.Scale3D(p.Scale[0], p.Scale[1], p.Scale[2])
	return t.Mul4(eulerXYZ(p.Rotation)).Mul4(s)
}

// ShapeMatrix returns the matrix for one shape variant inside the region.
// Each variant is additionally scaled uniformly by its crossfade weight, so
// an inactive shape shrinks away while the active one grows in.
func (p Pose) ShapeMatrix(s Shape) mgl64.Mat4 {
	w := p.Weight(s)
	return p.ModelMatrix().Mul4(mgl64.Scale3D(w, w, w))
}

// transformPoint applies m to a point.
func transformPoint(m mgl64.Mat4, v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(v, m)
}
