package morph

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is an indexed triangle list in local space. Every built-in mesh fits
// the unit box [-0.5, 0.5]³ and winds counter-clockwise when seen from
// outside.
type Mesh struct {
	Vertices []mgl64.Vec3
	Indices  []uint16

	creases     []MeshEdge
	creasesDone bool
}

// DefaultCreaseAngle is the angle, in degrees, between neighbouring face
// normals above which their shared edge is outlined.
const DefaultCreaseAngle = 15.0

// MeshEdge is an edge between two vertices and the triangles that share it.
// Faces[1] is -1 on an open boundary.
type MeshEdge struct {
	A, B  uint16
	Faces [2]int
}

// Bounds returns the local-space bounding box.
func (m *Mesh) Bounds() (lo, hi mgl64.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	lo, hi = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = math.Min(lo[i], v[i])
			hi[i] = math.Max(hi[i], v[i])
		}
	}
	return lo, hi
}

// NumTriangles returns len(Indices)/3.
func (m *Mesh) NumTriangles() int {
	return len(m.Indices) / 3
}

// CreaseEdges returns every edge whose two triangles meet at more than
// thresholdDeg degrees, plus open boundary edges. Vertices are matched by
// position, so seams and poles built from duplicate vertices still join.
func (m *Mesh) CreaseEdges(thresholdDeg float64) []MeshEdge {
	type edgeKey struct{ a, b [3]int64 }

	n := m.NumTriangles()
	normals := make([]mgl64.Vec3, n)
	found := make(map[edgeKey]int, n*3/2)
	var all []MeshEdge

	for t := 0; t < n; t++ {
		tri := m.Indices[t*3 : t*3+3]
		a, b, c := m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]
		nv := b.Sub(a).Cross(c.Sub(a))
		if l := nv.Len(); l > 0 {
			nv = nv.Mul(1 / l)
		}
		normals[t] = nv

		for k := 0; k < 3; k++ {
			i, j := tri[k], tri[(k+1)%3]
			qa, qb := quantize(m.Vertices[i]), quantize(m.Vertices[j])
			if qa == qb {
				continue
			}
			if pointLess(qb, qa) {
				qa, qb = qb, qa
			}
			key := edgeKey{qa, qb}
			if e, ok := found[key]; ok {
				if all[e].Faces[1] < 0 {
					all[e].Faces[1] = t
				}
				continue
			}
			found[key] = len(all)
			all = append(all, MeshEdge{A: i, B: j, Faces: [2]int{t, -1}})
		}
	}

	cosT := math.Cos(mgl64.DegToRad(thresholdDeg))
	out := all[:0]
	for _, e := range all {
		if e.Faces[1] < 0 || normals[e.Faces[0]].Dot(normals[e.Faces[1]]) < cosT {
			out = append(out, e)
		}
	}
	return out
}

// outline returns the crease edges at DefaultCreaseAngle, built once.
func (m *Mesh) outline() []MeshEdge {
	if !m.creasesDone {
		m.creases = m.CreaseEdges(DefaultCreaseAngle)
		m.creasesDone = true
	}
	return m.creases
}

func quantize(v mgl64.Vec3) [3]int64 {
	const q = 1e6
	return [3]int64{int64(math.Round(v[0] * q)), int64(math.Round(v[1] * q)), int64(math.Round(v[2] * q))}
}

func pointLess(a, b [3]int64) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func (m *Mesh) vertex(v mgl64.Vec3) uint16 {
	m.Vertices = append(m.Vertices, v)
	return uint16(len(m.Vertices) - 1)
}

// tri appends a triangle, flipping it if needed so its normal points away
// from the origin. Only valid for convex solids that contain the origin.
// Zero-area triangles are dropped.
func (m *Mesh) tri(a, b, c uint16) {
	va, vb, vc := m.Vertices[a], m.Vertices[b], m.Vertices[c]
	n := vb.Sub(va).Cross(vc.Sub(va))
	if n.Len() < 1e-12 {
		return
	}
	centroid := va.Add(vb).Add(vc)
	if n.Dot(centroid) < 0 {
		b, c = c, b
	}
	m.Indices = append(m.Indices, a, b, c)
}

func (m *Mesh) quad(a, b, c, d uint16) {
	m.tri(a, b, c)
	m.tri(a, c, d)
}

// NewCubeMesh returns a unit cube.
func NewCubeMesh() *Mesh {
	m := &Mesh{}
	var idx [8]uint16
	for i := 0; i < 8; i++ {
		x := float64(i&1) - 0.5
		y := float64(i>>1&1) - 0.5
		z := float64(i>>2&1) - 0.5
		idx[i] = m.vertex(mgl64.Vec3{x, y, z})
	}
	m.quad(idx[0], idx[2], idx[3], idx[1]) // -z
	m.quad(idx[4], idx[5], idx[7], idx[6]) // +z
	m.quad(idx[0], idx[1], idx[5], idx[4]) // -y
	m.quad(idx[2], idx[6], idx[7], idx[3]) // +y
	m.quad(idx[0], idx[4], idx[6], idx[2]) // -x
	m.quad(idx[1], idx[3], idx[7], idx[5]) // +x
	return m
}

// NewSphereMesh returns a UV sphere of diameter 1 with the given number of
// latitude rings and longitude sectors.
func NewSphereMesh(rings, sectors int) *Mesh {
	rings = max(rings, 2)
	sectors = max(sectors, 3)
	m := &Mesh{}
	grid := make([][]uint16, rings+1)
	for r := 0; r <= rings; r++ {
		phi := math.Pi * float64(r) / float64(rings) // 0 at +Y
		sp, cp := math.Sincos(phi)
		grid[r] = make([]uint16, sectors)
		for s := 0; s < sectors; s++ {
			theta := 2 * math.Pi * float64(s) / float64(sectors)
			st, ct := math.Sincos(theta)
			grid[r][s] = m.vertex(mgl64.Vec3{0.5 * sp * ct, 0.5 * cp, 0.5 * sp * st})
		}
	}
	for r := 0; r < rings; r++ {
		for s := 0; s < sectors; s++ {
			n := (s + 1) % sectors
			m.quad(grid[r][s], grid[r][n], grid[r+1][n], grid[r+1][s])
		}
	}
	return m
}

// NewWedgeMesh returns a quarter disc extruded along Z, centred and
// stretched so its bounding box is exactly the unit box. side picks the
// quadrant the arc sweeps.
func NewWedgeMesh(side WedgeSide, segments int) *Mesh {
	segments = max(segments, 2)
	start := side.StartAngle()

	// Profile: apex then arc, counter-clockwise.
	profile := make([][2]float64, 0, segments+2)
	profile = append(profile, [2]float64{0, 0})
	for i := 0; i <= segments; i++ {
		a := start + math.Pi/2*float64(i)/float64(segments)
		s, c := math.Sincos(a)
		profile = append(profile, [2]float64{c, s})
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range profile {
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	sx, sy := 1/(maxX-minX), 1/(maxY-minY)

	m := &Mesh{}
	front := make([]uint16, len(profile))
	back := make([]uint16, len(profile))
	for i, p := range profile {
		x, y := (p[0]-cx)*sx, (p[1]-cy)*sy
		front[i] = m.vertex(mgl64.Vec3{x, y, 0.5})
		back[i] = m.vertex(mgl64.Vec3{x, y, -0.5})
	}
	for i := 1; i < len(profile)-1; i++ {
		m.tri(front[0], front[i], front[i+1])
		m.tri(back[0], back[i+1], back[i])
	}
	for i := range profile {
		j := (i + 1) % len(profile)
		m.quad(front[i], back[i], back[j], front[j])
	}
	return m
}

// MeshSet holds the geometry drawn for each shape variant. Wedges are keyed
// by side because each quadrant has its own profile.
type MeshSet struct {
	Cube   *Mesh
	Sphere *Mesh
	Wedges [len(sideNames)]*Mesh
}

// DefaultMeshSet builds the meshes used by Scene.Draw.
func DefaultMeshSet() *MeshSet {
	ms := &MeshSet{
		Cube:   NewCubeMesh(),
		Sphere: NewSphereMesh(10, 16),
	}
	for i := range ms.Wedges {
		ms.Wedges[i] = NewWedgeMesh(WedgeSide(i), 8)
	}
	return ms
}

// Mesh returns the geometry for shape s, or nil if s is not renderable.
func (ms *MeshSet) Mesh(s Shape, side WedgeSide) *Mesh {
	switch s {
	case ShapeCube:
		return ms.Cube
	case ShapeSphere:
		return ms.Sphere
	case ShapeWedge:
		if int(side) < len(ms.Wedges) {
			return ms.Wedges[side]
		}
	}
	return nil
}
