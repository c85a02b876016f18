package morph

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// minVisibleWeight is the crossfade weight below which a shape is skipped.
const minVisibleWeight = 1e-3

// outlineDepthBias pulls an outline just in front of the faces it borders.
const outlineDepthBias = 1e-4

// Lighting constants for flat shading.
const (
	ambientLight = 0.3
	directLight  = 0.9
)

// color32 is a compact RGBA color using float32, for render commands only.
type color32 struct {
	R, G, B, A float32
}

// RenderCommand is one screen-space triangle emitted during traversal.
type RenderCommand struct {
	X, Y  [3]float32
	Color color32
	// Depth is the mean view-space distance of the triangle. Larger is
	// farther away.
	Depth     float64
	RegionID  int
	treeOrder int // assigned during traversal for stable sort
}

// labelCommand is a label drawn over the shapes.
type labelCommand struct {
	Text  string
	X, Y  float64
	Alpha float64
	Depth float64
}

// traverse rebuilds s.commands and s.labels from the current state.
func (s *Scene) traverse() {
	s.commands = s.commands[:0]
	s.labels = s.labels[:0]
	cam := s.camera
	camPos := cam.Position()
	viewDir := cam.ViewDirection()
	treeOrder := 0

	var world []mgl64.Vec3
	for _, id := range s.order {
		st := s.regions[id]
		pose := st.region.Pose()

		var visible float64
		for _, shape := range Shapes {
			w := pose.Weight(shape)
			visible = math.Max(visible, w)
			if w < minVisibleWeight {
				continue
			}
			mesh := s.meshes.Mesh(shape, st.side)
			if mesh == nil {
				continue
			}
			m := pose.ShapeMatrix(shape)
			world = world[:0]
			for _, v := range mesh.Vertices {
				world = append(world, transformPoint(m, v))
			}
			s.emitMesh(mesh, world, st.color, id, camPos, &treeOrder)
			s.emitOutline(mesh, world, w, id, &treeOrder)
		}

		s.emitLabels(st, pose, visible, viewDir)
	}
}

// emitMesh projects and shades every front-facing triangle of a mesh whose
// vertices are already in world space. s.faceDepth records each triangle's
// depth, or -1 when it was culled.
func (s *Scene) emitMesh(mesh *Mesh, world []mgl64.Vec3, tint Color, id int, camPos mgl64.Vec3, treeOrder *int) {
	cam := s.camera
	s.faceDepth = s.faceDepth[:0]
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		s.faceDepth = append(s.faceDepth, -1)
		a := world[mesh.Indices[i]]
		b := world[mesh.Indices[i+1]]
		c := world[mesh.Indices[i+2]]

		n := b.Sub(a).Cross(c.Sub(a))
		nl := n.Len()
		if nl < 1e-12 {
			continue
		}
		n = n.Mul(1 / nl)
		if n.Dot(camPos.Sub(a)) <= 0 {
			continue // back face
		}

		var cmd RenderCommand
		var depth float64
		ok := true
		for k, p := range [3]mgl64.Vec3{a, b, c} {
			sx, sy, d, vis := cam.WorldToScreen(p)
			if !vis {
				ok = false
				break
			}
			cmd.X[k], cmd.Y[k] = float32(sx), float32(sy)
			depth += d
		}
		if !ok {
			continue
		}

		shade := ambientLight + directLight*math.Max(0, n.Dot(s.Light))
		lit := tint.Scale(shade)
		cmd.Color = color32{float32(lit.R), float32(lit.G), float32(lit.B), float32(clamp01(lit.A))}
		cmd.Depth = depth / 3
		cmd.RegionID = id
		cmd.treeOrder = *treeOrder
		*treeOrder++
		s.commands = append(s.commands, cmd)
		s.faceDepth[len(s.faceDepth)-1] = cmd.Depth
	}
}

// emitOutline strokes the crease edges of the mesh just emitted by emitMesh.
// An edge is drawn when at least one of its faces is visible, as a
// screen-space quad sorted just in front of that face.
func (s *Scene) emitOutline(mesh *Mesh, world []mgl64.Vec3, weight float64, id int, treeOrder *int) {
	half := s.OutlineWidth / 2
	alpha := clamp01(weight * s.OutlineColor.A)
	if half <= 0 || alpha <= 0 {
		return
	}
	col := color32{float32(s.OutlineColor.R), float32(s.OutlineColor.G), float32(s.OutlineColor.B), float32(alpha)}

	for _, e := range mesh.outline() {
		depth := -1.0
		for _, f := range e.Faces {
			if f >= 0 && f < len(s.faceDepth) && s.faceDepth[f] >= 0 {
				if depth < 0 || s.faceDepth[f] < depth {
					depth = s.faceDepth[f]
				}
			}
		}
		if depth < 0 {
			continue
		}

		x0, y0, d0, ok0 := s.camera.WorldToScreen(world[e.A])
		x1, y1, d1, ok1 := s.camera.WorldToScreen(world[e.B])
		if !ok0 || !ok1 {
			continue
		}
		dx, dy := x1-x0, y1-y0
		l := math.Hypot(dx, dy)
		if l < 1e-9 {
			continue
		}
		nx, ny := -dy/l*half, dx/l*half
		depth = math.Min(depth, (d0+d1)/2) - outlineDepthBias

		quad := [4][2]float64{{x0 + nx, y0 + ny}, {x1 + nx, y1 + ny}, {x1 - nx, y1 - ny}, {x0 - nx, y0 - ny}}
		for _, t := range [2][3]int{{0, 1, 2}, {0, 2, 3}} {
			cmd := RenderCommand{Color: col, Depth: depth, RegionID: id, treeOrder: *treeOrder}
			for k, q := range t {
				cmd.X[k], cmd.Y[k] = float32(quad[q][0]), float32(quad[q][1])
			}
			*treeOrder++
			s.commands = append(s.commands, cmd)
		}
	}
}

// emitLabels places the current and outgoing labels on the region's front
// face as seen from the camera.
func (s *Scene) emitLabels(st *regionState, pose Pose, visible float64, viewDir mgl64.Vec3) {
	if visible < minVisibleWeight {
		return
	}
	depthOffset := math.Abs(pose.Scale.Z()) / 2
	anchor := pose.Position.Sub(viewDir.Mul(depthOffset))
	sx, sy, d, ok := s.camera.WorldToScreen(anchor)
	if !ok {
		return
	}
	for _, o := range st.label.Outgoing() {
		if o.Text != "" && o.Alpha > 0 {
			s.labels = append(s.labels, labelCommand{Text: o.Text, X: sx, Y: sy, Alpha: o.Alpha * visible, Depth: d})
		}
	}
	if cur, _ := st.label.Alphas(); st.label.Current != "" && cur > 0 {
		s.labels = append(s.labels, labelCommand{Text: st.label.Current, X: sx, Y: sy, Alpha: cur * visible, Depth: d})
	}
}

// commandLessOrEqual orders commands back to front, breaking ties by
// traversal order so the sort is stable.
func commandLessOrEqual(a, b RenderCommand) bool {
	if a.Depth != b.Depth {
		return a.Depth > b.Depth
	}
	return a.treeOrder <= b.treeOrder
}

// mergeSort sorts s.commands back to front (painter's algorithm) using a
// bottom-up merge sort over the preallocated sortBuf.
func (s *Scene) mergeSort() {
	n := len(s.commands)
	if n <= 1 {
		return
	}
	if cap(s.sortBuf) < n {
		s.sortBuf = make([]RenderCommand, n)
	}
	s.sortBuf = s.sortBuf[:n]

	a := s.commands
	b := s.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for lo := 0; lo < n; lo += 2 * width {
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(s.commands, s.sortBuf)
	}
}

// mergeRun merges src[lo:mid] and src[mid:hi] into dst[lo:hi].
func mergeRun(src, dst []RenderCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(src[i], src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}
