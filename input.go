package morph

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	defaultDragDeadZone = 4.0   // pixels
	defaultRotateSpeed  = 0.008 // radians per pixel
	defaultZoomStep     = 0.9   // distance factor per wheel notch
	defaultInertiaRate  = 3.0   // per second
	minCoastSpeed       = 0.01  // radians per second
)

// pointerState tracks one pointer across frames.
type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	dragging bool
}

// OrbitControls lets the user orbit the camera by dragging and zoom with the
// wheel. Dragging hands the camera to the user for the duration of the drag;
// a press and release without a drag is a click and goes to the HUD.
type OrbitControls struct {
	// Enabled turns manual camera control on or off. Clicks still reach
	// the HUD when disabled.
	Enabled bool
	// RotateSpeed is radians of orbit per pixel dragged.
	RotateSpeed float64
	// ZoomStep is the distance factor applied per wheel notch toward the
	// focus.
	ZoomStep float64
	// DragDeadZone is how far, in pixels, the pointer must move before a
	// press becomes a drag.
	DragDeadZone float64
	// InertiaRate is how fast the orbit spin left by a release decays, per
	// second. Zero or less stops the camera dead on release.
	InertiaRate float64

	pointer pointerState
	touchID ebiten.TouchID
	touched bool

	// orbit applied since the last Advance, and the spin it implies
	moveAz, movePolar float64
	velAz, velPolar   float64
	coasting          bool
}

// NewOrbitControls returns enabled controls with default speeds.
func NewOrbitControls() *OrbitControls {
	return &OrbitControls{
		Enabled:      true,
		RotateSpeed:  defaultRotateSpeed,
		ZoomStep:     defaultZoomStep,
		DragDeadZone: defaultDragDeadZone,
		InertiaRate:  defaultInertiaRate,
	}
}

// Dragging reports whether a drag is in progress.
func (o *OrbitControls) Dragging() bool {
	return o.pointer.dragging
}

// Coasting reports whether the camera is still spinning after a release.
func (o *OrbitControls) Coasting() bool {
	return o.coasting
}

// Velocity returns the current orbit spin in radians per second.
func (o *OrbitControls) Velocity() (azimuth, polar float64) {
	return o.velAz, o.velPolar
}

// --- Input processing ---

// processInput is called from Scene.Update to handle keyboard, mouse, wheel
// and touch. Injected events, when queued, replace real pointer input for
// the frame.
func (s *Scene) processInput() {
	s.processKeys()

	if s.processInjectedInput() {
		return
	}
	if !s.processTouch() {
		mx, my := ebiten.CursorPosition()
		s.processPointer(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		s.processWheel(wy)
	}
}

// processKeys cycles content with ←/→ and views with ↓/↑.
func (s *Scene) processKeys() {
	for _, k := range [...]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyArrowLeft, ebiten.KeyArrowDown, ebiten.KeyArrowUp} {
		if inpututil.IsKeyJustPressed(k) {
			s.handleKey(k)
		}
	}
}

// handleKey applies a navigation key. Unknown keys are ignored.
func (s *Scene) handleKey(k ebiten.Key) {
	switch k {
	case ebiten.KeyArrowRight:
		s.NextContent()
	case ebiten.KeyArrowLeft:
		s.PrevContent()
	case ebiten.KeyArrowDown:
		s.NextView()
	case ebiten.KeyArrowUp:
		s.PrevView()
	}
}

// processTouch feeds the first active touch through the pointer state
// machine. It reports whether a touch was (or just stopped being) active.
func (s *Scene) processTouch() bool {
	o := s.controls
	ids := ebiten.AppendTouchIDs(nil)
	if o.touched {
		for _, id := range ids {
			if id == o.touchID {
				x, y := ebiten.TouchPosition(id)
				s.processPointer(float64(x), float64(y), true)
				return true
			}
		}
		o.touched = false
		s.processPointer(o.pointer.lastX, o.pointer.lastY, false)
		return true
	}
	if len(ids) > 0 {
		o.touchID = ids[0]
		o.touched = true
		x, y := ebiten.TouchPosition(ids[0])
		s.processPointer(float64(x), float64(y), true)
		return true
	}
	return false
}

// processPointer runs the press/drag/release state machine for the pointer
// at screen position (x, y).
func (s *Scene) processPointer(x, y float64, pressed bool) {
	o := s.controls
	ps := &o.pointer

	switch {
	case pressed && !ps.down:
		if o.coasting {
			s.endCoast()
		}
		ps.down = true
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.dragging = false

	case !pressed && ps.down:
		if ps.dragging {
			if o.InertiaRate > 0 && math.Hypot(o.velAz, o.velPolar) >= minCoastSpeed {
				o.coasting = true
			} else {
				s.camera.EndUserInteraction()
				s.emit(EventInteractionEnd)
			}
		} else {
			s.hud.click(x, y)
		}
		ps.down = false
		ps.dragging = false

	case pressed && ps.down:
		if x != ps.lastX || y != ps.lastY {
			if !ps.dragging && o.Enabled && !s.hud.contains(ps.startX, ps.startY) {
				dx := x - ps.startX
				dy := y - ps.startY
				if math.Sqrt(dx*dx+dy*dy) > o.DragDeadZone {
					ps.dragging = true
					s.camera.BeginUserInteraction()
					s.emit(EventInteractionStart)
				}
			}
			if ps.dragging {
				dAz, dPolar := (x-ps.lastX)*o.RotateSpeed, (y-ps.lastY)*o.RotateSpeed
				s.camera.Orbit(dAz, dPolar)
				o.moveAz += dAz
				o.movePolar += dPolar
			}
		}
		ps.lastX, ps.lastY = x, y

	default:
		ps.lastX, ps.lastY = x, y
	}
}

// processWheel zooms by ZoomStep per notch. Positive wy zooms in. The wheel
// is a one-tick manual manipulation, so authority is taken and returned in
// the same call.
func (s *Scene) processWheel(wy float64) {
	o := s.controls
	if !o.Enabled || wy == 0 {
		return
	}
	s.camera.BeginUserInteraction()
	s.camera.Zoom(math.Pow(o.ZoomStep, wy))
	if !o.pointer.dragging && !o.coasting {
		s.camera.EndUserInteraction()
	}
}

// advanceControls samples the drag speed while dragging and, after a
// release, keeps orbiting with a damped spin until it dies out. The camera
// stays user controlled while it coasts.
func (s *Scene) advanceControls(dt float64) {
	o := s.controls
	if dt <= 0 {
		return
	}
	switch {
	case o.pointer.dragging:
		o.velAz, o.velPolar = o.moveAz/dt, o.movePolar/dt
	case o.coasting:
		if !s.camera.UserControlled() {
			// A view change took the camera back mid-coast.
			o.coasting = false
			o.velAz, o.velPolar = 0, 0
			s.emit(EventInteractionEnd)
			break
		}
		k := DampFactor(o.InertiaRate, dt)
		o.velAz -= o.velAz * k
		o.velPolar -= o.velPolar * k
		s.camera.Orbit(o.velAz*dt, o.velPolar*dt)
		if math.Hypot(o.velAz, o.velPolar) < minCoastSpeed {
			s.endCoast()
		}
	}
	o.moveAz, o.movePolar = 0, 0
}

// endCoast stops the spin and hands the camera back.
func (s *Scene) endCoast() {
	o := s.controls
	o.coasting = false
	o.velAz, o.velPolar = 0, 0
	s.camera.EndUserInteraction()
	s.emit(EventInteractionEnd)
}
