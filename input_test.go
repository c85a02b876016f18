package morph

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestPointerDeadZone(t *testing.T) {
	s := newTestScene(t, twoViewCatalogue())
	s.processPointer(400, 300, true)
	s.processPointer(402, 301, true)
	if s.Controls().Dragging() {
		t.Error("drag started inside the dead zone")
	}
	if s.Camera().UserControlled() {
		t.Error("camera taken inside the dead zone")
	}
	s.processPointer(420, 300, true)
	if !s.Controls().Dragging() || !s.Camera().UserControlled() {
		t.Error("drag past the dead zone did not take the camera")
	}
}

func TestPointerDragOrbitsAndReleases(t *testing.T) {
	s := newTestScene(t, twoViewCatalogue())
	sink := &recordingSink{}
	s.SetEventSink(sink)
	settle(s, 10)
	before := s.Camera().Position()

	s.processPointer(400, 300, true)
	s.processPointer(450, 300, true)
	s.processPointer(500, 320, true)
	if s.Camera().Position() == before {
		t.Error("drag did not orbit the camera")
	}
	r0 := before.Len()
	if r := s.Camera().Position().Len(); !approxEqual(r, r0, 1e-9) {
		t.Errorf("orbit changed distance %v -> %v", r0, r)
	}

	s.processPointer(500, 320, false)
	if s.Controls().Dragging() || s.Camera().UserControlled() {
		t.Error("release did not return the camera")
	}
	if len(sink.events) != 2 || sink.events[0].Type != EventInteractionStart || sink.events[1].Type != EventInteractionEnd {
		t.Errorf("events = %+v, want start then end", sink.events)
	}
}

func TestPointerDisabledControls(t *testing.T) {
	s := newTestScene(t, twoViewCatalogue())
	s.Controls().Enabled = false
	s.processPointer(400, 300, true)
	s.processPointer(500, 300, true)
	if s.Camera().UserControlled() {
		t.Error("disabled controls took the camera")
	}
	s.processPointer(500, 300, false)
}

func TestClickSelectsFromHUD(t *testing.T) {
	s := newTestScene(t, twoViewCatalogue())
	r, ok := s.HUD().ItemRect(HUDViews, 1)
	if !ok {
		t.Fatal("no rect for view 1")
	}
	cx, cy := r.Center()
	s.processPointer(cx, cy, true)
	s.processPointer(cx, cy, false)
	if s.View().Key != "b" {
		t.Errorf("view = %q, want b", s.View().Key)
	}

	r, _ = s.HUD().ItemRect(HUDContents, 1)
	cx, cy = r.Center()
	s.processPointer(cx, cy, true)
	s.processPointer(cx, cy, false)
	if s.Content().Key != "letters" {
		t.Errorf("content = %q, want letters", s.Content().Key)
	}
}

func TestDragFromHUDDoesNotOrbit(t *testing.T) {
	s := newTestScene(t, twoViewCatalogue())
	r, _ := s.HUD().ItemRect(HUDViews, 0)
	cx, cy := r.Center()
	s.processPointer(cx, cy, true)
	s.processPointer(cx, cy+200, true)
	if s.Camera().UserControlled() {
		t.Error("drag starting on the HUD took the camera")
	}
}

func TestWheelZoom(t *testing.T) {
	s := newTestScene(t, twoViewCatalogue())
	settle(s, 10)
	r0 := s.Camera().Position().Len()
	s.processWheel(1)
	r1 := s.Camera().Position().Len()
	if !approxEqual(r1, r0*defaultZoomStep, 1e-9) {
		t.Errorf("distance after zoom = %v, want %v", r1, r0*defaultZoomStep)
	}
	if s.Camera().UserControlled() {
		t.Error("wheel left the camera user controlled")
	}
}

func TestHandleKeyCycles(t *testing.T) {
	s := newTestScene(t, twoViewCatalogue())
	s.handleKey(ebiten.KeyArrowRight)
	if s.ContentIndex() != 1 {
		t.Errorf("→ content = %d, want 1", s.ContentIndex())
	}
	s.handleKey(ebiten.KeyArrowRight)
	if s.ContentIndex() != 0 {
		t.Errorf("→ wrap content = %d, want 0", s.ContentIndex())
	}
	s.handleKey(ebiten.KeyArrowLeft)
	if s.ContentIndex() != 1 {
		t.Errorf("← content = %d, want 1", s.ContentIndex())
	}
	s.handleKey(ebiten.KeyArrowDown)
	if s.ViewIndex() != 1 {
		t.Errorf("↓ view = %d, want 1", s.ViewIndex())
	}
	s.handleKey(ebiten.KeyArrowUp)
	if s.ViewIndex() != 0 {
		t.Errorf("↑ view = %d, want 0", s.ViewIndex())
	}
	s.handleKey(ebiten.KeyA)
	if s.ViewIndex() != 0 || s.ContentIndex() != 1 {
		t.Error("unbound key changed the selection")
	}
}

func TestReleaseCoastsThenReturnsCamera(t *testing.T) {
	s := newTestScene(t, twoViewCatalogue())
	sink := &recordingSink{}
	s.SetEventSink(sink)
	settle(s, 10)

	const dt = 1.0 / 60
	s.processPointer(400, 300, true)
	s.processPointer(420, 300, true)
	s.Advance(dt)
	s.processPointer(440, 300, true)
	s.Advance(dt)
	s.processPointer(440, 300, false)

	if !s.Controls().Coasting() || !s.Camera().UserControlled() {
		t.Fatal("fast release did not coast")
	}
	vAz, _ := s.Controls().Velocity()
	if want := 20 * defaultRotateSpeed / dt; !approxEqual(vAz, want, 1e-9) {
		t.Errorf("release spin = %v, want %v", vAz, want)
	}

	before := s.Camera().Position()
	s.Advance(dt)
	if s.Camera().Position() == before {
		t.Error("camera did not keep orbiting after release")
	}
	v1, _ := s.Controls().Velocity()
	if !(v1 < vAz) {
		t.Errorf("spin %v did not decay from %v", v1, vAz)
	}

	for i := 0; i < 60*10 && s.Controls().Coasting(); i++ {
		s.Advance(dt)
	}
	if s.Controls().Coasting() || s.Camera().UserControlled() {
		t.Error("coast never ended")
	}
	if n := len(sink.events); n != 2 || sink.events[1].Type != EventInteractionEnd {
		t.Errorf("events = %+v, want start then end", sink.events)
	}
}

func TestSlowReleaseDoesNotCoast(t *testing.T) {
	s := newTestScene(t, twoViewCatalogue())
	s.processPointer(400, 300, true)
	s.processPointer(440, 300, true)
	s.Advance(1.0 / 60)
	// Held still for a tick before letting go.
	s.Advance(1.0 / 60)
	s.processPointer(440, 300, false)
	if s.Controls().Coasting() || s.Camera().UserControlled() {
		t.Error("release after holding still coasted")
	}
}

func TestPressStopsCoast(t *testing.T) {
	s := newTestScene(t, twoViewCatalogue())
	sink := &recordingSink{}
	s.SetEventSink(sink)
	s.processPointer(400, 300, true)
	s.processPointer(440, 300, true)
	s.Advance(1.0 / 60)
	s.processPointer(440, 300, false)
	if !s.Controls().Coasting() {
		t.Fatal("release did not coast")
	}
	s.processPointer(440, 300, true)
	if s.Controls().Coasting() || s.Camera().UserControlled() {
		t.Error("press did not stop the coast")
	}
	if n := len(sink.events); n != 2 || sink.events[1].Type != EventInteractionEnd {
		t.Errorf("events = %+v, want start then end", sink.events)
	}
}

func TestViewChangeStopsCoast(t *testing.T) {
	s := newTestScene(t, twoViewCatalogue())
	s.processPointer(400, 300, true)
	s.processPointer(440, 300, true)
	s.Advance(1.0 / 60)
	s.processPointer(440, 300, false)
	s.NextView()
	s.Advance(1.0 / 60)
	if s.Controls().Coasting() {
		t.Error("still coasting after a view change")
	}
	if vAz, vPolar := s.Controls().Velocity(); vAz != 0 || vPolar != 0 {
		t.Errorf("spin = %v/%v after a view change, want 0", vAz, vPolar)
	}
}
