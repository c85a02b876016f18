package morph

import (
	"io"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

type recordingSink struct {
	events []ViewEvent
}

func (r *recordingSink) EmitViewEvent(e ViewEvent) {
	r.events = append(r.events, e)
}

func newTestScene(t *testing.T, cat *Catalogue) *Scene {
	t.Helper()
	s, err := NewScene(cat, Rect{Width: 800, Height: 600})
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	s.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return s
}

// twoViewCatalogue has a view with regions 1-3 and one with regions 2-4.
func twoViewCatalogue() *Catalogue {
	return &Catalogue{
		Views: []View{
			{Key: "a", Shape: ShapeCube, Radius: 10, Regions: []RegionTarget{
				rt(1, -2, 0, 0, ColorFire, 1, SideTopRight),
				rt(2, 0, 0, 0, ColorAir, 1, SideTopRight),
				rt(3, 2, 0, 0, ColorWater, 1, SideTopRight),
			}},
			{Key: "b", Shape: ShapeSphere, Radius: 8, Polar: 0.5, Regions: []RegionTarget{
				rt(4, 0, 3, 0, ColorEarth, 1, SideTopRight),
				rt(3, 0, 2, 0, ColorEarth, 2, SideTopRight),
				rt(2, 0, 1, 0, ColorFire, 1, SideTopRight),
			}},
		},
		Contents: []Content{
			{Key: "digits", Labels: []string{"1", "2", "3", "4"}},
			{Key: "letters", Labels: []string{"a", "b", "c"}},
		},
	}
}

func settle(s *Scene, seconds float64) {
	const dt = 1.0 / 60
	for i := 0; i < int(seconds/dt); i++ {
		s.Advance(dt)
	}
}

func TestNewSceneDefaults(t *testing.T) {
	s := newTestScene(t, nil)
	if s.View().Key != DefaultViewKey {
		t.Errorf("view = %q, want %q", s.View().Key, DefaultViewKey)
	}
	if s.Content().Key != DefaultContentKey {
		t.Errorf("content = %q, want %q", s.Content().Key, DefaultContentKey)
	}
	ids := s.RegionIDs()
	if len(ids) != MaxRegions {
		t.Fatalf("regions = %v, want %d", ids, MaxRegions)
	}
	for i, id := range ids {
		if id != i+1 {
			t.Errorf("RegionIDs()[%d] = %d, want ascending 1..8", i, id)
		}
	}
	if s.Camera().Settled() {
		t.Error("camera should be flying to the first view")
	}
}

func TestNewSceneRejectsInvalidCatalogue(t *testing.T) {
	if _, err := NewScene(&Catalogue{}, Rect{}); err == nil {
		t.Error("empty catalogue accepted")
	}
}

func TestSceneRegionsGrowIn(t *testing.T) {
	s := newTestScene(t, twoViewCatalogue())
	r, _ := s.Region(1)
	if r.Pose().Scale != (mgl64.Vec3{}) {
		t.Errorf("new region scale = %v, want zero", r.Pose().Scale)
	}
	settle(s, 10)
	p := r.Pose()
	if !vecApproxEqual(p.Position, mgl64.Vec3{-2, 0, 0}, 1e-4) {
		t.Errorf("position = %v, want (-2,0,0)", p.Position)
	}
	if !approxEqual(p.Weight(ShapeCube), 1, 1e-4) {
		t.Errorf("cube weight = %v, want 1", p.Weight(ShapeCube))
	}
}

func TestSceneIdentityMatching(t *testing.T) {
	s := newTestScene(t, twoViewCatalogue())
	settle(s, 10)
	r2, _ := s.Region(2)
	r3, _ := s.Region(3)
	before2 := r2.Pose().Position

	if err := s.SelectView("b"); err != nil {
		t.Fatal(err)
	}
	// Same controllers, retargeted by ID, not by slice position.
	if got, _ := s.Region(2); got != r2 {
		t.Error("region 2 controller replaced")
	}
	pos, _, scale, shape := r3.Target()
	if pos != (mgl64.Vec3{0, 2, 0}) || scale != (mgl64.Vec3{2, 2, 2}) || shape != ShapeSphere {
		t.Errorf("region 3 target = %v %v %v", pos, scale, shape)
	}
	if r2.Pose().Position != before2 {
		t.Error("SelectView moved a region without Advance")
	}
	if got := s.RegionIDs(); len(got) != 4 || got[3] != 4 {
		t.Errorf("RegionIDs = %v, want [1 2 3 4]", got)
	}
}

func TestSceneAbsentRegionFadesOut(t *testing.T) {
	s := newTestScene(t, twoViewCatalogue())
	settle(s, 10)
	r1, _ := s.Region(1)
	pos := r1.Pose().Position

	if err := s.SelectView("b"); err != nil {
		t.Fatal(err)
	}
	settle(s, 10)
	p := r1.Pose()
	for _, shape := range Shapes {
		if !approxEqual(p.Weight(shape), 0, 1e-4) {
			t.Errorf("Weight(%v) = %v, want 0", shape, p.Weight(shape))
		}
	}
	if p.Position != pos {
		t.Errorf("absent region moved: %v -> %v", pos, p.Position)
	}
	for _, rf := range s.Frame().Regions {
		if rf.ID == 1 && rf.Active {
			t.Error("region 1 still active")
		}
	}
}

func TestSceneViewCycleWraps(t *testing.T) {
	s := newTestScene(t, twoViewCatalogue())
	if s.ViewIndex() != 0 {
		t.Fatalf("ViewIndex = %d, want 0", s.ViewIndex())
	}
	s.PrevView()
	if s.ViewIndex() != 1 {
		t.Errorf("PrevView from 0 = %d, want 1", s.ViewIndex())
	}
	s.NextView()
	if s.ViewIndex() != 0 {
		t.Errorf("NextView from last = %d, want 0", s.ViewIndex())
	}
}

func TestSceneSelectErrors(t *testing.T) {
	s := newTestScene(t, twoViewCatalogue())
	if err := s.SelectView("nope"); err == nil {
		t.Error("SelectView unknown key: want error")
	}
	if err := s.SelectContent("nope"); err == nil {
		t.Error("SelectContent unknown key: want error")
	}
	if err := s.SelectViewIndex(5); err == nil {
		t.Error("SelectViewIndex out of range: want error")
	}
	if err := s.SelectContentIndex(-1); err == nil {
		t.Error("SelectContentIndex out of range: want error")
	}
}

func TestSceneViewSwitchReclaimsCamera(t *testing.T) {
	s := newTestScene(t, twoViewCatalogue())
	s.Camera().BeginUserInteraction()
	s.NextView()
	if s.Camera().UserControlled() {
		t.Error("camera still user controlled after view change")
	}
	want := SphericalToCartesian(8, 0.5, 0)
	if !vecApproxEqual(s.Camera().Target(), want, 1e-9) {
		t.Errorf("camera target = %v, want %v", s.Camera().Target(), want)
	}
}

func TestSceneContentCrossfade(t *testing.T) {
	s := newTestScene(t, twoViewCatalogue())
	if err := s.SelectContent("letters"); err != nil {
		t.Fatal(err)
	}
	f := s.Frame()
	r1 := f.Regions[0]
	if r1.Label != "a" || r1.PrevLabel != "1" {
		t.Errorf("labels = %q/%q, want a/1", r1.Label, r1.PrevLabel)
	}
	if r1.LabelAlpha != 0 || r1.PrevAlpha != 1 {
		t.Errorf("alphas = %v/%v, want 0/1", r1.LabelAlpha, r1.PrevAlpha)
	}

	settle(s, 1)
	r1 = s.Frame().Regions[0]
	if r1.LabelAlpha != 1 || r1.PrevLabel != "" {
		t.Errorf("after fade: alpha %v prev %q", r1.LabelAlpha, r1.PrevLabel)
	}
}

func TestSceneMissingLabelIsEmpty(t *testing.T) {
	s := newTestScene(t, twoViewCatalogue())
	if err := s.SelectView("b"); err != nil {
		t.Fatal(err)
	}
	if err := s.SelectContent("letters"); err != nil {
		t.Fatal(err)
	}
	settle(s, 1)
	for _, rf := range s.Frame().Regions {
		if rf.ID == 4 && rf.Label != "" {
			t.Errorf("region 4 label = %q, want empty", rf.Label)
		}
	}
}

func TestSceneEvents(t *testing.T) {
	s := newTestScene(t, twoViewCatalogue())
	sink := &recordingSink{}
	s.SetEventSink(sink)

	s.NextView()
	s.NextContent()
	if len(sink.events) != 2 {
		t.Fatalf("events = %d, want 2", len(sink.events))
	}
	if e := sink.events[0]; e.Type != EventViewChanged || e.ViewKey != "b" || e.ViewIndex != 1 {
		t.Errorf("event 0 = %+v", e)
	}
	if e := sink.events[1]; e.Type != EventContentChanged || e.ContentKey != "letters" || e.ViewKey != "b" {
		t.Errorf("event 1 = %+v", e)
	}
}

func TestSceneColorDamps(t *testing.T) {
	s := newTestScene(t, twoViewCatalogue())
	s.NextView()
	settle(s, 10)
	for _, rf := range s.Frame().Regions {
		if rf.ID == 2 && (!approxEqual(rf.Color.R, 1, 1e-4) || !approxEqual(rf.Color.G, 1, 1e-4)) {
			t.Errorf("region 2 color = %+v, want fire", rf.Color)
		}
	}
}

func TestTickSecondsFallsBack(t *testing.T) {
	if got := tickSeconds(120); !approxEqual(got, 1.0/120, 1e-12) {
		t.Errorf("tickSeconds(120) = %v", got)
	}
	// ebiten.SyncWithFPS reports a negative tick rate.
	for _, tps := range []int{0, -1} {
		if got := tickSeconds(tps); !approxEqual(got, 1.0/60, 1e-12) {
			t.Errorf("tickSeconds(%d) = %v, want 1/60", tps, got)
		}
	}
}

func TestRapidContentSwitchKeepsLabels(t *testing.T) {
	s := newTestScene(t, twoViewCatalogue())
	if err := s.SelectContent("letters"); err != nil {
		t.Fatal(err)
	}
	s.Advance(0.1)
	before := s.Frame().Regions[0]
	if err := s.SelectContent("digits"); err != nil {
		t.Fatal(err)
	}
	r1 := s.Frame().Regions[0]
	if r1.Label != "1" || !approxEqual(r1.LabelAlpha, before.PrevAlpha, 1e-6) {
		t.Errorf("label 1 resumed at %v, want %v", r1.LabelAlpha, before.PrevAlpha)
	}
	if len(r1.Outgoing) != 1 || r1.Outgoing[0].Text != "a" || !approxEqual(r1.Outgoing[0].Alpha, before.LabelAlpha, 1e-6) {
		t.Errorf("outgoing = %+v, want a at %v", r1.Outgoing, before.LabelAlpha)
	}
}
