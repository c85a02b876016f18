package morph

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// EventSink receives scene events. Set one with Scene.SetEventSink to bridge
// view changes and camera hand-offs into another system (see package ecs).
type EventSink interface {
	EmitViewEvent(event ViewEvent)
}

// ViewEventType identifies a kind of scene event.
type ViewEventType uint8

const (
	EventViewChanged      ViewEventType = iota // a new View became active
	EventContentChanged                        // a new Content became active
	EventInteractionStart                      // the user took over the camera
	EventInteractionEnd                        // the user released the camera
)

// ViewEvent carries the selection state at the time of the event.
type ViewEvent struct {
	Type         ViewEventType
	ViewKey      string
	ViewIndex    int
	ContentKey   string
	ContentIndex int
}

// regionState is everything the scene tracks for one region identity.
type regionState struct {
	region *Region
	label  *LabelFade

	color       Color
	targetColor Color
	side        WedgeSide
	active      bool
}

// RegionFrame is the per-region output of a frame.
type RegionFrame struct {
	Pose
	Color      Color
	Side       WedgeSide
	Active     bool
	Label      string
	LabelAlpha float64
	PrevLabel  string
	PrevAlpha  float64

	// Outgoing lists every label still fading out, PrevLabel included.
	Outgoing []FadingLabel
}

// Frame is what a renderer needs to draw one tick.
type Frame struct {
	ViewKey    string
	ContentKey string
	Regions    []RegionFrame
	Camera     CameraPose
}

// Scene owns the region controllers, the orbit camera, the current
// selection, and the render buffers. It is not safe for concurrent use; all
// calls belong on the game loop.
type Scene struct {
	catalogue    *Catalogue
	viewIndex    int
	contentIndex int

	regions map[int]*regionState
	order   []int // region IDs, ascending

	camera   *OrbitCamera
	controls *OrbitControls
	hud      *HUD
	meshes   *MeshSet

	// Rates is applied to regions created after it is set.
	Rates MorphRates
	// LabelFadeDuration is the label crossfade time in seconds.
	LabelFadeDuration float32
	// ClearColor fills the screen before drawing. Zero alpha skips the fill.
	ClearColor Color
	// OutlineWidth is the pixel width of shape edge outlines. Zero turns
	// outlines off.
	OutlineWidth float64
	// OutlineColor is the outline color at full shape weight.
	OutlineColor Color
	// Light is the world-space direction toward the key light.
	Light mgl64.Vec3
	// ScreenshotDir is where Screenshot writes files.
	ScreenshotDir string
	// ScreenshotFormat is "png" (default) or "webp".
	ScreenshotFormat string

	logger *slog.Logger
	sink   EventSink
	debug  bool

	commands []RenderCommand
	sortBuf  []RenderCommand
	labels   []labelCommand
	// faceDepth is scratch space shared by emitMesh and emitOutline.
	faceDepth []float64

	screenshotQueue []string
	injectQueue     []syntheticPointerEvent
	injectKeys      []ebiten.Key
	testRunner      *TestRunner
	updateFunc      func() error
}

const defaultCommandCap = 2048

// DefaultOutlineWidth is the edge outline width in pixels.
const DefaultOutlineWidth = 1.5

// NewScene creates a scene over the given catalogue, or DefaultCatalogue if
// cat is nil. The initial selection is DefaultViewKey / DefaultContentKey
// when present and the first entries otherwise.
func NewScene(cat *Catalogue, viewport Rect) (*Scene, error) {
	if cat == nil {
		cat = DefaultCatalogue()
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	s := &Scene{
		catalogue:         cat,
		regions:           make(map[int]*regionState),
		camera:            NewOrbitCamera(viewport, DefaultCameraConfig()),
		controls:          NewOrbitControls(),
		meshes:            DefaultMeshSet(),
		Rates:             DefaultMorphRates(),
		LabelFadeDuration: DefaultLabelFade,
		ClearColor:        Color{R: 0.059, G: 0.09, B: 0.165, A: 1},
		OutlineWidth:      DefaultOutlineWidth,
		OutlineColor:      Color{A: 1},
		Light:             mgl64.Vec3{5, 5, 5}.Normalize(),
		ScreenshotDir:     "screenshots",
		ScreenshotFormat:  "png",
		logger:            slog.Default(),
		commands:          make([]RenderCommand, 0, defaultCommandCap),
		sortBuf:           make([]RenderCommand, 0, defaultCommandCap),
	}
	s.hud = newHUD(s)

	vi, err := cat.ViewIndex(DefaultViewKey)
	if err != nil {
		vi = 0
	}
	ci, err := cat.ContentIndex(DefaultContentKey)
	if err != nil {
		ci = 0
	}
	s.contentIndex = ci
	s.applyView(vi)
	return s, nil
}

// Camera returns the scene's orbit camera.
func (s *Scene) Camera() *OrbitCamera {
	return s.camera
}

// Controls returns the manual orbit controls.
func (s *Scene) Controls() *OrbitControls {
	return s.controls
}

// HUD returns the view/content switcher overlay.
func (s *Scene) HUD() *HUD {
	return s.hud
}

// Catalogue returns the catalogue the scene cycles through.
func (s *Scene) Catalogue() *Catalogue {
	return s.catalogue
}

// View returns the active view.
func (s *Scene) View() *View {
	return &s.catalogue.Views[s.viewIndex]
}

// Content returns the active content.
func (s *Scene) Content() *Content {
	return &s.catalogue.Contents[s.contentIndex]
}

// ViewIndex returns the index of the active view.
func (s *Scene) ViewIndex() int {
	return s.viewIndex
}

// ContentIndex returns the index of the active content.
func (s *Scene) ContentIndex() int {
	return s.contentIndex
}

// Region returns the controller for a region identity.
func (s *Scene) Region(id int) (*Region, bool) {
	st, ok := s.regions[id]
	if !ok {
		return nil, false
	}
	return st.region, true
}

// RegionIDs returns every identity the scene has seen, ascending.
func (s *Scene) RegionIDs() []int {
	return slices.Clone(s.order)
}

// SetLogger replaces the scene's logger. nil restores slog.Default().
func (s *Scene) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	s.logger = l
}

// SetEventSink sets the optional event bridge.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetDebugMode enables per-frame timing logs at Debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// SetUpdateFunc registers a callback invoked at the end of every Update.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SelectView makes the view with the given key active.
func (s *Scene) SelectView(key string) error {
	i, err := s.catalogue.ViewIndex(key)
	if err != nil {
		return err
	}
	s.applyView(i)
	return nil
}

// SelectViewIndex makes the i-th view active.
func (s *Scene) SelectViewIndex(i int) error {
	if i < 0 || i >= len(s.catalogue.Views) {
		return fmt.Errorf("morph: view index %d: %w", i, ErrUnknownView)
	}
	s.applyView(i)
	return nil
}

// NextView advances to the next view, wrapping at the end.
func (s *Scene) NextView() {
	s.applyView(Step(s.viewIndex, len(s.catalogue.Views), false))
}

// PrevView moves to the previous view, wrapping at the start.
func (s *Scene) PrevView() {
	s.applyView(Step(s.viewIndex, len(s.catalogue.Views), true))
}

// SelectContent makes the content with the given key active.
func (s *Scene) SelectContent(key string) error {
	i, err := s.catalogue.ContentIndex(key)
	if err != nil {
		return err
	}
	s.applyContent(i)
	return nil
}

// SelectContentIndex makes the i-th content active.
func (s *Scene) SelectContentIndex(i int) error {
	if i < 0 || i >= len(s.catalogue.Contents) {
		return fmt.Errorf("morph: content index %d: %w", i, ErrUnknownContent)
	}
	s.applyContent(i)
	return nil
}

// NextContent advances to the next content, wrapping at the end.
func (s *Scene) NextContent() {
	s.applyContent(Step(s.contentIndex, len(s.catalogue.Contents), false))
}

// PrevContent moves to the previous content, wrapping at the start.
func (s *Scene) PrevContent() {
	s.applyContent(Step(s.contentIndex, len(s.catalogue.Contents), true))
}

// applyView retargets every region by identity and re-aims the camera.
// Regions that the new view does not mention keep their transform and fade
// all shapes out.
func (s *Scene) applyView(i int) {
	s.viewIndex = i
	v := &s.catalogue.Views[i]
	content := s.Content()

	seen := make(map[int]bool, len(v.Regions))
	for _, t := range v.Regions {
		seen[t.ID] = true
		st := s.regions[t.ID]
		if st == nil {
			st = s.addRegion(t, content.Label(t.ID))
		}
		st.region.SetTarget(t.Position, t.Rotation, v.TargetScale(t), v.Shape)
		st.targetColor = t.Color
		st.side = t.Side
		st.active = true
	}
	for id, st := range s.regions {
		if !seen[id] {
			st.region.SetShape(ShapeNone)
			st.active = false
		}
	}

	s.camera.SetTargetView(v.Radius, v.Polar, v.Azimuth)
	s.hud.selectView(i)

	s.logger.Info("view selected", slog.Group("morph",
		slog.String("view", v.Key),
		slog.Int("index", i),
		slog.String("shape", v.Shape.String()),
		slog.Int("regions", len(v.Regions)),
	))
	s.emit(EventViewChanged)
}

func (s *Scene) addRegion(t RegionTarget, label string) *regionState {
	r := NewRegion(t.ID)
	r.Rates = s.Rates
	st := &regionState{
		region: r,
		label:  newLabelFade(label),
		color:  t.Color,
		side:   t.Side,
	}
	s.regions[t.ID] = st
	i, _ := slices.BinarySearch(s.order, t.ID)
	s.order = slices.Insert(s.order, i, t.ID)
	return st
}

func (s *Scene) applyContent(i int) {
	s.contentIndex = i
	c := s.Content()
	for _, id := range s.order {
		s.regions[id].label.Set(c.Label(id), s.LabelFadeDuration, ease.OutQuad)
	}
	s.hud.selectContent(i)

	s.logger.Info("content selected", slog.Group("morph",
		slog.String("content", c.Key),
		slog.Int("index", i),
	))
	s.emit(EventContentChanged)
}

func (s *Scene) emit(t ViewEventType) {
	if s.sink == nil {
		return
	}
	s.sink.EmitViewEvent(ViewEvent{
		Type:         t,
		ViewKey:      s.View().Key,
		ViewIndex:    s.viewIndex,
		ContentKey:   s.Content().Key,
		ContentIndex: s.contentIndex,
	})
}

// Update processes input and advances the scene by one ebiten tick.
func (s *Scene) Update() error {
	dt := tickSeconds(ebiten.TPS())

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
	s.Advance(dt)

	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

// defaultTPS is assumed when ebiten reports no fixed tick rate, as it does
// under SyncWithFPS.
const defaultTPS = 60

// tickSeconds returns the length of one Update tick.
func tickSeconds(tps int) float64 {
	if tps <= 0 {
		tps = defaultTPS
	}
	return 1 / float64(tps)
}

// Advance steps every animation by dt seconds: regions and their labels in
// ascending ID order, then orbit inertia and the camera, then the HUD.
func (s *Scene) Advance(dt float64) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	k := DampFactor(s.Rates.Weight, dt)
	for _, id := range s.order {
		st := s.regions[id]
		st.region.Advance(dt)
		st.color = dampColor(st.color, st.targetColor, k)
		st.label.Update(float32(dt))
	}
	s.advanceControls(dt)
	s.camera.Advance(dt)
	s.hud.update(dt)

	if s.debug {
		s.logger.Debug("advance", slog.Group("morph",
			slog.Duration("elapsed", time.Since(t0)),
			slog.Int("regions", len(s.order)),
			slog.Bool("camera_settled", s.camera.Settled()),
			slog.Bool("user_controlled", s.camera.UserControlled()),
		))
	}
}

func dampColor(c, t Color, k float64) Color {
	return Color{
		R: c.R + (t.R-c.R)*k,
		G: c.G + (t.G-c.G)*k,
		B: c.B + (t.B-c.B)*k,
		A: c.A + (t.A-c.A)*k,
	}
}

// Frame returns a snapshot of every region and the camera.
func (s *Scene) Frame() Frame {
	f := Frame{
		ViewKey:    s.View().Key,
		ContentKey: s.Content().Key,
		Regions:    make([]RegionFrame, 0, len(s.order)),
		Camera:     s.camera.Pose(),
	}
	for _, id := range s.order {
		st := s.regions[id]
		cur, prev := st.label.Alphas()
		f.Regions = append(f.Regions, RegionFrame{
			Pose:       st.region.Pose(),
			Color:      st.color,
			Side:       st.side,
			Active:     st.active,
			Label:      st.label.Current,
			LabelAlpha: cur,
			PrevLabel:  st.label.Previous,
			PrevAlpha:  prev,
			Outgoing:   slices.Clone(st.label.Outgoing()),
		})
	}
	return f
}

// SetViewport resizes the camera viewport and re-lays out the HUD.
func (s *Scene) SetViewport(vp Rect) {
	if s.camera.Viewport == vp {
		return
	}
	s.camera.Viewport = vp
	s.camera.MarkDirty()
	s.hud.layout()
}
