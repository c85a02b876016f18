package morph

import (
	"image/color"

	"github.com/charmbracelet/harmonica"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// HUD layout constants, in pixels.
const (
	hudBarHeight = 32
	hudMargin    = 8
	hudGap       = 6
	hudTextSize  = 14
)

// Highlight spring tuning.
const (
	hudSpringFrequency = 8.0
	hudSpringDamping   = 0.8
)

// HUDBar identifies one of the two switcher bars.
type HUDBar uint8

const (
	HUDViews    HUDBar = iota // top bar, one item per View
	HUDContents               // bottom bar, one item per Content
)

// hudBar is one row of clickable items with a sliding highlight.
type hudBar struct {
	keys     []string
	rects    []Rect
	selected int

	// highlight position and width, driven by springs toward the selected
	// item's rect
	x, w       float64
	vx, vw     float64
	positioned bool
}

// HUD draws the view bar at the top of the viewport and the content bar at
// the bottom. Clicking an item selects it on the scene.
type HUD struct {
	// Visible turns drawing and hit testing on or off.
	Visible bool

	scene    *Scene
	bars     [2]hudBar
	spring   harmonica.Spring
	springDT float64
}

func newHUD(s *Scene) *HUD {
	h := &HUD{Visible: true, scene: s}
	for _, v := range s.catalogue.Views {
		h.bars[HUDViews].keys = append(h.bars[HUDViews].keys, v.Key)
	}
	for _, c := range s.catalogue.Contents {
		h.bars[HUDContents].keys = append(h.bars[HUDContents].keys, c.Key)
	}
	h.layout()
	return h
}

// Selected returns the highlighted index of a bar.
func (h *HUD) Selected(bar HUDBar) int {
	return h.bars[bar].selected
}

// ItemRect returns the screen rect of item i in a bar.
func (h *HUD) ItemRect(bar HUDBar, i int) (Rect, bool) {
	b := &h.bars[bar]
	if i < 0 || i >= len(b.rects) {
		return Rect{}, false
	}
	return b.rects[i], true
}

// Highlight returns the current x and width of a bar's highlight.
func (h *HUD) Highlight(bar HUDBar) (x, w float64) {
	b := &h.bars[bar]
	return b.x, b.w
}

func (h *HUD) selectView(i int)    { h.bars[HUDViews].selected = i }
func (h *HUD) selectContent(i int) { h.bars[HUDContents].selected = i }

// layout splits each bar evenly across the viewport width.
func (h *HUD) layout() {
	vp := h.scene.camera.Viewport
	ys := [2]float64{
		vp.Y + hudMargin,
		vp.Y + vp.Height - hudMargin - hudBarHeight,
	}
	for bi := range h.bars {
		b := &h.bars[bi]
		n := len(b.keys)
		b.rects = b.rects[:0]
		if n == 0 {
			continue
		}
		avail := vp.Width - 2*hudMargin - float64(n-1)*hudGap
		w := max(avail/float64(n), 0)
		for i := 0; i < n; i++ {
			b.rects = append(b.rects, Rect{
				X:      vp.X + hudMargin + float64(i)*(w+hudGap),
				Y:      ys[bi],
				Width:  w,
				Height: hudBarHeight,
			})
		}
		b.positioned = false
	}
}

// update slides each highlight toward its selected item.
func (h *HUD) update(dt float64) {
	if dt <= 0 {
		return
	}
	if dt != h.springDT {
		h.spring = harmonica.NewSpring(dt, hudSpringFrequency, hudSpringDamping)
		h.springDT = dt
	}
	for bi := range h.bars {
		b := &h.bars[bi]
		if b.selected < 0 || b.selected >= len(b.rects) {
			continue
		}
		r := b.rects[b.selected]
		if !b.positioned {
			b.x, b.w = r.X, r.Width
			b.vx, b.vw = 0, 0
			b.positioned = true
			continue
		}
		b.x, b.vx = h.spring.Update(b.x, b.vx, r.X)
		b.w, b.vw = h.spring.Update(b.w, b.vw, r.Width)
	}
}

// contains reports whether (x, y) is over any HUD item.
func (h *HUD) contains(x, y float64) bool {
	_, _, ok := h.hit(x, y)
	return ok
}

// hit returns the bar and index of the item under (x, y).
func (h *HUD) hit(x, y float64) (HUDBar, int, bool) {
	if !h.Visible {
		return 0, 0, false
	}
	for bi := range h.bars {
		for i, r := range h.bars[bi].rects {
			if r.Contains(x, y) {
				return HUDBar(bi), i, true
			}
		}
	}
	return 0, 0, false
}

// click selects the item under (x, y), if any. Hit indices always come from
// the laid-out rects, which mirror the catalogue.
func (h *HUD) click(x, y float64) {
	bar, i, ok := h.hit(x, y)
	if !ok {
		return
	}
	switch bar {
	case HUDViews:
		if i != h.scene.viewIndex {
			h.scene.applyView(i)
		}
	case HUDContents:
		if i != h.scene.contentIndex {
			h.scene.applyContent(i)
		}
	}
}

var (
	hudItemColor      = color.RGBA{0x1e, 0x29, 0x3b, 0xc0}
	hudBorderColor    = color.RGBA{0x47, 0x55, 0x69, 0xff}
	hudHighlightColor = color.RGBA{0x3b, 0x82, 0xf6, 0xd0}
)

func (h *HUD) draw(screen *ebiten.Image) {
	if !h.Visible {
		return
	}
	face := labelFace(hudTextSize)
	for bi := range h.bars {
		b := &h.bars[bi]
		if len(b.rects) == 0 {
			continue
		}
		for _, r := range b.rects {
			vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), hudItemColor, true)
			vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), 1, hudBorderColor, true)
		}
		y := b.rects[0].Y
		vector.DrawFilledRect(screen, float32(b.x), float32(y), float32(b.w), hudBarHeight, hudHighlightColor, true)
		for i, r := range b.rects {
			cx, cy := r.Center()
			op := &text.DrawOptions{}
			op.GeoM.Translate(cx, cy)
			op.PrimaryAlign = text.AlignCenter
			op.SecondaryAlign = text.AlignCenter
			text.Draw(screen, b.keys[i], face, op)
		}
	}
}
