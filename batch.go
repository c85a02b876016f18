package morph

import (
	"bytes"
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// --- Lazily created shared resources (morph is single-threaded) ---

var (
	whitePixelImage *ebiten.Image
	labelFaceSource *text.GoTextFaceSource
)

// ensureWhitePixel returns the source image for untextured triangles. The
// 3x3 image is sampled at its center pixel so edges never bleed.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whitePixelImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whitePixelImage
}

// labelFace returns a Go Regular face at the given size.
func labelFace(size float64) *text.GoTextFace {
	if labelFaceSource == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			panic("morph: embedded label font: " + err.Error())
		}
		labelFaceSource = src
	}
	return &text.GoTextFace{Source: labelFaceSource, Size: size}
}

// LabelSize is the pixel size of region labels.
const LabelSize = 18

// Draw renders the scene onto screen: shapes back to front, then labels,
// then the HUD.
func (s *Scene) Draw(screen *ebiten.Image) {
	var stats debugStats
	var t0 time.Time

	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	b := screen.Bounds()
	s.SetViewport(Rect{X: float64(b.Min.X), Y: float64(b.Min.Y), Width: float64(b.Dx()), Height: float64(b.Dy())})

	if s.debug {
		t0 = time.Now()
	}
	s.traverse()
	if s.debug {
		stats.traverseTime = time.Since(t0)
		t0 = time.Now()
	}
	s.mergeSort()
	if s.debug {
		stats.sortTime = time.Since(t0)
		t0 = time.Now()
	}
	s.submitTriangles(screen)
	s.submitLabels(screen)
	if s.debug {
		stats.submitTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		stats.labelCount = len(s.labels)
		s.debugLog(stats)
	}

	s.hud.draw(screen)
	s.flushScreenshots(screen)
}

// submitTriangles draws every command in a single DrawTriangles32 call.
func (s *Scene) submitTriangles(target *ebiten.Image) {
	if len(s.commands) == 0 {
		return
	}
	verts := make([]ebiten.Vertex, 0, len(s.commands)*3)
	inds := make([]uint32, 0, len(s.commands)*3)
	for i := range s.commands {
		cmd := &s.commands[i]
		base := uint32(len(verts))
		// Premultiply: the color scale mode below expects it.
		a := cmd.Color.A
		for k := 0; k < 3; k++ {
			verts = append(verts, ebiten.Vertex{
				DstX:   cmd.X[k],
				DstY:   cmd.Y[k],
				SrcX:   1,
				SrcY:   1,
				ColorR: cmd.Color.R * a,
				ColorG: cmd.Color.G * a,
				ColorB: cmd.Color.B * a,
				ColorA: a,
			})
		}
		inds = append(inds, base, base+1, base+2)
	}

	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.AntiAlias = true
	target.DrawTriangles32(verts, inds, ensureWhitePixel(), &op)
}

// submitLabels draws region labels centred on their anchors.
func (s *Scene) submitLabels(target *ebiten.Image) {
	if len(s.labels) == 0 {
		return
	}
	face := labelFace(LabelSize)
	for _, l := range s.labels {
		op := &text.DrawOptions{}
		op.GeoM.Translate(l.X, l.Y)
		op.ColorScale.ScaleAlpha(float32(clamp01(l.Alpha)))
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		text.Draw(target, l.Text, face, op)
	}
}
