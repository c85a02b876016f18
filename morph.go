package morph

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// MaxRegions is the most regions a single View may describe.
const MaxRegions = 8

// Shape selects one of the geometric forms a region can take.
type Shape uint8

const (
	ShapeCube   Shape = iota // unit cube
	ShapeSphere              // unit sphere (diameter 1)
	ShapeWedge               // quarter disc extruded to a unit box
	shapeCount

	// ShapeNone is not a renderable shape. A region targeting it fades every
	// variant out while keeping its transform tween alive.
	ShapeNone Shape = 255
)

// Shapes lists the renderable shape variants in weight order.
var Shapes = [shapeCount]Shape{ShapeCube, ShapeSphere, ShapeWedge}

var shapeNames = [shapeCount]string{"cube", "sphere", "wedge"}

// Valid reports whether s is one of the renderable variants.
func (s Shape) Valid() bool {
	return s < shapeCount
}

func (s Shape) String() string {
	if s.Valid() {
		return shapeNames[s]
	}
	if s == ShapeNone {
		return "none"
	}
	return "Shape(" + strconv.Itoa(int(s)) + ")"
}

// ParseShape accepts the canonical names and the aliases "square", "box",
// "ball" and "pizza".
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "cube", "square", "box":
		return ShapeCube, nil
	case "sphere", "ball":
		return ShapeSphere, nil
	case "wedge", "pizza":
		return ShapeWedge, nil
	}
	return ShapeNone, fmt.Errorf("morph: %q: %w", name, ErrUnknownShape)
}

// MarshalText implements encoding.TextMarshaler.
func (s Shape) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("morph: %v: %w", s, ErrUnknownShape)
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shape) UnmarshalText(b []byte) error {
	v, err := ParseShape(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// WedgeSide selects which quadrant of the disc a wedge occupies.
type WedgeSide uint8

const (
	SideTopRight    WedgeSide = iota // 0 → π/2
	SideTopLeft                      // π/2 → π
	SideBottomLeft                   // π → 3π/2
	SideBottomRight                  // 3π/2 → 2π
)

var sideNames = [...]string{"top-right", "top-left", "bottom-left", "bottom-right"}

func (s WedgeSide) String() string {
	if int(s) < len(sideNames) {
		return sideNames[s]
	}
	return "WedgeSide(" + strconv.Itoa(int(s)) + ")"
}

// ParseWedgeSide parses a hyphenated quadrant name such as "top-left".
func ParseWedgeSide(name string) (WedgeSide, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range sideNames {
		if s == n {
			return WedgeSide(i), nil
		}
	}
	return 0, fmt.Errorf("morph: %q: %w", name, ErrUnknownSide)
}

// MarshalText implements encoding.TextMarshaler.
func (s WedgeSide) MarshalText() ([]byte, error) {
	if int(s) >= len(sideNames) {
		return nil, fmt.Errorf("morph: %v: %w", s, ErrUnknownSide)
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *WedgeSide) UnmarshalText(b []byte) error {
	v, err := ParseWedgeSide(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// StartAngle returns the angle in radians at which the wedge's arc begins.
func (s WedgeSide) StartAngle() float64 {
	switch s {
	case SideTopLeft:
		return mgl64.DegToRad(90)
	case SideBottomLeft:
		return mgl64.DegToRad(180)
	case SideBottomRight:
		return mgl64.DegToRad(270)
	default:
		return 0
	}
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default region tint.
var ColorWhite = Color{1, 1, 1, 1}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA".
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("morph: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("morph: invalid hex color %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// Hex formats c as "#RRGGBB", dropping alpha when it is fully opaque.
func (c Color) Hex() string {
	r, g, b, a := to8(c.R), to8(c.G), to8(c.B), to8(c.A)
	if a == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", r, g, b)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", r, g, b, a)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	v, err := ParseHexColor(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Scale multiplies the RGB channels by k, leaving alpha alone.
func (c Color) Scale(k float64) Color {
	return Color{R: clamp01(c.R * k), G: clamp01(c.G * k), B: clamp01(c.B * k), A: c.A}
}

func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: to8(c.R * a),
		G: to8(c.G * a),
		B: to8(c.B * a),
		A: to8(a),
	}
}

func to8(v float64) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Rect is an axis-aligned screen rectangle. Origin is top-left, Y grows down.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the midpoint of r.
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}
