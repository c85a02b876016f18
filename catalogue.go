package morph

import (
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pelletier/go-toml/v2"
)

// Catalogue is the ordered list of views and contents the user cycles
// through.
type Catalogue struct {
	Views    []View    `toml:"views"`
	Contents []Content `toml:"contents"`
}

// LoadCatalogue parses a TOML catalogue and validates it.
//
//	[[views]]
//	key = "boxes"
//	shape = "cube"
//	radius = 6
//	azimuth = 1.5708
//	[[views.regions]]
//	id = 1
//	position = [-1.5, 0.5, 0]
//	size = 1
//	color = "#FF0000"
//	side = "top-left"
func LoadCatalogue(data []byte) (*Catalogue, error) {
	var c Catalogue
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("morph: parse catalogue: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadCatalogueFile reads and parses a TOML catalogue from disk.
func LoadCatalogueFile(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("morph: read catalogue: %w", err)
	}
	return LoadCatalogue(data)
}

// MarshalTOML encodes the catalogue in the format LoadCatalogue reads.
func (c *Catalogue) MarshalTOML() ([]byte, error) {
	b, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("morph: encode catalogue: %w", err)
	}
	return b, nil
}

// Validate checks that there is at least one view and one content, that
// keys are unique, and that every view is valid.
func (c *Catalogue) Validate() error {
	if len(c.Views) == 0 || len(c.Contents) == 0 {
		return fmt.Errorf("morph: %d views, %d contents: %w", len(c.Views), len(c.Contents), ErrEmptyCatalogue)
	}
	keys := make(map[string]bool, len(c.Views))
	for i := range c.Views {
		v := &c.Views[i]
		if keys[v.Key] {
			return fmt.Errorf("morph: view %q: %w", v.Key, ErrDuplicateKey)
		}
		keys[v.Key] = true
		if err := v.Validate(); err != nil {
			return err
		}
	}
	clear(keys)
	for _, ct := range c.Contents {
		if keys[ct.Key] {
			return fmt.Errorf("morph: content %q: %w", ct.Key, ErrDuplicateKey)
		}
		keys[ct.Key] = true
	}
	return nil
}

// ViewIndex returns the index of the view with the given key.
func (c *Catalogue) ViewIndex(key string) (int, error) {
	for i := range c.Views {
		if c.Views[i].Key == key {
			return i, nil
		}
	}
	return -1, fmt.Errorf("morph: %q: %w", key, ErrUnknownView)
}

// ContentIndex returns the index of the content with the given key.
func (c *Catalogue) ContentIndex(key string) (int, error) {
	for i := range c.Contents {
		if c.Contents[i].Key == key {
			return i, nil
		}
	}
	return -1, fmt.Errorf("morph: %q: %w", key, ErrUnknownContent)
}

// Step returns the index after i in a list of length n, moving backward if
// requested and wrapping at both ends.
func Step(i, n int, backward bool) int {
	if n <= 0 {
		return 0
	}
	if backward {
		if i-1 < 0 {
			return n - 1
		}
		return i - 1
	}
	if i+1 >= n {
		return 0
	}
	return i + 1
}

// Element colors shared by the default layouts.
var (
	ColorFire  = Color{R: 1, G: 1, B: 0, A: 1}
	ColorAir   = Color{R: 0, G: 0, B: 1, A: 1}
	ColorWater = Color{R: 0, G: 1, B: 0, A: 1}
	ColorEarth = Color{R: 1, G: 0, B: 0, A: 1}
)

// DefaultViewKey and DefaultContentKey are selected when a Scene starts.
const (
	DefaultViewKey    = "fibonacci"
	DefaultContentKey = "number"
)

func rt(id int, x, y, z float64, c Color, size float64, side WedgeSide) RegionTarget {
	return RegionTarget{ID: id, Position: mgl64.Vec3{x, y, z}, Size: size, Color: c, Side: side}
}

func rtRot(id int, x, y, z float64, c Color, size float64, side WedgeSide, rx, ry, rz float64) RegionTarget {
	t := rt(id, x, y, z, c, size, side)
	t.Rotation = mgl64.Vec3{rx, ry, rz}
	return t
}

func gridRegions() []RegionTarget {
	return []RegionTarget{
		rt(1, -1.5, 0.5, 0, ColorEarth, 1, SideTopLeft),
		rt(2, -0.5, 0.5, 0, ColorWater, 1, SideTopRight),
		rt(5, 1.5, 0.5, 0, ColorAir, 1, SideTopRight),
		rt(6, 0.5, 0.5, 0, ColorFire, 1, SideTopLeft),
		rt(8, -1.5, -0.5, 0, ColorEarth, 1, SideBottomLeft),
		rt(7, -0.5, -0.5, 0, ColorWater, 1, SideBottomRight),
		rt(3, 0.5, -0.5, 0, ColorFire, 1, SideBottomLeft),
		rt(4, 1.5, -0.5, 0, ColorAir, 1, SideBottomRight),
	}
}

func fibonacciRegions() []RegionTarget {
	return []RegionTarget{
		rt(1, -6.5, 0, 0, ColorEarth, 21, SideTopLeft),
		rt(2, 10.5, 4, 0, ColorWater, 13, SideTopRight),
		rt(5, 5.5, -4, 0, ColorAir, 3, SideTopLeft),
		rt(6, 8, -3.5, 0, ColorFire, 2, SideTopRight),
		rt(8, 7.5, -5, 0, ColorEarth, 1, SideBottomLeft),
		rt(7, 8.5, -5, 0, ColorWater, 1, SideBottomRight),
		rt(3, 13, -6.5, 0, ColorFire, 8, SideBottomRight),
		rt(4, 6.5, -8, 0, ColorAir, 5, SideBottomLeft),
	}
}

func vortexRegions() []RegionTarget {
	const pi = math.Pi
	return []RegionTarget{
		rtRot(1, 0.5, 0.5, 0.5, ColorEarth, 1.5, SideTopLeft, pi/8, pi/4, -pi/12),
		rtRot(2, 0.5, 0.5, -0.5, ColorWater, 1.5, SideTopRight, pi/3, pi/2.7, -pi/4),
		rtRot(5, -0.5, 0.5, 0.5, ColorAir, 1.5, SideTopRight, pi/8, pi/8, -pi/8),
		rtRot(6, -0.5, 0.5, -0.5, ColorFire, 1.5, SideTopRight, pi*1.2, -pi/4, pi*1.15),
		rtRot(3, 0.5, -0.5, 0.5, ColorFire, 1.5, SideTopRight, pi/4, pi/5, -pi/6),
		rtRot(4, 0.5, -0.5, -0.5, ColorAir, 1.5, SideTopRight, pi/2.3, pi/5, -pi/3.5),
		rtRot(7, -0.5, -0.5, 0.5, ColorWater, 1.5, SideTopRight, pi/3.7, pi/20, -pi/6),
		rtRot(8, -0.5, -0.5, -0.5, ColorEarth, 1.5, SideTopLeft, pi/2.5, pi/10, -pi/4),
	}
}

// DefaultCatalogue returns the built-in layouts and label sets.
func DefaultCatalogue() *Catalogue {
	return &Catalogue{
		Views: []View{
			{Key: "infinity", Shape: ShapeWedge, Radius: 6, Azimuth: math.Pi / 2, Regions: gridRegions()},
			{Key: "boxes", Shape: ShapeCube, Radius: 6, Azimuth: math.Pi / 2, Regions: gridRegions()},
			{Key: "fibonacci", Shape: ShapeCube, Radius: 60, Azimuth: math.Pi / 2, FlatDepth: true, Regions: fibonacciRegions()},
			{Key: "fibonacci2", Shape: ShapeWedge, Radius: 60, Azimuth: math.Pi / 2, FlatDepth: true, Regions: fibonacciRegions()},
			{Key: "vortex", Shape: ShapeSphere, Radius: 7, Polar: -math.Pi / 4, Azimuth: math.Pi / 4, Regions: vortexRegions()},
		},
		Contents: []Content{
			{Key: "number", Labels: []string{"1", "2", "3", "4", "5", "6", "7", "8"}},
			{Key: "planet", Labels: []string{"♂", "☾", "☿", "♄", "♃", "♆", "☉", "♀"}},
			{Key: "sign", Labels: []string{"♈", "♋", "♊", "♑", "♐", "♓", "♌", "♉"}},
		},
	}
}
