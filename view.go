package morph

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// RegionTarget describes where a region should be and how it should look in
// a particular View.
type RegionTarget struct {
	ID       int        `toml:"id"`
	Position mgl64.Vec3 `toml:"position"`
	Rotation mgl64.Vec3 `toml:"rotation,omitempty"`
	Size     float64    `toml:"size"`
	Color    Color      `toml:"color"`
	Side     WedgeSide  `toml:"side"`
}

// View is an immutable layout: camera orbit parameters plus the target of
// every region. Regions are identified by ID, not by their index in Regions.
type View struct {
	Key   string `toml:"key"`
	Shape Shape  `toml:"shape"`
	// Radius, Polar and Azimuth place the camera (see SphericalToCartesian).
	Radius  float64 `toml:"radius"`
	Polar   float64 `toml:"polar"`
	Azimuth float64 `toml:"azimuth"`
	// FlatDepth keeps region depth at 1 regardless of Size.
	FlatDepth bool           `toml:"flat_depth,omitempty"`
	Regions   []RegionTarget `toml:"regions"`
}

// TargetScale returns the per-axis scale a region should reach in v.
func (v *View) TargetScale(t RegionTarget) mgl64.Vec3 {
	if v.FlatDepth {
		return mgl64.Vec3{t.Size, t.Size, 1}
	}
	return mgl64.Vec3{t.Size, t.Size, t.Size}
}

// Region returns the target for the given region ID.
func (v *View) Region(id int) (RegionTarget, bool) {
	for _, t := range v.Regions {
		if t.ID == id {
			return t, true
		}
	}
	return RegionTarget{}, false
}

// Validate checks the view at the catalogue boundary: a renderable shape,
// at most MaxRegions regions, unique IDs and known wedge sides.
func (v *View) Validate() error {
	if !v.Shape.Valid() {
		return fmt.Errorf("morph: view %q: %v: %w", v.Key, v.Shape, ErrUnknownShape)
	}
	if len(v.Regions) > MaxRegions {
		return fmt.Errorf("morph: view %q has %d regions: %w", v.Key, len(v.Regions), ErrTooManyRegions)
	}
	seen := make(map[int]bool, len(v.Regions))
	for _, t := range v.Regions {
		if seen[t.ID] {
			return fmt.Errorf("morph: view %q: region %d: %w", v.Key, t.ID, ErrDuplicateRegion)
		}
		seen[t.ID] = true
		if int(t.Side) >= len(sideNames) {
			return fmt.Errorf("morph: view %q: region %d: %w", v.Key, t.ID, ErrUnknownSide)
		}
	}
	return nil
}

// Content is a named set of labels. Labels[i] belongs to region ID i+1.
type Content struct {
	Key    string   `toml:"key"`
	Labels []string `toml:"labels"`
}

// Label returns the label for a region ID, or "" if there is none.
func (c *Content) Label(id int) string {
	if c == nil || id < 1 || id > len(c.Labels) {
		return ""
	}
	return c.Labels[id-1]
}
