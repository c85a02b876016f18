// Package morph renders interchangeable 3D layout views on [Ebitengine] and
// animates every change between them.
//
// A [View] places up to [MaxRegions] regions in space and names one [Shape]
// for all of them. A [Content] supplies one label per region. Switching the
// view never snaps: each [Region] damps its position, rotation and scale
// toward the new targets and crossfades its shape weights, while the
// [OrbitCamera] flies toward the view's spherical target. The user can grab
// the camera at any time by dragging; the flight resumes on release.
//
// # Quick start
//
//	scene, err := morph.NewScene(nil, morph.Rect{Width: 960, Height: 640})
//	if err != nil {
//		log.Fatal(err)
//	}
//	morph.Run(scene, morph.DefaultRunConfig())
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly, or drive [Scene.Advance] with
// your own clock and read [Scene.Frame] for a renderer-agnostic snapshot.
//
// # Catalogues
//
// Views and contents come from a [Catalogue]. [DefaultCatalogue] holds the
// built-in set; [LoadCatalogueFile] reads one from TOML:
//
//	[[views]]
//	key = "row"
//	shape = "sphere"
//	radius = 12
//	polar = 0.3
//	azimuth = 1.5708
//
//	[[views.regions]]
//	id = 1
//	position = [-2, 0, 0]
//	size = 1.5
//	color = "#ff0000"
//
// # Controls
//
// ←/→ cycle contents, ↓/↑ cycle views, dragging orbits the camera, the
// wheel zooms, and the HUD bars select views and contents by click.
//
// [Ebitengine]: https://ebitengine.org
package morph
