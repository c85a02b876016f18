package morph

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// ShowHUD shows the view and content switcher bars.
	ShowHUD bool
}

// DefaultRunConfig returns a 960x640 window with the HUD shown.
func DefaultRunConfig() RunConfig {
	return RunConfig{Title: "morph", Width: 960, Height: 640, ShowHUD: true}
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
	fps   *fpsOverlay
}

func (g *game) Update() error {
	if err := g.scene.Update(); err != nil {
		return err
	}
	if g.fps != nil {
		g.fps.update(1 / float64(ebiten.TPS()))
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Run opens a resizable window and drives the scene until the window is
// closed or the scene's update func returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		d := DefaultRunConfig()
		cfg.Width, cfg.Height = d.Width, d.Height
	}
	if cfg.Title == "" {
		cfg.Title = "morph"
	}
	scene.hud.Visible = cfg.ShowHUD
	scene.SetViewport(Rect{Width: float64(cfg.Width), Height: float64(cfg.Height)})

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := &game{scene: scene}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	scene.logger.Info("starting", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("morph: run: %w", err)
	}
	return nil
}
