// Package ebitenhost drives a motion.Page from an Ebitengine game loop.
//
// The mouse wheel and the PageUp, PageDown, Home and End keys scroll the page;
// window resizes resize its viewport; every tick calls Page.Update, which
// runs frame callbacks and delivers intersection changes to the hooks.
//
//	page := motion.NewPage(640, 480, motion.WithDocumentHeight(2400))
//	game := ebitenhost.New(page, drawFn)
//	if err := ebitenhost.Run(game, ebitenhost.RunConfig{Title: "Site", Width: 640, Height: 480}); err != nil {
//		log.Fatal(err)
//	}
package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/motion"
	"github.com/tanema/gween/ease"
)

const (
	defaultWheelSpeed = 40.0 // pixels per wheel notch
	pageScrollSeconds = 0.35
)

// Game implements ebiten.Game around a motion.Page.
type Game struct {
	page       *motion.Page
	draw       func(screen *ebiten.Image)
	update     func() error
	wheelSpeed float64
}

// New creates a Game. draw may be nil.
func New(page *motion.Page, draw func(screen *ebiten.Image)) *Game {
	return &Game{page: page, draw: draw, wheelSpeed: defaultWheelSpeed}
}

// Page returns the driven page.
func (g *Game) Page() *motion.Page {
	return g.page
}

// SetWheelSpeed sets how many pixels one wheel notch scrolls.
func (g *Game) SetWheelSpeed(px float64) {
	g.wheelSpeed = px
}

// SetUpdateFunc registers fn to run every tick after the page has updated.
// A non-nil error ends the game loop.
func (g *Game) SetUpdateFunc(fn func() error) {
	g.update = fn
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.handleInput()
	g.page.Update()
	if g.update != nil {
		return g.update()
	}
	return nil
}

func (g *Game) handleInput() {
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.page.InjectScrollBy(0, -dy*g.wheelSpeed)
	}

	_, h := g.page.Size()
	y := g.page.ScrollPosition().Y
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.page.SmoothScrollTo(y+h*0.9, pageScrollSeconds, ease.OutQuad)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		g.page.SmoothScrollTo(y-h*0.9, pageScrollSeconds, ease.OutQuad)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		g.page.SmoothScrollTo(0, pageScrollSeconds, ease.InOutQuad)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		g.page.SmoothScrollTo(g.page.DocumentHeight(), pageScrollSeconds, ease.InOutQuad)
	}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.draw != nil {
		g.draw(screen)
	}
}

// Layout implements ebiten.Game. The outside size becomes the page viewport.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.page.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// TPS overrides the tick rate; 0 keeps Ebitengine's default of 60.
	TPS int
}

// Run opens a resizable window and runs g until the window closes.
func Run(g *Game, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
