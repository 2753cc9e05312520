// Package game provides the main game loop manager that handles Scene transitions.
package game

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/younwookim/fpscore/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
	ticks   int
	exited  bool
	logger  zerolog.Logger
}

// New creates a new Game with the given initial scene running at tps
// fixed updates per second. The initial scene's OnEnter is called
// immediately.
func New(initialScene scene.Scene, screenW, screenH, tps int, logger zerolog.Logger) *Game {
	if tps <= 0 {
		tps = 60
	}
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / float64(tps),
		logger:  logger,
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	next, err := g.current.Update(g.dt)
	g.ticks++
	if errors.Is(err, scene.ErrDone) {
		g.logger.Info().Int("ticks", g.ticks).Msg("scene finished")
		g.Shutdown()
		return ebiten.Termination
	}
	if err != nil {
		return err
	}

	if next != nil {
		g.logger.Debug().Int("ticks", g.ticks).Msg("scene transition")
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// DT returns the fixed step handed to scenes
func (g *Game) DT() float64 {
	return g.dt
}

// Ticks returns how many updates have run
func (g *Game) Ticks() int {
	return g.ticks
}

// Shutdown gives the current scene a chance to save state after the
// loop has ended. Only the first call reaches the scene.
func (g *Game) Shutdown() {
	if g.exited {
		return
	}
	g.exited = true
	g.current.OnExit()
}
