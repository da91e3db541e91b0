// Package desktop runs the game in an ebiten window.
package desktop

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/neonrush/internal/input"
	"github.com/tomz197/neonrush/internal/rng"
	"github.com/tomz197/neonrush/internal/sim"
)

// App adapts a sim.Game to ebiten.Game. ebiten calls Update at a fixed
// 60 TPS, so every call advances the simulation by one tick.
type App struct {
	game   *sim.Game
	logger *log.Logger
	fx     rng.Source // Cosmetic randomness (screen shake)
}

var _ ebiten.Game = (*App)(nil)

// New wraps game for ebiten.
func New(game *sim.Game, logger *log.Logger) *App {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &App{game: game, logger: logger, fx: rng.New(0)}
}

// Run opens the window and blocks until the player quits or closes it.
// The game is saved before returning.
func Run(game *sim.Game, logger *log.Logger) error {
	field := game.Field()
	ebiten.SetWindowSize(int(field.Width), int(field.Height))
	ebiten.SetWindowTitle("Neon Rush")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	app := New(game, logger)
	err := ebiten.RunGame(app)

	// Closing the window skips the quit key path, so persist here too.
	quit := input.None()
	quit.Quit = true
	game.HandleInput(quit)
	return err
}

// Update reads the keyboard and advances the simulation one tick.
func (a *App) Update() error {
	in := readInput()
	if in.Fullscreen {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if a.game.HandleInput(in) {
		return ebiten.Termination
	}
	a.game.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

// Layout keeps the logical playfield resolution; ebiten scales it to the
// window.
func (a *App) Layout(_, _ int) (int, int) {
	field := a.game.Field()
	return int(field.Width), int(field.Height)
}

var buyKeys = [...]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// readInput builds an input snapshot from the keyboard. Movement keys are
// levels, everything else fires on the press edge.
func readInput() input.Snapshot {
	in := input.None()
	in.Left = ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	in.Right = ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	in.Up = ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	in.Down = ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)

	in.Dash = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	in.Pause = inpututil.IsKeyJustPressed(ebiten.KeyP)
	in.Reset = inpututil.IsKeyJustPressed(ebiten.KeyR)
	in.Shop = inpututil.IsKeyJustPressed(ebiten.KeyU)
	in.Quit = inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ)
	in.Fullscreen = inpututil.IsKeyJustPressed(ebiten.KeyF11)

	for i, k := range buyKeys {
		if inpututil.IsKeyJustPressed(k) {
			in.Buy = i
			break
		}
	}
	return in
}
