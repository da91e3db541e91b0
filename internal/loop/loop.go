// Package loop runs a terminal session of the game: input polling, the
// fixed-step simulation clock and rendering of simulation snapshots.
package loop

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/neonrush/internal/draw"
	"github.com/tomz197/neonrush/internal/input"
	"github.com/tomz197/neonrush/internal/rng"
	"github.com/tomz197/neonrush/internal/save"
	"github.com/tomz197/neonrush/internal/sim"
)

// screenState is the front-end phase of a session.
type screenState int

const (
	screenTitle    screenState = iota // Title screen
	screenPlaying                     // Simulation running (including its own pause/shop/game over)
	screenShutdown                    // Server is going away
)

// Options configures a session.
type Options struct {
	TermSizeFunc draw.TermSizeFunc // Defaults to the size of os.Stdout
	Store        save.Store        // Defaults to save.NopStore
	Logger       *log.Logger       // Defaults to a discarding logger
	Seed         uint64            // Simulation seed, 0 means time based

	// IdleDisconnect ends the session after InactivityDisconnectUser seconds
	// without input, warning at InactivityWarnUser.
	IdleDisconnect bool

	// Shutdown, when closed, shows the shutdown screen and ends the session
	// after ShutdownDisplaySeconds.
	Shutdown <-chan struct{}
}

// Session owns one game and the terminal it renders to.
type Session struct {
	game         *sim.Game
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
	fx           rng.Source // Cosmetic randomness (screen shake), never gameplay

	screen        screenState
	prevScreen    screenState
	running       bool
	accumulator   float64
	lastInput     time.Time
	idle          bool
	isInactive    bool
	wasInactive   bool
	shutdown      <-chan struct{}
	shutdownTimer float64
}

// NewSession creates a session reading keys from r and drawing to w.
func NewSession(r *bufio.Reader, w io.Writer, opts Options) *Session {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	game := sim.New(sim.Options{
		Store:  opts.Store,
		Logger: logger,
		Seed:   opts.Seed,
	})
	field := game.Field()

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := layout(termWidth, termHeight, field.Width, field.Height)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, field.Width, field.Height)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Session{
		game:         game,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		logger:       logger,
		fx:           rng.New(0),
		screen:       screenTitle,
		prevScreen:   screenTitle,
		running:      true,
		lastInput:    time.Now(),
		idle:         opts.IdleDisconnect,
		shutdown:     opts.Shutdown,
	}
}

// Run starts a session and blocks until it ends.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	return NewSession(r, w, opts).Run()
}

// Run starts the main loop with the standard Input → Update → Draw cycle.
// Blocks until the player quits, the input closes, the session idles out or
// a shutdown completes. The game is saved on every exit path.
func (s *Session) Run() error {
	draw.HideCursor(s.writer)
	defer draw.ShowCursor(s.writer)
	draw.ClearScreen(s.writer)

	lastTime := time.Now()

	for s.running {
		frameStart := time.Now()
		delta := frameStart.Sub(lastTime).Seconds()
		lastTime = frameStart

		// ===== INPUT PHASE =====
		s.processInput()
		s.checkShutdown()

		// ===== UPDATE PHASE =====
		s.updateScreen()
		switch s.screen {
		case screenPlaying:
			s.advance(delta)
		case screenShutdown:
			s.updateShutdownState(delta)
		}

		// ===== DRAW PHASE =====
		if err := s.drawFrame(); err != nil {
			s.stop()
			return err
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < targetFrameTime {
			time.Sleep(targetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(s.writer)
	return nil
}

// processInput reads pending keys and routes them to the current screen.
func (s *Session) processInput() {
	in := input.ReadInput(s.inputStream)

	if in.Active() {
		s.lastInput = time.Now()
		s.isInactive = false
	} else if s.idle {
		idleFor := time.Since(s.lastInput).Seconds()
		if idleFor > InactivityDisconnectUser {
			s.logger.Info("disconnecting idle session")
			s.stop()
			return
		}
		s.isInactive = idleFor > InactivityWarnUser
	}

	if in.Quit {
		s.stop()
		return
	}

	switch s.screen {
	case screenTitle:
		if in.Dash {
			s.screen = screenPlaying
		}
	case screenPlaying:
		s.game.HandleInput(in)
	}
}

// advance runs the fixed-step simulation clock for one rendered frame.
func (s *Session) advance(delta float64) {
	s.accumulator += delta
	steps := 0
	for s.accumulator >= fixedStep && steps < maxStepsPerFrame {
		s.game.Update(fixedStep)
		s.accumulator -= fixedStep
		steps++
	}
	if steps == maxStepsPerFrame {
		// Too far behind: drop the backlog instead of spiralling.
		s.accumulator = 0
	}
}

// checkShutdown switches to the shutdown screen once the channel closes.
func (s *Session) checkShutdown() {
	if s.shutdown == nil || s.screen == screenShutdown {
		return
	}
	select {
	case <-s.shutdown:
		s.screen = screenShutdown
		s.shutdownTimer = ShutdownDisplaySeconds
	default:
	}
}

// updateShutdownState handles the shutdown screen countdown.
func (s *Session) updateShutdownState(delta float64) {
	s.shutdownTimer -= delta
	if s.shutdownTimer <= 0 {
		s.stop()
	}
}

// stop ends the loop and lets the game persist its state.
func (s *Session) stop() {
	if !s.running {
		return
	}
	s.running = false
	quit := input.None()
	quit.Quit = true
	s.game.HandleInput(quit)
}

// updateScreen handles terminal resize. On actual size changes, clears the
// terminal to remove residual pixels outside the new canvas area.
func (s *Session) updateScreen() {
	termWidth, termHeight, err := s.termSizeFunc()
	if err != nil {
		return
	}
	field := s.game.Field()
	renderWidth, renderHeight, offsetCol, offsetRow := layout(termWidth, termHeight, field.Width, field.Height)

	if renderWidth != s.canvas.TerminalWidth() || renderHeight != s.canvas.TerminalHeight() ||
		offsetCol != s.canvas.OffsetCol() || offsetRow != s.canvas.OffsetRow() {
		s.chunkWriter.ClearScreen()
		s.canvas.ForceRedraw()
	}

	s.canvas.Resize(renderWidth, renderHeight)
	s.canvas.SetOffset(offsetCol, offsetRow)
	s.chunkWriter.SetOffset(offsetCol, offsetRow)
}
