package loop

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tomz197/neonrush/internal/draw"
	"github.com/tomz197/neonrush/internal/object"
	"github.com/tomz197/neonrush/internal/physics"
	"github.com/tomz197/neonrush/internal/sim"
)

const dashMeterWidth = 10

// drawFrame draws the current frame.
func (s *Session) drawFrame() error {
	// On screen or inactivity transitions, do a full terminal clear
	// so UI elements from the previous screen don't persist.
	stateChanged := s.screen != s.prevScreen
	inactiveChanged := s.isInactive != s.wasInactive
	if stateChanged || inactiveChanged {
		s.chunkWriter.ClearScreen()
		s.canvas.ForceRedraw()
		s.prevScreen = s.screen
		s.wasInactive = s.isInactive
	}

	s.canvas.Clear()
	snap := s.game.Snapshot()

	switch s.screen {
	case screenPlaying:
		drawScene(s.canvas, snap, s.shakeOffset(snap.Shake))
	case screenTitle:
		for _, st := range snap.Stars {
			s.canvas.Set(st.Pos, draw.Hue(st.Hue, 0.25+0.1*float64(st.Size)))
		}
	}

	s.canvas.Render(s.chunkWriter)
	s.canvas.RenderBorder(s.chunkWriter)

	s.drawUI(snap)

	return s.chunkWriter.Flush()
}

// shakeOffset picks a random offset within the current shake magnitude.
func (s *Session) shakeOffset(magnitude float64) physics.Vec2 {
	if magnitude <= 0 {
		return physics.Vec2{}
	}
	return physics.V(
		(s.fx.Float64()*2-1)*magnitude,
		(s.fx.Float64()*2-1)*magnitude,
	)
}

// drawUI draws the text overlay for the current screen.
func (s *Session) drawUI(snap *sim.Snapshot) {
	centerX := s.canvas.TerminalWidth()/2 + 1
	centerY := s.canvas.TerminalHeight()/2 + 1

	if s.screen == screenShutdown {
		s.drawShutdownScreen(centerX, centerY)
		return
	}

	if s.isInactive {
		s.drawInactivityScreen(centerX, centerY)
		return
	}

	switch s.screen {
	case screenTitle:
		s.drawStartScreen(centerX, centerY, snap)
	case screenPlaying:
		s.drawHUD(snap)
		s.drawTexts(snap)
		s.drawOverlay(centerX, centerY, snap.Overlay)
	}
}

// writeText writes s over the canvas and marks the covered cells so the
// next Render erases it.
func (s *Session) writeText(col, row int, style, text string) {
	s.chunkWriter.WriteStyledAt(col, row, style, text)
	s.canvas.MarkTextDirty(col, row, utf8.RuneCountInString(text))
}

// writeCentered is writeText centered on col.
func (s *Session) writeCentered(col, row int, style, text string) {
	s.writeText(col-utf8.RuneCountInString(text)/2, row, style, text)
}

// drawHUD draws the status line above the playfield.
func (s *Session) drawHUD(snap *sim.Snapshot) {
	cw := s.chunkWriter
	row := 1 - s.canvas.OffsetRow() // First terminal row

	cw.ClearLine(row)

	status := fmt.Sprintf("Score %-6d  x%.1f  Best %-6d  ◆ %d", snap.Score, snap.Combo, snap.Best, snap.Currency)
	cw.WriteStyledAt(1, row, draw.Bold, status)

	var parts []string
	if snap.Boss.Active {
		parts = append(parts, fmt.Sprintf("BOSS %.0fs", snap.Boss.Countdown))
	}
	if snap.Buffs.Invuln > 0 {
		parts = append(parts, fmt.Sprintf("shield %.1f", snap.Buffs.Invuln))
	}
	if snap.Buffs.Magnet > 0 {
		parts = append(parts, fmt.Sprintf("magnet %.1f", snap.Buffs.Magnet))
	}
	if snap.Buffs.ExtraDash > 0 {
		parts = append(parts, fmt.Sprintf("dash+ %.1f", snap.Buffs.ExtraDash))
	}
	parts = append(parts, dashMeter(snap.Player))

	right := strings.Join(parts, "  ")
	col := s.canvas.TerminalWidth() - utf8.RuneCountInString(right) + 1
	if col > utf8.RuneCountInString(status)+2 {
		cw.WriteStyledAt(col, row, draw.Fg(draw.Hue(huePlayer, 1)), right)
	}
}

// dashMeter renders the dash cooldown as a bar with the charge count.
func dashMeter(p sim.PlayerView) string {
	filled := int(p.DashReady*dashMeterWidth + 0.5)
	filled = min(max(filled, 0), dashMeterWidth)
	meter := "dash [" + strings.Repeat("■", filled) + strings.Repeat("·", dashMeterWidth-filled) + "]"
	if p.DashesMax > 1 {
		meter += fmt.Sprintf(" %d/%d", p.Dashes, p.DashesMax)
	}
	return meter
}

// drawTexts draws the floating labels at their playfield positions.
func (s *Session) drawTexts(snap *sim.Snapshot) {
	termWidth := s.canvas.TerminalWidth()
	termHeight := s.canvas.TerminalHeight()

	for _, t := range snap.Texts {
		col, row := s.canvas.LogicalToTerminal(t.Pos)
		n := utf8.RuneCountInString(t.Text)
		col -= n / 2

		// Clamp to screen bounds
		if row < 1 || row > termHeight || col < 1 || col+n-1 > termWidth {
			continue
		}
		fade := physics.Clamp(t.Life/object.TextLife, 0.35, 1)
		s.writeText(col, row, draw.Fg(draw.Hue(t.Hue, fade)), t.Text)
	}
}

// drawOverlay draws the game over, shop or pause message block.
func (s *Session) drawOverlay(centerX, centerY int, lines []string) {
	top := centerY - len(lines)/2
	for i, line := range lines {
		style := draw.Fg(draw.White)
		if i == 0 {
			style = draw.Bold + style
		}
		s.writeCentered(centerX, top+i, style, line)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (s *Session) drawInactivityScreen(centerX, centerY int) {
	title := "INACTIVITY WARNING"
	s.writeCentered(centerX, centerY-2, draw.Bold, title)

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(InactivityDisconnectUser-time.Since(s.lastInput).Seconds()),
	)
	s.writeCentered(centerX, centerY, "", msg)

	hint := "Press any key to continue"
	s.writeCentered(centerX, centerY+2, "", hint)
}

// drawStartScreen draws the title screen.
func (s *Session) drawStartScreen(centerX, centerY int, snap *sim.Snapshot) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		" _  _ ___ ___  _  _   ___ _   _ ___ _  _ ",
		"| \\| | __/ _ \\| \\| | | _ \\ | | / __| || |",
		"| .` | _| (_) | .` | |   / |_| \\__ \\ __ |",
		"|_|\\_|___\\___/|_|\\_| |_|_\\\\___/|___/_||_|",
	}

	titleStartY := centerY - 8
	for i, line := range titleArt {
		s.writeCentered(centerX, titleStartY+i, draw.Fg(draw.Hue(float64(i)*0.08+0.5, 1)), line)
	}

	subtitle := "~ Dash. Dodge. Collect. ~"
	s.writeCentered(centerX, titleStartY+len(titleArt)+1, "", subtitle)

	if snap.Best > 0 || snap.Currency > 0 {
		record := fmt.Sprintf("Best %d  •  ◆ %d", snap.Best, snap.Currency)
		s.writeCentered(centerX, titleStartY+len(titleArt)+2, draw.Fg(draw.Gray), record)
	}

	controlsY := titleStartY + len(titleArt) + 4
	s.writeCentered(centerX, controlsY, draw.Bold, "Controls")

	controlLines := []string{
		"WASD / Arrows . . .  Move",
		"SPACE  . . . . . . . Dash",
		"P  . . . . . . . .  Pause",
		"U  . . . . . . . . . Shop",
		"1-5  . . . . . . . .  Buy",
		"R  . . . . . . .  Restart",
		"Q  . . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		s.writeCentered(centerX, controlsY+1+i, "", line)
	}

	// Blinking start prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		prompt := ">>  Press SPACE to Start  <<"
		s.writeCentered(centerX, controlsY+len(controlLines)+2, draw.Bold, prompt)
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (s *Session) drawShutdownScreen(centerX, centerY int) {
	s.writeCentered(centerX, centerY-3, draw.Bold, "SERVER SHUTTING DOWN")
	s.writeCentered(centerX, centerY-1, "", "The server is restarting for maintenance.")
	s.writeCentered(centerX, centerY, "", "Your progress will be saved.")

	remaining := int(s.shutdownTimer) + 1
	countdown := fmt.Sprintf("Disconnecting in %d seconds...", remaining)
	s.writeCentered(centerX, centerY+2, "", countdown)

	s.writeCentered(centerX, centerY+4, draw.Fg(draw.Gray), "Press Q to disconnect now")
}
