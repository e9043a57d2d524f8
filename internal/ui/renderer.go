package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/shocktheblock/atom/internal/game"
)

// Renderer draws a session and its HUD onto the screen. Resize may be
// called from the input goroutine while frames render.
type Renderer struct {
	mu     sync.Mutex
	screen *Screen
	canvas *Canvas
}

func NewRenderer(screen *Screen, cfg game.Config) *Renderer {
	return &Renderer{screen: screen, canvas: NewCanvas(screen, cfg.Width, cfg.Height)}
}

// Resize refits the play field to the terminal.
func (r *Renderer) Resize() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.canvas.Resize()
}

// Render draws one frame.
func (r *Renderer) Render(s *game.Session) {
	snap := s.Snapshot()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.screen.Clear()
	screenW, screenH := r.screen.Size()
	r.screen.FillRect(0, hudTop, screenW, screenH-hudTop-hudBottom, tcell.StyleDefault.Background(tcell.ColorBlack), ' ')

	s.Render(r.canvas)

	r.renderStatus(snap, screenW)
	r.renderHelp(snap, screenW, screenH)
	if snap.DialogOpen {
		r.renderDialog(snap.Dialog, screenW, screenH)
	}
	r.screen.Show()
}

func (r *Renderer) renderStatus(snap game.Snapshot, screenW int) {
	style := tcell.StyleDefault.Background(tcell.ColorDarkBlue).Foreground(tcell.ColorWhite)
	r.screen.FillRect(0, 0, screenW, 1, style, ' ')

	status := fmt.Sprintf(" SCORE %d  LEVEL %d  BALLS %d  %s", snap.Score, snap.Level, snap.BallsLeft, strings.ToUpper(string(snap.Phase)))
	if snap.Phase == game.PhasePower {
		status += fmt.Sprintf("  ANGLE %.0f°  POWER %s", snap.Aim.AngleDeg, powerBar(snap.Aim))
	}
	r.screen.DrawText(0, 0, status, style.Bold(true))
}

func powerBar(aim game.AimView) string {
	tier := aim.Tier
	if aim.Charging {
		tier = game.ChargeTier(aim.Charge)
	}
	tier = min(max(tier, 0), len(game.PowerTable))
	return strings.Repeat("▮", tier) + strings.Repeat("▯", len(game.PowerTable)-tier)
}

// HelpLine returns the key hints for the current state.
func HelpLine(snap game.Snapshot) string {
	switch {
	case snap.DialogOpen:
		return "ENTER continue  R restart  Q quit"
	case snap.Phase == game.PhaseTargeting:
		return "←/→ move  ENTER confirm  R restart  Q quit"
	case snap.Phase == game.PhasePower && snap.Aim.Mode == game.AimSweep:
		if snap.Aim.Sweeping {
			return "SPACE lock angle  R restart  Q quit"
		}
		return "SPACE lock power  R restart  Q quit"
	case snap.Phase == game.PhasePower:
		return "↑/↓ angle  1-4 power  ENTER launch  R restart  Q quit"
	}
	return "R restart  Q quit"
}

func (r *Renderer) renderHelp(snap game.Snapshot, screenW, screenH int) {
	style := tcell.StyleDefault.Background(tcell.ColorDarkGray).Foreground(tcell.ColorWhite)
	r.screen.FillRect(0, screenH-1, screenW, 1, style, ' ')
	r.screen.DrawText(1, screenH-1, HelpLine(snap), style)
}

func (r *Renderer) renderDialog(msg string, screenW, screenH int) {
	w := len([]rune(msg)) + 6
	h := 5
	x := (screenW - w) / 2
	y := (screenH - h) / 2
	style := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorYellow)
	r.screen.FillRect(x, y, w, h, style, ' ')
	r.screen.DrawBox(x, y, w, h, style)
	r.screen.DrawText(x+3, y+2, msg, style.Bold(true))
}
