package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/shocktheblock/atom/internal/game"
)

// AngleStep is how far one arrow press turns the slider aim, in degrees.
const AngleStep = 5

// Controls maps keys to game inputs. It remembers the slider aim so arrow
// presses adjust it relative to the last value.
type Controls struct {
	moveStep float64
	angle    float64
	tier     int
}

func NewControls(cfg game.Config) *Controls {
	return &Controls{moveStep: cfg.MoveStep, angle: 90, tier: 1}
}

// Handle converts a key press into an input for the current state. ok is
// false for keys that mean nothing right now.
func (c *Controls) Handle(key tcell.Key, r rune, snap game.Snapshot) (in game.Input, ok bool) {
	if key == tcell.KeyRune && (r == 'r' || r == 'R') {
		return game.Reset(), true
	}
	confirm := key == tcell.KeyEnter || (key == tcell.KeyRune && r == ' ')

	if snap.DialogOpen {
		if confirm {
			return game.DismissDialog(), true
		}
		return game.Input{}, false
	}

	switch snap.Phase {
	case game.PhaseTargeting:
		switch {
		case key == tcell.KeyLeft || (key == tcell.KeyRune && (r == 'a' || r == 'A')):
			return game.Move(-c.moveStep), true
		case key == tcell.KeyRight || (key == tcell.KeyRune && (r == 'd' || r == 'D')):
			return game.Move(c.moveStep), true
		case confirm:
			return game.ConfirmPosition(), true
		}

	case game.PhasePower:
		if snap.Aim.Mode == game.AimSweep {
			if confirm {
				return game.Tap(), true
			}
			return game.Input{}, false
		}
		c.angle, c.tier = snap.Aim.AngleDeg, snap.Aim.Tier
		switch {
		case key == tcell.KeyLeft || key == tcell.KeyUp || (key == tcell.KeyRune && (r == 'w' || r == 'W')):
			// left turns the aim counter-clockwise, towards 180°
			return game.SetAim(c.angle+AngleStep, c.tier), true
		case key == tcell.KeyRight || key == tcell.KeyDown || (key == tcell.KeyRune && (r == 's' || r == 'S')):
			return game.SetAim(c.angle-AngleStep, c.tier), true
		case key == tcell.KeyRune && r >= '1' && r <= '4':
			return game.SetAim(c.angle, int(r-'0')), true
		case confirm:
			return game.Launch(), true
		}
	}
	return game.Input{}, false
}

// IsQuitKey returns true if the key should quit the application
func IsQuitKey(key tcell.Key, r rune) bool {
	if key == tcell.KeyEscape || key == tcell.KeyCtrlC {
		return true
	}
	if key == tcell.KeyRune && (r == 'q' || r == 'Q') {
		return true
	}
	return false
}
