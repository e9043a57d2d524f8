package game

import "errors"

// InputKind identifies a player input event.
type InputKind string

const (
	InputMove            InputKind = "move"
	InputConfirmPosition InputKind = "confirm_position"
	InputSetAim          InputKind = "set_aim"
	InputAimLock         InputKind = "aim_lock"
	InputPowerLock       InputKind = "power_lock"
	InputTap             InputKind = "tap" // aim_lock or power_lock, whichever is pending
	InputLaunch          InputKind = "launch"
	InputDismissDialog   InputKind = "dismiss_dialog"
	InputReset           InputKind = "reset"
)

// Input is a player action. Only the fields relevant to Kind are read.
type Input struct {
	Kind     InputKind `json:"kind"`
	Delta    float64   `json:"delta,omitempty"` // horizontal move in field units
	AngleDeg float64   `json:"angle,omitempty"`
	Tier     int       `json:"tier,omitempty"`
}

func Move(delta float64) Input { return Input{Kind: InputMove, Delta: delta} }
func ConfirmPosition() Input { return Input{Kind: InputConfirmPosition} }
func SetAim(angleDeg float64, tier int) Input {
	return Input{Kind: InputSetAim, AngleDeg: angleDeg, Tier: tier}
}
func AimLock() Input { return Input{Kind: InputAimLock} }
func PowerLock() Input { return Input{Kind: InputPowerLock} }
func Tap() Input { return Input{Kind: InputTap} }
func Launch() Input { return Input{Kind: InputLaunch} }
func DismissDialog() Input { return Input{Kind: InputDismissDialog} }
func Reset() Input { return Input{Kind: InputReset} }

var (
	ErrDialogOpen       = errors.New("a dialog is open")
	ErrWrongPhase       = errors.New("input not allowed in the current phase")
	ErrBallMoving       = errors.New("ball is in motion")
	ErrTransitionLocked = errors.New("phase transition in progress")
	ErrGameOver         = errors.New("game is over")
	ErrWrongAimMode     = errors.New("input not supported by this aim mode")
	ErrNoBalls          = errors.New("no balls remaining")
	ErrUnknownInput     = errors.New("unknown input")
)
