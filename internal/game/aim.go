package game

import "math"

// Aim holds the angle and power selection made during the Power phase.
//
// In slider mode the angle (degrees) and tier are set directly. In sweep
// mode the angle oscillates between the variant's bounds until the first
// tap locks it; a 0..1 charge then ping-pongs until the second tap, which
// quantises it into a tier.
type Aim struct {
	Mode     AimMode
	Angle    float64 // radians
	MinAngle float64
	MaxAngle float64
	Tier     int

	Sweeping    bool
	Charging    bool
	Charge      float64
	AngleLocked bool

	sweepDir  float64
	chargeDir float64
}

// NewAim creates the aim state for a variant.
func NewAim(cfg Config) Aim {
	a := Aim{
		Mode:     cfg.AimMode,
		MinAngle: degToRad(cfg.AimMinDeg),
		MaxAngle: degToRad(cfg.AimMaxDeg),
	}
	a.Begin()
	return a
}

// Begin resets the selection at the start of a Power phase.
func (a *Aim) Begin() {
	a.Angle = clamp(degToRad(DefaultAimDegrees), a.MinAngle, a.MaxAngle)
	a.Tier = 1
	a.Charge = 0
	a.Charging = false
	a.AngleLocked = false
	a.Sweeping = a.Mode == AimSweep
	a.sweepDir = 1
	a.chargeDir = 1
}

// Set applies slider values, clamping both into range.
func (a *Aim) Set(angleDeg float64, tier int) {
	a.Angle = clamp(degToRad(angleDeg), a.MinAngle, a.MaxAngle)
	a.Tier = clampInt(tier, 1, len(PowerTable))
}

// Step advances the sweep and charge animations one tick.
func (a *Aim) Step() {
	if a.Sweeping {
		a.Angle += SweepSpeed * a.sweepDir
		if a.Angle >= a.MaxAngle {
			a.Angle, a.sweepDir = a.MaxAngle, -1
		}
		if a.Angle <= a.MinAngle {
			a.Angle, a.sweepDir = a.MinAngle, 1
		}
	}
	if a.Charging {
		a.Charge += ChargeSpeed * a.chargeDir
		if a.Charge >= 1 {
			a.Charge, a.chargeDir = 1, -1
		}
		if a.Charge <= 0 {
			a.Charge, a.chargeDir = 0, 1
		}
	}
}

// LockAngle freezes the sweeping angle and starts charging.
func (a *Aim) LockAngle() error {
	if a.Mode != AimSweep {
		return ErrWrongAimMode
	}
	if !a.Sweeping {
		return ErrWrongPhase
	}
	a.Angle = clamp(a.Angle, a.MinAngle, a.MaxAngle)
	a.Sweeping = false
	a.AngleLocked = true
	a.Charging = true
	return nil
}

// LockPower freezes the charge into a tier 1..4.
func (a *Aim) LockPower() error {
	if a.Mode != AimSweep {
		return ErrWrongAimMode
	}
	if !a.Charging {
		return ErrWrongPhase
	}
	a.Tier = ChargeTier(a.Charge)
	a.Charging = false
	return nil
}

// ChargeTier quantises a 0..1 charge into one of four tiers.
func ChargeTier(charge float64) int {
	return clampInt(int(math.Floor(charge*4))+1, 1, len(PowerTable))
}

// AimView is the render-facing projection of the aim state.
type AimView struct {
	Mode        AimMode `json:"mode"`
	AngleDeg    float64 `json:"angle_deg"`
	Tier        int     `json:"tier"`
	Charge      float64 `json:"charge"`
	Sweeping    bool    `json:"sweeping"`
	Charging    bool    `json:"charging"`
	AngleLocked bool    `json:"angle_locked"`
}

func (a *Aim) View() AimView {
	return AimView{
		Mode:        a.Mode,
		AngleDeg:    radToDeg(a.Angle),
		Tier:        a.Tier,
		Charge:      a.Charge,
		Sweeping:    a.Sweeping,
		Charging:    a.Charging,
		AngleLocked: a.AngleLocked,
	}
}
