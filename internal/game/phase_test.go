package game

import (
	"errors"
	"math"
	"testing"
)

func TestPhaseTransitionsAreCyclic(t *testing.T) {
	phases := []Phase{PhaseTargeting, PhasePower, PhaseExecution}
	for _, from := range phases {
		for _, to := range phases {
			want := next[from] == to
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
	if CanTransition(PhaseTargeting, PhaseExecution) {
		t.Error("Targeting must not skip Power")
	}
	if CanTransition(PhasePower, PhaseTargeting) {
		t.Error("Power must not go back to Targeting")
	}
}

func TestTransitionLockRefusesUntilTicksElapse(t *testing.T) {
	m := NewPhaseMachine(3)

	if err := m.Transition(PhasePower); err != nil {
		t.Fatalf("first transition: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := m.Transition(PhaseExecution); !errors.Is(err, ErrTransitionLocked) {
			t.Fatalf("tick %d: expected ErrTransitionLocked, got %v", i, err)
		}
		m.Tick()
	}
	if err := m.Transition(PhaseExecution); err != nil {
		t.Errorf("transition after lock expired: %v", err)
	}
	if m.Phase() != PhaseExecution {
		t.Errorf("phase: %s", m.Phase())
	}
}

func TestIllegalTransitionLeavesPhase(t *testing.T) {
	m := NewPhaseMachine(0)
	if err := m.Transition(PhaseExecution); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("expected ErrWrongPhase, got %v", err)
	}
	if m.Phase() != PhaseTargeting || m.Locked() {
		t.Errorf("state changed: phase=%s locked=%v", m.Phase(), m.Locked())
	}
}

func TestEndTurnIgnoresLock(t *testing.T) {
	m := NewPhaseMachine(10)
	_ = m.Transition(PhasePower)
	m.EndTurn()
	if m.Phase() != PhaseTargeting || m.Locked() {
		t.Errorf("EndTurn: phase=%s locked=%v", m.Phase(), m.Locked())
	}
}

func TestSweepStaysWithinBounds(t *testing.T) {
	a := NewAim(Arcade())
	lo, hi := degToRad(15), degToRad(165)
	sawMax, sawMin := false, false

	for i := 0; i < 500; i++ {
		a.Step()
		if a.Angle < lo-1e-9 || a.Angle > hi+1e-9 {
			t.Fatalf("tick %d: angle %.4f outside [%.4f, %.4f]", i, a.Angle, lo, hi)
		}
		sawMax = sawMax || a.Angle == hi
		sawMin = sawMin || a.Angle == lo
	}
	if !sawMax || !sawMin {
		t.Errorf("sweep did not reach both ends (max=%v min=%v)", sawMax, sawMin)
	}
}

func TestSweepStartsStraightUp(t *testing.T) {
	a := NewAim(Arcade())
	if math.Abs(a.Angle-math.Pi/2) > 1e-9 {
		t.Errorf("initial angle %.4f", a.Angle)
	}
	a.Step()
	if math.Abs(a.Angle-(math.Pi/2+SweepSpeed)) > 1e-9 {
		t.Errorf("angle after one tick: %.4f", a.Angle)
	}
}

func TestChargeTier(t *testing.T) {
	tests := []struct {
		charge float64
		want   int
	}{
		{0, 1},
		{0.24, 1},
		{0.25, 2},
		{0.5, 3},
		{0.74, 3},
		{0.99, 4},
		{1, 4},
	}
	for _, tt := range tests {
		if got := ChargeTier(tt.charge); got != tt.want {
			t.Errorf("ChargeTier(%.2f) = %d, want %d", tt.charge, got, tt.want)
		}
	}
}

func TestTwoTapLock(t *testing.T) {
	a := NewAim(Arcade())
	if err := a.LockPower(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("power lock before angle lock: %v", err)
	}
	for i := 0; i < 10; i++ {
		a.Step()
	}
	locked := a.Angle
	if err := a.LockAngle(); err != nil {
		t.Fatalf("LockAngle: %v", err)
	}
	for i := 0; i < 10; i++ {
		a.Step()
	}
	if a.Angle != locked {
		t.Errorf("angle moved after lock: %.4f -> %.4f", locked, a.Angle)
	}
	if a.Charge <= 0 {
		t.Errorf("charge did not build: %.3f", a.Charge)
	}
	if err := a.LockPower(); err != nil {
		t.Fatalf("LockPower: %v", err)
	}
	if a.Tier != ChargeTier(a.Charge) || a.Charging {
		t.Errorf("tier %d charging=%v", a.Tier, a.Charging)
	}
}

func TestChargePingPongs(t *testing.T) {
	a := NewAim(Arcade())
	_ = a.LockAngle()
	peaked := false
	for i := 0; i < 120; i++ {
		a.Step()
		if a.Charge < 0 || a.Charge > 1 {
			t.Fatalf("charge out of range: %.3f", a.Charge)
		}
		peaked = peaked || a.Charge == 1
	}
	if !peaked {
		t.Error("charge never reached full")
	}
	if a.Charge >= 1 {
		t.Error("charge did not fall back after peaking")
	}
}

func TestSliderClampsInput(t *testing.T) {
	a := NewAim(Classic())
	a.Set(270, 9)
	if math.Abs(a.Angle-math.Pi) > 1e-9 || a.Tier != 4 {
		t.Errorf("clamped aim: angle=%.4f tier=%d", a.Angle, a.Tier)
	}
	a.Set(-20, 0)
	if a.Angle != 0 || a.Tier != 1 {
		t.Errorf("clamped aim: angle=%.4f tier=%d", a.Angle, a.Tier)
	}
	if err := a.LockAngle(); !errors.Is(err, ErrWrongAimMode) {
		t.Errorf("slider LockAngle: %v", err)
	}
}
