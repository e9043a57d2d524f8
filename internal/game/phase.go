package game

// Phase is the turn phase that gates player input.
type Phase string

const (
	PhaseTargeting Phase = "targeting" // position the ball horizontally
	PhasePower     Phase = "power"     // choose angle and power
	PhaseExecution Phase = "execution" // ball in motion
)

// next lists the only phase reachable from each phase.
var next = map[Phase]Phase{
	PhaseTargeting: PhasePower,
	PhasePower:     PhaseExecution,
	PhaseExecution: PhaseTargeting,
}

// CanTransition reports whether from -> to is a legal transition.
func CanTransition(from, to Phase) bool {
	n, ok := next[from]
	return ok && n == to
}

// PhaseMachine tracks the current phase and a transition lock. After a
// player-initiated transition the lock is held for a number of ticks, during
// which further player transitions are refused.
type PhaseMachine struct {
	phase     Phase
	lock      int
	lockTicks int
}

// NewPhaseMachine starts in Targeting.
func NewPhaseMachine(lockTicks int) *PhaseMachine {
	return &PhaseMachine{phase: PhaseTargeting, lockTicks: lockTicks}
}

func (m *PhaseMachine) Phase() Phase { return m.phase }

// Locked reports whether a transition is still settling.
func (m *PhaseMachine) Locked() bool { return m.lock > 0 }

// Transition moves to the requested phase if it is the legal successor and
// no transition is in progress.
func (m *PhaseMachine) Transition(to Phase) error {
	if m.lock > 0 {
		return ErrTransitionLocked
	}
	if !CanTransition(m.phase, to) {
		return ErrWrongPhase
	}
	m.phase = to
	m.lock = m.lockTicks
	return nil
}

// EndTurn returns to Targeting regardless of the lock. It is used when a
// turn ends, a level is completed, or the game restarts.
func (m *PhaseMachine) EndTurn() {
	m.phase = PhaseTargeting
	m.lock = 0
}

// Tick counts the transition lock down.
func (m *PhaseMachine) Tick() {
	if m.lock > 0 {
		m.lock--
	}
}
