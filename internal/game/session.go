package game

import (
	"math/rand/v2"
	"sync"
)

// Session is one player's game: ball, grid, particles, phase and score.
// All methods are safe for concurrent use; the game loop is expected to be
// the only caller of Step.
type Session struct {
	mu sync.Mutex

	cfg        Config
	rng        *rand.Rand
	ball       *Ball
	grid       *Grid
	particles  *Particles
	collisions *CollisionEngine
	phase      *PhaseMachine
	aim        Aim

	score      int
	level      int
	ballsLeft  int
	over       bool
	dialogOpen bool
	dialog     string
	tick       uint64
	events     []Event
}

// NewSession starts a game at level 1 for the given variant. The seed makes
// grid generation and particle effects reproducible.
func NewSession(cfg Config, seed uint64) *Session {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	particles := NewParticles(cfg.PoolPrewarm, rng)
	s := &Session{
		cfg:       cfg,
		rng:       rng,
		ball:      NewBall(cfg.LaunchPosition(), cfg.BallRadius),
		particles: particles,
		phase:     NewPhaseMachine(cfg.TransitionTicks),
		aim:       NewAim(cfg),
	}
	s.collisions = &CollisionEngine{Particles: particles, Config: cfg}
	s.newGame()
	return s
}

// newGame resets score, level and balls and regenerates the level 1 grid.
func (s *Session) newGame() {
	s.score = 0
	s.level = 1
	s.ballsLeft = s.cfg.BallsPerGame
	s.over = false
	s.dialogOpen = false
	s.dialog = ""
	s.setGrid(GenerateGrid(s.cfg, s.level, s.rng))
	s.particles.Clear()
	s.ball.Reset(s.cfg.LaunchPosition())
	s.phase.EndTurn()
	s.aim.Begin()
}

func (s *Session) setGrid(g *Grid) {
	s.grid = g
	s.collisions.Grid = g
}

// UseGrid replaces the current grid. It is intended for tests and replays
// that need a fixed layout.
func (s *Session) UseGrid(g *Grid) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setGrid(g)
}

// Step advances the game one tick: ball physics, particles, block
// collision, level completion, aim animation, then the transition lock.
func (s *Session) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tick++

	if s.ball.Moving {
		res := s.ball.Integrate(s.cfg.Width, s.cfg.Height)
		for i := 0; i < res.WallHits; i++ {
			s.emit(Event{Type: EventWallBounce})
		}
		if res.End != TurnContinues {
			s.endTurn(res.End)
		}
	}

	s.particles.Step()

	if s.ball.Moving {
		if col := s.collisions.Resolve(s.ball); col != nil {
			s.applyCollision(col)
			if s.grid.Cleared() {
				s.completeLevel()
			}
		}
	}

	if s.phase.Phase() == PhasePower && !s.over {
		s.aim.Step()
	}
	s.phase.Tick()
}

func (s *Session) applyCollision(col *Collision) {
	s.score += col.Points
	switch {
	case col.Special:
		s.emit(Event{Type: EventAreaBlast, Row: col.Row, Col: col.Col, Count: col.Destroyed, Points: col.Points})
	case col.Destroyed > 0:
		s.emit(Event{Type: EventBlockDestroyed, Row: col.Row, Col: col.Col, Count: 1, Points: col.Points})
	default:
		s.emit(Event{Type: EventBlockHit, Row: col.Row, Col: col.Col, Points: col.Points})
	}
}

// endTurn handles a ball that fell out or came to rest: one ball is spent
// and the game either returns to Targeting or ends.
func (s *Session) endTurn(reason TurnEnd) {
	s.ballsLeft--
	s.ball.Reset(s.cfg.LaunchPosition())
	s.aim.Begin()

	msg := "Ball lost"
	if reason == TurnSettled {
		msg = "Ball came to rest"
	}
	s.emit(Event{Type: EventBallLost, Message: msg})

	if s.ballsLeft > 0 {
		s.phase.EndTurn()
		return
	}
	if s.over {
		return
	}
	s.over = true
	s.openDialog("Game Over!")
	s.emit(Event{Type: EventGameOver})
}

func (s *Session) completeLevel() {
	s.level++
	s.openDialog("Level complete!")
	s.emit(Event{Type: EventLevelComplete, Message: "Level complete!"})

	s.setGrid(GenerateGrid(s.cfg, s.level, s.rng))
	s.ball.Reset(s.cfg.LaunchPosition())
	if s.cfg.RefillOnLevelUp {
		s.ballsLeft = s.cfg.BallsPerGame
	}
	s.phase.EndTurn()
	s.aim.Begin()
}

func (s *Session) openDialog(msg string) {
	s.dialogOpen = true
	s.dialog = msg
}

func (s *Session) emit(e Event) {
	e.Tick = s.tick
	e.Score = s.score
	e.Level = s.level
	e.BallsLeft = s.ballsLeft
	s.events = append(s.events, e)
}

// Apply handles one player input. It returns an error describing why the
// input was refused; a refused input leaves the session unchanged.
func (s *Session) Apply(in Input) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch in.Kind {
	case InputDismissDialog:
		if !s.dialogOpen {
			return nil
		}
		s.dialogOpen = false
		s.dialog = ""
		if s.over {
			s.newGame()
		}
		return nil
	case InputReset:
		s.newGame()
		return nil
	}

	if s.dialogOpen {
		return ErrDialogOpen
	}
	if s.over {
		return ErrGameOver
	}

	switch in.Kind {
	case InputMove:
		return s.move(in.Delta)
	case InputConfirmPosition:
		if err := s.requireIdle(PhaseTargeting); err != nil {
			return err
		}
		if err := s.phase.Transition(PhasePower); err != nil {
			return err
		}
		s.aim.Begin()
		return nil
	case InputSetAim:
		if err := s.requireIdle(PhasePower); err != nil {
			return err
		}
		if s.aim.Mode != AimSlider {
			return ErrWrongAimMode
		}
		s.aim.Set(in.AngleDeg, in.Tier)
		return nil
	case InputLaunch:
		if err := s.requireIdle(PhasePower); err != nil {
			return err
		}
		if s.aim.Mode != AimSlider {
			return ErrWrongAimMode
		}
		return s.launch()
	case InputAimLock:
		if err := s.requireIdle(PhasePower); err != nil {
			return err
		}
		return s.aim.LockAngle()
	case InputPowerLock:
		return s.powerLock()
	case InputTap:
		if err := s.requireIdle(PhasePower); err != nil {
			return err
		}
		if s.aim.Sweeping {
			return s.aim.LockAngle()
		}
		return s.powerLock()
	}
	return ErrUnknownInput
}

func (s *Session) requireIdle(p Phase) error {
	if s.ball.Moving {
		return ErrBallMoving
	}
	if s.phase.Phase() != p {
		return ErrWrongPhase
	}
	return nil
}

func (s *Session) move(delta float64) error {
	if err := s.requireIdle(PhaseTargeting); err != nil {
		return err
	}
	lo := s.ball.Radius + s.cfg.MoveMargin
	hi := s.cfg.Width - s.ball.Radius - s.cfg.MoveMargin
	s.ball.Position.X = clamp(s.ball.Position.X+delta, lo, hi)
	return nil
}

func (s *Session) powerLock() error {
	if err := s.requireIdle(PhasePower); err != nil {
		return err
	}
	if s.aim.Mode != AimSweep {
		return ErrWrongAimMode
	}
	if !s.aim.Charging {
		return ErrWrongPhase
	}
	if s.phase.Locked() {
		return ErrTransitionLocked
	}
	if err := s.aim.LockPower(); err != nil {
		return err
	}
	return s.launch()
}

// launch moves to Execution and fires the ball with the current aim.
func (s *Session) launch() error {
	if s.ballsLeft <= 0 {
		return ErrNoBalls
	}
	if err := s.phase.Transition(PhaseExecution); err != nil {
		return err
	}
	power := PowerForTier(s.aim.Tier)
	s.ball.Launch(s.aim.Angle, power)
	s.particles.Exhaust(s.ball.Position, s.aim.Angle, power)
	s.emit(Event{
		Type:     EventLaunch,
		Tier:     s.aim.Tier,
		AngleDeg: radToDeg(s.aim.Angle),
		Message:  LaunchMessages[s.aim.Tier-1],
	})
	return nil
}

// DrainEvents returns the queued events and clears the queue.
func (s *Session) DrainEvents() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	return events
}

// Render draws the current frame: blocks and their special zones,
// particles, the aim line, the trail, then the ball.
func (s *Session) Render(surf Surface) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.grid.Each(func(b *Block) {
		if b.Hit {
			return
		}
		surf.FillRect(b.Bounds.X, b.Bounds.Y, b.Bounds.W, b.Bounds.H, b.Color)
		z := b.ZoneRect()
		surf.FillRect(z.X, z.Y, z.W, z.H, SpecialZoneColor)
	})

	s.particles.Render(surf)

	if s.phase.Phase() == PhasePower && !s.ball.Moving {
		color := AimColor
		if s.aim.AngleLocked {
			color = AimLockedColor
		}
		tip := s.ball.Position.Plus(FromAngle(s.aim.Angle, AimLineLength))
		surf.Line(s.ball.Position.X, s.ball.Position.Y, tip.X, tip.Y, color)
	}

	for i, p := range s.ball.Trail {
		alpha := 1 - float64(i)/float64(len(s.ball.Trail))
		surf.FillCircle(p.X, p.Y, s.ball.Radius*alpha, BallColor, alpha*0.5)
	}
	surf.FillCircle(s.ball.Position.X, s.ball.Position.Y, s.ball.Radius, BallColor, 1)
}

// Snapshot is a serialisable copy of the session state.
type Snapshot struct {
	Tick       uint64         `json:"tick"`
	Variant    string         `json:"variant"`
	Width      float64        `json:"width"`
	Height     float64        `json:"height"`
	Phase      Phase          `json:"phase"`
	Locked     bool           `json:"transition_locked"`
	Score      int            `json:"score"`
	Level      int            `json:"level"`
	BallsLeft  int            `json:"balls_left"`
	GameOver   bool           `json:"game_over"`
	DialogOpen bool           `json:"dialog_open"`
	Dialog     string         `json:"dialog,omitempty"`
	Ball       Ball           `json:"ball"`
	Aim        AimView        `json:"aim"`
	Blocks     []Block        `json:"blocks"`
	Particles  []ParticleView `json:"particles"`
	Pool       PoolStats      `json:"pool"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	ball := *s.ball
	ball.Trail = append([]Vec2(nil), s.ball.Trail...)

	blocks := make([]Block, 0, s.grid.Remaining())
	s.grid.Each(func(b *Block) {
		if !b.Hit {
			blocks = append(blocks, *b)
		}
	})

	return Snapshot{
		Tick:       s.tick,
		Variant:    s.cfg.Name,
		Width:      s.cfg.Width,
		Height:     s.cfg.Height,
		Phase:      s.phase.Phase(),
		Locked:     s.phase.Locked(),
		Score:      s.score,
		Level:      s.level,
		BallsLeft:  s.ballsLeft,
		GameOver:   s.over,
		DialogOpen: s.dialogOpen,
		Dialog:     s.dialog,
		Ball:       ball,
		Aim:        s.aim.View(),
		Blocks:     blocks,
		Particles:  s.particles.Views(),
		Pool:       s.particles.Stats(),
	}
}

// Config returns the variant the session was created with.
func (s *Session) Config() Config { return s.cfg }

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase.Phase()
}

// Score returns the current score.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Level returns the current level.
func (s *Session) Level() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// BallsLeft returns the remaining balls.
func (s *Session) BallsLeft() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ballsLeft
}

// Over reports whether the game has ended.
func (s *Session) Over() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.over
}
