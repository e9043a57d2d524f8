package game

import "math"

// Ball is the launched ball's physics state.
type Ball struct {
	Position Vec2    `json:"position"`
	Velocity Vec2    `json:"velocity"`
	Radius   float64 `json:"radius"`
	Moving   bool    `json:"moving"`
	Trail    []Vec2  `json:"trail"` // newest first
}

// NewBall creates a stationary ball at pos.
func NewBall(pos Vec2, radius float64) *Ball {
	return &Ball{Position: pos, Radius: radius, Trail: make([]Vec2, 0, TrailMax)}
}

// TurnEnd says why a turn finished, if it did.
type TurnEnd int

const (
	TurnContinues TurnEnd = iota
	TurnFellOut           // crossed the bottom edge
	TurnSettled           // came to rest below midfield
)

// KinematicsResult reports what happened during one integration step.
type KinematicsResult struct {
	WallHits int
	End      TurnEnd
}

// ApplyGravity accelerates the ball downward.
func (b *Ball) ApplyGravity(g float64) {
	b.Velocity.Y += g
}

// ApplyFriction scales both velocity components by f.
func (b *Ball) ApplyFriction(f float64) {
	b.Velocity = b.Velocity.Times(f)
}

// Advance moves the ball by its velocity.
func (b *Ball) Advance() {
	b.Position = b.Position.Plus(b.Velocity)
}

// Speed returns the magnitude of the velocity.
func (b *Ball) Speed() float64 {
	return b.Velocity.Magnitude()
}

// BounceWalls clamps the ball inside the left, right and top walls of a
// field of the given width, inverting and damping the velocity component of
// every wall touched. It returns the number of walls hit.
func (b *Ball) BounceWalls(width float64) int {
	hits := 0
	if b.Position.X+b.Radius > width {
		b.Position.X = width - b.Radius
		b.Velocity.X = -b.Velocity.X * BounceFactor
		hits++
	}
	if b.Position.X-b.Radius < 0 {
		b.Position.X = b.Radius
		b.Velocity.X = -b.Velocity.X * BounceFactor
		hits++
	}
	if b.Position.Y-b.Radius < 0 {
		b.Position.Y = b.Radius
		b.Velocity.Y = -b.Velocity.Y * BounceFactor
		hits++
	}
	return hits
}

// Integrate runs one physics tick for a moving ball inside a width x height
// field: gravity, friction, movement, wall bounces, then the turn-end checks.
func (b *Ball) Integrate(width, height float64) KinematicsResult {
	var res KinematicsResult
	if !b.Moving {
		return res
	}

	b.ApplyGravity(Gravity)
	b.ApplyFriction(Friction)
	b.Advance()
	res.WallHits = b.BounceWalls(width)

	switch {
	case b.Position.Y+b.Radius > height:
		res.End = TurnFellOut
	case b.Speed() < StopSpeed && b.Position.Y > height/2:
		res.End = TurnSettled
	default:
		b.pushTrail()
	}
	return res
}

// Launch applies the impulse for angle theta (radians) and magnitude power,
// and puts the ball in motion.
func (b *Ball) Launch(theta, power float64) {
	b.Velocity = FromAngle(theta, power)
	b.Moving = true
	b.Trail = b.Trail[:0]
}

// Reset parks the ball at pos with no velocity and an empty trail.
func (b *Ball) Reset(pos Vec2) {
	b.Position = pos
	b.Velocity = Vec2{}
	b.Moving = false
	b.ClearTrail()
}

// ClearTrail drops all recorded trail positions.
func (b *Ball) ClearTrail() {
	b.Trail = b.Trail[:0]
}

// trailCap scales the trail with speed between TrailMin and TrailMax entries.
func (b *Ball) trailCap() int {
	n := int(math.Floor(b.Speed() * 1.5))
	return clampInt(n, TrailMin, TrailMax)
}

func (b *Ball) pushTrail() {
	limit := b.trailCap()
	if len(b.Trail) < TrailMax {
		b.Trail = append(b.Trail, Vec2{})
	}
	copy(b.Trail[1:], b.Trail)
	b.Trail[0] = b.Position
	if len(b.Trail) > limit {
		b.Trail = b.Trail[:limit]
	}
}
