package game

import "math"

// Collision describes the block resolved during a tick.
type Collision struct {
	Row, Col  int
	Special   bool
	Destroyed int // blocks destroyed by this collision
	Points    int
	Axis      Axis
}

// Axis is the velocity component a bounce inverted.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// CollisionEngine resolves ball-vs-block contacts against a grid.
type CollisionEngine struct {
	Grid      *Grid
	Particles *Particles
	Config    Config
}

// candidateRange returns the inclusive row/col index window the ball's
// bounding circle could touch. ok is false when the window is empty.
func (ce *CollisionEngine) candidateRange(ball *Ball) (r0, r1, c0, c1 int, ok bool) {
	g := ce.Grid
	if g.Rows() == 0 {
		return 0, 0, 0, 0, false
	}
	px, py := ce.Config.PitchX(), ce.Config.PitchY()
	x, y, rad := ball.Position.X, ball.Position.Y, ball.Radius

	r0 = max(0, int(math.Floor((y-BlockOffsetTop-rad)/py)))
	r1 = min(g.Rows()-1, int(math.Floor((y-BlockOffsetTop+rad)/py))+1)
	c0 = max(0, int(math.Floor((x-BlockOffsetLeft-rad)/px)))
	c1 = int(math.Floor((x-BlockOffsetLeft+rad)/px)) + 1
	return r0, r1, c0, c1, r0 <= r1
}

// Resolve finds the first live block the ball overlaps, applies its hit and
// the bounce, and returns what happened. At most one block is resolved per
// call. It returns nil when the ball touches nothing.
func (ce *CollisionEngine) Resolve(ball *Ball) *Collision {
	if !ball.Moving || ce.Grid == nil {
		return nil
	}
	bounds := ce.Grid.Bounds()
	if !bounds.OverlapsCircleBox(ball.Position, ball.Radius) {
		return nil
	}

	r0, r1, c0, c1, ok := ce.candidateRange(ball)
	if !ok {
		return nil
	}
	for r := r0; r <= r1; r++ {
		for c := c0; c <= min(c1, ce.Grid.Cols(r)-1); c++ {
			block := ce.Grid.At(r, c)
			if block == nil || block.Hit {
				continue
			}
			center := block.Bounds.Center()
			distX := math.Abs(ball.Position.X - center.X)
			distY := math.Abs(ball.Position.Y - center.Y)
			if distX > block.Bounds.W/2+ball.Radius || distY > block.Bounds.H/2+ball.Radius {
				continue
			}
			return ce.hit(ball, block, distX, distY)
		}
	}
	return nil
}

func (ce *CollisionEngine) hit(ball *Ball, block *Block, distX, distY float64) *Collision {
	col := &Collision{Row: block.Row, Col: block.Col}
	ball.ClearTrail()

	if block.ZoneRect().OverlapsCircleBox(ball.Position, ball.Radius) {
		col.Special = true
		col.Destroyed = ce.DestroyBlockArea(block.Row, block.Col, AreaRadius)
		col.Points = col.Destroyed*ScoreAreaBlock + ScoreAreaBonus
	} else if block.Damage() {
		col.Destroyed = 1
		col.Points = ScoreDestroy
		ce.burst(block)
	} else {
		col.Points = ScorePartial
	}

	// Normalised distances pick the contact side; for square blocks this is
	// a plain distX > distY comparison.
	if distX/block.Bounds.W > distY/block.Bounds.H {
		ball.Velocity.X = -ball.Velocity.X * BounceFactor
		col.Axis = AxisX
	} else {
		ball.Velocity.Y = -ball.Velocity.Y * BounceFactor
		col.Axis = AxisY
	}
	return col
}

// DestroyBlockArea destroys every live block within a Chebyshev radius of
// (centerRow, centerCol), emitting particles for each, and returns how many
// were destroyed. Cells outside the grid are skipped.
func (ce *CollisionEngine) DestroyBlockArea(centerRow, centerCol, radius int) int {
	destroyed := 0
	for r := max(0, centerRow-radius); r <= min(ce.Grid.Rows()-1, centerRow+radius); r++ {
		for c := max(0, centerCol-radius); c <= min(ce.Grid.Cols(r)-1, centerCol+radius); c++ {
			block := ce.Grid.At(r, c)
			if block == nil || block.Hit {
				continue
			}
			block.Hit = true
			destroyed++
			ce.burst(block)
		}
	}
	return destroyed
}

func (ce *CollisionEngine) burst(block *Block) {
	if ce.Particles == nil {
		return
	}
	ce.Particles.Burst(block.Bounds.Center(), block.Color, ce.Config.DestroyParticles)
}
