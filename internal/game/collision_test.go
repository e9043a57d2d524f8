package game

import "testing"

// plainZone parks the special zone in the block's top-left corner so hits
// from below stay regular.
var plainZone = SpecialZone{Width: 10, Height: 10}

func newEngine(cfg Config, layout [][]bool) (*CollisionEngine, *Particles) {
	rng := testRand()
	g := NewGrid(cfg, 1, layout, rng)
	g.Each(func(b *Block) {
		b.Zone = plainZone
		b.Color = BlockColors[0]
	})
	ps := NewParticles(64, rng)
	return &CollisionEngine{Grid: g, Particles: ps, Config: cfg}, ps
}

func full(rows, cols int) [][]bool {
	layout := make([][]bool, rows)
	for r := range layout {
		layout[r] = make([]bool, cols)
		for c := range layout[r] {
			layout[r][c] = true
		}
	}
	return layout
}

// ballBelow places a moving ball just under a block's bottom edge.
func ballBelow(block *Block, radius float64) *Ball {
	c := block.Bounds.Center()
	b := NewBall(NewVec2(c.X, block.Bounds.Bottom()+radius-2), radius)
	b.Velocity = NewVec2(0, -3)
	b.Moving = true
	return b
}

func TestRegularHitDestroysSingleHitBlock(t *testing.T) {
	ce, ps := newEngine(Classic(), full(1, 1))
	block := ce.Grid.At(0, 0)
	ball := ballBelow(block, 15)
	ball.Trail = append(ball.Trail, ball.Position)

	col := ce.Resolve(ball)

	if col == nil {
		t.Fatal("expected a collision")
	}
	if col.Special || col.Destroyed != 1 || col.Points != ScoreDestroy {
		t.Errorf("collision: %+v", col)
	}
	if !block.Hit {
		t.Error("block not destroyed")
	}
	if col.Axis != AxisY || !approx(ball.Velocity.Y, 3*BounceFactor) {
		t.Errorf("expected vertical bounce, got axis %v velocity %+v", col.Axis, ball.Velocity)
	}
	if len(ball.Trail) != 0 {
		t.Error("trail not cleared on block hit")
	}
	if ps.Stats().Active != Classic().DestroyParticles {
		t.Errorf("destruction particles: got %d want %d", ps.Stats().Active, Classic().DestroyParticles)
	}
}

func TestSideHitBouncesHorizontally(t *testing.T) {
	ce, _ := newEngine(Classic(), full(1, 1))
	block := ce.Grid.At(0, 0)
	c := block.Bounds.Center()
	ball := NewBall(NewVec2(block.Bounds.Right()+13, c.Y+20), 15)
	ball.Velocity = NewVec2(-4, 0)
	ball.Moving = true

	col := ce.Resolve(ball)

	if col == nil || col.Axis != AxisX {
		t.Fatalf("expected horizontal bounce, got %+v", col)
	}
	if !approx(ball.Velocity.X, 4*BounceFactor) {
		t.Errorf("vx: %.3f", ball.Velocity.X)
	}
}

func TestMultiHitBlockTakesThreeHits(t *testing.T) {
	ce, _ := newEngine(Arcade(), full(1, 1))
	block := ce.Grid.At(0, 0)
	ball := ballBelow(block, 10)

	first := ce.Resolve(ball)
	if first == nil || first.Destroyed != 0 || first.Points != ScorePartial {
		t.Fatalf("first hit: %+v", first)
	}
	if block.Color != BlockColors[1] {
		t.Errorf("damaged colour: %s", block.Color)
	}
	second := ce.Resolve(ball)
	if second == nil || second.Destroyed != 0 || block.Hit {
		t.Fatalf("second hit: %+v", second)
	}
	third := ce.Resolve(ball)
	if third == nil || third.Destroyed != 1 || third.Points != ScoreDestroy || !block.Hit {
		t.Fatalf("third hit: %+v", third)
	}
	if ce.Resolve(ball) != nil {
		t.Error("destroyed block collided again")
	}
}

func TestSpecialZoneDestroysNeighbourhood(t *testing.T) {
	ce, ps := newEngine(Classic(), full(3, 3))
	center := ce.Grid.At(1, 1)
	center.Zone = SpecialZone{Width: BlockWidth, Height: BlockHeight}
	ball := ballBelow(center, 15)

	col := ce.Resolve(ball)

	if col == nil || !col.Special {
		t.Fatalf("expected special collision, got %+v", col)
	}
	if col.Destroyed != 9 {
		t.Errorf("destroyed: got %d want 9", col.Destroyed)
	}
	if want := 9*ScoreAreaBlock + ScoreAreaBonus; col.Points != want {
		t.Errorf("points: got %d want %d", col.Points, want)
	}
	if !ce.Grid.Cleared() {
		t.Error("grid should be cleared")
	}
	if ps.Stats().Active != 9*Classic().DestroyParticles {
		t.Errorf("particles: %d", ps.Stats().Active)
	}
}

func TestAreaBlastClipsAtGridEdge(t *testing.T) {
	ce, _ := newEngine(Classic(), full(3, 3))
	corner := ce.Grid.At(0, 0)
	corner.Zone = SpecialZone{Width: BlockWidth, Height: BlockHeight}

	col := ce.Resolve(ballBelow(corner, 15))

	if col == nil || col.Destroyed != 4 {
		t.Fatalf("corner blast: %+v", col)
	}
	if ce.Grid.Remaining() != 5 {
		t.Errorf("remaining: %d", ce.Grid.Remaining())
	}
}

func TestAreaBlastSkipsGapsAndDestroyed(t *testing.T) {
	ce, _ := newEngine(Classic(), [][]bool{{true, false, true}, {true, true, true}})
	ce.Grid.At(1, 2).Hit = true

	if n := ce.DestroyBlockArea(0, 1, 1); n != 4 {
		t.Errorf("destroyed: got %d want 4", n)
	}
	if n := ce.DestroyBlockArea(0, 1, 1); n != 0 {
		t.Errorf("second blast destroyed %d", n)
	}
}

func TestAtMostOneBlockPerResolve(t *testing.T) {
	cfg := Classic()
	ce, _ := newEngine(cfg, full(1, 2))
	left, right := ce.Grid.At(0, 0), ce.Grid.At(0, 1)
	gapX := (left.Bounds.Right() + right.Bounds.X) / 2
	ball := NewBall(NewVec2(gapX, left.Bounds.Bottom()+10), 15)
	ball.Velocity = NewVec2(0, -3)
	ball.Moving = true

	col := ce.Resolve(ball)

	if col == nil || col.Destroyed != 1 {
		t.Fatalf("collision: %+v", col)
	}
	if left.Hit == right.Hit {
		t.Errorf("expected exactly one block destroyed, left=%v right=%v", left.Hit, right.Hit)
	}
}

func TestNoCollisionAwayFromGrid(t *testing.T) {
	ce, _ := newEngine(Classic(), full(2, 3))
	ball := NewBall(NewVec2(500, 770), 15)
	ball.Velocity = NewVec2(0, -3)
	ball.Moving = true

	if col := ce.Resolve(ball); col != nil {
		t.Errorf("unexpected collision %+v", col)
	}

	ball.Position = ce.Grid.At(0, 0).Bounds.Center()
	ball.Moving = false
	if col := ce.Resolve(ball); col != nil {
		t.Errorf("resting ball collided: %+v", col)
	}
}
