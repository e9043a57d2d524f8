package game

import (
	"math/rand/v2"
	"testing"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestGridDimensionsGrowWithLevel(t *testing.T) {
	tests := []struct {
		cfg        Config
		level      int
		rows, cols int
	}{
		{Classic(), 1, 2, 3},
		{Classic(), 3, 3, 4},
		{Classic(), 20, 5, 6},
		{Arcade(), 1, 3, 5},
		{Arcade(), 2, 4, 5},
		{Arcade(), 6, 5, 7},
		{Arcade(), 30, 5, 7},
	}
	for _, tt := range tests {
		g := GenerateGrid(tt.cfg, tt.level, testRand())
		if g.Rows() != tt.rows {
			t.Errorf("%s level %d: rows %d want %d", tt.cfg.Name, tt.level, g.Rows(), tt.rows)
		}
		for r := 0; r < g.Rows(); r++ {
			if g.Cols(r) != tt.cols {
				t.Errorf("%s level %d row %d: cols %d want %d", tt.cfg.Name, tt.level, r, g.Cols(r), tt.cols)
			}
		}
	}
}

func TestGeneratedBlocksAreWellFormed(t *testing.T) {
	for _, cfg := range []Config{Classic(), Arcade()} {
		for level := 1; level <= 10; level++ {
			g := GenerateGrid(cfg, level, testRand())
			field := Rect{W: cfg.Width, H: cfg.Height}
			g.Each(func(b *Block) {
				if !b.Bounds.Contains(b.ZoneRect()) {
					t.Errorf("%s L%d (%d,%d): zone %+v outside block %+v", cfg.Name, level, b.Row, b.Col, b.ZoneRect(), b.Bounds)
				}
				if !field.Contains(b.Bounds) {
					t.Errorf("%s L%d (%d,%d): block %+v outside field", cfg.Name, level, b.Row, b.Col, b.Bounds)
				}
				if b.Hit || b.HitCount != 0 || b.MaxHits != cfg.MaxHits {
					t.Errorf("%s L%d (%d,%d): fresh block state %+v", cfg.Name, level, b.Row, b.Col, b)
				}
				if colorIndex(b.Color) < 0 {
					t.Errorf("block colour %q not in palette", b.Color)
				}
			})
		}
	}
}

func TestZoneShrinksWithLevelToFloor(t *testing.T) {
	cfg := Classic()
	if got := cfg.ZoneSize(1); got != cfg.ZoneFraction {
		t.Errorf("level 1 zone: %.3f", got)
	}
	if cfg.ZoneSize(5) >= cfg.ZoneSize(1) {
		t.Errorf("zone did not shrink")
	}
	if got := cfg.ZoneSize(100); got != cfg.ZoneMinFraction {
		t.Errorf("zone floor: got %.3f want %.3f", got, cfg.ZoneMinFraction)
	}
}

func TestNewGridHonoursLayout(t *testing.T) {
	g := NewGrid(Classic(), 1, [][]bool{{true, false, true}, {false, true}}, testRand())

	if g.At(0, 1) != nil || g.At(1, 0) != nil {
		t.Error("gap cells should be nil")
	}
	if g.At(0, 0) == nil || g.At(0, 2) == nil || g.At(1, 1) == nil {
		t.Error("filled cells missing")
	}
	if g.At(5, 5) != nil || g.At(-1, 0) != nil || g.At(0, -1) != nil {
		t.Error("out-of-range lookups should be nil")
	}
	if g.Remaining() != 3 {
		t.Errorf("remaining: %d", g.Remaining())
	}
}

func TestGridClearedIgnoresGaps(t *testing.T) {
	g := NewGrid(Classic(), 1, [][]bool{{true, false}, {false, true}}, testRand())
	if g.Cleared() {
		t.Fatal("fresh grid reported cleared")
	}
	g.Each(func(b *Block) { b.Hit = true })
	if !g.Cleared() {
		t.Error("grid with every block destroyed not cleared")
	}

	empty := NewGrid(Classic(), 1, nil, testRand())
	if !empty.Cleared() {
		t.Error("empty grid should be cleared")
	}
}

func TestGridBoundsCoverLayout(t *testing.T) {
	cfg := Classic()
	g := NewGrid(cfg, 1, [][]bool{{true, true, true}, {true, false, false}}, testRand())
	b := g.Bounds()

	want := Rect{
		X: BlockOffsetLeft,
		Y: BlockOffsetTop,
		W: 2*cfg.PitchX() + BlockWidth,
		H: cfg.PitchY() + BlockHeight,
	}
	if b != want {
		t.Errorf("bounds: got %+v want %+v", b, want)
	}
	g.Each(func(blk *Block) {
		if !b.Contains(blk.Bounds) {
			t.Errorf("block %+v outside grid bounds", blk.Bounds)
		}
	})
}

func TestDamageDarkensUntilDestroyed(t *testing.T) {
	b := &Block{Color: BlockColors[0], MaxHits: 3}

	if b.Damage() {
		t.Fatal("destroyed on first hit")
	}
	if b.Color != BlockColors[1] {
		t.Errorf("colour after one hit: %s", b.Color)
	}
	if b.Damage() {
		t.Fatal("destroyed on second hit")
	}
	if !b.Damage() || !b.Hit {
		t.Error("not destroyed on third hit")
	}
	if b.HitCount != 3 {
		t.Errorf("hit count: %d", b.HitCount)
	}
}

func TestDamageKeepsDarkestColour(t *testing.T) {
	last := BlockColors[len(BlockColors)-1]
	b := &Block{Color: last, MaxHits: 5}
	b.Damage()
	if b.Color != last {
		t.Errorf("darkest colour changed to %s", b.Color)
	}
}
