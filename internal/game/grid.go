package game

import "math/rand/v2"

// SpecialZone is a sub-rectangle of a block, relative to the block origin.
type SpecialZone struct {
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// Block is a destructible grid cell.
type Block struct {
	Row      int         `json:"row"`
	Col      int         `json:"col"`
	Bounds   Rect        `json:"bounds"`
	Color    string      `json:"color"`
	Zone     SpecialZone `json:"special_zone"`
	Hit      bool        `json:"hit"` // destroyed
	HitCount int         `json:"hit_count"`
	MaxHits  int         `json:"max_hits"`
}

// ZoneRect returns the special zone in play-field coordinates.
func (b *Block) ZoneRect() Rect {
	return Rect{X: b.Bounds.X + b.Zone.OffsetX, Y: b.Bounds.Y + b.Zone.OffsetY, W: b.Zone.Width, H: b.Zone.Height}
}

// Damage registers one non-special hit. It reports whether the block was
// destroyed by it. A surviving block darkens one palette step.
func (b *Block) Damage() bool {
	b.HitCount++
	if b.HitCount >= b.MaxHits {
		b.Hit = true
		return true
	}
	if i := colorIndex(b.Color); i >= 0 && i < len(BlockColors)-1 {
		b.Color = BlockColors[i+1]
	}
	return false
}

// Grid is a sparse row-major block layout. Nil cells are gaps.
type Grid struct {
	Cells [][]*Block
	Level int
	pitch Vec2
}

// GenerateGrid builds the layout for a level. Dimensions, gap and edge
// probabilities grow with the level up to the variant's caps.
func GenerateGrid(cfg Config, level int, rng *rand.Rand) *Grid {
	rows, cols := cfg.Rows(level), cfg.Cols(level)
	gapP, edgeP := cfg.GapProbability(level), cfg.EdgeProbability(level)
	zoneFrac := cfg.ZoneSize(level)

	g := &Grid{
		Cells: make([][]*Block, rows),
		Level: level,
		pitch: Vec2{X: cfg.PitchX(), Y: cfg.PitchY()},
	}
	for r := 0; r < rows; r++ {
		g.Cells[r] = make([]*Block, cols)
		for c := 0; c < cols; c++ {
			if rng.Float64() < gapP || (r == rows-1 && rng.Float64() < edgeP) {
				continue
			}
			g.Cells[r][c] = newBlock(cfg, r, c, zoneFrac, rng)
		}
	}
	// A level always has at least one block to clear.
	if g.Remaining() == 0 {
		r, c := rng.IntN(rows), rng.IntN(cols)
		g.Cells[r][c] = newBlock(cfg, r, c, zoneFrac, rng)
	}
	return g
}

// NewGrid builds a grid from an explicit layout, where false marks a gap.
func NewGrid(cfg Config, level int, layout [][]bool, rng *rand.Rand) *Grid {
	g := &Grid{
		Cells: make([][]*Block, len(layout)),
		Level: level,
		pitch: Vec2{X: cfg.PitchX(), Y: cfg.PitchY()},
	}
	zoneFrac := cfg.ZoneSize(level)
	for r, row := range layout {
		g.Cells[r] = make([]*Block, len(row))
		for c, keep := range row {
			if keep {
				g.Cells[r][c] = newBlock(cfg, r, c, zoneFrac, rng)
			}
		}
	}
	return g
}

func newBlock(cfg Config, r, c int, zoneFrac float64, rng *rand.Rand) *Block {
	zone := SpecialZone{
		Width:   BlockWidth * zoneFrac,
		Height:  BlockHeight * zoneFrac,
		OffsetX: BlockWidth * rng.Float64(),
		OffsetY: BlockHeight * rng.Float64(),
	}
	if zone.OffsetX+zone.Width > BlockWidth {
		zone.OffsetX = BlockWidth - zone.Width
	}
	if zone.OffsetY+zone.Height > BlockHeight {
		zone.OffsetY = BlockHeight - zone.Height
	}

	return &Block{
		Row: r,
		Col: c,
		Bounds: Rect{
			X: float64(c)*cfg.PitchX() + BlockOffsetLeft,
			Y: float64(r)*cfg.PitchY() + BlockOffsetTop,
			W: BlockWidth,
			H: BlockHeight,
		},
		Color:   BlockColors[rng.IntN(len(BlockColors))],
		Zone:    zone,
		MaxHits: max(cfg.MaxHits, 1),
	}
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return len(g.Cells) }

// Cols returns the number of columns in row r, or 0 if r is out of range.
func (g *Grid) Cols(r int) int {
	if r < 0 || r >= len(g.Cells) {
		return 0
	}
	return len(g.Cells[r])
}

// At returns the block at (r, c), or nil for gaps and out-of-range cells.
func (g *Grid) At(r, c int) *Block {
	if c < 0 || c >= g.Cols(r) {
		return nil
	}
	return g.Cells[r][c]
}

// Bounds is the rectangle covering every cell of the layout, gaps included.
func (g *Grid) Bounds() Rect {
	rows, cols := g.Rows(), 0
	for r := range g.Cells {
		cols = max(cols, len(g.Cells[r]))
	}
	if rows == 0 || cols == 0 {
		return Rect{X: BlockOffsetLeft, Y: BlockOffsetTop}
	}
	return Rect{
		X: BlockOffsetLeft,
		Y: BlockOffsetTop,
		W: float64(cols-1)*g.pitch.X + BlockWidth,
		H: float64(rows-1)*g.pitch.Y + BlockHeight,
	}
}

// Cleared reports whether every non-gap cell has been destroyed.
func (g *Grid) Cleared() bool {
	for _, row := range g.Cells {
		for _, b := range row {
			if b != nil && !b.Hit {
				return false
			}
		}
	}
	return true
}

// Remaining counts the live blocks.
func (g *Grid) Remaining() int {
	n := 0
	for _, row := range g.Cells {
		for _, b := range row {
			if b != nil && !b.Hit {
				n++
			}
		}
	}
	return n
}

// Each calls fn for every non-gap cell in row-major order.
func (g *Grid) Each(fn func(*Block)) {
	for _, row := range g.Cells {
		for _, b := range row {
			if b != nil {
				fn(b)
			}
		}
	}
}
