package game

import (
	"fmt"
	"strings"
)

// AimMode selects how angle and power are chosen during the Power phase.
type AimMode string

const (
	AimSlider AimMode = "slider" // discrete angle/tier values set directly
	AimSweep  AimMode = "sweep"  // two-tap sweep-and-lock
)

// Config is a versioned rule set. The game ships two variants, Classic and
// Arcade, which differ in grid sizing, block durability and aiming.
type Config struct {
	Name string

	Width, Height float64
	BallRadius    float64
	BallsPerGame  int
	MoveStep      float64 // horizontal step of a move input
	MoveMargin    float64 // distance kept from the side walls while targeting

	BaseRows, MaxRows int
	BaseCols, MaxCols int
	BlockPadding      float64

	ZoneFraction     float64 // special-zone side as a fraction of the block
	ZoneShrink       float64 // fraction removed per level
	ZoneMinFraction  float64
	MaxHits          int // non-special hits needed to destroy a block
	RefillOnLevelUp  bool
	DestroyParticles int

	AimMode         AimMode
	AimMinDeg       float64
	AimMaxDeg       float64
	TransitionTicks int
	PoolPrewarm     int

	GapBase, GapStep, GapMax    float64 // gap probability per level
	EdgeBase, EdgeStep, EdgeMax float64 // irregular last-row probability per level
}

// Classic is the single-hit, slider-aimed rule set.
func Classic() Config {
	return Config{
		Name:             "classic",
		Width:            FieldWidth,
		Height:           FieldHeight,
		BallRadius:       15,
		BallsPerGame:     3,
		MoveStep:         20,
		MoveMargin:       10,
		BaseRows:         2,
		MaxRows:          5,
		BaseCols:         3,
		MaxCols:          6,
		BlockPadding:     20,
		ZoneFraction:     0.4,
		ZoneShrink:       0.01,
		ZoneMinFraction:  0.25,
		MaxHits:          1,
		RefillOnLevelUp:  true,
		DestroyParticles: 30,
		AimMode:          AimSlider,
		AimMinDeg:        0,
		AimMaxDeg:        180,
		TransitionTicks:  TransitionTicks,
		PoolPrewarm:      PoolPrewarm,
		GapBase:          0.1,
		GapStep:          0.05,
		GapMax:           0.4,
		EdgeBase:         0.05,
		EdgeStep:         0.03,
		EdgeMax:          0.3,
	}
}

// Arcade is the three-hit, sweep-and-lock rule set.
func Arcade() Config {
	c := Classic()
	c.Name = "arcade"
	c.BallRadius = 10
	c.MoveStep = 10
	c.MoveMargin = 40
	c.BaseRows = 3
	c.MaxRows = 8
	c.BaseCols = 5
	c.MaxCols = 10
	c.BlockPadding = 10
	c.ZoneFraction = 0.3
	c.ZoneMinFraction = 0.2
	c.MaxHits = 3
	c.RefillOnLevelUp = false
	c.DestroyParticles = 15
	c.AimMode = AimSweep
	c.AimMinDeg = 15
	c.AimMaxDeg = 165
	return c
}

// ConfigByName resolves a variant name. Matching is case-insensitive.
func ConfigByName(name string) (Config, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "classic":
		return Classic(), nil
	case "arcade", "":
		return Arcade(), nil
	}
	return Config{}, fmt.Errorf("unknown game variant %q", name)
}

// Rows returns the grid row count for a level. The grid never extends
// into the launch area.
func (c Config) Rows(level int) int {
	return min(c.BaseRows+level/2, c.MaxRows, c.fitRows())
}

// Cols returns the grid column count for a level, capped to the field width.
func (c Config) Cols(level int) int {
	return min(c.BaseCols+level/3, c.MaxCols, c.fitCols())
}

func (c Config) fitRows() int {
	bottom := c.Height - BallStartGap - 2*c.BallRadius
	return max(1, int((bottom-BlockOffsetTop+c.BlockPadding)/c.PitchY()))
}

func (c Config) fitCols() int {
	return max(1, int((c.Width-2*BlockOffsetLeft+c.BlockPadding)/c.PitchX()))
}

// GapProbability is the chance that any cell is left empty.
func (c Config) GapProbability(level int) float64 {
	return min(c.GapBase+float64(level)*c.GapStep, c.GapMax)
}

// EdgeProbability is the extra chance that a last-row cell is left empty.
func (c Config) EdgeProbability(level int) float64 {
	return min(c.EdgeBase+float64(level)*c.EdgeStep, c.EdgeMax)
}

// ZoneSize returns the special-zone side fraction for a level.
func (c Config) ZoneSize(level int) float64 {
	return max(c.ZoneFraction-float64(level-1)*c.ZoneShrink, c.ZoneMinFraction)
}

// PitchX is the horizontal distance between neighbouring cell origins.
func (c Config) PitchX() float64 { return BlockWidth + c.BlockPadding }

// PitchY is the vertical distance between neighbouring cell origins.
func (c Config) PitchY() float64 { return BlockHeight + c.BlockPadding }

// LaunchPosition is where the ball rests at the start of every turn.
func (c Config) LaunchPosition() Vec2 {
	return Vec2{X: c.Width / 2, Y: c.Height - BallStartGap}
}
