package game

// Physics and layout constants shared by every variant.
// Play-field units match the reference canvas of 1000x800.

const (
	FieldWidth  = 1000.0
	FieldHeight = 800.0

	Gravity      = 0.05
	Friction     = 0.99
	BounceFactor = 0.8

	StopSpeed       = 0.1 // below this, past midfield, the turn ends
	TrailMin        = 5
	TrailMax        = 20
	TickRate        = 60
	TransitionTicks = 18 // ~300ms at TickRate

	BlockWidth      = 120.0
	BlockHeight     = 120.0
	BlockOffsetTop  = 50.0
	BlockOffsetLeft = 35.0

	PoolPrewarm = 300
	AreaRadius  = 1 // Chebyshev radius of a special-zone blast

	BallStartGap = 30.0 // launch position distance from the bottom edge

	ScoreAreaBlock = 5
	ScoreAreaBonus = 30
	ScoreDestroy   = 10
	ScorePartial   = 2

	LaunchColor       = "#ffaa00"
	SpecialZoneColor  = "#ff6b6b"
	BallColor         = "#ffffff"
	AimColor          = "#ff4d4d"
	AimLockedColor    = "#4CAF50"
	AimLineLength     = 120.0
	SweepSpeed        = 0.02 // radians per tick
	ChargeSpeed       = 0.02 // charge units per tick
	DefaultAimDegrees = 90.0
)

// BlockColors is the block palette, lightest first. A damaged block moves one
// entry to the right.
var BlockColors = [...]string{
	"#4a6fa5",
	"#3d5c8c",
	"#304973",
	"#24365a",
}

// PowerTable maps power tiers 1..4 to launch impulse magnitudes.
var PowerTable = [...]float64{3, 7, 11, 15}

// LaunchMessages describes each power tier on the launch event.
var LaunchMessages = [...]string{
	"Low power launch...",
	"Medium power launch...",
	"High power launch...",
	"Maximum power launch!",
}

// PowerForTier returns the impulse magnitude for a tier, clamping the tier
// into 1..4.
func PowerForTier(tier int) float64 {
	return PowerTable[clampInt(tier, 1, len(PowerTable))-1]
}

func colorIndex(color string) int {
	for i, c := range BlockColors {
		if c == color {
			return i
		}
	}
	return -1
}
