package game

import "math"

// Vec2 is a 2D vector in play-field units. The vertical axis grows downward.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Plus(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Times(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

// FromAngle returns a vector of the given magnitude pointing at theta radians,
// measured counter-clockwise from the positive x axis as seen on screen.
func FromAngle(theta, magnitude float64) Vec2 {
	return Vec2{X: magnitude * math.Cos(theta), Y: -magnitude * math.Sin(theta)}
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// epsilon absorbs rounding in layout arithmetic.
const epsilon = 1e-9

// Contains reports whether o lies entirely inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X-epsilon && o.Y >= r.Y-epsilon &&
		o.Right() <= r.Right()+epsilon && o.Bottom() <= r.Bottom()+epsilon
}

// OverlapsCircleBox reports whether the bounding box of a circle strictly
// overlaps r.
func (r Rect) OverlapsCircleBox(c Vec2, radius float64) bool {
	return c.X+radius > r.X && c.X-radius < r.Right() &&
		c.Y+radius > r.Y && c.Y-radius < r.Bottom()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}

func radToDeg(r float64) float64 {
	return r * 180 / math.Pi
}
