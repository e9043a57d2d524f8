package game

import (
	"math"
	"math/rand/v2"
)

// Particle is a short-lived visual effect record.
type Particle struct {
	Pos    Vec2
	Vel    Vec2
	Radius float64
	Color  string
	Alpha  float64
	Age    float64
	MaxAge float64
}

// Particles owns the particle pool and the emitters that feed it.
type Particles struct {
	pool *Pool[Particle]
	rng  *rand.Rand
}

// NewParticles creates a particle system pre-warmed with size records.
func NewParticles(size int, rng *rand.Rand) *Particles {
	return &Particles{
		pool: NewPool(size, func() *Particle { return &Particle{} }),
		rng:  rng,
	}
}

// Emit hands out a particle initialised with the given values.
func (ps *Particles) Emit(pos, vel Vec2, radius float64, color string, maxAge float64) *Particle {
	p := ps.pool.Acquire()
	*p = Particle{Pos: pos, Vel: vel, Radius: radius, Color: color, Alpha: 1, MaxAge: maxAge}
	return p
}

// Burst emits count particles radiating from center in random directions.
func (ps *Particles) Burst(center Vec2, color string, count int) {
	for i := 0; i < count; i++ {
		angle := ps.rng.Float64() * math.Pi * 2
		speed := 0.5 + ps.rng.Float64()*2
		vel := Vec2{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed}
		ps.Emit(center, vel, 1+ps.rng.Float64()*3, color, 20+ps.rng.Float64()*20)
	}
}

// Exhaust emits the launch plume: particles thrown opposite to the launch
// direction with a slight spread.
func (ps *Particles) Exhaust(origin Vec2, angle, power float64) {
	count := int(math.Floor(power/2)) + 10
	for i := 0; i < count; i++ {
		spread := angle + (ps.rng.Float64()*0.5 - 0.25)
		pp := power * 0.2 * (0.8 + ps.rng.Float64()*0.4)
		vel := Vec2{X: -pp * math.Cos(spread) * 0.5, Y: pp * math.Sin(spread) * 0.5}
		ps.Emit(origin, vel, 1+ps.rng.Float64()*2, LaunchColor, 10+ps.rng.Float64()*10)
	}
}

// Step advances every active particle one tick and releases the expired ones.
func (ps *Particles) Step() {
	ps.pool.Each(func(p *Particle) {
		p.Pos = p.Pos.Plus(p.Vel)
		p.Age++
		p.Alpha = 1 - p.Age/p.MaxAge
		if p.Age >= p.MaxAge {
			ps.pool.Release(p)
		}
	})
}

// Render draws every active particle faded by its age.
func (ps *Particles) Render(s Surface) {
	ps.pool.Each(func(p *Particle) {
		s.FillCircle(p.Pos.X, p.Pos.Y, p.Radius, p.Color, max(0, 1-p.Age/p.MaxAge))
	})
}

// Clear releases every particle.
func (ps *Particles) Clear() {
	ps.pool.ReleaseAll()
}

func (ps *Particles) Stats() PoolStats {
	return ps.pool.Stats()
}

// ParticleView is the render-facing projection of a particle.
type ParticleView struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Color  string  `json:"color"`
	Alpha  float64 `json:"alpha"`
}

// Views returns the active particles in render order.
func (ps *Particles) Views() []ParticleView {
	out := make([]ParticleView, 0, ps.pool.ActiveCount())
	ps.pool.Each(func(p *Particle) {
		out = append(out, ParticleView{X: p.Pos.X, Y: p.Pos.Y, Radius: p.Radius, Color: p.Color, Alpha: max(0, p.Alpha)})
	})
	return out
}
