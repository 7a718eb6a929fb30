package object

import (
	"math"
	"math/rand"
	"sync"

	"github.com/tomz197/planetwars/internal/draw"
)

// Spawner accepts new effects created during an update.
type Spawner interface {
	Spawn(e Effect)
}

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect.
type Particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay (1.0 = no drag)
	Color       draw.Color
	Fade        bool // Whether to fade out over lifetime
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64, color draw.Color) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.95
	p.Color = color
	p.Fade = true
	return p
}

// Release returns the particle to the pool for reuse.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnBurst creates particles in a circular burst pattern, used when a
// planet changes hands or repels an attack.
func SpawnBurst(x, y float64, count int, speed, lifetime float64, color draw.Color, spawner Spawner) {
	if spawner == nil {
		return
	}

	for i := 0; i < count; i++ {
		angle := rand.Float64() * 2 * math.Pi
		// Speed varies between 50% and 150%
		spd := speed * (0.5 + rand.Float64())
		life := lifetime * (0.5 + rand.Float64()*0.5)

		vx := math.Cos(angle) * spd
		vy := math.Sin(angle) * spd

		spawner.Spawn(NewParticle(x, y, vx, vy, life, color))
	}
}

// SpawnTrail drops a couple of slow particles behind a moving fleet.
func SpawnTrail(x, y, vx, vy float64, color draw.Color, spawner Spawner) {
	if spawner == nil {
		return
	}

	heading := math.Atan2(vy, vx)
	count := 1 + rand.Intn(2)
	for i := 0; i < count; i++ {
		angle := heading + math.Pi + (rand.Float64()-0.5)*0.5
		speed := 20.0 + rand.Float64()*10.0
		lifetime := 0.2 + rand.Float64()*0.2

		p := NewParticle(x, y, math.Cos(angle)*speed, math.Sin(angle)*speed, lifetime, color)
		p.Drag = 0.85
		spawner.Spawn(p)
	}
}

// Update moves the particle and checks lifetime.
func (p *Particle) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()

	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true, nil
	}

	dragFactor := math.Pow(p.Drag, dt*60) // Normalize drag to ~60fps
	p.VX *= dragFactor
	p.VY *= dragFactor

	p.X += p.VX * dt
	p.Y += p.VY * dt

	return false, nil
}

// Draw renders the particle as a pixel on the canvas.
func (p *Particle) Draw(ctx DrawContext) error {
	// Skip faded particles (< 25% lifetime)
	if p.Fade && p.MaxLifetime > 0 && p.Lifetime/p.MaxLifetime < 0.25 {
		return nil
	}
	ctx.Canvas.SetColor(p.Color)
	ctx.Canvas.SetFloat(p.X, p.Y)
	return nil
}
