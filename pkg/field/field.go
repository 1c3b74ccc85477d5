// Package field implements the hero particle network: a batch of drifting
// particles pushed away by the pointer, bounced off the edges, and joined by
// fading lines when close to each other.
//
// A Field owns all of its state (particles, pointer, loop handle). Drawing,
// frame scheduling and randomness are injected, so several fields can run side
// by side and tests can step frames deterministically.
package field

import (
	"image/color"
	"math"

	"github.com/decker502/folio/pkg/frame"
)

// Surface is the 2D drawing target of a field.
type Surface interface {
	Clear()
	FillCircle(x, y, radius float64, clr color.RGBA, opacity float64)
	StrokeLine(x1, y1, x2, y2, width float64, clr color.RGBA, opacity float64)
}

// Rand is the randomness source used for particle placement.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Field is a particle network bound to one drawing surface.
type Field struct {
	cfg     Config
	surface Surface
	sched   frame.Scheduler
	rng     Rand

	particles     []Particle
	width, height float64

	// 指针坐标，NaN 表示指针不在画布上
	mouseX, mouseY float64

	running bool
	handle  frame.Handle
}

// New creates an empty, inactive field. Call Initialize before activating it.
func New(cfg Config, surface Surface, sched frame.Scheduler, rng Rand) *Field {
	return &Field{
		cfg:     cfg,
		surface: surface,
		sched:   sched,
		rng:     rng,
		mouseX:  math.NaN(),
		mouseY:  math.NaN(),
	}
}

// MaxParticles caps the batch size. The connection pass is quadratic, so a
// huge surface would otherwise stall every frame or exhaust memory.
const MaxParticles = 4000

// Initialize allocates floor(width*height/DensityDivisor) particles, at most
// MaxParticles, placed at random inside the bounds. Non-positive or NaN
// dimensions give an empty field.
func (f *Field) Initialize(width, height float64) {
	f.width, f.height = width, height
	f.particles = f.particles[:0]

	if !validDimension(width) || !validDimension(height) {
		f.particles = nil
		return
	}

	// 先在浮点域比较，避免超大面积转换 int 时溢出
	count := MaxParticles
	if n := math.Floor(width * height / f.cfg.DensityDivisor); n < MaxParticles {
		count = int(n)
	}
	if cap(f.particles) < count {
		f.particles = make([]Particle, 0, count)
	}
	for i := 0; i < count; i++ {
		f.particles = append(f.particles, newParticle(&f.cfg, f.rng, width, height))
	}
}

// Resize discards the current batch and creates a new one for the new size.
func (f *Field) Resize(width, height float64) {
	f.Initialize(width, height)
}

// OnPointerMove records the pointer position for the next Tick.
func (f *Field) OnPointerMove(x, y float64) {
	f.mouseX, f.mouseY = x, y
}

// ClearPointer disables repulsion until the next OnPointerMove.
func (f *Field) ClearPointer() {
	f.mouseX, f.mouseY = math.NaN(), math.NaN()
}

// Tick advances every particle by one frame and redraws the surface.
//
// The connection pass checks every unordered pair, so its cost grows with the
// square of the particle count. The density rule and MaxParticles keep that
// count bounded.
func (f *Field) Tick() {
	if len(f.particles) == 0 {
		return
	}

	f.surface.Clear()

	for i := range f.particles {
		p := &f.particles[i]
		f.update(p)
		if finite(p.X, p.Y, p.Radius) {
			f.surface.FillCircle(p.X, p.Y, p.Radius, p.Color, p.Opacity)
		}
	}

	f.drawConnections()
}

// update integrates one particle: velocity, pointer repulsion, edge bounce.
func (f *Field) update(p *Particle) {
	p.X += p.VX
	p.Y += p.VY

	if finite(f.mouseX, f.mouseY) {
		dx := f.mouseX - p.X
		dy := f.mouseY - p.Y
		distance := math.Sqrt(dx*dx + dy*dy)
		if force := f.repulsionForce(distance); force > 0 {
			p.X -= dx * force
			p.Y -= dy * force
		}
	}

	// 反射边界：只翻转速度方向，不修正坐标
	if p.X < 0 {
		p.VX = math.Abs(p.VX)
	} else if p.X > f.width {
		p.VX = -math.Abs(p.VX)
	}
	if p.Y < 0 {
		p.VY = math.Abs(p.VY)
	} else if p.Y > f.height {
		p.VY = -math.Abs(p.VY)
	}
}

func (f *Field) drawConnections() {
	radius := f.cfg.ConnectionRadius
	if radius <= 0 {
		return
	}

	for i := 0; i < len(f.particles); i++ {
		a := &f.particles[i]
		for j := i + 1; j < len(f.particles); j++ {
			b := &f.particles[j]
			dx := a.X - b.X
			dy := a.Y - b.Y
			distance := math.Sqrt(dx*dx + dy*dy)
			if distance >= radius || !finite(distance) {
				continue
			}
			opacity := (1 - distance/radius) * f.cfg.ConnectionOpacity
			f.surface.StrokeLine(a.X, a.Y, b.X, b.Y, f.cfg.LineWidth, f.cfg.LineColor, opacity)
		}
	}
}

// SetActive is the visibility callback. Activating starts the frame loop
// unless it is already running; deactivating cancels the pending frame.
func (f *Field) SetActive(active bool) {
	if active {
		if f.running {
			return
		}
		f.running = true
		f.handle = f.sched.Request(f.frame)
		return
	}

	if !f.running {
		return
	}
	f.sched.Cancel(f.handle)
	f.running = false
	f.handle = 0
}

// frame is the scheduled callback: one Tick, then request the next frame.
func (f *Field) frame() {
	if !f.running {
		return
	}
	f.Tick()
	f.handle = f.sched.Request(f.frame)
}

// Active reports whether the frame loop is running.
func (f *Field) Active() bool {
	return f.running
}

// Particles returns the live particle batch. Callers must not keep it across
// a Resize.
func (f *Field) Particles() []Particle {
	return f.particles
}

// Len returns the number of particles.
func (f *Field) Len() int {
	return len(f.particles)
}

// Size returns the current field bounds.
func (f *Field) Size() (width, height float64) {
	return f.width, f.height
}

// Pointer returns the stored pointer position; ok is false when no pointer
// is over the field.
func (f *Field) Pointer() (x, y float64, ok bool) {
	return f.mouseX, f.mouseY, finite(f.mouseX, f.mouseY)
}

func (f *Field) repulsionForce(distance float64) float64 {
	return RepulsionForce(distance, f.cfg.RepulsionRadius, f.cfg.RepulsionStrength)
}

// RepulsionForce returns the push factor applied to a particle at the given
// distance from the pointer: (radius-distance)/radius*strength inside the
// radius, zero outside it or for a NaN distance.
func RepulsionForce(distance, radius, strength float64) float64 {
	if radius <= 0 || !finite(distance) || distance < 0 || distance >= radius {
		return 0
	}
	return (radius - distance) / radius * strength
}

func validDimension(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
