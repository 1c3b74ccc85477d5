// Package fx holds the small page effects around the hero: click ripples and
// count-up stat counters.
package fx

import (
	"image/color"
	"time"
)

// Surface is the drawing target for ripples.
type Surface interface {
	FillCircle(x, y, radius float64, clr color.RGBA, opacity float64)
}

// RippleConfig describes a click ripple.
type RippleConfig struct {
	MaxRadius float64
	Duration  time.Duration
	Opacity   float64 // opacity at spawn, fades to 0
	Color     color.RGBA
}

// DefaultRippleConfig returns the button ripple: 300px wide, 0.6s, white at 0.4.
func DefaultRippleConfig() RippleConfig {
	return RippleConfig{
		MaxRadius: 150,
		Duration:  600 * time.Millisecond,
		Opacity:   0.4,
		Color:     color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
}

type ripple struct {
	x, y float64
	age  time.Duration
}

// Ripples is the set of live ripples.
type Ripples struct {
	cfg  RippleConfig
	live []ripple
}

// NewRipples creates an empty ripple set.
func NewRipples(cfg RippleConfig) *Ripples {
	return &Ripples{cfg: cfg}
}

// Spawn starts a ripple at (x, y).
func (r *Ripples) Spawn(x, y float64) {
	r.live = append(r.live, ripple{x: x, y: y})
}

// Update ages every ripple and drops finished ones.
func (r *Ripples) Update(dt time.Duration) {
	alive := r.live[:0]
	for _, rp := range r.live {
		rp.age += dt
		if rp.age < r.cfg.Duration {
			alive = append(alive, rp)
		}
	}
	r.live = alive
}

// Draw renders every ripple.
func (r *Ripples) Draw(s Surface) {
	for _, rp := range r.live {
		radius, opacity := r.shape(rp)
		if radius <= 0 || opacity <= 0 {
			continue
		}
		s.FillCircle(rp.x, rp.y, radius, r.cfg.Color, opacity)
	}
}

// shape returns the radius and opacity of a ripple at its current age.
func (r *Ripples) shape(rp ripple) (radius, opacity float64) {
	if r.cfg.Duration <= 0 {
		return 0, 0
	}
	t := EaseOutQuad(float64(rp.age) / float64(r.cfg.Duration))
	return Lerp(0, r.cfg.MaxRadius, t), Lerp(r.cfg.Opacity, 0, t)
}

// Len returns the number of live ripples.
func (r *Ripples) Len() int {
	return len(r.live)
}
