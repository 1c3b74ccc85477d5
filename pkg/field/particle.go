package field

import "image/color"

// Particle is a single node of the hero network.
//
// Position is not clamped to the field bounds: crossing an edge only turns
// the velocity back toward the interior, so a particle may sit outside the
// bounds for one frame.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Radius  float64
	Opacity float64
	Color   color.RGBA
}

// newParticle places a particle uniformly inside width x height.
func newParticle(cfg *Config, rng Rand, width, height float64) Particle {
	p := Particle{
		X:       rng.Float64() * width,
		Y:       rng.Float64() * height,
		VX:      (rng.Float64()*2 - 1) * cfg.MaxSpeed,
		VY:      (rng.Float64()*2 - 1) * cfg.MaxSpeed,
		Radius:  cfg.MinRadius + rng.Float64()*(cfg.MaxRadius-cfg.MinRadius),
		Opacity: cfg.MinOpacity + rng.Float64()*(cfg.MaxOpacity-cfg.MinOpacity),
	}
	if len(cfg.Palette) > 0 {
		p.Color = cfg.Palette[rng.Intn(len(cfg.Palette))]
	}
	return p
}
