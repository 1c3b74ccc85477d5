package fx

import (
	"image/color"
	"time"
)

// GlowConfig describes the soft light that follows the pointer.
type GlowConfig struct {
	Radius   float64 // outer radius of the glow disc
	Falloff  float64 // fraction of Radius where the glow reaches zero
	Opacity  float64 // opacity at the centre
	Color    color.RGBA
	Steps    int           // concentric layers approximating the radial gradient
	Fade     time.Duration // show/hide transition
	MinWidth int           // hidden on viewports narrower than this
}

// DefaultGlowConfig returns a 300px glow in rgba(0,212,255,0.15) that fades
// out at 70% of its radius and is hidden below 768px.
func DefaultGlowConfig() GlowConfig {
	return GlowConfig{
		Radius:   150,
		Falloff:  0.7,
		Opacity:  0.15,
		Color:    color.RGBA{R: 0x00, G: 0xd4, B: 0xff, A: 0xff},
		Steps:    12,
		Fade:     300 * time.Millisecond,
		MinWidth: 768,
	}
}

// GlowCursor follows the pointer and fades in and out as the pointer enters
// and leaves the window.
type GlowCursor struct {
	cfg     GlowConfig
	x, y    float64
	present bool

	// 显隐过渡进度，0 为完全隐藏，1 为完全显示
	fade float64
}

// NewGlowCursor creates a hidden glow.
func NewGlowCursor(cfg GlowConfig) *GlowCursor {
	if cfg.Steps <= 0 {
		cfg.Steps = 1
	}
	return &GlowCursor{cfg: cfg}
}

// Move records the pointer. While the pointer is absent the glow keeps its
// last position so it fades out in place.
func (g *GlowCursor) Move(x, y float64, present bool) {
	g.present = present
	if present {
		g.x, g.y = x, y
	}
}

// Update advances the fade transition by dt.
func (g *GlowCursor) Update(dt time.Duration) {
	step := 1.0
	if g.cfg.Fade > 0 {
		step = float64(dt) / float64(g.cfg.Fade)
	}
	if g.present {
		g.fade = Clamp01(g.fade + step)
	} else {
		g.fade = Clamp01(g.fade - step)
	}
}

// Position returns the glow centre.
func (g *GlowCursor) Position() (x, y float64) {
	return g.x, g.y
}

// Opacity returns the current centre opacity.
func (g *GlowCursor) Opacity() float64 {
	return g.cfg.Opacity * EaseOutCubic(g.fade)
}

// Visible reports whether the glow draws anything on a viewport of the given
// width.
func (g *GlowCursor) Visible(viewportWidth int) bool {
	return viewportWidth >= g.cfg.MinWidth && g.Opacity() > 0
}

// Draw renders the glow as concentric discs. Layer opacities add up towards
// the centre, approximating a linear radial gradient.
func (g *GlowCursor) Draw(s Surface, viewportWidth int) {
	if !g.Visible(viewportWidth) {
		return
	}
	outer := g.cfg.Radius * g.cfg.Falloff
	layer := g.Opacity() / float64(g.cfg.Steps)
	for i := g.cfg.Steps; i >= 1; i-- {
		radius := outer * float64(i) / float64(g.cfg.Steps)
		s.FillCircle(g.x, g.y, radius, g.cfg.Color, layer)
	}
}
