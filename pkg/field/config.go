package field

import (
	"fmt"
	"image/color"
)

// Config holds the tunables of a particle field.
type Config struct {
	// DensityDivisor: one particle per DensityDivisor square pixels
	DensityDivisor float64

	// Pointer repulsion
	RepulsionRadius   float64
	RepulsionStrength float64

	// Connection lines between nearby particles
	ConnectionRadius  float64
	ConnectionOpacity float64 // line opacity at distance 0
	LineWidth         float64
	LineColor         color.RGBA

	// Particle parameter ranges, [min, max)
	MaxSpeed   float64 // per-axis speed in [-MaxSpeed, MaxSpeed)
	MinRadius  float64
	MaxRadius  float64
	MinOpacity float64
	MaxOpacity float64

	Palette []color.RGBA
}

// DefaultConfig returns the hero network settings.
func DefaultConfig() Config {
	return Config{
		DensityDivisor:    15000,
		RepulsionRadius:   150,
		RepulsionStrength: 0.02,
		ConnectionRadius:  120,
		ConnectionOpacity: 0.3,
		LineWidth:         0.5,
		LineColor:         color.RGBA{R: 0x00, G: 0xd4, B: 0xff, A: 0xff},
		MaxSpeed:          0.25,
		MinRadius:         1,
		MaxRadius:         3,
		MinOpacity:        0.2,
		MaxOpacity:        0.7,
		Palette: []color.RGBA{
			{R: 0x00, G: 0xd4, B: 0xff, A: 0xff}, // #00d4ff
			{R: 0x00, G: 0xff, B: 0x88, A: 0xff}, // #00ff88
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.DensityDivisor <= 0 {
		return fmt.Errorf("densityDivisor must be > 0, got %v", c.DensityDivisor)
	}
	if c.RepulsionRadius < 0 {
		return fmt.Errorf("repulsionRadius must be >= 0, got %v", c.RepulsionRadius)
	}
	if c.ConnectionRadius < 0 {
		return fmt.Errorf("connectionRadius must be >= 0, got %v", c.ConnectionRadius)
	}
	if c.ConnectionOpacity < 0 || c.ConnectionOpacity > 1 {
		return fmt.Errorf("connectionOpacity must be between 0 and 1, got %v", c.ConnectionOpacity)
	}
	if c.MinRadius <= 0 || c.MaxRadius < c.MinRadius {
		return fmt.Errorf("invalid radius range [%v, %v)", c.MinRadius, c.MaxRadius)
	}
	if c.MinOpacity < 0 || c.MaxOpacity > 1 || c.MaxOpacity < c.MinOpacity {
		return fmt.Errorf("invalid opacity range [%v, %v)", c.MinOpacity, c.MaxOpacity)
	}
	if c.MaxSpeed < 0 {
		return fmt.Errorf("maxSpeed must be >= 0, got %v", c.MaxSpeed)
	}
	if len(c.Palette) == 0 {
		return fmt.Errorf("palette cannot be empty")
	}
	return nil
}
