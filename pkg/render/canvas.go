// Package render adapts ebiten images to the drawing surfaces used by the
// effect packages.
package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Canvas is a retained offscreen image. Its content survives between frames,
// so a paused animation keeps showing its last frame.
type Canvas struct {
	image         *ebiten.Image
	width, height int
}

// NewCanvas creates a canvas of the given size. Non-positive sizes give an
// empty canvas that ignores every draw call.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize replaces the backing image. The previous content is dropped.
func (c *Canvas) Resize(width, height int) {
	if c.image != nil {
		c.image.Deallocate()
		c.image = nil
	}
	c.width, c.height = width, height
	if width > 0 && height > 0 {
		c.image = ebiten.NewImage(width, height)
	}
}

// Size returns the canvas size in pixels.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Image returns the backing image, nil for an empty canvas.
func (c *Canvas) Image() *ebiten.Image {
	return c.image
}

// Clear erases the canvas.
func (c *Canvas) Clear() {
	if c.image == nil {
		return
	}
	c.image.Clear()
}

// FillCircle draws a filled, antialiased circle.
func (c *Canvas) FillCircle(x, y, radius float64, clr color.RGBA, opacity float64) {
	fillCircle(c.image, x, y, radius, clr, opacity)
}

// StrokeLine draws an antialiased line segment.
func (c *Canvas) StrokeLine(x1, y1, x2, y2, width float64, clr color.RGBA, opacity float64) {
	strokeLine(c.image, x1, y1, x2, y2, width, clr, opacity)
}

// Overlay draws directly onto an image it does not own, usually the screen
// passed to Draw. Nothing is retained between frames.
type Overlay struct {
	Target *ebiten.Image
}

// FillCircle draws a filled, antialiased circle.
func (o Overlay) FillCircle(x, y, radius float64, clr color.RGBA, opacity float64) {
	fillCircle(o.Target, x, y, radius, clr, opacity)
}

// StrokeLine draws an antialiased line segment.
func (o Overlay) StrokeLine(x1, y1, x2, y2, width float64, clr color.RGBA, opacity float64) {
	strokeLine(o.Target, x1, y1, x2, y2, width, clr, opacity)
}

func fillCircle(dst *ebiten.Image, x, y, radius float64, clr color.RGBA, opacity float64) {
	if dst == nil || !drawable(x, y, radius) || radius <= 0 {
		return
	}
	vector.DrawFilledCircle(dst, float32(x), float32(y), float32(radius), WithOpacity(clr, opacity), true)
}

func strokeLine(dst *ebiten.Image, x1, y1, x2, y2, width float64, clr color.RGBA, opacity float64) {
	if dst == nil || !drawable(x1, y1, x2, y2, width) || width <= 0 {
		return
	}
	vector.StrokeLine(dst, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), WithOpacity(clr, opacity), true)
}

// WithOpacity returns clr with its alpha scaled by opacity, clamped to [0, 1].
func WithOpacity(clr color.RGBA, opacity float64) color.NRGBA {
	if math.IsNaN(opacity) || opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	return color.NRGBA{
		R: clr.R,
		G: clr.G,
		B: clr.B,
		A: uint8(math.Round(float64(clr.A) * opacity)),
	}
}

// drawable rejects NaN and infinite coordinates.
func drawable(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
