package render

import (
	"image/color"
	"math"
	"testing"
)

// TestWithOpacity 测试透明度换算与钳制
func TestWithOpacity(t *testing.T) {
	base := color.RGBA{R: 0, G: 212, B: 255, A: 255}

	tests := []struct {
		name    string
		opacity float64
		wantA   uint8
	}{
		{"不透明", 1, 255},
		{"半透明", 0.5, 128},
		{"连线最大值", 0.3, 77},
		{"超过1", 2, 255},
		{"负数", -1, 0},
		{"NaN", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WithOpacity(base, tt.opacity)
			if got.A != tt.wantA {
				t.Errorf("WithOpacity(%v).A = %d, want %d", tt.opacity, got.A, tt.wantA)
			}
			if got.R != base.R || got.G != base.G || got.B != base.B {
				t.Errorf("WithOpacity(%v) changed RGB: %v", tt.opacity, got)
			}
		})
	}
}

// TestDrawable 测试非有限坐标被拒绝
func TestDrawable(t *testing.T) {
	if !drawable(1, 2, 3) {
		t.Error("drawable(1, 2, 3) = false")
	}
	if drawable(1, math.NaN()) {
		t.Error("drawable with NaN = true")
	}
	if drawable(math.Inf(-1)) {
		t.Error("drawable with -Inf = true")
	}
}

// TestEmptyCanvasIgnoresDraws 测试空画布忽略绘制调用
func TestEmptyCanvasIgnoresDraws(t *testing.T) {
	c := NewCanvas(0, -5)
	if c.Image() != nil {
		t.Fatal("Image() != nil for empty canvas")
	}
	c.Clear()
	c.FillCircle(1, 1, 2, color.RGBA{A: 255}, 1)
	c.StrokeLine(0, 0, 1, 1, 1, color.RGBA{A: 255}, 1)

	w, h := c.Size()
	if w != 0 || h != -5 {
		t.Errorf("Size() = (%d, %d), want (0, -5)", w, h)
	}
}

// TestOverlayWithoutTarget 测试未设置目标时忽略绘制调用
func TestOverlayWithoutTarget(t *testing.T) {
	var o Overlay
	o.FillCircle(10, 10, 5, color.RGBA{R: 255, G: 255, B: 255, A: 255}, 0.4)
	o.StrokeLine(0, 0, 10, 10, 1, color.RGBA{A: 255}, 1)
}
