package scenes

import "math"

// Rect 页面坐标系中的矩形（Y 轴向下，原点为页面顶部）
type Rect struct {
	X, Y, W, H float64
}

// Contains 判断点是否在矩形内
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Viewport 当前可见的页面区域
type Viewport struct {
	ScrollY float64
	Height  float64
}

// VisibleRatio 返回矩形落在视口内的高度比例（0~1）
func VisibleRatio(r Rect, vp Viewport) float64 {
	if r.H <= 0 || vp.Height <= 0 {
		return 0
	}
	top := math.Max(r.Y, vp.ScrollY)
	bottom := math.Min(r.Y+r.H, vp.ScrollY+vp.Height)
	if bottom <= top {
		return 0
	}
	return (bottom - top) / r.H
}

// VisibilityObserver 跟踪一个矩形相对视口的可见性
//
// 第一次 Observe 总会回调一次当前状态，之后只在可见性变化时回调。
// threshold 为 0 时只要有一个像素可见即视为可见。
type VisibilityObserver struct {
	rect      Rect
	threshold float64
	onChange  func(visible bool)

	visible  bool
	observed bool
}

// NewVisibilityObserver 创建观察器
func NewVisibilityObserver(rect Rect, threshold float64, onChange func(visible bool)) *VisibilityObserver {
	return &VisibilityObserver{
		rect:      rect,
		threshold: threshold,
		onChange:  onChange,
	}
}

// SetRect 更新被观察的矩形（布局变化后调用）
// 下一次 Observe 按新矩形计算
func (o *VisibilityObserver) SetRect(r Rect) {
	o.rect = r
}

// Observe 按当前视口重新计算可见性
func (o *VisibilityObserver) Observe(vp Viewport) {
	ratio := VisibleRatio(o.rect, vp)
	visible := ratio > 0 && ratio >= o.threshold

	if o.observed && visible == o.visible {
		return
	}
	o.observed = true
	o.visible = visible
	if o.onChange != nil {
		o.onChange(visible)
	}
}

// Visible 返回最近一次计算的可见性
func (o *VisibilityObserver) Visible() bool {
	return o.visible
}
