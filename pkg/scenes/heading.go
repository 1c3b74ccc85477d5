package scenes

import (
	"image/color"

	"github.com/decker502/folio/pkg/scramble"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// MagneticStrength 是悬停时标题向指针偏移的比例
const MagneticStrength = 0.2

// Heading 是可以被乱码效果改写的标题文本
//
// 它实现 scramble.Host：乱码任务通过 SetSegments 写入当前显示内容，
// 重音片段（正在闪烁的乱码字符）用强调色绘制。
// 指针进入标题区域时触发一次从当前文本到原始文本的乱码过渡；
// 悬停期间标题被指针"吸引"，偏移量为指针到区域中心距离的 MagneticStrength 倍。
type Heading struct {
	original  string
	segments  scramble.Segments
	rect      Rect
	attached  bool
	hovered   bool
	scrambler *scramble.Scrambler
	job       *scramble.Job

	// 磁吸偏移，离开时归零
	offsetX, offsetY float64
}

// NewHeading 创建标题，初始显示原始文本
func NewHeading(original string, scrambler *scramble.Scrambler) *Heading {
	return &Heading{
		original:  original,
		segments:  scramble.Segments{{Text: original}},
		attached:  true,
		scrambler: scrambler,
	}
}

// Text 返回当前显示的纯文本
func (h *Heading) Text() string {
	return h.segments.Plain()
}

// SetSegments 替换当前显示内容
func (h *Heading) SetSegments(segs scramble.Segments) {
	h.segments = segs
}

// Attached 报告标题是否仍在页面上
func (h *Heading) Attached() bool {
	return h.attached
}

// Detach 将标题从页面移除，之后的乱码写入会被丢弃
func (h *Heading) Detach() {
	h.attached = false
}

// Segments 返回当前显示的片段
func (h *Heading) Segments() scramble.Segments {
	return h.segments
}

// Original 返回标题的原始文本
func (h *Heading) Original() string {
	return h.original
}

// SetRect 设置标题在页面坐标系中的悬停区域
func (h *Heading) SetRect(r Rect) {
	h.rect = r
}

// Rect 返回标题的悬停区域
func (h *Heading) Rect() Rect {
	return h.rect
}

// Job 返回最近一次启动的乱码任务，未触发过时为 nil
func (h *Heading) Job() *scramble.Job {
	return h.job
}

// UpdateHover 根据页面坐标系中的指针位置更新悬停状态
// 指针从外部进入时启动乱码效果并返回 true
func (h *Heading) UpdateHover(x, y float64, present bool) bool {
	hovered := present && h.attached && h.rect.Contains(x, y)
	entered := hovered && !h.hovered
	h.hovered = hovered

	if hovered {
		h.offsetX = (x - (h.rect.X + h.rect.W/2)) * MagneticStrength
		h.offsetY = (y - (h.rect.Y + h.rect.H/2)) * MagneticStrength
	} else {
		h.offsetX, h.offsetY = 0, 0
	}

	if entered {
		h.job = h.scrambler.Start(h, h.original)
	}
	return entered
}

// Offset 返回当前的磁吸偏移
func (h *Heading) Offset() (dx, dy float64) {
	return h.offsetX, h.offsetY
}

// Hovered 返回指针是否在标题上
func (h *Heading) Hovered() bool {
	return h.hovered
}

// Draw 在屏幕坐标 (x, y) 处逐段绘制标题
func (h *Heading) Draw(screen *ebiten.Image, face text.Face, x, y float64, textColor, accentColor color.Color) {
	for _, seg := range h.segments {
		if seg.Text == "" {
			continue
		}
		clr := textColor
		if seg.Accent {
			clr = accentColor
		}

		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(clr)
		text.Draw(screen, seg.Text, face, op)

		w, _ := text.Measure(seg.Text, face, 0)
		x += w
	}
}
