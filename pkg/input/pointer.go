// Package input 统一鼠标与触摸输入
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// State 存储当前帧的指针状态
// 用于统一处理鼠标和触摸输入
type State struct {
	// 指针位置（窗口坐标）
	X, Y float64
	// 指针是否在窗口内；触摸时仅在手指按下期间为 true
	Inside bool
	// 是否有点击/触摸事件刚刚发生
	JustPressed bool
	// 本帧的垂直滚轮增量，向上滚动为正
	WheelY float64
	// 当前输入是否来自触摸
	Touch bool
}

// Source 每帧采样一次指针状态
// 用于依赖注入，支持测试时 mock
type Source interface {
	Poll(width, height int) State
}

// Ebiten 是基于 Ebitengine 的默认实现
type Ebiten struct{}

// Poll 获取当前帧的输入状态，优先检测触摸
func (Ebiten) Poll(width, height int) State {
	state := State{}
	_, state.WheelY = ebiten.Wheel()

	// 首先检查新的触摸事件（移动设备）
	if touchIDs := inpututil.AppendJustPressedTouchIDs(nil); len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		state.X, state.Y = float64(x), float64(y)
		state.JustPressed = true
		state.Inside = true
		state.Touch = true
		return state
	}

	// 活动中的触摸用于悬停检测
	if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		state.X, state.Y = float64(x), float64(y)
		state.Inside = true
		state.Touch = true
		return state
	}

	// 其次检查鼠标输入（桌面设备）
	x, y := ebiten.CursorPosition()
	state.X, state.Y = float64(x), float64(y)
	state.Inside = Contains(x, y, width, height)
	state.JustPressed = state.Inside && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	return state
}

// Contains 判断坐标是否位于 width x height 的窗口内
func Contains(x, y, width, height int) bool {
	return x >= 0 && y >= 0 && x < width && y < height
}
