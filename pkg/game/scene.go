package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents one page view (e.g., the hero page).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Resizable 是一个可选接口，用于在窗口尺寸变化时通知场景
//
// 实现此接口的场景会在以下时机被调用 Resize()：
//   - 切换到该场景时（使用当前窗口尺寸）
//   - 窗口尺寸变化时
type Resizable interface {
	Resize(width, height int)
}
