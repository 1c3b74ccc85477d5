// Package scenes 包含页面场景及其组件（标题、视口可见性）
package scenes

import (
	"github.com/decker502/folio/pkg/game"
	"github.com/decker502/folio/pkg/scramble"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

var (
	_ Scene          = (*HeroScene)(nil)
	_ game.Resizable = (*HeroScene)(nil)
	_ scramble.Host  = (*Heading)(nil)
)
