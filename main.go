// Package main is the portfolio hero page rendered as a desktop window.
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--config <path>   Load page settings from a YAML file instead of the built-in config
//	--seed <n>        Random seed for particles and scramble glyphs (0 = time based)
//	--verbose         Enable logging and the debug overlay
//	--width <px>      Override the window width
//	--height <px>     Override the window height
//
// Controls:
//
//	Mouse move    - Repel particles, hover headings to scramble them
//	Mouse wheel   - Scroll the page
//	Mouse click   - Spawn a ripple
//	F11           - Toggle fullscreen
package main

import (
	"flag"
	"log"

	"github.com/decker502/folio/pkg/app"
	"github.com/decker502/folio/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (default: built-in data/config/hero.yaml)")
	seed := flag.Int64("seed", 0, "random seed, 0 uses the current time")
	verbose := flag.Bool("verbose", false, "enable logging and the debug overlay")
	width := flag.Int("width", 0, "window width override")
	height := flag.Int("height", 0, "window height override")
	flag.Parse()

	// 初始化嵌入资源，dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Seed:       *seed,
		Width:      *width,
		Height:     *height,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	wc := gameApp.WindowConfig()
	ebiten.SetWindowSize(wc.Width, wc.Height)
	ebiten.SetWindowTitle(wc.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// Start the loop
	// This will call Update() and Draw() repeatedly until the window is closed
	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
