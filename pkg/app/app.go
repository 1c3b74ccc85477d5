// Package app 提供页面应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/folio/pkg/config"
	"github.com/decker502/folio/pkg/game"
	"github.com/decker502/folio/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出和调试信息
	Verbose bool
	// ConfigPath 指定外部 YAML 配置文件，为空则使用内置配置
	ConfigPath string
	// Seed 随机数种子，0 表示使用当前时间
	Seed int64
	// Width/Height 覆盖配置中的窗口尺寸，0 表示不覆盖
	Width  int
	Height int
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	heroConfig   *config.HeroConfig
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (a *App, err error) {
	// 配置日志输出；初始化失败时恢复默认输出，调用方的 log.Fatalf 才能看到错误
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
		defer func() {
			if err != nil {
				log.SetOutput(os.Stderr)
				log.SetFlags(log.LstdFlags)
			}
		}()
	}

	heroConfig, err := loadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	if cfg.Width > 0 {
		heroConfig.Window.Width = cfg.Width
	}
	if cfg.Height > 0 {
		heroConfig.Window.Height = cfg.Height
	}

	resourceManager := game.NewResourceManager()

	heroScene, err := scenes.NewHeroScene(heroConfig, resourceManager, scenes.HeroOptions{
		Seed:    cfg.Seed,
		Verbose: cfg.Verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("场景创建失败: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(heroScene)

	return &App{
		sceneManager: sceneManager,
		heroConfig:   heroConfig,
		verbose:      cfg.Verbose,
	}, nil
}

// loadConfig 加载外部配置文件，未指定时使用内置配置
func loadConfig(path string) (*config.HeroConfig, error) {
	if path == "" {
		cfg, err := config.LoadEmbeddedHeroConfig()
		if err != nil {
			return nil, fmt.Errorf("内置配置加载失败: %w", err)
		}
		log.Printf("[Config] 使用内置配置: %s", config.DefaultConfigPath)
		return cfg, nil
	}

	cfg, err := config.LoadHeroConfig(path)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}
	log.Printf("[Config] 使用配置文件: %s", path)
	return cfg, nil
}

// Update 更新页面逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.heroConfig.Window.Width, a.heroConfig.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.heroConfig.Window.Width, a.heroConfig.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制页面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout 返回逻辑屏幕尺寸
// 页面随窗口尺寸变化重新布局，逻辑尺寸等于窗口尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.sceneManager.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// WindowConfig 返回生效的窗口配置
func (a *App) WindowConfig() config.WindowConfig {
	return a.heroConfig.Window
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
