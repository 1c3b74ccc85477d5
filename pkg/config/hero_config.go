package config

import (
	"fmt"
	"image/color"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/decker502/folio/pkg/embedded"
	"github.com/decker502/folio/pkg/field"
	"github.com/decker502/folio/pkg/fx"
	"github.com/decker502/folio/pkg/scramble"
	"github.com/decker502/folio/pkg/typing"
)

// DefaultConfigPath 内置配置文件路径（embed.FS 中）
const DefaultConfigPath = "data/config/hero.yaml"

// HeroConfig 首页配置根结构
type HeroConfig struct {
	Window   WindowConfig   `yaml:"window"`
	Field    FieldConfig    `yaml:"field"`
	Scramble ScrambleConfig `yaml:"scramble"`
	Typing   TypingConfig   `yaml:"typing"`
	Ripple   RippleConfig   `yaml:"ripple"`
	Page     PageConfig     `yaml:"page"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// FieldConfig 粒子网络配置
type FieldConfig struct {
	DensityDivisor    float64  `yaml:"densityDivisor"`    // 每个粒子占用的面积（像素²）
	RepulsionRadius   float64  `yaml:"repulsionRadius"`   // 指针排斥半径
	RepulsionStrength float64  `yaml:"repulsionStrength"` // 排斥强度
	ConnectionRadius  float64  `yaml:"connectionRadius"`  // 连线距离
	ConnectionOpacity float64  `yaml:"connectionOpacity"` // 距离为 0 时的连线透明度
	LineWidth         float64  `yaml:"lineWidth"`
	LineColor         string   `yaml:"lineColor"`
	MaxSpeed          float64  `yaml:"maxSpeed"`
	MinRadius         float64  `yaml:"minRadius"`
	MaxRadius         float64  `yaml:"maxRadius"`
	MinOpacity        float64  `yaml:"minOpacity"`
	MaxOpacity        float64  `yaml:"maxOpacity"`
	Palette           []string `yaml:"palette"`
}

// ScrambleConfig 标题乱码效果配置
type ScrambleConfig struct {
	Alphabet    string  `yaml:"alphabet"`
	MaxStart    int     `yaml:"maxStart"`
	MaxDuration int     `yaml:"maxDuration"`
	Rerandomize float64 `yaml:"rerandomize"`
	MaxFrames   int     `yaml:"maxFrames"`
}

// TypingConfig 打字效果配置，时长使用 Go duration 格式（如 "50ms"）
type TypingConfig struct {
	Phrases     []string      `yaml:"phrases"`
	StartDelay  time.Duration `yaml:"startDelay"`
	TypeDelay   time.Duration `yaml:"typeDelay"`
	DeleteDelay time.Duration `yaml:"deleteDelay"`
	HoldDelay   time.Duration `yaml:"holdDelay"`
	NextDelay   time.Duration `yaml:"nextDelay"`
}

// RippleConfig 点击涟漪配置
type RippleConfig struct {
	MaxRadius float64       `yaml:"maxRadius"`
	Duration  time.Duration `yaml:"duration"`
	Opacity   float64       `yaml:"opacity"`
	Color     string        `yaml:"color"`
}

// StatConfig 统计数字
type StatConfig struct {
	Label string `yaml:"label"`
	Value int    `yaml:"value"`
}

// PageConfig 页面内容与配色
type PageConfig struct {
	Title               string        `yaml:"title"`
	Headings            []string      `yaml:"headings"`
	Stats               []StatConfig  `yaml:"stats"`
	Background          string        `yaml:"background"`
	TextColor           string        `yaml:"textColor"`
	AccentColor         string        `yaml:"accentColor"`
	CounterDuration     time.Duration `yaml:"counterDuration"`
	CounterInterval     time.Duration `yaml:"counterInterval"`
	VisibilityThreshold float64       `yaml:"visibilityThreshold"` // 可见比例阈值，超过即视为进入视口
	ScrollSpeed         float64       `yaml:"scrollSpeed"`         // 每格滚轮滚动的像素
}

// Default 返回内置默认配置
func Default() *HeroConfig {
	fc := field.DefaultConfig()
	palette := make([]string, len(fc.Palette))
	for i, c := range fc.Palette {
		palette[i] = FormatHexColor(c)
	}

	sc := scramble.DefaultConfig()
	tc := typing.DefaultConfig()
	rc := fx.DefaultRippleConfig()

	return &HeroConfig{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Portfolio",
		},
		Field: FieldConfig{
			DensityDivisor:    fc.DensityDivisor,
			RepulsionRadius:   fc.RepulsionRadius,
			RepulsionStrength: fc.RepulsionStrength,
			ConnectionRadius:  fc.ConnectionRadius,
			ConnectionOpacity: fc.ConnectionOpacity,
			LineWidth:         fc.LineWidth,
			LineColor:         FormatHexColor(fc.LineColor),
			MaxSpeed:          fc.MaxSpeed,
			MinRadius:         fc.MinRadius,
			MaxRadius:         fc.MaxRadius,
			MinOpacity:        fc.MinOpacity,
			MaxOpacity:        fc.MaxOpacity,
			Palette:           palette,
		},
		Scramble: ScrambleConfig{
			Alphabet:    sc.Alphabet,
			MaxStart:    sc.MaxStart,
			MaxDuration: sc.MaxDuration,
			Rerandomize: sc.Rerandomize,
			MaxFrames:   sc.MaxFrames,
		},
		Typing: TypingConfig{
			Phrases:     tc.Phrases,
			StartDelay:  tc.StartDelay,
			TypeDelay:   tc.TypeDelay,
			DeleteDelay: tc.DeleteDelay,
			HoldDelay:   tc.HoldDelay,
			NextDelay:   tc.NextDelay,
		},
		Ripple: RippleConfig{
			MaxRadius: rc.MaxRadius,
			Duration:  rc.Duration,
			Opacity:   rc.Opacity,
			Color:     FormatHexColor(rc.Color),
		},
		Page: PageConfig{
			Title: "Security Analyst",
			Headings: []string{
				"SIEM Detection Lab",
				"Phishing Triage Automation",
				"Threat Intel Dashboard",
			},
			Stats: []StatConfig{
				{Label: "Detection Rules", Value: 120},
				{Label: "Incidents Triaged", Value: 450},
				{Label: "Labs Completed", Value: 35},
			},
			Background:          "#0a0a0f",
			TextColor:           "#e4e4e7",
			AccentColor:         "#00d4ff",
			CounterDuration:     2000 * time.Millisecond,
			CounterInterval:     16 * time.Millisecond,
			VisibilityThreshold: 0.1,
			ScrollSpeed:         40,
		},
	}
}

// ParseHeroConfig 解析 YAML 数据，未出现的字段保留默认值
func ParseHeroConfig(data []byte) (*HeroConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse hero config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid hero config: %w", err)
	}

	return cfg, nil
}

// LoadHeroConfig 从 YAML 文件加载首页配置
func LoadHeroConfig(filePath string) (*HeroConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read hero config file: %w", err)
	}
	return ParseHeroConfig(data)
}

// Validate 验证配置的有效性
func (c *HeroConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, err := c.Field.Build(); err != nil {
		return fmt.Errorf("field: %w", err)
	}
	if _, err := c.Scramble.Build(); err != nil {
		return fmt.Errorf("scramble: %w", err)
	}
	if _, err := c.Typing.Build(); err != nil {
		return fmt.Errorf("typing: %w", err)
	}
	if _, err := c.Ripple.Build(); err != nil {
		return fmt.Errorf("ripple: %w", err)
	}
	if err := c.Page.validate(); err != nil {
		return fmt.Errorf("page: %w", err)
	}
	return nil
}

// Build 转换为 field.Config 并校验
func (c FieldConfig) Build() (field.Config, error) {
	lineColor, err := ParseHexColor(c.LineColor)
	if err != nil {
		return field.Config{}, fmt.Errorf("lineColor: %w", err)
	}

	palette := make([]color.RGBA, 0, len(c.Palette))
	for i, s := range c.Palette {
		clr, err := ParseHexColor(s)
		if err != nil {
			return field.Config{}, fmt.Errorf("palette[%d]: %w", i, err)
		}
		palette = append(palette, clr)
	}

	fc := field.Config{
		DensityDivisor:    c.DensityDivisor,
		RepulsionRadius:   c.RepulsionRadius,
		RepulsionStrength: c.RepulsionStrength,
		ConnectionRadius:  c.ConnectionRadius,
		ConnectionOpacity: c.ConnectionOpacity,
		LineWidth:         c.LineWidth,
		LineColor:         lineColor,
		MaxSpeed:          c.MaxSpeed,
		MinRadius:         c.MinRadius,
		MaxRadius:         c.MaxRadius,
		MinOpacity:        c.MinOpacity,
		MaxOpacity:        c.MaxOpacity,
		Palette:           palette,
	}
	if err := fc.Validate(); err != nil {
		return field.Config{}, err
	}
	return fc, nil
}

// Build 转换为 scramble.Config 并校验
func (c ScrambleConfig) Build() (scramble.Config, error) {
	sc := scramble.Config{
		Alphabet:    c.Alphabet,
		MaxStart:    c.MaxStart,
		MaxDuration: c.MaxDuration,
		Rerandomize: c.Rerandomize,
		MaxFrames:   c.MaxFrames,
	}
	if err := sc.Validate(); err != nil {
		return scramble.Config{}, err
	}
	return sc, nil
}

// Build 转换为 typing.Config 并校验
func (c TypingConfig) Build() (typing.Config, error) {
	tc := typing.Config{
		Phrases:     c.Phrases,
		StartDelay:  c.StartDelay,
		TypeDelay:   c.TypeDelay,
		DeleteDelay: c.DeleteDelay,
		HoldDelay:   c.HoldDelay,
		NextDelay:   c.NextDelay,
	}
	if err := tc.Validate(); err != nil {
		return typing.Config{}, err
	}
	return tc, nil
}

// Build 转换为 fx.RippleConfig 并校验
func (c RippleConfig) Build() (fx.RippleConfig, error) {
	clr, err := ParseHexColor(c.Color)
	if err != nil {
		return fx.RippleConfig{}, fmt.Errorf("color: %w", err)
	}
	if c.MaxRadius <= 0 {
		return fx.RippleConfig{}, fmt.Errorf("maxRadius must be > 0, got %v", c.MaxRadius)
	}
	if c.Duration <= 0 {
		return fx.RippleConfig{}, fmt.Errorf("duration must be > 0, got %v", c.Duration)
	}
	if c.Opacity < 0 || c.Opacity > 1 {
		return fx.RippleConfig{}, fmt.Errorf("opacity must be between 0 and 1, got %v", c.Opacity)
	}
	return fx.RippleConfig{
		MaxRadius: c.MaxRadius,
		Duration:  c.Duration,
		Opacity:   c.Opacity,
		Color:     clr,
	}, nil
}

func (c *PageConfig) validate() error {
	for _, s := range []string{c.Background, c.TextColor, c.AccentColor} {
		if _, err := ParseHexColor(s); err != nil {
			return err
		}
	}
	for i, h := range c.Headings {
		if h == "" {
			return fmt.Errorf("heading %d is empty", i)
		}
	}
	for i, s := range c.Stats {
		if s.Value < 0 {
			return fmt.Errorf("stat %d (%s) must be >= 0, got %d", i, s.Label, s.Value)
		}
	}
	if c.CounterDuration <= 0 || c.CounterInterval <= 0 {
		return fmt.Errorf("counterDuration and counterInterval must be > 0")
	}
	if c.VisibilityThreshold < 0 || c.VisibilityThreshold > 1 {
		return fmt.Errorf("visibilityThreshold must be between 0 and 1, got %v", c.VisibilityThreshold)
	}
	if c.ScrollSpeed <= 0 {
		return fmt.Errorf("scrollSpeed must be > 0, got %v", c.ScrollSpeed)
	}
	return nil
}

// LoadEmbeddedHeroConfig 从嵌入资源加载内置配置
func LoadEmbeddedHeroConfig() (*HeroConfig, error) {
	data, err := embedded.ReadFile(DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded hero config: %w", err)
	}
	return ParseHeroConfig(data)
}
