package scenes

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/decker502/folio/pkg/config"
	"github.com/decker502/folio/pkg/field"
	"github.com/decker502/folio/pkg/frame"
	"github.com/decker502/folio/pkg/fx"
	"github.com/decker502/folio/pkg/game"
	"github.com/decker502/folio/pkg/input"
	"github.com/decker502/folio/pkg/render"
	"github.com/decker502/folio/pkg/scramble"
	"github.com/decker502/folio/pkg/typing"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 区块标题
const (
	projectsTitle = "Projects"
	statsTitle    = "Impact"
)

// cursorBlinkPeriod 是打字机光标的闪烁周期（秒）
const cursorBlinkPeriod = 1.0

// HeroOptions 创建 HeroScene 时的运行参数
type HeroOptions struct {
	// Seed 随机数种子，0 表示使用当前时间
	Seed int64
	// Verbose 为 true 时在左上角绘制调试信息
	Verbose bool
	// Input 指针输入来源，nil 时使用 Ebitengine
	Input input.Source
}

// HeroScene 是作品集的单页场景
//
// 页面由三个区块纵向组成：
//   - Hero：粒子背景 + 标题 + 打字机文本，高度等于视口
//   - Projects：项目标题，指针进入时播放乱码效果
//   - Impact：统计数字，进入视口时开始计数
//
// 所有逐帧动画（粒子、乱码、计数）都通过同一个 frame.Loop 调度，
// 每次 Update 刷新一次。
type HeroScene struct {
	cfg     *config.HeroConfig
	verbose bool
	input   input.Source
	loop    *frame.Loop
	rng     *rand.Rand

	canvas     *render.Canvas
	field      *field.Field
	typewriter *typing.Typewriter
	ripples    *fx.Ripples
	glow       *fx.GlowCursor
	headings   []*Heading
	counters   []*fx.Counter

	heroObserver  *VisibilityObserver
	statsObserver *VisibilityObserver
	statsStarted  bool

	width, height int
	scrollY       float64
	elapsed       float64

	background  color.RGBA
	textColor   color.RGBA
	accentColor color.RGBA

	titleFace    *text.GoTextFace
	headlineFace *text.GoTextFace
	sectionFace  *text.GoTextFace
	headingFace  *text.GoTextFace
	statFace     *text.GoTextFace
	labelFace    *text.GoTextFace
}

// NewHeroScene 根据配置创建场景
// 配置中的引擎参数在此校验，字体加载失败时返回错误
func NewHeroScene(cfg *config.HeroConfig, rm *game.ResourceManager, opts HeroOptions) (*HeroScene, error) {
	fieldCfg, err := cfg.Field.Build()
	if err != nil {
		return nil, fmt.Errorf("field: %w", err)
	}
	scrambleCfg, err := cfg.Scramble.Build()
	if err != nil {
		return nil, fmt.Errorf("scramble: %w", err)
	}
	typingCfg, err := cfg.Typing.Build()
	if err != nil {
		return nil, fmt.Errorf("typing: %w", err)
	}
	rippleCfg, err := cfg.Ripple.Build()
	if err != nil {
		return nil, fmt.Errorf("ripple: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	src := opts.Input
	if src == nil {
		src = input.Ebiten{}
	}

	s := &HeroScene{
		cfg:        cfg,
		verbose:    opts.Verbose,
		input:      src,
		loop:       frame.NewLoop(),
		rng:        rand.New(rand.NewSource(seed)),
		canvas:     render.NewCanvas(0, 0),
		typewriter: typing.New(typingCfg),
		ripples:    fx.NewRipples(rippleCfg),
		glow:       fx.NewGlowCursor(fx.DefaultGlowConfig()),
	}
	s.field = field.New(fieldCfg, s.canvas, s.loop, s.rng)

	// 每个标题拥有独立的乱码器，互不打断
	for _, h := range cfg.Page.Headings {
		scrambler := scramble.New(scrambleCfg, s.loop, s.rng)
		s.headings = append(s.headings, NewHeading(h, scrambler))
	}
	for _, stat := range cfg.Page.Stats {
		s.counters = append(s.counters, fx.NewCounter(s.loop, stat.Value, cfg.Page.CounterDuration, cfg.Page.CounterInterval))
	}

	s.heroObserver = NewVisibilityObserver(Rect{}, 0, s.field.SetActive)
	s.statsObserver = NewVisibilityObserver(Rect{}, cfg.Page.VisibilityThreshold, s.onStatsVisible)

	if err := s.loadColors(); err != nil {
		return nil, err
	}
	if err := s.loadFonts(rm); err != nil {
		return nil, err
	}

	log.Printf("[HeroScene] 场景创建完成: seed=%d, headings=%d, stats=%d", seed, len(s.headings), len(s.counters))
	return s, nil
}

func (s *HeroScene) loadColors() error {
	var err error
	if s.background, err = config.ParseHexColor(s.cfg.Page.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if s.textColor, err = config.ParseHexColor(s.cfg.Page.TextColor); err != nil {
		return fmt.Errorf("textColor: %w", err)
	}
	if s.accentColor, err = config.ParseHexColor(s.cfg.Page.AccentColor); err != nil {
		return fmt.Errorf("accentColor: %w", err)
	}
	return nil
}

func (s *HeroScene) loadFonts(rm *game.ResourceManager) error {
	fonts := []struct {
		face **text.GoTextFace
		name string
		size float64
	}{
		{&s.titleFace, game.FontBold, config.TitleFontSize},
		{&s.headlineFace, game.FontMono, config.HeadlineFontSize},
		{&s.sectionFace, game.FontBold, config.SectionFontSize},
		{&s.headingFace, game.FontMono, config.HeadingFontSize},
		{&s.statFace, game.FontBold, config.StatValueFontSize},
		{&s.labelFace, game.FontRegular, config.LabelFontSize},
	}
	for _, f := range fonts {
		face, err := rm.LoadFont(f.name, f.size)
		if err != nil {
			return fmt.Errorf("failed to load font: %w", err)
		}
		*f.face = face
	}
	return nil
}

// Resize 重新布局页面并按新尺寸重建粒子场
func (s *HeroScene) Resize(width, height int) {
	s.width, s.height = width, height
	w, h := float64(width), float64(height)

	s.canvas.Resize(width, height)
	s.field.Resize(w, h)

	for i, heading := range s.headings {
		tw, _ := text.Measure(heading.Original(), s.headingFace, 0)
		heading.SetRect(Rect{
			X: config.PageMarginX,
			Y: config.HeadingTop(h, i),
			W: tw,
			H: config.HeadingHeight,
		})
	}

	s.heroObserver.SetRect(Rect{W: w, H: h})
	s.statsObserver.SetRect(s.statsRect())
	s.scrollTo(s.scrollY)
	s.observe()
}

func (s *HeroScene) statsRect() Rect {
	w, h := float64(s.width), float64(s.height)
	return Rect{
		X: config.PageMarginX,
		Y: config.StatsTop(h, len(s.headings)),
		W: w - 2*config.PageMarginX,
		H: config.StatRowHeight,
	}
}

// Update 处理输入并推进一帧
func (s *HeroScene) Update(deltaTime float64) {
	s.elapsed += deltaTime
	dt := time.Duration(deltaTime * float64(time.Second))

	st := s.input.Poll(s.width, s.height)
	if st.WheelY != 0 {
		s.scrollTo(s.scrollY - st.WheelY*s.cfg.Page.ScrollSpeed)
	}
	s.observe()

	// 画布位于页面顶部，页面坐标即画布坐标
	pageX, pageY := st.X, st.Y+s.scrollY
	if st.Inside {
		s.field.OnPointerMove(pageX, pageY)
	} else {
		s.field.ClearPointer()
	}
	for _, heading := range s.headings {
		heading.UpdateHover(pageX, pageY, st.Inside)
	}
	if st.JustPressed {
		s.ripples.Spawn(st.X, st.Y)
	}
	s.glow.Move(st.X, st.Y, st.Inside)

	s.typewriter.Update(dt)
	s.ripples.Update(dt)
	s.glow.Update(dt)
	s.loop.Flush()
}

// observe 按当前视口刷新可见性
// 尚未收到窗口尺寸时跳过，避免把所有区块判定为不可见
func (s *HeroScene) observe() {
	if s.height <= 0 {
		return
	}
	vp := Viewport{ScrollY: s.scrollY, Height: float64(s.height)}
	s.heroObserver.Observe(vp)
	s.statsObserver.Observe(vp)
}

func (s *HeroScene) onStatsVisible(visible bool) {
	if !visible || s.statsStarted {
		return
	}
	s.statsStarted = true
	log.Printf("[HeroScene] 统计区块进入视口，开始计数")
	for _, c := range s.counters {
		c.Start()
	}
}

// scrollTo 设置滚动位置，钳制在 [0, MaxScroll]
func (s *HeroScene) scrollTo(y float64) {
	limit := config.MaxScroll(float64(s.height), len(s.headings))
	if math.IsNaN(y) || y < 0 {
		y = 0
	}
	if y > limit {
		y = limit
	}
	s.scrollY = y
}

// ScrollY 返回当前滚动位置
func (s *HeroScene) ScrollY() float64 {
	return s.scrollY
}

// ScrollProgress 返回 0~1 的滚动进度，页面不足一屏时为 0
func (s *HeroScene) ScrollProgress() float64 {
	limit := config.MaxScroll(float64(s.height), len(s.headings))
	if limit <= 0 {
		return 0
	}
	return s.scrollY / limit
}

// Field 返回粒子场
func (s *HeroScene) Field() *field.Field {
	return s.field
}

// Headings 返回项目标题
func (s *HeroScene) Headings() []*Heading {
	return s.headings
}

// Counters 返回统计计数器
func (s *HeroScene) Counters() []*fx.Counter {
	return s.counters
}

// Ripples 返回点击波纹
func (s *HeroScene) Ripples() *fx.Ripples {
	return s.ripples
}

// Glow 返回跟随指针的光晕
func (s *HeroScene) Glow() *fx.GlowCursor {
	return s.glow
}

// Headline 返回打字机当前显示的文本
func (s *HeroScene) Headline() string {
	return s.typewriter.Text()
}

// Draw 绘制整个页面
func (s *HeroScene) Draw(screen *ebiten.Image) {
	screen.Fill(s.background)

	// Layer 1: 粒子画布（保留上一帧内容，暂停时画面静止）
	if img := s.canvas.Image(); img != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(0, -s.scrollY)
		screen.DrawImage(img, op)
	}

	// Layer 2: 页面内容
	s.drawHero(screen)
	s.drawProjects(screen)
	s.drawStats(screen)

	// Layer 3: 点击波纹与指针光晕（屏幕坐标）
	s.ripples.Draw(render.Overlay{Target: screen})
	s.glow.Draw(render.Overlay{Target: screen}, s.width)

	// Layer 4: 顶部滚动进度条
	if p := s.ScrollProgress(); p > 0 {
		vector.DrawFilledRect(screen, 0, 0, float32(float64(s.width)*p), config.ProgressBarHeight, s.accentColor, false)
	}

	if s.verbose {
		s.drawDebug(screen)
	}
}

func (s *HeroScene) drawHero(screen *ebiten.Image) {
	w, h := float64(s.width), float64(s.height)
	titleY := h*config.TitleY - s.scrollY
	drawCenteredText(screen, s.cfg.Page.Title, w/2, titleY, s.titleFace, s.textColor)

	headline := s.typewriter.Text()
	if math.Mod(s.elapsed, cursorBlinkPeriod) < cursorBlinkPeriod/2 {
		headline += "|"
	}
	drawCenteredText(screen, headline, w/2, titleY+config.HeadlineOffsetY, s.headlineFace, s.accentColor)
}

func (s *HeroScene) drawProjects(screen *ebiten.Image) {
	h := float64(s.height)
	sectionY := h + config.SectionPadding - s.scrollY
	drawText(screen, projectsTitle, config.PageMarginX, sectionY, s.sectionFace, s.textColor)

	for _, heading := range s.headings {
		r := heading.Rect()
		clr := s.textColor
		if heading.Hovered() {
			clr = s.accentColor
		}
		dx, dy := heading.Offset()
		heading.Draw(screen, s.headingFace, r.X+dx, r.Y-s.scrollY+dy, clr, s.accentColor)
	}
}

func (s *HeroScene) drawStats(screen *ebiten.Image) {
	r := s.statsRect()
	drawText(screen, statsTitle, config.PageMarginX, r.Y-config.SectionTitleHeight-s.scrollY, s.sectionFace, s.textColor)

	boxW := config.StatBoxWidth(float64(s.width), len(s.counters))
	if boxW <= 0 {
		return
	}
	y := r.Y - s.scrollY
	for i, c := range s.counters {
		x := config.PageMarginX + float64(i)*(boxW+config.StatGap)
		vector.StrokeRect(screen, float32(x), float32(y), float32(boxW), config.StatRowHeight, 1, render.WithOpacity(s.accentColor, 0.3), false)

		cx := x + boxW/2
		drawCenteredText(screen, strconv.Itoa(c.Value()), cx, y+24, s.statFace, s.accentColor)
		drawCenteredText(screen, s.cfg.Page.Stats[i].Label, cx, y+80, s.labelFace, s.textColor)
	}
}

func (s *HeroScene) drawDebug(screen *ebiten.Image) {
	msg := fmt.Sprintf("FPS: %.1f  particles: %d  active: %v  pending: %d  scroll: %.0f",
		ebiten.ActualFPS(), s.field.Len(), s.field.Active(), s.loop.Pending(), s.scrollY)
	ebitenutil.DebugPrintAt(screen, msg, 10, 10)
}

// drawText 在 (x, y) 处绘制左上对齐的文本
func drawText(screen *ebiten.Image, str string, x, y float64, face text.Face, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

// drawCenteredText 以 centerX 为水平中心绘制文本
func drawCenteredText(screen *ebiten.Image, str string, centerX, y float64, face text.Face, clr color.Color) {
	textWidth, _ := text.Measure(str, face, 0)
	drawText(screen, str, centerX-textWidth/2, y, face, clr)
}
