package config

// 布局配置常量
// 本文件定义了页面的纵向布局参数，所有坐标使用"页面坐标系"
// （原点为页面顶部，Y 轴向下，滚动只改变视口位置）

// Section Layout (区块布局)
// 第一屏为 Hero 区块，高度等于视口高度；其后依次为项目标题区块和统计数字区块
const (
	// PageMarginX 是正文内容的左右边距（像素）
	PageMarginX = 80.0

	// SectionPadding 是每个区块上下的留白（像素）
	SectionPadding = 80.0

	// SectionTitleHeight 是区块标题占用的高度（像素）
	SectionTitleHeight = 60.0

	// HeadingSpacing 是相邻项目标题的行距（像素）
	HeadingSpacing = 56.0

	// HeadingHeight 是项目标题的悬停检测高度（像素）
	HeadingHeight = 36.0

	// StatRowHeight 是统计数字行的高度（像素）
	StatRowHeight = 120.0

	// StatGap 是统计卡片之间的间距（像素）
	StatGap = 24.0

	// ProgressBarHeight 是顶部滚动进度条的高度（像素）
	ProgressBarHeight = 3.0

	// TitleY 是 Hero 标题基线相对视口高度的比例
	TitleY = 0.38

	// HeadlineOffsetY 是打字机文本相对标题的下移距离（像素）
	HeadlineOffsetY = 64.0
)

// Font Sizes (字号)
const (
	TitleFontSize     = 48.0
	HeadlineFontSize  = 20.0
	SectionFontSize   = 32.0
	HeadingFontSize   = 28.0
	StatValueFontSize = 40.0
	LabelFontSize     = 16.0
	DebugFontSize     = 12.0
)

// HeadingTop 返回第 index 个项目标题的顶部 Y 坐标
func HeadingTop(viewportHeight float64, index int) float64 {
	return viewportHeight + SectionPadding + SectionTitleHeight + float64(index)*HeadingSpacing
}

// StatsTop 返回统计数字行的顶部 Y 坐标
// 计算方式：项目区块结束位置 + 区块留白 + 区块标题
func StatsTop(viewportHeight float64, headings int) float64 {
	projectsEnd := HeadingTop(viewportHeight, headings) + SectionPadding
	return projectsEnd + SectionPadding + SectionTitleHeight
}

// DocumentHeight 返回整个页面的高度
func DocumentHeight(viewportHeight float64, headings int) float64 {
	return StatsTop(viewportHeight, headings) + StatRowHeight + SectionPadding
}

// MaxScroll 返回最大滚动距离，页面不足一屏时为 0
func MaxScroll(viewportHeight float64, headings int) float64 {
	if viewportHeight <= 0 {
		return 0
	}
	limit := DocumentHeight(viewportHeight, headings) - viewportHeight
	if limit < 0 {
		return 0
	}
	return limit
}

// StatBoxWidth 返回 n 个统计卡片平分可用宽度后的单个宽度
func StatBoxWidth(viewportWidth float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	w := (viewportWidth - 2*PageMarginX - float64(n-1)*StatGap) / float64(n)
	if w < 0 {
		return 0
	}
	return w
}
