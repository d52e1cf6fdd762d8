package config

import (
	"math"

	"github.com/decker502/meatpop/pkg/utils"
)

// 布局配置常量
// 本文件定义了页面布局参数：画布尺寸规则、HUD 与按钮位置

// Canvas sizing (画布尺寸规则)
const (
	// CanvasMaxWidth 画布最大宽度
	CanvasMaxWidth = 980.0

	// CanvasPadding 容器宽度中预留的内边距
	CanvasPadding = 24.0

	// CanvasMinHeight 画布最小高度
	CanvasMinHeight = 300.0

	// CanvasViewportFraction 画布高度最多占视口高度的比例
	CanvasViewportFraction = 0.65

	// CanvasAspect 画布宽高比 16:9
	CanvasAspect = 16.0 / 9.0
)

// Page layout (页面布局)
const (
	// DefaultWindowWidth 桌面端默认窗口宽度
	DefaultWindowWidth = 1004

	// DefaultWindowHeight 桌面端默认窗口高度
	DefaultWindowHeight = 720

	// PageMargin 画布距离窗口左上角的边距
	PageMargin = 12.0

	// ButtonWidth 控制按钮宽度
	ButtonWidth = 110.0

	// ButtonHeight 控制按钮高度
	ButtonHeight = 32.0

	// ButtonGap 按钮之间的间距
	ButtonGap = 10.0

	// HUDLineHeight HUD 文本行高
	HUDLineHeight = 16.0
)

// FitCanvas 根据容器宽度和视口高度计算画布尺寸，保持 16:9
//
//	maxW = min(980, containerW - 24)
//	h = max(300, min(floor(maxW*9/16), floor(viewportH*0.65)))
//	w = floor(h*16/9)
func FitCanvas(containerWidth, viewportHeight float64) (width, height int) {
	maxW := math.Min(CanvasMaxWidth, containerWidth-CanvasPadding)
	hFromW := math.Floor(maxW / CanvasAspect)
	maxH := math.Floor(viewportHeight * CanvasViewportFraction)
	h := math.Max(CanvasMinHeight, math.Min(hFromW, maxH))
	w := math.Floor(h * CanvasAspect)
	return int(w), int(h)
}

// PageLayout 页面上各元素的位置（逻辑屏幕坐标）
type PageLayout struct {
	Canvas      utils.Rect // 画布显示区域
	StartButton utils.Rect
	PauseButton utils.Rect
	SoundButton utils.Rect
	HUDX, HUDY  float64 // HUD 文本起点
}

// LayoutPage 根据窗口尺寸计算页面布局
// 画布在上方，按钮和 HUD 在画布下方一行
func LayoutPage(outsideWidth, outsideHeight int) PageLayout {
	w, h := FitCanvas(float64(outsideWidth), float64(outsideHeight))

	canvas := utils.Rect{X: PageMargin, Y: PageMargin, Width: float64(w), Height: float64(h)}
	rowY := canvas.Y + canvas.Height + PageMargin

	button := func(i int) utils.Rect {
		return utils.Rect{
			X:      PageMargin + float64(i)*(ButtonWidth+ButtonGap),
			Y:      rowY,
			Width:  ButtonWidth,
			Height: ButtonHeight,
		}
	}

	return PageLayout{
		Canvas:      canvas,
		StartButton: button(0),
		PauseButton: button(1),
		SoundButton: button(2),
		HUDX:        PageMargin + 3*(ButtonWidth+ButtonGap) + ButtonGap,
		HUDY:        rowY + (ButtonHeight-HUDLineHeight)/2,
	}
}
