package scenes

import (
	"fmt"
	"image/color"
	"math"

	"github.com/decker502/meatpop/pkg/game"
	"github.com/decker502/meatpop/pkg/systems"
	"github.com/decker502/meatpop/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	pageBackground   = color.RGBA{R: 11, G: 16, B: 32, A: 255}
	buttonFill       = color.RGBA{R: 30, G: 41, B: 59, A: 255}
	buttonBorder     = color.RGBA{R: 100, G: 116, B: 139, A: 255}
	buttonDisabled   = color.RGBA{R: 71, G: 85, B: 105, A: 255}
	textColor        = color.RGBA{R: 226, G: 232, B: 240, A: 255}
	badgeOK          = color.RGBA{R: 134, G: 239, B: 172, A: 255}
	badgeFail        = color.RGBA{R: 252, G: 165, B: 165, A: 255}
	modalOverlay     = color.RGBA{R: 0, G: 0, B: 0, A: 140}
	modalFill        = color.RGBA{R: 15, G: 23, B: 42, A: 240}
	modalBorder      = color.RGBA{R: 250, G: 204, B: 21, A: 255}
	modalHintColor   = color.RGBA{R: 148, G: 163, B: 184, A: 255}
	canvasFrameColor = color.RGBA{R: 51, G: 65, B: 85, A: 255}
)

const (
	badgeMargin     = 8.0
	modalMaxWidth   = 440.0
	modalPadding    = 20.0
	modalLineHeight = 30.0
)

// modalHint 提示框底部的操作说明，触屏设备上没有键盘
func modalHint() string {
	if utils.IsMobile() {
		return "Tap to continue"
	}
	return "Click or press Enter to continue"
}

// Draw 绘制画布、控制按钮、HUD、贴图状态和提示框
func (s *PlayScene) Draw(screen *ebiten.Image) {
	screen.Fill(pageBackground)

	s.drawCanvas(screen)
	s.drawButtons(screen)
	s.drawHUD(screen)
	s.drawBadge(screen)
	s.drawMessage(screen)
}

// drawCanvas 在离屏画布上渲染目标和闪光，再贴到页面上
func (s *PlayScene) drawCanvas(screen *ebiten.Image) {
	rect := s.layout.Canvas
	w, h := int(rect.Width), int(rect.Height)
	if w <= 0 || h <= 0 {
		return
	}
	if s.canvas == nil || s.canvas.Bounds().Dx() != w || s.canvas.Bounds().Dy() != h {
		s.canvas = ebiten.NewImage(w, h)
	}

	s.canvas.Clear()
	s.renderSystem.Draw(s.canvas, s.texture)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(rect.X, rect.Y)
	screen.DrawImage(s.canvas, op)

	vector.StrokeRect(screen, float32(rect.X)-1, float32(rect.Y)-1, float32(rect.Width)+2, float32(rect.Height)+2, 1, canvasFrameColor, false)
}

// drawButtons 绘制 Start / Pause / Sound 按钮
func (s *PlayScene) drawButtons(screen *ebiten.Image) {
	running := s.levelSystem.State().IsRunning() || s.levelSystem.State().IsPaused()

	s.drawButton(screen, s.layout.StartButton, "Start", true)
	s.drawButton(screen, s.layout.PauseButton, pauseLabel(s.hud), running)
	s.drawButton(screen, s.layout.SoundButton, soundLabel(s.hud), true)
}

func (s *PlayScene) drawButton(screen *ebiten.Image, rect utils.Rect, label string, enabled bool) {
	x, y, w, h := float32(rect.X), float32(rect.Y), float32(rect.Width), float32(rect.Height)
	vector.DrawFilledRect(screen, x, y, w, h, buttonFill, false)

	border := buttonBorder
	if !enabled {
		border = buttonDisabled
	}
	vector.StrokeRect(screen, x, y, w, h, 1, border, false)

	if s.buttonFont == nil {
		return
	}
	cx, cy := rect.Center()
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, cy)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	if enabled {
		op.ColorScale.ScaleWithColor(textColor)
	} else {
		op.ColorScale.ScaleWithColor(buttonDisabled)
	}
	text.Draw(screen, label, s.buttonFont, op)
}

// drawHUD 绘制关卡、剩余目标和剩余时间
func (s *PlayScene) drawHUD(screen *ebiten.Image) {
	if s.hudFont == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(s.layout.HUDX, s.layout.HUDY)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, hudText(s.hud), s.hudFont, op)
}

// drawBadge 在画布右上角显示贴图加载状态
func (s *PlayScene) drawBadge(screen *ebiten.Image) {
	loader := s.services.TextureLoader
	if loader == nil || s.hudFont == nil {
		return
	}
	badge := loader.Badge()
	rect := s.layout.Canvas

	op := &text.DrawOptions{}
	op.GeoM.Translate(rect.X+rect.Width-badgeMargin, rect.Y+badgeMargin)
	op.PrimaryAlign = text.AlignEnd
	switch loader.Status() {
	case game.AssetReady:
		op.ColorScale.ScaleWithColor(badgeOK)
	case game.AssetFailed:
		op.ColorScale.ScaleWithColor(badgeFail)
	default:
		op.ColorScale.ScaleWithColor(textColor)
	}
	text.Draw(screen, badge, s.hudFont, op)
}

// drawMessage 绘制模态提示框（半透明遮罩 + 居中文字框）
func (s *PlayScene) drawMessage(screen *ebiten.Image) {
	if s.message == "" || s.messageFont == nil {
		return
	}
	rect := s.layout.Canvas
	vector.DrawFilledRect(screen, float32(rect.X), float32(rect.Y), float32(rect.Width), float32(rect.Height), modalOverlay, false)

	boxW := math.Min(modalMaxWidth, rect.Width-2*modalPadding)
	lines := utils.WrapText(s.message, s.messageFont, boxW-2*modalPadding)
	boxH := float64(len(lines)+1)*modalLineHeight + 2*modalPadding

	cx, cy := rect.Center()
	boxX, boxY := cx-boxW/2, cy-boxH/2
	vector.DrawFilledRect(screen, float32(boxX), float32(boxY), float32(boxW), float32(boxH), modalFill, false)
	vector.StrokeRect(screen, float32(boxX), float32(boxY), float32(boxW), float32(boxH), 2, modalBorder, false)

	y := boxY + modalPadding
	for _, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(cx, y)
		op.PrimaryAlign = text.AlignCenter
		op.ColorScale.ScaleWithColor(textColor)
		text.Draw(screen, line, s.messageFont, op)
		y += modalLineHeight
	}

	if s.hudFont != nil {
		op := &text.DrawOptions{}
		op.GeoM.Translate(cx, y+modalLineHeight/4)
		op.PrimaryAlign = text.AlignCenter
		op.ColorScale.ScaleWithColor(modalHintColor)
		text.Draw(screen, modalHint(), s.hudFont, op)
	}
}

// hudText HUD 文本
func hudText(hud systems.HUD) string {
	return fmt.Sprintf("Level: %d   Targets: %d   Time: %ds", hud.Level, hud.Targets, hud.Seconds)
}

// pauseLabel 暂停按钮文字
func pauseLabel(hud systems.HUD) string {
	if hud.Paused {
		return "Resume"
	}
	return "Pause"
}

// soundLabel 音效按钮文字
func soundLabel(hud systems.HUD) string {
	if hud.SoundOn {
		return "Sound: On"
	}
	return "Sound: Off"
}
