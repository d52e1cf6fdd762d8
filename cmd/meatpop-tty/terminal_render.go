package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/decker502/meatpop/pkg/components"
	"github.com/decker502/meatpop/pkg/ecs"
	"github.com/decker502/meatpop/pkg/systems"
	"github.com/decker502/meatpop/pkg/utils"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const (
	targetRune = '█'
	rimRune    = '▓'
	flashRune  = '✶'
	sparkRune  = '·'
	modalHint  = "Enter / click to continue"
)

var (
	colorTop       = tcell.NewRGBColor(30, 41, 59)
	colorBottom    = tcell.NewRGBColor(15, 23, 42)
	colorTarget    = tcell.NewRGBColor(157, 75, 0)
	colorRim       = tcell.NewRGBColor(214, 160, 110)
	colorText      = tcell.NewRGBColor(226, 232, 240)
	colorHint      = tcell.NewRGBColor(148, 163, 184)
	colorModal     = tcell.NewRGBColor(250, 204, 21)
	colorFlashHot  = [3]int32{255, 250, 230}
	colorFlashCold = [3]int32{255, 220, 120}

	hudStyle  = tcell.StyleDefault.Foreground(colorText)
	helpStyle = tcell.StyleDefault.Foreground(colorHint)
)

// draw 绘制整个终端画面
func (g *terminalGame) draw() {
	g.screen.Clear()
	cols, rows := g.screen.Size()
	rect := canvasRect(cols, rows)

	g.drawBackground(rect)
	g.drawTargets(rect)
	g.drawFlashes(rect)

	drawText(g.screen, 0, 0, hudStyle, hudLine(g.hud))
	if rows > 1 {
		drawText(g.screen, 0, rows-1, helpStyle, helpLine(g.hud))
	}
	g.drawMessage(cols, rows)

	g.screen.Show()
}

// rowBackground 画布第 y 行的背景色（上浅下深的竖直渐变）
func rowBackground(y int, rect utils.Rect) tcell.Color {
	t := 0.0
	if rect.Height > 1 {
		t = (float64(y) - rect.Y) / (rect.Height - 1)
	}
	r1, g1, b1 := colorTop.RGB()
	r2, g2, b2 := colorBottom.RGB()
	return tcell.NewRGBColor(lerp(r1, r2, t), lerp(g1, g2, t), lerp(b1, b2, t))
}

func lerp(a, b int32, t float64) int32 {
	return a + int32(math.Round(float64(b-a)*t))
}

func (g *terminalGame) drawBackground(rect utils.Rect) {
	for y := int(rect.Y); y < int(rect.Y+rect.Height); y++ {
		style := tcell.StyleDefault.Background(rowBackground(y, rect))
		for x := int(rect.X); x < int(rect.X+rect.Width); x++ {
			g.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// cellCenter 字符格 (x, y) 的中心在画布坐标系中的位置
func (g *terminalGame) cellCenter(x, y int, rect utils.Rect) (float64, float64) {
	return utils.ClientToCanvas(float64(x)+0.5, float64(y)+0.5, rect, g.canvasWidth, g.canvasHeight)
}

// canvasCell 画布坐标所在的字符格
func (g *terminalGame) canvasCell(cx, cy float64, rect utils.Rect) (int, int) {
	x, y := utils.CanvasToClient(cx, cy, rect, g.canvasWidth, g.canvasHeight)
	return int(math.Floor(x)), int(math.Floor(y))
}

// inCanvas 字符格是否在画布区域内
func inCanvas(x, y int, rect utils.Rect) bool {
	return float64(x) >= rect.X && float64(x) < rect.X+rect.Width &&
		float64(y) >= rect.Y && float64(y) < rect.Y+rect.Height
}

// drawTargets 用实心字符画出每个目标，边缘一圈换成浅色
// 目标再小也至少占据圆心所在的格子
func (g *terminalGame) drawTargets(rect utils.Rect) {
	rimWidth := g.canvasWidth / rect.Width

	ids := ecs.GetEntitiesWith2[*components.PositionComponent, *components.TargetComponent](g.entityManager)
	for _, id := range ids {
		pos, _ := ecs.GetComponent[*components.PositionComponent](g.entityManager, id)
		target, _ := ecs.GetComponent[*components.TargetComponent](g.entityManager, id)
		r := target.Radius

		x0, y0 := g.canvasCell(pos.X-r, pos.Y-r, rect)
		x1, y1 := g.canvasCell(pos.X+r, pos.Y+r, rect)
		for y := y0; y <= y1; y++ {
			bg := rowBackground(y, rect)
			for x := x0; x <= x1; x++ {
				if !inCanvas(x, y, rect) {
					continue
				}
				px, py := g.cellCenter(x, y, rect)
				d := utils.Distance(px, py, pos.X, pos.Y)
				switch {
				case d > r:
				case d > r-rimWidth:
					g.screen.SetContent(x, y, rimRune, nil, tcell.StyleDefault.Foreground(colorRim).Background(bg))
				default:
					g.screen.SetContent(x, y, targetRune, nil, tcell.StyleDefault.Foreground(colorTarget).Background(bg))
				}
			}
		}

		cx, cy := g.canvasCell(pos.X, pos.Y, rect)
		if inCanvas(cx, cy, rect) {
			g.screen.SetContent(cx, cy, targetRune, nil, tcell.StyleDefault.Foreground(colorTarget).Background(rowBackground(cy, rect)))
		}
	}
}

// flashColor 闪光颜色随进度从亮白过渡到暖黄
func flashColor(t float64) tcell.Color {
	return tcell.NewRGBColor(
		lerp(colorFlashHot[0], colorFlashCold[0], t),
		lerp(colorFlashHot[1], colorFlashCold[1], t),
		lerp(colorFlashHot[2], colorFlashCold[2], t),
	)
}

// drawFlashes 闪光：圆心一个星号，半径内空白格子撒上小点
func (g *terminalGame) drawFlashes(rect utils.Rect) {
	ids := ecs.GetEntitiesWith2[*components.PositionComponent, *components.PopFlashComponent](g.entityManager)
	for _, id := range ids {
		pos, _ := ecs.GetComponent[*components.PositionComponent](g.entityManager, id)
		flash, _ := ecs.GetComponent[*components.PopFlashComponent](g.entityManager, id)
		t := flash.Progress()
		radius := g.rules.PopFlash.StartRadius + g.rules.PopFlash.GrowRadius*t
		fg := flashColor(t)

		x0, y0 := g.canvasCell(pos.X-radius, pos.Y-radius, rect)
		x1, y1 := g.canvasCell(pos.X+radius, pos.Y+radius, rect)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				if !inCanvas(x, y, rect) {
					continue
				}
				px, py := g.cellCenter(x, y, rect)
				if utils.Distance(px, py, pos.X, pos.Y) > radius {
					continue
				}
				if mainc, _, _, _ := g.screen.GetContent(x, y); mainc != ' ' {
					continue
				}
				g.screen.SetContent(x, y, sparkRune, nil, tcell.StyleDefault.Foreground(fg).Background(rowBackground(y, rect)))
			}
		}

		cx, cy := g.canvasCell(pos.X, pos.Y, rect)
		if inCanvas(cx, cy, rect) {
			g.screen.SetContent(cx, cy, flashRune, nil, tcell.StyleDefault.Foreground(fg).Background(rowBackground(cy, rect)))
		}
	}
}

// drawMessage 居中的提示框
func (g *terminalGame) drawMessage(cols, rows int) {
	if g.message == "" {
		return
	}
	lines := append(strings.Split(g.message, "\n"), "", modalHint)

	inner := 0
	for _, line := range lines {
		inner = max(inner, runewidth.StringWidth(line))
	}
	width := min(inner+4, cols)
	height := min(len(lines)+2, rows)
	left := (cols - width) / 2
	top := (rows - height) / 2

	box := tcell.StyleDefault.Foreground(colorModal).Background(colorBottom)
	for y := top; y < top+height; y++ {
		for x := left; x < left+width; x++ {
			var r rune
			switch {
			case y == top && x == left:
				r = tcell.RuneULCorner
			case y == top && x == left+width-1:
				r = tcell.RuneURCorner
			case y == top+height-1 && x == left:
				r = tcell.RuneLLCorner
			case y == top+height-1 && x == left+width-1:
				r = tcell.RuneLRCorner
			case y == top || y == top+height-1:
				r = tcell.RuneHLine
			case x == left || x == left+width-1:
				r = tcell.RuneVLine
			default:
				r = ' '
			}
			g.screen.SetContent(x, y, r, nil, box)
		}
	}

	for i, line := range lines {
		y := top + 1 + i
		if y >= top+height-1 {
			break
		}
		style := box.Foreground(colorText)
		if line == modalHint {
			style = box.Foreground(colorHint)
		}
		x := left + (width-runewidth.StringWidth(line))/2
		drawText(g.screen, x, y, style, line)
	}
}

// drawText 从 (x, y) 开始写一行文字，超出屏幕右侧的部分丢弃
func drawText(screen tcell.Screen, x, y int, style tcell.Style, s string) int {
	cols, _ := screen.Size()
	for _, r := range s {
		if x >= cols {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
	return x
}

// hudLine 第 0 行：关卡、剩余目标、剩余时间
func hudLine(hud systems.HUD) string {
	line := fmt.Sprintf("Level: %d   Targets: %d   Time: %ds", hud.Level, hud.Targets, hud.Seconds)
	if hud.Paused {
		line += "   [PAUSED]"
	}
	return line
}

// helpLine 最后一行：按键提示，Pause/Sound 文字跟随状态
func helpLine(hud systems.HUD) string {
	pause := "Pause"
	if hud.Paused {
		pause = "Resume"
	}
	sound := "Sound: Off"
	if hud.SoundOn {
		sound = "Sound: On"
	}
	return fmt.Sprintf("[s] Start   [p] %s   [m] %s   [q] Quit", pause, sound)
}
