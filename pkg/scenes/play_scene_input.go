package scenes

import (
	"log"

	"github.com/decker502/meatpop/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// sceneButton 画布下方的控制按钮
type sceneButton int

const (
	buttonNone sceneButton = iota
	buttonStart
	buttonPause
	buttonSound
)

// String 按钮名称（日志使用）
func (b sceneButton) String() string {
	switch b {
	case buttonStart:
		return "start"
	case buttonPause:
		return "pause"
	case buttonSound:
		return "sound"
	default:
		return "none"
	}
}

// sceneAction 键盘快捷键对应的操作
type sceneAction int

const (
	actionNone sceneAction = iota
	actionStart
	actionPause
	actionSound
	actionDismiss
)

// handleInput 读取本帧的指针和键盘输入
func (s *PlayScene) handleInput() {
	if pressed, x, y := utils.IsPointerJustPressed(); pressed {
		s.handlePointer(float64(x), float64(y))
	}

	switch {
	case utils.IsAnyKeyJustPressed(ebiten.KeyEnter, ebiten.KeyNumpadEnter):
		if s.message != "" {
			s.handleAction(actionDismiss)
		} else {
			s.handleAction(actionStart)
		}
	case utils.IsAnyKeyJustPressed(ebiten.KeySpace, ebiten.KeyEscape):
		s.handleAction(actionDismiss)
	case utils.IsAnyKeyJustPressed(ebiten.KeyP):
		s.handleAction(actionPause)
	case utils.IsAnyKeyJustPressed(ebiten.KeyM):
		s.handleAction(actionSound)
	}
}

// handlePointer 处理一次点击/触摸（逻辑屏幕坐标）
// 提示框显示时任意点击都只是关闭提示框
func (s *PlayScene) handlePointer(x, y float64) {
	if s.message != "" {
		s.dismissMessage()
		return
	}

	if button := s.buttonAt(x, y); button != buttonNone {
		log.Printf("[PlayScene] Button %s clicked", button)
		s.pressButton(button)
		return
	}

	if s.layout.Canvas.Contains(x, y) {
		s.levelSystem.Click(x, y, s.layout.Canvas)
	}
}

// handleAction 处理键盘快捷键
// 提示框显示时只响应关闭操作
func (s *PlayScene) handleAction(action sceneAction) {
	if s.message != "" {
		if action == actionDismiss {
			s.dismissMessage()
		}
		return
	}

	switch action {
	case actionStart:
		s.pressButton(buttonStart)
	case actionPause:
		s.pressButton(buttonPause)
	case actionSound:
		s.pressButton(buttonSound)
	}
}

// pressButton 执行按钮对应的操作
func (s *PlayScene) pressButton(button sceneButton) {
	switch button {
	case buttonStart:
		s.levelSystem.Start(1)
	case buttonPause:
		s.levelSystem.TogglePause()
	case buttonSound:
		s.levelSystem.ToggleSound()
	}
}

// buttonAt 返回 (x, y) 处的按钮
func (s *PlayScene) buttonAt(x, y float64) sceneButton {
	switch {
	case s.layout.StartButton.Contains(x, y):
		return buttonStart
	case s.layout.PauseButton.Contains(x, y):
		return buttonPause
	case s.layout.SoundButton.Contains(x, y):
		return buttonSound
	default:
		return buttonNone
	}
}
