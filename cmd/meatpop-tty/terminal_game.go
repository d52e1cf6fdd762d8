package main

import (
	"log"

	"github.com/decker502/meatpop/internal/audio"
	"github.com/decker502/meatpop/pkg/config"
	"github.com/decker502/meatpop/pkg/ecs"
	"github.com/decker502/meatpop/pkg/game"
	"github.com/decker502/meatpop/pkg/systems"
	"github.com/decker502/meatpop/pkg/utils"
	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep/speaker"
)

// ttySampleRate 终端前端的扬声器采样率
const ttySampleRate = 44100

// gameOptions 终端游戏的依赖
type gameOptions struct {
	Rules    *config.GameRules
	Settings *game.SettingsManager // 可为 nil
	Progress *game.SaveManager     // 可为 nil
	Level    int                   // > 0 时第一帧直接开始该关卡
	Speaker  bool                  // speaker.Init 成功时为 true，否则用终端响铃代替音效
	Mute     bool                  // 本次运行静音，不写回 Settings
}

// terminalGame 终端前端
//
// 和 ebiten 场景一样，关卡逻辑交给 systems.LevelSystem，这里只实现 systems.Presenter：
// 记录 HUD 和提示框，并把画布坐标映射到字符格。画布保持固定的逻辑尺寸，
// 终端尺寸变化只影响映射比例。
type terminalGame struct {
	screen tcell.Screen

	entityManager *ecs.EntityManager
	scheduler     *game.Scheduler
	levelSystem   *systems.LevelSystem
	rules         *config.GameRules
	settings      *game.SettingsManager
	progress      *game.SaveManager

	canvasWidth  float64
	canvasHeight float64

	hud         systems.HUD
	message     string
	messageDone func()

	autoStartLevel int
	speakerReady   bool
	mouseDown      bool // 上一个鼠标事件左键是否按下（只在按下沿触发点击）
	quit           bool
}

func newTerminalGame(screen tcell.Screen, opts gameOptions) *terminalGame {
	if opts.Rules == nil {
		opts.Rules = config.DefaultGameRules()
	}

	w, h := config.FitCanvas(float64(config.DefaultWindowWidth), float64(config.DefaultWindowHeight))
	em := ecs.NewEntityManager()
	scheduler := game.NewScheduler()

	g := &terminalGame{
		screen:         screen,
		entityManager:  em,
		scheduler:      scheduler,
		rules:          opts.Rules,
		settings:       opts.Settings,
		progress:       opts.Progress,
		canvasWidth:    float64(w),
		canvasHeight:   float64(h),
		autoStartLevel: opts.Level,
		speakerReady:   opts.Speaker,
	}
	g.levelSystem = systems.NewLevelSystem(em, scheduler, opts.Rules, g, g.canvasWidth, g.canvasHeight)
	g.levelSystem.SetSettingsManager(opts.Settings)
	g.levelSystem.SetSaveManager(opts.Progress)
	if opts.Mute {
		g.levelSystem.SetSoundOn(false)
	}

	first := opts.Rules.ForLevel(1)
	g.hud = systems.HUD{
		Level:   first.Level,
		Targets: first.Count,
		Seconds: first.Duration,
		SoundOn: g.levelSystem.SoundOn(),
	}

	log.Printf("[TTY] Canvas %dx%d, auto start level %d, speaker %v", w, h, opts.Level, opts.Speaker)
	return g
}

// canvasRect 画布占用的字符格区域：第 0 行是 HUD，最后一行是按键提示
func canvasRect(cols, rows int) utils.Rect {
	height := rows - 2
	if height < 1 {
		height = 1
	}
	return utils.Rect{X: 0, Y: 1, Width: float64(cols), Height: float64(height)}
}

// rect 当前终端尺寸下的画布区域
func (g *terminalGame) rect() utils.Rect {
	cols, rows := g.screen.Size()
	return canvasRect(cols, rows)
}

// step 推进一帧
func (g *terminalGame) step(deltaTime float64) {
	if g.autoStartLevel > 0 {
		level := g.autoStartLevel
		g.autoStartLevel = 0
		g.levelSystem.Start(level)
	}
	g.scheduler.Advance(deltaTime)
}

// handleEvent 处理一个终端事件
func (g *terminalGame) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKey(ev)
	case *tcell.EventMouse:
		g.handleMouse(ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

func (g *terminalGame) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		g.quit = true
		return
	case tcell.KeyEscape:
		if g.message != "" {
			g.dismissMessage()
		} else {
			g.quit = true
		}
		return
	case tcell.KeyEnter:
		g.dismissMessage()
		return
	case tcell.KeyRune:
	default:
		return
	}

	r := ev.Rune()
	if r == 'q' || r == 'Q' {
		g.quit = true
		return
	}
	// 提示框显示期间其他按键只用来关闭提示框
	if g.message != "" {
		if r == ' ' {
			g.dismissMessage()
		}
		return
	}
	switch r {
	case 's', 'S':
		g.levelSystem.Start(1)
	case 'p', 'P':
		g.levelSystem.TogglePause()
	case 'm', 'M':
		g.levelSystem.ToggleSound()
	}
}

func (g *terminalGame) handleMouse(ev *tcell.EventMouse) {
	pressed := ev.Buttons()&tcell.Button1 != 0
	wasDown := g.mouseDown
	g.mouseDown = pressed
	if !pressed || wasDown {
		return
	}

	if g.message != "" {
		g.dismissMessage()
		return
	}
	x, y := ev.Position()
	g.clickCell(x, y)
}

// clickCell 点击字符格 (x, y)，按格子中心换算成画布坐标
func (g *terminalGame) clickCell(x, y int) bool {
	rect := g.rect()
	cx, cy := float64(x)+0.5, float64(y)+0.5
	if !rect.Contains(cx, cy) {
		return false
	}
	return g.levelSystem.Click(cx, cy, rect)
}

// UpdateHUD 实现 systems.Presenter
func (g *terminalGame) UpdateHUD(hud systems.HUD) {
	g.hud = hud
}

// ShowMessage 实现 systems.Presenter
func (g *terminalGame) ShowMessage(msg string, dismissed func()) {
	g.message = msg
	g.messageDone = dismissed
	log.Printf("[TTY] Message: %q", msg)
}

// PlayPop 实现 systems.Presenter
// 扬声器不可用时退回终端响铃
func (g *terminalGame) PlayPop() error {
	if !g.speakerReady {
		return g.screen.Beep()
	}
	cfg := audio.DefaultPopConfig(ttySampleRate)
	if g.settings != nil {
		cfg.Volume *= g.settings.GetSettings().SoundVolume
	}
	speaker.Play(audio.NewPopStreamer(cfg))
	return nil
}

// LevelStarted 实现 systems.Presenter
func (g *terminalGame) LevelStarted(level int) {
	log.Printf("[TTY] Level %d started", level)
}

func (g *terminalGame) dismissMessage() {
	if g.message == "" {
		return
	}
	done := g.messageDone
	g.message = ""
	g.messageDone = nil
	if done != nil {
		done()
	}
}

// save 退出时保存设置和进度
func (g *terminalGame) save() {
	if g.settings != nil {
		if err := g.settings.Save(); err != nil {
			log.Printf("[TTY] Failed to save settings: %v", err)
		}
	}
	if g.progress != nil {
		if err := g.progress.Save(); err != nil {
			log.Printf("[TTY] Failed to save progress: %v", err)
		}
	}
}
