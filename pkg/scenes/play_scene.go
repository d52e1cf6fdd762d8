package scenes

import (
	"context"
	"log"

	"github.com/decker502/meatpop/pkg/config"
	"github.com/decker502/meatpop/pkg/ecs"
	"github.com/decker502/meatpop/pkg/game"
	"github.com/decker502/meatpop/pkg/systems"
	"github.com/decker502/meatpop/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// PlayServices PlayScene 依赖的共享服务
// 由 app 包创建，场景重建时复用
type PlayServices struct {
	Rules         *config.GameRules
	TextureLoader *game.TextureLoader
	AudioManager  *game.AudioManager    // 可为 nil
	Settings      *game.SettingsManager // 可为 nil
	Progress      *game.SaveManager     // 可为 nil
}

// PlayScene 游戏主场景
//
// 画布、控制按钮和 HUD 都在这个场景里。关卡逻辑由 systems.LevelSystem 负责，
// 场景作为 systems.Presenter 接收 HUD、提示框和音效请求。
// 帧回调和倒计时挂在 game.Scheduler 上，每次 Update 按 Δt 推进。
type PlayScene struct {
	services PlayServices

	entityManager *ecs.EntityManager
	scheduler     *game.Scheduler
	levelSystem   *systems.LevelSystem
	renderSystem  *systems.RenderSystem

	ctx    context.Context
	cancel context.CancelFunc

	layout  config.PageLayout
	canvas  *ebiten.Image // 画布离屏图像，尺寸变化时重建
	texture *ebiten.Image
	texGen  uint64 // texture 对应的加载代数

	hud         systems.HUD
	message     string // 非空时显示模态提示框
	messageDone func()

	autoStartLevel int // > 0 时第一次 Update 直接开始该关卡

	hudFont     *text.GoTextFace
	buttonFont  *text.GoTextFace
	messageFont *text.GoTextFace
}

// NewPlayScene 创建游戏场景
//
// 参数:
//   - services: 共享服务
//   - level: 大于 0 时场景启动后直接开始该关卡；否则等待玩家点击 Start
func NewPlayScene(services PlayServices, level int) *PlayScene {
	if services.Rules == nil {
		services.Rules = config.DefaultGameRules()
	}

	layout := config.LayoutPage(config.DefaultWindowWidth, config.DefaultWindowHeight)
	em := ecs.NewEntityManager()
	scheduler := game.NewScheduler()

	s := &PlayScene{
		services:       services,
		entityManager:  em,
		scheduler:      scheduler,
		renderSystem:   systems.NewRenderSystem(em, services.Rules.PopFlash),
		layout:         layout,
		autoStartLevel: level,
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.levelSystem = systems.NewLevelSystem(em, scheduler, services.Rules, s, layout.Canvas.Width, layout.Canvas.Height)
	s.levelSystem.SetSettingsManager(services.Settings)
	s.levelSystem.SetSaveManager(services.Progress)

	first := services.Rules.ForLevel(1)
	s.hud = systems.HUD{
		Level:   first.Level,
		Targets: first.Count,
		Seconds: first.Duration,
		SoundOn: s.levelSystem.SoundOn(),
	}

	s.loadFonts()

	// 首次加载贴图，之后每关开始时按需重试
	if services.TextureLoader != nil {
		services.TextureLoader.Ensure(s.ctx)
	}

	log.Printf("[PlayScene] Created (canvas %.0fx%.0f, auto start level %d)", layout.Canvas.Width, layout.Canvas.Height, level)
	return s
}

// loadFonts 加载 HUD、按钮和提示框字体，失败时对应文字不绘制
func (s *PlayScene) loadFonts() {
	var err error
	if s.hudFont, err = utils.NewUIFace(16); err != nil {
		log.Printf("[PlayScene] Warning: %v", err)
		return
	}
	s.buttonFont, _ = utils.NewUIFace(15)
	s.messageFont, _ = utils.NewUIFace(22)
}

// LevelSystem 返回关卡控制器
func (s *PlayScene) LevelSystem() *systems.LevelSystem {
	return s.levelSystem
}

// Layout 返回当前页面布局
func (s *PlayScene) Layout() config.PageLayout {
	return s.layout
}

// HUD 返回最近一次推送的 HUD
func (s *PlayScene) HUD() systems.HUD {
	return s.hud
}

// Message 返回当前提示框文本，没有提示框时为空
func (s *PlayScene) Message() string {
	return s.message
}

// Resize 窗口尺寸变化时重新布局
// 画布尺寸改变后重建离屏图像，已有目标保持画布坐标不变
func (s *PlayScene) Resize(width, height int) {
	layout := config.LayoutPage(width, height)
	sizeChanged := layout.Canvas.Width != s.layout.Canvas.Width || layout.Canvas.Height != s.layout.Canvas.Height
	s.layout = layout

	if sizeChanged {
		s.canvas = nil
		s.levelSystem.SetCanvasSize(layout.Canvas.Width, layout.Canvas.Height)
		log.Printf("[PlayScene] Canvas resized to %.0fx%.0f", layout.Canvas.Width, layout.Canvas.Height)
	}
}

// Update 处理输入并推进调度器
func (s *PlayScene) Update(deltaTime float64) {
	s.handleInput()
	s.step(deltaTime)
}

// step 不依赖输入设备的那部分更新
func (s *PlayScene) step(deltaTime float64) {
	if s.autoStartLevel > 0 {
		level := s.autoStartLevel
		s.autoStartLevel = 0
		s.levelSystem.Start(level)
	}

	// 提示框显示期间关卡已经停止，调度器里没有待执行的回调
	s.scheduler.Advance(deltaTime)
	s.syncTexture()
}

// syncTexture 贴图加载完成后转换为 ebiten 图像（每个加载代数只转换一次）
func (s *PlayScene) syncTexture() {
	loader := s.services.TextureLoader
	if loader == nil || !loader.Ready() {
		return
	}
	img, gen := loader.Image()
	if img == nil || gen == s.texGen {
		return
	}
	s.texture = ebiten.NewImageFromImage(img)
	s.texGen = gen
	log.Printf("[PlayScene] Texture ready (%dx%d)", img.Bounds().Dx(), img.Bounds().Dy())
}

// SaveOnExit 保存设置和进度，并取消后台加载
func (s *PlayScene) SaveOnExit() bool {
	s.cancel()

	ok := true
	if s.services.Settings != nil {
		if err := s.services.Settings.Save(); err != nil {
			log.Printf("[PlayScene] Failed to save settings: %v", err)
			ok = false
		}
	}
	if s.services.Progress != nil {
		if err := s.services.Progress.Save(); err != nil {
			log.Printf("[PlayScene] Failed to save progress: %v", err)
			ok = false
		}
	}
	return ok
}

// UpdateHUD 实现 systems.Presenter
func (s *PlayScene) UpdateHUD(hud systems.HUD) {
	s.hud = hud
}

// ShowMessage 实现 systems.Presenter
// 同一时间只有一个提示框，新的提示替换旧的
func (s *PlayScene) ShowMessage(msg string, dismissed func()) {
	s.message = msg
	s.messageDone = dismissed
	log.Printf("[PlayScene] Message: %q", msg)
}

// PlayPop 实现 systems.Presenter
func (s *PlayScene) PlayPop() error {
	if s.services.AudioManager == nil {
		return game.ErrAudioUnavailable
	}
	return s.services.AudioManager.PlayPop()
}

// LevelStarted 实现 systems.Presenter
// 贴图尚未加载成功时重试一次
func (s *PlayScene) LevelStarted(level int) {
	if s.services.TextureLoader != nil && s.services.TextureLoader.Ensure(s.ctx) {
		log.Printf("[PlayScene] Retrying texture load for level %d", level)
	}
}

// dismissMessage 关闭提示框并执行回调（通常会开始下一关）
func (s *PlayScene) dismissMessage() {
	if s.message == "" {
		return
	}
	done := s.messageDone
	s.message = ""
	s.messageDone = nil
	if done != nil {
		done()
	}
}
