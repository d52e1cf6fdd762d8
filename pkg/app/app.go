// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/meatpop/pkg/config"
	"github.com/decker502/meatpop/pkg/embedded"
	"github.com/decker502/meatpop/pkg/game"
	"github.com/decker502/meatpop/pkg/scenes"
	"github.com/decker502/meatpop/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "meatpop"

// SampleRate 音频采样率
const SampleRate = 48000

// DefaultRulesPath 内置规则文件路径
const DefaultRulesPath = "data/rules.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Level 大于 0 时启动后直接开始该关卡，否则等待玩家点击 Start
	Level int
	// RulesPath 外部规则文件，为空时使用内置 data/rules.yaml
	RulesPath string
	// TextureSource 目标贴图（本地路径或 HTTP(S) 地址），为空时使用内置贴图
	TextureSource string
	// SoundURL 点爆音效（本地路径或 HTTP(S) 地址），为空时只使用合成音效
	SoundURL string
	// Fullscreen 以全屏启动（同时写入设置）
	Fullscreen bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settingsManager          *game.SettingsManager
	cancel                   context.CancelFunc
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	rules, err := loadRules(cfg.RulesPath)
	if err != nil {
		return nil, err
	}

	// 持久化存储，失败时降级为仅内存
	gdataManager := openStorage()

	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置初始化失败: %w", err)
	}
	if cfg.Fullscreen {
		settingsManager.SetFullscreen(true)
	}
	saveManager := game.NewSaveManager(gdataManager)
	log.Printf("[App] Progress: highest level %d, games completed %d",
		saveManager.GetHighestLevel(), saveManager.GetGamesCompleted())

	// 初始化音频上下文
	audioContext := audio.NewContext(SampleRate)
	resourceManager := game.NewResourceManager(SampleRate)

	ctx, cancel := context.WithCancel(context.Background())
	audioManager := game.NewAudioManager(audioContext, resourceManager, settingsManager)
	audioManager.LoadPopSound(ctx, cfg.SoundURL)
	log.Printf("[App] AudioManager initialized (sound source %q)", cfg.SoundURL)

	textureLoader := game.NewTextureLoader(cfg.TextureSource, resourceManager)

	services := scenes.PlayServices{
		Rules:         rules,
		TextureLoader: textureLoader,
		AudioManager:  audioManager,
		Settings:      settingsManager,
		Progress:      saveManager,
	}

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(level int) game.Scene {
		return scenes.NewPlayScene(services, level)
	})
	sceneManager.LoadLevel(cfg.Level)

	return &App{
		sceneManager:    sceneManager,
		settingsManager: settingsManager,
		cancel:          cancel,
	}, nil
}

// loadRules 加载游戏规则
// 显式指定的规则文件出错时启动失败；内置规则出错时退回默认值
func loadRules(path string) (*config.GameRules, error) {
	if path != "" {
		rules, err := config.LoadGameRules(path)
		if err != nil {
			return nil, fmt.Errorf("规则文件加载失败: %w", err)
		}
		log.Printf("[Config] 加载规则文件: %s", path)
		return rules, nil
	}

	data, err := embedded.ReadFile(DefaultRulesPath)
	if err != nil {
		log.Printf("[Config] Warning: 内置规则不可用: %v (使用默认规则)", err)
		return config.DefaultGameRules(), nil
	}
	rules, err := config.ParseGameRules(data)
	if err != nil {
		log.Printf("[Config] Warning: 内置规则解析失败: %v (使用默认规则)", err)
		return config.DefaultGameRules(), nil
	}
	return rules, nil
}

// openStorage 打开 gdata 存储，失败时返回 nil（设置和进度只保存在内存）
func openStorage() *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: 存储目录不可用: %v", err)
	}
	manager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata 初始化失败: %v (设置不会保存)", err)
		return nil
	}
	return manager
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.DefaultWindowWidth, config.DefaultWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.DefaultWindowWidth, config.DefaultWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏（触屏设备始终全屏）
	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// toggleFullscreen 切换全屏并写入设置
func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}
	a.settingsManager.SetFullscreen(ebiten.IsFullscreen())
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 逻辑屏幕尺寸跟随窗口尺寸，画布按 16:9 规则在其中布局
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.sceneManager.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Fullscreen 启动时是否应进入全屏（来自设置）
func (a *App) Fullscreen() bool {
	return a.settingsManager.GetSettings().Fullscreen
}

// Shutdown 取消后台加载并保存设置和进度
func (a *App) Shutdown() bool {
	a.cancel()
	return a.sceneManager.SaveOnExit()
}
