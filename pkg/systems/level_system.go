package systems

import (
	"log"
	"math/rand"
	"time"

	"github.com/decker502/meatpop/pkg/components"
	"github.com/decker502/meatpop/pkg/config"
	"github.com/decker502/meatpop/pkg/ecs"
	"github.com/decker502/meatpop/pkg/entities"
	"github.com/decker502/meatpop/pkg/game"
	"github.com/decker502/meatpop/pkg/utils"
)

// LevelSystem 关卡控制器
//
// 状态机：Idle → Running ⇄ Paused → Ended → Running（下一关或重玩）
//
// 每关有一个帧回调（每帧重新请求）和一个 1 秒的倒计时回调，都挂在 game.Scheduler 上。
// 开始或结束关卡时先取消旧的回调，保证任何时候最多只有一组循环在运行。
// 点击、帧回调、倒计时都在同一个 goroutine 上执行，互不抢占。
type LevelSystem struct {
	entityManager *ecs.EntityManager
	scheduler     *game.Scheduler
	rules         *config.GameRules
	state         *game.GameState
	presenter     Presenter

	settings *game.SettingsManager // 可为 nil，此时音效开关只保存在内存
	progress *game.SaveManager     // 可为 nil
	rng      *rand.Rand

	movement *MovementSystem
	flashes  *FlashSystem
	input    *InputSystem

	width, height float64

	frameHandle    game.FrameHandle
	intervalHandle game.IntervalHandle
	lastFrame      float64
	hasLastFrame   bool
	soundOn        bool   // settings 为 nil 时使用
	startCount     uint64 // 每次 Start 递增，用于作废过期的提示框回调
}

// NewLevelSystem 创建关卡控制器
//
// 参数:
//   - em: 实体管理器（目标与闪光都存放在这里）
//   - scheduler: 帧/倒计时调度器
//   - rules: 游戏规则
//   - presenter: 界面展示接口
//   - width, height: 画布尺寸
func NewLevelSystem(em *ecs.EntityManager, scheduler *game.Scheduler, rules *config.GameRules, presenter Presenter, width, height float64) *LevelSystem {
	return &LevelSystem{
		entityManager: em,
		scheduler:     scheduler,
		rules:         rules,
		state:         game.NewGameState(),
		presenter:     presenter,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		movement:      NewMovementSystem(em, rules.Frame),
		flashes:       NewFlashSystem(em),
		input:         NewInputSystem(em, rules.PopFlash.Life),
		width:         width,
		height:        height,
		soundOn:       true,
	}
}

// SetSettingsManager 设置音效开关的持久化存储
func (s *LevelSystem) SetSettingsManager(sm *game.SettingsManager) {
	s.settings = sm
}

// SetSaveManager 设置进度存储
func (s *LevelSystem) SetSaveManager(sm *game.SaveManager) {
	s.progress = sm
}

// SetRand 替换随机源（测试时使用固定种子）
func (s *LevelSystem) SetRand(rng *rand.Rand) {
	s.rng = rng
}

// SetCanvasSize 更新画布尺寸
// 已有目标保持原位，新尺寸从下一帧（反弹）和下一关（生成）开始生效
func (s *LevelSystem) SetCanvasSize(width, height float64) {
	s.width, s.height = width, height
}

// CanvasSize 返回当前画布尺寸
func (s *LevelSystem) CanvasSize() (float64, float64) {
	return s.width, s.height
}

// State 返回当前游戏状态（只读使用）
func (s *LevelSystem) State() *game.GameState {
	return s.state
}

// Start 开始指定关卡
// 取消旧的回调，清空目标和闪光，生成新目标并启动帧循环和倒计时
func (s *LevelSystem) Start(level int) {
	s.stopLoops()
	s.startCount++

	cfg := s.rules.ForLevel(level)

	s.entityManager.Clear()
	entities.SpawnTargets(s.entityManager, cfg, s.rules.Spawn, s.width, s.height, s.rng)
	s.state.Reset(cfg.Level, cfg.Duration, cfg.Count)
	s.hasLastFrame = false

	if s.progress != nil {
		s.progress.RecordLevelReached(cfg.Level)
	}

	log.Printf("[LevelSystem] Level %d started: %d targets, %ds, radius %.0f-%.0f, speed %.0f",
		cfg.Level, cfg.Count, cfg.Duration, cfg.SizeMin, cfg.SizeMax, cfg.Speed)

	s.presenter.LevelStarted(cfg.Level)
	s.pushHUD()

	s.frameHandle = s.scheduler.RequestFrame(s.frame)
	s.intervalHandle = s.scheduler.SetInterval(1, s.tick)
}

// EndLevel 结束当前关卡
// 每关只生效一次；提示框关闭后开始下一关（或重玩）
func (s *LevelSystem) EndLevel(won bool) {
	if !s.state.End() {
		return
	}
	s.stopLoops()

	level := s.state.Level
	next, message := s.rules.Outcome(level, won)

	if won && level >= s.rules.FinalLevel && s.progress != nil {
		s.progress.RecordGameCompleted()
	}

	log.Printf("[LevelSystem] Level %d ended (won=%v), next level %d", level, won, next)
	s.pushHUD()

	startCount := s.startCount
	s.presenter.ShowMessage(message, func() {
		// 提示框关闭前玩家已经手动开始了新的一局
		if s.startCount != startCount {
			return
		}
		s.Start(next)
	})
}

// TogglePause 暂停/继续
// 只在关卡进行中有效；继续时重新请求帧回调，并且第一帧的 Δt 为 0
func (s *LevelSystem) TogglePause() bool {
	if !s.state.TogglePause() {
		return false
	}

	if s.state.IsPaused() {
		s.scheduler.CancelFrame(s.frameHandle)
		s.frameHandle = 0
		log.Printf("[LevelSystem] Paused")
	} else {
		s.hasLastFrame = false
		s.frameHandle = s.scheduler.RequestFrame(s.frame)
		log.Printf("[LevelSystem] Resumed")
	}

	s.pushHUD()
	return true
}

// SoundOn 音效是否开启
func (s *LevelSystem) SoundOn() bool {
	if s.settings != nil {
		return s.settings.SoundEnabled()
	}
	return s.soundOn
}

// SetSoundOn 只在内存中设置音效开关，会断开持久化存储
func (s *LevelSystem) SetSoundOn(on bool) {
	s.settings = nil
	s.soundOn = on
	s.pushHUD()
}

// ToggleSound 切换音效开关，返回切换后的状态
func (s *LevelSystem) ToggleSound() bool {
	if s.settings != nil {
		s.settings.ToggleSound()
	} else {
		s.soundOn = !s.soundOn
	}
	s.pushHUD()
	return s.SoundOn()
}

// Click 处理画布上的点击
// clientX/clientY 为屏幕坐标，rect 为画布在屏幕上的显示区域
func (s *LevelSystem) Click(clientX, clientY float64, rect utils.Rect) bool {
	if !s.state.IsRunning() {
		return false
	}
	x, y := utils.ClientToCanvas(clientX, clientY, rect, s.width, s.height)
	return s.PopAt(x, y)
}

// PopAt 在画布坐标 (x, y) 处点爆目标
// 关卡未运行或已暂停时忽略；所有目标清空时立即判定过关
func (s *LevelSystem) PopAt(x, y float64) bool {
	if !s.state.IsRunning() {
		return false
	}
	if !s.input.Pop(x, y) {
		return false
	}

	cleared := s.state.ConsumeTarget()

	if s.SoundOn() {
		if err := s.presenter.PlayPop(); err != nil {
			log.Printf("[LevelSystem] Pop sound failed: %v", err)
		}
	}

	s.pushHUD()
	if cleared {
		s.EndLevel(true)
	}
	return true
}

// TargetCount 画布上现存的目标数量
func (s *LevelSystem) TargetCount() int {
	return len(ecs.GetEntitiesWith1[*components.TargetComponent](s.entityManager))
}

// frame 帧回调：移动目标、老化闪光、检查漂出失败
func (s *LevelSystem) frame(now float64) {
	s.frameHandle = 0
	if !s.state.IsRunning() {
		return
	}

	dt := 0.0
	if s.hasLastFrame {
		dt = now - s.lastFrame
	}
	s.lastFrame = now
	s.hasLastFrame = true
	dt = s.movement.Step(dt)

	s.movement.Update(dt, s.width)
	s.flashes.Update(dt)
	s.entityManager.RemoveMarkedEntities()

	// 所有目标都漂走了但还没点完
	if s.TargetCount() == 0 && s.state.TargetsRemaining > 0 {
		s.EndLevel(false)
		return
	}

	s.frameHandle = s.scheduler.RequestFrame(s.frame)
}

// tick 倒计时回调，每秒一次
func (s *LevelSystem) tick() {
	if !s.state.IsRunning() {
		return
	}

	expired := s.state.TickSecond()
	s.pushHUD()
	if expired {
		s.EndLevel(false)
	}
}

// stopLoops 取消当前的帧回调和倒计时
func (s *LevelSystem) stopLoops() {
	s.scheduler.CancelFrame(s.frameHandle)
	s.scheduler.ClearInterval(s.intervalHandle)
	s.frameHandle = 0
	s.intervalHandle = 0
}

// pushHUD 推送当前状态到界面
func (s *LevelSystem) pushHUD() {
	s.presenter.UpdateHUD(HUD{
		Level:   s.state.Level,
		Targets: s.state.TargetsRemaining,
		Seconds: s.state.TimeLeft,
		Paused:  s.state.IsPaused(),
		SoundOn: s.SoundOn(),
	})
}
