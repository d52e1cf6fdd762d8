package systems

// HUD 界面上显示的状态
type HUD struct {
	Level   int  // 当前关卡
	Targets int  // 剩余目标
	Seconds int  // 剩余秒数
	Paused  bool // Pause/Resume 按钮文字
	SoundOn bool // Sound: On/Off 按钮文字
}

// Presenter 关卡系统对外的展示接口
//
// LevelSystem 只通过这个接口和界面打交道，因此可以在没有窗口的测试中运行。
// ebiten 前端由 scenes.PlayScene 实现，终端前端由 cmd/meatpop-tty 实现。
// 所有方法都在游戏循环所在的 goroutine 上调用。
type Presenter interface {
	// UpdateHUD 状态变化后推送最新的 HUD
	UpdateHUD(hud HUD)

	// ShowMessage 显示关卡结束提示（模态）
	// 玩家关闭提示后调用 dismissed，下一关随之开始
	ShowMessage(text string, dismissed func())

	// PlayPop 播放点爆音效，错误由调用方忽略
	PlayPop() error

	// LevelStarted 每关开始时调用（贴图未加载成功时在这里重试）
	LevelStarted(level int)
}
