package game

// Phase 关卡状态机的阶段
//
//	Idle → Running ⇄ Paused
//	Running → Ended → Running（下一关或重玩）
type Phase int

const (
	// PhaseIdle 尚未开始第一关
	PhaseIdle Phase = iota
	// PhaseRunning 关卡进行中
	PhaseRunning
	// PhasePaused 暂停（只能从 Running 进入）
	PhasePaused
	// PhaseEnded 关卡已结束，等待提示框关闭后开始下一关
	PhaseEnded
)

// String 返回阶段名称（用于日志）
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseRunning:
		return "Running"
	case PhasePaused:
		return "Paused"
	case PhaseEnded:
		return "Ended"
	}
	return "Unknown"
}

// GameState 存储当前这一局的状态
// 由 LevelSystem 独占持有，每关开始时重置
type GameState struct {
	Level            int   // 当前关卡号
	TimeLeft         int   // 剩余秒数
	TargetsRemaining int   // 还需要点爆的目标数量
	Phase            Phase // 状态机阶段
}

// NewGameState 创建处于 Idle 状态的 GameState
func NewGameState() *GameState {
	return &GameState{Phase: PhaseIdle}
}

// Reset 开始新关卡时重置所有状态并进入 Running
func (gs *GameState) Reset(level, duration, targets int) {
	gs.Level = level
	gs.TimeLeft = duration
	gs.TargetsRemaining = targets
	gs.Phase = PhaseRunning
}

// IsRunning 关卡进行中且未暂停
func (gs *GameState) IsRunning() bool {
	return gs.Phase == PhaseRunning
}

// IsPaused 是否处于暂停
func (gs *GameState) IsPaused() bool {
	return gs.Phase == PhasePaused
}

// TogglePause 切换暂停状态
// 只在 Running/Paused 之间切换，其他阶段返回 false 表示未切换
func (gs *GameState) TogglePause() bool {
	switch gs.Phase {
	case PhaseRunning:
		gs.Phase = PhasePaused
		return true
	case PhasePaused:
		gs.Phase = PhaseRunning
		return true
	}
	return false
}

// TickSecond 倒计时减一秒（最低为0）
// 返回 true 表示时间刚好耗尽
func (gs *GameState) TickSecond() bool {
	if gs.TimeLeft <= 0 {
		gs.TimeLeft = 0
		return false
	}
	gs.TimeLeft--
	return gs.TimeLeft == 0
}

// ConsumeTarget 目标被点爆时调用，剩余数量减一（最低为0）
// 返回 true 表示所有目标刚好清空
func (gs *GameState) ConsumeTarget() bool {
	if gs.TargetsRemaining <= 0 {
		gs.TargetsRemaining = 0
		return false
	}
	gs.TargetsRemaining--
	return gs.TargetsRemaining == 0
}

// End 标记关卡结束
// 返回 false 表示关卡已经结束过（或从未开始），调用方应忽略这次结束
func (gs *GameState) End() bool {
	if gs.Phase != PhaseRunning && gs.Phase != PhasePaused {
		return false
	}
	gs.Phase = PhaseEnded
	return true
}
