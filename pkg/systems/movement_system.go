package systems

import (
	"github.com/decker502/meatpop/pkg/components"
	"github.com/decker502/meatpop/pkg/config"
	"github.com/decker502/meatpop/pkg/ecs"
)

// MovementSystem 目标移动系统
// 负责积分位置和角度、左右墙反弹，以及移除漂出画布顶部的目标
type MovementSystem struct {
	entityManager *ecs.EntityManager
	maxStep       float64 // 单帧 Δt 上限
	driftMargin   float64 // 顶边超出多少像素视为漂出
}

// NewMovementSystem 创建移动系统
func NewMovementSystem(em *ecs.EntityManager, frame config.FrameConfig) *MovementSystem {
	return &MovementSystem{
		entityManager: em,
		maxStep:       frame.MaxStep,
		driftMargin:   frame.DriftMargin,
	}
}

// Step 返回实际使用的 Δt：不小于 0，不超过 maxStep
func (s *MovementSystem) Step(dt float64) float64 {
	if dt < 0 {
		return 0
	}
	if dt > s.maxStep {
		return s.maxStep
	}
	return dt
}

// Update 推进所有目标一帧
//
// 参数：
//   - dt: 距上一帧的时间（秒），超过 maxStep 时截断
//   - width: 画布宽度，用于左右反弹
//
// 返回：
//   - missed: 本帧漂出画布被标记删除的目标数量（不影响剩余目标计数）
//
// 漂出的目标只标记删除，调用方负责 RemoveMarkedEntities
func (s *MovementSystem) Update(dt, width float64) (missed int) {
	dt = s.Step(dt)

	targets := ecs.GetEntitiesWith3[
		*components.PositionComponent,
		*components.VelocityComponent,
		*components.TargetComponent,
	](s.entityManager)

	for _, id := range targets {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)
		target, _ := ecs.GetComponent[*components.TargetComponent](s.entityManager, id)
		r := target.Radius

		pos.X += vel.VX * dt
		pos.Y -= vel.VY * dt
		if spin, ok := ecs.GetComponent[*components.SpinComponent](s.entityManager, id); ok {
			spin.Angle += spin.Speed * dt
		}

		// 左右墙反弹
		if pos.X < r {
			pos.X = r
			vel.VX = -vel.VX
		}
		if pos.X > width-r {
			pos.X = width - r
			vel.VX = -vel.VX
		}
	}

	// 漂出顶部的目标视为错过
	for _, id := range targets {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		target, _ := ecs.GetComponent[*components.TargetComponent](s.entityManager, id)
		if pos.Y+target.Radius < -s.driftMargin {
			s.entityManager.DestroyEntity(id)
			missed++
		}
	}

	return missed
}
