package systems

import (
	"log"

	"github.com/decker502/meatpop/pkg/components"
	"github.com/decker502/meatpop/pkg/ecs"
	"github.com/decker502/meatpop/pkg/entities"
	"github.com/decker502/meatpop/pkg/utils"
)

// InputSystem 点击命中检测
type InputSystem struct {
	entityManager *ecs.EntityManager
	flashLife     float64
}

// NewInputSystem 创建命中检测系统
// flashLife 为命中时生成的闪光持续时间（秒）
func NewInputSystem(em *ecs.EntityManager, flashLife float64) *InputSystem {
	return &InputSystem{
		entityManager: em,
		flashLife:     flashLife,
	}
}

// HitTest 返回画布坐标 (x, y) 命中的目标
// 按创建顺序倒序扫描（后生成的目标画在上层，优先命中），
// 距离圆心不超过半径即算命中（边界包含在内）
func (s *InputSystem) HitTest(x, y float64) (ecs.EntityID, bool) {
	targets := ecs.GetEntitiesWith2[*components.PositionComponent, *components.TargetComponent](s.entityManager)

	for i := len(targets) - 1; i >= 0; i-- {
		id := targets[i]
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		target, _ := ecs.GetComponent[*components.TargetComponent](s.entityManager, id)
		if utils.Distance(pos.X, pos.Y, x, y) <= target.Radius {
			return id, true
		}
	}
	return 0, false
}

// Pop 尝试点爆 (x, y) 处的目标
// 命中时立即删除该目标（同一目标不会被点爆两次），并在点击位置生成闪光
// 每次调用最多点爆一个目标
func (s *InputSystem) Pop(x, y float64) bool {
	id, ok := s.HitTest(x, y)
	if !ok {
		return false
	}

	s.entityManager.DestroyEntity(id)
	s.entityManager.RemoveMarkedEntities()
	entities.NewPopFlash(s.entityManager, x, y, s.flashLife)

	log.Printf("[InputSystem] Popped target %d at (%.1f, %.1f)", id, x, y)
	return true
}
