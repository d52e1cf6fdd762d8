package systems

import (
	"github.com/decker502/meatpop/pkg/components"
	"github.com/decker502/meatpop/pkg/ecs"
)

// FlashSystem 点爆闪光生命周期系统
// 闪光的老化放在帧更新里完成，渲染只读取 Age/Life
type FlashSystem struct {
	entityManager *ecs.EntityManager
}

// NewFlashSystem 创建闪光系统
func NewFlashSystem(em *ecs.EntityManager) *FlashSystem {
	return &FlashSystem{
		entityManager: em,
	}
}

// Update 增加所有闪光的 Age，过期的标记删除
func (s *FlashSystem) Update(dt float64) {
	entities := ecs.GetEntitiesWith1[*components.PopFlashComponent](s.entityManager)

	for _, id := range entities {
		flash, ok := ecs.GetComponent[*components.PopFlashComponent](s.entityManager, id)
		if !ok {
			continue
		}

		flash.Age += dt
		if flash.IsExpired() {
			s.entityManager.DestroyEntity(id)
		}
	}
}
