package entities

import (
	"github.com/decker502/meatpop/pkg/components"
	"github.com/decker502/meatpop/pkg/ecs"
)

// NewPopFlash 创建点爆闪光实体
// 闪光在点击位置出现，半径随时间增大、透明度线性衰减，Life 秒后由 FlashSystem 移除
//
// 参数:
//   - em: 实体管理器
//   - x, y: 点击位置（画布坐标）
//   - life: 持续时间（秒）
//
// 返回:
//   - ecs.EntityID: 创建的闪光实体ID
func NewPopFlash(em *ecs.EntityManager, x, y, life float64) ecs.EntityID {
	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(entityID, &components.PopFlashComponent{Age: 0, Life: life})

	return entityID
}
