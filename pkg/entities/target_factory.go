package entities

import (
	"math"
	"math/rand"

	"github.com/decker502/meatpop/pkg/components"
	"github.com/decker502/meatpop/pkg/config"
	"github.com/decker502/meatpop/pkg/ecs"
)

// uniform 返回 [min, max) 区间内的均匀随机数
func uniform(rng *rand.Rand, min, max float64) float64 {
	return rng.Float64()*(max-min) + min
}

// NewTarget 创建一个肉丸目标实体
//
// 生成规则：
//   - 半径 ∈ [SizeMin, SizeMax]
//   - x ∈ [r, width-r]，保证水平方向完整可见
//   - y ∈ [height*TopFraction, height-r]，生成后立即可见
//   - vx ∈ [-HorizontalSpeed, HorizontalSpeed]
//   - vy = Speed + U[SpeedJitterMin, SpeedJitterMax]（向上）
//   - 初始角度 ∈ [0, 2π)，角速度 ∈ [-SpinMax, SpinMax]
//
// 参数:
//   - em: 实体管理器
//   - level: 当前关卡配置
//   - spawn: 生成参数
//   - width, height: 画布尺寸
//   - rng: 随机源（测试时注入固定种子）
//
// 返回:
//   - ecs.EntityID: 创建的目标实体ID
func NewTarget(em *ecs.EntityManager, level config.LevelConfig, spawn config.SpawnConfig, width, height float64, rng *rand.Rand) ecs.EntityID {
	r := uniform(rng, level.SizeMin, level.SizeMax)
	x := uniform(rng, r, width-r)
	y := uniform(rng, height*spawn.TopFraction, height-r)

	vx := uniform(rng, -spawn.HorizontalSpeed, spawn.HorizontalSpeed)
	vy := level.Speed + uniform(rng, spawn.SpeedJitterMin, spawn.SpeedJitterMax)

	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(entityID, &components.VelocityComponent{VX: vx, VY: vy})
	em.AddComponent(entityID, &components.TargetComponent{Radius: r})
	em.AddComponent(entityID, &components.SpinComponent{
		Angle: uniform(rng, 0, 2*math.Pi),
		Speed: uniform(rng, -spawn.SpinMax, spawn.SpinMax),
	})

	return entityID
}

// SpawnTargets 为关卡开始生成 level.Count 个目标
// 返回按创建顺序排列的实体ID
func SpawnTargets(em *ecs.EntityManager, level config.LevelConfig, spawn config.SpawnConfig, width, height float64, rng *rand.Rand) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, level.Count)
	for i := 0; i < level.Count; i++ {
		ids = append(ids, NewTarget(em, level, spawn, width, height, rng))
	}
	return ids
}
