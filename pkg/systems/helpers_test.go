package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/decker502/meatpop/pkg/components"
	"github.com/decker502/meatpop/pkg/ecs"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// addTarget 直接创建一个目标实体
func addTarget(em *ecs.EntityManager, x, y, r, vx, vy float64) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.VelocityComponent{VX: vx, VY: vy})
	em.AddComponent(id, &components.TargetComponent{Radius: r})
	em.AddComponent(id, &components.SpinComponent{Angle: 0, Speed: 1})
	return id
}

func mustPosition(t *testing.T, em *ecs.EntityManager, id ecs.EntityID) *components.PositionComponent {
	t.Helper()
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		t.Fatalf("entity %d has no position", id)
	}
	return pos
}

// newTestRand 固定种子的随机源
func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}
