package systems

import (
	"testing"

	"github.com/decker502/meatpop/pkg/components"
	"github.com/decker502/meatpop/pkg/ecs"
)

// TestHitTestNewestFirst 重叠时命中后生成（画在上层）的目标
func TestHitTestNewestFirst(t *testing.T) {
	em := ecs.NewEntityManager()
	is := NewInputSystem(em, 0.22)

	older := addTarget(em, 100, 100, 40, 0, 0)
	newer := addTarget(em, 120, 100, 40, 0, 0)

	id, ok := is.HitTest(110, 100)
	if !ok || id != newer {
		t.Errorf("HitTest = %d, %v; want newer target %d", id, ok, newer)
	}

	// 只落在旧目标上的点
	id, ok = is.HitTest(65, 100)
	if !ok || id != older {
		t.Errorf("HitTest = %d, %v; want older target %d", id, ok, older)
	}
}

// TestHitTestBoundary 距离等于半径算命中
func TestHitTestBoundary(t *testing.T) {
	em := ecs.NewEntityManager()
	is := NewInputSystem(em, 0.22)
	id := addTarget(em, 100, 100, 40, 0, 0)

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 100, 100, true},
		{"on edge", 140, 100, true},
		{"diagonal edge", 100 + 24, 100 + 32, true}, // 3-4-5
		{"just outside", 140.01, 100, false},
		{"far away", 500, 500, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := is.HitTest(tt.x, tt.y)
			if ok != tt.want {
				t.Errorf("HitTest(%v, %v) hit = %v, want %v", tt.x, tt.y, ok, tt.want)
			}
			if ok && got != id {
				t.Errorf("hit %d, want %d", got, id)
			}
		})
	}
}

// TestPopRemovesOneTargetAndSpawnsFlash 每次点击最多点爆一个目标
func TestPopRemovesOneTargetAndSpawnsFlash(t *testing.T) {
	em := ecs.NewEntityManager()
	is := NewInputSystem(em, 0.22)

	addTarget(em, 100, 100, 40, 0, 0)
	addTarget(em, 100, 100, 40, 0, 0)

	if !is.Pop(100, 100) {
		t.Fatal("Pop should hit")
	}
	if n := len(ecs.GetEntitiesWith1[*components.TargetComponent](em)); n != 1 {
		t.Fatalf("targets left = %d, want 1", n)
	}

	flashes := ecs.GetEntitiesWith1[*components.PopFlashComponent](em)
	if len(flashes) != 1 {
		t.Fatalf("flashes = %d, want 1", len(flashes))
	}
	pos := mustPosition(t, em, flashes[0])
	flash, _ := ecs.GetComponent[*components.PopFlashComponent](em, flashes[0])
	if pos.X != 100 || pos.Y != 100 || flash.Life != 0.22 || flash.Age != 0 {
		t.Errorf("unexpected flash %+v at (%f, %f)", flash, pos.X, pos.Y)
	}

	// 第二次点击点爆剩下的目标，第三次落空
	if !is.Pop(100, 100) {
		t.Fatal("second Pop should hit the remaining target")
	}
	if is.Pop(100, 100) {
		t.Error("third Pop should miss: the same target cannot be popped twice")
	}
}

func TestPopMissDoesNothing(t *testing.T) {
	em := ecs.NewEntityManager()
	is := NewInputSystem(em, 0.22)
	addTarget(em, 100, 100, 40, 0, 0)

	if is.Pop(300, 300) {
		t.Error("Pop should miss")
	}
	if n := len(ecs.GetEntitiesWith1[*components.PopFlashComponent](em)); n != 0 {
		t.Errorf("miss spawned %d flashes", n)
	}
}
