package ecs

import "testing"

// 测试组件类型定义
type testPositionComponent struct {
	X, Y int
}

type testHealthComponent struct {
	Dead bool
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
	if em.EntityCount() != 2 {
		t.Errorf("EntityCount: got %d, want 2", em.EntityCount())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	pos := &testPositionComponent{X: 3, Y: 4}
	em.AddComponent(id, pos)

	got, ok := GetComponent[*testPositionComponent](em, id)
	if !ok {
		t.Fatal("Component should be found")
	}
	if got != pos {
		t.Errorf("Expected the same pointer back, got %+v", got)
	}

	// 未添加的组件类型
	if _, ok := GetComponent[*testHealthComponent](em, id); ok {
		t.Error("Health component should not be found")
	}

	// 不存在的实体
	if _, ok := GetComponent[*testPositionComponent](em, 999); ok {
		t.Error("Component of unknown entity should not be found")
	}
}

func TestHasComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	if HasComponent[*testPositionComponent](em, id) {
		t.Error("Should not have component before adding")
	}

	em.AddComponent(id, &testPositionComponent{})
	if !HasComponent[*testPositionComponent](em, id) {
		t.Error("Should have component after adding")
	}
	if HasComponent[*testHealthComponent](em, id) {
		t.Error("Should not report a component of another type")
	}
	if HasComponent[*testPositionComponent](em, InvalidEntity) {
		t.Error("InvalidEntity should never have components")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	// 标记删除后实体仍然存在
	em.DestroyEntity(id)
	if !em.Exists(id) {
		t.Error("Entity should still exist before RemoveMarkedEntities")
	}

	em.RemoveMarkedEntities()
	if em.Exists(id) {
		t.Error("Entity should be removed after RemoveMarkedEntities")
	}
	if HasComponent[*testPositionComponent](em, id) {
		t.Error("Components should be removed with the entity")
	}
}

// TestGetEntitiesWithOrdering 查询结果必须按ID升序，保证模拟的确定性
func TestGetEntitiesWithOrdering(t *testing.T) {
	em := NewEntityManager()

	var withHealth []EntityID
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testPositionComponent{X: i})
		if i%3 == 0 {
			em.AddComponent(id, &testHealthComponent{})
			withHealth = append(withHealth, id)
		}
	}

	all := GetEntitiesWith[*testPositionComponent](em)
	if len(all) != 50 {
		t.Fatalf("Expected 50 entities, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1] >= all[i] {
			t.Fatalf("Entities not in ascending order at %d: %v", i, all)
		}
	}

	health := GetEntitiesWith[*testHealthComponent](em)
	if len(health) != len(withHealth) {
		t.Fatalf("Expected %d entities with health, got %d", len(withHealth), len(health))
	}
	for i := range health {
		if health[i] != withHealth[i] {
			t.Errorf("Entity %d: got %d, want %d", i, health[i], withHealth[i])
		}
	}
}
