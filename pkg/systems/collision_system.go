package systems

import (
	"log"

	"github.com/gonewx/bomberman/pkg/components"
	"github.com/gonewx/bomberman/pkg/ecs"
	"github.com/gonewx/bomberman/pkg/types"
)

// DeathHandler 单位死亡回调
// 每个单位最多被调用一次；动画、结算等由实现方负责
type DeathHandler interface {
	OnDeath(id ecs.EntityID, unit *components.UnitComponent)
}

// CollisionSystem 处理火焰与单位、单位与单位的重叠
type CollisionSystem struct {
	em      *ecs.EntityManager
	grid    *GridStore
	handler DeathHandler
}

// NewCollisionSystem 创建碰撞系统
// handler 可以为 nil（只标记死亡，不回调）
func NewCollisionSystem(em *ecs.EntityManager, grid *GridStore, handler DeathHandler) *CollisionSystem {
	return &CollisionSystem{
		em:      em,
		grid:    grid,
		handler: handler,
	}
}

// Kill 将单位标记为死亡
// 返回:
//   - bool: 本次调用是否完成了存活→死亡的转换；已死亡或不是单位时返回 false
func (s *CollisionSystem) Kill(id ecs.EntityID) bool {
	unit, ok := ecs.GetComponent[*components.UnitComponent](s.em, id)
	if !ok || unit.Dead {
		return false
	}

	unit.Dead = true
	log.Printf("[CollisionSystem] %s %s died at %v", unit.Kind, unit.Template, unit.Position)
	if s.handler != nil {
		s.handler.OnDeath(id, unit)
	}
	return true
}

// ResolveExplosion 按火焰格子的遍历顺序处理重叠，杀死其中存活的单位
// 返回本次死亡的单位（已死亡的单位被跳过，重复调用不会产生新的死亡）
func (s *CollisionSystem) ResolveExplosion(cells []types.Coord) []ecs.EntityID {
	var victims []ecs.EntityID
	for _, c := range cells {
		tile := s.grid.At(c)
		if tile == nil || !tile.Kind.IsUnit() {
			continue
		}
		if s.Kill(tile.Entity) {
			victims = append(victims, tile.Entity)
		}
	}
	return victims
}

// ResolveContact 处理单位进入另一个单位所在格子
// 敌人与玩家接触时玩家死亡；其他组合没有效果
// 返回:
//   - ecs.EntityID: 死亡的单位，没有死亡时返回 ecs.InvalidEntity
func (s *CollisionSystem) ResolveContact(mover, occupant ecs.EntityID) ecs.EntityID {
	a, okA := ecs.GetComponent[*components.UnitComponent](s.em, mover)
	b, okB := ecs.GetComponent[*components.UnitComponent](s.em, occupant)
	if !okA || !okB || a.Dead || b.Dead {
		return ecs.InvalidEntity
	}

	var victim ecs.EntityID
	switch {
	case a.Kind == types.TileEnemy && b.Kind == types.TilePlayer:
		victim = occupant
	case a.Kind == types.TilePlayer && b.Kind == types.TileEnemy:
		victim = mover
	default:
		return ecs.InvalidEntity
	}

	if s.Kill(victim) {
		return victim
	}
	return ecs.InvalidEntity
}
