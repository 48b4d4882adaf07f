package systems

import (
	"fmt"
	"log"

	"github.com/zyedidia/generic/mapset"

	"github.com/gonewx/bomberman/pkg/components"
	"github.com/gonewx/bomberman/pkg/config"
	"github.com/gonewx/bomberman/pkg/ecs"
	"github.com/gonewx/bomberman/pkg/entities"
	"github.com/gonewx/bomberman/pkg/types"
)

// Detonation 一颗炸弹的引爆结果
type Detonation struct {
	Bomb      ecs.EntityID   // 已移除的炸弹实体
	Owner     ecs.EntityID   // 炸弹放置者
	Origin    types.Coord    // 炸弹位置
	Cells     []types.Coord  // 火焰覆盖的格子（中心在前，随后左、右、下、上）
	Destroyed []types.Coord  // 被摧毁的砖块
	Victims   []ecs.EntityID // 本次死亡的单位
	Chained   bool           // 是否由其他炸弹的火焰引爆
}

// BombSystem 管理炸弹倒计时和爆炸传播
//
// 生命周期: Armed（倒计时）→ Detonated（终态，生成火焰后移除）。
// 火焰沿四个方向传播，遇到边界或柱子停止（不包含该格），
// 遇到可摧毁砖块时摧毁它并停止（包含该格）。
type BombSystem struct {
	em             *ecs.EntityManager
	grid           *GridStore
	factory        *entities.TileFactory
	collision      *CollisionSystem
	explosionTicks int
	chainReaction  bool
	nextSeq        int
}

// NewBombSystem 创建炸弹系统
func NewBombSystem(em *ecs.EntityManager, grid *GridStore, factory *entities.TileFactory, collision *CollisionSystem, cfg config.BombConfig) *BombSystem {
	ticks := cfg.ExplosionTicks
	if ticks <= 0 {
		ticks = config.DefaultExplosionTicks
	}
	return &BombSystem{
		em:             em,
		grid:           grid,
		factory:        factory,
		collision:      collision,
		explosionTicks: ticks,
		chainReaction:  cfg.ChainReaction,
	}
}

// Place 放置炸弹
// 参数:
//   - at: 炸弹位置
//   - blastRange: 每个方向的最大传播格数（负数按 0 处理）
//   - fuseTicks: 引信长度（小于 1 按 1 处理）
//   - owner: 放置者；放置者可以把炸弹放在自己脚下
//
// 返回:
//   - ecs.EntityID: 炸弹实体
//   - error: 越界返回 ErrOutOfBounds，格子被占用返回 ErrOccupiedCell
func (s *BombSystem) Place(at types.Coord, blastRange, fuseTicks int, owner ecs.EntityID) (ecs.EntityID, error) {
	if !s.grid.InBounds(at.X, at.Y) {
		return ecs.InvalidEntity, fmt.Errorf("place bomb at %v: %w", at, ErrOutOfBounds)
	}
	if s.BombAt(at) != ecs.InvalidEntity {
		return ecs.InvalidEntity, fmt.Errorf("place bomb at %v: bomb already there: %w", at, ErrOccupiedCell)
	}

	tile := s.grid.At(at)
	underOwner := tile != nil && tile.Kind.IsUnit() && owner != 0 && tile.Entity == owner
	onFloor := tile == nil || (tile.Kind == types.TileFloor && tile.IsFree())
	if !underOwner && !onFloor {
		return ecs.InvalidEntity, fmt.Errorf("place bomb at %v on %v: %w", at, tile.Kind, ErrOccupiedCell)
	}

	if blastRange < 0 {
		blastRange = 0
	}
	if fuseTicks < 1 {
		fuseTicks = 1
	}

	s.nextSeq++
	id := s.em.CreateEntity()
	s.em.AddComponent(id, &components.BombComponent{
		Position:  at,
		Range:     blastRange,
		FuseTicks: fuseTicks,
		State:     components.BombArmed,
		Owner:     owner,
		Seq:       s.nextSeq,
	})

	// 站在炸弹上的单位离开后，移动系统会把格子换成炸弹
	if onFloor {
		floor := ""
		if tile != nil {
			floor = tile.FloorVariant
		}
		s.grid.tiles[at.X][at.Y] = s.factory.NewBombTile(id, at.X, at.Y, floor)
	}

	log.Printf("[BombSystem] Bomb %d armed at %v: range=%d, fuse=%d", id, at, blastRange, fuseTicks)
	return id, nil
}

// BombAt 返回指定格子上处于倒计时的炸弹，没有时返回 ecs.InvalidEntity
func (s *BombSystem) BombAt(at types.Coord) ecs.EntityID {
	for _, id := range ecs.GetEntitiesWith[*components.BombComponent](s.em) {
		bomb, _ := ecs.GetComponent[*components.BombComponent](s.em, id)
		if bomb.State == components.BombArmed && bomb.Position == at {
			return id
		}
	}
	return ecs.InvalidEntity
}

// ArmedCount 返回指定放置者当前处于倒计时的炸弹数量
func (s *BombSystem) ArmedCount(owner ecs.EntityID) int {
	count := 0
	for _, id := range ecs.GetEntitiesWith[*components.BombComponent](s.em) {
		bomb, _ := ecs.GetComponent[*components.BombComponent](s.em, id)
		if bomb.State == components.BombArmed && bomb.Owner == owner {
			count++
		}
	}
	return count
}

// Rays 计算从 origin 出发的四条爆炸射线（左、右、下、上）
// 每条射线最多 blastRange 格，不包含第一个不可摧毁障碍或网格边缘之外的格子，
// 包含第一个可摧毁砖块并在此停止
func (s *BombSystem) Rays(origin types.Coord, blastRange int) [4][]types.Coord {
	var rays [4][]types.Coord
	for i, dir := range types.Directions {
		for step := 1; step <= blastRange; step++ {
			c := origin.Add(dir, step)
			if !s.grid.InBounds(c.X, c.Y) {
				break
			}
			tile := s.grid.At(c)
			if tile != nil && tile.Kind.IsIndestructible() {
				break
			}
			rays[i] = append(rays[i], c)
			if tile != nil && tile.Kind == types.TileDestructible {
				break
			}
		}
	}
	return rays
}

// Tick 推进一个 tick
//
// 先让已有火焰老化（到期还原为地板），再为所有倒计时中的炸弹减少引信，
// 按放置顺序引爆到期的炸弹。开启连锁时，被火焰波及的炸弹在同一 tick 内引爆。
func (s *BombSystem) Tick() []Detonation {
	s.ageExplosions()

	var due []ecs.EntityID
	for _, id := range ecs.GetEntitiesWith[*components.BombComponent](s.em) {
		bomb, _ := ecs.GetComponent[*components.BombComponent](s.em, id)
		if bomb.State != components.BombArmed {
			continue
		}
		bomb.FuseTicks--
		if bomb.FuseTicks <= 0 {
			due = append(due, id)
		}
	}

	var detonations []Detonation
	chained := mapset.New[ecs.EntityID]()
	for len(due) > 0 {
		id := due[0]
		due = due[1:]

		bomb, ok := ecs.GetComponent[*components.BombComponent](s.em, id)
		if !ok || bomb.State != components.BombArmed {
			continue
		}

		det, triggered := s.detonate(id, bomb)
		det.Chained = chained.Has(id)
		detonations = append(detonations, det)

		for _, other := range triggered {
			chained.Put(other)
			due = append(due, other)
		}
	}

	s.em.RemoveMarkedEntities()
	return detonations
}

// Explosions 返回当前存在的火焰格子
func (s *BombSystem) Explosions() []types.Coord {
	var cells []types.Coord
	for _, id := range ecs.GetEntitiesWith[*components.ExplosionComponent](s.em) {
		exp, _ := ecs.GetComponent[*components.ExplosionComponent](s.em, id)
		cells = append(cells, exp.Cells...)
	}
	return cells
}

// detonate 引爆一颗炸弹
// 返回引爆结果以及被火焰波及、需要连锁引爆的其他炸弹
func (s *BombSystem) detonate(id ecs.EntityID, bomb *components.BombComponent) (Detonation, []ecs.EntityID) {
	bomb.State = components.BombDetonated
	bomb.FuseTicks = 0

	det := Detonation{
		Bomb:   id,
		Owner:  bomb.Owner,
		Origin: bomb.Position,
		Cells:  []types.Coord{bomb.Position},
	}
	for _, ray := range s.Rays(bomb.Position, bomb.Range) {
		det.Cells = append(det.Cells, ray...)
	}

	// 先处理单位死亡，再覆盖格子
	det.Victims = s.collision.ResolveExplosion(det.Cells)

	explosion := s.em.CreateEntity()
	covered := mapset.New[types.Coord]()
	var triggered []ecs.EntityID

	for _, c := range det.Cells {
		if covered.Has(c) {
			continue
		}
		covered.Put(c)

		if other := s.BombAt(c); other != ecs.InvalidEntity {
			if !s.chainReaction {
				continue
			}
			if otherBomb, ok := ecs.GetComponent[*components.BombComponent](s.em, other); ok {
				otherBomb.FuseTicks = 0
			}
			triggered = append(triggered, other)
		}

		tile := s.grid.At(c)
		floor := ""
		if tile != nil {
			floor = tile.FloorVariant
			if tile.Kind == types.TileDestructible {
				det.Destroyed = append(det.Destroyed, c)
			}
		}

		fire := s.factory.NewExplosionTile(c.X, c.Y, floor)
		fire.Entity = explosion
		s.grid.tiles[c.X][c.Y] = fire
	}

	s.em.AddComponent(explosion, &components.ExplosionComponent{
		Origin:    bomb.Position,
		Cells:     det.Cells,
		TicksLeft: s.explosionTicks,
		Destroyed: det.Destroyed,
	})
	s.em.DestroyEntity(id)

	log.Printf("[BombSystem] Bomb %d detonated at %v: cells=%d, destroyed=%d, victims=%d",
		id, bomb.Position, len(det.Cells), len(det.Destroyed), len(det.Victims))
	return det, triggered
}

// ageExplosions 火焰老化，到期后还原为地板
// 只还原仍属于该次爆炸的格子，避免提前清除后来的重叠火焰
func (s *BombSystem) ageExplosions() {
	for _, id := range ecs.GetEntitiesWith[*components.ExplosionComponent](s.em) {
		exp, _ := ecs.GetComponent[*components.ExplosionComponent](s.em, id)
		exp.TicksLeft--
		if exp.TicksLeft > 0 {
			continue
		}

		for _, c := range exp.Cells {
			tile := s.grid.At(c)
			if tile == nil || tile.Kind != types.TileExplosion || tile.Entity != id {
				continue
			}
			s.grid.tiles[c.X][c.Y] = s.factory.NewFloorTile(tile.FloorVariant, c.X, c.Y)
		}
		s.em.DestroyEntity(id)
	}
	s.em.RemoveMarkedEntities()
}
