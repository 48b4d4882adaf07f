package systems

import (
	"fmt"

	"github.com/gonewx/bomberman/pkg/components"
	"github.com/gonewx/bomberman/pkg/ecs"
	"github.com/gonewx/bomberman/pkg/entities"
	"github.com/gonewx/bomberman/pkg/types"
	"github.com/gonewx/bomberman/pkg/utils"
)

// MovementSystem 单位在网格上逐格移动
//
// 单位可以进入地板格子和火焰格子（进入火焰即死亡），
// 进入对方单位所在格子时由碰撞系统裁决。离开的格子还原为炸弹或地板。
type MovementSystem struct {
	em        *ecs.EntityManager
	grid      *GridStore
	factory   *entities.TileFactory
	bombs     *BombSystem
	collision *CollisionSystem
}

// NewMovementSystem 创建移动系统
func NewMovementSystem(em *ecs.EntityManager, grid *GridStore, factory *entities.TileFactory, bombs *BombSystem, collision *CollisionSystem) *MovementSystem {
	return &MovementSystem{
		em:        em,
		grid:      grid,
		factory:   factory,
		bombs:     bombs,
		collision: collision,
	}
}

// Move 让单位向指定方向移动一格
// 返回:
//   - bool: 单位是否离开了原来的格子
//   - error: 实体不是单位或目标越界时返回错误；被障碍挡住不算错误
func (s *MovementSystem) Move(id ecs.EntityID, dir types.Direction) (bool, error) {
	unit, ok := ecs.GetComponent[*components.UnitComponent](s.em, id)
	if !ok {
		return false, fmt.Errorf("move entity %d: not a unit", id)
	}
	if unit.Dead {
		return false, nil
	}

	target := unit.Position.Add(dir, 1)
	if !s.grid.InBounds(target.X, target.Y) {
		return false, fmt.Errorf("move %s %d to %v: %w", unit.Kind, id, target, ErrOutOfBounds)
	}

	dst := s.grid.At(target)
	switch {
	case dst == nil || dst.Kind == types.TileFloor:
		s.relocate(id, unit, target, dst)
		return true, nil

	case dst.Kind == types.TileExplosion:
		// 火焰格子保持不变，单位在其中死亡
		s.leave(unit.Position)
		unit.Position = target
		s.collision.Kill(id)
		return true, nil

	case dst.Kind.IsUnit():
		occupant := dst.Entity
		victim := s.collision.ResolveContact(id, occupant)
		if victim != 0 && victim == occupant {
			s.relocate(id, unit, target, dst)
			return true, nil
		}
		return false, nil
	}

	return false, nil
}

// Wander 让每个存活的敌人尝试向随机方向移动一格
// 返回成功移动的敌人数量
func (s *MovementSystem) Wander(rng utils.RandomSource) int {
	moved := 0
	for _, id := range ecs.GetEntitiesWith[*components.UnitComponent](s.em) {
		unit, _ := ecs.GetComponent[*components.UnitComponent](s.em, id)
		if unit.Kind != types.TileEnemy || unit.Dead {
			continue
		}
		dir := types.Directions[rng.Intn(len(types.Directions))]
		if ok, err := s.Move(id, dir); err == nil && ok {
			moved++
		}
	}
	return moved
}

// relocate 把单位的格子搬到 target
func (s *MovementSystem) relocate(id ecs.EntityID, unit *components.UnitComponent, target types.Coord, dst *components.Tile) {
	tile := s.grid.At(unit.Position)
	if tile == nil || tile.Entity != id {
		// 格子已被火焰覆盖或不一致时重新创建
		tile = &components.Tile{Kind: unit.Kind, Name: unit.Template, Entity: id}
		tile.SetFree(false)
	}

	s.leave(unit.Position)

	floor := ""
	if dst != nil {
		floor = dst.FloorVariant
	}
	tile.X, tile.Y = target.X, target.Y
	tile.FloorVariant = floor
	s.grid.tiles[target.X][target.Y] = tile
	unit.Position = target
}

// leave 单位离开格子后还原该格子：有倒计时的炸弹时显示炸弹，否则还原为地板
func (s *MovementSystem) leave(at types.Coord) {
	tile := s.grid.At(at)
	if tile == nil || !tile.Kind.IsUnit() {
		return
	}

	if bomb := s.bombs.BombAt(at); bomb != ecs.InvalidEntity {
		s.grid.tiles[at.X][at.Y] = s.factory.NewBombTile(bomb, at.X, at.Y, tile.FloorVariant)
		return
	}
	s.grid.tiles[at.X][at.Y] = s.factory.NewFloorTile(tile.FloorVariant, at.X, at.Y)
}
