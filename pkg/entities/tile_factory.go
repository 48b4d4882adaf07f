package entities

import (
	"fmt"

	"github.com/gonewx/bomberman/pkg/components"
	"github.com/gonewx/bomberman/pkg/config"
	"github.com/gonewx/bomberman/pkg/ecs"
	"github.com/gonewx/bomberman/pkg/types"
)

// TileFactory 按模板注册表实例化格子和单位
//
// 这是注册表“在坐标处实例化”能力的实现：核心逻辑只拿到类别、
// 模板名称和权重，不依赖任何渲染或物理资源。
type TileFactory struct {
	em           *ecs.EntityManager
	registry     *config.TileRegistry
	floorWeights map[string]float64
}

// NewTileFactory 创建格子工厂
// 参数:
//   - em: 实体管理器（单位实体在这里创建）
//   - registry: 模板注册表
func NewTileFactory(em *ecs.EntityManager, registry *config.TileRegistry) *TileFactory {
	weights := make(map[string]float64, len(registry.Floors))
	for _, f := range registry.Floors {
		weights[f.Name] = f.Weight
	}
	return &TileFactory{
		em:           em,
		registry:     registry,
		floorWeights: weights,
	}
}

// Registry 返回模板注册表
func (f *TileFactory) Registry() *config.TileRegistry {
	return f.registry
}

// NewFloorTile 创建空闲的地板格子
func (f *TileFactory) NewFloorTile(variant string, x, y int) *components.Tile {
	tile := &components.Tile{
		Kind:         types.TileFloor,
		Name:         variant,
		X:            x,
		Y:            y,
		Weight:       f.floorWeights[variant],
		FloorVariant: variant,
	}
	tile.SetFree(true)
	return tile
}

// NewObstacleTile 创建边界、柱子或可摧毁砖块
// 参数:
//   - kind: TileBorder、TilePillar 或 TileDestructible
//   - floor: 被覆盖的地板变体
//
// 返回:
//   - error: kind 不是障碍类别时返回错误
func (f *TileFactory) NewObstacleTile(kind types.TileKind, x, y int, floor string) (*components.Tile, error) {
	var name string
	switch kind {
	case types.TileBorder:
		name = f.registry.Border
	case types.TilePillar:
		name = f.registry.Pillar
	case types.TileDestructible:
		name = f.registry.Destructible
	default:
		return nil, fmt.Errorf("tile kind %v is not an obstacle", kind)
	}

	tile := &components.Tile{
		Kind:         kind,
		Name:         name,
		X:            x,
		Y:            y,
		FloorVariant: floor,
	}
	tile.SetFree(false)
	return tile, nil
}

// NewUnitEntity 创建玩家或敌人实体及其占用的格子
// 参数:
//   - kind: TilePlayer 或 TileEnemy
//   - template: 模板名称（玩家传空字符串时使用注册表中的玩家模板）
//
// 返回:
//   - ecs.EntityID: 单位实体ID
//   - *components.Tile: 单位占用的格子
//   - error: kind 不是单位类别时返回错误
func (f *TileFactory) NewUnitEntity(kind types.TileKind, template string, x, y int, floor string) (ecs.EntityID, *components.Tile, error) {
	if !kind.IsUnit() {
		return ecs.InvalidEntity, nil, fmt.Errorf("tile kind %v is not a unit", kind)
	}
	if template == "" && kind == types.TilePlayer {
		template = f.registry.Player
	}

	entityID := f.em.CreateEntity()
	f.em.AddComponent(entityID, &components.UnitComponent{
		Kind:     kind,
		Template: template,
		Position: types.Coord{X: x, Y: y},
	})

	tile := &components.Tile{
		Kind:         kind,
		Name:         template,
		X:            x,
		Y:            y,
		FloorVariant: floor,
		Entity:       entityID,
	}
	tile.SetFree(false)
	return entityID, tile, nil
}

// NewBombTile 创建炸弹占用的格子
func (f *TileFactory) NewBombTile(bomb ecs.EntityID, x, y int, floor string) *components.Tile {
	tile := &components.Tile{
		Kind:         types.TileBomb,
		Name:         f.registry.Bomb,
		X:            x,
		Y:            y,
		FloorVariant: floor,
		Entity:       bomb,
	}
	tile.SetFree(false)
	return tile
}

// NewExplosionTile 创建火焰格子
// 火焰格子可以被单位进入（进入即死亡），因此标记为空闲
func (f *TileFactory) NewExplosionTile(x, y int, floor string) *components.Tile {
	tile := &components.Tile{
		Kind:         types.TileExplosion,
		Name:         "explosion",
		X:            x,
		Y:            y,
		FloorVariant: floor,
	}
	tile.SetFree(true)
	return tile
}
