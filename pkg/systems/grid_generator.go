package systems

import (
	"fmt"
	"log"

	"github.com/gonewx/bomberman/pkg/config"
	"github.com/gonewx/bomberman/pkg/ecs"
	"github.com/gonewx/bomberman/pkg/entities"
	"github.com/gonewx/bomberman/pkg/types"
	"github.com/gonewx/bomberman/pkg/utils"
)

// GenerationResult 一次成功生成的地图
type GenerationResult struct {
	Grid          *GridStore
	Player        ecs.EntityID   // 玩家实体
	Enemies       []ecs.EntityID // 敌人实体（按放置顺序）
	Pillars       int            // 已放置的柱子数量
	Destructibles int            // 已放置的可摧毁砖块数量
	Attempts      int            // 成功前使用的尝试次数（含成功的一次）
}

// GridGenerator 程序化生成竞技场
//
// 每次尝试按行优先顺序（y 外层，x 内层）遍历所有格子，依次执行：
// 地板变体选择、边界、柱子、可摧毁砖块、敌人；全部遍历完成后放置玩家。
// 生成的敌人数量不足时丢弃整张地图重新生成，直到达到重试上限。
type GridGenerator struct {
	em           *ecs.EntityManager
	factory      *entities.TileFactory
	cfg          *config.ArenaConfig
	rng          utils.RandomSource
	floorNames   []string
	floorWeights []float64
	enemies      []config.EnemyTemplate // 加载时打乱一次，之后每次尝试按此顺序消费
}

// attemptState 单次尝试的计数器
type attemptState struct {
	grid          *GridStore
	pillars       int
	destructibles int
	enemies       []ecs.EntityID
	player        ecs.EntityID
}

// NewGridGenerator 创建地图生成器
// 参数:
//   - em: 实体管理器（单位实体在此创建）
//   - factory: 格子工厂
//   - cfg: 竞技场配置
//   - rng: 随机数来源
func NewGridGenerator(em *ecs.EntityManager, factory *entities.TileFactory, cfg *config.ArenaConfig, rng utils.RandomSource) *GridGenerator {
	registry := factory.Registry()

	names := make([]string, len(registry.Floors))
	weights := make([]float64, len(registry.Floors))
	for i, f := range registry.Floors {
		names[i] = f.Name
		weights[i] = f.Weight
	}

	enemies := make([]config.EnemyTemplate, len(registry.Enemies))
	copy(enemies, registry.Enemies)
	utils.Shuffle(rng, len(enemies), func(i, j int) {
		enemies[i], enemies[j] = enemies[j], enemies[i]
	})

	return &GridGenerator{
		em:           em,
		factory:      factory,
		cfg:          cfg,
		rng:          rng,
		floorNames:   names,
		floorWeights: weights,
		enemies:      enemies,
	}
}

// EnemyOrder 返回打乱后的敌人模板顺序
func (g *GridGenerator) EnemyOrder() []config.EnemyTemplate {
	return g.enemies
}

// PlayerSpawn 返回玩家出生点 (1, height-2)
func (g *GridGenerator) PlayerSpawn() types.Coord {
	return types.Coord{X: 1, Y: g.cfg.Grid.Height - 2}
}

// IsInSafeZone 检查坐标是否位于玩家出生点的安全区内
//
// 安全区是以出生点为一个角、向 +x 延伸 d 格、向 -y 延伸 d 格的矩形，
// 不是以出生点为中心的正方形。
func (g *GridGenerator) IsInSafeZone(diameter, x, y int) bool {
	spawn := g.PlayerSpawn()
	maxX := spawn.X + diameter
	minY := spawn.Y - diameter
	return x >= spawn.X && x <= maxX && y <= spawn.Y && y >= minY
}

// Generate 生成满足敌人数量要求的地图
// 返回:
//   - *GenerationResult: 生成结果
//   - error: 超过 generation.maxAttempts 仍未满足时返回包装了 ErrGenerationUnsatisfiable 的错误
func (g *GridGenerator) Generate() (*GenerationResult, error) {
	maxAttempts := g.cfg.Generation.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = config.DefaultMaxAttempts
	}

	want := g.cfg.Enemies.Count
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		state := g.generateOnce()
		if len(state.enemies) == want {
			log.Printf("[GridGenerator] Generated %dx%d arena in %d attempt(s): pillars=%d, destructibles=%d, enemies=%d",
				g.cfg.Grid.Width, g.cfg.Grid.Height, attempt, state.pillars, state.destructibles, len(state.enemies))
			return &GenerationResult{
				Grid:          state.grid,
				Player:        state.player,
				Enemies:       state.enemies,
				Pillars:       state.pillars,
				Destructibles: state.destructibles,
				Attempts:      attempt,
			}, nil
		}

		log.Printf("[GridGenerator] Attempt %d placed %d/%d enemies, regenerating", attempt, len(state.enemies), want)
		g.discard(state)
	}

	return nil, fmt.Errorf("%w: could not place %d enemies on a %dx%d grid within %d attempts",
		ErrGenerationUnsatisfiable, want, g.cfg.Grid.Width, g.cfg.Grid.Height, maxAttempts)
}

// generateOnce 在全新的空网格上执行一次完整的生成
func (g *GridGenerator) generateOnce() *attemptState {
	state := &attemptState{
		grid:    NewGridStore(g.cfg.Grid.Width, g.cfg.Grid.Height),
		enemies: make([]ecs.EntityID, 0, g.cfg.Enemies.Count),
	}

	for y := 0; y < g.cfg.Grid.Height; y++ {
		for x := 0; x < g.cfg.Grid.Width; x++ {
			floor := g.placeFloor(state, x, y)
			g.placeBorder(state, x, y, floor)
			g.placePillar(state, x, y, floor)
			g.placeDestructible(state, x, y, floor)
			g.placeEnemy(state, x, y, floor)
		}
	}

	g.placePlayer(state)
	return state
}

// placeFloor 按权重随机选择地板变体
func (g *GridGenerator) placeFloor(state *attemptState, x, y int) string {
	idx := utils.WeightedPick(g.rng, g.floorWeights)
	if idx < 0 {
		idx = 0
	}
	variant := g.floorNames[idx]
	state.grid.tiles[x][y] = g.factory.NewFloorTile(variant, x, y)
	return variant
}

// placeBorder 外圈格子无条件覆盖为边界
func (g *GridGenerator) placeBorder(state *attemptState, x, y int, floor string) {
	isBorder := y == 0 || y == g.cfg.Grid.Height-1 || x == 0 || x == g.cfg.Grid.Width-1
	if !isBorder {
		return
	}
	g.setObstacle(state, types.TileBorder, x, y, floor)
}

// placePillar 放置不可摧毁的柱子（使用可摧毁砖块的安全区）
func (g *GridGenerator) placePillar(state *attemptState, x, y int, floor string) {
	if state.pillars >= g.cfg.Indestructible.Count {
		return
	}
	if g.IsInSafeZone(g.cfg.Destructible.SafeZoneDiameter, x, y) {
		return
	}
	if !state.grid.IsFree(x, y) {
		return
	}
	if !utils.Chance(g.rng, g.cfg.Indestructible.SpawnChance) {
		return
	}

	g.setObstacle(state, types.TilePillar, x, y, floor)
	state.pillars++
}

// placeDestructible 放置可摧毁砖块，给玩家留出躲避第一颗炸弹的空间
func (g *GridGenerator) placeDestructible(state *attemptState, x, y int, floor string) {
	if state.destructibles >= g.cfg.Destructible.Count {
		return
	}
	if g.IsInSafeZone(g.cfg.Destructible.SafeZoneDiameter, x, y) {
		return
	}
	if !state.grid.IsFree(x, y) {
		return
	}
	if !utils.Chance(g.rng, g.cfg.Destructible.SpawnChance) {
		return
	}

	g.setObstacle(state, types.TileDestructible, x, y, floor)
	state.destructibles++
}

// placeEnemy 放置敌人，按打乱后的顺序使用下一个未使用的模板
func (g *GridGenerator) placeEnemy(state *attemptState, x, y int, floor string) {
	if len(state.enemies) >= g.cfg.Enemies.Count {
		return
	}
	if len(state.enemies) >= len(g.enemies) {
		return
	}
	if g.IsInSafeZone(g.cfg.Enemies.SafeZoneDiameter, x, y) {
		return
	}
	if !state.grid.IsFree(x, y) {
		return
	}
	if !utils.Chance(g.rng, g.cfg.Enemies.SpawnChance) {
		return
	}

	template := g.enemies[len(state.enemies)]
	id, tile, err := g.factory.NewUnitEntity(types.TileEnemy, template.Name, x, y, floor)
	if err != nil {
		log.Printf("[GridGenerator] Warning: failed to create enemy %s at (%d,%d): %v", template.Name, x, y, err)
		return
	}
	state.grid.tiles[x][y] = tile
	state.enemies = append(state.enemies, id)
}

// placePlayer 在出生点放置玩家，覆盖该位置生成的任何内容
func (g *GridGenerator) placePlayer(state *attemptState) {
	spawn := g.PlayerSpawn()
	floor := ""
	if existing := state.grid.At(spawn); existing != nil {
		floor = existing.FloorVariant
		if existing.Kind == types.TileEnemy {
			g.dropEnemy(state, existing.Entity)
		}
	}

	id, tile, err := g.factory.NewUnitEntity(types.TilePlayer, "", spawn.X, spawn.Y, floor)
	if err != nil {
		log.Printf("[GridGenerator] Warning: failed to create player: %v", err)
		return
	}
	state.grid.tiles[spawn.X][spawn.Y] = tile
	state.player = id
}

// setObstacle 写入障碍格子
func (g *GridGenerator) setObstacle(state *attemptState, kind types.TileKind, x, y int, floor string) {
	tile, err := g.factory.NewObstacleTile(kind, x, y, floor)
	if err != nil {
		log.Printf("[GridGenerator] Warning: %v", err)
		return
	}
	state.grid.tiles[x][y] = tile
}

// dropEnemy 移除被玩家出生点覆盖的敌人
func (g *GridGenerator) dropEnemy(state *attemptState, id ecs.EntityID) {
	for i, e := range state.enemies {
		if e == id {
			state.enemies = append(state.enemies[:i], state.enemies[i+1:]...)
			break
		}
	}
	g.em.DestroyEntity(id)
	g.em.RemoveMarkedEntities()
}

// discard 丢弃失败尝试创建的全部实体
func (g *GridGenerator) discard(state *attemptState) {
	for _, id := range state.enemies {
		g.em.DestroyEntity(id)
	}
	if state.player != ecs.InvalidEntity {
		g.em.DestroyEntity(state.player)
	}
	g.em.RemoveMarkedEntities()
}
