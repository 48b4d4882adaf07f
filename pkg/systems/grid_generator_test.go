package systems

import (
	"errors"
	"testing"

	"github.com/gonewx/bomberman/pkg/components"
	"github.com/gonewx/bomberman/pkg/config"
	"github.com/gonewx/bomberman/pkg/ecs"
	"github.com/gonewx/bomberman/pkg/entities"
	"github.com/gonewx/bomberman/pkg/types"
	"github.com/gonewx/bomberman/pkg/utils"
)

func newTestGenerator(cfg *config.ArenaConfig, registry *config.TileRegistry, rng utils.RandomSource) (*ecs.EntityManager, *GridGenerator) {
	em := ecs.NewEntityManager()
	factory := entities.NewTileFactory(em, registry)
	return em, NewGridGenerator(em, factory, cfg, rng)
}

// TestIsInSafeZone 安全区是从出生点向 +x、-y 延伸的非对称矩形
func TestIsInSafeZone(t *testing.T) {
	cfg := config.DefaultArenaConfig() // 15x10，出生点 (1,8)
	_, gen := newTestGenerator(cfg, testRegistry(), constantSource{})

	if spawn := gen.PlayerSpawn(); spawn != (types.Coord{X: 1, Y: 8}) {
		t.Fatalf("Expected spawn (1,8), got %v", spawn)
	}

	tests := []struct {
		name     string
		diameter int
		x, y     int
		want     bool
	}{
		{"spawn itself", 2, 1, 8, true},
		{"far corner of rectangle", 2, 3, 6, true},
		{"beyond +x", 2, 4, 8, false},
		{"beyond -y", 2, 1, 5, false},
		{"left of spawn is not covered", 2, 0, 8, false},
		{"above spawn is not covered", 2, 1, 9, false},
		{"zero diameter covers only spawn", 0, 1, 8, true},
		{"zero diameter excludes neighbor", 0, 2, 8, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gen.IsInSafeZone(tt.diameter, tt.x, tt.y); got != tt.want {
				t.Errorf("IsInSafeZone(%d, %d, %d) = %v, want %v", tt.diameter, tt.x, tt.y, got, tt.want)
			}
		})
	}
}

// TestGenerateExactPlacement 固定随机数下验证逐格的放置顺序
//
// 随机数恒为 0：所有概率 > 0 的放置都成功，敌人模板顺序被打乱为 beta, gamma, alpha。
// 5x5 网格，出生点 (1,3)，安全区直径均为 0（只有出生点本身）。
func TestGenerateExactPlacement(t *testing.T) {
	cfg := config.DefaultArenaConfig()
	cfg.Grid = config.GridConfig{Width: 5, Height: 5}
	cfg.Indestructible = config.ObstacleConfig{Count: 2, SpawnChance: 1}
	cfg.Destructible = config.ObstacleConfig{Count: 1, SpawnChance: 1, SafeZoneDiameter: 0}
	cfg.Enemies = config.EnemyConfig{Count: 2, SpawnChance: 1, SafeZoneDiameter: 0}

	em, gen := newTestGenerator(cfg, testRegistry(), constantSource{value: 0})

	order := gen.EnemyOrder()
	if order[0].Name != "beta" || order[1].Name != "gamma" || order[2].Name != "alpha" {
		t.Fatalf("Unexpected shuffled enemy order: %v", order)
	}

	result, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result.Attempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", result.Attempts)
	}

	grid := result.Grid
	expected := map[types.Coord]types.TileKind{
		{X: 1, Y: 1}: types.TilePillar,
		{X: 2, Y: 1}: types.TilePillar,
		{X: 3, Y: 1}: types.TileDestructible,
		{X: 1, Y: 2}: types.TileEnemy,
		{X: 2, Y: 2}: types.TileEnemy,
		{X: 3, Y: 2}: types.TileFloor,
		{X: 1, Y: 3}: types.TilePlayer,
		{X: 2, Y: 3}: types.TileFloor,
		{X: 3, Y: 3}: types.TileFloor,
	}
	for c, want := range expected {
		if got := grid.At(c).Kind; got != want {
			t.Errorf("Tile %v: got %v, want %v", c, got, want)
		}
	}

	if result.Pillars != 2 || result.Destructibles != 1 || len(result.Enemies) != 2 {
		t.Errorf("Unexpected counters: %+v", result)
	}

	first, _ := ecs.GetComponent[*components.UnitComponent](em, grid.At(types.Coord{X: 1, Y: 2}).Entity)
	second, _ := ecs.GetComponent[*components.UnitComponent](em, grid.At(types.Coord{X: 2, Y: 2}).Entity)
	if first.Template != "beta" || second.Template != "gamma" {
		t.Errorf("Expected enemies beta, gamma; got %s, %s", first.Template, second.Template)
	}
}

// TestGenerateInvariants 随机种子下的生成不变量
func TestGenerateInvariants(t *testing.T) {
	for seed := int64(1); seed <= 40; seed++ {
		cfg := config.DefaultArenaConfig()
		cfg.Grid = config.GridConfig{Width: 15, Height: 10}
		cfg.Enemies.Count = 5
		cfg.Destructible.Count = 30
		cfg.Indestructible.Count = 30

		em, gen := newTestGenerator(cfg, config.DefaultTileRegistry(), utils.NewRandomSource(seed))
		result, err := gen.Generate()
		if err != nil {
			t.Fatalf("seed %d: Generate failed: %v", seed, err)
		}
		grid := result.Grid

		if got := grid.CountKind(types.TileEnemy); got != 5 {
			t.Errorf("seed %d: expected 5 enemies, got %d", seed, got)
		}
		if player := grid.At(types.Coord{X: 1, Y: grid.Height() - 2}); player == nil || player.Kind != types.TilePlayer {
			t.Errorf("seed %d: player not at spawn", seed)
		}
		if got := grid.CountKind(types.TilePlayer); got != 1 {
			t.Errorf("seed %d: expected exactly 1 player, got %d", seed, got)
		}
		if result.Pillars > 30 || grid.CountKind(types.TilePillar) != result.Pillars {
			t.Errorf("seed %d: pillar counter %d does not match grid", seed, result.Pillars)
		}
		if result.Destructibles > 30 || grid.CountKind(types.TileDestructible) != result.Destructibles {
			t.Errorf("seed %d: destructible counter %d does not match grid", seed, result.Destructibles)
		}

		seenEntities := make(map[ecs.EntityID]bool)
		for y := 0; y < grid.Height(); y++ {
			for x := 0; x < grid.Width(); x++ {
				tile, _ := grid.Get(x, y)
				if tile == nil {
					t.Fatalf("seed %d: cell (%d,%d) left empty", seed, x, y)
				}
				if tile.X != x || tile.Y != y {
					t.Errorf("seed %d: tile at (%d,%d) reports %v", seed, x, y, tile.Coord())
				}

				onBorder := x == 0 || y == 0 || x == grid.Width()-1 || y == grid.Height()-1
				if onBorder && tile.Kind != types.TileBorder {
					t.Errorf("seed %d: border cell (%d,%d) is %v", seed, x, y, tile.Kind)
				}
				if !onBorder && tile.Kind == types.TileBorder {
					t.Errorf("seed %d: interior cell (%d,%d) is border", seed, x, y)
				}

				switch tile.Kind {
				case types.TilePillar, types.TileDestructible:
					if gen.IsInSafeZone(cfg.Destructible.SafeZoneDiameter, x, y) {
						t.Errorf("seed %d: %v inside safe zone at (%d,%d)", seed, tile.Kind, x, y)
					}
				case types.TileEnemy:
					if gen.IsInSafeZone(cfg.Enemies.SafeZoneDiameter, x, y) {
						t.Errorf("seed %d: enemy inside safe zone at (%d,%d)", seed, x, y)
					}
				}

				if tile.Kind.IsUnit() {
					if seenEntities[tile.Entity] {
						t.Errorf("seed %d: entity %d occupies two cells", seed, tile.Entity)
					}
					seenEntities[tile.Entity] = true
					unit, ok := ecs.GetComponent[*components.UnitComponent](em, tile.Entity)
					if !ok || unit.Position != tile.Coord() || unit.Kind != tile.Kind {
						t.Errorf("seed %d: unit component out of sync at (%d,%d)", seed, x, y)
					}
				}
			}
		}

		// 失败尝试的实体全部被丢弃
		if got := len(ecs.GetEntitiesWith[*components.UnitComponent](em)); got != 6 {
			t.Errorf("seed %d: expected 6 unit entities (1 player + 5 enemies), got %d", seed, got)
		}
	}
}

// TestGenerateUnsatisfiable 无法满足敌人数量时在重试上限后失败
func TestGenerateUnsatisfiable(t *testing.T) {
	cfg := config.DefaultArenaConfig()
	cfg.Enemies.SpawnChance = 0
	cfg.Generation.MaxAttempts = 7

	em, gen := newTestGenerator(cfg, config.DefaultTileRegistry(), utils.NewRandomSource(3))
	result, err := gen.Generate()
	if result != nil {
		t.Errorf("Expected nil result, got %+v", result)
	}
	if !errors.Is(err, ErrGenerationUnsatisfiable) {
		t.Fatalf("Expected ErrGenerationUnsatisfiable, got %v", err)
	}
	if em.EntityCount() != 0 {
		t.Errorf("Expected all attempt entities discarded, %d remain", em.EntityCount())
	}
}

// TestGeneratePlayerOverwritesSpawn 玩家覆盖出生点上生成的任何内容
//
// 3x3 网格唯一的内部格子就是出生点 (1,1)。安全区直径为 -1 时矩形为空，
// 敌人会被生成在出生点上，随后被玩家覆盖，因此敌人数量永远无法满足。
func TestGeneratePlayerOverwritesSpawn(t *testing.T) {
	cfg := config.DefaultArenaConfig()
	cfg.Grid = config.GridConfig{Width: 3, Height: 3}
	cfg.Indestructible.Count = 0
	cfg.Destructible.Count = 0
	cfg.Enemies = config.EnemyConfig{Count: 1, SpawnChance: 1, SafeZoneDiameter: -1}
	cfg.Generation.MaxAttempts = 3

	em, gen := newTestGenerator(cfg, testRegistry(), constantSource{value: 0})
	_, err := gen.Generate()
	if !errors.Is(err, ErrGenerationUnsatisfiable) {
		t.Fatalf("Expected ErrGenerationUnsatisfiable, got %v", err)
	}
	if em.EntityCount() != 0 {
		t.Errorf("Expected no leftover entities, got %d", em.EntityCount())
	}

	// 不要求敌人时，出生点上是玩家
	cfg.Enemies.Count = 0
	_, gen = newTestGenerator(cfg, testRegistry(), constantSource{value: 0})
	result, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got := result.Grid.At(types.Coord{X: 1, Y: 1}).Kind; got != types.TilePlayer {
		t.Errorf("Expected player at spawn, got %v", got)
	}
}
