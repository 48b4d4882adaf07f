// verify_generation 批量生成竞技场并检查生成结果
//
// 对连续的种子各生成一张地图，校验数量上限、安全区和玩家出生点，
// 输出每个种子的尝试次数和各类格子数量，最后给出汇总。
//
// 用法:
//
//	go run ./cmd/verify_generation --seeds 200 --start 1 [--config arena.yaml] [--show 3]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/gonewx/bomberman/pkg/components"
	"github.com/gonewx/bomberman/pkg/config"
	"github.com/gonewx/bomberman/pkg/ecs"
	"github.com/gonewx/bomberman/pkg/entities"
	"github.com/gonewx/bomberman/pkg/systems"
	"github.com/gonewx/bomberman/pkg/types"
	"github.com/gonewx/bomberman/pkg/utils"
)

var (
	verbose   = flag.Bool("verbose", false, "显示详细调试信息")
	arenaPath = flag.String("config", "", "竞技场配置文件路径")
	tilesPath = flag.String("tiles", "", "格子注册表文件路径")
	seeds     = flag.Int("seeds", 100, "生成的地图数量")
	start     = flag.Int64("start", 1, "第一个种子")
	show      = flag.Int("show", 0, "打印前 N 张地图")
)

// report 单个种子的生成结果
type report struct {
	seed     int64
	result   *systems.GenerationResult
	err      error
	problems []string
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, registry, err := config.LoadConfig(*arenaPath, *tilesPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := registry.CheckCapacity(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var (
		failed        int
		unsatisfiable int
		totalAttempts int
		maxAttempts   int
	)

	for i := 0; i < *seeds; i++ {
		seed := *start + int64(i)
		r := generate(cfg, registry, seed)

		switch {
		case errors.Is(r.err, systems.ErrGenerationUnsatisfiable):
			unsatisfiable++
			fmt.Printf("seed %6d  UNSATISFIABLE after %d attempts\n", seed, cfg.Generation.MaxAttempts)
			continue
		case r.err != nil:
			failed++
			fmt.Printf("seed %6d  ERROR %v\n", seed, r.err)
			continue
		}

		totalAttempts += r.result.Attempts
		if r.result.Attempts > maxAttempts {
			maxAttempts = r.result.Attempts
		}

		status := "ok"
		if len(r.problems) > 0 {
			failed++
			status = "FAIL " + strings.Join(r.problems, "; ")
		}
		fmt.Printf("seed %6d  attempts=%3d pillars=%3d bricks=%3d enemies=%d  %s\n",
			seed, r.result.Attempts, r.result.Pillars, r.result.Destructibles, len(r.result.Enemies), status)

		if i < *show {
			fmt.Println(render(r.result.Grid))
		}
	}

	generated := *seeds - unsatisfiable
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("grid %dx%d, %d seeds: %d generated, %d unsatisfiable, %d failed\n",
		cfg.Grid.Width, cfg.Grid.Height, *seeds, generated, unsatisfiable, failed)
	if generated > 0 {
		fmt.Printf("attempts: avg %.2f, max %d\n", float64(totalAttempts)/float64(generated), maxAttempts)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// generate 用指定种子生成一张地图并检查不变量
func generate(cfg *config.ArenaConfig, registry *config.TileRegistry, seed int64) report {
	em := ecs.NewEntityManager()
	factory := entities.NewTileFactory(em, registry)
	generator := systems.NewGridGenerator(em, factory, cfg, utils.NewRandomSource(seed))

	result, err := generator.Generate()
	if err != nil {
		return report{seed: seed, err: err}
	}
	return report{seed: seed, result: result, problems: check(cfg, generator, result)}
}

// check 校验生成结果
func check(cfg *config.ArenaConfig, generator *systems.GridGenerator, result *systems.GenerationResult) []string {
	var problems []string
	grid := result.Grid
	w, h := grid.Width(), grid.Height()

	if n := grid.CountKind(types.TilePillar); n > cfg.Indestructible.Count {
		problems = append(problems, fmt.Sprintf("%d pillars > %d", n, cfg.Indestructible.Count))
	}
	if n := grid.CountKind(types.TileDestructible); n > cfg.Destructible.Count {
		problems = append(problems, fmt.Sprintf("%d bricks > %d", n, cfg.Destructible.Count))
	}
	if n := grid.CountKind(types.TileEnemy); n != cfg.Enemies.Count {
		problems = append(problems, fmt.Sprintf("%d enemies != %d", n, cfg.Enemies.Count))
	}
	if n := grid.CountKind(types.TilePlayer); n != 1 {
		problems = append(problems, fmt.Sprintf("%d players", n))
	}

	spawn := generator.PlayerSpawn()
	if tile := grid.At(spawn); tile == nil || tile.Kind != types.TilePlayer {
		problems = append(problems, fmt.Sprintf("spawn %v is not the player", spawn))
	}

	grid.ForEach(func(tile *components.Tile) {
		onEdge := tile.X == 0 || tile.Y == 0 || tile.X == w-1 || tile.Y == h-1
		if onEdge != (tile.Kind == types.TileBorder) {
			problems = append(problems, fmt.Sprintf("%v at %d,%d", tile.Kind, tile.X, tile.Y))
		}
		switch tile.Kind {
		case types.TilePillar, types.TileDestructible:
			if generator.IsInSafeZone(cfg.Destructible.SafeZoneDiameter, tile.X, tile.Y) {
				problems = append(problems, fmt.Sprintf("%v in safe zone at %d,%d", tile.Kind, tile.X, tile.Y))
			}
		case types.TileEnemy:
			if generator.IsInSafeZone(cfg.Enemies.SafeZoneDiameter, tile.X, tile.Y) {
				problems = append(problems, fmt.Sprintf("enemy in safe zone at %d,%d", tile.X, tile.Y))
			}
		}
	})

	return problems
}

var kindRunes = map[types.TileKind]rune{
	types.TileFloor:        '.',
	types.TileBorder:       '#',
	types.TilePillar:       'X',
	types.TileDestructible: '+',
	types.TilePlayer:       '@',
	types.TileEnemy:        'e',
}

// render 把网格画成文本，最上面一行是 y 最大的一行
func render(grid *systems.GridStore) string {
	var b strings.Builder
	for y := grid.Height() - 1; y >= 0; y-- {
		for x := 0; x < grid.Width(); x++ {
			r := '?'
			if tile, ok := grid.Get(x, y); ok && tile != nil {
				if kr, known := kindRunes[tile.Kind]; known {
					r = kr
				}
			}
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
