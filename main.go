package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/bomberman/pkg/app"
	"github.com/gonewx/bomberman/pkg/config"
	"github.com/gonewx/bomberman/pkg/embedded"
	"github.com/gonewx/bomberman/pkg/game"
)

var (
	verbose       = flag.Bool("verbose", false, "显示详细调试信息")
	arenaPath     = flag.String("config", "", "竞技场配置文件路径（默认使用内置 data/arena.yaml）")
	tilesPath     = flag.String("tiles", "", "格子注册表文件路径（默认使用内置 data/tiles.yaml）")
	seed          = flag.Int64("seed", 0, "随机种子，覆盖配置文件（0 表示沿用配置）")
	playerName    = flag.String("name", "", "写入排行榜的名字（会被记住）")
	framesPerTick = flag.Int("frames-per-tick", 0, "每个模拟 tick 的帧数（会被记住，0 表示沿用设置）")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	arenaCfg, registry, err := config.LoadConfig(*arenaPath, *tilesPath)
	if err != nil {
		log.Fatal(err)
	}
	if *seed != 0 {
		arenaCfg.Generation.Seed = *seed
	}

	// 存储失败时降级为仅内存
	gdataManager, err := gdata.Open(gdata.Config{AppName: "bomberman"})
	if err != nil {
		log.Printf("[Main] Warning: gdata unavailable: %v (settings and leaderboard kept in memory)", err)
		gdataManager = nil
	}
	leaderboard := game.NewLeaderboard(gdataManager, game.DefaultLeaderboardCapacity)
	settings := applyFlags(game.NewSettingsManager(gdataManager))

	application, err := app.NewApp(app.Config{
		Verbose:       *verbose,
		Arena:         arenaCfg,
		Registry:      registry,
		FramesPerTick: settings.GetSettings().FramesPerTick,
		Leaderboard:   leaderboard,
		PlayerName:    settings.GetSettings().PlayerName,
		Settings:      settings,
	})
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("Bomberman Arena")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(settings.GetSettings().Fullscreen)

	if err := ebiten.RunGame(application); err != nil {
		log.Fatal(err)
	}
}

// applyFlags 把显式给出的命令行参数写入设置并持久化
func applyFlags(sm *game.SettingsManager) *game.SettingsManager {
	changed := false
	if *playerName != "" {
		sm.SetPlayerName(*playerName)
		changed = true
	}
	if *framesPerTick > 0 {
		sm.SetFramesPerTick(*framesPerTick)
		changed = true
	}
	if changed {
		if err := sm.Save(); err != nil {
			log.Printf("[Main] Warning: failed to save settings: %v", err)
		}
	}
	return sm
}
