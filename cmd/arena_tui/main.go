// arena_tui 在终端里运行竞技场
//
// 用法:
//
//	go run ./cmd/arena_tui [--config arena.yaml] [--tiles tiles.yaml] [--seed N] [--tick 250ms] [--mute] [--name NAME]
//
// 方向键/WASD 移动，空格放炸弹，P 暂停，R 重新开始，Q/Esc 退出。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/bomberman/pkg/config"
	"github.com/gonewx/bomberman/pkg/event"
	"github.com/gonewx/bomberman/pkg/game"
	"github.com/gonewx/bomberman/pkg/types"
)

var (
	verbose    = flag.Bool("verbose", false, "把日志写到 arena_tui.log")
	arenaPath  = flag.String("config", "", "竞技场配置文件路径")
	tilesPath  = flag.String("tiles", "", "格子注册表文件路径")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示沿用配置）")
	tickPeriod = flag.Duration("tick", 250*time.Millisecond, "模拟 tick 间隔")
	mute       = flag.Bool("mute", false, "关闭爆炸音效（覆盖已保存的设置）")
	playerName = flag.String("name", "", "写入排行榜的名字（默认沿用已保存的设置）")
)

// tui 终端前端
type tui struct {
	screen   tcell.Screen
	arena    *game.Arena
	sound    *soundPlayer
	recorder *game.RoundRecorder
	status   string
}

func newTUI(arena *game.Arena, sound *soundPlayer, recorder *game.RoundRecorder) (*tui, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()

	t := &tui{screen: screen, arena: arena, sound: sound, recorder: recorder}
	arena.Subscribe(event.BombDetonated, event.ListenerFunc(func(e event.Event) {
		t.sound.PlayExplosion()
	}))
	arena.Subscribe(event.GameStateChanged, event.ListenerFunc(func(e event.Event) {
		data := e.Data.(event.StateChangedData)
		t.status = fmt.Sprintf("%s -> %s", data.From, data.To)
	}))
	return t, nil
}

// handleKey 处理按键，返回 false 表示退出
func (t *tui) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return false
	}

	if dir, ok := keyDirection(ev); ok {
		if _, err := t.arena.MovePlayer(dir); err != nil {
			log.Printf("[TUI] Move %s: %v", dir, err)
		}
		return true
	}

	if ev.Key() != tcell.KeyRune {
		return true
	}
	switch ev.Rune() {
	case 'q', 'Q':
		return false
	case ' ', 'j':
		if err := t.arena.PlaceBomb(); err != nil {
			t.status = err.Error()
		}
	case 'p', 'P':
		if !t.arena.Pause() {
			t.arena.Resume()
		}
	case 'r', 'R':
		if t.arena.State().IsTerminal() {
			if err := t.arena.Generate(); err != nil {
				t.status = err.Error()
			}
		}
	}
	return true
}

// keyDirection 方向键和 WASD 映射为移动方向；终端上方对应 DirUp
func keyDirection(ev *tcell.EventKey) (types.Direction, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return types.DirLeft, true
	case tcell.KeyRight:
		return types.DirRight, true
	case tcell.KeyDown:
		return types.DirDown, true
	case tcell.KeyUp:
		return types.DirUp, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			return types.DirLeft, true
		case 'd', 'D':
			return types.DirRight, true
		case 's', 'S':
			return types.DirDown, true
		case 'w', 'W':
			return types.DirUp, true
		}
	}
	return 0, false
}

func (t *tui) run(period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	t.draw()
	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !t.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				t.screen.Sync()
			}
		case <-ticker.C:
			t.arena.Tick()
		}
		t.draw()
	}
}

func (t *tui) draw() {
	t.screen.Clear()

	grid := t.arena.Grid()
	if grid != nil {
		h := grid.Height()
		for y := 0; y < h; y++ {
			for x := 0; x < grid.Width(); x++ {
				tile, _ := grid.Get(x, y)
				r, style := glyph(tile)
				// 每格占两列，近似正方形
				row := 1 + (h - 1 - y)
				t.screen.SetContent(2*x, row, r, nil, style)
				t.screen.SetContent(2*x+1, row, r, nil, style)
			}
		}
	}

	header := fmt.Sprintf("Score %d  Enemies %d  Tick %d  [%s]",
		t.arena.Score(), len(t.arena.AliveEnemies()), t.arena.Ticks(), t.arena.State())
	t.printAt(0, 0, header, tcell.StyleDefault.Bold(true))

	footerRow := 2
	if grid != nil {
		footerRow += grid.Height()
	}
	t.printAt(0, footerRow, "arrows/wasd move  space bomb  p pause  r restart  q quit", tcell.StyleDefault.Dim(true))
	if t.status != "" {
		t.printAt(0, footerRow+1, t.status, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}
	if t.arena.State().IsTerminal() {
		t.drawLeaderboard(footerRow + 3)
	}
	t.screen.Show()
}

// drawLeaderboard 结算时列出排行榜前几名，本局以 ">" 标出
func (t *tui) drawLeaderboard(row int) {
	lines := game.FormatEntries(t.recorder.Top(game.DefaultTopEntries), t.arena.RoundID())
	if len(lines) == 0 {
		return
	}
	title := "Leaderboard"
	if rank := t.recorder.LastRank(t.arena); rank > 0 {
		title = fmt.Sprintf("Leaderboard (this round #%d)", rank)
	}
	t.printAt(0, row, title, tcell.StyleDefault.Bold(true))
	for i, line := range lines {
		t.printAt(0, row+1+i, line, tcell.StyleDefault)
	}
}

func (t *tui) printAt(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (t *tui) cleanup() {
	t.screen.Fini()
}

func main() {
	flag.Parse()

	// 终端被 tcell 占用，日志只能写文件
	log.SetOutput(io.Discard)
	if *verbose {
		f, err := os.Create("arena_tui.log")
		if err == nil {
			defer f.Close()
			log.SetOutput(f)
		}
	}

	cfg, registry, err := config.LoadConfig(*arenaPath, *tilesPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Generation.Seed = *seed
	}

	arena, err := game.NewArena(cfg, registry)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer arena.Close()

	gdataManager, err := gdata.Open(gdata.Config{AppName: "bomberman"})
	if err != nil {
		log.Printf("[TUI] gdata unavailable: %v", err)
		gdataManager = nil
	}
	settings := game.NewSettingsManager(gdataManager).GetSettings()
	name := settings.PlayerName
	if *playerName != "" {
		name = *playerName
	}
	recorder := game.NewRoundRecorder(game.NewLeaderboard(gdataManager, game.DefaultLeaderboardCapacity), name)
	recorder.Attach(arena)

	sound := newSoundPlayer(settings.SoundVolume)
	if !*mute && settings.SoundEnabled {
		if err := sound.Init(); err != nil {
			log.Printf("[TUI] Audio unavailable: %v", err)
		}
	}
	defer sound.Close()

	t, err := newTUI(arena, sound, recorder)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer t.cleanup()

	if err := arena.Generate(); err != nil {
		t.cleanup()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	t.run(*tickPeriod)
}
