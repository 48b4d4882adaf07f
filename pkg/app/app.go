// Package app 提供桌面端的游戏应用包装器
//
// 该包把竞技场模拟接到 Ebitengine 的游戏循环上：键盘输入驱动玩家，
// 每隔固定帧数推进一个模拟 tick，并在结束时把成绩写入排行榜。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/bomberman/pkg/components"
	"github.com/gonewx/bomberman/pkg/config"
	"github.com/gonewx/bomberman/pkg/event"
	"github.com/gonewx/bomberman/pkg/game"
	"github.com/gonewx/bomberman/pkg/systems"
	"github.com/gonewx/bomberman/pkg/types"
	"github.com/gonewx/bomberman/pkg/utils"
)

// 逻辑屏幕尺寸
const (
	ScreenWidth  = 720
	ScreenHeight = 520
	hudHeight    = 40
)

// leaderboardPanelWidth 结算排行榜面板宽度
const leaderboardPanelWidth = 240

// flashDuration 爆炸闪光持续帧数
const flashDuration = 8

// DefaultFramesPerTick 每个模拟 tick 占用的帧数（60 FPS 下约 0.25 秒）
const DefaultFramesPerTick = 15

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Arena 竞技场配置，为 nil 时使用 config.LoadConfig 的结果
	Arena *config.ArenaConfig
	// Registry 格子模板注册表，为 nil 时使用 config.LoadConfig 的结果
	Registry *config.TileRegistry
	// FramesPerTick 每个模拟 tick 的帧数，<= 0 时使用 DefaultFramesPerTick
	FramesPerTick int
	// Leaderboard 成绩排行榜，可为 nil
	Leaderboard *game.Leaderboard
	// PlayerName 写入排行榜的名字
	PlayerName string
	// Settings 玩家偏好，可为 nil；F11 切换全屏时写回
	Settings *game.SettingsManager
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	arena         *game.Arena
	layout        utils.GridLayout
	recorder      *game.RoundRecorder
	settings      *game.SettingsManager
	framesPerTick int
	frame         int
	flashFrames   int // 爆炸后的屏幕闪烁帧数

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用，生成第一局
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	if cfg.Arena == nil || cfg.Registry == nil {
		arenaCfg, registry, err := config.LoadConfig("", "")
		if err != nil {
			return nil, err
		}
		if cfg.Arena == nil {
			cfg.Arena = arenaCfg
		}
		if cfg.Registry == nil {
			cfg.Registry = registry
		}
	}

	arena, err := game.NewArena(cfg.Arena, cfg.Registry)
	if err != nil {
		return nil, fmt.Errorf("竞技场创建失败: %w", err)
	}

	framesPerTick := cfg.FramesPerTick
	if framesPerTick <= 0 {
		framesPerTick = DefaultFramesPerTick
	}

	a := &App{
		arena:         arena,
		layout:        utils.NewGridLayout(cfg.Arena.Grid.Width, cfg.Arena.Grid.Height, ScreenWidth, ScreenHeight-hudHeight),
		recorder:      game.NewRoundRecorder(cfg.Leaderboard, cfg.PlayerName),
		settings:      cfg.Settings,
		framesPerTick: framesPerTick,
	}
	a.layout.OriginY += hudHeight

	a.recorder.Attach(arena)
	arena.Subscribe(event.BombDetonated, event.ListenerFunc(func(event.Event) {
		a.flashFrames = flashDuration
	}))
	if err := a.startRound(); err != nil {
		return nil, err
	}
	return a, nil
}

// startRound 生成新的一局；同一个竞技场可以反复生成，随机数序列继续推进
func (a *App) startRound() error {
	if err := a.arena.Generate(); err != nil {
		return fmt.Errorf("地图生成失败: %w", err)
	}
	a.frame = 0
	a.flashFrames = 0

	log.Printf("[App] Round %s started", a.arena.RoundID())
	return nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	a.handleWindowKeys()

	if a.flashFrames > 0 {
		a.flashFrames--
	}

	state := a.arena.State()
	switch {
	case state.IsTerminal():
		if utils.IsRestartJustPressed() {
			return a.startRound()
		}
		return nil

	case utils.IsPauseJustPressed():
		if state == game.StatePaused {
			a.arena.Resume()
		} else {
			a.arena.Pause()
		}
		return nil

	case state == game.StatePaused:
		return nil
	}

	if dir, ok := utils.JustPressedDirection(); ok {
		if _, err := a.arena.MovePlayer(dir); err != nil && !errors.Is(err, game.ErrNotPlaying) {
			log.Printf("[App] Move %s failed: %v", dir, err)
		}
	}
	if utils.IsBombJustPressed() {
		if err := a.arena.PlaceBomb(); err != nil {
			log.Printf("[App] Place bomb failed: %v", err)
		}
	}

	a.frame++
	if a.frame%a.framesPerTick == 0 {
		a.arena.Tick()
	}
	return nil
}

// handleWindowKeys F11 切换全屏
func (a *App) handleWindowKeys() {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	if !inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		return
	}
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
	} else {
		ebiten.SetFullscreen(true)
	}
	a.saveFullscreen(ebiten.IsFullscreen())
}

// saveFullscreen 记住全屏偏好，下次启动时恢复
func (a *App) saveFullscreen(enabled bool) {
	if a.settings == nil {
		return
	}
	a.settings.SetFullscreen(enabled)
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	if grid := a.arena.Grid(); grid != nil {
		a.drawGrid(screen, grid)
	}
	if a.flashFrames > 0 {
		c := flashColor
		c.A = utils.FadeAlpha(a.flashFrames, flashDuration, flashColor.A)
		vector.FillRect(screen, 0, 0, ScreenWidth, ScreenHeight, c, false)
	}
	a.drawHUD(screen)
}

func (a *App) drawGrid(screen *ebiten.Image, grid *systems.GridStore) {
	size := float32(a.layout.CellSize)
	grid.ForEach(func(tile *components.Tile) {
		x, y := a.layout.GridToScreen(tile.X, tile.Y)
		sx, sy := float32(x), float32(y)

		// 先画地板，再画占用者
		vector.FillRect(screen, sx, sy, size, size, FloorColor(tile.FloorVariant), false)
		if tile.Kind == types.TileFloor {
			return
		}

		inset := size * 0.1
		switch tile.Kind {
		case types.TileBorder, types.TilePillar, types.TileDestructible, types.TileExplosion:
			vector.FillRect(screen, sx, sy, size, size, TileColor(tile), false)
		default:
			vector.FillRect(screen, sx+inset, sy+inset, size-2*inset, size-2*inset, TileColor(tile), true)
		}
	})
}

func (a *App) drawHUD(screen *ebiten.Image) {
	status := fmt.Sprintf("Score: %d   Enemies: %d   Tick: %d   [%s]",
		a.arena.Score(), len(a.arena.AliveEnemies()), a.arena.Ticks(), a.arena.State())
	ebitenutil.DebugPrintAt(screen, status, 8, 4)

	hint := "Arrows/WASD move, Space bomb, P pause, F11 fullscreen"
	switch a.arena.State() {
	case game.StateGameWon:
		hint = "You win! Press R to play again"
	case game.StateGameOver:
		hint = "Game over. Press R to try again"
	case game.StatePaused:
		hint = "Paused. Press P to resume"
	}
	if rank := a.recorder.LastRank(a.arena); a.arena.State().IsTerminal() && rank > 0 {
		hint = fmt.Sprintf("%s  (leaderboard #%d)", hint, rank)
	}
	ebitenutil.DebugPrintAt(screen, hint, 8, 20)

	if a.arena.State().IsTerminal() {
		a.drawLeaderboard(screen)
	}
}

// drawLeaderboard 结算时在画面中央列出排行榜前几名，本局以 ">" 标出
func (a *App) drawLeaderboard(screen *ebiten.Image) {
	lines := game.FormatEntries(a.recorder.Top(game.DefaultTopEntries), a.arena.RoundID())
	if len(lines) == 0 {
		return
	}

	const lineHeight = 16
	w := float32(leaderboardPanelWidth)
	h := float32((len(lines)+2)*lineHeight + 8)
	x := (ScreenWidth - w) / 2
	y := float32(hudHeight) + (ScreenHeight-hudHeight-h)/2
	vector.FillRect(screen, x, y, w, h, leaderboardPanelColor, false)

	tx, ty := int(x)+12, int(y)+8
	ebitenutil.DebugPrintAt(screen, "LEADERBOARD", tx, ty)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, tx, ty+(i+2)*lineHeight)
	}
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}
