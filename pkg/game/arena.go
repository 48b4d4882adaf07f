package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/gonewx/bomberman/pkg/components"
	"github.com/gonewx/bomberman/pkg/config"
	"github.com/gonewx/bomberman/pkg/ecs"
	"github.com/gonewx/bomberman/pkg/entities"
	"github.com/gonewx/bomberman/pkg/event"
	"github.com/gonewx/bomberman/pkg/systems"
	"github.com/gonewx/bomberman/pkg/types"
	"github.com/gonewx/bomberman/pkg/utils"
)

var (
	// ErrNotPlaying 竞技场不在进行中（未生成、已暂停或已结束）
	ErrNotPlaying = errors.New("arena is not playing")
	// ErrBombLimit 玩家同时存在的炸弹已达上限
	ErrBombLimit = errors.New("bomb limit reached")
	// ErrArenaClosed 竞技场已关闭
	ErrArenaClosed = errors.New("arena is closed")
)

// Option 竞技场可选参数
type Option func(*Arena)

// WithRandomSource 使用指定的随机数来源（忽略 generation.seed）
func WithRandomSource(rng utils.RandomSource) Option {
	return func(a *Arena) {
		a.rng = rng
	}
}

// WithDeathHandler 额外的单位死亡回调，在计分和事件派发之后调用
func WithDeathHandler(handler systems.DeathHandler) Option {
	return func(a *Arena) {
		a.deathHandler = handler
	}
}

// Arena 一局游戏的模拟实例
//
// 持有 ECS、网格和各个系统，以及只属于本实例的事件分发器。
// Close 之后所有订阅被清除，实例不可再使用。
// 不是并发安全的，所有方法应在同一个更新循环中调用。
type Arena struct {
	cfg      *config.ArenaConfig
	registry *config.TileRegistry
	rng      utils.RandomSource

	dispatcher   *event.Dispatcher
	states       *StateController
	score        *ScoreKeeper
	deathHandler systems.DeathHandler

	em        *ecs.EntityManager
	grid      *systems.GridStore
	bombs     *systems.BombSystem
	collision *systems.CollisionSystem
	movement  *systems.MovementSystem

	player   ecs.EntityID
	enemies  []ecs.EntityID
	resumeTo GameState
	ticks    int
	attempts int
	roundID  string
	closed   bool
}

// NewArena 创建竞技场
// 参数:
//   - cfg: 竞技场配置（会被验证）
//   - registry: 格子模板注册表，敌人模板数量不得少于 enemies.count
//
// 返回:
//   - error: 配置无效时返回错误
func NewArena(cfg *config.ArenaConfig, registry *config.TileRegistry, opts ...Option) (*Arena, error) {
	if cfg == nil {
		cfg = config.DefaultArenaConfig()
	}
	if registry == nil {
		registry = config.DefaultTileRegistry()
	}
	if err := config.ValidateArenaConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid arena config: %w", err)
	}
	if err := config.ValidateTileRegistry(registry); err != nil {
		return nil, fmt.Errorf("invalid tile registry: %w", err)
	}
	if err := registry.CheckCapacity(cfg); err != nil {
		return nil, fmt.Errorf("invalid tile registry: %w", err)
	}

	dispatcher := event.NewDispatcher()
	a := &Arena{
		cfg:        cfg,
		registry:   registry,
		dispatcher: dispatcher,
		states:     NewStateController(dispatcher),
		score:      NewScoreKeeper(cfg.Score, dispatcher),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rng == nil {
		a.rng = utils.NewRandomSource(cfg.Generation.Seed)
	}
	return a, nil
}

// Generate 生成新的一局：重建网格和实体，分数清零，进入 StatePlaying
// 返回:
//   - error: 超过重试上限时返回包装了 systems.ErrGenerationUnsatisfiable 的错误
func (a *Arena) Generate() error {
	if a.closed {
		return ErrArenaClosed
	}

	em := ecs.NewEntityManager()
	factory := entities.NewTileFactory(em, a.registry)
	generator := systems.NewGridGenerator(em, factory, a.cfg, a.rng)

	result, err := generator.Generate()
	if err != nil {
		return fmt.Errorf("generate arena: %w", err)
	}

	a.em = em
	a.grid = result.Grid
	a.collision = systems.NewCollisionSystem(em, a.grid, a)
	a.bombs = systems.NewBombSystem(em, a.grid, factory, a.collision, a.cfg.Bomb)
	a.movement = systems.NewMovementSystem(em, a.grid, factory, a.bombs, a.collision)
	a.player = result.Player
	a.enemies = result.Enemies
	a.attempts = result.Attempts
	a.ticks = 0
	a.roundID = uuid.NewString()
	a.score.Reset()

	log.Printf("[Arena] Round %s ready: %dx%d, %d enemies, %d attempts",
		a.roundID, a.grid.Width(), a.grid.Height(), len(a.enemies), result.Attempts)

	a.dispatcher.Dispatch(event.Event{
		Type: event.ArenaGenerated,
		Data: event.ArenaGeneratedData{
			Attempts:      result.Attempts,
			Enemies:       len(result.Enemies),
			Pillars:       result.Pillars,
			Destructibles: result.Destructibles,
		},
	})
	a.states.SetState(StatePlaying)
	return nil
}

// Tick 推进一个 tick：炸弹倒计时与爆炸、敌人游走，然后检查胜负
// 非 StatePlaying 时不做任何事
func (a *Arena) Tick() {
	if a.closed || a.states.State() != StatePlaying {
		return
	}
	a.ticks++

	for _, det := range a.bombs.Tick() {
		a.dispatcher.Dispatch(event.Event{
			Type: event.BombDetonated,
			Data: event.BombData{Position: det.Origin, Cells: det.Cells, Chained: det.Chained},
		})
		for _, c := range det.Destroyed {
			a.score.OnBlockDestroyed()
			a.dispatcher.Dispatch(event.Event{Type: event.BlockDestroyed, Data: c})
		}
	}
	if a.checkEnd() {
		return
	}

	if interval := a.cfg.Enemies.MoveIntervalTicks; interval > 0 && a.ticks%interval == 0 {
		a.movement.Wander(a.rng)
		a.checkEnd()
	}
}

// PlaceBomb 在玩家脚下放置炸弹，使用 player 配置的范围和引信
func (a *Arena) PlaceBomb() error {
	if err := a.ensurePlaying(); err != nil {
		return err
	}

	if limit := a.cfg.Player.MaxBombs; limit > 0 && a.bombs.ArmedCount(a.player) >= limit {
		return fmt.Errorf("place bomb: %d armed: %w", limit, ErrBombLimit)
	}

	at := a.PlayerPosition()
	if _, err := a.bombs.Place(at, a.cfg.Player.BombRange, a.cfg.Player.BombFuseTicks, a.player); err != nil {
		return err
	}

	a.dispatcher.Dispatch(event.Event{Type: event.BombPlaced, Data: event.BombData{Position: at}})
	return nil
}

// MovePlayer 玩家向指定方向移动一格
// 返回:
//   - bool: 玩家是否移动
func (a *Arena) MovePlayer(dir types.Direction) (bool, error) {
	if err := a.ensurePlaying(); err != nil {
		return false, err
	}

	moved, err := a.movement.Move(a.player, dir)
	if err != nil {
		return false, err
	}
	a.checkEnd()
	return moved, nil
}

// Pause 暂停；只有进行中可以暂停
func (a *Arena) Pause() bool {
	if a.states.State() != StatePlaying {
		return false
	}
	a.resumeTo = StatePlaying
	return a.states.SetState(StatePaused)
}

// Resume 从暂停恢复
func (a *Arena) Resume() bool {
	if a.states.State() != StatePaused {
		return false
	}
	return a.states.SetState(a.resumeTo)
}

// OnDeath 实现 systems.DeathHandler：计分并派发 UnitDied
func (a *Arena) OnDeath(id ecs.EntityID, unit *components.UnitComponent) {
	if unit.Kind == types.TileEnemy {
		a.score.OnEnemyKilled()
	}
	a.dispatcher.Dispatch(event.Event{
		Type: event.UnitDied,
		Data: event.UnitDiedData{Kind: unit.Kind, Template: unit.Template, Position: unit.Position},
	})
	if a.deathHandler != nil {
		a.deathHandler.OnDeath(id, unit)
	}
}

// Subscribe 订阅本竞技场的事件，返回取消订阅的函数
func (a *Arena) Subscribe(eventType event.EventType, listener event.Listener) func() {
	return a.dispatcher.Subscribe(eventType, listener)
}

// Close 结束竞技场并清除全部订阅
func (a *Arena) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.dispatcher.Clear()
	log.Printf("[Arena] Round %s closed", a.roundID)
}

// State 返回当前游戏状态
func (a *Arena) State() GameState {
	return a.states.State()
}

// Score 返回当前总分
func (a *Arena) Score() int {
	return a.score.GetScore()
}

// ScoreKeeper 返回计分器
func (a *Arena) ScoreKeeper() *ScoreKeeper {
	return a.score
}

// Grid 返回当前网格，生成前为 nil
func (a *Arena) Grid() *systems.GridStore {
	return a.grid
}

// Config 返回竞技场配置
func (a *Arena) Config() *config.ArenaConfig {
	return a.cfg
}

// Player 返回玩家实体
func (a *Arena) Player() ecs.EntityID {
	return a.player
}

// PlayerPosition 返回玩家坐标
func (a *Arena) PlayerPosition() types.Coord {
	if unit := a.unit(a.player); unit != nil {
		return unit.Position
	}
	return types.Coord{}
}

// PlayerAlive 玩家是否存活
func (a *Arena) PlayerAlive() bool {
	unit := a.unit(a.player)
	return unit != nil && !unit.Dead
}

// AliveEnemies 返回存活的敌人实体，按实体ID升序
func (a *Arena) AliveEnemies() []ecs.EntityID {
	var alive []ecs.EntityID
	for _, id := range a.enemies {
		if unit := a.unit(id); unit != nil && !unit.Dead {
			alive = append(alive, id)
		}
	}
	return alive
}

// Unit 返回单位组件，不存在时返回 nil
func (a *Arena) Unit(id ecs.EntityID) *components.UnitComponent {
	return a.unit(id)
}

// Bombs 返回炸弹系统，生成前为 nil
func (a *Arena) Bombs() *systems.BombSystem {
	return a.bombs
}

// Ticks 返回本局已推进的 tick 数
func (a *Arena) Ticks() int {
	return a.ticks
}

// Attempts 返回本局地图生成用掉的尝试次数
func (a *Arena) Attempts() int {
	return a.attempts
}

// RoundID 返回本局的唯一标识
func (a *Arena) RoundID() string {
	return a.roundID
}

// Result 把本局结果整理为排行榜记录
func (a *Arena) Result(name string) LeaderboardEntry {
	return LeaderboardEntry{
		RoundID: a.roundID,
		Name:    name,
		Score:   a.score.GetScore(),
		Result:  a.State().String(),
		Kills:   a.score.Kills(),
		Ticks:   a.ticks,
		Seed:    a.cfg.Generation.Seed,
	}
}

// checkEnd 检查胜负，进入终态时派发一次状态事件
// 玩家与最后一个敌人同时死亡时判负
func (a *Arena) checkEnd() bool {
	if a.states.State().IsTerminal() {
		return true
	}

	switch {
	case !a.PlayerAlive():
		a.states.SetState(StateGameOver)
	case len(a.AliveEnemies()) == 0:
		a.states.SetState(StateGameWon)
	default:
		return false
	}

	log.Printf("[Arena] Round %s ended: %s, score=%d, ticks=%d", a.roundID, a.State(), a.Score(), a.ticks)
	return true
}

func (a *Arena) ensurePlaying() error {
	if a.closed {
		return ErrArenaClosed
	}
	if a.states.State() != StatePlaying {
		return fmt.Errorf("%w: state is %s", ErrNotPlaying, a.states.State())
	}
	return nil
}

func (a *Arena) unit(id ecs.EntityID) *components.UnitComponent {
	if a.em == nil {
		return nil
	}
	unit, ok := ecs.GetComponent[*components.UnitComponent](a.em, id)
	if !ok {
		return nil
	}
	return unit
}
