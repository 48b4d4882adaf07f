package game

import (
	"log"

	"github.com/gonewx/bomberman/pkg/event"
)

// GameState 一局游戏所处的状态
type GameState int

const (
	StateIdle     GameState = iota // 尚未生成地图
	StatePlaying                   // 进行中
	StatePaused                    // 暂停，tick 不推进
	StateGameOver                  // 玩家死亡（终态）
	StateGameWon                   // 敌人全部死亡（终态）
)

var gameStateNames = map[GameState]string{
	StateIdle:     "idle",
	StatePlaying:  "playing",
	StatePaused:   "paused",
	StateGameOver: "gameover",
	StateGameWon:  "gamewon",
}

func (s GameState) String() string {
	if name, ok := gameStateNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal 是否为结束状态
func (s GameState) IsTerminal() bool {
	return s == StateGameOver || s == StateGameWon
}

// StateController 管理一个竞技场的游戏状态
// 每个竞技场持有自己的实例，状态变化通过竞技场的分发器通知订阅者
type StateController struct {
	state      GameState
	dispatcher *event.Dispatcher
}

// NewStateController 创建状态控制器，初始状态为 StateIdle
func NewStateController(dispatcher *event.Dispatcher) *StateController {
	return &StateController{
		state:      StateIdle,
		dispatcher: dispatcher,
	}
}

// State 返回当前状态
func (c *StateController) State() GameState {
	return c.state
}

// SetState 切换状态并派发 GameStateChanged
// 返回:
//   - bool: 状态是否发生变化；与当前状态相同时不派发事件
func (c *StateController) SetState(state GameState) bool {
	if c.state == state {
		return false
	}

	from := c.state
	c.state = state
	log.Printf("[StateController] %s -> %s", from, state)

	if c.dispatcher != nil {
		c.dispatcher.Dispatch(event.Event{
			Type: event.GameStateChanged,
			Data: event.StateChangedData{From: from.String(), To: state.String()},
		})
	}
	return true
}
