package game

import (
	"log"

	"github.com/gonewx/bomberman/pkg/event"
)

// DefaultTopEntries 结算画面展示的排行榜条数
const DefaultTopEntries = 5

// RoundRecorder 在对局结束时把成绩写入排行榜
//
// 通过 Attach 订阅竞技场的状态事件，进入 GameOver/GameWon 时记录一次。
// 同一局（RoundID 相同）只记录一次；竞技场重新生成后自动开始新的一局。
type RoundRecorder struct {
	leaderboard *Leaderboard
	name        string

	lastRound string
	lastRank  int
}

// NewRoundRecorder 创建记录器，leaderboard 为 nil 时所有操作都是空操作
func NewRoundRecorder(leaderboard *Leaderboard, name string) *RoundRecorder {
	return &RoundRecorder{
		leaderboard: leaderboard,
		name:        normalizeName(name),
	}
}

// Attach 订阅竞技场的状态切换，返回取消订阅的函数
func (r *RoundRecorder) Attach(arena *Arena) func() {
	return arena.Subscribe(event.GameStateChanged, event.ListenerFunc(func(e event.Event) {
		data, ok := e.Data.(event.StateChangedData)
		if !ok {
			return
		}
		if data.To == StateGameOver.String() || data.To == StateGameWon.String() {
			r.Record(arena)
		}
	}))
}

// Record 记录竞技场当前一局的成绩
//
// 返回：
//   - int: 名次（从 1 开始），未上榜、未结束或已记录过时返回 0
//   - bool: 本次调用是否写入了排行榜
func (r *RoundRecorder) Record(arena *Arena) (int, bool) {
	if r.leaderboard == nil || !arena.State().IsTerminal() {
		return 0, false
	}
	if arena.RoundID() == r.lastRound {
		return 0, false
	}

	r.lastRound = arena.RoundID()
	rank, err := r.leaderboard.Record(arena.Result(r.name))
	if err != nil {
		log.Printf("[RoundRecorder] Failed to save leaderboard: %v", err)
	}
	r.lastRank = rank
	return rank, true
}

// LastRank 返回最近一次记录的名次，0 表示未上榜
// 竞技场已开始新的一局时返回 0
func (r *RoundRecorder) LastRank(arena *Arena) int {
	if arena.RoundID() != r.lastRound {
		return 0
	}
	return r.lastRank
}

// Top 返回排行榜前 n 名，未配置排行榜时返回 nil
func (r *RoundRecorder) Top(n int) []LeaderboardEntry {
	if r.leaderboard == nil {
		return nil
	}
	return r.leaderboard.Top(n)
}
