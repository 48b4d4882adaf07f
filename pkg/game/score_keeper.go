package game

import (
	"github.com/gonewx/bomberman/pkg/config"
	"github.com/gonewx/bomberman/pkg/event"
)

// ScoreKeeper 一局游戏的计分
type ScoreKeeper struct {
	rules      config.ScoreConfig
	dispatcher *event.Dispatcher

	score  int
	kills  int
	blocks int
}

// NewScoreKeeper 创建计分器
func NewScoreKeeper(rules config.ScoreConfig, dispatcher *event.Dispatcher) *ScoreKeeper {
	return &ScoreKeeper{
		rules:      rules,
		dispatcher: dispatcher,
	}
}

// OnEnemyKilled 消灭敌人加分
func (k *ScoreKeeper) OnEnemyKilled() {
	k.kills++
	k.add(k.rules.EnemyKill)
}

// OnBlockDestroyed 摧毁砖块加分
func (k *ScoreKeeper) OnBlockDestroyed() {
	k.blocks++
	k.add(k.rules.BlockDestroyed)
}

// GetScore 返回当前总分
func (k *ScoreKeeper) GetScore() int {
	return k.score
}

// Kills 返回消灭的敌人数量
func (k *ScoreKeeper) Kills() int {
	return k.kills
}

// BlocksDestroyed 返回摧毁的砖块数量
func (k *ScoreKeeper) BlocksDestroyed() int {
	return k.blocks
}

// Reset 清零（新一局开始时调用），不派发事件
func (k *ScoreKeeper) Reset() {
	k.score = 0
	k.kills = 0
	k.blocks = 0
}

func (k *ScoreKeeper) add(points int) {
	if points == 0 {
		return
	}
	k.score += points
	if k.dispatcher != nil {
		k.dispatcher.Dispatch(event.Event{Type: event.ScoreChanged, Data: k.score})
	}
}
