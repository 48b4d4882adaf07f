package components

import (
	"github.com/gonewx/bomberman/pkg/ecs"
	"github.com/gonewx/bomberman/pkg/types"
)

// BombState 炸弹状态
type BombState int

const (
	BombArmed     BombState = iota // 倒计时中
	BombDetonated                  // 已引爆（终态）
)

// BombComponent 已放置的炸弹
type BombComponent struct {
	Position  types.Coord  // 炸弹所在格子
	Range     int          // 爆炸范围（每个方向的最大格数）
	FuseTicks int          // 剩余引信 tick 数
	State     BombState    // 当前状态
	Owner     ecs.EntityID // 放置者，0 表示无主
	Seq       int          // 放置序号，用于同一 tick 内的引爆顺序
}
