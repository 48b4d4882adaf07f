package components

import "github.com/gonewx/bomberman/pkg/types"

// UnitComponent 玩家或敌人单位
// Dead 是单向状态：一旦为 true 不会再变回 false
type UnitComponent struct {
	Kind     types.TileKind // TilePlayer 或 TileEnemy
	Template string         // 模板名称
	Position types.Coord    // 当前所在格子
	Dead     bool           // 是否已死亡
}
