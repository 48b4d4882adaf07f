package components

import "github.com/gonewx/bomberman/pkg/types"

// ExplosionComponent 一次引爆产生的火焰格子
// Cells 按遍历顺序排列：炸弹中心在前，随后依次为左、右、下、上四条射线
type ExplosionComponent struct {
	Origin    types.Coord   // 炸弹中心
	Cells     []types.Coord // 覆盖的格子
	TicksLeft int           // 剩余存在的 tick 数
	Destroyed []types.Coord // 本次摧毁的砖块位置
}
