package systems

import "errors"

var (
	// ErrOutOfBounds 坐标超出网格范围，操作不生效
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrOccupiedCell 试图在非空闲格子上放置占用者（调用方应先检查 IsFree）
	ErrOccupiedCell = errors.New("cell is occupied")

	// ErrGenerationUnsatisfiable 在重试上限内无法生成满足敌人数量的地图
	ErrGenerationUnsatisfiable = errors.New("arena generation unsatisfiable")
)
