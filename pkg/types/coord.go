package types

import "fmt"

// Coord 网格坐标，(0,0) 为左下角，X 向右，Y 向上
type Coord struct {
	X, Y int
}

// String 返回 "(x,y)" 形式，便于日志输出
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add 返回沿指定方向移动 n 格后的坐标
func (c Coord) Add(dir Direction, n int) Coord {
	dx, dy := dir.Delta()
	return Coord{X: c.X + dx*n, Y: c.Y + dy*n}
}

// Direction 四个基本方向
// 枚举顺序即邻居查询和爆炸射线的固定顺序：左、右、下、上
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirDown
	DirUp
)

// Directions 按固定顺序列出四个方向
var Directions = [4]Direction{DirLeft, DirRight, DirDown, DirUp}

// Delta 返回方向对应的单位位移
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, -1
	case DirUp:
		return 0, 1
	default:
		return 0, 0
	}
}

// String 返回方向名称
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirUp:
		return "up"
	default:
		return "none"
	}
}
