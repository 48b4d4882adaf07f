package systems

import (
	"fmt"

	"github.com/gonewx/bomberman/pkg/components"
	"github.com/gonewx/bomberman/pkg/types"
)

// GridStore 竞技场网格
// 存储 width x height 个格子引用，按 [x][y] 索引；未写入的格子为 nil
type GridStore struct {
	width  int
	height int
	tiles  [][]*components.Tile
}

// NewGridStore 创建空网格
func NewGridStore(width, height int) *GridStore {
	tiles := make([][]*components.Tile, width)
	for x := range tiles {
		tiles[x] = make([]*components.Tile, height)
	}
	return &GridStore{
		width:  width,
		height: height,
		tiles:  tiles,
	}
}

// Width 返回列数
func (g *GridStore) Width() int { return g.width }

// Height 返回行数
func (g *GridStore) Height() int { return g.height }

// InBounds 检查坐标是否在 [0,width) x [0,height) 内
func (g *GridStore) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get 获取格子
// 返回:
//   - *components.Tile: 当前占用者，未写入时为 nil
//   - bool: 坐标越界时为 false
func (g *GridStore) Get(x, y int) (*components.Tile, bool) {
	if !g.InBounds(x, y) {
		return nil, false
	}
	return g.tiles[x][y], true
}

// At 按坐标获取格子，越界或未写入时返回 nil
func (g *GridStore) At(c types.Coord) *components.Tile {
	tile, _ := g.Get(c.X, c.Y)
	return tile
}

// Set 覆盖格子
// 调用方负责事先通过 IsFree 检查占用状态
func (g *GridStore) Set(x, y int, tile *components.Tile) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("set (%d,%d) on %dx%d grid: %w", x, y, g.width, g.height, ErrOutOfBounds)
	}
	g.tiles[x][y] = tile
	return nil
}

// IsFree 格子是否空闲（未写入的格子视为空闲，越界视为不空闲）
func (g *GridStore) IsFree(x, y int) bool {
	tile, ok := g.Get(x, y)
	if !ok {
		return false
	}
	return tile == nil || tile.IsFree()
}

// Neighbors 返回四个方向上相邻且在范围内的格子
// 顺序固定为左、右、下、上；越界方向被省略（不环绕），未写入的格子同样省略
func (g *GridStore) Neighbors(c types.Coord) []*components.Tile {
	result := make([]*components.Tile, 0, 4)
	for _, dir := range types.Directions {
		n := c.Add(dir, 1)
		if tile, ok := g.Get(n.X, n.Y); ok && tile != nil {
			result = append(result, tile)
		}
	}
	return result
}

// CountKind 统计指定类别的格子数量
func (g *GridStore) CountKind(kind types.TileKind) int {
	count := 0
	g.ForEach(func(tile *components.Tile) {
		if tile.Kind == kind {
			count++
		}
	})
	return count
}

// ForEach 按行优先顺序（y 外层，x 内层）遍历所有已写入的格子
func (g *GridStore) ForEach(fn func(tile *components.Tile)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if tile := g.tiles[x][y]; tile != nil {
				fn(tile)
			}
		}
	}
}
