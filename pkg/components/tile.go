package components

import (
	"github.com/gonewx/bomberman/pkg/ecs"
	"github.com/gonewx/bomberman/pkg/types"
)

// Tile 单个网格格子及其占用者
//
// 地板格子由随机变体生成（Weight 为其权重）；障碍、炸弹和单位格子会覆盖地板，
// 但保留 FloorVariant，以便被摧毁或单位离开后还原为原来的地板变体。
type Tile struct {
	Kind         types.TileKind // 占用者类别
	Name         string         // 模板名称，如 "grass"、"pillar"、"balloom"
	X, Y         int            // 网格坐标
	Weight       float64        // 地板变体的随机权重（非地板格子为 0）
	FloorVariant string         // 覆盖在其下方的地板变体名称
	Entity       ecs.EntityID   // 占用该格子的实体（单位、炸弹或爆炸），0 表示无
	free         bool
}

// IsFree 格子是否可放置新的占用者
func (t *Tile) IsFree() bool {
	return t.free
}

// SetFree 设置格子的空闲状态
func (t *Tile) SetFree(free bool) {
	t.free = free
}

// GetWeight 返回地板变体权重
func (t *Tile) GetWeight() float64 {
	return t.Weight
}

// GetX 返回 X 坐标
func (t *Tile) GetX() int { return t.X }

// GetY 返回 Y 坐标
func (t *Tile) GetY() int { return t.Y }

// Coord 返回格子坐标
func (t *Tile) Coord() types.Coord {
	return types.Coord{X: t.X, Y: t.Y}
}
