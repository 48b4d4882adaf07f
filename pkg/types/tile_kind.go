// Package types 定义共享的基础类型
package types

// TileKind 定义格子占用者的类别
type TileKind int

const (
	// TileUnknown 未知类别（配置解析失败时返回）
	TileUnknown TileKind = iota

	TileFloor        // 地板（可通行，随机变体）
	TileBorder       // 外圈边界（不可摧毁）
	TilePillar       // 柱子（不可摧毁）
	TileDestructible // 可摧毁砖块
	TileBomb         // 炸弹
	TilePlayer       // 玩家
	TileEnemy        // 敌人
	TileExplosion    // 爆炸火焰（持续若干 tick 后还原为地板）
)

// tileKindStringMap 类别到配置字符串的映射
var tileKindStringMap = map[TileKind]string{
	TileFloor:        "floor",
	TileBorder:       "border",
	TilePillar:       "pillar",
	TileDestructible: "destructible",
	TileBomb:         "bomb",
	TilePlayer:       "player",
	TileEnemy:        "enemy",
	TileExplosion:    "explosion",
}

// stringToTileKindMap 配置字符串到类别的反向映射
var stringToTileKindMap map[string]TileKind

func init() {
	stringToTileKindMap = make(map[string]TileKind, len(tileKindStringMap))
	for kind, s := range tileKindStringMap {
		stringToTileKindMap[s] = kind
	}
	stringToTileKindMap["indestructible"] = TilePillar
}

// String 返回类别的配置字符串表示
func (k TileKind) String() string {
	if s, ok := tileKindStringMap[k]; ok {
		return s
	}
	return "unknown"
}

// ParseTileKind 将配置字符串转换为 TileKind
// 支持别名 "indestructible"（等价于 pillar）
func ParseTileKind(s string) TileKind {
	if kind, ok := stringToTileKindMap[s]; ok {
		return kind
	}
	return TileUnknown
}

// IsIndestructible 判断是否为不可摧毁的障碍（会完全阻挡爆炸）
func (k TileKind) IsIndestructible() bool {
	return k == TileBorder || k == TilePillar
}

// IsUnit 判断是否为单位（玩家或敌人）
func (k TileKind) IsUnit() bool {
	return k == TilePlayer || k == TileEnemy
}
