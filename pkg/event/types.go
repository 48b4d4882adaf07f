package event

import (
	"github.com/gonewx/bomberman/pkg/types"
)

// 竞技场事件
const (
	ArenaGenerated   EventType = "ArenaGenerated"   // 地图生成完成，Data: ArenaGeneratedData
	GameStateChanged EventType = "GameStateChanged" // 游戏状态切换，Data: StateChangedData
	BombPlaced       EventType = "BombPlaced"       // 玩家放置炸弹，Data: BombData
	BombDetonated    EventType = "BombDetonated"    // 炸弹引爆，Data: BombData
	BlockDestroyed   EventType = "BlockDestroyed"   // 砖块被摧毁，Data: types.Coord
	UnitDied         EventType = "UnitDied"         // 单位死亡，Data: UnitDiedData
	ScoreChanged     EventType = "ScoreChanged"     // 分数变化，Data: int（新的总分）
)

// ArenaGeneratedData 地图生成结果摘要
type ArenaGeneratedData struct {
	Attempts      int
	Enemies       int
	Pillars       int
	Destructibles int
}

// StateChangedData 状态切换，状态以字符串形式给出以避免循环依赖
type StateChangedData struct {
	From string
	To   string
}

// BombData 炸弹事件数据
type BombData struct {
	Position types.Coord
	Cells    []types.Coord // 仅引爆事件：火焰覆盖的格子
	Chained  bool          // 仅引爆事件：是否为连锁引爆
}

// UnitDiedData 单位死亡事件数据
type UnitDiedData struct {
	Kind     types.TileKind
	Template string
	Position types.Coord
}
