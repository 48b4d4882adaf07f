package systems

import (
	"github.com/gonewx/bomberman/pkg/components"
	"github.com/gonewx/bomberman/pkg/config"
	"github.com/gonewx/bomberman/pkg/ecs"
	"github.com/gonewx/bomberman/pkg/entities"
	"github.com/gonewx/bomberman/pkg/types"
)

// constantSource 总是返回同一个值的随机数来源
// 0.0 使所有概率大于 0 的伯努利试验成功、加权选择总选第一个
type constantSource struct {
	value float64
}

func (s constantSource) Float64() float64 { return s.value }

func (s constantSource) Intn(n int) int { return int(s.value * float64(n)) }

// testRegistry 只有一种地板的注册表，便于断言
func testRegistry() *config.TileRegistry {
	return &config.TileRegistry{
		Floors:       []config.FloorTemplate{{Name: "grass", Weight: 1}},
		Border:       "border",
		Pillar:       "pillar",
		Destructible: "brick",
		Bomb:         "bomb",
		Player:       "bomberman",
		Enemies: []config.EnemyTemplate{
			{Name: "alpha"}, {Name: "beta"}, {Name: "gamma"},
		},
	}
}

// testWorld 手工搭建的测试场景：w x h 全地板网格，外圈为边界
type testWorld struct {
	em      *ecs.EntityManager
	factory *entities.TileFactory
	grid    *GridStore
}

func newTestWorld(w, h int) *testWorld {
	em := ecs.NewEntityManager()
	factory := entities.NewTileFactory(em, testRegistry())
	grid := NewGridStore(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				tile, _ := factory.NewObstacleTile(types.TileBorder, x, y, "grass")
				grid.Set(x, y, tile)
				continue
			}
			grid.Set(x, y, factory.NewFloorTile("grass", x, y))
		}
	}
	return &testWorld{em: em, factory: factory, grid: grid}
}

// put 在指定坐标放置障碍
func (w *testWorld) put(kind types.TileKind, x, y int) {
	tile, err := w.factory.NewObstacleTile(kind, x, y, "grass")
	if err != nil {
		panic(err)
	}
	w.grid.Set(x, y, tile)
}

// spawn 在指定坐标放置单位并返回实体ID
func (w *testWorld) spawn(kind types.TileKind, x, y int) ecs.EntityID {
	id, tile, err := w.factory.NewUnitEntity(kind, "", x, y, "grass")
	if err != nil {
		panic(err)
	}
	w.grid.Set(x, y, tile)
	return id
}

// unit 获取单位组件
func (w *testWorld) unit(id ecs.EntityID) *components.UnitComponent {
	u, _ := ecs.GetComponent[*components.UnitComponent](w.em, id)
	return u
}

// kindAt 返回坐标处的格子类别
func (w *testWorld) kindAt(x, y int) types.TileKind {
	tile, _ := w.grid.Get(x, y)
	if tile == nil {
		return types.TileUnknown
	}
	return tile.Kind
}

// deathRecorder 记录 OnDeath 回调
type deathRecorder struct {
	calls []ecs.EntityID
}

func (r *deathRecorder) OnDeath(id ecs.EntityID, unit *components.UnitComponent) {
	r.calls = append(r.calls, id)
}
