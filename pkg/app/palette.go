package app

import (
	"hash/fnv"
	"image/color"

	"github.com/gonewx/bomberman/pkg/components"
	"github.com/gonewx/bomberman/pkg/types"
)

var (
	backgroundColor = color.RGBA{R: 24, G: 24, B: 32, A: 255}
	flashColor      = color.NRGBA{R: 255, G: 200, B: 80, A: 90}

	leaderboardPanelColor = color.NRGBA{R: 0, G: 0, B: 0, A: 200}
)

var floorColors = map[string]color.RGBA{
	"grass":   {R: 86, G: 156, B: 72, A: 255},
	"dirt":    {R: 138, G: 110, B: 72, A: 255},
	"flowers": {R: 104, G: 168, B: 96, A: 255},
}

var kindColors = map[types.TileKind]color.RGBA{
	types.TileBorder:       {R: 70, G: 70, B: 80, A: 255},
	types.TilePillar:       {R: 120, G: 120, B: 130, A: 255},
	types.TileDestructible: {R: 168, G: 96, B: 56, A: 255},
	types.TileBomb:         {R: 20, G: 20, B: 20, A: 255},
	types.TilePlayer:       {R: 240, G: 240, B: 250, A: 255},
	types.TileExplosion:    {R: 255, G: 150, B: 30, A: 255},
}

// FloorColor 返回地板变体的颜色，未登记的变体按名称生成稳定的绿色调
func FloorColor(variant string) color.RGBA {
	if c, ok := floorColors[variant]; ok {
		return c
	}
	h := nameHash(variant)
	return color.RGBA{R: 70 + uint8(h%40), G: 140 + uint8(h/40%40), B: 60 + uint8(h/1600%40), A: 255}
}

// TileColor 返回格子占用者的颜色
// 敌人按模板名称区分颜色
func TileColor(tile *components.Tile) color.RGBA {
	if tile.Kind == types.TileFloor {
		return FloorColor(tile.FloorVariant)
	}
	if tile.Kind == types.TileEnemy {
		h := nameHash(tile.Name)
		return color.RGBA{R: 180 + uint8(h%60), G: 40 + uint8(h/60%80), B: 60 + uint8(h/4800%120), A: 255}
	}
	if c, ok := kindColors[tile.Kind]; ok {
		return c
	}
	return color.RGBA{R: 255, G: 0, B: 255, A: 255}
}

func nameHash(name string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(name))
	return h.Sum32()
}
