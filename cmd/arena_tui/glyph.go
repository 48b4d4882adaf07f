package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/bomberman/pkg/components"
	"github.com/gonewx/bomberman/pkg/types"
)

var floorStyles = map[string]tcell.Style{
	"grass":   tcell.StyleDefault.Foreground(tcell.ColorGreen),
	"dirt":    tcell.StyleDefault.Foreground(tcell.ColorOlive),
	"flowers": tcell.StyleDefault.Foreground(tcell.ColorLightGreen),
}

// glyph 返回格子在终端上的字符和样式
func glyph(tile *components.Tile) (rune, tcell.Style) {
	if tile == nil {
		return ' ', tcell.StyleDefault
	}

	switch tile.Kind {
	case types.TileFloor:
		style, ok := floorStyles[tile.FloorVariant]
		if !ok {
			style = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
		}
		return '.', style
	case types.TileBorder:
		return '█', tcell.StyleDefault.Foreground(tcell.ColorGray)
	case types.TilePillar:
		return '▓', tcell.StyleDefault.Foreground(tcell.ColorSilver)
	case types.TileDestructible:
		return '▒', tcell.StyleDefault.Foreground(tcell.ColorMaroon)
	case types.TileBomb:
		return 'o', tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	case types.TilePlayer:
		return '@', tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	case types.TileEnemy:
		return enemyRune(tile.Name), tcell.StyleDefault.Foreground(tcell.ColorRed)
	case types.TileExplosion:
		return '*', tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorRed)
	}
	return '?', tcell.StyleDefault
}

// enemyRune 用模板名称首字母表示敌人
func enemyRune(name string) rune {
	for _, r := range name {
		if r >= 'a' && r <= 'z' {
			return r - 'a' + 'A'
		}
		return r
	}
	return 'E'
}
