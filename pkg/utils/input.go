// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/bomberman/pkg/types"
)

// 方向键映射，方向键和 WASD 都可用
// 网格 y 轴向上，所以屏幕上的"上"对应 DirUp
var directionKeys = map[ebiten.Key]types.Direction{
	ebiten.KeyArrowLeft:  types.DirLeft,
	ebiten.KeyA:          types.DirLeft,
	ebiten.KeyArrowRight: types.DirRight,
	ebiten.KeyD:          types.DirRight,
	ebiten.KeyArrowDown:  types.DirDown,
	ebiten.KeyS:          types.DirDown,
	ebiten.KeyArrowUp:    types.DirUp,
	ebiten.KeyW:          types.DirUp,
}

// 按固定顺序检测，多个按键同时按下时结果稳定
var directionKeyOrder = []ebiten.Key{
	ebiten.KeyArrowLeft, ebiten.KeyA,
	ebiten.KeyArrowRight, ebiten.KeyD,
	ebiten.KeyArrowDown, ebiten.KeyS,
	ebiten.KeyArrowUp, ebiten.KeyW,
}

// KeyDirection 返回按键对应的移动方向
func KeyDirection(key ebiten.Key) (types.Direction, bool) {
	dir, ok := directionKeys[key]
	return dir, ok
}

// JustPressedDirection 返回本帧刚按下的方向键对应的方向
func JustPressedDirection() (types.Direction, bool) {
	for _, key := range directionKeyOrder {
		if inpututil.IsKeyJustPressed(key) {
			return directionKeys[key], true
		}
	}
	return 0, false
}

// IsBombJustPressed 本帧是否按下了放置炸弹键（空格或 J）
func IsBombJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyJ)
}

// IsPauseJustPressed 本帧是否按下了暂停键（P 或 Esc）
func IsPauseJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

// IsRestartJustPressed 本帧是否按下了重新开始键（R 或回车）
func IsRestartJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter)
}
