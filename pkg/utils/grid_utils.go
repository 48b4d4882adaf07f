package utils

// GridLayout 竞技场网格在屏幕上的布局
//
// 网格坐标 y 轴向上（y=0 为最下面一行），屏幕坐标 y 轴向下，
// 因此转换时需要翻转行号。
type GridLayout struct {
	OriginX  float64 // 网格左上角屏幕X坐标
	OriginY  float64 // 网格左上角屏幕Y坐标
	CellSize float64 // 每格边长
	Columns  int     // 列数
	Rows     int     // 行数
}

// NewGridLayout 创建布局，网格在 screenW x screenH 的画面中居中
// 格子边长取能放下整个网格的最大整数
func NewGridLayout(columns, rows, screenW, screenH int) GridLayout {
	cell := 1
	if columns > 0 && rows > 0 {
		cell = screenW / columns
		if h := screenH / rows; h < cell {
			cell = h
		}
		if cell < 1 {
			cell = 1
		}
	}

	return GridLayout{
		OriginX:  float64(screenW-cell*columns) / 2,
		OriginY:  float64(screenH-cell*rows) / 2,
		CellSize: float64(cell),
		Columns:  columns,
		Rows:     rows,
	}
}

// ScreenToGrid 将屏幕坐标转换为网格坐标
// 返回:
//   - x, y: 网格坐标
//   - isValid: 是否在网格范围内
func (l GridLayout) ScreenToGrid(screenX, screenY int) (x, y int, isValid bool) {
	sx := float64(screenX)
	sy := float64(screenY)

	endX := l.OriginX + float64(l.Columns)*l.CellSize
	endY := l.OriginY + float64(l.Rows)*l.CellSize
	if sx < l.OriginX || sx >= endX || sy < l.OriginY || sy >= endY {
		return 0, 0, false
	}

	col := int((sx - l.OriginX) / l.CellSize)
	row := int((sy - l.OriginY) / l.CellSize)

	// 防止浮点误差越界
	if col >= l.Columns {
		col = l.Columns - 1
	}
	if row >= l.Rows {
		row = l.Rows - 1
	}

	return col, l.Rows - 1 - row, true
}

// GridToScreen 将网格坐标转换为格子左上角的屏幕坐标
func (l GridLayout) GridToScreen(x, y int) (screenX, screenY float64) {
	screenX = l.OriginX + float64(x)*l.CellSize
	screenY = l.OriginY + float64(l.Rows-1-y)*l.CellSize
	return screenX, screenY
}
