package utils

import "math"

// 缓动函数接受进度 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
//
// 参考：https://easings.net/

// EaseInQuad 二次方缓入
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// Lerp 线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// FadeAlpha 计算倒计时淡出的透明度
//
// remaining 为剩余帧数，total 为总帧数，peak 为起始透明度。
// 剩余帧越少越透明，前段衰减较慢。
func FadeAlpha(remaining, total int, peak uint8) uint8 {
	if total <= 0 || remaining <= 0 {
		return 0
	}
	if remaining > total {
		remaining = total
	}
	elapsed := 1 - float64(remaining)/float64(total)
	return uint8(math.Round(Lerp(float64(peak), 0, EaseInQuad(elapsed))))
}
