package utils

import (
	"math/rand"
	"time"
)

// RandomSource 模拟使用的随机数来源
// *rand.Rand 直接满足该接口；测试中可以替换为固定序列
type RandomSource interface {
	Float64() float64 // [0.0, 1.0)
	Intn(n int) int   // [0, n)
}

// NewRandomSource 创建带种子的随机数来源
// 如果种子为 0，使用当前时间
func NewRandomSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// WeightedPick 按权重随机选择一个下标
//
// 累积权重扫描：在 [0, totalWeight) 中抽取 r，依次减去各候选的权重，
// 第一个使 r <= 0 的候选胜出。浮点误差导致没有候选胜出时回退到第一个。
// 参数:
//   - rng: 随机数来源
//   - weights: 候选权重列表（非空）
//
// 返回:
//   - int: 选中的下标；weights 为空时返回 -1
func WeightedPick(rng RandomSource, weights []float64) int {
	if len(weights) == 0 {
		return -1
	}

	total := 0.0
	for _, w := range weights {
		total += w
	}

	r := rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r <= 0 {
			return i
		}
	}

	return 0
}

// Chance 伯努利试验，以概率 p 返回 true
// p <= 0 永远失败，p >= 1 永远成功
func Chance(rng RandomSource, p float64) bool {
	return rng.Float64() < p
}

// Shuffle 使用 Fisher-Yates 算法打乱 n 个元素
func Shuffle(rng RandomSource, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		swap(i, j)
	}
}
