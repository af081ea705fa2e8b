package market

import (
	"iter"
	"math/rand"
)

// PriceProcess 生成下一步参考价格。
type PriceProcess interface {
	Next(current float64) float64
}

// RandomWalk 高斯随机游走：每步叠加 N(0, Sigma) 的独立增量。
// 不做价格下限保护，价格可以走到 0 以下。
type RandomWalk struct {
	Sigma float64
	rng   *rand.Rand
}

// NewRandomWalk 使用外部注入的随机源，便于固定 seed 复现。
func NewRandomWalk(sigma float64, rng *rand.Rand) *RandomWalk {
	return &RandomWalk{Sigma: sigma, rng: rng}
}

func (w *RandomWalk) Next(current float64) float64 {
	return current + w.rng.NormFloat64()*w.Sigma
}

// Path 返回从 start 开始的惰性无限价格序列（不含 start 本身）。
// 需要重放时用相同 seed 重新构造 PriceProcess 即可。
func Path(p PriceProcess, start float64) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		price := start
		for {
			price = p.Next(price)
			if !yield(price) {
				return
			}
		}
	}
}
