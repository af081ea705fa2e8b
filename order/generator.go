package order

import "math/rand"

// Probabilities 为三类意图的分类分布，调用方保证和为 1（此处不校验）。
type Probabilities struct {
	Buy  float64 `yaml:"buy"`
	Sell float64 `yaml:"sell"`
	None float64 `yaml:"none"`
}

// DefaultProbabilities 0.4/0.4/0.2。
func DefaultProbabilities() Probabilities {
	return Probabilities{Buy: 0.4, Sell: 0.4, None: 0.2}
}

// Source 产生下一笔订单意图。
type Source interface {
	Next() Side
}

// Generator 每次独立抽样，与价格和历史订单无关。
type Generator struct {
	probs Probabilities
	rng   *rand.Rand
}

func NewGenerator(p Probabilities, rng *rand.Rand) *Generator {
	return &Generator{probs: p, rng: rng}
}

// Next 每次只消耗一次均匀随机数。
func (g *Generator) Next() Side {
	u := g.rng.Float64()
	switch {
	case u < g.probs.Buy:
		return Buy
	case u < g.probs.Buy+g.probs.Sell:
		return Sell
	default:
		return None
	}
}
