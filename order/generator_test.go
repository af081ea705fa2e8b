package order

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratorFrequencies(t *testing.T) {
	g := NewGenerator(DefaultProbabilities(), rand.New(rand.NewSource(99)))
	const n = 50000
	counts := map[Side]int{}
	for i := 0; i < n; i++ {
		counts[g.Next()]++
	}
	assert.InDelta(t, 0.4, float64(counts[Buy])/n, 0.01)
	assert.InDelta(t, 0.4, float64(counts[Sell])/n, 0.01)
	assert.InDelta(t, 0.2, float64(counts[None])/n, 0.01)
}

func TestGeneratorDegenerateDistributions(t *testing.T) {
	tests := []struct {
		name  string
		probs Probabilities
		want  Side
	}{
		{"always buy", Probabilities{Buy: 1}, Buy},
		{"always sell", Probabilities{Sell: 1}, Sell},
		{"always none", Probabilities{None: 1}, None},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGenerator(tt.probs, rand.New(rand.NewSource(1)))
			for i := 0; i < 200; i++ {
				assert.Equal(t, tt.want, g.Next())
			}
		})
	}
}

func TestGeneratorConsumesOneDrawPerCall(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	g := NewGenerator(DefaultProbabilities(), rng)
	g.Next()
	g.Next()

	ref := rand.New(rand.NewSource(5))
	ref.Float64()
	ref.Float64()
	assert.Equal(t, ref.Float64(), rng.Float64())
}

func TestGeneratorDoesNotValidate(t *testing.T) {
	// 概率和不为 1 时不报错，剩余概率落到 None。
	g := NewGenerator(Probabilities{Buy: 0.1, Sell: 0.1}, rand.New(rand.NewSource(2)))
	none := 0
	for i := 0; i < 1000; i++ {
		if g.Next() == None {
			none++
		}
	}
	if math.Abs(float64(none)/1000-0.8) > 0.06 {
		t.Fatalf("unexpected none share %d/1000", none)
	}
}
