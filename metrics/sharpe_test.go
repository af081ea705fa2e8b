package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSharpeZeroVariance(t *testing.T) {
	flat := make([]float64, 50)
	for i := range flat {
		flat[i] = -12.5
	}
	got := Sharpe(flat)
	assert.Equal(t, 0.0, got)
	assert.False(t, math.IsNaN(got) || math.IsInf(got, 0))

	// 等差序列：差分恒定，方差同样为 0
	assert.Equal(t, 0.0, Sharpe([]float64{1, 2, 3, 4}))
}

func TestSharpeShortSeries(t *testing.T) {
	assert.Equal(t, 0.0, Sharpe(nil))
	assert.Equal(t, 0.0, Sharpe([]float64{10}))
}

func TestSharpeKnownValue(t *testing.T) {
	// 差分 = [1, 3]，mean=2，总体 std=1
	assert.InDelta(t, 2.0, Sharpe([]float64{0, 1, 4}), 1e-12)
	// 差分 = [1, -1, 1, -1]，mean=0
	assert.InDelta(t, 0.0, Sharpe([]float64{0, 1, 0, 1, 0}), 1e-12)
	// 差分 = [2, -1]，mean=0.5，std=1.5
	assert.InDelta(t, 1.0/3.0, Sharpe([]float64{5, 7, 6}), 1e-12)
}

func TestMeanStdPopulation(t *testing.T) {
	mean, std := MeanStd([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.Equal(t, 5.0, mean)
	assert.Equal(t, 2.0, std)
}

func TestDiff(t *testing.T) {
	assert.Equal(t, []float64{1, -2, 0.5}, Diff([]float64{0, 1, -1, -0.5}))
	assert.Nil(t, Diff([]float64{3}))
}
