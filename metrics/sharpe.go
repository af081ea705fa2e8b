// Package metrics derives summary statistics from a recorded PnL series.
package metrics

import "math"

// Diff 返回逐期差分，长度为 len(series)-1。
func Diff(series []float64) []float64 {
	if len(series) < 2 {
		return nil
	}
	out := make([]float64, len(series)-1)
	for i := 1; i < len(series); i++ {
		out[i-1] = series[i] - series[i-1]
	}
	return out
}

// MeanStd 均值与总体标准差（除以 n）。
func MeanStd(xs []float64) (mean, std float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	variance := 0.0
	for _, x := range xs {
		d := x - mean
		variance += d * d
	}
	variance /= float64(len(xs))
	return mean, math.Sqrt(variance)
}

// Sharpe 逐期 PnL 差分的 mean/std，不做年化、无风险利率取 0。
// 标准差为 0（含序列不足两点）时返回 0 而不是 Inf/NaN。
// 注意：下注策略统计在同样情形下返回 +Inf，两者是各自组件的约定，不要合并。
func Sharpe(pnl []float64) float64 {
	mean, std := MeanStd(Diff(pnl))
	if std == 0 {
		return 0
	}
	return mean / std
}
