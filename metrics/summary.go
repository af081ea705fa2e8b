package metrics

// Summary 单次运行的汇总结果。
type Summary struct {
	Steps       int     `json:"steps"`
	FinalPrice  float64 `json:"finalPrice"`
	FinalPnL    float64 `json:"finalPnl"`
	Sharpe      float64 `json:"sharpe"`
	MinPnL      float64 `json:"minPnl"`
	MaxPnL      float64 `json:"maxPnl"`
	MaxDrawdown float64 `json:"maxDrawdown"` // 绝对 PnL 单位，从历史峰值回落的最大幅度
}

// Summarize 汇总价格与 PnL 序列（两者逐步对齐）。
func Summarize(prices, pnl []float64) Summary {
	s := Summary{Steps: len(pnl), Sharpe: Sharpe(pnl)}
	if len(prices) > 0 {
		s.FinalPrice = prices[len(prices)-1]
	}
	if len(pnl) == 0 {
		return s
	}
	s.FinalPnL = pnl[len(pnl)-1]
	s.MinPnL, s.MaxPnL = pnl[0], pnl[0]
	s.MaxDrawdown = MaxDrawdown(pnl)
	for _, v := range pnl {
		if v < s.MinPnL {
			s.MinPnL = v
		}
		if v > s.MaxPnL {
			s.MaxPnL = v
		}
	}
	return s
}

// MaxDrawdown 峰值到谷值的最大回落。PnL 可为负，因此用绝对差而不是百分比。
func MaxDrawdown(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	peak := series[0]
	maxDD := 0.0
	for _, v := range series {
		if v > peak {
			peak = v
		}
		if dd := peak - v; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}
