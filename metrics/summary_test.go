package metrics

import "testing"

func TestSummarize(t *testing.T) {
	prices := []float64{100, 101, 99, 102}
	pnl := []float64{0, 3, -2, 1}
	s := Summarize(prices, pnl)
	if s.Steps != 4 || s.FinalPrice != 102 || s.FinalPnL != 1 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if s.MinPnL != -2 || s.MaxPnL != 3 {
		t.Fatalf("unexpected bounds: %+v", s)
	}
	if s.MaxDrawdown != 5 {
		t.Fatalf("expected drawdown 5 got %f", s.MaxDrawdown)
	}
	if s.Sharpe != Sharpe(pnl) {
		t.Fatalf("sharpe mismatch")
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil)
	if s != (Summary{}) {
		t.Fatalf("expected zero summary, got %+v", s)
	}
}

func TestMaxDrawdownMonotoneUp(t *testing.T) {
	if dd := MaxDrawdown([]float64{-5, -3, 0, 4}); dd != 0 {
		t.Fatalf("expected 0 got %f", dd)
	}
}
