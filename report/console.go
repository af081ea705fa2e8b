package report

import (
	"fmt"
	"io"

	"market-maker-sim/sim"
)

// Print 打印运行结果，前两行与原始脚本的输出保持一致。
func Print(w io.Writer, res *sim.Result) {
	s := res.Summary
	fmt.Fprintf(w, "Final P&L: %s\n", fixed(s.FinalPnL))
	fmt.Fprintf(w, "Sharpe Ratio: %s\n", fixed(s.Sharpe))
	fmt.Fprintf(w, "Run: %s (seed=%d steps=%d)\n", res.RunID, res.Config.Seed, s.Steps)
	fmt.Fprintf(w, "Final price: %s  inventory: %d  cash: %s\n",
		fixed(s.FinalPrice), res.Final.Inventory, fixed(res.Final.Cash))
	fmt.Fprintf(w, "PnL range: [%s, %s]  max drawdown: %s\n",
		fixed(s.MinPnL), fixed(s.MaxPnL), fixed(s.MaxDrawdown))
	fmt.Fprintf(w, "Fills: %d (buys %d / sells %d)  rejected: %d  idle: %d\n",
		res.Counts.Filled, res.Counts.Buys, res.Counts.Sells, res.Counts.Rejected, res.Counts.Idle)
}
