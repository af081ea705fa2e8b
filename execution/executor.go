// Package execution 把单步订单意图落到做市商状态上。
package execution

import (
	"market-maker-sim/inventory"
	"market-maker-sim/order"
	"market-maker-sim/risk"
	"market-maker-sim/strategy"
)

// Result 单步执行结果。
type Result int

const (
	Idle     Result = iota // 无订单
	Filled                 // 成交
	Rejected               // 触及库存上限，静默拒绝
)

func (r Result) String() string {
	switch r {
	case Filled:
		return "filled"
	case Rejected:
		return "rejected"
	default:
		return "idle"
	}
}

// Fill 描述一步执行：本步报价、成交价与结果。
// 拒绝不以 error 形式返回，状态保持不变。
type Fill struct {
	Side   order.Side
	Quote  strategy.Quote
	Price  float64 // 成交价：Buy 取 ask，Sell 取 bid；未成交为 0
	Result Result
}

// Execute 对当前报价执行一笔订单意图，原地修改 st。
// 对手方买入时做市商在 ask 卖出一单位，对手方卖出时在 bid 买入一单位。
func Execute(side order.Side, price float64, st *inventory.State, cfg strategy.EngineConfig) Fill {
	q := strategy.QuoteFor(price, st.Inventory, cfg)
	fill := Fill{Side: side, Quote: q, Result: Idle}

	delta := side.Delta()
	if delta == 0 {
		return fill
	}
	if err := (risk.PositionLimit{Limit: cfg.InventoryLimit}).Check(st.Inventory, delta); err != nil {
		fill.Result = Rejected
		return fill
	}

	fill.Price = q.Bid
	if side == order.Buy {
		fill.Price = q.Ask
	}
	st.Apply(delta, fill.Price)
	fill.Result = Filled
	return fill
}
