package inventory

// State 做市商单次运行的可变状态：净库存与累计现金流。
// 每次运行从零值开始，运行结束即丢弃。
type State struct {
	Inventory int
	Cash      float64
}

// Apply 按成交调整仓位：delta 为库存变化（+1 买入，-1 卖出），price 为成交价。
// 买入付出现金，卖出收到现金。
func (s *State) Apply(delta int, price float64) {
	s.Inventory += delta
	s.Cash -= float64(delta) * price
}

// MarkToMarket 现金加上按 price 估值的库存。
func (s State) MarkToMarket(price float64) float64 {
	return s.Cash + float64(s.Inventory)*price
}
