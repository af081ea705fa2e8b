package order

// Side 表示对手方在本步的下单意图，只在当步有效。
// Buy 表示对手方向做市商买入（做市商卖出），Sell 反之。
type Side string

const (
	None Side = "NONE"
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// Delta 返回做市商库存的变化方向：Buy -> -1，Sell -> +1，None -> 0。
func (s Side) Delta() int {
	switch s {
	case Buy:
		return -1
	case Sell:
		return 1
	default:
		return 0
	}
}

func (s Side) String() string {
	if s == "" {
		return string(None)
	}
	return string(s)
}
