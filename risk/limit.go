package risk

import (
	"errors"
	"fmt"
)

// ErrPositionLimit 成交后库存将越过对称上限。
var ErrPositionLimit = errors.New("position limit exceed")

// PositionLimit 对称库存上限：-Limit <= inventory <= Limit。
type PositionLimit struct {
	Limit int
}

// Check 在成交前校验；delta 为本次库存变化（正买负卖）。
// 不修改任何状态，调用方决定如何处理拒绝。
func (p PositionLimit) Check(inventory, delta int) error {
	next := inventory + delta
	if next > p.Limit || next < -p.Limit {
		return fmt.Errorf("%w: %d%+d outside ±%d", ErrPositionLimit, inventory, delta, p.Limit)
	}
	return nil
}
